package ippc

//go:generate stringer --type Kind

// Kind implements enums for tokens
type Kind int

const (
	Unknown Kind = iota

	Header        // .IPPcode21
	NewlineMarker // one or more line breaks
	Type          // int, string, bool
	Instruction   // MOVE, ADD, ...
	Label         // bare identifier
	Variable      // GF@x, LF@x, TF@x
	NilConst      // nil@nil
	BoolConst     // bool@true, bool@false
	IntConst      // int@42
	StringConst   // string@text

	EndOfInput // end of input
)
