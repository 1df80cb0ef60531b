// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ippc

// Operand is the class of token accepted at one operand position.
type Operand int

const (
	OperandVar   Operand = iota + 1 // frame-qualified variable
	OperandSymb                     // variable or constant
	OperandLabel                    // label, or a keyword reinterpreted as one
	OperandType                     // int, string, bool
)

func (o Operand) String() string {
	switch o {
	case OperandVar:
		return "var"
	case OperandSymb:
		return "symb"
	case OperandLabel:
		return "label"
	case OperandType:
		return "type"
	}
	return "unknown"
}

// Signature is the operand sequence shared by a group of opcodes.
type Signature []Operand

var (
	sigNone          = Signature{}
	sigVar           = Signature{OperandVar}
	sigSymb          = Signature{OperandSymb}
	sigLabel         = Signature{OperandLabel}
	sigVarSymb       = Signature{OperandVar, OperandSymb}
	sigVarType       = Signature{OperandVar, OperandType}
	sigVarSymbSymb   = Signature{OperandVar, OperandSymb, OperandSymb}
	sigLabelSymbSymb = Signature{OperandLabel, OperandSymb, OperandSymb}
)

// signatures maps the uppercase mnemonic of every instruction to its operands.
// The lexer uses the same table to recognize mnemonics.
var signatures = map[string]Signature{
	// frames and function calls
	"MOVE":        sigVarSymb,
	"CREATEFRAME": sigNone,
	"PUSHFRAME":   sigNone,
	"POPFRAME":    sigNone,
	"DEFVAR":      sigVar,
	"CALL":        sigLabel,
	"RETURN":      sigNone,

	// data stack
	"PUSHS": sigSymb,
	"POPS":  sigVar,

	// arithmetic, relational, boolean and conversion
	"ADD":      sigVarSymbSymb,
	"SUB":      sigVarSymbSymb,
	"MUL":      sigVarSymbSymb,
	"IDIV":     sigVarSymbSymb,
	"LT":       sigVarSymbSymb,
	"GT":       sigVarSymbSymb,
	"EQ":       sigVarSymbSymb,
	"AND":      sigVarSymbSymb,
	"OR":       sigVarSymbSymb,
	"NOT":      sigVarSymb,
	"INT2CHAR": sigVarSymb,
	"STRI2INT": sigVarSymbSymb,

	// input and output
	"READ":  sigVarType,
	"WRITE": sigSymb,

	// strings
	"CONCAT":  sigVarSymbSymb,
	"STRLEN":  sigVarSymb,
	"GETCHAR": sigVarSymbSymb,
	"SETCHAR": sigVarSymbSymb,

	// types
	"TYPE": sigVarSymb,

	// flow control
	"LABEL":     sigLabel,
	"JUMP":      sigLabel,
	"JUMPIFEQ":  sigLabelSymbSymb,
	"JUMPIFNEQ": sigLabelSymbSymb,
	"EXIT":      sigSymb,

	// debugging
	"DPRINT": sigSymb,
	"BREAK":  sigNone,
}

// LookupSignature returns the operand signature for the opcode.
// The opcode must already be uppercase.
func LookupSignature(opcode string) (Signature, bool) {
	sig, ok := signatures[opcode]
	return sig, ok
}

// typeKeywords are matched case-sensitively.
var typeKeywords = map[string]bool{
	"int":    true,
	"string": true,
	"bool":   true,
}
