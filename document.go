// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ippc

// Language is the value of the language attribute on the program element.
const Language = "IPPcode21"

// ArgType is the type attribute of an argument element.
type ArgType string

const (
	ArgVar      ArgType = "var"
	ArgLabel    ArgType = "label"
	ArgTypeName ArgType = "type"
	ArgNil      ArgType = "nil"
	ArgBool     ArgType = "bool"
	ArgInt      ArgType = "int"
	ArgString   ArgType = "string"
)

// argTypes maps the kinds accepted as operands to their type attribute.
var argTypes = map[Kind]ArgType{
	Variable:    ArgVar,
	Label:       ArgLabel,
	Type:        ArgTypeName,
	NilConst:    ArgNil,
	BoolConst:   ArgBool,
	IntConst:    ArgInt,
	StringConst: ArgString,
}

// Program is the root of the output document.
type Program struct {
	Language     string
	Instructions []*Instr
}

// Instr is one line of the program.
// Order starts at 1 and increases by one for each instruction.
type Instr struct {
	Order  int
	Opcode string // uppercase mnemonic
	Args   []Argument
}

// Argument is one operand of an instruction.
// Position starts at 1 and matches the operand's place in the source.
type Argument struct {
	Position int
	Type     ArgType
	Value    string // already escaped
}

func newProgram() *Program {
	return &Program{Language: Language}
}

// addInstruction appends a new instruction with the next order number.
func (p *Program) addInstruction(opcode string) *Instr {
	inst := &Instr{
		Order:  len(p.Instructions) + 1,
		Opcode: opcode,
	}
	p.Instructions = append(p.Instructions, inst)
	return inst
}

// addArgument appends an argument with the next position.
func (inst *Instr) addArgument(tok *Token) {
	inst.Args = append(inst.Args, Argument{
		Position: len(inst.Args) + 1,
		Type:     argTypes[tok.Kind],
		Value:    tok.Display,
	})
}
