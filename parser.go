// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ippc

import (
	"context"
	"fmt"
	"log/slog"
)

/*
Grammar:

	program  ::= Header boundary { Instruction operands boundary }
	boundary ::= NewlineMarker | EndOfInput
	operands ::= as given by the opcode's Signature
	var      ::= Variable
	symb     ::= Variable | NilConst | BoolConst | IntConst | StringConst
	label    ::= Label | Type | Instruction     (the latter two are retagged)
	type     ::= Type

Every rule returns either the value it built or an error. The first error
stops the parse; the partially built program is discarded.
*/

// symbKinds are the token kinds accepted at a symb position.
var symbKinds = []Kind{Variable, NilConst, BoolConst, IntConst, StringConst}

type Parser struct {
	name    string
	cursor  *Cursor
	program *Program

	// logging
	ctx    context.Context
	logger *slog.Logger
}

// NewParser returns a parser over the token list.
// The list must end with an EndOfInput token.
func NewParser(ctx context.Context, name string, tokens []*Token, logger *slog.Logger) *Parser {
	return &Parser{
		name:   name,
		cursor: NewCursor(tokens),
		ctx:    ctx,
		logger: logger,
	}
}

// Parse parses the token list with a silent parser.
func Parse(tokens []*Token) (*Program, error) {
	return NewParser(context.Background(), "", tokens, nil).Parse()
}

// Parse verifies the token list against the grammar and returns the program.
// A parser can only be used once.
func (p *Parser) Parse() (*Program, error) {
	if p.program != nil {
		return nil, &ParseError{Msg: "parser already used"}
	}
	if err := p.parseHeader(); err != nil {
		return nil, err
	}
	p.program = newProgram()
	if err := p.parseBoundary(""); err != nil {
		return nil, err
	}

	for p.cursor.Match(Instruction) {
		inst, err := p.parseInstruction()
		if err != nil {
			return nil, err
		}
		if err := p.parseBoundary(inst.Opcode); err != nil {
			return nil, err
		}
	}
	if !p.cursor.IsAtEnd() {
		tok := p.cursor.Current()
		p.error(tok, "expected instruction: found %s", describe(tok))
		return nil, &SyntaxError{Token: tok, Expected: "instruction"}
	}

	p.debug("parsed %d instructions", len(p.program.Instructions))
	return p.program, nil
}

// parseHeader consumes the header token.
func (p *Parser) parseHeader() error {
	if p.cursor.Accept(Header) != nil {
		return nil
	}
	tok := p.cursor.Current()
	return &HeaderError{Position: tok.Position, Found: tok.Original}
}

// parseBoundary consumes the line break after an instruction.
// End of input is accepted but not consumed.
func (p *Parser) parseBoundary(opcode string) error {
	if p.cursor.Accept(NewlineMarker) != nil || p.cursor.IsAtEnd() {
		return nil
	}
	tok := p.cursor.Current()
	p.error(tok, "expected end of line: found %s", describe(tok))
	return &SyntaxError{Token: tok, Opcode: opcode, Expected: "end of line"}
}

// parseInstruction parses one instruction and its operands.
// The instruction is added to the program, with the next order number,
// before its operands are parsed.
func (p *Parser) parseInstruction() (*Instr, error) {
	tok := p.cursor.Advance()
	sig, ok := LookupSignature(tok.Value)
	if !ok {
		return nil, &ParseError{Msg: fmt.Sprintf("%d:%d: no operands defined for %q", tok.Line, tok.Column, tok.Value)}
	}
	inst := p.program.addInstruction(tok.Value)

	for _, operand := range sig {
		arg, err := p.parseOperand(inst.Opcode, operand)
		if err != nil {
			return nil, err
		}
		inst.addArgument(arg)
	}

	return inst, nil
}

// parseOperand consumes the token for one operand position.
func (p *Parser) parseOperand(opcode string, operand Operand) (*Token, error) {
	var tok *Token
	switch operand {
	case OperandVar:
		tok = p.cursor.Accept(Variable)
	case OperandSymb:
		tok = p.cursor.AcceptOneOf(symbKinds...)
	case OperandLabel:
		return p.parseLabel(opcode)
	case OperandType:
		tok = p.cursor.Accept(Type)
	default:
		return nil, &ParseError{Msg: fmt.Sprintf("%s: unknown operand class %d", opcode, operand)}
	}
	if tok == nil {
		found := p.cursor.Current()
		p.error(found, "%s: expected %s: found %s", opcode, operand, describe(found))
		return nil, &SyntaxError{Token: found, Opcode: opcode, Expected: operand.String()}
	}
	return tok, nil
}

// parseLabel consumes a label. A Type or Instruction token is a valid
// label name, so it is retagged as a Label and accepted.
func (p *Parser) parseLabel(opcode string) (*Token, error) {
	tok := p.cursor.Current()
	if tok.IsOneOf(Type, Instruction) {
		if err := p.cursor.RetagCurrentAsLabel(); err != nil {
			return nil, &ParseError{Msg: opcode, Err: err}
		}
		p.debug("%d:%d: %s: retagged %q as label", tok.Line, tok.Column, opcode, tok.Original)
	}
	if tok = p.cursor.Accept(Label); tok == nil {
		found := p.cursor.Current()
		p.error(found, "%s: expected label: found %s", opcode, describe(found))
		return nil, &SyntaxError{Token: found, Opcode: opcode, Expected: OperandLabel.String()}
	}
	return tok, nil
}

func (p *Parser) debug(format string, args ...any) {
	if p.logger == nil {
		return
	}
	p.logger.Debug(fmt.Sprintf("%s: %s", p.name, fmt.Sprintf(format, args...)))
}

func (p *Parser) error(tok *Token, format string, args ...any) {
	if p.logger == nil {
		return
	}
	p.logger.Error(fmt.Sprintf("%s:%d:%d: %s", p.name, tok.Line, tok.Column, fmt.Sprintf(format, args...)))
}
