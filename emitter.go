// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ippc

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// XMLDeclaration is written before the program element.
const XMLDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

// Emitter renders a Program as XML.
//
// The output is byte-stable: attributes and children are always written
// in the same order. Argument values are written as-is since the lexer
// has already escaped them.
type Emitter struct {
	indent      string
	declaration bool
}

type EmitterOption func(e *Emitter) error

// WithIndent sets the indentation used for each nesting level.
// An empty indent writes the whole document on one line.
func WithIndent(indent string) EmitterOption {
	return func(e *Emitter) error {
		for _, ch := range []byte(indent) {
			if ch != ' ' && ch != '\t' {
				return fmt.Errorf("indent: invalid character %q", ch)
			}
		}
		e.indent = indent
		return nil
	}
}

// WithDeclaration controls whether the XML declaration is written.
func WithDeclaration(flag bool) EmitterOption {
	return func(e *Emitter) error {
		e.declaration = flag
		return nil
	}
}

// NewEmitter returns an emitter that writes two space indents and
// the XML declaration unless the options say otherwise.
func NewEmitter(options ...EmitterOption) (*Emitter, error) {
	e := &Emitter{
		indent:      "  ",
		declaration: true,
	}
	for _, option := range options {
		if err := option(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Marshal renders the program with the default emitter.
func Marshal(p *Program) ([]byte, error) {
	e, err := NewEmitter()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := e.Emit(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Emit writes the document to w.
// Nothing is written if the program is invalid.
func (e *Emitter) Emit(w io.Writer, p *Program) error {
	if p == nil {
		return fmt.Errorf("emit: nil program")
	} else if err := p.Validate(); err != nil {
		return fmt.Errorf("emit: %w", err)
	}

	var buf bytes.Buffer
	if e.declaration {
		buf.WriteString(XMLDeclaration)
		e.newline(&buf)
	}

	buf.WriteString(`<program language="`)
	buf.WriteString(Escape(p.Language))
	buf.WriteByte('"')
	if len(p.Instructions) == 0 {
		buf.WriteString("/>")
		e.newline(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	}
	buf.WriteByte('>')
	e.newline(&buf)

	for _, inst := range p.Instructions {
		e.emitInstruction(&buf, inst)
	}

	buf.WriteString("</program>")
	e.newline(&buf)

	_, err := w.Write(buf.Bytes())
	return err
}

func (e *Emitter) emitInstruction(buf *bytes.Buffer, inst *Instr) {
	buf.WriteString(e.indent)
	buf.WriteString(`<instruction order="`)
	buf.WriteString(strconv.Itoa(inst.Order))
	buf.WriteString(`" opcode="`)
	buf.WriteString(inst.Opcode)
	buf.WriteByte('"')
	if len(inst.Args) == 0 {
		buf.WriteString("/>")
		e.newline(buf)
		return
	}
	buf.WriteByte('>')
	e.newline(buf)

	for _, arg := range inst.Args {
		name := "arg" + strconv.Itoa(arg.Position)
		buf.WriteString(e.indent)
		buf.WriteString(e.indent)
		buf.WriteByte('<')
		buf.WriteString(name)
		buf.WriteString(` type="`)
		buf.WriteString(string(arg.Type))
		buf.WriteByte('"')
		if arg.Value == "" {
			buf.WriteString("/>")
		} else {
			buf.WriteByte('>')
			buf.WriteString(arg.Value)
			buf.WriteString("</")
			buf.WriteString(name)
			buf.WriteByte('>')
		}
		e.newline(buf)
	}

	buf.WriteString(e.indent)
	buf.WriteString("</instruction>")
	e.newline(buf)
}

// newline ends a line when the output is indented.
// The single line form has no line breaks at all.
func (e *Emitter) newline(buf *bytes.Buffer) {
	if e.indent != "" {
		buf.WriteByte('\n')
	}
}

// Validate checks the invariants of the document: orders are 1..N without
// gaps, each instruction has at most three arguments numbered 1..n,
// and every opcode and argument type is known.
func (p *Program) Validate() error {
	for n, inst := range p.Instructions {
		if inst == nil {
			return fmt.Errorf("instruction %d: nil", n+1)
		} else if inst.Order != n+1 {
			return fmt.Errorf("instruction %d: order %d", n+1, inst.Order)
		} else if _, ok := LookupSignature(inst.Opcode); !ok {
			return fmt.Errorf("instruction %d: unknown opcode %q", inst.Order, inst.Opcode)
		} else if len(inst.Args) > 3 {
			return fmt.Errorf("instruction %d: %d arguments", inst.Order, len(inst.Args))
		}
		for i, arg := range inst.Args {
			if arg.Position != i+1 {
				return fmt.Errorf("instruction %d: argument %d: position %d", inst.Order, i+1, arg.Position)
			}
			switch arg.Type {
			case ArgVar, ArgLabel, ArgTypeName, ArgNil, ArgBool, ArgInt, ArgString:
			default:
				return fmt.Errorf("instruction %d: argument %d: unknown type %q", inst.Order, i+1, arg.Type)
			}
		}
	}
	return nil
}
