// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ippc_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mdhender/ippc"
)

func TestMarshal_Move(t *testing.T) {
	program := mustCompile(t, ".IPPcode21\nMOVE GF@x int@5\n")
	got, err := ippc.Marshal(program)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `<?xml version="1.0" encoding="UTF-8"?>
<program language="IPPcode21">
  <instruction order="1" opcode="MOVE">
    <arg1 type="var">GF@x</arg1>
    <arg2 type="int">5</arg2>
  </instruction>
</program>
`
	if string(got) != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestMarshal_SelfClosing(t *testing.T) {
	program := mustCompile(t, ".IPPcode21\nBREAK\nWRITE string@\n")
	got, err := ippc.Marshal(program)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, line := range []string{
		`  <instruction order="1" opcode="BREAK"/>` + "\n",
		`    <arg1 type="string"/>` + "\n",
	} {
		if !bytes.Contains(got, []byte(line)) {
			t.Errorf("output is missing %q:\n%s", line, got)
		}
	}
}

func TestEmit_Options(t *testing.T) {
	program := mustCompile(t, ".IPPcode21\nDEFVAR GF@x\n")
	for _, tc := range []struct {
		name    string
		options []ippc.EmitterOption
		want    string
	}{
		{
			name:    "tabs without declaration",
			options: []ippc.EmitterOption{ippc.WithIndent("\t"), ippc.WithDeclaration(false)},
			want:    "<program language=\"IPPcode21\">\n\t<instruction order=\"1\" opcode=\"DEFVAR\">\n\t\t<arg1 type=\"var\">GF@x</arg1>\n\t</instruction>\n</program>\n",
		},
		{
			name:    "single line",
			options: []ippc.EmitterOption{ippc.WithIndent("")},
			want:    `<?xml version="1.0" encoding="UTF-8"?><program language="IPPcode21"><instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@x</arg1></instruction></program>`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e, err := ippc.NewEmitter(tc.options...)
			if err != nil {
				t.Fatalf("NewEmitter: %v", err)
			}
			var buf bytes.Buffer
			if err := e.Emit(&buf, program); err != nil {
				t.Fatalf("emit: %v", err)
			}
			if got := buf.String(); got != tc.want {
				t.Errorf("got:\n%q\nwant:\n%q", got, tc.want)
			}
		})
	}
}

func TestEmit_EmptyProgramWithoutDeclaration(t *testing.T) {
	e, err := ippc.NewEmitter(ippc.WithDeclaration(false))
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}
	var buf bytes.Buffer
	if err := e.Emit(&buf, mustCompile(t, ".IPPcode21")); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if got, want := buf.String(), "<program language=\"IPPcode21\"/>\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNewEmitter_RejectsBadIndent(t *testing.T) {
	for _, indent := range []string{"--", " x", "\n"} {
		if _, err := ippc.NewEmitter(ippc.WithIndent(indent)); err == nil {
			t.Errorf("WithIndent(%q): got nil error", indent)
		}
	}
}

func TestEmit_InvalidProgram(t *testing.T) {
	for _, tc := range []struct {
		name    string
		program *ippc.Program
	}{
		{"nil program", nil},
		{"order gap", &ippc.Program{Language: ippc.Language, Instructions: []*ippc.Instr{
			{Order: 2, Opcode: "BREAK"},
		}}},
		{"unknown opcode", &ippc.Program{Language: ippc.Language, Instructions: []*ippc.Instr{
			{Order: 1, Opcode: "NOPE"},
		}}},
		{"argument position", &ippc.Program{Language: ippc.Language, Instructions: []*ippc.Instr{
			{Order: 1, Opcode: "DEFVAR", Args: []ippc.Argument{{Position: 2, Type: ippc.ArgVar, Value: "GF@x"}}},
		}}},
		{"argument type", &ippc.Program{Language: ippc.Language, Instructions: []*ippc.Instr{
			{Order: 1, Opcode: "DEFVAR", Args: []ippc.Argument{{Position: 1, Type: "float", Value: "1.0"}}},
		}}},
		{"too many arguments", &ippc.Program{Language: ippc.Language, Instructions: []*ippc.Instr{
			{Order: 1, Opcode: "ADD", Args: []ippc.Argument{
				{Position: 1, Type: ippc.ArgVar, Value: "GF@a"},
				{Position: 2, Type: ippc.ArgInt, Value: "1"},
				{Position: 3, Type: ippc.ArgInt, Value: "2"},
				{Position: 4, Type: ippc.ArgInt, Value: "3"},
			}},
		}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e, err := ippc.NewEmitter()
			if err != nil {
				t.Fatalf("NewEmitter: %v", err)
			}
			var buf bytes.Buffer
			if err := e.Emit(&buf, tc.program); err == nil {
				t.Fatalf("got nil error")
			}
			if buf.Len() != 0 {
				t.Errorf("wrote %d bytes for an invalid program", buf.Len())
			}
		})
	}
}

func TestPrintDiagnostic(t *testing.T) {
	src := []byte(".IPPcode21\nWRITE int@x\n")
	_, err := ippc.Compile(t.Context(), "test.src", src, nil)
	diag, ok := ippc.DiagnosticFor(err)
	if !ok {
		t.Fatalf("DiagnosticFor(%v): no diagnostic", err)
	}
	var buf bytes.Buffer
	ippc.PrintDiagnostic(&buf, diag, "test.src", src)
	want := strings.Join([]string{
		`test.src:2:7: error: invalid word "int@x"`,
		`    WRITE int@x`,
		`          ^~~~~`,
		`    note: integer constants are an optional sign followed by decimal digits`,
		``,
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintDiagnostic_SyntaxError(t *testing.T) {
	src := []byte(".IPPcode21\nADD GF@x GF@y\n")
	_, err := ippc.Compile(t.Context(), "test.src", src, nil)
	diag, ok := ippc.DiagnosticFor(err)
	if !ok {
		t.Fatalf("DiagnosticFor(%v): no diagnostic", err)
	}
	if diag.Message != "ADD: expected symb" {
		t.Errorf("message: got %q, want %q", diag.Message, "ADD: expected symb")
	}
	var buf bytes.Buffer
	ippc.PrintDiagnostic(&buf, diag, "test.src", src)
	// the missing operand is the line break, which gets a bare caret
	if got, want := buf.String(), "test.src:2:14: error: ADD: expected symb\n    ADD GF@x GF@y\n                 ^\n"; got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
	if _, ok := ippc.DiagnosticFor(&ippc.ParseError{Msg: "x"}); ok {
		t.Errorf("ParseError: got a diagnostic")
	}
}
