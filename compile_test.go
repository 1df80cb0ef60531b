// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ippc_test

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/mdhender/ippc"
)

var updateGolden = flag.Bool("update-golden", false, "update golden files")

const testdataPath = "testdata"

func TestCompileXML_Golden(t *testing.T) {
	testCases := []struct {
		name       string
		inputFile  string
		goldenFile string
	}{
		{
			name:       "empty",
			inputFile:  "empty.src",
			goldenFile: "empty.golden.xml",
		},
		{
			name:       "loop",
			inputFile:  "loop.src",
			goldenFile: "loop.golden.xml",
		},
		{
			name:       "escapes",
			inputFile:  "escapes.src",
			goldenFile: "escapes.golden.xml",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			inputPath := filepath.Join(testdataPath, tc.inputFile)
			goldenPath := filepath.Join(testdataPath, tc.goldenFile)

			input, err := os.ReadFile(inputPath)
			if err != nil {
				t.Fatalf("read input: %v", err)
			}

			got, err := ippc.CompileXML(context.Background(), inputPath, input, nil)
			if err != nil {
				t.Fatalf("CompileXML: %v", err)
			}

			if *updateGolden {
				if err := os.WriteFile(goldenPath, got, 0644); err != nil {
					t.Fatalf("failed to update golden file: %v", err)
				}
				t.Logf("updated golden file: %s", goldenPath)
				return
			}

			want, err := os.ReadFile(goldenPath)
			if err != nil {
				t.Fatalf("failed to read golden file %q: %v\nRun with -update-golden to create it", goldenPath, err)
			}

			if !bytes.Equal(got, want) {
				t.Errorf("output differs from golden file %q\nRun with -update-golden to update", goldenPath)
				t.Errorf("got:\n%s", got)
				t.Errorf("want:\n%s", want)
			}
		})
	}
}

func TestCompileXML_NothingOnFailure(t *testing.T) {
	for _, input := range []string{
		"",
		".IPPcode21\nMOVE GF@x\n",
		".IPPcode21\nWRITE int@x\n",
	} {
		got, err := ippc.CompileXML(context.Background(), "test", []byte(input), nil)
		if err == nil {
			t.Errorf("%q: got nil error", input)
		}
		if got != nil {
			t.Errorf("%q: got output %q, want nil", input, got)
		}
	}
}

func TestCompileXML_BadOption(t *testing.T) {
	_, err := ippc.CompileXML(context.Background(), "test", []byte(".IPPcode21"), nil, ippc.WithIndent("--"))
	if err == nil {
		t.Fatalf("WithIndent(\"--\"): got nil error")
	}
}
