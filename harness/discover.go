// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package harness

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Case is a single test: a source file and the files that describe
// the expected result. The sibling files may not exist.
type Case struct {
	Name       string // base name without the extension, e.g. "read_test"
	Dir        string
	Source     string // Name.src
	Input      string // Name.in, extra command line arguments
	Output     string // Name.out, the expected document
	ReturnCode string // Name.rc, the expected exit code
}

// NewCase returns the case for a source path ending in ".src".
func NewCase(path string) Case {
	dir, file := filepath.Split(path)
	name := strings.TrimSuffix(file, ".src")
	stem := filepath.Join(dir, name)
	return Case{
		Name:       name,
		Dir:        filepath.Clean(dir),
		Source:     path,
		Input:      stem + ".in",
		Output:     stem + ".out",
		ReturnCode: stem + ".rc",
	}
}

// Discover returns the cases found in root, sorted by source path.
// Subdirectories are searched only when recursive is set.
func Discover(fsys afero.Fs, root string, recursive bool) ([]Case, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, &ErrFile{Op: "stat", Path: root, Err: err}
	} else if !info.IsDir() {
		return nil, &ErrFile{Op: "stat", Path: root, Err: fmt.Errorf("not a directory")}
	}

	var cases []Case
	err = afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".src" {
			cases = append(cases, NewCase(path))
		}
		return nil
	})
	if err != nil {
		return nil, &ErrFile{Op: "walk", Path: root, Err: err}
	}

	sort.Slice(cases, func(i, j int) bool {
		return cases[i].Source < cases[j].Source
	})
	return cases, nil
}
