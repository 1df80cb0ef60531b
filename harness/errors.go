// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package harness

import (
	"errors"
	"fmt"
)

// ErrFile is returned when a test file cannot be read or created.
type ErrFile struct {
	Op   string // stat, read, create, walk
	Path string
	Err  error
}

func (e *ErrFile) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ErrFile) Unwrap() error {
	return e.Err
}

// ErrReturnCode is returned when a .rc file does not hold an integer.
type ErrReturnCode struct {
	Path string
	Text string
}

func (e *ErrReturnCode) Error() string {
	return fmt.Sprintf("%s: invalid return code %q", e.Path, e.Text)
}

// ErrXML is returned when a document cannot be compared.
type ErrXML struct {
	Which string // got, want
	Err   error
}

func (e *ErrXML) Error() string {
	return fmt.Sprintf("xml %s: %v", e.Which, e.Err)
}

func (e *ErrXML) Unwrap() error {
	return e.Err
}

// ErrStore is returned when a report cannot be saved.
type ErrStore struct {
	Op  string
	Err error
}

func (e *ErrStore) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *ErrStore) Unwrap() error {
	return e.Err
}

// Reason codes recorded on failed results.
const (
	ReasonExitCode   = "EXIT_CODE"
	ReasonOutput     = "OUTPUT_MISMATCH"
	ReasonFile       = "FILE"
	ReasonReturnCode = "BAD_RETURN_CODE"
	ReasonXML        = "BAD_XML"
	ReasonUnknown    = "UNKNOWN"
)

// ReasonCode returns the reason code for an error raised while running a case.
func ReasonCode(err error) string {
	var fileErr *ErrFile
	var rcErr *ErrReturnCode
	var xmlErr *ErrXML
	switch {
	case errors.As(err, &fileErr):
		return ReasonFile
	case errors.As(err, &rcErr):
		return ReasonReturnCode
	case errors.As(err, &xmlErr):
		return ReasonXML
	default:
		return ReasonUnknown
	}
}
