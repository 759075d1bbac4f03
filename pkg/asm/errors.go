package asm

import "fmt"

// ParseError reports a source line that matches no grammar rule.
// Line is 0-based.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error on line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UnresolvedLabelError reports a reference to a label that was never
// declared, or was already consumed by a destructive reference.
type UnresolvedLabelError struct {
	Label   string
	Address int
}

func (e *UnresolvedLabelError) Error() string {
	return fmt.Sprintf("label not found: %q (referenced at 0x%02X)", e.Label, e.Address)
}

// DuplicateLabelError is only produced when strict labels are enabled.
type DuplicateLabelError struct {
	Label  string
	First  int
	Second int
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("duplicate label %q at 0x%02X, first declared at 0x%02X", e.Label, e.Second, e.First)
}

// ProgramTooLargeError reports a program with more tokens than addressable
// memory.
type ProgramTooLargeError struct {
	Size  int
	Limit int
}

func (e *ProgramTooLargeError) Error() string {
	return fmt.Sprintf("program too large: %d bytes > %d bytes", e.Size, e.Limit)
}
