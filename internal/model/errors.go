package model

import (
	"errors"
	"fmt"
)

var errEmptyLabel = errors.New("empty label")

// ParseError reports a required ordinal that could not be extracted from an
// externally produced label. Row is the 1-based data row in File.
type ParseError struct {
	File  string
	Row   int
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse ordinal: file %s row %d: cannot parse agenda item from %q: %v", e.File, e.Row, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// AlignmentError reports an ordinal outside the known segment range [1, Segments]
type AlignmentError struct {
	File     string
	Row      int
	Value    string
	Ordinal  int
	Segments int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("align transcript: file %s row %d: agenda item %d out of range [1, %d] (label %q)",
		e.File, e.Row, e.Ordinal, e.Segments, e.Value)
}

// JudgeProtocolError reports judge output that is neither of the two side tokens.
// Pair is the 1-based position in the comparison schedule.
type JudgeProtocolError struct {
	Window string
	Pair   int
	Left   string
	Right  string
	Value  string
}

func (e *JudgeProtocolError) Error() string {
	return fmt.Sprintf("judge protocol: window %s pair %d: unexpected verdict %q (left %q, right %q)",
		e.Window, e.Pair, e.Value, e.Left, e.Right)
}

// IOError reports a missing or unreadable companion file for a meeting
type IOError struct {
	File string // meeting stem
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("meeting %s: companion file %s: %v", e.File, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
