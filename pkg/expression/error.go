// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

package expression

import "fmt"

type ErrKind int

const (
	// ErrKindParse covers malformed expression syntax.
	ErrKindParse ErrKind = iota
	// ErrKindEval covers runtime failures: undefined variables,
	// undefined filters, wrong argument types or arity, and errors
	// raised by filters themselves.
	ErrKindEval
)

// Span locates a failure within the submitted expression text
// (byte offsets, half-open).
type Span struct {
	Start int
	End   int
}

// EvalError is the only error type evaluation produces. It always has
// a message; the span and filter name are filled in when known.
type EvalError struct {
	Msg    string
	Kind   ErrKind
	Span   *Span
	Filter string
}

var _ error = &EvalError{}

func (e *EvalError) Error() string {
	prefix := "eval"
	if e.Kind == ErrKindParse {
		prefix = "parse"
	}
	if len(e.Filter) > 0 {
		return fmt.Sprintf("%s error: filter '%s': %s", prefix, e.Filter, e.Msg)
	}
	return fmt.Sprintf("%s error: %s", prefix, e.Msg)
}

func NewParseError(msg string) *EvalError {
	return &EvalError{Msg: msg, Kind: ErrKindParse}
}

func NewEvalError(msg string) *EvalError {
	return &EvalError{Msg: msg, Kind: ErrKindEval}
}

// WithSpan attaches a location unless one is already present.
func (e *EvalError) WithSpan(start, end int) *EvalError {
	if e.Span == nil {
		e.Span = &Span{Start: start, End: end}
	}
	return e
}

func (e *EvalError) WithFilter(name string) *EvalError {
	if len(e.Filter) == 0 {
		e.Filter = name
	}
	return e
}
