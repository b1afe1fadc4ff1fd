// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

package expression

// Engine evaluates a single pipe-free expression against a set of
// variables (plain Go values, not ordered maps). Implementations must
// be pure: no I/O, no process-wide state, result depends on the two
// inputs alone. Errors returned should be *EvalError; anything else is
// wrapped by the Evaluator.
type Engine interface {
	Name() string
	Eval(expr string, vars map[string]interface{}) (interface{}, error)
}

// FilterFunc transforms a value. val and args are plain Go values;
// returned errors surface as *EvalError tagged with the filter name.
type FilterFunc func(val interface{}, args []interface{}) (interface{}, error)

// FilterRegistry is the capability interface hosting externally
// defined filter semantics. The Evaluator dispatches every pipe
// segment through it, so an alternate filter set can be swapped in
// without touching the session loop.
type FilterRegistry interface {
	Lookup(name string) (FilterFunc, bool)
	Names() []string
}
