// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

// Package starlarkeval hosts a Starlark grammar behind the
// expression.Engine interface, as an alternative to the default jinja
// engine. Registry filters are exposed as plain functions (Starlark
// has no pipe syntax), so 'items | length' and 'length(items)' both
// work once the session's pipeline splitting has run.
package starlarkeval

import (
	"fmt"

	"github.com/k14s/starlark-go/resolve"
	"github.com/k14s/starlark-go/starlark"
	"github.com/k14s/starlark-go/syntax"

	"github.com/k14s/hostexpr/pkg/expression"
)

type Engine struct {
	registry expression.FilterRegistry
}

var _ expression.Engine = Engine{}

func NewEngine(registry expression.FilterRegistry) Engine {
	return Engine{registry: registry}
}

func (e Engine) Name() string { return "starlark" }

func (e Engine) Eval(expr string, vars map[string]interface{}) (resultVal interface{}, resultErr error) {
	// Catch any panics; the scanner panics on some malformed inputs
	// instead of returning an error
	defer func() {
		if err := recover(); err != nil {
			if typedErr, ok := err.(error); ok {
				resultErr = classify(typedErr)
			} else {
				resultErr = expression.NewParseError(fmt.Sprintf("%s", err))
			}
		}
	}()

	env := starlark.StringDict{}

	for _, name := range e.registry.Names() {
		filter, _ := e.registry.Lookup(name)
		env[name] = starlark.NewBuiltin(name, e.builtin(name, filter))
	}

	for name, val := range vars {
		conv, err := NewGoValue(val).AsStarlarkValue()
		if err != nil {
			return nil, expression.NewEvalError(err.Error())
		}
		env[name] = conv
	}

	thread := &starlark.Thread{Name: "expr"}

	result, err := starlark.Eval(thread, "expr", expr, env)
	if err != nil {
		return nil, classify(err)
	}

	goVal, err := NewStarlarkValue(result).AsGoValue()
	if err != nil {
		return nil, expression.NewEvalError(err.Error())
	}
	return goVal, nil
}

func (e Engine) builtin(name string, filter expression.FilterFunc) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(thread *starlark.Thread, f *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if args.Len() < 1 {
			return starlark.None, fmt.Errorf("%s: expected at least one argument", name)
		}

		val, err := NewStarlarkValue(args.Index(0)).AsGoValue()
		if err != nil {
			return starlark.None, err
		}

		var filterArgs []interface{}
		for i := 1; i < args.Len(); i++ {
			arg, err := NewStarlarkValue(args.Index(i)).AsGoValue()
			if err != nil {
				return starlark.None, err
			}
			filterArgs = append(filterArgs, arg)
		}

		result, err := filter(val, filterArgs)
		if err != nil {
			return starlark.None, err
		}
		return NewGoValue(result).AsStarlarkValue()
	}
}

func classify(err error) *expression.EvalError {
	switch typedErr := err.(type) {
	case syntax.Error:
		return expression.NewParseError(typedErr.Msg)

	case resolve.ErrorList:
		if len(typedErr) > 0 {
			return expression.NewParseError(typedErr[0].Msg)
		}
		return expression.NewParseError(err.Error())

	case *starlark.EvalError:
		return expression.NewEvalError(typedErr.Msg)

	default:
		return expression.NewEvalError(err.Error())
	}
}
