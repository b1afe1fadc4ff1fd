// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

// Package jinja adapts the jinja-go expression grammar as an
// expression.Engine. This is the default engine: it implements the
// same expression semantics as the automation engine's templating
// language (operators, truthiness, attribute/subscript access).
package jinja

import (
	"strings"

	jinjago "github.com/AlexanderGrooff/jinja-go"

	"github.com/k14s/hostexpr/pkg/expression"
)

type Engine struct{}

var _ expression.Engine = Engine{}

func NewEngine() Engine { return Engine{} }

func (e Engine) Name() string { return "jinja" }

func (e Engine) Eval(expr string, vars map[string]interface{}) (interface{}, error) {
	result, err := jinjago.ParseAndEvaluate(expr, vars)
	if err != nil {
		return nil, classify(err)
	}
	return result, nil
}

// jinja-go reports the failing phase as a message prefix; that prefix
// is the parse/runtime distinction, so strip it and keep the kind.
func classify(err error) *expression.EvalError {
	msg := err.Error()

	for _, prefix := range []string{"lexical error: ", "syntax error: "} {
		if strings.HasPrefix(msg, prefix) {
			return expression.NewParseError(strings.TrimPrefix(msg, prefix))
		}
	}
	if strings.HasPrefix(msg, "evaluation error: ") {
		return expression.NewEvalError(strings.TrimPrefix(msg, "evaluation error: "))
	}
	return expression.NewEvalError(msg)
}
