// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

// Package expression evaluates template/filter expressions against a
// variable snapshot. The expression grammar itself is delegated to an
// Engine; filter dispatch goes through an injected FilterRegistry.
package expression

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/k14s/hostexpr/pkg/orderedmap"
	"github.com/k14s/hostexpr/pkg/spell"
	"github.com/k14s/hostexpr/pkg/value"
)

type Evaluator struct {
	engine   Engine
	registry FilterRegistry
}

func NewEvaluator(engine Engine, registry FilterRegistry) *Evaluator {
	return &Evaluator{engine: engine, registry: registry}
}

func (e *Evaluator) EngineName() string { return e.engine.Name() }

// Evaluate runs one expression against a snapshot of variables and
// returns a normalized Value or an *EvalError. It never panics and
// never touches the snapshot's originals (vars is expected to already
// be a deep copy; values are additionally down-converted to plain maps
// before the engine sees them).
func (e *Evaluator) Evaluate(expr string, vars map[string]interface{}) (interface{}, *EvalError) {
	normalized := NormalizeExpression(expr)
	if len(normalized) == 0 {
		return nil, NewParseError("empty expression")
	}

	plainVars := map[string]interface{}{}
	for name, val := range vars {
		plainVars[name] = orderedmap.Conversion{Object: val}.AsUnordered()
	}

	segments := splitPipeline(normalized)

	result, err := e.evalSegment(segments[0], plainVars)
	if err != nil {
		return nil, err
	}

	for _, seg := range segments[1:] {
		result, err = e.applyFilter(seg, result, plainVars)
		if err != nil {
			return nil, err
		}
	}

	normalizedResult, normErr := value.Normalize(result)
	if normErr != nil {
		return nil, NewEvalError(fmt.Sprintf("result not representable: %s", normErr))
	}
	return normalizedResult, nil
}

func (e *Evaluator) evalSegment(seg segment, vars map[string]interface{}) (interface{}, *EvalError) {
	result, err := e.engine.Eval(seg.text, vars)
	if err != nil {
		return nil, asEvalError(err).WithSpan(seg.start, seg.end())
	}
	return result, nil
}

var filterCallRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*(?:\((.*)\))?$`)

func (e *Evaluator) applyFilter(seg segment, val interface{}, vars map[string]interface{}) (interface{}, *EvalError) {
	match := filterCallRe.FindStringSubmatch(strings.TrimSpace(seg.text))
	if match == nil {
		err := NewParseError(fmt.Sprintf("expected a filter invocation, got '%s'", strings.TrimSpace(seg.text)))
		return nil, err.WithSpan(seg.start, seg.end())
	}

	name := match[1]
	filter, found := e.registry.Lookup(name)
	if !found {
		msg := fmt.Sprintf("undefined filter '%s'", name)
		if nearest := spell.Nearest(name, e.registry.Names()); len(nearest) > 0 {
			msg += fmt.Sprintf(" (did you mean '%s'?)", nearest)
		}
		return nil, NewEvalError(msg).WithSpan(seg.start, seg.end()).WithFilter(name)
	}

	var args []interface{}
	if len(match[2]) > 0 {
		// arguments are themselves expressions; the engine parses them
		// as a list literal
		argsVal, err := e.engine.Eval("["+match[2]+"]", vars)
		if err != nil {
			return nil, asEvalError(err).WithSpan(seg.start, seg.end()).WithFilter(name)
		}
		argsList, ok := argsVal.([]interface{})
		if !ok {
			return nil, NewEvalError("filter arguments did not evaluate to a list").WithSpan(seg.start, seg.end()).WithFilter(name)
		}
		args = argsList
	}

	result, err := filter(val, args)
	if err != nil {
		return nil, asEvalError(err).WithSpan(seg.start, seg.end()).WithFilter(name)
	}
	return result, nil
}

func asEvalError(err error) *EvalError {
	if evalErr, ok := err.(*EvalError); ok {
		return evalErr
	}
	return NewEvalError(err.Error())
}

// NormalizeExpression unwraps input already wrapped as '{{ ... }}'
// (the braces are presentation, the inside is the expression);
// anything else is taken as the expression itself.
func NormalizeExpression(expr string) string {
	stripped := strings.TrimSpace(expr)
	if strings.HasPrefix(stripped, "{{") && strings.HasSuffix(stripped, "}}") && len(stripped) >= 4 {
		return strings.TrimSpace(stripped[2 : len(stripped)-2])
	}
	return stripped
}

type segment struct {
	text  string
	start int // offset within the normalized expression
}

func (s segment) end() int { return s.start + len(s.text) }

// splitPipeline breaks an expression into a head and filter segments
// at top-level '|' characters. Pipes inside quotes, brackets or parens
// belong to the engine's grammar and are left alone.
func splitPipeline(expr string) []segment {
	var segments []segment
	depth := 0
	var quote byte
	segStart := 0

	for i := 0; i < len(expr); i++ {
		c := expr[i]

		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}

		switch c {
		case '\'', '"':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '|':
			if depth == 0 {
				segments = append(segments, segment{expr[segStart:i], segStart})
				segStart = i + 1
			}
		}
	}

	segments = append(segments, segment{expr[segStart:], segStart})
	return segments
}
