// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

package expression_test

import (
	"testing"

	"github.com/k14s/hostexpr/pkg/expression"
	"github.com/k14s/hostexpr/pkg/expression/filters"
	"github.com/k14s/hostexpr/pkg/expression/jinja"
	"github.com/k14s/hostexpr/pkg/orderedmap"
	"github.com/k14s/hostexpr/pkg/value"
	"github.com/stretchr/testify/require"
)

func newEvaluator() *expression.Evaluator {
	return expression.NewEvaluator(jinja.NewEngine(), filters.NewDefaultRegistry())
}

func TestEvaluateVariableLookup(t *testing.T) {
	e := newEvaluator()

	result, evalErr := e.Evaluate("items", map[string]interface{}{
		"items": []interface{}{int64(1), int64(2), int64(3)},
	})
	require.Nil(t, evalErr)
	require.Equal(t, []interface{}{int64(1), int64(2), int64(3)}, result)
}

func TestEvaluateFilterChain(t *testing.T) {
	e := newEvaluator()
	vars := map[string]interface{}{
		"items": []interface{}{int64(1), int64(2), int64(3)},
	}

	result, evalErr := e.Evaluate("items | length", vars)
	require.Nil(t, evalErr)
	require.Equal(t, int64(3), result)

	result, evalErr = e.Evaluate("items | first", vars)
	require.Nil(t, evalErr)
	require.Equal(t, int64(1), result)

	result, evalErr = e.Evaluate("items | reverse | first", vars)
	require.Nil(t, evalErr)
	require.Equal(t, int64(3), result)
}

func TestEvaluateWrappedExpression(t *testing.T) {
	e := newEvaluator()
	vars := map[string]interface{}{
		"items": []interface{}{int64(1), int64(2), int64(3)},
	}

	result, evalErr := e.Evaluate("{{ items | length }}", vars)
	require.Nil(t, evalErr)
	require.Equal(t, int64(3), result)
}

func TestEvaluateFilterWithArgs(t *testing.T) {
	e := newEvaluator()
	vars := map[string]interface{}{
		"names": []interface{}{"a", "b"},
	}

	result, evalErr := e.Evaluate(`names | join(', ')`, vars)
	require.Nil(t, evalErr)
	require.Equal(t, "a, b", result)
}

// a pipe inside a string literal belongs to the expression, not the
// pipeline
func TestEvaluatePipeInsideString(t *testing.T) {
	e := newEvaluator()

	result, evalErr := e.Evaluate(`"a|b" | upper`, map[string]interface{}{})
	require.Nil(t, evalErr)
	require.Equal(t, "A|B", result)
}

func TestEvaluateUndefinedVariable(t *testing.T) {
	e := newEvaluator()

	_, evalErr := e.Evaluate("missing", map[string]interface{}{})
	require.NotNil(t, evalErr)
	require.Equal(t, expression.ErrKindEval, evalErr.Kind)
	require.Contains(t, evalErr.Msg, "missing")
}

func TestEvaluateUndefinedFilter(t *testing.T) {
	e := newEvaluator()
	vars := map[string]interface{}{
		"items": []interface{}{int64(1)},
	}

	_, evalErr := e.Evaluate("items | nonsense", vars)
	require.NotNil(t, evalErr)
	require.Equal(t, expression.ErrKindEval, evalErr.Kind)
	require.Equal(t, "nonsense", evalErr.Filter)
	require.NotNil(t, evalErr.Span)
	require.Contains(t, "items | nonsense"[evalErr.Span.Start:evalErr.Span.End], "nonsense")

	_, evalErr = e.Evaluate("items | lenght", vars)
	require.NotNil(t, evalErr)
	require.Contains(t, evalErr.Msg, "did you mean 'length'?")
}

func TestEvaluateFilterTypeError(t *testing.T) {
	e := newEvaluator()

	_, evalErr := e.Evaluate("5 | first", map[string]interface{}{})
	require.NotNil(t, evalErr)
	require.Equal(t, "first", evalErr.Filter)
}

func TestEvaluateParseError(t *testing.T) {
	e := newEvaluator()

	_, evalErr := e.Evaluate("items |", map[string]interface{}{})
	require.NotNil(t, evalErr)
	require.Equal(t, expression.ErrKindParse, evalErr.Kind)

	_, evalErr = e.Evaluate("", map[string]interface{}{})
	require.NotNil(t, evalErr)
	require.Equal(t, expression.ErrKindParse, evalErr.Kind)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	e := newEvaluator()
	vars := map[string]interface{}{
		"data": map[string]interface{}{"b": int64(2), "a": int64(1)},
	}

	first, evalErr := e.Evaluate("data", vars)
	require.Nil(t, evalErr)

	for i := 0; i < 5; i++ {
		again, evalErr := e.Evaluate("data", vars)
		require.Nil(t, evalErr)
		require.True(t, value.Equal(first, again))
		require.Equal(t, first.(*orderedmap.Map).Keys(), again.(*orderedmap.Map).Keys())
	}
}

func TestEvaluateDoesNotMutateVars(t *testing.T) {
	e := newEvaluator()

	m := orderedmap.NewMap()
	m.Set("key", []interface{}{int64(1)})
	vars := map[string]interface{}{"data": m}

	_, evalErr := e.Evaluate("data", vars)
	require.Nil(t, evalErr)

	val, _ := m.Get("key")
	require.Equal(t, []interface{}{int64(1)}, val)
}

func TestNormalizeExpression(t *testing.T) {
	for input, expected := range map[string]string{
		"items | length":           "items | length",
		"{{ items | length }}":     "items | length",
		"  {{ items }}  ":          "items",
		"{{}}":                     "",
		"plain":                    "plain",
	} {
		require.Equal(t, expected, expression.NormalizeExpression(input), "input: %q", input)
	}
}
