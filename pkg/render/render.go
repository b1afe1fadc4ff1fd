// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

// Package render turns evaluation outcomes into display text. Output
// is deterministic: equal Values render to byte-identical text, and
// mapping keys appear in stored order.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/k14s/hostexpr/pkg/expression"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatYAMLNice Format = "yaml-nice"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML, FormatYAMLNice:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format '%s' (expected json, yaml or yaml-nice)", s)
	}
}

type Renderer struct {
	format Format
}

func NewRenderer(format Format) *Renderer {
	return &Renderer{format: format}
}

func (r *Renderer) Format() Format          { return r.format }
func (r *Renderer) SetFormat(format Format) { r.format = format }

// Value renders a single Value. Scalars come out on one line in their
// literal form; sequences and mappings in the configured structured
// format.
func (r *Renderer) Value(val interface{}) string {
	switch typedVal := val.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(typedVal)
	case int64:
		return strconv.FormatInt(typedVal, 10)
	case float64:
		return strconv.FormatFloat(typedVal, 'g', -1, 64)
	case string:
		return typedVal
	}

	switch r.format {
	case FormatYAML:
		return r.yaml(val, 2)
	case FormatYAMLNice:
		return r.yaml(val, 4)
	default:
		return r.json(val)
	}
}

func (r *Renderer) json(val interface{}) string {
	bs, err := json.MarshalIndent(val, "", "  ")
	if err != nil {
		return fmt.Sprintf("ERROR: failed to render as JSON: %s", err)
	}
	return string(bs)
}

func (r *Renderer) yaml(val interface{}, indent int) string {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	err := enc.Encode(val)
	if err != nil {
		return fmt.Sprintf("ERROR: failed to render as YAML: %s", err)
	}
	enc.Close()
	return strings.TrimSuffix(buf.String(), "\n")
}

// Error renders an evaluation failure as one block: the message, and
// when a span is known, the expression with the offending part
// underlined. Location information is never dropped.
func (r *Renderer) Error(evalErr *expression.EvalError, expr string) string {
	lines := []string{fmt.Sprintf("Error: %s", evalErr.Error())}

	if evalErr.Span != nil {
		normalized := expression.NormalizeExpression(expr)
		start, end := evalErr.Span.Start, evalErr.Span.End
		if start >= 0 && end <= len(normalized) && start < end {
			lines = append(lines,
				fmt.Sprintf("  in: %s", normalized),
				fmt.Sprintf("      %s%s", strings.Repeat(" ", start), strings.Repeat("^", end-start)))
		} else {
			lines = append(lines, fmt.Sprintf("  at offsets %d..%d", start, end))
		}
	}

	return strings.Join(lines, "\n")
}

// Outcome renders either side of an evaluation result.
func (r *Renderer) Outcome(val interface{}, evalErr *expression.EvalError, expr string) string {
	if evalErr != nil {
		return r.Error(evalErr, expr)
	}
	return r.Value(val)
}
