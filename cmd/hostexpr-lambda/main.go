// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/k14s/hostexpr/pkg/expression"
	"github.com/k14s/hostexpr/pkg/expression/filters"
	"github.com/k14s/hostexpr/pkg/expression/jinja"
	"github.com/k14s/hostexpr/pkg/expression/starlarkeval"
	"github.com/k14s/hostexpr/pkg/hostvars"
	"github.com/k14s/hostexpr/pkg/render"
	"github.com/k14s/hostexpr/pkg/store"
)

type EvalRequest struct {
	Data       string `json:"data"`
	Expression string `json:"expression"`
	Engine     string `json:"engine,omitempty"`
	Format     string `json:"format,omitempty"`
}

type EvalResponse struct {
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

func handle(_ context.Context, req EvalRequest) (EvalResponse, error) {
	if len(req.Expression) == 0 {
		return EvalResponse{Error: "expected non-empty expression"}, nil
	}

	vars, names, err := hostvars.LoadSource(hostvars.NewBytesSource("request data", []byte(req.Data)))
	if err != nil {
		return EvalResponse{Error: err.Error()}, nil
	}

	registry := filters.NewDefaultRegistry()

	var engine expression.Engine
	switch req.Engine {
	case "", "jinja":
		engine = jinja.NewEngine()
	case "starlark":
		engine = starlarkeval.NewEngine(registry)
	default:
		return EvalResponse{Error: fmt.Sprintf("unknown engine '%s'", req.Engine)}, nil
	}

	format := req.Format
	if len(format) == 0 {
		format = "json"
	}
	parsedFormat, err := render.ParseFormat(format)
	if err != nil {
		return EvalResponse{Error: err.Error()}, nil
	}
	renderer := render.NewRenderer(parsedFormat)

	eval := expression.NewEvaluator(engine, registry)
	st := store.NewStoreWithVars(vars, names)

	result, evalErr := eval.Evaluate(req.Expression, st.Snapshot())
	if evalErr != nil {
		return EvalResponse{Error: renderer.Error(evalErr, req.Expression)}, nil
	}

	return EvalResponse{Output: renderer.Value(result)}, nil
}

func main() {
	lambda.Start(handle)
}
