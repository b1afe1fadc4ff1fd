// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/k14s/hostexpr/pkg/cmd/ui"
	"github.com/k14s/hostexpr/pkg/hostvars"
	"github.com/k14s/hostexpr/pkg/render"
	"github.com/k14s/hostexpr/pkg/store"
)

type EvalOptions struct {
	ui ui.UI

	File       string
	Expression string
	Engine     string
	Format     string
}

func NewEvalOptions(u ui.UI) *EvalOptions {
	return &EvalOptions{ui: u}
}

func NewEvalCmd(o *EvalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a single expression against host variables and exit",
		Example: `
  # Look up a nested value
  hostexpr eval -f hostvars.yml -e 'ansible_facts.hostname'

  # Apply filters
  hostexpr eval -f vars/ -e 'groups.web | sort | join(",")' --format yaml`,
		RunE: func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVarP(&o.File, "file", "f", "", "Host variables: a YAML/JSON file, a directory of such files, or '-' for stdin")
	cmd.Flags().StringVarP(&o.Expression, "expression", "e", "", "Expression to evaluate")
	cmd.Flags().StringVar(&o.Engine, "engine", "jinja", "Expression engine: jinja or starlark")
	cmd.Flags().StringVar(&o.Format, "format", "json", "Output format: json, yaml or yaml-nice")
	return cmd
}

func (o *EvalOptions) Run() error {
	if len(o.File) == 0 {
		return fmt.Errorf("expected host variables source (use -f)")
	}
	if len(o.Expression) == 0 {
		return fmt.Errorf("expected expression (use -e)")
	}

	vars, names, err := hostvars.Load(o.File, os.Stdin)
	if err != nil {
		return err
	}

	eval, err := newEvaluator(o.Engine)
	if err != nil {
		return err
	}

	format, err := render.ParseFormat(o.Format)
	if err != nil {
		return err
	}
	renderer := render.NewRenderer(format)

	st := store.NewStoreWithVars(vars, names)

	result, evalErr := eval.Evaluate(o.Expression, st.Snapshot())
	if evalErr != nil {
		o.ui.Printf("%s\n", renderer.Error(evalErr, o.Expression))
		return fmt.Errorf("evaluating expression")
	}

	o.ui.Printf("%s\n", renderer.Value(result))
	return nil
}
