// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/k14s/hostexpr/pkg/cmd/ui"
	"github.com/k14s/hostexpr/pkg/config"
	"github.com/k14s/hostexpr/pkg/expression"
	"github.com/k14s/hostexpr/pkg/expression/filters"
	"github.com/k14s/hostexpr/pkg/expression/jinja"
	"github.com/k14s/hostexpr/pkg/expression/starlarkeval"
	"github.com/k14s/hostexpr/pkg/hostvars"
	"github.com/k14s/hostexpr/pkg/render"
	"github.com/k14s/hostexpr/pkg/session"
	"github.com/k14s/hostexpr/pkg/store"
)

type ReplOptions struct {
	File       string
	Engine     string
	Format     string
	Prompt     string
	ConfigPath string
	Debug      bool
}

func NewReplOptions() *ReplOptions {
	return &ReplOptions{}
}

func NewReplCmd(o *ReplOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive expression session against loaded host variables",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVarP(&o.File, "file", "f", "", "Host variables: a YAML/JSON file, a directory of such files, or '-' for stdin")
	cmd.Flags().StringVar(&o.Engine, "engine", "", "Expression engine: jinja (default) or starlark")
	cmd.Flags().StringVar(&o.Format, "format", "", "Output format: json (default), yaml or yaml-nice")
	cmd.Flags().StringVar(&o.Prompt, "prompt", "", "Input prompt")
	cmd.Flags().StringVar(&o.ConfigPath, "config", "", "Config file path (default ~/.config/hostexpr/config.toml if present)")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	return cmd
}

func (o *ReplOptions) Run() error {
	tty := ui.NewTTY(o.Debug)

	conf, err := o.resolveConfig()
	if err != nil {
		return err
	}

	if len(o.File) == 0 {
		return fmt.Errorf("expected host variables source (use -f)")
	}

	vars, names, err := hostvars.Load(o.File, os.Stdin)
	if err != nil {
		return err
	}
	tty.Debugf("loaded %d root variables from %s\n", len(names), o.File)

	eval, err := newEvaluator(conf.Engine)
	if err != nil {
		return err
	}

	format, err := render.ParseFormat(conf.Format)
	if err != nil {
		return err
	}

	sess := session.NewSession(
		store.NewStoreWithVars(vars, names),
		eval,
		render.NewRenderer(format),
		tty,
		session.Opts{Prompt: conf.Prompt, HistoryLimit: conf.HistoryLimit},
	)

	tty.Printf("hostexpr session over %s (engine: %s, :help for commands)\n", o.File, eval.EngineName())

	return sess.Run(bufio.NewScanner(os.Stdin))
}

// resolveConfig layers flags over the config file over defaults.
func (o *ReplOptions) resolveConfig() (config.Config, error) {
	path := o.ConfigPath
	if len(path) == 0 {
		path = config.DefaultPath()
	}

	conf, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if len(o.Engine) > 0 {
		conf.Engine = o.Engine
	}
	if len(o.Format) > 0 {
		conf.Format = o.Format
	}
	if len(o.Prompt) > 0 {
		conf.Prompt = o.Prompt
	}
	return conf, nil
}

func newEvaluator(engineName string) (*expression.Evaluator, error) {
	registry := filters.NewDefaultRegistry()

	switch engineName {
	case "", "jinja":
		return expression.NewEvaluator(jinja.NewEngine(), registry), nil
	case "starlark":
		return expression.NewEvaluator(starlarkeval.NewEngine(registry), registry), nil
	default:
		return nil, fmt.Errorf("unknown engine '%s' (expected jinja or starlark)", engineName)
	}
}
