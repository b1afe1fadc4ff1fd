// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"

	"github.com/k14s/hostexpr/pkg/cmd/ui"
	"github.com/k14s/hostexpr/pkg/version"
)

type HostexprOptions struct{}

func NewDefaultHostexprOptions() *HostexprOptions {
	return &HostexprOptions{}
}

func NewDefaultHostexprCmd() *cobra.Command {
	return NewHostexprCmd(NewDefaultHostexprOptions())
}

func NewHostexprCmd(o *HostexprOptions) *cobra.Command {
	cmd := NewReplCmd(NewReplOptions())

	cmd.Use = "hostexpr"
	cmd.Version = version.Version
	cmd.Short = "hostexpr interactively evaluates template expressions against host variables"
	cmd.Long = `hostexpr loads a host-variable tree (YAML or JSON) and starts an
interactive session for evaluating template/filter expressions against
it, so expressions can be tested without running a playbook.`

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))
	cmd.AddCommand(NewEvalCmd(NewEvalOptions(ui.NewTTY(false))))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.DisallowExtraArgs, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}
