// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package pkg is the collection of packages that make up the implementation
of hostexpr.

From top-down, hostexpr code is layered in this way:

# Entry Point

hostexpr is built into two executable formats:

	./cmd/hostexpr          // a command-line tool
	./cmd/hostexpr-lambda   // an AWS Lambda function

# Commands

The root command starts an interactive session; "eval" runs a single
expression and exits.

	pkg/cmd
	pkg/cmd/ui

# The Session

A session owns the variable store, dispatches input lines (directives,
bindings, expressions), and records every evaluation in the history log.

	pkg/session
	pkg/history
	pkg/store
	pkg/hostvars
	pkg/config

# Expressions

Expression grammar is delegated to an Engine; filter dispatch goes
through a FilterRegistry that the engines share.

	pkg/expression
	pkg/expression/jinja
	pkg/expression/starlarkeval
	pkg/expression/filters

# Values and Rendering

Every result is normalized into a small value union with deterministic
mapping key handling, then rendered in the configured output format.

	pkg/value
	pkg/orderedmap
	pkg/render

# Utilities

	pkg/spell
	pkg/version
*/
package pkg
