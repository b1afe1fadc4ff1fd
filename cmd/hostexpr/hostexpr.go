// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	uierrs "github.com/cppforlife/go-cli-ui/errors"

	"github.com/k14s/hostexpr/pkg/cmd"
)

func main() {
	command := cmd.NewDefaultHostexprCmd()

	err := command.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hostexpr: Error: %s\n", uierrs.NewMultiLineError(err))
		os.Exit(1)
	}
}
