// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package ui provides a thin abstraction over user output (typically, a
tty device).
*/
package ui

import (
	"io"
)

type UI interface {
	Printf(string, ...interface{})
	Warnf(string, ...interface{})
	Debugf(string, ...interface{})
	DebugWriter() io.Writer

	// Prompt writes the input prompt without a trailing newline.
	Prompt(string)
}
