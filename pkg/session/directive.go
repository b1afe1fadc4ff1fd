// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type directiveKind int

const (
	directiveExpr directiveKind = iota
	directiveBind
	directiveQuit
	directiveHistory
	directiveReplay
	directiveDiff
	directiveFormat
	directiveVars
	directiveHelp
)

type directive struct {
	kind directiveKind

	expr string // directiveExpr, directiveBind
	name string // directiveBind LHS, directiveFormat argument
	seqA int    // directiveReplay, directiveDiff, directiveHistory limit
	seqB int    // directiveDiff
}

// bind: identifier '=' anything, but not '==' (that is a comparison)
var bindRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*=\s*([^=].*)$`)

func parseDirective(line string) (directive, error) {
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, ":") {
		fields := strings.Fields(trimmed)
		switch fields[0] {
		case ":q", ":quit", ":exit":
			return directive{kind: directiveQuit}, nil

		case ":history":
			limit := 0
			if len(fields) > 1 {
				n, err := strconv.Atoi(fields[1])
				if err != nil || n < 1 {
					return directive{}, fmt.Errorf("usage: :history [n]")
				}
				limit = n
			}
			return directive{kind: directiveHistory, seqA: limit}, nil

		case ":replay":
			if len(fields) != 2 {
				return directive{}, fmt.Errorf("usage: :replay <seq>")
			}
			seq, err := strconv.Atoi(fields[1])
			if err != nil {
				return directive{}, fmt.Errorf("usage: :replay <seq>")
			}
			return directive{kind: directiveReplay, seqA: seq}, nil

		case ":diff":
			if len(fields) != 3 {
				return directive{}, fmt.Errorf("usage: :diff <seqA> <seqB>")
			}
			seqA, errA := strconv.Atoi(fields[1])
			seqB, errB := strconv.Atoi(fields[2])
			if errA != nil || errB != nil {
				return directive{}, fmt.Errorf("usage: :diff <seqA> <seqB>")
			}
			return directive{kind: directiveDiff, seqA: seqA, seqB: seqB}, nil

		case ":format":
			if len(fields) != 2 {
				return directive{}, fmt.Errorf("usage: :format json|yaml|yaml-nice")
			}
			return directive{kind: directiveFormat, name: fields[1]}, nil

		case ":vars":
			return directive{kind: directiveVars}, nil

		case ":help":
			return directive{kind: directiveHelp}, nil

		default:
			return directive{}, fmt.Errorf("unknown directive %s (try :help)", fields[0])
		}
	}

	if match := bindRe.FindStringSubmatch(trimmed); match != nil {
		return directive{kind: directiveBind, name: match[1], expr: strings.TrimSpace(match[2])}, nil
	}

	return directive{kind: directiveExpr, expr: trimmed}, nil
}
