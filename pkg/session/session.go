// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

// Package session runs the interactive loop: read a line, evaluate it
// against a snapshot of the store, append the outcome to history,
// render. Evaluation failures are rendered and the loop continues;
// only a quit directive or an input failure ends the session.
package session

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/k14s/difflib"

	"github.com/k14s/hostexpr/pkg/cmd/ui"
	"github.com/k14s/hostexpr/pkg/expression"
	"github.com/k14s/hostexpr/pkg/history"
	"github.com/k14s/hostexpr/pkg/render"
	"github.com/k14s/hostexpr/pkg/store"
)

type State int

const (
	StateAwaitingInput State = iota
	StateEvaluating
	StateRendering
	StateEnded
)

// InputChannelErr is fatal: the input source failed mid-session.
type InputChannelErr struct {
	Cause error
}

func (e InputChannelErr) Error() string {
	return fmt.Sprintf("reading input: %s", e.Cause)
}

type Opts struct {
	Prompt       string
	HistoryLimit int
}

type Session struct {
	store    *store.Store
	eval     *expression.Evaluator
	log      *history.Log
	renderer *render.Renderer
	ui       ui.UI
	opts     Opts

	state State
}

func NewSession(st *store.Store, eval *expression.Evaluator, renderer *render.Renderer, u ui.UI, opts Opts) *Session {
	if len(opts.Prompt) == 0 {
		opts.Prompt = ">> "
	}
	if opts.HistoryLimit < 1 {
		opts.HistoryLimit = 10
	}
	return &Session{
		store:    st,
		eval:     eval,
		log:      history.NewLog(),
		renderer: renderer,
		ui:       u,
		opts:     opts,
		state:    StateAwaitingInput,
	}
}

func (s *Session) State() State { return s.state }

func (s *Session) Log() *history.Log { return s.log }

func (s *Session) Store() *store.Store { return s.store }

// Run consumes input lines until a quit directive, end of input, or an
// input failure. Only the last returns an error.
func (s *Session) Run(in *bufio.Scanner) error {
	for s.state != StateEnded {
		s.ui.Prompt(s.opts.Prompt)

		if !in.Scan() {
			s.state = StateEnded
			if err := in.Err(); err != nil {
				return InputChannelErr{err}
			}
			// end of input acts as a quit directive
			s.ui.Printf("\n")
			return nil
		}

		s.Submit(in.Text())
	}
	return nil
}

// Submit handles one input line. It is the whole state machine: every
// path starts and ends in AwaitingInput except quit, which ends in
// Ended.
func (s *Session) Submit(line string) {
	if len(strings.TrimSpace(line)) == 0 {
		return
	}

	dir, err := parseDirective(line)
	if err != nil {
		s.ui.Warnf("%s\n", err)
		return
	}

	switch dir.kind {
	case directiveQuit:
		s.state = StateEnded
		s.ui.Debugf("session ended after %d expressions\n", s.log.Len())

	case directiveExpr:
		entry := s.evaluate(dir.expr)
		s.renderOutcome(entry)

	case directiveBind:
		s.bind(dir.name, dir.expr)

	case directiveHistory:
		s.showHistory(dir.seqA)

	case directiveReplay:
		s.replay(dir.seqA)

	case directiveDiff:
		s.diff(dir.seqA, dir.seqB)

	case directiveFormat:
		format, err := render.ParseFormat(dir.name)
		if err != nil {
			s.ui.Warnf("%s\n", err)
			return
		}
		s.renderer.SetFormat(format)
		s.ui.Printf("output format: %s\n", format)

	case directiveVars:
		for _, name := range s.store.Names() {
			s.ui.Printf("%s\n", name)
		}

	case directiveHelp:
		s.ui.Printf("%s", helpText)
	}
}

// evaluate runs one expression against a fresh snapshot and records
// the outcome. History gets an entry whether evaluation succeeded or
// not.
func (s *Session) evaluate(expr string) history.Entry {
	s.state = StateEvaluating
	result, evalErr := s.eval.Evaluate(expr, s.store.Snapshot())
	return s.log.Append(expr, result, evalErr)
}

func (s *Session) renderOutcome(entry history.Entry) {
	s.state = StateRendering
	s.ui.Printf("%s\n", s.renderer.Outcome(entry.Result, entry.Err, entry.Expr))
	s.state = StateAwaitingInput
}

// bind evaluates the right-hand side and, on success, binds the result
// under name. Rebinding an existing name is allowed here (the user
// asked for it) and is called out in the confirmation.
func (s *Session) bind(name, expr string) {
	entry := s.evaluate(expr)
	if entry.Failed() {
		s.renderOutcome(entry)
		return
	}

	existed := s.store.Bind(name, entry.Result)

	s.state = StateRendering
	verb := "bound"
	if existed {
		verb = "rebound"
	}
	s.ui.Printf("%s '%s' = %s\n", verb, name, s.renderer.Value(entry.Result))
	s.state = StateAwaitingInput
}

func (s *Session) showHistory(limit int) {
	if limit < 1 {
		limit = s.opts.HistoryLimit
	}
	for _, entry := range s.log.Last(limit) {
		marker := "ok"
		if entry.Failed() {
			marker = "error"
		}
		s.ui.Printf("[%d] (%s) %s\n", entry.Seq, marker, entry.Expr)
	}
}

func (s *Session) replay(seq int) {
	expr, err := s.log.Replay(seq)
	if err != nil {
		s.ui.Warnf("%s\n", err)
		return
	}
	s.ui.Printf("replaying [%d]: %s\n", seq, expr)
	s.renderOutcome(s.evaluate(expr))
}

func (s *Session) diff(seqA, seqB int) {
	entryA, err := s.log.At(seqA)
	if err != nil {
		s.ui.Warnf("%s\n", err)
		return
	}
	entryB, err := s.log.At(seqB)
	if err != nil {
		s.ui.Warnf("%s\n", err)
		return
	}

	linesA := strings.Split(s.renderer.Outcome(entryA.Result, entryA.Err, entryA.Expr), "\n")
	linesB := strings.Split(s.renderer.Outcome(entryB.Result, entryB.Err, entryB.Expr), "\n")
	s.ui.Printf("%s", difflib.PPDiff(linesA, linesB))
}

const helpText = `Input is evaluated against the loaded host variables.
  <expression>          evaluate, e.g. items | length
  name = <expression>   evaluate and bind the result to name
  :history [n]          show the last n history entries
  :replay <seq>         re-submit the expression with that sequence number
  :diff <seqA> <seqB>   diff the rendered outcomes of two entries
  :format json|yaml|yaml-nice
                        switch the output format
  :vars                 list bound variable names
  :quit                 end the session
`
