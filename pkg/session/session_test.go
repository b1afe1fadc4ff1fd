// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

package session_test

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/k14s/hostexpr/pkg/cmd/ui"
	"github.com/k14s/hostexpr/pkg/expression"
	"github.com/k14s/hostexpr/pkg/expression/filters"
	"github.com/k14s/hostexpr/pkg/expression/jinja"
	"github.com/k14s/hostexpr/pkg/render"
	"github.com/k14s/hostexpr/pkg/session"
	"github.com/k14s/hostexpr/pkg/store"
)

type testSession struct {
	*session.Session
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestSession(t *testing.T) *testSession {
	st := store.NewStore()
	st.Bind("items", []interface{}{int64(1), int64(2), int64(3)})

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	eval := expression.NewEvaluator(jinja.NewEngine(), filters.NewDefaultRegistry())
	sess := session.NewSession(st, eval, render.NewRenderer(render.FormatJSON),
		ui.NewCustomWriterTTY(false, stdout, stderr), session.Opts{})

	return &testSession{sess, stdout, stderr}
}

func TestExpressionEvaluatesAndRecords(t *testing.T) {
	s := newTestSession(t)

	s.Submit("items | length")

	require.Equal(t, session.StateAwaitingInput, s.State())
	require.Equal(t, 1, s.Log().Len())
	require.Contains(t, s.stdout.String(), "3")

	entry, err := s.Log().At(1)
	require.NoError(t, err)
	require.Equal(t, "items | length", entry.Expr)
	require.False(t, entry.Failed())
}

func TestEvaluationFailureDoesNotEndSession(t *testing.T) {
	s := newTestSession(t)

	s.Submit("missing")

	require.Equal(t, session.StateAwaitingInput, s.State())
	require.Contains(t, s.stdout.String(), "missing")

	// failures land in history too
	require.Equal(t, 1, s.Log().Len())
	entry, _ := s.Log().At(1)
	require.True(t, entry.Failed())

	// and the session keeps working
	s.Submit("items | first")
	require.Contains(t, s.stdout.String(), "1")
}

// bind then evaluate: y = items | first, then y returns 1; history has
// exactly entries 1 and 2
func TestBindThenEvaluate(t *testing.T) {
	s := newTestSession(t)

	s.Submit("y = items | first")
	require.Contains(t, s.stdout.String(), "bound 'y'")

	s.Submit("y")
	require.Equal(t, 2, s.Log().Len())

	first, _ := s.Log().At(1)
	second, _ := s.Log().At(2)
	require.Equal(t, 1, first.Seq)
	require.Equal(t, 2, second.Seq)
	require.Equal(t, int64(1), second.Result)
}

func TestRebindIsExplicit(t *testing.T) {
	s := newTestSession(t)

	s.Submit("y = 1")
	s.Submit("y = 2")
	require.Contains(t, s.stdout.String(), "rebound 'y'")

	val, err := s.Store().Get("y")
	require.NoError(t, err)
	require.Equal(t, int64(2), val)
}

func TestBindFailureBindsNothing(t *testing.T) {
	s := newTestSession(t)

	s.Submit("y = missing | length")

	_, err := s.Store().Get("y")
	require.Error(t, err)
	require.Equal(t, 1, s.Log().Len())
}

func TestEqualityIsNotABind(t *testing.T) {
	s := newTestSession(t)

	s.Submit("1 == 1")
	require.Contains(t, s.stdout.String(), "true")

	_, err := s.Store().Get("1")
	require.Error(t, err)
}

func TestQuitFromAwaitingInput(t *testing.T) {
	s := newTestSession(t)

	s.Submit(":quit")
	require.Equal(t, session.StateEnded, s.State())
}

func TestRunEndsOnQuit(t *testing.T) {
	s := newTestSession(t)

	err := s.Run(bufio.NewScanner(strings.NewReader("items | length\n:q\nnever evaluated\n")))
	require.NoError(t, err)
	require.Equal(t, session.StateEnded, s.State())
	require.Equal(t, 1, s.Log().Len())
}

func TestRunEndsOnEOF(t *testing.T) {
	s := newTestSession(t)

	err := s.Run(bufio.NewScanner(strings.NewReader("items | length\n")))
	require.NoError(t, err)
	require.Equal(t, session.StateEnded, s.State())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("input channel closed unexpectedly")
}

func TestRunReportsInputChannelFailure(t *testing.T) {
	s := newTestSession(t)

	err := s.Run(bufio.NewScanner(failingReader{}))
	require.Error(t, err)
	require.IsType(t, session.InputChannelErr{}, err)
	require.Equal(t, session.StateEnded, s.State())
}

func TestHistoryDirective(t *testing.T) {
	s := newTestSession(t)

	s.Submit("items | length")
	s.Submit("missing")
	s.stdout.Reset()

	s.Submit(":history")
	out := s.stdout.String()
	require.Contains(t, out, "[1] (ok) items | length")
	require.Contains(t, out, "[2] (error) missing")

	s.stdout.Reset()
	s.Submit(":history 1")
	require.NotContains(t, s.stdout.String(), "[1]")
	require.Contains(t, s.stdout.String(), "[2]")
}

func TestReplayDirective(t *testing.T) {
	s := newTestSession(t)

	s.Submit("items | length")
	s.stdout.Reset()

	s.Submit(":replay 1")
	require.Contains(t, s.stdout.String(), "replaying [1]: items | length")
	require.Equal(t, 2, s.Log().Len())

	s.Submit(":replay 99")
	require.Contains(t, s.stderr.String(), "99")
}

func TestDiffDirective(t *testing.T) {
	s := newTestSession(t)

	s.Submit("items | first")
	s.Submit("items | last")
	s.stdout.Reset()

	s.Submit(":diff 1 2")
	out := s.stdout.String()
	require.Contains(t, out, "1")
	require.Contains(t, out, "3")
}

func TestFormatDirective(t *testing.T) {
	s := newTestSession(t)

	s.Submit(":format yaml")
	require.Contains(t, s.stdout.String(), "output format: yaml")

	s.Submit(":format xml")
	require.Contains(t, s.stderr.String(), "unknown output format")
}

func TestVarsDirective(t *testing.T) {
	s := newTestSession(t)

	s.Submit(":vars")
	require.Contains(t, s.stdout.String(), "items")
}

func TestUnknownDirective(t *testing.T) {
	s := newTestSession(t)

	s.Submit(":bogus")
	require.Contains(t, s.stderr.String(), ":bogus")
	require.Equal(t, session.StateAwaitingInput, s.State())
}

func TestEmptyLinesAreIgnored(t *testing.T) {
	s := newTestSession(t)

	s.Submit("")
	s.Submit("   ")
	require.Equal(t, 0, s.Log().Len())
	require.Equal(t, "", s.stdout.String())
}
