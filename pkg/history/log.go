// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

// Package history records every evaluated expression for the lifetime
// of a session. Entries are immutable once appended and sequence
// numbers are gapless, starting at 1.
package history

import (
	"fmt"
	"time"

	"github.com/k14s/hostexpr/pkg/expression"
)

type Entry struct {
	Seq  int
	Expr string
	// exactly one of Result/Err is meaningful; Err nil means Result
	// holds the outcome (which may itself be a null Value)
	Result interface{}
	Err    *expression.EvalError
	Time   time.Time
}

func (e Entry) Failed() bool { return e.Err != nil }

type NotFoundErr struct {
	Seq int
}

func (e NotFoundErr) Error() string {
	return fmt.Sprintf("no history entry with sequence number %d", e.Seq)
}

type Log struct {
	entries []Entry
}

func NewLog() *Log {
	return &Log{}
}

// Append records an outcome and assigns the next sequence number.
func (l *Log) Append(expr string, result interface{}, evalErr *expression.EvalError) Entry {
	entry := Entry{
		Seq:    len(l.entries) + 1,
		Expr:   expr,
		Result: result,
		Err:    evalErr,
		Time:   time.Now(),
	}
	l.entries = append(l.entries, entry)
	return entry
}

func (l *Log) At(seq int) (Entry, error) {
	if seq < 1 || seq > len(l.entries) {
		return Entry{}, NotFoundErr{seq}
	}
	return l.entries[seq-1], nil
}

// Last returns up to n entries, oldest first, most recent last.
func (l *Log) Last(n int) []Entry {
	if n < 0 {
		n = 0
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}
	result := make([]Entry, n)
	copy(result, l.entries[len(l.entries)-n:])
	return result
}

// Replay returns the stored expression text for re-submission; it
// does not evaluate anything.
func (l *Log) Replay(seq int) (string, error) {
	entry, err := l.At(seq)
	if err != nil {
		return "", err
	}
	return entry.Expr, nil
}

func (l *Log) Len() int { return len(l.entries) }
