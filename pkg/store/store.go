// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

// Package store owns the named variables visible to expression
// evaluation. Evaluation only ever sees a Snapshot; the live store is
// mutated through Bind alone, and only the session loop calls Bind.
package store

import (
	"fmt"

	"github.com/k14s/hostexpr/pkg/value"
)

type Store struct {
	vars  map[string]interface{}
	order []string
}

type NotFoundErr struct {
	Name string
}

func (e NotFoundErr) Error() string {
	return fmt.Sprintf("variable '%s' is not bound", e.Name)
}

func NewStore() *Store {
	return &Store{vars: map[string]interface{}{}}
}

// NewStoreWithVars seeds the root context. Values must already be
// normalized; they are deep-copied so the caller keeps no handle into
// the store.
func NewStoreWithVars(vars map[string]interface{}, names []string) *Store {
	s := NewStore()
	for _, name := range names {
		s.Bind(name, vars[name])
	}
	return s
}

func (s *Store) Get(name string) (interface{}, error) {
	val, found := s.vars[name]
	if !found {
		return nil, NotFoundErr{name}
	}
	return val, nil
}

// Bind inserts or replaces a root variable. Replacement is legal here
// because reaching Bind already required an explicit user directive.
// Returns true when an existing name was replaced.
func (s *Store) Bind(name string, val interface{}) bool {
	_, existed := s.vars[name]
	if !existed {
		s.order = append(s.order, name)
	}
	s.vars[name] = value.DeepCopy(val)
	return existed
}

func (s *Store) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Snapshot returns a deep copy of the current variables keyed by name.
// Evaluation works against the copy, so neither later Binds nor
// anything an engine does to its inputs can be observed through it.
func (s *Store) Snapshot() map[string]interface{} {
	result := map[string]interface{}{}
	for name, val := range s.vars {
		result[name] = value.DeepCopy(val)
	}
	return result
}
