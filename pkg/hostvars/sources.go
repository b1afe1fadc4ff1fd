// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

package hostvars

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type Source interface {
	Description() string
	Name() string
	Bytes() ([]byte, error)
}

var _ []Source = []Source{BytesSource{}, StdinSource{}, LocalSource{}}

type BytesSource struct {
	name string
	data []byte
}

func NewBytesSource(name string, data []byte) BytesSource { return BytesSource{name, data} }

func (s BytesSource) Description() string { return s.name }
func (s BytesSource) Name() string        { return s.name }
func (s BytesSource) Bytes() ([]byte, error) {
	return s.data, nil
}

type StdinSource struct {
	bytes []byte
	err   error
}

func NewStdinSource(in io.Reader) StdinSource {
	// only read stdin once
	bs, err := io.ReadAll(in)
	return StdinSource{bs, err}
}

func (s StdinSource) Description() string { return "stdin" }
func (s StdinSource) Name() string        { return "stdin" }
func (s StdinSource) Bytes() ([]byte, error) {
	return s.bytes, s.err
}

type LocalSource struct {
	path string
}

func NewLocalSource(path string) LocalSource { return LocalSource{path} }

func (s LocalSource) Description() string { return fmt.Sprintf("file '%s'", s.path) }

// Name is the variable-friendly basename: extension dropped.
func (s LocalSource) Name() string {
	base := filepath.Base(s.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (s LocalSource) Bytes() ([]byte, error) {
	return os.ReadFile(s.path)
}

var dataFileExts = map[string]struct{}{
	".yml": {}, ".yaml": {}, ".json": {},
}

// DirSources lists the host-var files of a directory, name-sorted so
// loading order is reproducible.
func DirSources(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var sources []Source
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := dataFileExts[filepath.Ext(entry.Name())]; !ok {
			continue
		}
		sources = append(sources, NewLocalSource(filepath.Join(dir, entry.Name())))
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Name() < sources[j].Name() })
	return sources, nil
}
