// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

// Package hostvars loads the initial context from host-variable data:
// a single YAML or JSON file, '-' for stdin, or a directory of files.
// A malformed source is a load error naming the source; load errors
// are fatal to session startup.
package hostvars

import (
	"fmt"
	"io"
	"os"

	"github.com/k14s/hostexpr/pkg/orderedmap"
	"github.com/k14s/hostexpr/pkg/value"
)

// HostVarsName is the variable the whole loaded tree is bound under,
// in addition to any per-key bindings.
const HostVarsName = "hostvars"

type LoadErr struct {
	Source string
	Cause  error
}

func (e LoadErr) Error() string {
	return fmt.Sprintf("loading %s: %s", e.Source, e.Cause)
}

// Load produces the root context: a mapping from variable name to
// normalized Value plus the binding order.
func Load(path string, stdin io.Reader) (map[string]interface{}, []string, error) {
	if path == "-" {
		return loadSources([]Source{NewStdinSource(stdin)}, false)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, LoadErr{Source: fmt.Sprintf("'%s'", path), Cause: err}
	}

	if info.IsDir() {
		sources, err := DirSources(path)
		if err != nil {
			return nil, nil, LoadErr{Source: fmt.Sprintf("directory '%s'", path), Cause: err}
		}
		if len(sources) == 0 {
			return nil, nil, LoadErr{Source: fmt.Sprintf("directory '%s'", path), Cause: fmt.Errorf("no .yml, .yaml or .json files found")}
		}
		return loadSources(sources, true)
	}

	return loadSources([]Source{NewLocalSource(path)}, false)
}

// LoadSource is Load for a single pre-read source (e.g. a request body).
func LoadSource(src Source) (map[string]interface{}, []string, error) {
	return loadSources([]Source{src}, false)
}

// loadSources decodes every source. With perSource set (directory
// mode) each file becomes one root variable named after the file;
// otherwise a top-level mapping spreads into per-key variables and
// any other top-level value binds under 'vars'. The whole tree is
// always additionally bound as hostvars.
func loadSources(sources []Source, perSource bool) (map[string]interface{}, []string, error) {
	vars := map[string]interface{}{}
	var names []string

	bind := func(name string, val interface{}) {
		if _, exists := vars[name]; !exists {
			names = append(names, name)
		}
		vars[name] = val
	}

	all := orderedmap.NewMap()

	for _, src := range sources {
		data, err := src.Bytes()
		if err != nil {
			return nil, nil, LoadErr{Source: src.Description(), Cause: err}
		}

		val, err := value.Decode(data)
		if err != nil {
			return nil, nil, LoadErr{Source: src.Description(), Cause: err}
		}

		if perSource {
			// web.yml and web.json would both claim 'web'
			if _, taken := vars[src.Name()]; taken {
				return nil, nil, LoadErr{Source: src.Description(),
					Cause: fmt.Errorf("root variable '%s' is already defined by another file", src.Name())}
			}
			bind(src.Name(), val)
			all.Set(src.Name(), val)
			continue
		}

		if m, ok := val.(*orderedmap.Map); ok {
			m.Iterate(func(k string, v interface{}) {
				bind(k, v)
				all.Set(k, v)
			})
		} else {
			bind("vars", val)
			all.Set("vars", val)
		}
	}

	bind(HostVarsName, all)
	return vars, names, nil
}
