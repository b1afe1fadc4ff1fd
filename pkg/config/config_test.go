// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/k14s/hostexpr/pkg/config"
)

func writeConfig(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	conf, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, ">> ", conf.Prompt)
	require.Equal(t, "json", conf.Format)
	require.Equal(t, "jinja", conf.Engine)
	require.Equal(t, 10, conf.HistoryLimit)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "prompt = \"expr> \"\nformat = \"yaml\"\nhistory_limit = 25\n")

	conf, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "expr> ", conf.Prompt)
	require.Equal(t, "yaml", conf.Format)
	require.Equal(t, 25, conf.HistoryLimit)
	// untouched keys keep defaults
	require.Equal(t, "jinja", conf.Engine)
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, "prompt = ")

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestMinVersionGate(t *testing.T) {
	conf, err := config.Load(writeConfig(t, "min_version = \"0.0.1\"\n"))
	require.NoError(t, err)
	require.Equal(t, "0.0.1", conf.MinVersion)

	_, err = config.Load(writeConfig(t, "min_version = \"99.0.0\"\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "minimum required version")

	_, err = config.Load(writeConfig(t, "min_version = \"not-a-version\"\n"))
	require.Error(t, err)
}

func TestValidateHistoryLimit(t *testing.T) {
	_, err := config.Load(writeConfig(t, "history_limit = 0\n"))
	require.Error(t, err)
}
