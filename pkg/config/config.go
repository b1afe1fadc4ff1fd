// Copyright 2026 The Hostexpr Authors.
// SPDX-License-Identifier: Apache-2.0

// Package config reads the optional per-user configuration file
// (~/.config/hostexpr/config.toml, overridable via flag).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	goversion "github.com/hashicorp/go-version"

	"github.com/k14s/hostexpr/pkg/version"
)

type Config struct {
	Prompt       string `toml:"prompt"`
	Format       string `toml:"format"`
	Engine       string `toml:"engine"`
	HistoryLimit int    `toml:"history_limit"`

	// MinVersion lets a shared config refuse to run under an older
	// hostexpr whose hosted filter semantics may differ.
	MinVersion string `toml:"min_version"`
}

func NewDefaultConfig() Config {
	return Config{
		Prompt:       ">> ",
		Format:       "json",
		Engine:       "jinja",
		HistoryLimit: 10,
	}
}

// DefaultPath returns the conventional config location, or "" when it
// does not exist.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".config", "hostexpr", "config.toml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// Load merges the file at path over the defaults. An empty path means
// defaults only.
func Load(path string) (Config, error) {
	conf := NewDefaultConfig()
	if len(path) == 0 {
		return conf, nil
	}

	_, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config '%s': %s", path, err)
	}

	err = conf.Validate()
	if err != nil {
		return Config{}, fmt.Errorf("config '%s': %s", path, err)
	}
	return conf, nil
}

func (c Config) Validate() error {
	if c.HistoryLimit < 1 {
		return fmt.Errorf("history_limit must be at least 1")
	}

	if len(c.MinVersion) > 0 {
		constraint, err := goversion.NewConstraint(">= " + c.MinVersion)
		if err != nil {
			return fmt.Errorf("parsing min_version: %s", err)
		}
		current, err := goversion.NewVersion(version.Version)
		if err != nil {
			return fmt.Errorf("parsing build version '%s': %s", version.Version, err)
		}
		if !constraint.Check(current) {
			return fmt.Errorf("hostexpr version %s does not meet the minimum required version %s", version.Version, c.MinVersion)
		}
	}
	return nil
}
