// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package config loads the optional gdbind.yaml project file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/albertocavalcante/gdbind/internal/typemap"
)

// DefaultFile is the project file looked up in the working directory.
const DefaultFile = "gdbind.yaml"

// Defaults for a plugin checkout laid out like GodotApplePlugins.
const (
	DefaultInput      = "../../doc_classes"
	DefaultOutput     = "../GodotApplePlugins.Sharp/Generated"
	DefaultSignatures = "callback-signatures.json"
	DefaultTarget     = "csharp"
	DefaultTimeout    = "60s"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the project configuration. Zero fields fall back to Default.
type Config struct {
	// Input is the documentation directory. Leave empty to read from Repo.
	Input string `yaml:"input,omitempty"`

	// Output is the directory generated files are written to.
	Output string `yaml:"output"`

	// Signatures is the callback signature file, read and updated on every
	// run. Empty disables signature persistence.
	Signatures string `yaml:"signatures,omitempty"`

	// Targets lists the generators to run.
	Targets []string `yaml:"targets,omitempty"`

	// Include and Exclude are doublestar patterns relative to Input.
	Include []string `yaml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`

	// Strict fails on the first unparsable documentation file.
	Strict bool `yaml:"strict,omitempty"`

	// Clean removes the output directory before writing.
	Clean bool `yaml:"clean"`

	Classes        []string          `yaml:"classes,omitempty"`
	ResolveDeps    bool              `yaml:"resolve_deps,omitempty"`
	RootNamespace  string            `yaml:"root_namespace,omitempty"`
	WrappedClasses []string          `yaml:"wrapped_classes,omitempty"`
	Namespaces     []typemap.Rule    `yaml:"namespaces,omitempty"`
	Options        map[string]string `yaml:"options,omitempty"`

	// Repo, Ref, and DocPath locate the documentation in git when Input
	// is empty. RepoDir points at an existing clone instead.
	Repo    string `yaml:"repo,omitempty"`
	RepoDir string `yaml:"repo_dir,omitempty"`
	Ref     string `yaml:"ref,omitempty"`
	DocPath string `yaml:"doc_path,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`

	// Path is the file the configuration was loaded from, if any.
	Path string `yaml:"-"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Input:         DefaultInput,
		Output:        DefaultOutput,
		Signatures:    DefaultSignatures,
		Targets:       []string{DefaultTarget},
		Clean:         true,
		RootNamespace: typemap.DefaultRoot,
		Timeout:       DefaultTimeout,
	}
}

// Load reads the YAML file at path over the defaults. A missing file
// yields the defaults.
func Load(fsys afero.Fs, path string) (*Config, error) {
	cfg := Default()

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	// A file that names a repository reads from it unless it also sets input.
	cfg.Input = ""
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Input == "" && cfg.Repo == "" && cfg.RepoDir == "" {
		cfg.Input = DefaultInput
	}
	cfg.Path = path
	cfg.resolvePaths(filepath.Dir(path))
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(fsys afero.Fs, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// resolvePaths makes relative paths in the file relative to its directory.
func (c *Config) resolvePaths(base string) {
	if base == "" || base == "." {
		return
	}
	for _, p := range []*string{&c.Input, &c.Output, &c.Signatures, &c.RepoDir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GDBIND_INPUT"); v != "" {
		c.Input = v
	}
	if v := os.Getenv("GDBIND_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("GDBIND_REF"); v != "" {
		c.Ref = v
	}
}

// GetTimeout returns the git timeout as a duration.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// Validate checks the fields no command can run without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("%w: output directory is required", ErrInvalid)
	}
	if len(c.Targets) == 0 {
		return fmt.Errorf("%w: at least one target is required", ErrInvalid)
	}
	if c.Input == "" && c.Repo == "" && c.RepoDir == "" {
		return fmt.Errorf("%w: one of input, repo_dir, or repo is required", ErrInvalid)
	}
	for i, r := range c.Namespaces {
		if r.Namespace == "" {
			return fmt.Errorf("%w: namespaces[%d] has no namespace", ErrInvalid, i)
		}
		if len(r.Prefixes) == 0 && len(r.Names) == 0 && len(r.Contains) == 0 {
			return fmt.Errorf("%w: namespaces[%d] (%s) matches nothing", ErrInvalid, i, r.Namespace)
		}
	}
	if c.Timeout != "" {
		if _, err := time.ParseDuration(c.Timeout); err != nil {
			return fmt.Errorf("%w: timeout: %v", ErrInvalid, err)
		}
	}
	return nil
}
