// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package fetch locates a plugin's documentation tree and parses it.
package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/albertocavalcante/gdbind/internal/docxml"
	"github.com/albertocavalcante/gdbind/internal/logging"
	"github.com/albertocavalcante/gdbind/model"
)

const (
	// DefaultRepo is the plugin repository cloned when no local tree is given.
	DefaultRepo = "https://github.com/migueldeicaza/GodotApplePlugins"

	// DefaultRef is the default git reference (tag/branch) to use.
	DefaultRef = "main"

	// DefaultDocPath is the documentation directory within the repository.
	DefaultDocPath = "doc_classes"

	// DefaultTimeout bounds the git clone.
	DefaultTimeout = 60 * time.Second
)

// Options configures where the documentation is read from.
type Options struct {
	// Dir is a local documentation directory. If set, it is parsed directly.
	Dir string

	// RepoDir is a path to an existing clone of the plugin repository.
	// The documentation is read from DocPath below it.
	RepoDir string

	// Repo is the repository URL to clone. Empty means DefaultRepo.
	Repo string

	// Ref is the git reference (tag or branch) to use.
	// If empty, DefaultRef is used.
	Ref string

	// DocPath is the documentation directory relative to the repository
	// root. Empty means DefaultDocPath.
	DocPath string

	// Parse controls which files are parsed and how failures are handled.
	Parse docxml.Options

	// Timeout for network operations.
	Timeout time.Duration

	// Fs is the filesystem Dir and RepoDir are read from. Nil means the
	// OS filesystem. Clones always go to the OS filesystem.
	Fs afero.Fs
}

// Result contains the parsed class model and its provenance.
type Result struct {
	// API is the parsed class model.
	API *model.API

	// Ref is the git reference that was used.
	Ref string

	// CommitHash is the git commit hash (if read from git).
	CommitHash string

	// Source describes where the documentation was loaded from.
	Source string

	// Dir is the directory that was parsed. It is empty for clones,
	// which are removed once parsed.
	Dir string
}

// Fetch locates and parses the documentation tree.
func Fetch(ctx context.Context, opts Options) (*Result, error) {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.DocPath == "" {
		opts.DocPath = DefaultDocPath
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	// Priority: Dir > RepoDir > Clone
	if opts.Dir != "" {
		return fetchFromDir(ctx, opts.Fs, opts.Dir, opts.Parse)
	}

	if opts.RepoDir != "" {
		return fetchFromRepo(ctx, opts.Fs, opts)
	}

	return fetchFromGit(ctx, opts)
}

// fetchFromDir parses a local documentation directory.
func fetchFromDir(ctx context.Context, fsys afero.Fs, dir string, parse docxml.Options) (*Result, error) {
	api, err := docxml.ParseDir(ctx, fsys, dir, parse)
	if err != nil {
		return nil, fmt.Errorf("parse documentation: %w", err)
	}

	return &Result{
		API:    api,
		Source: fmt.Sprintf("file://%s", dir),
		Dir:    dir,
	}, nil
}

// fetchFromRepo parses the documentation of an existing repository clone.
func fetchFromRepo(ctx context.Context, fsys afero.Fs, opts Options) (*Result, error) {
	dir := filepath.Join(opts.RepoDir, filepath.FromSlash(opts.DocPath))
	api, err := docxml.ParseDir(ctx, fsys, dir, opts.Parse)
	if err != nil {
		return nil, fmt.Errorf("parse from repo: %w", err)
	}

	// Try to get commit hash
	hash := getGitHash(fsys, opts.RepoDir)

	return &Result{
		API:        api,
		Ref:        opts.Ref,
		CommitHash: hash,
		Source:     fmt.Sprintf("repo://%s", opts.RepoDir),
		Dir:        dir,
	}, nil
}

// fetchFromGit clones the repository and parses its documentation.
func fetchFromGit(ctx context.Context, opts Options) (*Result, error) {
	repo := opts.Repo
	if repo == "" {
		repo = DefaultRepo
	}
	ref := opts.Ref
	if ref == "" {
		ref = DefaultRef
	}
	log := logging.FromContext(ctx)

	// Create temporary directory
	tmpDir, err := os.MkdirTemp("", "gdbind-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	// Clone with shallow depth and sparse checkout
	cloneCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	log.Info("cloning documentation", "repo", repo, "ref", ref)
	cmd := exec.CommandContext(cloneCtx, "git", "clone",
		"--quiet",
		"--depth=1",
		"--filter=blob:none",
		"--sparse",
		"--branch="+ref,
		"--single-branch",
		repo,
		tmpDir,
	)
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git clone: %w", err)
	}

	// Sparse checkout just the documentation directory
	cmd = exec.CommandContext(cloneCtx, "git", "-C", tmpDir, "sparse-checkout", "set", path.Clean(opts.DocPath))
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("sparse checkout: %w", err)
	}

	osFs := afero.NewOsFs()
	api, err := docxml.ParseDir(ctx, osFs, filepath.Join(tmpDir, filepath.FromSlash(opts.DocPath)), opts.Parse)
	if err != nil {
		return nil, fmt.Errorf("parse documentation: %w", err)
	}

	hash := getGitHash(osFs, tmpDir)

	return &Result{
		API:        api,
		Ref:        ref,
		CommitHash: hash,
		Source:     fmt.Sprintf("%s@%s", repo, ref),
	}, nil
}

// getGitHash returns the current commit hash for a repository.
func getGitHash(fsys afero.Fs, repoDir string) string {
	// Try reading HEAD directly
	headPath := filepath.Join(repoDir, ".git", "HEAD")
	data, err := afero.ReadFile(fsys, headPath)
	if err != nil {
		return ""
	}

	content := strings.TrimSpace(string(data))

	// Direct hash (detached HEAD)
	if len(content) == 40 && isHex(content) {
		return content
	}

	// Reference (e.g., "ref: refs/heads/main")
	if ref, ok := strings.CutPrefix(content, "ref: "); ok {
		refPath := filepath.Join(repoDir, ".git", filepath.FromSlash(ref))
		data, err := afero.ReadFile(fsys, refPath)
		if err != nil {
			return ""
		}
		hash := strings.TrimSpace(string(data))
		if len(hash) >= 40 && isHex(hash[:40]) {
			return hash[:40]
		}
	}

	return ""
}

func isHex(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
