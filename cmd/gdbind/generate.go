// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/gdbind/internal/config"
	"github.com/albertocavalcante/gdbind/internal/logging"
	"github.com/albertocavalcante/gdbind/internal/watch"
)

// generateFlags mirror the config file fields they override.
type generateFlags struct {
	input         string
	output        string
	signatures    string
	targets       []string
	classes       []string
	include       []string
	exclude       []string
	options       map[string]string
	rootNamespace string
	repo          string
	repoDir       string
	ref           string
	docPath       string
	resolveDeps   bool
	strict        bool
	noClean       bool
	dryRun        bool
	watch         bool
}

func newGenerateCmd(a *app) *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate wrappers from the documentation",
		Example: `  # Generate with the defaults (../../doc_classes -> ../GodotApplePlugins.Sharp/Generated)
  gdbind

  # Generate from an explicit directory
  gdbind generate -i ./doc_classes -o ./Generated

  # Generate a class and everything it references
  gdbind generate --classes GKLocalPlayer --resolve-deps

  # Regenerate whenever the documentation changes
  gdbind generate --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			f.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			p := &pipeline{fs: a.fs, cfg: cfg, out: cmd.OutOrStdout(), dryRun: f.dryRun}
			if err := p.checkTargets(); err != nil {
				return err
			}

			ctx := cmd.Context()
			res, err := p.generate(ctx)
			if err != nil {
				return err
			}
			if !f.watch {
				return nil
			}
			if res.Dir == "" {
				return errors.New("--watch needs a local documentation directory (--input or --repo-dir)")
			}
			return runWatch(ctx, res.Dir, p)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.input, "input", "i", "", "Documentation directory (default "+config.DefaultInput+")")
	fl.StringVarP(&f.output, "output", "o", "", "Output directory (default "+config.DefaultOutput+")")
	fl.StringVar(&f.signatures, "signatures", "", "Callback signature file (default "+config.DefaultSignatures+")")
	fl.StringSliceVarP(&f.targets, "target", "t", nil, "Generators to run (see 'gdbind targets')")
	fl.StringSliceVar(&f.classes, "classes", nil, "Classes to generate (default: all)")
	fl.StringSliceVar(&f.include, "include", nil, "Documentation files to parse (doublestar patterns)")
	fl.StringSliceVar(&f.exclude, "exclude", nil, "Documentation files to skip (doublestar patterns)")
	fl.StringToStringVar(&f.options, "option", nil, "Generator option key=value (repeatable)")
	fl.StringVar(&f.rootNamespace, "root-namespace", "", "Root namespace of the generated code")
	fl.StringVar(&f.repo, "repo", "", "Plugin repository to clone when no input directory is given")
	fl.StringVar(&f.repoDir, "repo-dir", "", "Existing clone of the plugin repository")
	fl.StringVar(&f.ref, "ref", "", "Git reference to clone")
	fl.StringVar(&f.docPath, "doc-path", "", "Documentation directory inside the repository")
	fl.BoolVar(&f.resolveDeps, "resolve-deps", false, "Include parents and referenced classes of --classes")
	fl.BoolVar(&f.strict, "strict", false, "Fail on unparsable documentation files")
	fl.BoolVar(&f.noClean, "no-clean", false, "Keep existing files in the output directory")
	fl.BoolVar(&f.dryRun, "dry-run", false, "Print generated files to stdout without writing")
	fl.BoolVarP(&f.watch, "watch", "w", false, "Regenerate when the documentation changes")
	return cmd
}

// apply overrides cfg with the flags set on the command line.
func (f *generateFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("input") {
		cfg.Input = f.input
	} else if changed("repo") || changed("repo-dir") {
		cfg.Input = ""
	}
	if changed("output") {
		cfg.Output = f.output
	}
	if changed("signatures") {
		cfg.Signatures = f.signatures
	}
	if changed("target") {
		cfg.Targets = f.targets
	}
	if changed("classes") {
		cfg.Classes = f.classes
	}
	if changed("include") {
		cfg.Include = f.include
	}
	if changed("exclude") {
		cfg.Exclude = f.exclude
	}
	if changed("option") {
		if cfg.Options == nil {
			cfg.Options = make(map[string]string, len(f.options))
		}
		for k, v := range f.options {
			cfg.Options[k] = v
		}
	}
	if changed("root-namespace") {
		cfg.RootNamespace = f.rootNamespace
	}
	if changed("repo") {
		cfg.Repo = f.repo
	}
	if changed("repo-dir") {
		cfg.RepoDir = f.repoDir
	}
	if changed("ref") {
		cfg.Ref = f.ref
	}
	if changed("doc-path") {
		cfg.DocPath = f.docPath
	}
	if changed("resolve-deps") {
		cfg.ResolveDeps = f.resolveDeps
	}
	if changed("strict") {
		cfg.Strict = f.strict
	}
	if changed("no-clean") {
		cfg.Clean = !f.noClean
	}
}

func runWatch(ctx context.Context, dir string, p *pipeline) error {
	log := logging.FromContext(ctx)

	w, err := watch.New(dir, watch.Options{
		Match: func(path string) bool {
			return strings.EqualFold(filepath.Ext(path), ".xml")
		},
	})
	if err != nil {
		return err
	}
	defer w.Close()

	log.Info("watching for changes", "dir", dir, "directories", w.Dirs())
	return w.Run(ctx, func(ctx context.Context, changed []string) error {
		log.Info("documentation changed", "files", len(changed))
		if _, err := p.generate(ctx); err != nil {
			return fmt.Errorf("regenerate: %w", err)
		}
		return nil
	})
}
