// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/gdbind/internal/config"
	"github.com/albertocavalcante/gdbind/internal/logging"
)

// errConfigExists is returned by init when the project file is present and
// --force is not set.
var errConfigExists = errors.New("configuration file already exists")

func newInitCmd(a *app) *cobra.Command {
	var (
		input, output, repo string
		force               bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter project configuration",
		Long: `Write the default project configuration to the --config path
(gdbind.yaml). Paths in the file are relative to its directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.flags.configPath
			if _, err := a.fs.Stat(path); err == nil && !force {
				return fmt.Errorf("%w: %s (use --force to overwrite)", errConfigExists, path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("config: %w", err)
			}

			cfg := config.Default()
			if cmd.Flags().Changed("input") {
				cfg.Input = input
			}
			if cmd.Flags().Changed("output") {
				cfg.Output = output
			}
			if cmd.Flags().Changed("repo") {
				cfg.Repo = repo
				if !cmd.Flags().Changed("input") {
					cfg.Input = ""
				}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.Save(a.fs, path); err != nil {
				return err
			}
			logging.FromContext(cmd.Context()).Info("wrote configuration", "path", path)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", config.DefaultInput, "Documentation directory")
	f.StringVarP(&output, "output", "o", config.DefaultOutput, "Output directory")
	f.StringVar(&repo, "repo", "", "Read documentation from this git repository instead of a directory")
	f.BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	return cmd
}
