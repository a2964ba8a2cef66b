// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/gdbind/internal/callbacks"
)

// errPending is returned by "signatures --check" when placeholders remain.
var errPending = errors.New("callback signatures need manual completion")

func newSignaturesCmd(a *app) *cobra.Command {
	var (
		input  string
		output string
		check  bool
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "signatures",
		Short: "Extract callback signatures and merge them into the signature file",
		Long: `Scans method descriptions for phrases like "callback receives a [code]Type[/code]"
and adds the inferred signatures to the signature file. Existing entries are
never overwritten, so hand-edited signatures survive. Methods whose signature
could not be inferred get a placeholder to complete by hand.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("input") {
				cfg.Input = input
			}
			if cmd.Flags().Changed("signatures") {
				cfg.Signatures = output
			}
			if cfg.Signatures == "" && !dryRun {
				return errors.New("no signature file configured (use --signatures)")
			}

			p := &pipeline{fs: a.fs, cfg: cfg, out: cmd.OutOrStdout(), dryRun: dryRun}
			l, err := p.load(cmd.Context())
			if err != nil {
				return err
			}

			if dryRun {
				data, err := callbacks.Marshal(l.Signatures)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			pending := l.Signatures.Pending()
			fmt.Fprintf(cmd.OutOrStdout(), "%d callback signatures, %d pending\n", len(l.Signatures.Callbacks), len(pending))
			if check && len(pending) > 0 {
				return fmt.Errorf("%w: %s", errPending, strings.Join(pending, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Documentation directory")
	cmd.Flags().StringVar(&output, "signatures", "", "Callback signature file")
	cmd.Flags().BoolVar(&check, "check", false, "Fail when any signature is still a placeholder")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the merged file instead of writing it")
	return cmd
}
