// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Command gdbind generates typed wrappers from a GDExtension plugin's XML
// class reference.
//
// Usage:
//
//	gdbind [generate] [flags]
//	gdbind signatures [--check]
//	gdbind targets
//	gdbind version
//
// Settings are read from gdbind.yaml when present; flags override them.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/albertocavalcante/gdbind/internal/config"
	"github.com/albertocavalcante/gdbind/internal/logging"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(afero.NewOsFs()).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	logJSON    bool
	verbose    bool
}

// app carries what the commands share: the filesystem and the
// loaded configuration.
type app struct {
	fs    afero.Fs
	flags globalFlags
}

// newRootCmd builds the command tree over fsys.
func newRootCmd(fsys afero.Fs) *cobra.Command {
	a := &app{fs: fsys}
	gen := newGenerateCmd(a)

	root := &cobra.Command{
		Use:   "gdbind",
		Short: "Generate typed wrappers for GDExtension classes",
		Long: `gdbind reads the XML class reference of a GDExtension plugin
(doc_classes/*.xml) and generates one C# wrapper per class, inferring typed
callback signatures from the method descriptions.

Running gdbind without a command is the same as "gdbind generate".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupLogging(cmd)
		},
		RunE: gen.RunE,
	}
	root.SetVersionTemplate("gdbind {{.Version}}\n")
	root.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.configPath, "config", "c", config.DefaultFile, "Project configuration file")
	pf.StringVar(&a.flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.BoolVar(&a.flags.logJSON, "log-json", false, "Log as JSON")
	pf.BoolVar(&a.flags.verbose, "verbose", false, "Verbose output (same as --log-level=debug)")

	// The root command runs generate, so it accepts the same flags.
	root.Flags().AddFlagSet(gen.Flags())

	root.AddCommand(gen, newInitCmd(a), newSignaturesCmd(a), newTargetsCmd(), newVersionCmd())
	return root
}

func (a *app) setupLogging(cmd *cobra.Command) error {
	level, err := logging.ParseLevel(a.flags.logLevel)
	if err != nil {
		return err
	}
	if a.flags.verbose {
		level = logging.DebugLevel
	}
	logger := logging.New(logging.Config{
		Level:  level,
		Output: cmd.ErrOrStderr(),
		JSON:   a.flags.logJSON,
	})
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithLogger(ctx, logger))
	return nil
}

// loadConfig reads the project file. An explicitly named file must exist.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if cmd.Flags().Changed("config") {
		if _, err := a.fs.Stat(a.flags.configPath); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	cfg, err := config.Load(a.fs, a.flags.configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		logging.FromContext(cmd.Context()).Debug("loaded configuration", "path", cfg.Path)
	}
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "gdbind %s (commit: %s, built: %s)\n", version, commit, date)
}
