// SPDX-License-Identifier: MIT

// Package cli implements the dpchain command.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/dpchain/ffi"
	"github.com/katalvlaran/dpchain/ledger"
)

type app struct {
	cfg    Config
	logger *zap.Logger
	store  *ledger.Store
	format string
}

// NewRootCmd builds the command tree around cfg.
func NewRootCmd(cfg Config) *cobra.Command {
	a := &app{cfg: cfg, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "dpchain",
		Short: "Build, check and release differentially private pipelines",
		Long: "dpchain reads YAML pipeline documents, verifies their privacy claims\n" +
			"and releases them through a budget-capped privacy filter.",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	flags.StringVar(&a.cfg.LedgerPath, "ledger", cfg.LedgerPath, "Path to the SQLite admission ledger (optional)")
	flags.BoolVar(&a.cfg.ConstantTime, "constant-time", cfg.ConstantTime, "Use constant-time samplers by default")
	flags.StringVarP(&a.format, "format", "f", "text", "Output format (text|yaml)")

	root.AddCommand(a.checkCmd(), a.runCmd(), a.typesCmd(), a.ledgerCmd())
	// PostRun hooks are skipped when RunE fails; the ledger must close either way.
	for _, c := range root.Commands() {
		run := c.RunE
		c.RunE = func(cmd *cobra.Command, args []string) error {
			defer a.teardown()
			return run(cmd, args)
		}
	}
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	if a.format != "text" && a.format != "yaml" {
		return fmt.Errorf("unknown format %q", a.format)
	}
	logger, err := newLogger(a.cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = logger
	ffi.SetLogger(logger)

	if a.cfg.LedgerPath != "" {
		store, err := ledger.Open(cmd.Context(), a.cfg.LedgerPath)
		if err != nil {
			return err
		}
		a.store = store
		ffi.SetLedger(store)
	}
	return nil
}

func (a *app) teardown() {
	if a.store != nil {
		ffi.SetLedger(nil)
		if err := a.store.Close(); err != nil {
			a.logger.Warn("close ledger", zap.Error(err))
		}
		a.store = nil
	}
	_ = a.logger.Sync()
}

// Execute runs dpchain with the process environment and arguments.
func Execute() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(78) // EX_CONFIG
	}
	if err := NewRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
