// SPDX-License-Identifier: MIT

// Command trienrich interprets a CROW tri-factorization of a labeled data
// matrix: it reports which row and column clusters are enriched for known
// labels and which cluster pairs interact most strongly in S.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/trienrich/config"
)

// app is the state shared by the subcommands of one invocation.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "trienrich",
		Short: "Cluster enrichment report for a CROW tri-factorization",
		Long: `trienrich reduces the U and V factors of X ≈ U·S·Vᵀ to hard cluster
assignments, tests every (cluster, label) pair with Fisher's exact test and
lists the strongest cluster interactions of S.

Inputs are read from the data directory (matrix, row and column label CSVs)
and from $CROW_HOME/results (U.npz, S.npz, V.npz).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger, err = newLogger(cfg.Logging, a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "trienrich.yaml", "config file (YAML); missing file means defaults")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(a.newReportCmd(), a.newAnalyzeCmd(), a.newCheckCmd())

	return root
}

// newLogger builds the production (or development) zap logger at the
// configured level; verbose forces debug.
func newLogger(lc config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if lc.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
