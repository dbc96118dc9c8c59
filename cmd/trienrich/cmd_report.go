// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/trienrich/crow"
	"github.com/katalvlaran/trienrich/dataio"
	"github.com/katalvlaran/trienrich/membership"
	"github.com/katalvlaran/trienrich/metrics"
	"github.com/katalvlaran/trienrich/pipeline"
	"github.com/katalvlaran/trienrich/report"
)

// reportFlags override the report section of the config when set.
type reportFlags struct {
	xlsx    string
	latex   bool
	color   bool
	workers int
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.xlsx, "xlsx", "", "also write the report as an Excel workbook")
	cmd.Flags().BoolVar(&f.latex, "latex", false, `render p-values as "m \cdot 10^{ e }"`)
	cmd.Flags().BoolVar(&f.color, "color", false, "style section titles")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "parallel enrichment workers (0 = config)")
}

func (a *app) newReportCmd() *cobra.Command {
	var (
		flags   reportFlags
		results string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report on the results of a finished factorization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := results
			if dir == "" {
				dir = filepath.Join(a.cfg.CrowHome(), crow.ResultsDir)
			}

			return a.run(cmd, crow.ResultsProvider{Dir: dir}, flags)
		},
	}
	cmd.Flags().StringVarP(&results, "results", "r", "", "directory holding U.npz, S.npz, V.npz (default $CROW_HOME/results)")
	flags.register(cmd)

	return cmd
}

func (a *app) newAnalyzeCmd() *cobra.Command {
	var flags reportFlags
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the CROW factorization, then report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &crow.Runner{
				Home:   a.cfg.CrowHome(),
				Binary: a.cfg.Crow.Binary,
				Stdout: cmd.OutOrStdout(),
				Logger: a.logger,
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Factorization started, please wait...")

			return a.run(cmd, runner, flags)
		},
	}
	flags.register(cmd)

	return cmd
}

// run obtains the factors from p, runs the pipeline and writes every sink.
func (a *app) run(cmd *cobra.Command, p crow.Provider, flags reportFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := a.cfg

	factors, err := p.Factorize(ctx, cfg.Request())
	if err != nil {
		return err
	}
	rows, err := dataio.LoadLabels(cfg.Path(cfg.Data.RowLabels), cfg.LabelOptions())
	if err != nil {
		return err
	}
	cols, err := dataio.LoadLabels(cfg.Path(cfg.Data.ColLabels), cfg.LabelOptions())
	if err != nil {
		return err
	}

	rec := metrics.New()
	opts := pipeline.Options{
		Report:         cfg.ReportOptions(),
		Workers:        cfg.Report.Workers,
		RowPolicy:      membership.RowPolicy,
		ColPolicy:      membership.ColumnPolicy,
		ValidateScores: true,
		Logger:         a.logger,
		Metrics:        rec,
	}
	if flags.workers > 0 {
		opts.Workers = flags.workers
	}
	res, err := pipeline.Run(ctx, pipeline.Inputs{
		U: factors.U, S: factors.S, V: factors.V,
		RowLabels: rows, ColLabels: cols,
	}, opts)
	if err != nil {
		return err
	}

	text := report.TextOptions{
		Color: cfg.Report.Color || flags.color,
		Latex: cfg.Report.Latex || flags.latex,
	}
	if err = report.WriteText(cmd.OutOrStdout(), res.Report, text); err != nil {
		return err
	}

	xlsx := cfg.Report.XLSX
	if flags.xlsx != "" {
		xlsx = flags.xlsx
	}
	if xlsx != "" {
		if err = writeXLSX(xlsx, res.Report); err != nil {
			return err
		}
		a.logger.Info("workbook written", zap.String("path", xlsx))
	}
	if cfg.Metrics.Textfile != "" {
		if err = rec.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return err
		}
	}

	return nil
}

func writeXLSX(path string, r *report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = report.WriteXLSX(f, r); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
