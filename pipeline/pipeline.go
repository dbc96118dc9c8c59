// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/trienrich/assign"
	"github.com/katalvlaran/trienrich/enrich"
	"github.com/katalvlaran/trienrich/matrix"
	"github.com/katalvlaran/trienrich/membership"
	"github.com/katalvlaran/trienrich/metrics"
	"github.com/katalvlaran/trienrich/report"
)

// Stage names used in logs and metrics.
const (
	StageValidate = "validate"
	StageReduce   = "reduce"
	StageBuild    = "build"
	StageEnrich   = "enrich"
	StageRank     = "rank"
)

// Inputs are the factors and the label lists aligned with their rows:
// RowLabels[i] describes row i of U, ColLabels[j] row j of V.
type Inputs struct {
	U, S, V   matrix.Matrix
	RowLabels []membership.LabeledEntity
	ColLabels []membership.LabeledEntity
}

// Options configures Run. The zero value is usable: zero report sizes fall
// back to report.DefaultOptions and zero Workers runs sequentially.
type Options struct {
	Report         report.Options
	Workers        int
	RowPolicy      membership.SplitPolicy
	ColPolicy      membership.SplitPolicy
	ValidateScores bool // reject negative or NaN entries in U and V

	Logger  *zap.Logger
	Metrics *metrics.Recorder
}

// DefaultOptions returns the standard report sizes, one label per row
// entity, ';'-separated column labels and score validation on.
func DefaultOptions() Options {
	return Options{
		Report:         report.DefaultOptions(),
		Workers:        1,
		RowPolicy:      membership.RowPolicy,
		ColPolicy:      membership.ColumnPolicy,
		ValidateScores: true,
	}
}

// Result carries the report and the intermediate products of a run.
type Result struct {
	Report    *report.Report
	RowAssign assign.HardAssignment
	ColAssign assign.HardAssignment
	Rows      *enrich.Result
	Cols      *enrich.Result
}

// side is the per-axis state threaded through the stages.
type side struct {
	name     string
	scores   matrix.Matrix
	labels   []membership.LabeledEntity
	policy   membership.SplitPolicy
	assign   assign.HardAssignment
	clusters *membership.ClusterMembership
	result   *enrich.Result
}

// Run executes all stages. ctx is checked between stages.
//
// Errors: *membership.ShapeMismatchError, *membership.MalformedLabelError,
// matrix validation errors, enrich.ErrInvariant, report.ErrInvalidLimit,
// or ctx.Err().
func Run(ctx context.Context, in Inputs, opts Options) (*Result, error) {
	if opts.Report == (report.Options{}) {
		opts.Report = report.DefaultOptions()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	runID := uuid.NewString()
	log = log.With(zap.String("run_id", runID))

	rows := &side{name: metrics.SideRow, scores: in.U, labels: in.RowLabels, policy: opts.RowPolicy}
	cols := &side{name: metrics.SideCol, scores: in.V, labels: in.ColLabels, policy: opts.ColPolicy}

	stage := func(name string, fn func() error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		if err := fn(); err != nil {
			log.Error("stage failed", zap.String("stage", name), zap.Error(err))
			return err
		}
		d := time.Since(start)
		opts.Metrics.ObserveStage(name, d)
		log.Debug("stage done", zap.String("stage", name), zap.Duration("duration", d))

		return nil
	}

	// Stage 1 (Validate).
	err := stage(StageValidate, func() error { return validate(in, opts.ValidateScores) })
	if err != nil {
		return nil, err
	}

	// Stage 2 (Reduce).
	err = stage(StageReduce, func() error {
		for _, s := range []*side{rows, cols} {
			a, err := assign.Reduce(s.scores)
			if err != nil {
				return fmt.Errorf("pipeline: reduce %s: %w", s.name, err)
			}
			s.assign = a
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Stage 3 (Build).
	err = stage(StageBuild, func() error {
		for _, s := range []*side{rows, cols} {
			cm, err := membership.Build(s.assign, s.labels, s.policy)
			if err != nil {
				return err
			}
			s.clusters = membership.Invert(cm)
			opts.Metrics.SetEntities(s.name, len(s.labels))
			opts.Metrics.SetGroups(s.name, len(s.clusters.Groups()))
			log.Info("membership built",
				zap.String("side", s.name),
				zap.Int("entities", len(s.labels)),
				zap.Int("occurrences", cm.Len()),
				zap.Int("labels", len(cm.Labels())),
				zap.Int("groups", len(s.clusters.Groups())))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Stage 4 (Enrich).
	err = stage(StageEnrich, func() error {
		for _, s := range []*side{rows, cols} {
			res, err := enrich.Analyze(s.clusters, enrich.WithWorkers(opts.Workers))
			if err != nil {
				return fmt.Errorf("pipeline: enrich %s: %w", s.name, err)
			}
			s.result = res
			opts.Metrics.AddTables(s.name, res.Entries())
			opts.Metrics.AddSignificant(s.name, significant(res))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Stage 5 (Rank).
	var rep *report.Report
	err = stage(StageRank, func() error {
		var err error
		rep, err = report.Build(rows.result, cols.result, in.S, opts.Report)

		return err
	})
	if err != nil {
		return nil, err
	}
	rep.RunID = runID
	log.Info("report ready",
		zap.Int("row_groups", len(rep.RowGroups)),
		zap.Int("col_groups", len(rep.ColGroups)),
		zap.Int("interactions", len(rep.Interactions)))

	return &Result{
		Report:    rep,
		RowAssign: rows.assign,
		ColAssign: cols.assign,
		Rows:      rows.result,
		Cols:      cols.result,
	}, nil
}

// validate checks nil factors, label alignment and the shape of S.
func validate(in Inputs, scores bool) error {
	for _, m := range []struct {
		name string
		m    matrix.Matrix
	}{{"U", in.U}, {"S", in.S}, {"V", in.V}} {
		if err := matrix.ValidateNotNil(m.m); err != nil {
			return fmt.Errorf("pipeline: %s: %w", m.name, err)
		}
	}

	checks := []struct {
		what      string
		want, got int
	}{
		{"rows(U) vs row labels", in.U.Rows(), len(in.RowLabels)},
		{"rows(V) vs column labels", in.V.Rows(), len(in.ColLabels)},
		{"rows(S) vs cols(U)", in.U.Cols(), in.S.Rows()},
		{"cols(S) vs cols(V)", in.V.Cols(), in.S.Cols()},
	}
	for _, c := range checks {
		if c.want != c.got {
			return &membership.ShapeMismatchError{What: c.what, Want: c.want, Got: c.got}
		}
	}

	if scores {
		if err := assign.ValidateScores(in.U); err != nil {
			return fmt.Errorf("pipeline: U: %w", err)
		}
		if err := assign.ValidateScores(in.V); err != nil {
			return fmt.Errorf("pipeline: V: %w", err)
		}
	}

	if err := matrix.ValidateFinite(in.S); err != nil {
		return fmt.Errorf("pipeline: S: %w", err)
	}

	return nil
}

// significant counts entries with p below metrics.SignificanceLevel.
func significant(res *enrich.Result) int {
	n := 0
	for _, gr := range res.Groups {
		for _, e := range gr.Entries {
			if e.PValue < metrics.SignificanceLevel {
				n++
			}
		}
	}

	return n
}
