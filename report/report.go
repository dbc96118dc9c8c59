// SPDX-License-Identifier: MIT

package report

import (
	"fmt"

	"github.com/katalvlaran/trienrich/assign"
	"github.com/katalvlaran/trienrich/enrich"
	"github.com/katalvlaran/trienrich/matrix"
)

// Defaults for report sizes and section titles.
const (
	DefaultGroupTopK       = 5
	DefaultInteractionTopK = 3
	DefaultInteractions    = 10

	DefaultRowTitle = "Row clusters"
	DefaultColTitle = "Column clusters"
	DefaultRowName  = "Cancer cluster"
	DefaultColName  = "GO cluster"
)

// Options sizes and labels a Report.
type Options struct {
	GroupTopK       int // labels listed per group
	InteractionTopK int // labels listed per side of an interaction
	Interactions    int // interactions listed

	RowTitle string // section title for row-group enrichment
	ColTitle string // section title for column-group enrichment
	RowName  string // prefix for row groups in the interaction section
	ColName  string // prefix for column groups in the interaction section
}

// DefaultOptions returns the sizes and titles of the standard report.
func DefaultOptions() Options {
	return Options{
		GroupTopK:       DefaultGroupTopK,
		InteractionTopK: DefaultInteractionTopK,
		Interactions:    DefaultInteractions,
		RowTitle:        DefaultRowTitle,
		ColTitle:        DefaultColTitle,
		RowName:         DefaultRowName,
		ColName:         DefaultColName,
	}
}

func (o Options) validate() error {
	switch {
	case o.GroupTopK <= 0:
		return fmt.Errorf("%w: GroupTopK=%d", ErrInvalidLimit, o.GroupTopK)
	case o.InteractionTopK <= 0:
		return fmt.Errorf("%w: InteractionTopK=%d", ErrInvalidLimit, o.InteractionTopK)
	case o.Interactions <= 0:
		return fmt.Errorf("%w: Interactions=%d", ErrInvalidLimit, o.Interactions)
	}

	return nil
}

// LabelLine is one ranked label with its statistics.
type LabelLine struct {
	Label     string
	OddsRatio float64
	PValue    float64
}

// GroupSection lists the top labels of one group.
type GroupSection struct {
	Group assign.GroupID
	Size  int
	Top   []LabelLine
}

// InteractionSection is one ranked interaction and the labels of both sides.
type InteractionSection struct {
	Rank int
	Interaction
	RowLabels []string
	ColLabels []string
}

// Report is the in-memory result of one run.
type Report struct {
	RunID        string
	Options      Options
	RowGroups    []GroupSection
	ColGroups    []GroupSection
	Interactions []InteractionSection
}

// Build assembles a Report from the row-side and column-side enrichment and S.
//
// Implementation:
//   - Stage 1: validate sizes (ErrInvalidLimit) and inputs.
//   - Stage 2: top-K labels per group for both sides.
//   - Stage 3: RankInteractions(S, N); each record gets the top InteractionTopK
//     labels of its row group and column group (empty when the group has none).
func Build(rows, cols *enrich.Result, S matrix.Matrix, opts Options) (*Report, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if rows == nil || cols == nil {
		return nil, fmt.Errorf("report.Build: %w", enrich.ErrNilMembership)
	}

	rep := &Report{
		Options:   opts,
		RowGroups: groupSections(rows, opts.GroupTopK),
		ColGroups: groupSections(cols, opts.GroupTopK),
	}

	ranked, err := RankInteractions(S, opts.Interactions)
	if err != nil {
		return nil, err
	}
	rep.Interactions = make([]InteractionSection, 0, len(ranked))
	for k, it := range ranked {
		rg, _ := rows.Group(it.Row)
		cg, _ := cols.Group(it.Col)
		rep.Interactions = append(rep.Interactions, InteractionSection{
			Rank:        k,
			Interaction: it,
			RowLabels:   labelsOf(TopLabels(rg, opts.InteractionTopK)),
			ColLabels:   labelsOf(TopLabels(cg, opts.InteractionTopK)),
		})
	}

	return rep, nil
}

func groupSections(res *enrich.Result, k int) []GroupSection {
	out := make([]GroupSection, 0, len(res.Groups))
	for _, gr := range res.Groups {
		top := TopLabels(gr, k)
		lines := make([]LabelLine, len(top))
		for i, e := range top {
			lines[i] = LabelLine{Label: e.Label, OddsRatio: e.OddsRatio, PValue: e.PValue}
		}
		out = append(out, GroupSection{Group: gr.Group, Size: gr.Size, Top: lines})
	}

	return out
}

func labelsOf(entries []enrich.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Label
	}

	return out
}
