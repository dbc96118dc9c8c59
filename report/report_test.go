// SPDX-License-Identifier: MIT

package report_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/katalvlaran/trienrich/assign"
	"github.com/katalvlaran/trienrich/enrich"
	"github.com/katalvlaran/trienrich/matrix"
	"github.com/katalvlaran/trienrich/membership"
	"github.com/katalvlaran/trienrich/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func analyze(t *testing.T, labels []string, groups []assign.GroupID) *enrich.Result {
	t.Helper()
	cm := membership.NewClassMembership()
	for i := range labels {
		cm.Add(labels[i], groups[i])
	}
	res, err := enrich.Analyze(membership.Invert(cm))
	require.NoError(t, err)

	return res
}

func dense(t *testing.T, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err)

	return m
}

// fixture: rows separate perfectly, columns overlap on label y.
func fixture(t *testing.T) (*enrich.Result, *enrich.Result, *matrix.Dense) {
	t.Helper()
	rows := analyze(t, []string{"A", "A", "B", "B"}, []assign.GroupID{0, 0, 1, 1})
	cols := analyze(t, []string{"x", "x", "y", "y"}, []assign.GroupID{0, 0, 0, 1})
	S := dense(t, 2, 2, []float64{0.1, 0.9, 0.9, 0.2})

	return rows, cols, S
}

func TestRankLabels_StableAscending(t *testing.T) {
	t.Parallel()

	gr := enrich.GroupResult{Entries: []enrich.Entry{
		{Label: "a", PValue: 0.5},
		{Label: "b", PValue: 0.01},
		{Label: "c", PValue: 0.5},
		{Label: "d", PValue: 0.2},
	}}
	var got []string
	for _, e := range report.RankLabels(gr) {
		got = append(got, e.Label)
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, got)
	assert.Equal(t, "a", gr.Entries[0].Label, "input must not be reordered")

	assert.Len(t, report.TopLabels(gr, 2), 2)
	assert.Len(t, report.TopLabels(gr, 50), 4)
}

func TestRankInteractions_SortedStableClamped(t *testing.T) {
	t.Parallel()

	S := dense(t, 2, 3, []float64{
		0.5, 0.9, 0.5,
		0.1, 0.9, 0.3,
	})
	got, err := report.RankInteractions(S, 4)
	require.NoError(t, err)
	want := []report.Interaction{
		{Row: 0, Col: 1, Score: 0.9},
		{Row: 1, Col: 1, Score: 0.9},
		{Row: 0, Col: 0, Score: 0.5},
		{Row: 0, Col: 2, Score: 0.5},
	}
	assert.Equal(t, want, got)

	all, err := report.RankInteractions(S, 100)
	require.NoError(t, err)
	require.Len(t, all, 6)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].Score, all[i].Score)
	}

	_, err = report.RankInteractions(S, 0)
	require.ErrorIs(t, err, report.ErrInvalidLimit)
	_, err = report.RankInteractions(nil, 3)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestBuild_Sections(t *testing.T) {
	t.Parallel()

	rows, cols, S := fixture(t)
	opts := report.DefaultOptions()
	opts.Interactions = 3
	rep, err := report.Build(rows, cols, S, opts)
	require.NoError(t, err)

	require.Len(t, rep.RowGroups, 2)
	require.Len(t, rep.ColGroups, 2)
	require.Len(t, rep.Interactions, 3)

	top := rep.RowGroups[0].Top[0]
	assert.Equal(t, "A", top.Label)
	assert.True(t, math.IsInf(top.OddsRatio, 1))
	assert.InDelta(t, 1.0/3.0, top.PValue, 1e-12)

	first := rep.Interactions[0]
	assert.Equal(t, assign.GroupID(0), first.Row)
	assert.Equal(t, assign.GroupID(1), first.Col)
	assert.Equal(t, []string{"A"}, first.RowLabels)
	assert.Equal(t, []string{"y"}, first.ColLabels)
	assert.Equal(t, assign.GroupID(1), rep.Interactions[1].Row, "ties keep row-major order")
}

func TestBuild_EmptyGroupHasNoLabels(t *testing.T) {
	t.Parallel()

	rows, cols, _ := fixture(t)
	S := dense(t, 3, 2, []float64{0, 0, 0, 0, 5, 0}) // row group 2 owns no entities
	rep, err := report.Build(rows, cols, S, report.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, assign.GroupID(2), rep.Interactions[0].Row)
	assert.Empty(t, rep.Interactions[0].RowLabels)
}

func TestBuild_InvalidOptions(t *testing.T) {
	t.Parallel()

	rows, cols, S := fixture(t)
	opts := report.DefaultOptions()
	opts.GroupTopK = 0
	_, err := report.Build(rows, cols, S, opts)
	require.ErrorIs(t, err, report.ErrInvalidLimit)
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	rows, cols, S := fixture(t)
	opts := report.DefaultOptions()
	opts.Interactions = 3
	rep, err := report.Build(rows, cols, S, opts)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, rep, report.TextOptions{}))
	out := buf.String()

	for _, line := range []string{
		"Row clusters\nCluster 0:\ninf     p-value: 0.333333333333       A\n",
		"Column clusters\n",
		"3 Strongest Interactions in S matrix:\nInteraction 0 0.9\nCancer cluster 00 [A]\nGO cluster     01 [y]\n",
	} {
		assert.Contains(t, out, line)
	}
	assert.Equal(t, 3, strings.Count(out, "---------------------------------------\n"))
}

func TestWriteText_LatexAndColor(t *testing.T) {
	t.Parallel()

	rows, cols, S := fixture(t)
	rep, err := report.Build(rows, cols, S, report.DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, rep, report.TextOptions{Color: true, Latex: true}))
	out := buf.String()

	assert.Contains(t, out, `inf     p-value: 3.33 \cdot 10^{ -01 } A`)
	assert.Contains(t, out, "Row clusters")
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "inf", report.FormatRatio(math.Inf(1)))
	assert.Equal(t, "20.00", report.FormatRatio(20))
	assert.Equal(t, "0.034965034965", report.FormatPValue(0.03496503496503496))
	assert.Equal(t, `1.23 \cdot 10^{ -05 }`, report.FormatLatex(1.234e-5, 2, 2))
	assert.Equal(t, `5.00 \cdot 10^{ +000 }`, report.FormatLatex(5, 2, 3))
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()

	rows, cols, S := fixture(t)
	rep, err := report.Build(rows, cols, S, report.DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteXLSX(&buf, rep))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{report.SheetRowGroups, report.SheetColGroups, report.SheetInteractions}, f.GetSheetList())

	got, err := f.GetRows(report.SheetRowGroups)
	require.NoError(t, err)
	require.Len(t, got, 3) // header + one label per row group
	assert.Equal(t, []string{"Group", "Size", "Rank", "Label", "Odds ratio", "p-value"}, got[0])
	assert.Equal(t, "A", got[1][3])
	assert.Equal(t, "inf", got[1][4])

	inter, err := f.GetRows(report.SheetInteractions)
	require.NoError(t, err)
	assert.Len(t, inter, 5) // header + 4 cells of S (limit 10 clamps)
}
