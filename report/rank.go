// SPDX-License-Identifier: MIT

package report

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/trienrich/assign"
	"github.com/katalvlaran/trienrich/enrich"
	"github.com/katalvlaran/trienrich/matrix"
)

// ErrInvalidLimit is returned for a non-positive ranking size.
var ErrInvalidLimit = errors.New("report: limit must be > 0")

// Interaction is one cell of the interaction matrix S.
type Interaction struct {
	Row   assign.GroupID
	Col   assign.GroupID
	Score float64
}

// RankLabels returns the entries of gr ordered by ascending p-value.
// Equal p-values keep their original (first-seen) order. gr is not modified.
// Complexity: O(L log L).
func RankLabels(gr enrich.GroupResult) []enrich.Entry {
	out := append([]enrich.Entry(nil), gr.Entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PValue < out[j].PValue })

	return out
}

// TopLabels returns at most k entries of RankLabels(gr).
func TopLabels(gr enrich.GroupResult, k int) []enrich.Entry {
	ranked := RankLabels(gr)
	if k < len(ranked) {
		ranked = ranked[:k]
	}

	return ranked
}

// Interactions flattens S row-major into one record per (row group, column group).
// Complexity: O(r*c).
func Interactions(S matrix.Matrix) ([]Interaction, error) {
	if err := matrix.ValidateNotNil(S); err != nil {
		return nil, fmt.Errorf("report.Interactions: %w", err)
	}
	r, c := S.Rows(), S.Cols()
	out := make([]Interaction, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := S.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("report.Interactions: %w", err)
			}
			out = append(out, Interaction{Row: assign.GroupID(i), Col: assign.GroupID(j), Score: v})
		}
	}

	return out, nil
}

// RankInteractions returns the n highest-scoring interactions, descending.
// Equal scores keep row-major order; n larger than r*c clamps to r*c.
// Errors: ErrInvalidLimit for n ≤ 0, matrix.ErrNilMatrix.
// Complexity: O(rc log rc).
func RankInteractions(S matrix.Matrix, n int) ([]Interaction, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, n)
	}
	all, err := Interactions(S)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Score > all[j].Score })
	if n < len(all) {
		all = all[:n]
	}

	return all, nil
}
