// SPDX-License-Identifier: MIT

package enrich

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/trienrich/assign"
	"github.com/katalvlaran/trienrich/fisher"
	"github.com/katalvlaran/trienrich/membership"
)

// groupCounts is the frequency table of one group.
type groupCounts struct {
	group  assign.GroupID
	order  []string
	counts map[string]int
	size   int
}

// Analyze computes the EnrichmentResult of cm.
//
// Implementation:
//   - Stage 1: per group, frequency-count its labels (countInGroup, totalForGroup).
//   - Stage 2: sum totalForLabel across groups and the grand total once.
//   - Stage 3: per group, totalOtherGroups = grand − totalForGroup[G]; for every
//     label build [[a,b],[c,d]], check its invariants and run fisher.Exact.
//   - Stage 4: assemble groups ascending, labels in first-seen order.
//
// Errors: ErrNilMembership; ErrInvariant (wrapping fisher.ErrNegativeCell when a cell is negative).
func Analyze(cm *membership.ClusterMembership, opts ...Option) (*Result, error) {
	if cm == nil {
		return nil, ErrNilMembership
	}
	o := gatherOptions(opts...)

	// Stage 1 (Count).
	groups := cm.Groups()
	per := make([]groupCounts, len(groups))
	totalForLabel := make(map[string]int)
	grand := 0
	for i, g := range groups {
		labels := cm.Labels(g)
		order, counts := frequencies(labels)
		per[i] = groupCounts{group: g, order: order, counts: counts, size: len(labels)}

		// Stage 2 (Totals).
		for _, l := range order {
			totalForLabel[l] += counts[l]
		}
		grand += len(labels)
	}

	// Stage 3 (Test).
	out := make([]GroupResult, len(per))
	analyzeOne := func(i int) error {
		gr, err := analyzeGroup(per[i], totalForLabel, grand)
		if err != nil {
			return err
		}
		out[i] = gr

		return nil
	}

	if o.workers <= 1 || len(per) < 2 {
		for i := range per {
			if err := analyzeOne(i); err != nil {
				return nil, err
			}
		}
	} else {
		var eg errgroup.Group
		eg.SetLimit(o.workers)
		for i := range per {
			eg.Go(func() error { return analyzeOne(i) })
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	// Stage 4 (Assemble).
	res := &Result{Groups: out, Total: grand, index: make(map[assign.GroupID]int, len(out))}
	for i, gr := range out {
		res.index[gr.Group] = i
	}

	return res, nil
}

// analyzeGroup builds and tests the tables of a single group.
func analyzeGroup(gc groupCounts, totalForLabel map[string]int, grand int) (GroupResult, error) {
	otherGroups := grand - gc.size
	gr := GroupResult{Group: gc.group, Size: gc.size, Entries: make([]Entry, 0, len(gc.order))}
	for _, label := range gc.order {
		a := gc.counts[label]
		b := gc.size - a
		c := totalForLabel[label] - a
		d := otherGroups - c

		tbl, err := fisher.NewTable(a, b, c, d)
		if err != nil {
			return GroupResult{}, fmt.Errorf("%w: group %d label %q: %w", ErrInvariant, gc.group, label, err)
		}
		if err = checkMargins(tbl, gc.size, totalForLabel[label], grand); err != nil {
			return GroupResult{}, fmt.Errorf("%w: group %d label %q: %v", ErrInvariant, gc.group, label, err)
		}

		res := fisher.Exact(tbl)
		gr.Entries = append(gr.Entries, Entry{
			Label:     label,
			Table:     tbl,
			OddsRatio: res.OddsRatio,
			PValue:    res.PValue,
		})
	}

	return gr, nil
}

// checkMargins verifies a+b = group size, a+c = label total, a+b+c+d = grand total.
func checkMargins(t fisher.ContingencyTable, groupSize, labelTotal, grand int) error {
	a, b, c, _ := t.Cells()
	switch {
	case a+b != groupSize:
		return fmt.Errorf("a+b=%d, group size %d", a+b, groupSize)
	case a+c != labelTotal:
		return fmt.Errorf("a+c=%d, label total %d", a+c, labelTotal)
	case t.Total() != grand:
		return fmt.Errorf("a+b+c+d=%d, grand total %d", t.Total(), grand)
	}

	return nil
}
