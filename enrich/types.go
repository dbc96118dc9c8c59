// SPDX-License-Identifier: MIT

package enrich

import (
	"errors"

	"github.com/katalvlaran/trienrich/assign"
	"github.com/katalvlaran/trienrich/fisher"
)

var (
	// ErrInvariant indicates a contingency table that breaks its margin
	// invariants. It means the membership was built wrongly and is fatal.
	ErrInvariant = errors.New("enrich: contingency invariant violated")

	// ErrNilMembership is returned when Analyze receives a nil membership.
	ErrNilMembership = errors.New("enrich: nil cluster membership")
)

// Entry is the enrichment of one label inside one group.
type Entry struct {
	Label     string
	Table     fisher.ContingencyTable
	OddsRatio float64 // +Inf when unbounded, see fisher.IsUnbounded
	PValue    float64
}

// GroupResult lists the entries of one group in label first-seen order.
type GroupResult struct {
	Group   assign.GroupID
	Size    int // label occurrences in the group (a+b of every entry)
	Entries []Entry
}

// Result is the enrichment of every non-empty group, groups ascending.
type Result struct {
	Groups []GroupResult
	Total  int // label occurrences across all groups

	index map[assign.GroupID]int
}

// Group returns the result for g, if g holds any label occurrence.
func (r *Result) Group(g assign.GroupID) (GroupResult, bool) {
	i, ok := r.index[g]
	if !ok {
		return GroupResult{Group: g}, false
	}

	return r.Groups[i], true
}

// Lookup returns the entry for label inside group g.
func (r *Result) Lookup(g assign.GroupID, label string) (Entry, bool) {
	gr, ok := r.Group(g)
	if !ok {
		return Entry{}, false
	}
	for _, e := range gr.Entries {
		if e.Label == label {
			return e, true
		}
	}

	return Entry{}, false
}

// Map returns the group → label → Entry view of the result.
func (r *Result) Map() map[assign.GroupID]map[string]Entry {
	out := make(map[assign.GroupID]map[string]Entry, len(r.Groups))
	for _, gr := range r.Groups {
		m := make(map[string]Entry, len(gr.Entries))
		for _, e := range gr.Entries {
			m[e.Label] = e
		}
		out[gr.Group] = m
	}

	return out
}

// Entries returns the number of (group, label) entries.
func (r *Result) Entries() int {
	n := 0
	for _, gr := range r.Groups {
		n += len(gr.Entries)
	}

	return n
}
