// SPDX-License-Identifier: MIT

package assign

import "sort"

// GroupID is the index of a row-group or column-group (a column of U or V).
type GroupID int

// HardAssignment holds one group per entity, aligned with the rows of the
// score matrix it was reduced from. Treat it as immutable once computed.
type HardAssignment []GroupID

// Groups returns the distinct groups that own at least one entity, ascending.
// Complexity: O(n log n).
func (a HardAssignment) Groups() []GroupID {
	seen := make(map[GroupID]struct{}, len(a))
	out := make([]GroupID, 0)
	for _, g := range a {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Sizes counts entities per group for k groups. Groups outside [0,k) are ignored.
// Complexity: O(n + k).
func (a HardAssignment) Sizes(k int) []int {
	if k < 0 {
		k = 0
	}
	sizes := make([]int, k)
	for _, g := range a {
		if int(g) >= 0 && int(g) < k {
			sizes[g]++
		}
	}

	return sizes
}
