// SPDX-License-Identifier: MIT

package enrich

// frequencies counts label occurrences. order holds each distinct label once,
// in first-seen order; counts never holds a zero.
// Complexity: O(len(labels)).
func frequencies(labels []string) (order []string, counts map[string]int) {
	counts = make(map[string]int, len(labels))
	for _, l := range labels {
		if counts[l] == 0 {
			order = append(order, l)
		}
		counts[l]++
	}

	return order, counts
}
