// SPDX-License-Identifier: MIT

// Package enrich computes label enrichment for every group of a ClusterMembership.
//
// For each group G and each label L observed in G it builds
//
//	a = count of L in G            b = |G| − a
//	c = count of L outside G       d = (total − |G|) − c
//
// and runs the two-sided Fisher exact test on [[a,b],[c,d]]. Only pairs that
// co-occur at least once are reported; zero counts never produce an entry.
//
// The per-group work is independent, so WithWorkers(n) fans groups out over an
// errgroup. Each worker writes only its own result slot and the arithmetic is
// integer until the final test, so parallel output is identical to sequential.
//
// Complexity: O(occurrences + Σ_G labels(G) · cost(fisher.Exact)).
package enrich
