// SPDX-License-Identifier: MIT

// Package membership turns hard assignments plus entity labels into the two
// membership views the enrichment step consumes.
//
//   - ClassMembership:   label → group of every occurrence of that label.
//   - ClusterMembership: group → labels of every entity assigned to it.
//
// Multiplicity is preserved in both directions: an entity carrying k labels
// contributes k occurrences, and repeated (group, label) pairs are never
// de-duplicated, because they are the frequencies the Fisher test counts.
//
// Ordering is deterministic: labels keep first-seen order, groups are ascending.
package membership
