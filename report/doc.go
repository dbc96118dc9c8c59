// SPDX-License-Identifier: MIT

// Package report ranks enrichment results and interaction scores and turns
// them into a Report with three sections:
//
//   - row-group enrichment: top labels of every row group by ascending p-value;
//   - column-group enrichment: the same for column groups;
//   - strongest interactions: the top N cells of S, each annotated with the
//     most significant labels of its row group and column group.
//
// All sorts are stable: equal p-values keep label first-seen order, equal
// scores keep row-major order. Oversized limits clamp to what is available.
//
// The Report is a plain value; WriteText and WriteXLSX render it to a sink.
package report
