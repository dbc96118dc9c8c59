// SPDX-License-Identifier: MIT

// Package assign reduces soft factorization weights to hard group assignments.
//
// Every entity (row of U or V) is assigned the column holding its strictly
// largest weight. The scan is seeded with value 0 at column 0 and only a
// strictly greater value replaces the candidate, which yields two fixed rules:
//
//   - ties go to the lowest column index;
//   - a row whose entries are all ≤ 0 lands in group 0.
//
// The second rule changes reported cluster sizes when rows are empty, and it is
// kept exactly as is so reports stay comparable with earlier runs.
//
// Usage:
//
//	a, err := assign.Reduce(U)
//	sizes := a.Sizes(U.Cols())
//
// Complexity: O(n·k) time, O(n) memory.
package assign
