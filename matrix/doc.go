// SPDX-License-Identifier: MIT

// Package matrix stores the dense score matrices produced by a tri-factorization.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked accessors.
//   - Sentinel errors shared by every consumer (ErrDimensionMismatch, ErrNegative, ...).
//   - Validators for the shape and numeric contracts of score matrices
//     (finite values, non-negative weights, expected row counts).
//
// U (entity × row-group) and V (entity × column-group) must be non-negative;
// S (row-group × column-group) only needs to be finite.
//
// Complexity: At/Set O(1); Clone, validators O(r*c).
package matrix
