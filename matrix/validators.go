// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single source of truth for the shape and numeric checks applied
//    to score matrices before they enter the reporting pipeline.
//  - Return sentinel errors wrapped with a validator tag so call sites can match with errors.Is.
//
// Determinism & Performance:
//  - All checks are pure and deterministic; full scans are O(r*c) in i→j order,
//    so the first reported offender is always the same one.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Returns ErrNilMatrix if m == nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateRows ensures m has exactly n rows.
// Returns ErrNilMatrix or wrapped ErrDimensionMismatch.
// Complexity: O(1).
func ValidateRows(m Matrix, n int) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != n {
		return validatorErrorf(fmt.Sprintf("ValidateRows: got %d, want %d", m.Rows(), n), ErrDimensionMismatch)
	}

	return nil
}

// ValidateShape ensures m is exactly rows×cols.
// Complexity: O(1).
func ValidateShape(m Matrix, rows, cols int) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != rows || m.Cols() != cols {
		return validatorErrorf(
			fmt.Sprintf("ValidateShape: got %dx%d, want %dx%d", m.Rows(), m.Cols(), rows, cols),
			ErrDimensionMismatch,
		)
	}

	return nil
}

// ValidateFinite scans m and rejects the first NaN or ±Inf.
// Complexity: O(r*c).
func ValidateFinite(m Matrix) error {
	return scan(m, "ValidateFinite", func(v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNaNInf
		}

		return nil
	})
}

// ValidateNonNegative scans m and rejects the first NaN, ±Inf or negative entry.
// Soft assignment weights (U, V) must satisfy this contract.
// Complexity: O(r*c).
func ValidateNonNegative(m Matrix) error {
	return scan(m, "ValidateNonNegative", func(v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNaNInf
		}
		if v < 0 {
			return ErrNegative
		}

		return nil
	})
}

// scan applies check to every element in i→j order and tags the first failure
// with its coordinates. Dense uses the flat buffer; other implementations go through At.
func scan(m Matrix, tag string, check func(float64) error) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	r, c := m.Rows(), m.Cols()
	var i, j int
	if d, ok := m.(*Dense); ok {
		for i = 0; i < r; i++ {
			base := i * c
			for j = 0; j < c; j++ {
				if err := check(d.data[base+j]); err != nil {
					return validatorErrorf(fmt.Sprintf("%s(%d,%d)", tag, i, j), err)
				}
			}
		}

		return nil
	}
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return validatorErrorf(tag, err)
			}
			if err = check(v); err != nil {
				return validatorErrorf(fmt.Sprintf("%s(%d,%d)", tag, i, j), err)
			}
		}
	}

	return nil
}
