// SPDX-License-Identifier: MIT

package assign

import (
	"fmt"

	"github.com/katalvlaran/trienrich/matrix"
)

const opReduce = "assign.Reduce"

// Reduce converts a soft score matrix X (n entities × k groups) into a
// HardAssignment of length n.
//
// Implementation:
//   - Stage 1: validate X is non-nil.
//   - Stage 2: for each row, scan columns left→right with candidate (value 0, column 0);
//     replace the candidate only when X[i,j] is strictly greater.
//   - Stage 3: record the candidate column for the row.
//
// Behavior highlights:
//   - Ties keep the lowest column; all-≤0 rows are assigned group 0.
//   - *Dense is scanned over its flat buffer; other Matrix types go through At.
//
// Errors: matrix.ErrNilMatrix, or a wrapped accessor error from the fallback path.
// Complexity: O(n·k).
func Reduce(X matrix.Matrix) (HardAssignment, error) {
	// Stage 1 (Validate).
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, fmt.Errorf("%s: %w", opReduce, err)
	}

	n, k := X.Rows(), X.Cols()
	out := make(HardAssignment, n)

	// Stage 2 (Execute, fast path).
	if d, ok := X.(*matrix.Dense); ok {
		for i := 0; i < n; i++ {
			out[i] = argmaxSeeded(d.RawRow(i))
		}

		return out, nil
	}

	// Stage 2 (Execute, fallback).
	row := make([]float64, k)
	var err error
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			if row[j], err = X.At(i, j); err != nil {
				return nil, fmt.Errorf("%s: %w", opReduce, err)
			}
		}
		out[i] = argmaxSeeded(row)
	}

	return out, nil
}

// argmaxSeeded returns the first index holding the strict maximum of row,
// seeded at (0, index 0).
func argmaxSeeded(row []float64) GroupID {
	best, at := 0.0, 0
	for j, v := range row {
		if v > best {
			best, at = v, j
		}
	}

	return GroupID(at)
}

// ValidateScores rejects weight matrices the reducer should never see:
// NaN/Inf entries (matrix.ErrNaNInf) or negative weights (matrix.ErrNegative).
// Complexity: O(n·k).
func ValidateScores(X matrix.Matrix) error {
	if err := matrix.ValidateNonNegative(X); err != nil {
		return fmt.Errorf("assign.ValidateScores: %w", err)
	}

	return nil
}
