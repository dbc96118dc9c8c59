// SPDX-License-Identifier: MIT

package fisher

import (
	"errors"
	"fmt"
	"math"
)

// ErrNegativeCell indicates a contingency cell below zero. Tables are built
// from frequency counts, so this always points at a bug upstream.
var ErrNegativeCell = errors.New("fisher: negative contingency cell")

// ContingencyTable is [[a, b], [c, d]]:
//
//	a = label L in group G      b = other labels in group G
//	c = label L in other groups d = other labels in other groups
type ContingencyTable [2][2]int

// cellNames index matches the row-major cell order a, b, c, d.
var cellNames = [4]string{"a", "b", "c", "d"}

// NewTable builds [[a,b],[c,d]] and rejects negative cells with ErrNegativeCell.
func NewTable(a, b, c, d int) (ContingencyTable, error) {
	t := ContingencyTable{{a, b}, {c, d}}
	if err := t.Validate(); err != nil {
		return ContingencyTable{}, err
	}

	return t, nil
}

// Validate reports the first negative cell.
func (t ContingencyTable) Validate() error {
	for k, v := range [4]int{t[0][0], t[0][1], t[1][0], t[1][1]} {
		if v < 0 {
			return fmt.Errorf("%w: %s=%d in %v", ErrNegativeCell, cellNames[k], v, [2][2]int(t))
		}
	}

	return nil
}

// Cells returns a, b, c, d.
func (t ContingencyTable) Cells() (a, b, c, d int) {
	return t[0][0], t[0][1], t[1][0], t[1][1]
}

// Total returns a+b+c+d.
func (t ContingencyTable) Total() int {
	return t[0][0] + t[0][1] + t[1][0] + t[1][1]
}

// Transpose swaps rows and columns: [[a,c],[b,d]].
func (t ContingencyTable) Transpose() ContingencyTable {
	return ContingencyTable{{t[0][0], t[1][0]}, {t[0][1], t[1][1]}}
}

// Result holds the outcome of Exact.
// OddsRatio is +Inf when b or c is zero (see IsUnbounded).
type Result struct {
	OddsRatio float64
	PValue    float64
}

// IsUnbounded reports whether an odds ratio is the +Inf sentinel.
func IsUnbounded(x float64) bool { return math.IsInf(x, 1) }
