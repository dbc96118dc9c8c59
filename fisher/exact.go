// SPDX-License-Identifier: MIT

package fisher

import "math"

// relTolerance widens the "no more likely than observed" comparison so that
// tables with equal probability are not dropped by floating-point noise.
const relTolerance = 1 + 1e-7

// Exact runs the two-sided Fisher exact test on t.
// The table is assumed valid (see NewTable); it is not re-checked here.
// Complexity: O(min(a+b, a+c)).
func Exact(t ContingencyTable) Result {
	return Result{OddsRatio: OddsRatio(t), PValue: TwoSidedPValue(t)}
}

// OddsRatio returns (a·d)/(b·c), or +Inf when b == 0 or c == 0.
func OddsRatio(t ContingencyTable) float64 {
	a, b, c, d := t.Cells()
	if b == 0 || c == 0 {
		return math.Inf(1)
	}

	return (float64(a) * float64(d)) / (float64(b) * float64(c))
}

// TwoSidedPValue sums the hypergeometric probabilities of every table with
// the margins of t whose probability is ≤ that of t.
//
// Implementation:
//   - Stage 1: margins n = a+b (row 1), K = a+c (column 1), N = a+b+c+d.
//     Any zero margin leaves a single achievable table → p = 1.
//   - Stage 2: support k ∈ [max(0, n+K−N), min(n, K)]; log-pmf via Lgamma.
//   - Stage 3: accumulate pmf(k) for log-pmf(k) ≤ log-pmf(a) + log(relTolerance); cap at 1.
func TwoSidedPValue(t ContingencyTable) float64 {
	a, b, c, d := t.Cells()
	n := a + b
	K := a + c
	N := a + b + c + d
	if n == 0 || K == 0 || n == N || K == N {
		return 1
	}

	lo := n + K - N
	if lo < 0 {
		lo = 0
	}
	hi := n
	if K < hi {
		hi = K
	}

	base := lchoose(N, n)
	logPMF := func(k int) float64 {
		return lchoose(K, k) + lchoose(N-K, n-k) - base
	}

	limit := logPMF(a) + math.Log(relTolerance)
	p := 0.0
	for k := lo; k <= hi; k++ {
		if lp := logPMF(k); lp <= limit {
			p += math.Exp(lp)
		}
	}
	if p > 1 {
		p = 1
	}

	return p
}

// lchoose returns log(C(n, k)) for 0 ≤ k ≤ n.
func lchoose(n, k int) float64 {
	return lgamma(n+1) - lgamma(k+1) - lgamma(n-k+1)
}

func lgamma(x int) float64 {
	v, _ := math.Lgamma(float64(x))

	return v
}
