// SPDX-License-Identifier: MIT

// Package fisher computes Fisher's exact test for 2×2 contingency tables.
//
// 🚀 What is it?
//
//	For a table
//
//	    [[a, b],
//	     [c, d]]
//
//	with fixed margins, the top-left cell follows a hypergeometric
//	distribution under independence. The two-sided p-value sums the
//	probabilities of every achievable table that is no more likely than the
//	observed one.
//
// ✨ Key features:
//   - exact two-sided p-value in log space (math.Lgamma), no overflow for large counts
//   - the same relative tolerance (1e-7) as common reference implementations
//     when comparing table probabilities, so ties are not lost to rounding
//   - odds ratio (a·d)/(b·c) with +Inf as the unbounded sentinel when b or c is 0
//   - negative cells are a hard error (ErrNegativeCell), never clamped
//
// ⚙️ Usage:
//
//	t, err := fisher.NewTable(2, 0, 0, 2)
//	res := fisher.Exact(t) // res.PValue ≈ 0.3333, res.OddsRatio = +Inf
//
// Performance: O(min(a+b, a+c)) Lgamma evaluations per table.
package fisher
