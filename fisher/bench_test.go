// SPDX-License-Identifier: MIT

package fisher_test

import (
	"testing"

	"github.com/katalvlaran/trienrich/fisher"
)

// BenchmarkExact_Large measures a table with thousands of occurrences,
// the typical size of a gene-set enrichment run.
func BenchmarkExact_Large(b *testing.B) {
	tbl, err := fisher.NewTable(120, 880, 2400, 96000)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = fisher.Exact(tbl)
	}
}
