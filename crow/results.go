// SPDX-License-Identifier: MIT

package crow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/katalvlaran/trienrich/dataio"
	"github.com/katalvlaran/trienrich/matrix"
)

// ResultsProvider reads U.npz, S.npz and V.npz from Dir. It ignores the
// request, so it serves reports over a factorization that already ran.
type ResultsProvider struct {
	Dir string
}

// Factorize loads the three factors. A missing Dir is ErrNoResults.
func (p ResultsProvider) Factorize(ctx context.Context, _ Request) (*Factors, error) {
	info, err := os.Stat(p.Dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoResults, p.Dir)
	}

	var f Factors
	for _, part := range []struct {
		name string
		dst  **matrix.Dense
	}{
		{"U.npz", &f.U},
		{"S.npz", &f.S},
		{"V.npz", &f.V},
	} {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		m, err := dataio.LoadMatrix(filepath.Join(p.Dir, part.name))
		if err != nil {
			return nil, fmt.Errorf("crow.ResultsProvider: %w", err)
		}
		*part.dst = m
	}

	return &f, nil
}
