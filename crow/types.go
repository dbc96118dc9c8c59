// SPDX-License-Identifier: MIT

package crow

import (
	"context"
	"fmt"

	"github.com/katalvlaran/trienrich/matrix"
)

// Defaults of a factorization request and the install layout.
const (
	EnvHome           = "CROW_HOME"
	DefaultHome       = "crow"
	DefaultBinary     = "crow"
	DefaultIterations = 1000
	DefaultK1         = 25
	DefaultK2         = 30

	ComposeFile = "docker-compose.yml"
	DataDir     = "data"
	ResultsDir  = "results"
)

// Factors are the three factor matrices: U is n×k1, S is k1×k2, V is m×k2.
type Factors struct {
	U, S, V *matrix.Dense
}

// Request describes one factorization run.
type Request struct {
	Input      string // path to the .npz data matrix
	K1, K2     int    // row and column ranks
	Iterations int
	Blocks     string // block layout "RxC"; empty means 1x<NumCPU>
}

// DefaultRequest returns a request for input with the standard ranks.
func DefaultRequest(input string) Request {
	return Request{Input: input, K1: DefaultK1, K2: DefaultK2, Iterations: DefaultIterations}
}

// Validate reports ErrInvalidRequest for an unusable request.
func (r Request) Validate() error {
	switch {
	case r.Input == "":
		return fmt.Errorf("%w: no input file", ErrInvalidRequest)
	case r.K1 <= 0 || r.K2 <= 0:
		return fmt.Errorf("%w: k1=%d k2=%d", ErrInvalidRequest, r.K1, r.K2)
	case r.Iterations <= 0:
		return fmt.Errorf("%w: iterations=%d", ErrInvalidRequest, r.Iterations)
	}

	return nil
}

// Provider yields the factors of a request.
type Provider interface {
	Factorize(ctx context.Context, req Request) (*Factors, error)
}
