// SPDX-License-Identifier: MIT

package crow

import "errors"

var (
	// ErrNotInstalled indicates a CROW home without docker-compose.yml.
	ErrNotInstalled = errors.New("crow: framework not installed")

	// ErrFactorization indicates the crow process failed or wrote to stderr.
	ErrFactorization = errors.New("crow: factorization failed")

	// ErrNoResults indicates a missing results directory.
	ErrNoResults = errors.New("crow: results directory not found")

	// ErrInvalidRequest indicates non-positive ranks or iterations, or no input.
	ErrInvalidRequest = errors.New("crow: invalid request")
)
