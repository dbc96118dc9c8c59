// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for Dense construction.
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - Safe by construction: Options fields are unexported; public APIs consume ...Option.
package matrix

// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
const DefaultValidateNaNInf = true

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	validateNaNInf bool // DefaultValidateNaNInf
}

// WithValidateNaNInf enables or disables NaN/Inf rejection for ingestion and Set.
// Disabling is meant for raw dumps that are sanitized later; score matrices
// fed to the reducer should stay finite.
func WithValidateNaNInf(on bool) Option {
	return func(o *Options) {
		o.validateNaNInf = on
	}
}

// gatherOptions resolves user options over the documented defaults.
// Last-writer-wins for repeated options.
func gatherOptions(user ...Option) Options {
	o := Options{validateNaNInf: DefaultValidateNaNInf}
	for _, set := range user {
		set(&o)
	}

	return o
}
