// SPDX-License-Identifier: MIT

package enrich

// DefaultWorkers keeps Analyze sequential.
const DefaultWorkers = 1

const panicWorkersInvalid = "enrich: WithWorkers: n must be >= 1"

// Option configures Analyze.
type Option func(*options)

type options struct {
	workers int
}

// WithWorkers sets how many groups are analyzed concurrently.
// Panics on n < 1 (programmer error).
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

func gatherOptions(user ...Option) options {
	o := options{workers: DefaultWorkers}
	for _, set := range user {
		set(&o)
	}

	return o
}
