// SPDX-License-Identifier: MIT

// Package pipeline runs one interpretation of a tri-factorization end to end:
//
//	Validate → Reduce → Build → Enrich → Rank
//
// Validate checks that U, S, V and both label lists agree in shape. Reduce
// turns U and V into hard assignments; Build inverts the label lists into
// per-group memberships; Enrich runs the Fisher tests per (group, label);
// Rank assembles the report and its strongest interactions.
//
// Every stage is logged with zap and timed into a metrics.Recorder when one
// is supplied. The statistics packages underneath never log.
package pipeline
