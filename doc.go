// SPDX-License-Identifier: MIT

// Package trienrich interprets a non-negative matrix tri-factorization
// X ≈ U·S·Vᵀ of a labeled data matrix.
//
// Rows and columns of X carry known labels (for TCGA methylation data: the
// cancer type of each sample and the GO terms of each gene). trienrich
// answers two questions about a factorization:
//
//   - Which row clusters and column clusters are enriched for which labels?
//     Each row of U (and V) is reduced to its strongest cluster, the labels
//     are grouped per cluster and every (cluster, label) pair gets a 2×2
//     contingency table, a two-sided Fisher exact p-value and an odds ratio.
//   - Which (row cluster, column cluster) pairs interact most strongly?
//     The entries of S are ranked and each top pair is annotated with the
//     best labels of both clusters.
//
// Layout:
//
//	matrix/        dense score matrices and their validators
//	assign/        soft weights → hard cluster assignment
//	membership/    label lists → cluster memberships
//	fisher/        contingency tables, Fisher's exact test
//	enrich/        per-cluster enrichment (sequential or worker pool)
//	report/        ranking, report model, text and xlsx renderers
//	dataio/        label CSVs and NumPy .npz/.npy matrices
//	crow/          running CROW and reading its results
//	config/        YAML + .env + environment settings
//	metrics/       Prometheus metrics of a run
//	pipeline/      the whole run, stage by stage
//	cmd/trienrich  command line
//
// The statistics packages (assign, membership, fisher, enrich, report) are
// pure: no I/O, no logging, no global state.
package trienrich
