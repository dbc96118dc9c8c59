// SPDX-License-Identifier: MIT

// Package dataio loads the inputs of a report run from disk:
//
//   - label lists: delimited text, one "identifier,label" record per entity,
//     records whose first field starts with the comment prefix are skipped;
//   - score matrices: NumPy .npz archives (dense "data" member or a CSR
//     triple "data/indices/indptr" with "shape"), bare .npy files, or CSV.
//
// Nothing here is needed by the statistics packages; callers that already
// hold matrices and labels in memory can skip it.
package dataio
