// SPDX-License-Identifier: MIT

// Package crow obtains the U, S, V factors of a non-negative matrix
// tri-factorization from the CROW framework.
//
// A Provider yields *Factors. Two implementations are included:
//
//   - Runner stages the input archive under <home>/data, runs the crow
//     binary with the requested ranks and reads <home>/results;
//   - ResultsProvider only reads an existing results directory, for
//     re-reporting a factorization that already ran.
//
// The install directory comes from $CROW_HOME (see ResolveHome) and must
// contain docker-compose.yml (see CheckInstall).
//
// Nothing in this package validates the quality of a factorization.
package crow
