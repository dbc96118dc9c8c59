// SPDX-License-Identifier: MIT

package dataio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trienrich/dataio"
	"github.com/katalvlaran/trienrich/internal/npytest"
	"github.com/katalvlaran/trienrich/matrix"
)

func rowsOf(t *testing.T, m *matrix.Dense) [][]float64 {
	t.Helper()
	out := make([][]float64, m.Rows())
	for i := range out {
		row, err := m.Row(i)
		require.NoError(t, err)
		out[i] = row
	}

	return out
}

func TestLoadMatrix_NPY(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name    string
		descr   string
		fortran bool
		data    any
	}{
		{"float64", "<f8", false, []float64{1, 2, 3, 4, 5, 6}},
		{"float32", "<f4", false, []float32{1, 2, 3, 4, 5, 6}},
		{"int64", "<i8", false, []int64{1, 2, 3, 4, 5, 6}},
		{"int32", "<i4", false, []int32{1, 2, 3, 4, 5, 6}},
		{"fortran", "<f8", true, []float64{1, 4, 2, 5, 3, 6}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := npytest.WriteFile(t, dir, tc.name+".npy", npytest.NPY(t, tc.descr, tc.fortran, []int{2, 3}, tc.data))
			m, err := dataio.LoadMatrix(path)
			require.NoError(t, err)
			assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, rowsOf(t, m))
		})
	}
}

func TestLoadMatrix_NPZDense(t *testing.T) {
	dir := t.TempDir()
	path := npytest.WriteNPZ(t, dir, "U.npz", map[string][]byte{
		"data.npy": npytest.NPY(t, "<f8", false, []int{3, 2}, []float64{0.9, 0.1, 0.2, 0.8, 0, 0}),
	})

	m, err := dataio.LoadMatrix(path)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.9, 0.1}, {0.2, 0.8}, {0, 0}}, rowsOf(t, m))
}

func TestLoadMatrix_NPZSparse(t *testing.T) {
	// [[0 2 0]
	//  [1 0 0]
	//  [0 0 3]]
	dir := t.TempDir()
	path := npytest.WriteNPZ(t, dir, "S.npz", map[string][]byte{
		"data.npy":    npytest.NPY(t, "<f8", false, []int{3}, []float64{2, 1, 3}),
		"indices.npy": npytest.NPY(t, "<i4", false, []int{3}, []int32{1, 0, 2}),
		"indptr.npy":  npytest.NPY(t, "<i4", false, []int{4}, []int32{0, 1, 2, 3}),
		"shape.npy":   npytest.NPY(t, "<i8", false, []int{2}, []int64{3, 3}),
	})

	m, err := dataio.LoadMatrix(path)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 2, 0}, {1, 0, 0}, {0, 0, 3}}, rowsOf(t, m))
}

func TestLoadMatrix_NPZSparseDuplicatesSum(t *testing.T) {
	// (0,1) appears twice: 2 + 0.5.
	dir := t.TempDir()
	path := npytest.WriteNPZ(t, dir, "S.npz", map[string][]byte{
		"data.npy":    npytest.NPY(t, "<f8", false, []int{3}, []float64{2, 0.5, 1}),
		"indices.npy": npytest.NPY(t, "<i4", false, []int{3}, []int32{1, 1, 0}),
		"indptr.npy":  npytest.NPY(t, "<i4", false, []int{3}, []int32{0, 2, 3}),
		"shape.npy":   npytest.NPY(t, "<i8", false, []int{2}, []int64{2, 2}),
	})

	m, err := dataio.LoadMatrix(path)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 2.5}, {1, 0}}, rowsOf(t, m))
}

func TestLoadMatrix_NPZSparseBadIndices(t *testing.T) {
	cases := []struct {
		name    string
		indices []int32
		indptr  []int32
	}{
		{"column out of range", []int32{0, 5}, []int32{0, 1, 2}},
		{"negative column", []int32{-1, 0}, []int32{0, 1, 2}},
		{"decreasing indptr", []int32{0, 1}, []int32{0, 2, 1}},
		{"indptr past data", []int32{0, 1}, []int32{0, 1, 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := npytest.WriteNPZ(t, t.TempDir(), "S.npz", map[string][]byte{
				"data.npy":    npytest.NPY(t, "<f8", false, []int{2}, []float64{1, 2}),
				"indices.npy": npytest.NPY(t, "<i4", false, []int{2}, tc.indices),
				"indptr.npy":  npytest.NPY(t, "<i4", false, []int{3}, tc.indptr),
				"shape.npy":   npytest.NPY(t, "<i8", false, []int{2}, []int64{2, 2}),
			})

			_, err := dataio.LoadMatrix(path)
			assert.ErrorIs(t, err, dataio.ErrShape)
		})
	}
}

func TestLoadMatrix_NPZSparseMissingMember(t *testing.T) {
	dir := t.TempDir()
	path := npytest.WriteNPZ(t, dir, "S.npz", map[string][]byte{
		"data.npy":    npytest.NPY(t, "<f8", false, []int{1}, []float64{2}),
		"indices.npy": npytest.NPY(t, "<i4", false, []int{1}, []int32{0}),
	})

	_, err := dataio.LoadMatrix(path)
	require.ErrorIs(t, err, dataio.ErrNoData)
}

func TestLoadMatrix_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := dataio.LoadMatrix(npytest.WriteFile(t, dir, "m.txt", []byte("1,2\n")))
	assert.ErrorIs(t, err, dataio.ErrUnsupportedFormat)

	_, err = dataio.LoadMatrix(npytest.WriteNPZ(t, dir, "empty.npz", map[string][]byte{
		"other.npy": npytest.NPY(t, "<f8", false, []int{1}, []float64{1}),
	}))
	assert.ErrorIs(t, err, dataio.ErrNoData)

	_, err = dataio.LoadMatrix(npytest.WriteFile(t, dir, "v.npy", npytest.NPY(t, "<f8", false, []int{3}, []float64{1, 2, 3})))
	assert.ErrorIs(t, err, dataio.ErrShape)

	_, err = dataio.LoadMatrix(npytest.WriteFile(t, dir, "u.npy", npytest.NPY(t, "<u2", false, []int{1, 2}, []uint16{1, 2})))
	assert.ErrorIs(t, err, dataio.ErrUnsupportedDType)

	_, err = dataio.LoadMatrix(npytest.WriteFile(t, dir, "empty.csv", []byte("# nothing\n")))
	assert.ErrorIs(t, err, dataio.ErrNoData)

	_, err = dataio.LoadMatrix(npytest.WriteFile(t, dir, "ragged.csv", []byte("1,2\n3\n")))
	assert.Error(t, err)

	_, err = dataio.LoadMatrix(npytest.WriteFile(t, dir, "nan.csv", []byte("1,NaN\n")))
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestLoadMatrix_CSV(t *testing.T) {
	dir := t.TempDir()
	path := npytest.WriteFile(t, dir, "S.csv", []byte("# k1 x k2\n5, 1\n0.5,2\n"))

	m, err := dataio.LoadMatrix(path)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{5, 1}, {0.5, 2}}, rowsOf(t, m))
}
