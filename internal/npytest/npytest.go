// SPDX-License-Identifier: MIT

// Package npytest writes NumPy .npy and .npz fixtures for tests.
package npytest

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// NPY encodes data (a little-endian fixed-size slice) as a version 1.0
// .npy stream with the given dtype descriptor, order and shape.
func NPY(t testing.TB, descr string, fortran bool, shape []int, data any) []byte {
	t.Helper()

	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = fmt.Sprint(d)
	}
	tuple := "(" + strings.Join(dims, ", ") + ")"
	if len(shape) == 1 {
		tuple = fmt.Sprintf("(%d,)", shape[0])
	}
	order := "False"
	if fortran {
		order = "True"
	}
	header := fmt.Sprintf("{'descr': '%s', 'fortran_order': %s, 'shape': %s, }", descr, order, tuple)
	// magic(6) + version(2) + length(2) + header + '\n' is padded to 64 bytes.
	pad := 64 - (10+len(header)+1)%64
	header += strings.Repeat(" ", pad%64) + "\n"

	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY")
	buf.Write([]byte{1, 0})
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(len(header))))
	buf.WriteString(header)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, data))

	return buf.Bytes()
}

// WriteFile writes b to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name string, b []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, b, 0o644))

	return path
}

// WriteNPZ zips members into dir/name.
func WriteNPZ(t testing.TB, dir, name string, members map[string][]byte) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for member, b := range members {
		w, err := zw.Create(member)
		require.NoError(t, err)
		_, err = w.Write(b)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return WriteFile(t, dir, name, buf.Bytes())
}

// WriteDense writes a row-major rows x cols float64 matrix as an .npz with a
// single "data" member, the layout scipy/numpy savez produce for dense arrays.
func WriteDense(t testing.TB, dir, name string, rows, cols int, data []float64) string {
	t.Helper()
	require.Len(t, data, rows*cols)

	return WriteNPZ(t, dir, name, map[string][]byte{
		"data.npy": NPY(t, "<f8", false, []int{rows, cols}, data),
	})
}
