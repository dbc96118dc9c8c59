// SPDX-License-Identifier: MIT

package dataio

import (
	"archive/zip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sbinet/npyio"

	"github.com/katalvlaran/trienrich/matrix"
)

// Member names inside an .npz archive.
const (
	memberData    = "data.npy"
	memberIndices = "indices.npy"
	memberIndptr  = "indptr.npy"
	memberShape   = "shape.npy"
)

// LoadMatrix reads a 2-D score matrix; the format follows the extension
// (.npz, .npy, .csv). Values are validated as finite.
func LoadMatrix(path string) (*matrix.Dense, error) {
	var (
		m   *matrix.Dense
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".npz":
		m, err = loadNPZ(path)
	case ".npy":
		m, err = loadNPY(path)
	case ".csv":
		m, err = loadCSV(path)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return nil, fmt.Errorf("dataio.LoadMatrix: %s: %w", path, err)
	}

	return m, nil
}

// array is a decoded NumPy array flattened to float64.
type array struct {
	shape   []int
	fortran bool
	data    []float64
}

func loadNPY(path string) (*matrix.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	arr, err := readArray(f)
	if err != nil {
		return nil, err
	}

	return arr.dense()
}

// loadNPZ reads a dense "data" member, or densifies a CSR triple when an
// "indices" member is present.
func loadNPZ(path string) (*matrix.Dense, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	members := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		members[f.Name] = f
	}
	if _, sparse := members[memberIndices]; sparse {
		return readCSR(members)
	}
	f, ok := members[memberData]
	if !ok {
		return nil, ErrNoData
	}
	arr, err := readMember(f)
	if err != nil {
		return nil, err
	}

	return arr.dense()
}

func readCSR(members map[string]*zip.File) (*matrix.Dense, error) {
	parts := make(map[string]array, 4)
	for _, name := range []string{memberData, memberIndices, memberIndptr, memberShape} {
		f, ok := members[name]
		if !ok {
			return nil, fmt.Errorf("%w: sparse archive lacks %s", ErrNoData, name)
		}
		arr, err := readMember(f)
		if err != nil {
			return nil, err
		}
		parts[name] = arr
	}

	shape := parts[memberShape].data
	if len(shape) != 2 {
		return nil, fmt.Errorf("%w: shape has %d dims", ErrShape, len(shape))
	}
	rows, cols := int(shape[0]), int(shape[1])
	data, indices, indptr := parts[memberData].data, parts[memberIndices].data, parts[memberIndptr].data
	if len(indptr) != rows+1 || len(indices) != len(data) {
		return nil, fmt.Errorf("%w: csr arrays disagree with shape %dx%d", ErrShape, rows, cols)
	}

	m, err := matrix.NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	// Duplicate (i, j) entries are summed, as scipy's csr_matrix does.
	for i := 0; i < rows; i++ {
		lo, hi := int(indptr[i]), int(indptr[i+1])
		if lo < 0 || lo > hi || hi > len(data) {
			return nil, fmt.Errorf("%w: indptr[%d:%d] = %d..%d out of range", ErrShape, i, i+2, lo, hi)
		}
		for k := lo; k < hi; k++ {
			j := int(indices[k])
			if j < 0 || j >= cols {
				return nil, fmt.Errorf("%w: indices[%d] = %d outside %d columns", ErrShape, k, j, cols)
			}
			v, _ := m.At(i, j)
			if err = m.Set(i, j, v+data[k]); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

func readMember(f *zip.File) (array, error) {
	rc, err := f.Open()
	if err != nil {
		return array{}, err
	}
	defer rc.Close()

	arr, err := readArray(rc)
	if err != nil {
		return array{}, fmt.Errorf("%s: %w", f.Name, err)
	}

	return arr, nil
}

// readArray decodes one .npy stream, converting supported dtypes to float64.
func readArray(r io.Reader) (array, error) {
	nr, err := npyio.NewReader(r)
	if err != nil {
		return array{}, err
	}
	descr := nr.Header.Descr
	arr := array{shape: descr.Shape, fortran: descr.Fortran}

	switch descr.Type {
	case "<f8":
		err = nr.Read(&arr.data)
	case "<f4":
		var v []float32
		if err = nr.Read(&v); err == nil {
			arr.data = widen(v)
		}
	case "<i8":
		var v []int64
		if err = nr.Read(&v); err == nil {
			arr.data = widen(v)
		}
	case "<i4":
		var v []int32
		if err = nr.Read(&v); err == nil {
			arr.data = widen(v)
		}
	default:
		return array{}, fmt.Errorf("%w: %q", ErrUnsupportedDType, descr.Type)
	}
	if err != nil {
		return array{}, err
	}

	return arr, nil
}

func widen[T float32 | int32 | int64](v []T) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}

	return out
}

// dense turns a 2-D array into a row-major Dense, transposing Fortran order.
func (a array) dense() (*matrix.Dense, error) {
	if len(a.shape) != 2 {
		return nil, fmt.Errorf("%w: got %d dims, want 2", ErrShape, len(a.shape))
	}
	rows, cols := a.shape[0], a.shape[1]
	if len(a.data) != rows*cols {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrShape, len(a.data), rows, cols)
	}
	if !a.fortran {
		return matrix.NewDenseFrom(rows, cols, a.data)
	}
	buf := make([]float64, len(a.data))
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			buf[i*cols+j] = a.data[j*rows+i]
		}
	}

	return matrix.NewDenseFrom(rows, cols, buf)
}

// loadCSV reads a headerless numeric CSV; every row must have the same width.
func loadCSV(path string) (*matrix.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comment = '#'
	var (
		data []float64
		cols int
		rows int
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if rows == 0 {
			cols = len(rec)
		}
		for j, s := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", rows, j, err)
			}
			data = append(data, v)
		}
		rows++
	}
	if rows == 0 {
		return nil, ErrNoData
	}

	return matrix.NewDenseFrom(rows, cols, data)
}
