// SPDX-License-Identifier: MIT

package dataio

import "errors"

var (
	// ErrNoData indicates an .npz archive without a "data" member.
	ErrNoData = errors.New("dataio: no numpy data in file")

	// ErrUnsupportedFormat indicates a file extension LoadMatrix cannot read.
	ErrUnsupportedFormat = errors.New("dataio: unsupported matrix format")

	// ErrUnsupportedDType indicates a NumPy dtype other than little-endian int/float.
	ErrUnsupportedDType = errors.New("dataio: unsupported numpy dtype")

	// ErrShape indicates an array that is not a 2-D matrix, or a CSR triple
	// whose arrays disagree with its shape.
	ErrShape = errors.New("dataio: bad matrix shape")
)
