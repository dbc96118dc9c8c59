// SPDX-License-Identifier: MIT

package membership

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch is the sentinel behind ShapeMismatchError.
	ErrShapeMismatch = errors.New("membership: shape mismatch")

	// ErrMalformedLabel is the sentinel behind MalformedLabelError.
	ErrMalformedLabel = errors.New("membership: malformed label record")
)

// ShapeMismatchError reports that a score matrix and its aligned label list
// (or two matrices that must agree) have different sizes. It is fatal.
type ShapeMismatchError struct {
	What string // which alignment failed, e.g. "rows(U) vs row labels"
	Want int
	Got  int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%v: %s: want %d, got %d", ErrShapeMismatch, e.What, e.Want, e.Got)
}

// Unwrap lets errors.Is(err, ErrShapeMismatch) match.
func (e *ShapeMismatchError) Unwrap() error { return ErrShapeMismatch }

// MalformedLabelError reports a label record that lacks a required field.
// Index is the zero-based position of the record in its source list.
type MalformedLabelError struct {
	Source string // file name or list name; may be empty
	Index  int
	Reason string
}

func (e *MalformedLabelError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%v: %s record %d: %s", ErrMalformedLabel, e.Source, e.Index, e.Reason)
	}

	return fmt.Sprintf("%v: record %d: %s", ErrMalformedLabel, e.Index, e.Reason)
}

// Unwrap lets errors.Is(err, ErrMalformedLabel) match.
func (e *MalformedLabelError) Unwrap() error { return ErrMalformedLabel }
