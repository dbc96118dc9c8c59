// SPDX-License-Identifier: MIT

package dataio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/katalvlaran/trienrich/membership"
)

// Defaults for label files.
const (
	DefaultDelimiter = ','
	DefaultComment   = "#"
)

// LabelOptions controls ReadLabels.
type LabelOptions struct {
	Delimiter rune   // field separator; DefaultDelimiter when zero
	Comment   string // records whose first field starts with it are skipped; "" disables
	Normalize bool   // NFC-normalize identifiers and labels
	TrimSpace bool   // strip leading and trailing white space from identifiers and labels
}

// DefaultLabelOptions returns comma-separated, '#'-commented, NFC-normalized
// input. Surrounding white space is kept, so label text matches the file.
func DefaultLabelOptions() LabelOptions {
	return LabelOptions{Delimiter: DefaultDelimiter, Comment: DefaultComment, Normalize: true}
}

// LoadLabels opens path and reads it with ReadLabels.
func LoadLabels(path string, opts LabelOptions) ([]membership.LabeledEntity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataio.LoadLabels: %w", err)
	}
	defer f.Close()

	return ReadLabels(f, filepath.Base(path), opts)
}

// ReadLabels parses "identifier<delim>label" records.
//
// Implementation:
//   - Stage 1: csv.Reader with variable field counts (extra fields are ignored).
//   - Stage 2: skip comment records (first field starts with opts.Comment).
//   - Stage 3: a record with fewer than two fields or an empty identifier is a
//     *membership.MalformedLabelError; Index is the position among data records,
//     i.e. the matrix row the record would align with.
//
// source names the input in errors (file name); it may be empty.
func ReadLabels(r io.Reader, source string, opts LabelOptions) ([]membership.LabeledEntity, error) {
	cr := csv.NewReader(r)
	cr.Comma = opts.Delimiter
	if cr.Comma == 0 {
		cr.Comma = DefaultDelimiter
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	clean := func(s string) string {
		if opts.Normalize {
			s = norm.NFC.String(s)
		}
		if opts.TrimSpace {
			s = strings.TrimSpace(s)
		}

		return s
	}

	var out []membership.LabeledEntity
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataio.ReadLabels: %s: %w", source, err)
		}
		if opts.Comment != "" && strings.HasPrefix(rec[0], opts.Comment) {
			continue
		}
		line, _ := cr.FieldPos(0)
		if len(rec) < 2 {
			return nil, &membership.MalformedLabelError{
				Source: source,
				Index:  len(out),
				Reason: fmt.Sprintf("line %d: want 2 fields, got %d", line, len(rec)),
			}
		}
		e := membership.LabeledEntity{ID: clean(rec[0]), Label: clean(rec[1])}
		if e.ID == "" {
			return nil, &membership.MalformedLabelError{
				Source: source,
				Index:  len(out),
				Reason: fmt.Sprintf("line %d: missing identifier", line),
			}
		}
		out = append(out, e)
	}

	return out, nil
}
