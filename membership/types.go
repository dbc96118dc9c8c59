// SPDX-License-Identifier: MIT

package membership

import "strings"

// LabeledEntity is one row of a label list: an identifier and its label text.
// Label may be empty or hold several labels joined by a delimiter.
type LabeledEntity struct {
	ID    string
	Label string
}

// SplitPolicy controls how label text becomes label occurrences.
//
//   - Delimiter == "" keeps the whole text as one label.
//   - SkipEmpty drops entirely empty text instead of counting "" as a label
//     of its own. Empty parts of non-empty text ("a;;b", "a;") are kept.
type SplitPolicy struct {
	Delimiter string
	SkipEmpty bool
}

// RowPolicy is the default for row labels: one class per entity, empty text kept.
var RowPolicy = SplitPolicy{}

// ColumnPolicy is the default for column labels: ';'-separated sets, empty text skipped.
var ColumnPolicy = SplitPolicy{Delimiter: ";", SkipEmpty: true}

// Split returns the label occurrences contributed by text under p.
func (p SplitPolicy) Split(text string) []string {
	if text == "" && p.SkipEmpty {
		return nil
	}
	if p.Delimiter == "" {
		return []string{text}
	}

	return strings.Split(text, p.Delimiter)
}
