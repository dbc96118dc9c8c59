// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet names used by WriteXLSX.
const (
	SheetRowGroups    = "Row groups"
	SheetColGroups    = "Column groups"
	SheetInteractions = "Interactions"
)

var (
	groupHeader       = []any{"Group", "Size", "Rank", "Label", "Odds ratio", "p-value"}
	interactionHeader = []any{"Rank", "Row group", "Column group", "Score", "Row labels", "Column labels"}
)

// WriteXLSX renders r as a workbook with one sheet per report section.
// Unbounded odds ratios are written as the text "inf"; everything else is numeric.
func WriteXLSX(w io.Writer, r *Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetRowGroups); err != nil {
		return fmt.Errorf("report.WriteXLSX: %w", err)
	}
	for _, name := range []string{SheetColGroups, SheetInteractions} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("report.WriteXLSX: %w", err)
		}
	}

	if err := writeGroupSheet(f, SheetRowGroups, r.RowGroups); err != nil {
		return err
	}
	if err := writeGroupSheet(f, SheetColGroups, r.ColGroups); err != nil {
		return err
	}

	rows := [][]any{interactionHeader}
	for _, it := range r.Interactions {
		rows = append(rows, []any{
			it.Rank, int(it.Row), int(it.Col), it.Score,
			strings.Join(it.RowLabels, "; "), strings.Join(it.ColLabels, "; "),
		})
	}
	if err := writeRows(f, SheetInteractions, rows); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("report.WriteXLSX: %w", err)
	}

	return nil
}

func writeGroupSheet(f *excelize.File, sheet string, groups []GroupSection) error {
	rows := [][]any{groupHeader}
	for _, g := range groups {
		for k, l := range g.Top {
			var ratio any = l.OddsRatio
			if math.IsInf(l.OddsRatio, 1) {
				ratio = "inf"
			}
			rows = append(rows, []any{int(g.Group), g.Size, k + 1, l.Label, ratio, l.PValue})
		}
	}

	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("report.WriteXLSX: %w", err)
		}
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("report.WriteXLSX: %s!%s: %w", sheet, cell, err)
		}
	}

	return nil
}
