// SPDX-License-Identifier: MIT

package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

const rule = "---------------------------------------"

// TextOptions controls WriteText.
type TextOptions struct {
	// Color styles section titles when the writer is a color terminal.
	Color bool
	// Latex renders p-values as "m \cdot 10^{ e }".
	Latex bool
}

// WriteText renders r as the plain-text console report.
//
// Layout per section:
//
//	Cluster 3:
//	inf     p-value: 0.000123           BRCA
//
//	Interaction 0 0.92
//	Cancer cluster 03 [BRCA, LUAD]
//	GO cluster     07 [GO:0006915]
func WriteText(w io.Writer, r *Report, opts TextOptions) error {
	bw := bufio.NewWriter(w)
	title := func(s string) string { return s }
	if opts.Color {
		style := lipgloss.NewRenderer(w).NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
		title = func(s string) string { return style.Render(s) }
	}
	pval := FormatPValue
	if opts.Latex {
		pval = func(p float64) string { return FormatLatex(p, 2, 2) }
	}

	writeGroups := func(name string, groups []GroupSection) {
		fmt.Fprintln(bw, rule)
		fmt.Fprintln(bw, title(name))
		for _, g := range groups {
			fmt.Fprintf(bw, "Cluster %d:\n", g.Group)
			for _, l := range g.Top {
				fmt.Fprintf(bw, "%-6s  p-value: %-20s %s\n", FormatRatio(l.OddsRatio), pval(l.PValue), l.Label)
			}
			fmt.Fprintln(bw)
		}
	}

	writeGroups(r.Options.RowTitle, r.RowGroups)
	writeGroups(r.Options.ColTitle, r.ColGroups)

	fmt.Fprintln(bw, rule)
	fmt.Fprintln(bw, title(fmt.Sprintf("%d Strongest Interactions in S matrix:", len(r.Interactions))))
	width := len(r.Options.RowName)
	if len(r.Options.ColName) > width {
		width = len(r.Options.ColName)
	}
	for _, it := range r.Interactions {
		fmt.Fprintf(bw, "Interaction %d %s\n", it.Rank, FormatPValue(it.Score))
		fmt.Fprintf(bw, "%-*s %02d %s\n", width, r.Options.RowName, it.Row, joinLabels(it.RowLabels))
		fmt.Fprintf(bw, "%-*s %02d %s\n", width, r.Options.ColName, it.Col, joinLabels(it.ColLabels))
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}
