// SPDX-License-Identifier: MIT

package dataio_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trienrich/dataio"
	"github.com/katalvlaran/trienrich/internal/npytest"
	"github.com/katalvlaran/trienrich/membership"
)

func TestReadLabels(t *testing.T) {
	in := strings.Join([]string{
		"# sample,cancer",
		"TCGA-01,BRCA",
		"TCGA-02, LUAD ",
		"#TCGA-03,skipped",
		"TCGA-04,",
		"TCGA-05,KIRC,extra",
	}, "\n")

	got, err := dataio.ReadLabels(strings.NewReader(in), "rows.csv", dataio.DefaultLabelOptions())
	require.NoError(t, err)
	assert.Equal(t, []membership.LabeledEntity{
		{ID: "TCGA-01", Label: "BRCA"},
		{ID: "TCGA-02", Label: " LUAD "},
		{ID: "TCGA-04", Label: ""},
		{ID: "TCGA-05", Label: "KIRC"},
	}, got)
}

func TestReadLabels_TrimSpace(t *testing.T) {
	in := " s1 , BRCA \ns2,\tLUAD\n"
	opts := dataio.DefaultLabelOptions()
	opts.TrimSpace = true

	got, err := dataio.ReadLabels(strings.NewReader(in), "", opts)
	require.NoError(t, err)
	assert.Equal(t, []membership.LabeledEntity{
		{ID: "s1", Label: "BRCA"},
		{ID: "s2", Label: "LUAD"},
	}, got)
}

func TestReadLabels_Delimiter(t *testing.T) {
	in := "g1\tGO:1;GO:2\ng2\tGO:3\n"
	opts := dataio.LabelOptions{Delimiter: '\t', Comment: "#"}

	got, err := dataio.ReadLabels(strings.NewReader(in), "", opts)
	require.NoError(t, err)
	assert.Equal(t, []membership.LabeledEntity{
		{ID: "g1", Label: "GO:1;GO:2"},
		{ID: "g2", Label: "GO:3"},
	}, got)
}

func TestReadLabels_NormalizesNFC(t *testing.T) {
	// "e" + combining acute composes to U+00E9.
	in := "s1,cafe\u0301\n"

	got, err := dataio.ReadLabels(strings.NewReader(in), "", dataio.DefaultLabelOptions())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "caf\u00e9", got[0].Label)

	raw, err := dataio.ReadLabels(strings.NewReader(in), "", dataio.LabelOptions{})
	require.NoError(t, err)
	assert.Equal(t, "cafe\u0301", raw[0].Label)
}

func TestReadLabels_Malformed(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		index int
	}{
		{"single field", "a,X\n# c\nb\n", 1},
		{"missing id", "a,X\nb,Y\n,Z\n", 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dataio.ReadLabels(strings.NewReader(tc.in), "labels.csv", dataio.DefaultLabelOptions())
			require.ErrorIs(t, err, membership.ErrMalformedLabel)

			var mle *membership.MalformedLabelError
			require.True(t, errors.As(err, &mle))
			assert.Equal(t, tc.index, mle.Index)
			assert.Equal(t, "labels.csv", mle.Source)
		})
	}
}

func TestLoadLabels(t *testing.T) {
	dir := t.TempDir()
	path := npytest.WriteFile(t, dir, "cols.csv", []byte("gene1,GO:1;GO:2\ngene2,\n"))

	got, err := dataio.LoadLabels(path, dataio.DefaultLabelOptions())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = dataio.LoadLabels(path+".missing", dataio.DefaultLabelOptions())
	assert.Error(t, err)
}
