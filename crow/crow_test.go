// SPDX-License-Identifier: MIT

package crow_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trienrich/crow"
	"github.com/katalvlaran/trienrich/internal/npytest"
)

// newHome lays out a CROW install with docker-compose.yml and a results
// directory holding 2x2 factors.
func newHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	npytest.WriteFile(t, home, crow.ComposeFile, []byte("services: {}\n"))
	results := filepath.Join(home, crow.ResultsDir)
	require.NoError(t, os.MkdirAll(results, 0o755))
	npytest.WriteDense(t, results, "U.npz", 2, 2, []float64{1, 0, 0, 1})
	npytest.WriteDense(t, results, "S.npz", 2, 2, []float64{5, 1, 2, 3})
	npytest.WriteDense(t, results, "V.npz", 2, 2, []float64{0, 1, 1, 0})

	return home
}

// fakeBinary writes an executable shell script and returns its path.
func fakeBinary(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script binaries need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "crow")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))

	return path
}

func TestArgs(t *testing.T) {
	req := crow.Request{Input: "/data/TCGA-Methyl-cancer.npz", K1: 25, K2: 30, Iterations: 1000, Blocks: "1x8"}
	assert.Equal(t,
		[]string{"-b", "1x8", "-i", "1000", "-k1", "25", "-k2", "30", "TCGA-Methyl-cancer.npz"},
		crow.Args(req))

	req.Blocks = ""
	assert.True(t, strings.HasPrefix(crow.Args(req)[1], "1x"))
}

func TestRequestValidate(t *testing.T) {
	assert.NoError(t, crow.DefaultRequest("x.npz").Validate())

	bad := []crow.Request{
		{K1: 1, K2: 1, Iterations: 1},
		{Input: "x.npz", K1: 0, K2: 1, Iterations: 1},
		{Input: "x.npz", K1: 1, K2: 1, Iterations: 0},
	}
	for _, req := range bad {
		assert.ErrorIs(t, req.Validate(), crow.ErrInvalidRequest)
	}
}

func TestResolveHome(t *testing.T) {
	t.Setenv(crow.EnvHome, "")
	assert.Equal(t, crow.DefaultHome, crow.ResolveHome(""))
	assert.Equal(t, "/opt/crow", crow.ResolveHome("/opt/crow"))

	t.Setenv(crow.EnvHome, "/env/crow")
	assert.Equal(t, "/env/crow", crow.ResolveHome("/opt/crow"))
}

func TestCheckInstall(t *testing.T) {
	err := crow.CheckInstall(t.TempDir())
	require.ErrorIs(t, err, crow.ErrNotInstalled)
	assert.Contains(t, err.Error(), "is CROW_HOME set?")

	assert.NoError(t, crow.CheckInstall(newHome(t)))
}

func TestResultsProvider(t *testing.T) {
	home := newHome(t)

	f, err := crow.ResultsProvider{Dir: filepath.Join(home, crow.ResultsDir)}.Factorize(context.Background(), crow.Request{})
	require.NoError(t, err)
	s, err := f.S.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, s)
	assert.Equal(t, 2, f.U.Rows())
	assert.Equal(t, 2, f.V.Cols())

	_, err = crow.ResultsProvider{Dir: filepath.Join(home, "nope")}.Factorize(context.Background(), crow.Request{})
	assert.ErrorIs(t, err, crow.ErrNoResults)

	require.NoError(t, os.Remove(filepath.Join(home, crow.ResultsDir, "V.npz")))
	_, err = crow.ResultsProvider{Dir: filepath.Join(home, crow.ResultsDir)}.Factorize(context.Background(), crow.Request{})
	assert.Error(t, err)
}

func TestRunner_Factorize(t *testing.T) {
	home := newHome(t)
	argsFile := filepath.Join(t.TempDir(), "args")
	bin := fakeBinary(t, `echo "$@" > `+argsFile+`; echo "done in $CROW_HOME"`)
	input := npytest.WriteDense(t, t.TempDir(), "input.npz", 1, 1, []float64{1})

	var out bytes.Buffer
	r := &crow.Runner{Home: home, Binary: bin, Stdout: &out}
	req := crow.DefaultRequest(input)
	req.Blocks = "1x2"

	f, err := r.Factorize(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, f.S.Rows())

	assert.FileExists(t, filepath.Join(home, crow.DataDir, "input.npz"))
	assert.Equal(t, "done in "+home+"\n", out.String())

	got, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "-b 1x2 -i 1000 -k1 25 -k2 30 input.npz\n", string(got))
}

func TestRunner_Failures(t *testing.T) {
	input := npytest.WriteDense(t, t.TempDir(), "input.npz", 1, 1, []float64{1})

	cases := []struct {
		name string
		body string
	}{
		{"stderr", `echo "out of memory" >&2`},
		{"exit status", `exit 3`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := &crow.Runner{Home: newHome(t), Binary: fakeBinary(t, tc.body)}
			_, err := r.Factorize(context.Background(), crow.DefaultRequest(input))
			assert.ErrorIs(t, err, crow.ErrFactorization)
		})
	}

	r := &crow.Runner{Home: t.TempDir(), Binary: "/bin/true"}
	_, err := r.Factorize(context.Background(), crow.DefaultRequest(input))
	assert.ErrorIs(t, err, crow.ErrNotInstalled)

	_, err = r.Factorize(context.Background(), crow.Request{Input: input})
	assert.ErrorIs(t, err, crow.ErrInvalidRequest)
}

func TestRunner_FailedStagingLeavesNoFile(t *testing.T) {
	home := newHome(t)
	// Opening a directory succeeds, reading it fails mid-copy.
	input := filepath.Join(t.TempDir(), "in.npz")
	require.NoError(t, os.Mkdir(input, 0o755))
	r := &crow.Runner{Home: home, Binary: "/bin/true"}

	for range 2 {
		_, err := r.Factorize(context.Background(), crow.DefaultRequest(input))
		require.Error(t, err)
		assert.NotErrorIs(t, err, crow.ErrFactorization)

		entries, err := os.ReadDir(filepath.Join(home, crow.DataDir))
		require.NoError(t, err)
		assert.Empty(t, entries)
	}
}
