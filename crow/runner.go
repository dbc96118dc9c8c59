// SPDX-License-Identifier: MIT

package crow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Runner runs the crow binary of a CROW install.
type Runner struct {
	Home   string      // install directory; ResolveHome("") when empty
	Binary string      // executable; DefaultBinary when empty
	Stdout io.Writer   // receives the process stdout; discarded when nil
	Logger *zap.Logger // nil disables logging
}

// Args returns the command line for req, without the binary:
//
//	-b <blocks> -i <iterations> -k1 <k1> -k2 <k2> <input base name>
func Args(req Request) []string {
	blocks := req.Blocks
	if blocks == "" {
		blocks = "1x" + strconv.Itoa(runtime.NumCPU())
	}

	return []string{
		"-b", blocks,
		"-i", strconv.Itoa(req.Iterations),
		"-k1", strconv.Itoa(req.K1),
		"-k2", strconv.Itoa(req.K2),
		filepath.Base(req.Input),
	}
}

// Factorize runs one factorization and loads its results.
//
// Implementation:
//   - Stage 1: validate req and the install (ErrInvalidRequest, ErrNotInstalled).
//   - Stage 2: copy req.Input to <home>/data unless a file of that name is there.
//   - Stage 3: run the binary under ctx with CROW_HOME exported; a non-zero exit
//     or any stderr output is ErrFactorization.
//   - Stage 4: read <home>/results through ResultsProvider.
func (r *Runner) Factorize(ctx context.Context, req Request) (*Factors, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	home := r.Home
	if home == "" {
		home = ResolveHome("")
	}
	if err := CheckInstall(home); err != nil {
		return nil, err
	}
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}

	// Stage 2 (Stage).
	staged, err := stageInput(req.Input, filepath.Join(home, DataDir))
	if err != nil {
		return nil, fmt.Errorf("crow.Runner: %w", err)
	}
	if staged {
		log.Info("staged input", zap.String("file", req.Input), zap.String("home", home))
	}

	// Stage 3 (Run).
	bin := r.Binary
	if bin == "" {
		bin = DefaultBinary
	}
	args := Args(req)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Env = append(os.Environ(), EnvHome+"="+home)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Info("factorization started", zap.String("binary", bin), zap.Strings("args", args))
	start := time.Now()
	runErr := cmd.Run()
	if r.Stdout != nil && stdout.Len() > 0 {
		_, _ = r.Stdout.Write(stdout.Bytes())
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return nil, fmt.Errorf("%w: %s", ErrFactorization, msg)
	}
	if runErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrFactorization, runErr)
	}
	log.Info("factorization finished", zap.Duration("duration", time.Since(start)))

	// Stage 4 (Load).
	return ResultsProvider{Dir: filepath.Join(home, ResultsDir)}.Factorize(ctx, req)
}

// stageInput copies src into dir unless dir already holds a file of that name.
// The copy goes through a temporary file in dir, so a failed copy never leaves
// a partial file under the final name.
func stageInput(src, dir string) (bool, error) {
	dst := filepath.Join(dir, filepath.Base(src))
	if _, err := os.Stat(dst); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}

	in, err := os.Open(src)
	if err != nil {
		return false, err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(src)+".*")
	if err != nil {
		return false, err
	}
	_, err = io.Copy(tmp, in)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), dst)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return false, err
	}

	return true, nil
}
