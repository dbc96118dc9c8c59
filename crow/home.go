// SPDX-License-Identifier: MIT

package crow

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ResolveHome picks the CROW install directory: $CROW_HOME when set,
// otherwise configured, otherwise DefaultHome.
func ResolveHome(configured string) string {
	if h := os.Getenv(EnvHome); h != "" {
		return h
	}
	if configured != "" {
		return configured
	}

	return DefaultHome
}

// CheckInstall returns ErrNotInstalled unless home/docker-compose.yml exists.
func CheckInstall(home string) error {
	compose := filepath.Join(home, ComposeFile)
	_, err := os.Stat(compose)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s missing, is %s set?", ErrNotInstalled, compose, EnvHome)
	}
	if err != nil {
		return fmt.Errorf("crow.CheckInstall: %w", err)
	}

	return nil
}
