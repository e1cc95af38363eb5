package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/ctorcli/pkg"
)

// baseConfig is the base name of the configuration files.
const baseConfig = "config"

var defaultDirMode os.FileMode = 0o700

// configPath joins elem onto the configuration directory.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
