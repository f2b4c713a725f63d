package cli

import (
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/modulista/pkg"
)

const (
	// baseConfig is the base name of the configuration file and the name of
	// its top-level list holding flag values.
	baseConfig = "config"

	// baseDatabase is the base name of the default item database.
	baseDatabase = pkg.Name + ".db"
)

var defaultDirMode os.FileMode = 0o700

// configPath joins elem to the configuration directory.
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

func joinSeq(seq iter.Seq[string]) string {
	var b strings.Builder

	for s := range seq {
		if b.Len() > 0 {
			b.WriteByte(',')
		}

		b.WriteString(s)
	}

	return b.String()
}
