package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/modulista/lang"
	"github.com/ardnew/modulista/log"
	"github.com/ardnew/modulista/pkg"
	"github.com/ardnew/modulista/store"
)

// Render writes a stored list as block-language text.
type Render struct {
	OutputDir string `help:"Write to a file named after the list in this directory instead of stdout." short:"o" type:"path"`

	Path string `arg:"" default:"/" help:"List to render." name:"path"`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	path := listPath(r.Path)

	out, err := store.Render(ctx, s, path, lang.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	if r.OutputDir == "" {
		_, err = fmt.Fprintln(os.Stdout, out)

		return err
	}

	file := filepath.Join(r.OutputDir, DownloadName(path))

	if err := os.WriteFile(file, []byte(out+"\n"), 0o644); err != nil {
		return ErrWriteOutput.With(slog.String("file", file)).Wrap(err)
	}

	log.InfoContext(ctx, "rendered list",
		slog.String("path", path),
		slog.String("file", file),
	)

	return nil
}

// DownloadName returns the file name for the rendering of the list at
// path: the path's names joined by underscores, or the program name
// followed by "_root" for the top-level list.
func DownloadName(path string) string {
	name := strings.ReplaceAll(strings.Trim(path, "/"), "/", "_")
	if name == "" {
		name = pkg.Name + "_root"
	}

	return name + ".txt"
}
