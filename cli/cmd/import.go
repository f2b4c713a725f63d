package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/modulista/log"
	"github.com/ardnew/modulista/store"
)

// Import parses block-language input and syncs it into the item database.
type Import struct {
	Path string `default:"/" help:"List to replace with the parsed items." short:"p"`

	Source []string `arg:"" default:"-" help:"Source input file(s) or '-' for stdin." name:"source"`
}

// Run executes the import command.
func (i *Import) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	obj, err := parseSources(ctx, i.Source)
	if err != nil {
		return err
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	path := listPath(i.Path)

	stats, err := store.Sync(ctx, s, path, obj, store.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "import complete",
		slog.String("path", path),
		slog.Any("stats", stats),
	)

	_, err = fmt.Fprintf(os.Stdout, "%d added, %d updated, %d replaced, %d deleted, %d unchanged\n",
		stats.Added, stats.Updated, stats.Replaced, stats.Deleted, stats.Unchanged)

	return err
}
