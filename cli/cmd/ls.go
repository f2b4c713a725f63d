package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ardnew/modulista/lang"
	"github.com/ardnew/modulista/store"
)

// Ls lists the items stored in a list.
type Ls struct {
	Recursive bool `help:"Include the contents of nested lists." short:"r"`
	JSON      bool `help:"Write items as a JSON array."`

	Path string `arg:"" default:"/" help:"List to show." name:"path"`
}

// Run executes the ls command.
func (l *Ls) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	items, err := l.items(ctx, s, listPath(l.Path))
	if err != nil {
		return err
	}

	if l.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if items == nil {
			items = []lang.Item{}
		}

		return enc.Encode(items)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	for _, it := range items {
		name := it.Name
		if l.Recursive {
			name = strings.TrimPrefix(it.Path, lang.RootPath) + it.Name
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, it.Type, it.ID)
	}

	return tw.Flush()
}

func (l *Ls) items(ctx context.Context, s store.Store, path string) ([]lang.Item, error) {
	if !l.Recursive {
		return s.Children(ctx, path)
	}

	var items []lang.Item

	err := store.Walk(ctx, s, path, func(it lang.Item) error {
		items = append(items, it)

		return nil
	})

	return items, err
}
