package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ardnew/modulista/lang"
	"github.com/ardnew/modulista/log"
)

// Fold evaluates a stored sum or difference over its numeric children.
type Fold struct {
	Path string `arg:"" help:"List holding the item." name:"path"`
	Name string `arg:"" help:"Name of the sum or difference item." name:"name"`
}

// Run executes the fold command.
func (f *Fold) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	it, err := s.Lookup(ctx, listPath(f.Path), f.Name)
	if err != nil {
		return err
	}

	n, err := lang.Fold(ctx, it, s, lang.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(os.Stdout, lang.FormatNumber(n))

	return err
}
