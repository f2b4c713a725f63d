package cmd

import (
	"context"

	"github.com/ardnew/modulista/cli/cmd/repl"
	"github.com/ardnew/modulista/log"
)

// Shell browses and edits the item database interactively.
type Shell struct{}

// Run executes the shell command.
func (*Shell) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	var cacheDir string

	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, s, cacheDir, log.Default())
}
