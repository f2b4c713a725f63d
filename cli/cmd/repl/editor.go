package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/modulista/lang"
	"github.com/ardnew/modulista/log"
	"github.com/ardnew/modulista/store"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand]. It renders the list at path to
// a temp file, opens the user's editor, parses the result and syncs it back
// into the store. On a parse error the user may re-edit; declining returns
// [ErrEditDeclined].
type editCommand struct {
	store   store.Store
	path    string
	ctxFunc func() context.Context
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer

	done  bool
	stats store.Stats
}

func (c *editCommand) SetStdin(r io.Reader)  { c.stdin = r }
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

func (c *editCommand) Run() error {
	ctx := c.ctxFunc()

	content, err := store.Render(ctx, c.store, c.path, lang.WithLogger(c.logger))
	if err != nil {
		return fmt.Errorf("render %s: %w", c.path, err)
	}

	f, err := os.CreateTemp("", "modulista-*.txt")
	if err != nil {
		return err
	}

	tmp := f.Name()
	defer os.Remove(tmp)

	if err := f.Close(); err != nil {
		return err
	}

	in := bufio.NewScanner(c.stdin)

	for {
		if err := os.WriteFile(tmp, []byte(content+"\n"), 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmp); err != nil {
			return err
		}

		data, err := os.ReadFile(tmp)
		if err != nil {
			return err
		}

		if strings.TrimSpace(string(data)) == "" {
			return nil
		}

		obj, parseErr := lang.ParseString(ctx, string(data), lang.WithLogger(c.logger))

		c.logger.TraceContext(ctx, "editor parse attempt",
			slog.Int("length", len(data)),
			slog.Bool("success", parseErr == nil),
		)

		if parseErr == nil {
			c.stats, err = store.Sync(ctx, c.store, c.path, obj, store.WithLogger(c.logger))
			c.done = err == nil

			return err
		}

		fmt.Fprintf(c.stderr, "\nParse error: %s\n", parseErr)
		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		if !in.Scan() {
			return ErrEditDeclined
		}

		if r := strings.ToLower(strings.TrimSpace(in.Text())); r == "n" || r == "no" {
			return ErrEditDeclined
		}

		content = strings.TrimSuffix(string(data), "\n")
	}
}

// runEditor opens $EDITOR, or vi, on path and waits for it to exit.
// The editor inherits stdin only when it is a file, such as the terminal.
// Any other reader is left for the re-edit prompt.
func runEditor(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, path string) error {
	args := editorArgs()

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	if f, ok := stdin.(*os.File); ok {
		cmd.Stdin = f
	}

	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}

// editorArgs splits $EDITOR into a command and its arguments, falling back
// to vi when it is unset or blank.
func editorArgs() []string {
	args := strings.Fields(os.Getenv("EDITOR"))
	if len(args) == 0 {
		return []string{defaultEditor}
	}

	return args
}
