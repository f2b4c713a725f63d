package repl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/ardnew/modulista/lang"
	"github.com/ardnew/modulista/log"
	"github.com/ardnew/modulista/store"
)

// command describes one shell command for help and completion.
type command struct {
	name, args, help string
}

var commands = []command{
	{"ls", "[name]", "List items in the current or named list"},
	{"cd", "[name|..|/]", "Change the current list"},
	{"cat", "[name]", "Render the current list or one item"},
	{"fold", "<name>", "Evaluate a sum or difference"},
	{"mv", "<name> <new>", "Rename an item"},
	{"rm", "<name>", "Delete an item and everything it contains"},
	{"edit", "", "Edit the current list in $EDITOR"},
	{"clear", "", "Clear the screen"},
	{"help", "", "Print this help"},
	{"quit", "", "Exit the shell"},
}

// commandNames returns the names of all commands, for completion.
func commandNames() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}

	return names
}

// action is a side effect the interactive model performs after a command.
type action int

const (
	actionNone action = iota
	actionQuit
	actionClear
	actionEdit
)

// session holds the shell's position in the store. It has no terminal
// dependencies.
type session struct {
	store  store.Store
	cwd    string
	logger log.Logger
}

func newSession(s store.Store, logger log.Logger) *session {
	return &session{store: s, cwd: lang.RootPath, logger: logger}
}

// exec runs one command line and returns its output.
func (s *session) exec(ctx context.Context, line string) (string, action, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return "", actionNone, nil
	}

	name, args := args[0], args[1:]

	s.logger.TraceContext(ctx, "shell command",
		slog.String("command", name),
		slog.Any("args", args),
		slog.String("cwd", s.cwd),
	)

	switch name {
	case "q", "quit", "exit":
		return "", actionQuit, nil

	case "clear":
		return "", actionClear, nil

	case "edit":
		return "", actionEdit, nil

	case "h", "help", "?":
		return helpText(), actionNone, nil

	case "ls":
		out, err := s.list(ctx, args)

		return out, actionNone, err

	case "cd":
		return "", actionNone, s.chdir(ctx, args)

	case "cat":
		out, err := s.cat(ctx, args)

		return out, actionNone, err

	case "fold":
		out, err := s.fold(ctx, args)

		return out, actionNone, err

	case "mv":
		return "", actionNone, s.rename(ctx, args)

	case "rm":
		out, err := s.remove(ctx, args)

		return out, actionNone, err

	default:
		return "", actionNone, ErrUnknownCommand.With(slog.String("command", name))
	}
}

func helpText() string {
	var b strings.Builder

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)

	for _, c := range commands {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", c.name, c.args, c.help)
	}

	_ = tw.Flush()

	b.WriteString("\nTab completes commands and item names. Up/Down browse history.\n")
	b.WriteString("Ctrl+C on an empty line or Ctrl+D exits.")

	return b.String()
}

// lookup resolves a slash-separated item name relative to the current list.
func (s *session) lookup(ctx context.Context, name string) (lang.Item, error) {
	path := s.cwd

	if strings.HasPrefix(name, "/") {
		path = lang.RootPath
	}

	segments := strings.FieldsFunc(name, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return lang.Item{}, ErrEmptyName.With(slog.String("name", name))
	}

	var it lang.Item

	for i, seg := range segments {
		var err error

		if it, err = s.store.Lookup(ctx, path, seg); err != nil {
			return it, err
		}

		if i < len(segments)-1 {
			if !it.Type.IsContainer() {
				return it, ErrNotList.With(slog.String("name", it.Name))
			}

			path = it.ChildPath()
		}
	}

	return it, nil
}

// target resolves the optional container argument of ls and cat.
func (s *session) target(ctx context.Context, args []string) (string, *lang.Item, error) {
	if len(args) == 0 {
		return s.cwd, nil, nil
	}

	it, err := s.lookup(ctx, args[0])
	if err != nil {
		return "", nil, err
	}

	return it.ChildPath(), &it, nil
}

func (s *session) list(ctx context.Context, args []string) (string, error) {
	path, it, err := s.target(ctx, args)
	if err != nil {
		return "", err
	}

	if it != nil && !it.Type.IsContainer() {
		return s.describe(ctx, []lang.Item{*it})
	}

	items, err := s.store.Children(ctx, path)
	if err != nil {
		return "", err
	}

	if len(items) == 0 {
		return hintStyle.Render("(empty)"), nil
	}

	return s.describe(ctx, items)
}

// describe formats one line per item: name, type and a short preview.
func (s *session) describe(ctx context.Context, items []lang.Item) (string, error) {
	var b strings.Builder

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)

	for _, it := range items {
		pv, err := s.preview(ctx, it)
		if err != nil {
			return "", err
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			nameStyle.Render(it.Name), typeStyle.Render(it.Type.String()), pv)
	}

	_ = tw.Flush()

	return strings.TrimSuffix(b.String(), "\n"), nil
}

const previewWidth = 40

func (s *session) preview(ctx context.Context, it lang.Item) (string, error) {
	if it.Type.IsContainer() {
		children, err := s.store.Children(ctx, it.ChildPath())
		if err != nil {
			return "", err
		}

		return hintStyle.Render(fmt.Sprintf("{ %d items }", len(children))), nil
	}

	plan := lang.Stringify([]lang.Item{it}, it.Path, 1)

	pv := []rune(fmt.Sprint(plan.Parts[1]))
	if len(pv) > previewWidth {
		pv = append(pv[:previewWidth-3], []rune("...")...)
	}

	return string(pv), nil
}

func (s *session) chdir(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "/" {
		s.cwd = lang.RootPath

		return nil
	}

	if args[0] == ".." {
		s.cwd = parentPath(s.cwd)

		return nil
	}

	it, err := s.lookup(ctx, args[0])
	if err != nil {
		return err
	}

	if !it.Type.IsContainer() {
		return ErrNotList.With(slog.String("name", it.Name))
	}

	s.cwd = it.ChildPath()

	return nil
}

func (s *session) cat(ctx context.Context, args []string) (string, error) {
	path, it, err := s.target(ctx, args)
	if err != nil {
		return "", err
	}

	if it != nil {
		return store.RenderItem(ctx, s.store, *it, lang.WithLogger(s.logger))
	}

	return store.Render(ctx, s.store, path, lang.WithLogger(s.logger))
}

func (s *session) fold(ctx context.Context, args []string) (string, error) {
	if len(args) != 1 {
		return "", ErrUsage.With(slog.String("usage", "fold <name>"))
	}

	it, err := s.lookup(ctx, args[0])
	if err != nil {
		return "", err
	}

	n, err := lang.Fold(ctx, it, s.store, lang.WithLogger(s.logger))
	if err != nil {
		return "", err
	}

	return lang.FormatNumber(n), nil
}

func (s *session) rename(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return ErrUsage.With(slog.String("usage", "mv <name> <new>"))
	}

	it, err := s.lookup(ctx, args[0])
	if err != nil {
		return err
	}

	if !validName(args[1]) {
		return lang.ErrInvalidName.With(slog.String("name", args[1]))
	}

	if it.Type.IsContainer() {
		return ErrRenameList.With(slog.String("name", it.Name))
	}

	it.Name = args[1]

	return s.store.Update(ctx, it)
}

func (s *session) remove(ctx context.Context, args []string) (string, error) {
	if len(args) != 1 {
		return "", ErrUsage.With(slog.String("usage", "rm <name>"))
	}

	it, err := s.lookup(ctx, args[0])
	if err != nil {
		return "", err
	}

	n := 0

	if it.Type.IsContainer() {
		if n, err = s.store.DeleteTree(ctx, it.ChildPath()); err != nil {
			return "", err
		}
	}

	if err := s.store.Delete(ctx, it.ID); err != nil {
		return "", err
	}

	return fmt.Sprintf("removed %s (%d nested)", it.Name, n), nil
}

// parentPath returns the path of the list containing the list at path.
func parentPath(path string) string {
	trimmed := strings.TrimSuffix(path, "/")

	i := strings.LastIndexByte(trimmed, '/')
	if i < 0 {
		return lang.RootPath
	}

	return trimmed[:i+1]
}

func validName(s string) bool {
	obj, err := lang.Parse("{ " + s + ": @1 }")

	return err == nil && obj.Len() == 1 && obj.Keys()[0] == s
}
