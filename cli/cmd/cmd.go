package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/modulista/lang"
	"github.com/ardnew/modulista/log"
	"github.com/ardnew/modulista/store"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type databaseKey struct{}

// WithDatabase returns a new context.Context naming the item database that
// commands open with [store.Open].
func WithDatabase(ctx context.Context, dsn string) context.Context {
	return context.WithValue(ctx, databaseKey{}, dsn)
}

// openStore opens the item database named in ctx. An unnamed database is
// held in memory.
func openStore(ctx context.Context) (store.Store, error) {
	dsn, _ := ctx.Value(databaseKey{}).(string)
	if dsn == "" {
		dsn = store.MemoryDSN
	}

	s, err := store.Open(ctx, dsn, store.WithLogger(log.Default()))
	if err != nil {
		return nil, ErrOpenStore.With(slog.String("database", dsn)).Wrap(err)
	}

	return s, nil
}

// listPath normalizes a container path given on the command line, so that
// "user", "/user" and "/user/" all name the list "/user/".
func listPath(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return lang.RootPath
	}

	return "/" + p + "/"
}

type (
	// SourceFiles is an ordered, de-duplicated set of block-language inputs.
	SourceFiles interface {
		IsZero() bool
		Stdin() io.Reader
		Parse(ctx context.Context, opts ...lang.Option) (*lang.Object, error)
	}

	source struct {
		name string
		r    io.Reader
	}

	sourceFiles struct {
		read     []source
		hasStdin bool
	}
)

// IsZero reports whether there are no source files.
func (s *sourceFiles) IsZero() bool { return len(s.read) == 0 && !s.hasStdin }

// Stdin returns os.Stdin if stdin was included as a source, or nil otherwise.
func (s *sourceFiles) Stdin() io.Reader {
	if s.hasStdin {
		return os.Stdin
	}

	return nil
}

func (s *sourceFiles) all() []source {
	if !s.hasStdin {
		return s.read
	}

	return append(s.read[:len(s.read):len(s.read)], source{name: stdinSource, r: os.Stdin})
}

// Parse parses every source in order and merges their top-level items into
// one object. An item named in a later source replaces the earlier one in
// place.
func (s *sourceFiles) Parse(ctx context.Context, opts ...lang.Option) (*lang.Object, error) {
	merged := lang.NewObject()

	all := s.all()

	for i, src := range all {
		obj, err := lang.ParseReader(ctx, src.r, opts...)

		closeSource(src)

		if err != nil {
			for _, rest := range all[i+1:] {
				closeSource(rest)
			}

			return nil, ErrParseSource.With(slog.String("source", src.name)).Wrap(err)
		}

		for name, v := range obj.All() {
			merged.Set(name, v)
		}
	}

	return merged, nil
}

// closeSource closes the reader of src unless it is stdin.
func closeSource(src source) {
	if c, ok := src.r.(io.Closer); ok && src.r != os.Stdin {
		_ = c.Close()
	}
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// buildSourceFiles constructs a SourceFiles from the given source paths.
// It deduplicates readers by resolving symlinks and comparing device/inode
// pairs. All occurrences of "-" are replaced with a single stdin reader placed
// last so it reads after all regular files.
func buildSourceFiles(sources []string) SourceFiles {
	if len(sources) == 0 {
		return nil
	}

	var srcs sourceFiles

	srcs.read = make([]source, 0, len(sources))
	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	for _, src := range sources {
		if src == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		reader, ok := openUniqueFile(src, seen)
		if !ok {
			log.Warn("skipping source", slog.String("source", src))

			continue
		}

		srcs.read = append(srcs.read, source{name: src, r: reader})
	}

	// Stdin may have been included via "-" or as a named file.
	// Both of which will be represented by stdinKey in seen.
	_, srcs.hasStdin = seen[stdinKey]
	delete(seen, stdinKey)

	if srcs.IsZero() {
		return nil
	}

	return &srcs
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
// Returns the opened file and true if successful, or nil and false if the file
// is a duplicate or cannot be opened.
func openUniqueFile(path string, seen map[fileKey]struct{}) (io.Reader, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false
	}

	key, ok := makeFileKey(info)
	if !ok {
		return nil, false
	}

	if _, exists := seen[key]; exists {
		return nil, false
	}

	seen[key] = struct{}{}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, false
	}

	return file, true
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: stat.Dev, ino: stat.Ino}, true
}

// parseSources parses the named sources, "-" meaning stdin, into one
// object.
func parseSources(ctx context.Context, sources []string) (*lang.Object, error) {
	srcs := buildSourceFiles(sources)
	if srcs == nil {
		return nil, ErrNoSource.With(slog.Any("sources", sources))
	}

	return srcs.Parse(ctx, lang.WithLogger(log.Default()))
}
