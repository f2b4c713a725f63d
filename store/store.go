// Package store persists items in containers addressed by path.
//
// A [Store] supplies the ordered children of any container, which makes it
// a [lang.Fetcher] for rendering, and accepts the edits produced by [Sync]
// when parsed text is written back.
package store

import (
	"context"
	"io"

	"github.com/ardnew/modulista/lang"
	"github.com/ardnew/modulista/log"
)

// Store is a collection of items grouped into containers by path.
//
// Item names are unique within a container. Children are returned in
// display order.
type Store interface {
	lang.Fetcher
	io.Closer

	// Add inserts it with a new ID. If its name is taken in the container,
	// a numeric suffix is added or incremented until it is unique. The
	// item is placed after the container's existing children.
	Add(ctx context.Context, it lang.Item) (lang.Item, error)

	// Update replaces the stored item with the same ID.
	Update(ctx context.Context, it lang.Item) error

	// Delete removes a single item. Its children, if any, are untouched.
	Delete(ctx context.Context, id string) error

	// DeleteTree removes every item stored at path or below it, and
	// reports how many were removed.
	DeleteTree(ctx context.Context, path string) (int, error)

	Get(ctx context.Context, id string) (lang.Item, error)
	Lookup(ctx context.Context, path, name string) (lang.Item, error)
	Children(ctx context.Context, path string) ([]lang.Item, error)

	// Reorder sets the display order of the container at path to ids.
	// Children not named in ids keep their relative order after them.
	Reorder(ctx context.Context, path string, ids []string) error
}

// Option configures a store.
type Option func(*options)

type options struct {
	logger log.Logger
}

func makeOptions(opts ...Option) options {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithLogger sets the logger used for trace output.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Open returns the store at dsn: a SQLite database file, or an in-memory
// SQLite database if dsn is [MemoryDSN].
func Open(ctx context.Context, dsn string, opts ...Option) (Store, error) {
	return OpenSQLite(ctx, dsn, opts...)
}
