package store

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ardnew/modulista/lang"
)

// Memory is a [Store] held entirely in process memory.
type Memory struct {
	mu    sync.RWMutex
	items map[string]*record
	seq   int
	opts  options
}

type record struct {
	item    lang.Item
	created int
}

// NewMemory returns an empty in-memory store.
func NewMemory(opts ...Option) *Memory {
	return &Memory{
		items: make(map[string]*record),
		opts:  makeOptions(opts...),
	}
}

// Close releases nothing; it exists to satisfy [Store].
func (m *Memory) Close() error { return nil }

func (m *Memory) Add(ctx context.Context, it lang.Item) (lang.Item, error) {
	if err := ctx.Err(); err != nil {
		return lang.Item{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	siblings := m.children(it.Path)

	it.ID = uuid.NewString()
	it.Name = uniqueName(it.Name, func(name string) bool {
		return slices.ContainsFunc(siblings, func(r *record) bool {
			return r.item.Name == name
		})
	})
	it.Order = nextOrder(siblings)

	if it.Type.IsContainer() {
		it.Value = nil
	}

	m.seq++
	m.items[it.ID] = &record{item: it, created: m.seq}

	m.opts.logger.TraceContext(ctx, "add item",
		slog.String("id", it.ID),
		slog.String("path", it.Path),
		slog.String("name", it.Name),
	)

	return it, nil
}

func (m *Memory) Update(ctx context.Context, it lang.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.items[it.ID]
	if !ok {
		return ErrNotFound.With(slog.String("id", it.ID))
	}

	for _, s := range m.children(it.Path) {
		if s.item.Name == it.Name && s.item.ID != it.ID {
			return ErrDuplicateName.With(
				slog.String("path", it.Path),
				slog.String("name", it.Name),
			)
		}
	}

	if it.Type.IsContainer() {
		it.Value = nil
	}

	r.item = it

	return nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return ErrNotFound.With(slog.String("id", id))
	}

	delete(m.items, id)

	return nil
}

func (m *Memory) DeleteTree(ctx context.Context, path string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0

	for id, r := range m.items {
		if strings.HasPrefix(r.item.Path, path) {
			delete(m.items, id)
			n++
		}
	}

	return n, nil
}

func (m *Memory) Get(ctx context.Context, id string) (lang.Item, error) {
	if err := ctx.Err(); err != nil {
		return lang.Item{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.items[id]
	if !ok {
		return lang.Item{}, ErrNotFound.With(slog.String("id", id))
	}

	return r.item, nil
}

func (m *Memory) Lookup(ctx context.Context, path, name string) (lang.Item, error) {
	if err := ctx.Err(); err != nil {
		return lang.Item{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.children(path) {
		if r.item.Name == name {
			return r.item, nil
		}
	}

	return lang.Item{}, ErrNotFound.With(
		slog.String("path", path),
		slog.String("name", name),
	)
}

func (m *Memory) Children(ctx context.Context, path string) ([]lang.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := m.children(path)
	items := make([]lang.Item, len(recs))

	for i, r := range recs {
		items[i] = r.item
	}

	return items, nil
}

// FetchChildren implements [lang.Fetcher].
func (m *Memory) FetchChildren(ctx context.Context, path string) ([]lang.Item, error) {
	return m.Children(ctx, path)
}

func (m *Memory) Reorder(ctx context.Context, path string, ids []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range ids {
		if r, ok := m.items[id]; !ok || r.item.Path != path {
			return ErrNotFound.With(
				slog.String("path", path),
				slog.String("id", id),
			)
		}
	}

	for i, r := range reordered(m.children(path), ids, func(r *record) string {
		return r.item.ID
	}) {
		r.item.Order = i
	}

	return nil
}

// children returns the records stored at path in display order. The caller
// must hold m.mu.
func (m *Memory) children(path string) []*record {
	var recs []*record

	for _, r := range m.items {
		if r.item.Path == path {
			recs = append(recs, r)
		}
	}

	slices.SortFunc(recs, func(a, b *record) int {
		return cmp.Or(
			cmp.Compare(a.item.Order, b.item.Order),
			cmp.Compare(a.created, b.created),
		)
	})

	return recs
}

func nextOrder(siblings []*record) int {
	if len(siblings) == 0 {
		return 0
	}

	return siblings[len(siblings)-1].item.Order + 1
}

// reordered returns elems with those whose key is in ids moved to the front
// in the order of ids. The rest follow in their original order.
func reordered[T any](elems []T, ids []string, key func(T) string) []T {
	rank := make(map[string]int, len(ids))
	for i, id := range ids {
		rank[id] = i
	}

	out := slices.Clone(elems)

	slices.SortStableFunc(out, func(a, b T) int {
		ra, oka := rank[key(a)]
		rb, okb := rank[key(b)]

		switch {
		case oka && okb:
			return cmp.Compare(ra, rb)
		case oka:
			return -1
		case okb:
			return 1
		default:
			return 0
		}
	})

	return out
}
