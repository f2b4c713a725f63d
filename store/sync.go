package store

import (
	"context"
	"log/slog"
	"slices"

	"github.com/ardnew/modulista/lang"
)

// Stats counts the changes made by [Sync].
type Stats struct {
	Added     int `json:"added"`
	Updated   int `json:"updated"`
	Replaced  int `json:"replaced"`
	Deleted   int `json:"deleted"`
	Unchanged int `json:"unchanged"`
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("added", s.Added),
		slog.Int("updated", s.Updated),
		slog.Int("replaced", s.Replaced),
		slog.Int("deleted", s.Deleted),
		slog.Int("unchanged", s.Unchanged),
	)
}

// Changed reports whether any item was written or removed.
func (s Stats) Changed() bool {
	return s.Added+s.Updated+s.Replaced+s.Deleted > 0
}

// Sync makes the container at path hold exactly the entries of obj.
//
// Entries are matched to stored items by name. A stored item whose type
// differs from its entry is deleted, along with its descendants, and
// re-added. Items absent from obj are deleted. Nested objects are synced
// recursively into their list's child path, and each container ends up in
// the order of obj.
func Sync(ctx context.Context, s Store, path string, obj *lang.Object, opts ...Option) (Stats, error) {
	o := makeOptions(opts...)

	var st Stats

	if err := syncList(ctx, s, path, obj, &st); err != nil {
		return st, err
	}

	o.logger.DebugContext(ctx, "sync complete",
		slog.String("path", path),
		slog.Any("stats", st),
	)

	return st, nil
}

func syncList(ctx context.Context, s Store, path string, obj *lang.Object, st *Stats) error {
	existing, err := s.Children(ctx, path)
	if err != nil {
		return err
	}

	byName := make(map[string]lang.Item, len(existing))
	for _, it := range existing {
		byName[it.Name] = it
	}

	order := make([]string, 0, obj.Len())

	for name, v := range obj.All() {
		if err := ctx.Err(); err != nil {
			return err
		}

		want := lang.ItemOf(path, name, v)
		cur, ok := byName[name]

		switch {
		case !ok:
			if cur, err = s.Add(ctx, want); err != nil {
				return err
			}

			st.Added++

		case keepsConditional(cur, v):
			st.Unchanged++

		case cur.Type != want.Type:
			if err := deleteItem(ctx, s, cur); err != nil {
				return err
			}

			if cur, err = s.Add(ctx, want); err != nil {
				return err
			}

			st.Replaced++

		case want.Type.IsContainer():
			st.Unchanged++

		case Digest(cur) != Digest(want):
			cur.Value = want.Value

			if err := s.Update(ctx, cur); err != nil {
				return err
			}

			st.Updated++

		default:
			st.Unchanged++
		}

		delete(byName, name)
		order = append(order, cur.ID)

		if v.Kind == lang.KindObject && cur.Type.IsContainer() {
			if err := syncList(ctx, s, cur.ChildPath(), v.Object, st); err != nil {
				return err
			}
		}
	}

	for _, it := range existing {
		if _, stale := byName[it.Name]; !stale {
			continue
		}

		if err := deleteItem(ctx, s, it); err != nil {
			return err
		}

		st.Deleted++
	}

	return reorder(ctx, s, path, order)
}

// keepsConditional reports whether v is the list form a structured
// conditional renders as, holding exactly the values stored in cur.
func keepsConditional(cur lang.Item, v *lang.Value) bool {
	c, ok := cur.ConditionalValue()
	if !ok || v == nil || v.Kind != lang.KindObject || v.Object.Len() != 3 {
		return false
	}

	for name, want := range map[string]string{
		"condition":  c.Condition,
		"trueValue":  c.TrueValue,
		"falseValue": c.FalseValue,
	} {
		got, ok := v.Object.Get(name)
		if !ok || got.Kind != lang.KindText || got.Text != want {
			return false
		}
	}

	return true
}

// deleteItem removes it, and first its descendants if it is a container.
func deleteItem(ctx context.Context, s Store, it lang.Item) error {
	if it.Type.IsContainer() {
		if _, err := s.DeleteTree(ctx, it.ChildPath()); err != nil {
			return err
		}
	}

	return s.Delete(ctx, it.ID)
}

// reorder applies order to path only if the stored order differs.
func reorder(ctx context.Context, s Store, path string, order []string) error {
	items, err := s.Children(ctx, path)
	if err != nil {
		return err
	}

	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}

	if slices.Equal(ids, order) {
		return nil
	}

	return s.Reorder(ctx, path, order)
}
