package store

import (
	"context"

	"github.com/ardnew/modulista/lang"
)

// Render returns the block-language text of the container at path, with
// nested containers and expressions resolved through s.
func Render(ctx context.Context, s Store, path string, opts ...lang.Option) (string, error) {
	items, err := s.Children(ctx, path)
	if err != nil {
		return "", err
	}

	return lang.Execute(ctx, lang.Stringify(items, path, 1), s, opts...)
}

// RenderItem returns a block holding only it, resolved through s.
func RenderItem(ctx context.Context, s Store, it lang.Item, opts ...lang.Option) (string, error) {
	return lang.Execute(ctx, lang.Stringify([]lang.Item{it}, it.Path, 1), s, opts...)
}

// Walk calls fn for every item at or below path, depth first in display
// order. It stops at the first error.
func Walk(ctx context.Context, s Store, path string, fn func(lang.Item) error) error {
	items, err := s.Children(ctx, path)
	if err != nil {
		return err
	}

	for _, it := range items {
		if err := fn(it); err != nil {
			return err
		}

		if it.Type.IsContainer() {
			if err := Walk(ctx, s, it.ChildPath(), fn); err != nil {
				return err
			}
		}
	}

	return nil
}
