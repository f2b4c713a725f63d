package lang

import (
	"context"
	"errors"
	"testing"
)

func TestFold(t *testing.T) {
	num := func(v float64) Item {
		return Item{Path: "/E/", Name: "n", Type: TypeNumber, Value: v}
	}

	tests := []struct {
		name     string
		typ      ItemType
		children []Item
		want     float64
	}{
		{"sum", TypeSum, []Item{num(10), num(5), num(3)}, 18},
		{"difference", TypeDifference, []Item{num(10), num(3), num(2)}, 5},
		{"negative operand", TypeDifference, []Item{num(10), num(-5)}, 15},
		{"fractions", TypeSum, []Item{num(0.5), num(0.25)}, 0.75},
		{"single operand", TypeDifference, []Item{num(4)}, 4},
		{"no operands", TypeSum, nil, 0},
		{"beyond int64", TypeSum, []Item{num(1 << 62), num(1 << 62)}, 1 << 63},
		{"large whole operand", TypeSum, []Item{num(1e21), num(1)}, 1e21 + 1},
		{"large difference", TypeDifference, []Item{num(-(1 << 62)), num(1 << 62)}, -(1 << 63)},
		{
			"non-numbers ignored",
			TypeSum,
			[]Item{num(1), {Path: "/E/", Name: "s", Type: TypeSum}, num(2)},
			3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := Tree{"/E/": tt.children}
			it := Item{Path: "/", Name: "E", Type: tt.typ}

			got, err := Fold(t.Context(), it, tree)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("Fold = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFold_NotExpression(t *testing.T) {
	it := Item{Path: "/", Name: "l", Type: TypeList}

	if _, err := Fold(t.Context(), it, Tree{}); !errors.Is(err, ErrNotExpression) {
		t.Fatalf("expected ErrNotExpression, got %v", err)
	}
}

func TestFold_FetchError(t *testing.T) {
	errBoom := errors.New("boom")

	f := FetchFunc(func(context.Context, string) ([]Item, error) {
		return nil, errBoom
	})

	it := Item{Path: "/", Name: "s", Type: TypeSum}

	if _, err := Fold(t.Context(), it, f); !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom, got %v", err)
	}
}
