package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the object in block-language syntax, the same text the
// planner and executor produce for its flattened items.
func (o *Object) Format(ctx context.Context, w io.Writer, opts ...Option) error {
	tree := Flatten(o, RootPath)

	out, err := Execute(ctx, Stringify(tree[RootPath], RootPath, 1), tree, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, out)

	return err
}

// FormatJSON writes the object as JSON. An indent of 0 writes compact output.
func (o *Object) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(o, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(o)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the object as YAML. An indent of 0 writes flow style.
func (o *Object) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, toMapSlice(o.ToNative()), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// Print writes an indented dump of the object's values with their kinds and
// source positions.
func (o *Object) Print(w io.Writer) {
	o.print(w, 0)
}

func (o *Object) print(w io.Writer, depth int) {
	prefix := strings.Repeat("  ", depth)

	for name, v := range o.All() {
		if v.Kind == KindObject {
			fmt.Fprintf(w, "%s%s: %s @%s\n", prefix, name, v.Kind, v.Pos)
			v.Object.print(w, depth+1)

			continue
		}

		fmt.Fprintf(w, "%s%s: %s %s @%s\n", prefix, name, v.Kind, v, v.Pos)
	}
}
