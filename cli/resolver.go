package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/modulista/lang"
	"github.com/ardnew/modulista/log"
)

// resolve returns a [kong.ConfigurationLoader] reading flag values from the
// list named name in a block-language file:
//
//	{
//	  config: {
//	    log_level: "debug"
//	    log_pretty: @0
//	    db: "/var/lib/modulista/items.db"
//	  }
//	}
//
// Hyphens in flag names may be written as underscores. Text, numbers,
// booleans and bare words are accepted as values; other entries are
// ignored. A file that fails to parse contributes no values, and
// command-line flags always override the file.
func resolve(ctx context.Context, name string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		obj, err := lang.ParseReader(ctx, r)
		if err != nil {
			log.WarnContext(ctx, "ignoring unreadable configuration",
				slog.Any("error", err))

			return config{}, nil
		}

		v, ok := obj.Get(name)
		if !ok || v.Kind != lang.KindObject {
			return config{}, nil
		}

		return configOf(v.Object), nil
	}
}

// config implements [kong.Resolver] over the flag values of a config list.
type config map[string]any

func configOf(obj *lang.Object) config {
	c := make(config, obj.Len())

	for key, v := range obj.All() {
		switch v.Kind {
		case lang.KindText:
			c[key] = v.Text

		case lang.KindNumber:
			// kong parses numeric flags from their text.
			c[key] = lang.FormatNumber(v.Number)

		case lang.KindBoolean:
			c[key] = v.Boolean

		case lang.KindReference:
			c[key] = v.Name
		}
	}

	return c
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	if v, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return v, nil
	}

	return nil, nil
}
