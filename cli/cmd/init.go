package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/modulista/lang"
	"github.com/ardnew/modulista/log"
	"github.com/ardnew/modulista/profile"
)

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config file path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	err = i.buildConfig(ctx).Format(ctx, file)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// buildConfig returns a document holding one list, named by
// [ConfigIdentifier], with an entry for every flag that has a value.
// Hyphens in flag names are written as underscores.
func (i *Init) buildConfig(ctx context.Context) *lang.Object {
	ktx := kongContextFrom(ctx)

	cfg := lang.NewObject()

	prefixIgnore := []string{"help", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if val := flagValue(ktx, flag); val != nil {
			cfg.Set(strings.ReplaceAll(flag.Name, "-", "_"), val)
		}
	}

	return lang.NewObject().Set(ConfigIdentifier, lang.ObjectValue(cfg))
}

// flagValue returns the value of a CLI flag, or nil if unset. Slices are
// written as comma-separated text, which kong splits when reading them back.
func flagValue(ktx *kong.Context, flag *kong.Flag) *lang.Value {
	val := ktx.FlagValue(flag)
	if val == nil {
		return nil
	}

	switch v := val.(type) {
	case bool:
		return lang.Boolean(v)

	case string:
		if v == "" {
			return nil
		}

		return lang.Text(v)

	case int:
		return lang.Number(float64(v))

	case int64:
		return lang.Number(float64(v))

	case uint:
		return lang.Number(float64(v))

	case uint64:
		return lang.Number(float64(v))

	case float32:
		return lang.Number(float64(v))

	case float64:
		return lang.Number(v)

	case []string:
		if len(v) == 0 {
			return nil
		}

		return lang.Text(strings.Join(v, ","))

	case []int:
		if len(v) == 0 {
			return nil
		}

		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = fmt.Sprint(n)
		}

		return lang.Text(strings.Join(parts, ","))

	case fmt.Stringer:
		return textOf(v.String())

	default:
		return textOf(fmt.Sprint(v))
	}
}

func textOf(s string) *lang.Value {
	if s == "" {
		return nil
	}

	return lang.Text(s)
}
