package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/modulista/lang"
	"github.com/ardnew/modulista/log"
)

// Fmt parses block-language input and writes it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as block-language text (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	AST    AST    `cmd:""                    help:"Print parsed values with their kinds and positions."`
}

// Native re-renders input through the item planner and executor.
type Native struct {
	Source []string `arg:"" default:"-" help:"Source input file(s) or '-' for stdin." name:"source"`
}

// Run executes the native command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	obj, err := parseSources(ctx, f.Source)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", "native"))
	}

	return obj.Format(ctx, os.Stdout, lang.WithLogger(log.Default()))
}

// JSON writes input as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output (0 for compact)" short:"i"`

	Source []string `arg:"" default:"-" help:"Source input file(s) or '-' for stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	obj, err := parseSources(ctx, j.Source)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", "json"))
	}

	return obj.FormatJSON(ctx, os.Stdout, j.Indent)
}

// YAML writes input as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output (0 for flow style)" short:"i"`

	Source []string `arg:"" default:"-" help:"Source input file(s) or '-' for stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	obj, err := parseSources(ctx, y.Source)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", "yaml"))
	}

	return obj.FormatYAML(ctx, os.Stdout, y.Indent)
}

// AST prints the parsed values.
type AST struct {
	Source []string `arg:"" default:"-" help:"Source input file(s) or '-' for stdin." name:"source"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	obj, err := parseSources(ctx, a.Source)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", "ast"))
	}

	obj.Print(os.Stdout)

	return nil
}
