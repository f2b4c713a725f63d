package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/modulista/cli/cmd"
	"github.com/ardnew/modulista/pkg"
)

// CLI is the top-level command-line interface for modulista.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	DB string `default:"${database}" help:"Item database file, or ':memory:' for a throwaway store." name:"db"`

	Init   cmd.Init   `cmd:"" help:"Initialize configuration file"`
	Fmt    cmd.Fmt    `cmd:"" help:"Format block-language files"`
	Import cmd.Import `cmd:"" help:"Import block-language files into the item database"`
	Render cmd.Render `cmd:"" help:"Render a stored list as block-language text"`
	Ls     cmd.Ls     `cmd:"" help:"List stored items"`
	Fold   cmd.Fold   `cmd:"" help:"Evaluate a stored sum or difference"`

	Shell cmd.Shell `cmd:"" default:"1" help:"Browse and edit the item database interactively"`
}

// Run executes the modulista CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier:   configFilePath,
		cmd.CacheIdentifier:    pkg.CacheDir(),
		cmd.DatabaseIdentifier: configPath(baseDatabase),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx, baseConfig), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithDatabase(ctx, cli.DB)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
