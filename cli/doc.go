// Package cli contains the command line interface for modulista.
//
// # Usage
//
// Without a subcommand, modulista opens the interactive shell over the item
// database:
//
//	modulista --db=./items.db
//
// Block-language files are imported into a list of the database, and any
// list can be rendered back to text:
//
//	modulista import --path=/user/ user.txt
//	modulista render /user/
//	modulista ls -r /
//	modulista fold / total
//
// The fmt subcommands work on files alone:
//
//	modulista fmt json --indent=4 settings.txt
//
// # Configuration
//
// Flag values may be given in a block-language file in the configuration
// directory, under a top-level list named config. Hyphens in flag names are
// written as underscores:
//
//	{
//	  config: {
//	    log_level: "debug"
//	    db: "/var/lib/modulista/items.db"
//	  }
//	}
//
// The init subcommand writes such a file from the current flag values. A
// JSON file of the same name with a ".json" suffix is also read.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --[no-]log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: the pprof
//     directory of the cache directory)
package cli
