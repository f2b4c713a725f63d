// Package log provides a concurrency-safe leveled logger based on
// [log/slog].
//
// Loggers are configured at creation time with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// Every level has a context-aware and a context-unaware method. The latter
// use [DefaultContextProvider], which returns [context.TODO] by default.
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and is used for per-operation detail
// such as parser and executor progress. Messages below the configured level
// are discarded.
//
// # Output
//
// [FormatText] (the default) writes key=value lines and [FormatJSON] writes
// one object per record. With [WithPretty], both are colorized when the
// output is a terminal; JSON output is then indented for reading and no
// longer machine-parseable.
//
// # Package Logger
//
// The package-level functions log through a shared logger that writes to
// standard error. [Config] reconfigures it and [Default] returns it.
package log
