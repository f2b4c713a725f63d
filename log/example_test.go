package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/modulista/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout)
	logger.Info("store opened", slog.String("path", "items.db"))
}

func Example_configuration() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelTrace),
		log.WithTimeLayout("RFC3339Nano"),
		log.WithCaller(true))

	logger.Trace("fetch children", slog.String("path", "/user/"))
}

func Example_json() {
	logger := log.Make(os.Stdout, log.WithFormat(log.FormatJSON), log.WithPretty(false))
	logger.Info("sync complete", slog.Int("added", 2), slog.Int("deleted", 1))
}

func Example_withContext() {
	type requestIDKey struct{}

	ctx := context.WithValue(context.Background(), requestIDKey{}, "req-789")

	logger := log.Make(os.Stdout).With(slog.String("component", "render"))
	logger.InfoContext(ctx, "rendering", slog.String("path", "/"))
}
