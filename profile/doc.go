// Package profile provides optional runtime profiling backed by
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a no-op.
// With it, the modulista command accepts --pprof-mode and --pprof-dir:
//
//	modulista --pprof-mode cpu render /
//	go tool pprof -http=: ~/.cache/modulista/pprof/cpu.pprof
//
// Building with the tag also registers the [net/http/pprof] handlers, which
// serve profiles when the process runs an HTTP server on
// [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
