package profile

import "slices"

// Profiler describes a profiling session.
type Profiler struct {
	Mode  string // one of [Modes]; empty disables profiling
	Dir   string // output directory; empty uses the working directory
	Quiet bool   // suppress the profiler's own log lines
}

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Start begins profiling. It returns a no-op [Stopper] if p.Mode is empty
// or unsupported, or if profiling is not compiled in.
func (p Profiler) Start() Stopper {
	if p.Mode == "" || !slices.Contains(Modes(), p.Mode) {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
