package regalloc

import "fmt"

// Tracer receives structured trace events from the allocator. It is
// peripheral to correctness (spec.md §1) and owned entirely by the
// embedder; none of the teacher's packages pull in a logging library
// (no zap/logrus/zerolog anywhere in the pack), so the allocator follows
// suit and exposes only this narrow, caller-implemented interface instead
// of writing to a global logger.
type Tracer interface {
	Trace(format string, args ...any)
}

type noopTracer struct{}

func (noopTracer) Trace(string, ...any) {}

// WriterTracer adapts any io.Writer-shaped sink (e.g. os.Stderr, wired by
// cmd/orizon-compiler behind the -regalloc-trace flag) into a Tracer.
type WriterTracer struct {
	Write func(string)
}

func (w WriterTracer) Trace(format string, args ...any) {
	if w.Write == nil {
		return
	}

	w.Write(fmt.Sprintf(format, args...))
}
