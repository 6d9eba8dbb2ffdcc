package regalloc

// Config carries the allocator's tunables. Following internal/allocator's
// plain-struct-with-defaults style, a library pass has no flag or env
// parsing of its own (spec.md §6: "CLI / environment / persisted state:
// none") — the embedder constructs a Config and passes it to Allocate.
type Config struct {
	// MaxPhiHintPredecessors bounds how many predecessors the live-range
	// builder consults when computing a phi's control-flow hint
	// (spec.md §4.F step 4). The reference implementation uses 2;
	// spec.md §9 treats this as a tunable, not a contract.
	MaxPhiHintPredecessors int

	// DeferredBlockSpillEnabled toggles whether the allocator is allowed
	// to use DeferredSpillRange (spill only materialized for the
	// duration of deferred/cold blocks). Disabling it falls back to
	// ordinary SpillRange for ranges that would otherwise qualify.
	DeferredBlockSpillEnabled bool

	// RecombineSplits enables AttachToNext: rejoining a split tail back
	// into its head when the tail survived allocation unchanged, to
	// avoid emitting a move where none is needed. spec.md §9 notes this
	// is an optimization, not a correctness requirement.
	RecombineSplits bool

	// Tracer receives structured trace events. Tracing is peripheral
	// (spec.md §1); nil is a valid, silent Tracer.
	Tracer Tracer
}

// DefaultConfig returns the allocator's default tuning.
func DefaultConfig() Config {
	return Config{
		MaxPhiHintPredecessors:    2,
		DeferredBlockSpillEnabled: true,
		RecombineSplits:           true,
		Tracer:                    noopTracer{},
	}
}

func (c *Config) tracer() Tracer {
	if c.Tracer == nil {
		return noopTracer{}
	}

	return c.Tracer
}
