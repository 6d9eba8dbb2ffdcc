package regalloc

// AllocationData is the process-wide container threaded through every
// stage of the pipeline (E→F→G→H→I→J→K). Every LiveRange, UseInterval,
// UsePosition, SpillRange, and LiveRangeBundle it creates lives exactly as
// long as AllocationData itself — nothing is freed early, so interior
// pointers between these structures (sibling chains, bundle membership,
// hint references) are always valid. Go's garbage collector plays the role
// spec.md §5 gives a zone/region allocator: AllocationData holding a
// reference is sufficient for lifetime; there is no explicit free.
type AllocationData struct {
	fn     Function
	cfg    *Config
	blocks []Block

	// topLevel is keyed by VReg.ID. Ranges are created on demand the
	// first time a def or use for that vreg is encountered (spec.md §3
	// "Lifecycle").
	topLevel map[uint32]*TopLevelLiveRange
	// orderedTopLevel preserves first-seen order for deterministic
	// iteration during phases that walk "every top-level range".
	orderedTopLevel []*TopLevelLiveRange

	// vregAlias maps a PolicySameAsInput def's own vreg id to the vreg id
	// of the use it is tied to (spec.md §4.E). TopLevelRange resolves
	// through this map before every lookup, so the def and its tied use
	// share one continuous live range instead of two independently
	// allocated ones that would need a reconciling move after the fact.
	vregAlias map[uint32]uint32

	// fixed[kind][reg] is created lazily the first time a physical
	// register is pinned by a fixed-use instruction.
	fixed map[RegisterKind]map[RealReg]*TopLevelLiveRange

	// liveIn[b.RPO()] is the live-in vreg set computed by the builder.
	liveIn []map[uint32]VReg

	// phiMap records, for each phi destination vreg, the phi's
	// predecessor-index -> contributing vreg mapping plus a resolvable
	// hint shared by every input use position that cites this phi.
	phiMap map[uint32]*phiEntry

	// delayedRefs holds "same as input" tagged-output promotions that
	// could not be resolved until the real operand was known (spec.md
	// §4.E).
	delayedRefs []delayedReference

	bundles []*LiveRangeBundle

	spillRanges []*SpillRange

	pendingMoves []*pendingMove

	layout *instrLayout

	stats Stats
}

type phiEntry struct {
	dst    VReg
	inputs []VReg
	hint   phiHint
}

type delayedReference struct {
	instr Instr
	vreg  VReg
}

// Stats counts throughput metrics the original V8 allocator tracks for
// compiler diagnostics (SPEC_FULL.md "SUPPLEMENTED FEATURES"); consumed by
// cmd/orizon-regalloc-bench.
type Stats struct {
	RangesBuilt  int
	SplitsDone   int
	SpillsDone   int
	MovesInserted int
}

func newAllocationData(fn Function, cfg *Config) *AllocationData {
	return &AllocationData{
		fn:       fn,
		cfg:      cfg,
		blocks:   fn.Blocks(),
		topLevel:  make(map[uint32]*TopLevelLiveRange),
		fixed:     make(map[RegisterKind]map[RealReg]*TopLevelLiveRange),
		phiMap:    make(map[uint32]*phiEntry),
		vregAlias: make(map[uint32]uint32),
	}
}

// aliasVReg records that from's own range should be merged into to's
// (spec.md §4.E "SameAsInput ties a def to the operand ultimately chosen for
// the use"). Must be called before the first TopLevelRange lookup for
// either id, i.e. during the forward constraint-builder pass.
func (d *AllocationData) aliasVReg(from, to VReg) {
	if from.ID == to.ID || from.Kind != to.Kind {
		return
	}

	d.vregAlias[from.ID] = to.ID
}

// canonicalVReg follows the alias chain (bounded, since aliasing only ever
// comes from a single constraint-builder pass over straight-line defs) and
// returns the vreg identity every stage of the allocator should treat v as.
func (d *AllocationData) canonicalVReg(v VReg) VReg {
	for hop := 0; hop < len(d.vregAlias)+1; hop++ {
		to, ok := d.vregAlias[v.ID]
		if !ok || to == v.ID {
			return v
		}

		v.ID = to
	}

	return v
}

// TopLevelRange returns (creating on first use) the top-level range for v,
// after resolving v through any SameAsInput alias.
func (d *AllocationData) TopLevelRange(v VReg) *TopLevelLiveRange {
	v = d.canonicalVReg(v)

	if t, ok := d.topLevel[v.ID]; ok {
		return t
	}

	t := newTopLevelLiveRange(v)
	d.topLevel[v.ID] = t
	d.orderedTopLevel = append(d.orderedTopLevel, t)
	d.stats.RangesBuilt++

	return t
}

// OrderedTopLevelRanges returns every top-level range created so far, in
// first-seen order.
func (d *AllocationData) OrderedTopLevelRanges() []*TopLevelLiveRange { return d.orderedTopLevel }

// FixedRange returns (creating on first use) the range pinning reg.
func (d *AllocationData) FixedRange(kind RegisterKind, reg RealReg) *TopLevelLiveRange {
	bank, ok := d.fixed[kind]
	if !ok {
		bank = make(map[RealReg]*TopLevelLiveRange)
		d.fixed[kind] = bank
	}

	if t, ok := bank[reg]; ok {
		return t
	}

	t := newFixedTopLevelLiveRange(kind, reg)
	bank[reg] = t

	return t
}

// FixedRanges returns every fixed range created for kind so far.
func (d *AllocationData) FixedRanges(kind RegisterKind) []*TopLevelLiveRange {
	bank := d.fixed[kind]
	out := make([]*TopLevelLiveRange, 0, len(bank))

	for _, t := range bank {
		out = append(out, t)
	}

	return out
}

func (d *AllocationData) ensureLiveIn(n int) {
	if len(d.liveIn) >= n {
		return
	}

	grown := make([]map[uint32]VReg, n)
	copy(grown, d.liveIn)

	for i := range grown {
		if grown[i] == nil {
			grown[i] = make(map[uint32]VReg)
		}
	}

	d.liveIn = grown
}

// LiveIn returns the live-in vreg set computed for block rpo.
func (d *AllocationData) LiveIn(rpo int) map[uint32]VReg {
	d.ensureLiveIn(rpo + 1)
	return d.liveIn[rpo]
}

// PhiEntry returns (creating on first use) the phi bookkeeping entry for
// dst.
func (d *AllocationData) PhiEntry(dst VReg) *phiEntry {
	if e, ok := d.phiMap[dst.ID]; ok {
		return e
	}

	e := &phiEntry{dst: dst}
	d.phiMap[dst.ID] = e

	return e
}

func (d *AllocationData) addDelayedReference(instr Instr, v VReg) {
	d.delayedRefs = append(d.delayedRefs, delayedReference{instr: instr, vreg: v})
}

func (d *AllocationData) newBundle() *LiveRangeBundle {
	b := newLiveRangeBundle()
	d.bundles = append(d.bundles, b)

	return b
}

func (d *AllocationData) registerSpillRange(sr *SpillRange) {
	d.spillRanges = append(d.spillRanges, sr)
}

// Blocks returns every block in reverse-postorder.
func (d *AllocationData) Blocks() []Block { return d.blocks }

// Config returns the tunables this pass runs with.
func (d *AllocationData) Config() *Config { return d.cfg }

// invokeTick forwards to the Function's TickCounter and is the only place
// the allocator ever checks for an embedder-driven abort (spec.md §5: a
// periodic, cooperative check, not mid-operation suspension). A surrounding
// embedder wanting to actually abort arranges for fn.Tick() to panic(
// tickAbort{}); Allocate recovers it at its single entry point.
func (d *AllocationData) invokeTick() { d.fn.Tick() }
