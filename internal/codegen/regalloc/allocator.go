package regalloc

// runLinearScan is component H, the center of the design: it walks every
// top-level range of one register bank in order of increasing start
// position, keeping track of which physical registers are free, which are
// occupied by a range still live at the cursor (active), and which are
// occupied by a range that is live later but has a hole right now
// (inactive) — spec.md §4.H.
func runLinearScan(data *AllocationData, kind RegisterKind) {
	regs := data.fn.Config().Allocatable[kind]
	invariant(len(regs) > 0, FaultNoRegisterNoSplit, "register bank %s has no allocatable registers", kind)

	unhandled := &unhandledQueue{}

	for _, top := range data.OrderedTopLevelRanges() {
		if top.Kind() != kind || top.IsFixed() {
			continue
		}

		if top.LiveRange.IsEmpty() {
			continue
		}

		unhandled.push(&top.LiveRange)
	}

	blockEntries := blockEntryPositions(data)

	active := &rangeSet{}
	inactive := &rangeSet{}

	for !unhandled.empty() {
		r := unhandled.pop()
		pos := r.Start()

		data.invokeTick()

		active.sweep(pos, inactive, coversAt)

		reactivated := &rangeSet{}
		inactive.sweep(pos, reactivated, func(r *LiveRange, p LifetimePosition) bool { return !r.Covers(p) })

		for _, r := range reactivated.items {
			active.add(r)
		}

		// A range whose sibling starts exactly at a block's entry inherits
		// the register its forward predecessor(s) already settled on, when
		// they agree (spec.md §4.H's predecessor-merge heuristic: the
		// reference implementation walks active/inactive sets directly at
		// the edge; here every predecessor's already-assigned sibling is
		// consulted directly, which is equivalent whenever a forward
		// predecessor — lower RPO, already fully processed by this point in
		// the position-ordered scan — has in fact committed to a register).
		if reg, ok := blockBoundaryHint(data, blockEntries, r); ok {
			r.SetControlFlowHint(reg)
		}

		if !tryAllocatePreferredReg(data, kind, regs, active, inactive, r, pos) &&
			!tryAllocateFreeReg(data, kind, regs, active, inactive, r, pos, unhandled) {
			allocateBlockedReg(data, kind, regs, active, inactive, r, pos, unhandled)
		}

		if _, ok := r.AssignedRegister(); ok {
			active.add(r)
		}
	}
}

// blockEntryPositions indexes every block by its entry LifetimePosition, so
// blockBoundaryHint can test in O(1) whether a range's start lands exactly
// on a block boundary.
func blockEntryPositions(data *AllocationData) map[LifetimePosition]Block {
	out := make(map[LifetimePosition]Block, len(data.Blocks()))

	for _, b := range data.Blocks() {
		out[data.layout.BlockStart(b.RPO())] = b
	}

	return out
}

// blockBoundaryHint reports the register r should prefer because every
// forward predecessor of the block r starts in already committed to it.
// Back-edge predecessors (higher RPO, not yet processed at this point in
// the position-ordered scan) contribute nothing; a mix of registers, or no
// predecessor with a committed register yet, yields no hint and the normal
// free-register search decides instead.
func blockBoundaryHint(data *AllocationData, entries map[LifetimePosition]Block, r *LiveRange) (RealReg, bool) {
	b, ok := entries[r.Start()]
	if !ok {
		return RealRegInvalid, false
	}

	top := r.TopLevel()

	want := RealRegInvalid
	found := false

	for _, pred := range b.Preds() {
		exitPos := data.layout.BlockEnd(pred.RPO())

		child := top.ChildCovering(exitPos)
		if child == nil {
			continue
		}

		reg, ok := child.AssignedRegister()
		if !ok {
			continue
		}

		if !found {
			want, found = reg, true
		} else if want != reg {
			return RealRegInvalid, false
		}
	}

	return want, found
}

// tryAllocatePreferredReg honors a hint (bundle-wide, control-flow, or
// use-position) without running the general free-register search, so long
// as the hinted register is actually free across r's whole span.
func tryAllocatePreferredReg(data *AllocationData, kind RegisterKind, regs []RealReg, active, inactive *rangeSet, r *LiveRange, pos LifetimePosition) bool {
	reg, ok := preferredRegister(r)
	if !ok {
		return false
	}

	if !registerAllowed(regs, reg) {
		return false
	}

	free := freeUntil(data, kind, reg, active, inactive, r, pos)
	if free < r.End() {
		return false
	}

	r.SetAssignedRegister(reg)

	if b := r.Bundle(); b != nil {
		b.RecordRegister(reg)
	}

	return true
}

func preferredRegister(r *LiveRange) (RealReg, bool) {
	if b := r.Bundle(); b != nil {
		if reg, ok := b.HintRegister(); ok {
			return reg, true
		}
	}

	if reg, ok := r.ControlFlowHint(); ok {
		return reg, true
	}

	if u := r.Uses(); u != nil {
		if reg, ok := u.Hint.Resolve(); ok {
			return reg, true
		}
	}

	return RealRegInvalid, false
}

func registerAllowed(regs []RealReg, reg RealReg) bool {
	for _, c := range regs {
		if c == reg {
			return true
		}
	}

	return false
}

// tryAllocateFreeReg finds the register free for the longest prefix of r's
// span and either assigns it outright or splits r at the point the winning
// register stops being free, pushing the remainder back onto unhandled.
func tryAllocateFreeReg(data *AllocationData, kind RegisterKind, regs []RealReg, active, inactive *rangeSet, r *LiveRange, pos LifetimePosition, unhandled *unhandledQueue) bool {
	best := RealRegInvalid
	bestFree := LifetimePositionInvalid

	for _, reg := range regs {
		free := freeUntil(data, kind, reg, active, inactive, r, pos)
		if free > bestFree {
			bestFree = free
			best = reg
		}
	}

	if best == RealRegInvalid || bestFree <= pos {
		return false
	}

	if bestFree >= r.End() {
		r.SetAssignedRegister(best)

		if b := r.Bundle(); b != nil {
			b.RecordRegister(best)
		}

		return true
	}

	splitAndRequeue(data, r, bestFree, unhandled)
	r.SetAssignedRegister(best)

	return true
}

// freeUntil returns the first position at or after pos that reg is no
// longer free for r to occupy: the earliest conflict among active
// occupants (immediate, since they hold the register right now), inactive
// occupants (only if they actually intersect r again later), and the fixed
// range pinning reg, or LifetimePositionInvalid's complement (a very large
// sentinel) if none conflict before r.End().
func freeUntil(data *AllocationData, kind RegisterKind, reg RealReg, active, inactive *rangeSet, r *LiveRange, pos LifetimePosition) LifetimePosition {
	const unbounded = LifetimePosition(1 << 30)

	free := unbounded

	for _, a := range active.items {
		if occupiesReg(a, reg) {
			return pos
		}
	}

	for _, a := range inactive.items {
		if !occupiesReg(a, reg) {
			continue
		}

		if x := intervalChainFirstIntersection(a.Intervals(), r.Intervals()); x.IsValid() && x < free {
			free = x
		}
	}

	if fr := data.FixedRange(kind, reg); !fr.LiveRange.IsEmpty() {
		if x := intervalChainFirstIntersection(fr.Intervals(), r.Intervals()); x.IsValid() && x < free {
			free = x
		}
	}

	return free
}

func occupiesReg(r *LiveRange, reg RealReg) bool {
	got, ok := r.AssignedRegister()
	return ok && got == reg
}

// allocateBlockedReg runs when every register is occupied by something
// live right at pos: it picks the register whose occupant's next
// register-requiring use is farthest away, evicts that occupant (splitting
// it at pos and requeuing the remainder), and hands the register to r —
// unless r's own next register-requiring use is farther still than any
// candidate, in which case r itself is the one that gets spilled.
func allocateBlockedReg(data *AllocationData, kind RegisterKind, regs []RealReg, active, inactive *rangeSet, r *LiveRange, pos LifetimePosition, unhandled *unhandledQueue) {
	type candidate struct {
		reg        RealReg
		blockAt    LifetimePosition
		occupant   *LiveRange
		fromActive bool
	}

	const unbounded = LifetimePosition(1 << 30)

	best := candidate{reg: RealRegInvalid, blockAt: unbounded}

	for _, reg := range regs {
		blockAt := unbounded

		var occupant *LiveRange

		fromActive := false

		for _, a := range active.items {
			if occupiesReg(a, reg) {
				occupant = a
				fromActive = true

				if nu := a.NextRegisterUse(pos); nu != nil {
					blockAt = nu.Pos
				} else {
					blockAt = unbounded
				}

				break
			}
		}

		if occupant == nil {
			for _, a := range inactive.items {
				if occupiesReg(a, reg) {
					if x := intervalChainFirstIntersection(a.Intervals(), r.Intervals()); x.IsValid() && x < blockAt {
						blockAt = x
						occupant = a
					}
				}
			}
		}

		if fr := data.FixedRange(kind, reg); !fr.LiveRange.IsEmpty() {
			if x := intervalChainFirstIntersection(fr.Intervals(), r.Intervals()); x.IsValid() && x < blockAt {
				blockAt = x
				occupant = nil
			}
		}

		if blockAt > best.blockAt {
			best = candidate{reg: reg, blockAt: blockAt, occupant: occupant, fromActive: fromActive}
		}
	}

	ownNextUse := r.NextRegisterUse(pos)

	if best.reg == RealRegInvalid || (ownNextUse != nil && best.blockAt <= ownNextUse.Pos) {
		spillRange(data, r, pos, unhandled)
		return
	}

	if best.occupant != nil && best.fromActive {
		evictAndRequeue(data, best.occupant, pos, active, unhandled)
	}

	if best.blockAt < r.End() {
		splitAndRequeue(data, r, best.blockAt, unhandled)
	}

	r.SetAssignedRegister(best.reg)

	if b := r.Bundle(); b != nil {
		b.RecordRegister(best.reg)
	}
}

// evictAndRequeue splits occupant at pos, leaving [Start,pos) holding its
// register and pushing the freed-up tail back onto unhandled to find a new
// home (possibly a spill) of its own.
func evictAndRequeue(data *AllocationData, occupant *LiveRange, pos LifetimePosition, active *rangeSet, unhandled *unhandledQueue) {
	for i, a := range active.items {
		if a == occupant {
			active.removeAt(i)
			break
		}
	}

	if occupant.Start() == pos {
		// Nothing kept; requeue the whole thing.
		unhandled.push(occupant)
		return
	}

	tail := occupant.SplitAt(pos)
	data.stats.SplitsDone++
	unhandled.push(tail)
}

func splitAndRequeue(data *AllocationData, r *LiveRange, at LifetimePosition, unhandled *unhandledQueue) *LiveRange {
	at = hoistSplitPosition(data, r, at)

	tail := r.SplitAt(at)
	data.stats.SplitsDone++
	unhandled.push(tail)

	return tail
}

// spillRange marks r spilled from pos onward, splitting off (and
// requeuing) any suffix that starts at a later use requiring a register —
// spec.md §4.H "SpillBetween": a spilled range still needs a register
// wherever a use demands one.
func spillRange(data *AllocationData, r *LiveRange, pos LifetimePosition, unhandled *unhandledQueue) {
	invariant(r.CanBeSpilled(pos), FaultSpillOfFixedRange, "range cannot be spilled at %d", pos)

	nu := r.NextRegisterUse(pos)

	if nu != nil && nu.Pos < r.End() {
		splitPos := hoistSplitPosition(data, r, nu.Pos.FullStart())
		tail := r.SplitAt(splitPos)
		commitSpill(data, r)
		unhandled.push(tail)

		return
	}

	commitSpill(data, r)
}

// hoistSplitPosition narrows a split or spill boundary to the entry of the
// outermost loop header enclosing it, when r is still live there, so the
// resulting move (or spill store) lands once at the loop's entry instead of
// repeatedly inside the loop body — potentially right on the back-edge
// itself (spec.md §4.H "Split helpers": FindOptimalSplitPos /
// FindOptimalSpillingPos). Hoisting only ever moves the boundary earlier in
// program order, so it never reaches outside the free (or spill-eligible)
// prefix the caller already established by computing at.
func hoistSplitPosition(data *AllocationData, r *LiveRange, at LifetimePosition) LifetimePosition {
	header, ok := outermostLoopHeaderContaining(data, at)
	if !ok {
		return at
	}

	entry := data.layout.BlockStart(header.RPO())
	if entry <= r.Start() || entry >= at || !r.Covers(entry) {
		return at
	}

	return entry
}

// outermostLoopHeaderContaining returns the loop header with the lowest RPO
// among every loop whose body (header.RPO() through header.LoopEndRPO(),
// inclusive) contains pos's instruction, i.e. the outermost enclosing loop.
func outermostLoopHeaderContaining(data *AllocationData, pos LifetimePosition) (Block, bool) {
	if !pos.IsValid() {
		return nil, false
	}

	idx := pos.InstrIndex()
	if idx < 0 || idx >= len(data.layout.blockOf) {
		return nil, false
	}

	rpo := data.layout.blockOf[idx]

	var outer Block

	for _, b := range data.Blocks() {
		if !b.IsLoopHeader() {
			continue
		}

		if b.RPO() <= rpo && rpo <= b.LoopEndRPO() && (outer == nil || b.RPO() < outer.RPO()) {
			outer = b
		}
	}

	return outer, outer != nil
}

func commitSpill(data *AllocationData, r *LiveRange) {
	r.MarkSpilled()
	data.stats.SpillsDone++

	top := r.TopLevel()
	deferredOnly := isInDeferredRangeOnly(data, r)

	if top.SpillType() == SpillNone {
		sr := top.EnsureSpillRange(deferredOnly)
		data.registerSpillRange(sr)
	} else if top.SpillRange() != nil {
		top.SpillRange().rebuildFrom(top)

		if !deferredOnly {
			// A later spill of a sibling outside any deferred block
			// upgrades a range that had so far only ever been spilled
			// inside deferred blocks: its slot must now live for the
			// whole function, not just the cold portion.
			top.EnsureSpillRange(false)
		}
	}
}

// isInDeferredRangeOnly reports whether every block r overlaps is a
// deferred (cold) block, letting the allocator hold the spill slot's
// lifetime to just those blocks (spec.md §4.H deferred-block spill mode;
// Config.DeferredBlockSpillEnabled gates it).
func isInDeferredRangeOnly(data *AllocationData, r *LiveRange) bool {
	if !data.cfg.DeferredBlockSpillEnabled {
		return false
	}

	for _, b := range data.Blocks() {
		first, last := data.layout.BlockRange(b.RPO())
		if last < first {
			continue
		}

		blockStart := InstrStart(first)
		blockEnd := InstrEnd(last)

		if intervalChainFirstIntersection(r.Intervals(), &UseInterval{Start: blockStart, End: blockEnd}).IsValid() && !b.Deferred() {
			return false
		}
	}

	return true
}
