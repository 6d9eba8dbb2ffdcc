package regalloc

// Allocate runs the full control-flow-aware linear-scan pipeline over fn:
// constraint building, live-range construction, bundle building, and the
// linear scan itself, once per register bank, followed by operand
// assignment, reference-map population, and live-range connection
// (spec.md §4, components E through K). It is the package's single public
// entry point and the only place a Fault or a tick-induced abort is ever
// recovered; every helper beneath it panics instead of threading errors
// through dozens of call sites, matching spec.md §7's "assertion, not
// recoverable condition" model.
func Allocate(fn Function, cfg *Config) (stats Stats, err error) {
	defer recoverFault(&err)

	if cfg == nil {
		dflt := DefaultConfig()
		cfg = &dflt
	}

	data := newAllocationData(fn, cfg)
	data.layout = buildInstrLayout(data.blocks)

	banks := []RegisterKind{RegKindInt, RegKindFloat}

	for _, kind := range banks {
		runConstraintBuilder(data, kind)
	}

	for _, kind := range banks {
		buildLiveRanges(data, kind)
	}

	if ueErr := checkNoUseWithoutDefinition(data, banks); ueErr != nil {
		return data.stats, ueErr
	}

	for _, kind := range banks {
		buildBundles(data, kind)
	}

	for _, kind := range banks {
		runLinearScan(data, kind)
	}

	if data.cfg.RecombineSplits {
		recombineSplitSiblings(data)
	}

	// Every SpillRange a spilled range could need already exists once both
	// banks have finished their linear scan; slots must be assigned before
	// commitAssignments resolves operands, since operandOf only reports a
	// spilled range's real stack slot once its SpillRange.HasSlot() is true.
	assignSpillSlots(data)

	for _, kind := range banks {
		commitAssignments(data, kind)
	}

	for _, kind := range banks {
		connectLiveRanges(data, kind)
	}

	finalizeMoves(data)
	populateReferenceMaps(data)

	return data.stats, nil
}

// checkNoUseWithoutDefinition reports (not panics) when the entry block's
// live-in set is non-empty: a value read before any reaching definition,
// which is a malformed-input condition the embedder should handle, not an
// allocator bug (spec.md §7).
func checkNoUseWithoutDefinition(data *AllocationData, banks []RegisterKind) error {
	var entry Block

	for _, b := range data.Blocks() {
		if b.Entry() {
			entry = b
			break
		}
	}

	if entry == nil {
		return nil
	}

	var bad []VReg

	for _, kind := range banks {
		for _, v := range data.LiveIn(entry.RPO()) {
			if v.Kind == kind {
				bad = append(bad, v)
			}
		}
	}

	if len(bad) == 0 {
		return nil
	}

	return &UseWithoutDefinitionError{VRegs: bad}
}

// recombineSplitSiblings walks every split range once, attempting the
// classic re-join optimization: if two adjacent siblings ended up in the
// exact same place and nothing about the split was load-bearing, merge
// them back into one interval chain so the connector has one fewer
// boundary to reconcile (spec.md §9 "Recombine").
func recombineSplitSiblings(data *AllocationData) {
	for _, top := range data.OrderedTopLevelRanges() {
		r := &top.LiveRange
		for r.attachToNext() {
		}
	}
}

// assignSpillSlots commits a concrete stack offset to every SpillRange that
// does not have one yet, merging mergeable ranges first (spec.md §4 "spill
// slots are shared across ranges with disjoint lifetimes").
func assignSpillSlots(data *AllocationData) {
	merged := make([]*SpillRange, 0, len(data.spillRanges))

	for _, sr := range data.spillRanges {
		if sr.HasSlot() {
			continue
		}

		absorbed := false

		for _, m := range merged {
			if m.TryMerge(sr) {
				absorbed = true
				break
			}
		}

		if !absorbed {
			merged = append(merged, sr)
		}
	}

	for _, sr := range merged {
		if !sr.HasSlot() {
			sr.SetSlot(data.fn.AllocateSpillSlot(sr.Width()))
		}
	}
}
