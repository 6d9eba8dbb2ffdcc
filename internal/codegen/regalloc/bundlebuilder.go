package regalloc

// buildBundles groups phi destinations with their inputs into
// LiveRangeBundles (spec.md §4.G), so the linear scan prefers landing every
// member in the same physical register and the connector can skip the
// resulting copy entirely when it succeeds. Must run after buildLiveRanges
// (it needs each range's interval chain to check non-overlap) and before
// the linear scan (it needs bundles to exist before any range is split).
func buildBundles(data *AllocationData, kind RegisterKind) {
	for dstID, entry := range data.phiMap {
		top := data.TopLevelRange(VReg{ID: dstID, Kind: kind})
		if top.Kind() != kind || !top.IsPhi() {
			continue
		}

		bundle := bundleFor(data, &top.LiveRange)

		// A predecessor-derived hint computed during live-range building
		// (builder.go's phiPredecessorHint) should seed the bundle, not be
		// overwritten by a freshly created bundle's still-unresolved hint.
		if entry.hint.resolved && !bundle.hint.resolved {
			bundle.hint = entry.hint
		}

		for _, in := range entry.inputs {
			if in.Kind != kind {
				continue
			}

			inTop := data.TopLevelRange(in)
			mergeIntoBundle(data, bundle, &inTop.LiveRange)
		}

		entry.hint = bundle.hint
	}

	propagateNonPhiMoveHints(data, kind)
}

// bundleFor returns r's existing bundle, creating a fresh one if it has
// none yet.
func bundleFor(data *AllocationData, r *LiveRange) *LiveRangeBundle {
	if b := r.Bundle(); b != nil {
		return b
	}

	b := data.newBundle()
	b.Add(r)

	return b
}

// mergeIntoBundle folds r's bundle into target, or adds r directly if it
// has none, skipping silently when the ranges actually overlap (spec.md
// §4.G: overlapping ranges never share a bundle; they keep their own
// registers and a real move connects them instead).
func mergeIntoBundle(data *AllocationData, target *LiveRangeBundle, r *LiveRange) {
	if existing := r.Bundle(); existing != nil {
		target.TryMerge(existing)
		return
	}

	target.Add(r)
}

// propagateNonPhiMoveHints extends bundling to ordinary register-to-register
// moves the instruction stream already contained before allocation
// (SPEC_FULL.md's supplemented "hint propagation" feature: the original
// confines bundles to phi edges, but a plain copy between two vregs is the
// same coalescing opportunity).
func propagateNonPhiMoveHints(data *AllocationData, kind RegisterKind) {
	for i := 0; i < data.layout.Len(); i++ {
		ins := data.layout.InstrAt(i)

		src, dst, ok := ins.IsMove()
		if !ok || src.Kind != kind {
			continue
		}

		srcTop, srcOK := data.topLevel[src.ID]
		dstTop, dstOK := data.topLevel[dst.ID]

		if !srcOK || !dstOK {
			continue
		}

		bundle := bundleFor(data, &srcTop.LiveRange)
		mergeIntoBundle(data, bundle, &dstTop.LiveRange)
	}
}
