package regalloc

// connectLiveRanges is component K: after assignment, a single top-level
// range may be represented by several siblings holding different operands
// over time, and a value crossing a block boundary may have been allocated
// differently on either side. This pass inserts the gap moves needed to
// make both cases transparent to the rest of the compiler (spec.md §4.K).
func connectLiveRanges(data *AllocationData, kind RegisterKind) {
	connectSiblingSplits(data, kind)
	connectBlockBoundaries(data, kind)
	connectPhiEdges(data, kind)
}

// connectSiblingSplits walks each top-level range's sibling chain and, at
// every point a split changed the committed operand, schedules a move
// immediately before the instruction owning that position.
func connectSiblingSplits(data *AllocationData, kind RegisterKind) {
	for _, top := range data.OrderedTopLevelRanges() {
		if top.Kind() != kind {
			continue
		}

		r := &top.LiveRange
		for r.Next() != nil {
			next := r.Next()

			fromOp := operandOf(r)
			toOp := operandOf(next)

			if fromOp != toOp && fromOp.Kind != OperandUnallocated && toOp.Kind != OperandUnallocated {
				scheduleMoveBeforePosition(data, next.Start(), fixedEnd(fromOp), fixedEnd(toOp))
			}

			r = next
		}
	}
}

func scheduleMoveBeforePosition(data *AllocationData, pos LifetimePosition, from, to moveEndpoint) {
	idx := pos.InstrIndex()
	if idx < 0 || idx >= data.layout.Len() {
		return
	}

	ins := data.layout.InstrAt(idx)
	data.addGapMove(ins, gapStartSide, pos, from, to)
}

// connectBlockBoundaries reconciles ordinary (non-phi) live ranges that
// cross an edge with a different operand on each side.
func connectBlockBoundaries(data *AllocationData, kind RegisterKind) {
	for _, succ := range data.Blocks() {
		entryPos := data.layout.BlockStart(succ.RPO())
		phiDsts := phiDestinationSet(succ)

		for _, pred := range succ.Preds() {
			exitPos := data.layout.BlockEnd(pred.RPO())

			for id, v := range data.LiveIn(succ.RPO()) {
				if v.Kind != kind || phiDsts[id] {
					continue
				}

				top := data.topLevel[id]
				if top == nil {
					continue
				}

				fromChild := top.ChildCovering(exitPos)
				toChild := top.ChildCovering(entryPos)

				if fromChild == nil || toChild == nil {
					continue
				}

				fromOp := operandOf(fromChild)
				toOp := operandOf(toChild)

				if fromOp == toOp || fromOp.Kind == OperandUnallocated || toOp.Kind == OperandUnallocated {
					continue
				}

				scheduleBoundaryMove(data, pred, succ, exitPos, entryPos, fixedEnd(fromOp), fixedEnd(toOp))
			}
		}
	}
}

func phiDestinationSet(b Block) map[uint32]bool {
	out := make(map[uint32]bool, len(b.Phis()))
	for _, p := range b.Phis() {
		out[p.Dst.ID] = true
	}

	return out
}

// connectPhiEdges resolves every phi input individually: each predecessor
// contributes a possibly different vreg, whose committed operand at that
// predecessor's exit may differ from the phi destination's operand at the
// successor's entry.
func connectPhiEdges(data *AllocationData, kind RegisterKind) {
	for _, succ := range data.Blocks() {
		entryPos := data.layout.BlockStart(succ.RPO())

		for _, phi := range succ.Phis() {
			if phi.Dst.Kind != kind {
				continue
			}

			dstTop := data.topLevel[phi.Dst.ID]
			if dstTop == nil {
				continue
			}

			toChild := dstTop.ChildCovering(entryPos)
			if toChild == nil {
				continue
			}

			toOp := operandOf(toChild)
			if toOp.Kind == OperandUnallocated {
				continue
			}

			preds := succ.Preds()
			for pi, in := range phi.Inputs {
				if pi >= len(preds) {
					break
				}

				pred := preds[pi]
				exitPos := data.layout.BlockEnd(pred.RPO())

				inTop := data.topLevel[in.ID]
				if inTop == nil {
					continue
				}

				fromChild := inTop.ChildCovering(exitPos)
				if fromChild == nil {
					continue
				}

				fromOp := operandOf(fromChild)
				if fromOp.Kind == OperandUnallocated || fromOp == toOp {
					continue
				}

				scheduleBoundaryMove(data, pred, succ, exitPos, entryPos, fixedEnd(fromOp), fixedEnd(toOp))
			}
		}
	}
}

// scheduleBoundaryMove anchors the move at the predecessor's exit gap when
// it is the only way out of that block, at the successor's entry gap when
// that is the only way in, and defaults to the successor's entry otherwise
// — a deliberate simplification of spec.md §4.K's critical-edge handling,
// which in the original splits the edge into a new block; see DESIGN.md.
func scheduleBoundaryMove(data *AllocationData, pred, succ Block, exitPos, entryPos LifetimePosition, from, to moveEndpoint) {
	switch {
	case len(pred.Succs()) == 1:
		data.addBlockBoundaryMove(pred, true, exitPos, from, to)
	case len(succ.Preds()) == 1:
		data.addBlockBoundaryMove(succ, false, entryPos, from, to)
	default:
		data.addBlockBoundaryMove(succ, false, entryPos, from, to)
	}
}
