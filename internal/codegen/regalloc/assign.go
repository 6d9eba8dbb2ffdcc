package regalloc

// commitAssignments is component I, the operand assigner (spec.md §4.I):
// once every range has a final register-or-spill decision, walk every use
// position and write its resolved Operand back through the Instr interface.
// Running after the full linear scan (not interleaved with it) means a use
// position's Hint has always had every chance to resolve by the time it
// commits.
func commitAssignments(data *AllocationData, kind RegisterKind) {
	for _, top := range data.OrderedTopLevelRanges() {
		if top.Kind() != kind {
			continue
		}

		for _, child := range top.Children() {
			op := operandOf(child)

			for u := child.Uses(); u != nil; u = u.Next {
				assignUsePosition(data, top, u, op)
			}
		}
	}

	resolveDelayedTaggedOutputs(data, kind)
}

func assignUsePosition(data *AllocationData, top *TopLevelLiveRange, u *UsePosition, op Operand) {
	resolved := op

	if resolved.Kind == OperandUnallocated {
		if reg, ok := u.Hint.Resolve(); ok {
			resolved = Operand{Kind: OperandRegister, Reg: reg, Rep: top.Kind()}
		}
	}

	u.commit(resolved)
}

// resolveDelayedTaggedOutputs finalizes the last-instruction-of-block
// spill-move locations the constraint builder (component E) recorded: now
// that the range's real operand is known, a store to its spill slot can be
// scheduled if it ended up spilled.
func resolveDelayedTaggedOutputs(data *AllocationData, kind RegisterKind) {
	for _, dr := range data.delayedRefs {
		if dr.vreg.Kind != kind {
			continue
		}

		top := data.topLevel[dr.vreg.ID]
		if top == nil || !top.IsSpilled() {
			continue
		}

		op := operandOf(&top.LiveRange)
		if op.Kind != OperandStackSlot {
			continue
		}

		defOp := operandOf(top.ChildCovering(InstrStart(data.layout.IndexOf(dr.instr))))
		if defOp.Kind == OperandUnallocated || defOp == op {
			continue
		}

		data.addGapMove(dr.instr, gapEnd, InstrEnd(data.layout.IndexOf(dr.instr)), fixedEnd(defOp), fixedEnd(op))
	}
}
