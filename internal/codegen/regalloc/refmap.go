package regalloc

// populateReferenceMaps is component J: for every safepoint instruction
// (one whose ReferenceMap is non-nil), record the current location — a
// register or a spill slot — of every live, pointer-typed (VReg.Tagged)
// range of both banks. This must run after both banks have completed the
// full E→F→G→H→I pipeline, since a tagged value's location after I is
// final.
func populateReferenceMaps(data *AllocationData) {
	for i := 0; i < data.layout.Len(); i++ {
		ins := data.layout.InstrAt(i)

		rm := ins.ReferenceMap()
		if rm == nil {
			continue
		}

		pos := InstrStart(i)

		for _, top := range data.OrderedTopLevelRanges() {
			if !top.VReg().Tagged {
				continue
			}

			child := top.ChildCovering(pos)
			if child == nil {
				continue
			}

			op := operandOf(child)
			if op.Kind == OperandUnallocated {
				continue
			}

			rm.Operands = append(rm.Operands, op)
		}
	}
}
