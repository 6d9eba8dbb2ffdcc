package regalloc

import "testing"

func TestOperandOfAssignedRegister(t *testing.T) {
	top := newTopLevelLiveRange(VReg{ID: 0, Kind: RegKindInt})
	top.addInterval(GapStart(0), GapStart(4))
	top.SetAssignedRegister(RealReg(3))

	op := operandOf(&top.LiveRange)
	if op.Kind != OperandRegister || op.Reg != RealReg(3) {
		t.Fatalf("operandOf an assigned range = %+v, want register 3", op)
	}
}

// TestOperandOfSpilledRangeBeforeSlotAssignment is the regression test for
// the ordering dependency between assignSpillSlots and commitAssignments:
// a spilled range's SpillRange exists but has no slot yet, so operandOf
// must still report OperandUnallocated, never a stale or zero-value slot.
func TestOperandOfSpilledRangeBeforeSlotAssignment(t *testing.T) {
	top := newTopLevelLiveRange(VReg{ID: 0, Kind: RegKindInt})
	top.addInterval(GapStart(0), GapStart(4))
	top.MarkSpilled()
	top.EnsureSpillRange(false)

	op := operandOf(&top.LiveRange)
	if op.Kind != OperandUnallocated {
		t.Fatalf("operandOf a spilled range with no committed slot yet = %+v, want OperandUnallocated", op)
	}
}

// TestOperandOfSpilledRangeAfterSlotAssignment is the other half: once the
// owning SpillRange has a slot, operandOf must report it.
func TestOperandOfSpilledRangeAfterSlotAssignment(t *testing.T) {
	top := newTopLevelLiveRange(VReg{ID: 0, Kind: RegKindInt})
	top.addInterval(GapStart(0), GapStart(4))
	top.MarkSpilled()
	sr := top.EnsureSpillRange(false)
	sr.SetSlot(7)

	op := operandOf(&top.LiveRange)
	if op.Kind != OperandStackSlot || op.Slot != 7 {
		t.Fatalf("operandOf a spilled range with a committed slot = %+v, want stack slot 7", op)
	}
}

func TestOperandOfNeitherAssignedNorSpilledIsUnallocated(t *testing.T) {
	top := newTopLevelLiveRange(VReg{ID: 0, Kind: RegKindInt})
	top.addInterval(GapStart(0), GapStart(4))

	op := operandOf(&top.LiveRange)
	if op.Kind != OperandUnallocated {
		t.Fatalf("operandOf a fresh range = %+v, want OperandUnallocated", op)
	}
}

func TestFinalizeMovesDropsRedundantAndUnresolvedMoves(t *testing.T) {
	v0 := VReg{ID: 0, Kind: RegKindInt}

	fn := &fakeFunction{cfg: oneRegConfig()}
	data := newAllocationData(fn, &Config{})

	top := data.TopLevelRange(v0)
	top.addInterval(GapStart(0), GapStart(8))
	top.SetAssignedRegister(RealReg(1))

	// A move from v0 to itself at the same position: both endpoints
	// resolve to the same operand, so it must be dropped.
	data.addGapMove(nil, gapEnd, GapStart(2), vregEnd(v0), vregEnd(v0))

	// A move whose destination is a fixed, already-distinct register.
	b0 := &fakeBlock{rpo: 0}
	data.addBlockBoundaryMove(b0, false, GapStart(2), vregEnd(v0), fixedEnd(Operand{Kind: OperandRegister, Reg: RealReg(2)}))

	finalizeMoves(data)

	if data.stats.MovesInserted != 1 {
		t.Fatalf("expected exactly one move to survive finalization, got %d", data.stats.MovesInserted)
	}
}
