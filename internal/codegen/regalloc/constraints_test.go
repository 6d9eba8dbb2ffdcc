package regalloc

import "testing"

func TestRunConstraintBuilderRecordsSpillMoveLocationForLastInstrOutput(t *testing.T) {
	v0 := VReg{ID: 0, Kind: RegKindInt}

	branch := &fakeInstr{name: "branch def v0", defs: []VReg{v0}}
	b0 := &fakeBlock{rpo: 0, instrs: []*fakeInstr{branch}}
	b1 := &fakeBlock{rpo: 1}
	b0.succs = []*fakeBlock{b1}

	fn := &fakeFunction{blocks: []*fakeBlock{b0, b1}, cfg: oneRegConfig()}
	data := newAllocationData(fn, &Config{})

	runConstraintBuilder(data, RegKindInt)

	top := data.TopLevelRange(v0)
	if len(top.SpillMoveLocations()) != 1 {
		t.Fatalf("a value defined by a block's terminator and crossing control flow should record one spill-move location, got %d", len(top.SpillMoveLocations()))
	}

	if len(data.delayedRefs) != 1 {
		t.Fatalf("expected one delayed reference recorded for resolveDelayedTaggedOutputs, got %d", len(data.delayedRefs))
	}
}

func TestRunConstraintBuilderSkipsTerminalBlockWithNoSuccessors(t *testing.T) {
	v0 := VReg{ID: 0, Kind: RegKindInt}

	ret := &fakeInstr{name: "ret def v0", defs: []VReg{v0}, isRet: true}
	b0 := &fakeBlock{rpo: 0, instrs: []*fakeInstr{ret}}

	fn := &fakeFunction{blocks: []*fakeBlock{b0}, cfg: oneRegConfig()}
	data := newAllocationData(fn, &Config{})

	runConstraintBuilder(data, RegKindInt)

	top := data.TopLevelRange(v0)
	if len(top.SpillMoveLocations()) != 0 {
		t.Fatalf("a value defined at a true exit block (no successors) needs no spill-move location, got %d", len(top.SpillMoveLocations()))
	}
}

func TestRunConstraintBuilderCommitsFixedSlotOperandImmediately(t *testing.T) {
	v0 := VReg{ID: 0, Kind: RegKindInt}

	fixedSlotInstr := &fixedSlotDefInstr{fakeInstr: &fakeInstr{name: "const load", defs: []VReg{v0}}, slot: 6}

	fn := &fakeFunction{blocks: []*fakeBlock{{rpo: 0}}, cfg: oneRegConfig()}
	data := newAllocationData(fn, &Config{})

	processFixedSlotDefs(data, RegKindInt, fixedSlotInstr)

	top := data.TopLevelRange(v0)
	if top.SpillType() != SpillOperand {
		t.Fatalf("a fixed-slot def should commit SpillOperand immediately, got %v", top.SpillType())
	}

	if top.SpillOperand().Slot != 6 {
		t.Fatalf("expected the fixed slot index 6 to be recorded, got %+v", top.SpillOperand())
	}
}

// fixedSlotDefInstr reports a single PolicyFixedSlot def, since fakeInstr's
// Defs() always uses PolicyRegisterOrSlot.
type fixedSlotDefInstr struct {
	*fakeInstr
	slot int
}

func (f *fixedSlotDefInstr) Defs() []Use {
	return []Use{{V: f.fakeInstr.defs[0], Policy: PolicyFixedSlot, FixedReg: RealReg(f.slot)}}
}
