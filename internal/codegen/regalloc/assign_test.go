package regalloc

import "testing"

func TestCommitAssignmentsWritesRegisterBackThroughInstr(t *testing.T) {
	v0 := VReg{ID: 0, Kind: RegKindInt}

	use := &fakeInstr{name: "use v0", uses: []VReg{v0}}
	b0 := &fakeBlock{rpo: 0, instrs: []*fakeInstr{use}}
	fn := &fakeFunction{blocks: []*fakeBlock{b0}, cfg: oneRegConfig()}

	data := newAllocationData(fn, &Config{})
	data.layout = buildInstrLayout(data.blocks)

	top := data.TopLevelRange(v0)
	top.addInterval(GapStart(0), GapStart(4))
	top.SetAssignedRegister(RealReg(1))
	u := &UsePosition{Pos: GapStart(0), Type: UseRegisterOrSlot}
	top.addUsePosition(u)
	u.slot = operandSlot{instr: use, role: slotUse, index: 0}

	commitAssignments(data, RegKindInt)

	if len(use.assignedUses) != 1 || use.assignedUses[0].Kind != OperandRegister || use.assignedUses[0].Reg != RealReg(1) {
		t.Fatalf("expected the use to commit to register 1, got %+v", use.assignedUses)
	}
}

func TestCommitAssignmentsResolvesHintWhenRangeItselfUnallocated(t *testing.T) {
	v0 := VReg{ID: 0, Kind: RegKindInt}

	use := &fakeInstr{name: "use v0", uses: []VReg{v0}}
	b0 := &fakeBlock{rpo: 0, instrs: []*fakeInstr{use}}
	fn := &fakeFunction{blocks: []*fakeBlock{b0}, cfg: oneRegConfig()}

	data := newAllocationData(fn, &Config{})
	data.layout = buildInstrLayout(data.blocks)

	top := data.TopLevelRange(v0)
	top.addInterval(GapStart(0), GapStart(4))
	// Deliberately left unassigned and unspilled: operandOf falls through
	// to OperandUnallocated, exercising assignUsePosition's hint fallback.
	u := &UsePosition{
		Pos:  GapStart(0),
		Type: UseRegisterOrSlot,
		Hint: UseHint{Kind: HintOperand, Op: Operand{Kind: OperandRegister, Reg: RealReg(5)}},
	}
	top.addUsePosition(u)
	u.slot = operandSlot{instr: use, role: slotUse, index: 0}

	commitAssignments(data, RegKindInt)

	if len(use.assignedUses) != 1 || use.assignedUses[0].Reg != RealReg(5) {
		t.Fatalf("expected the hint's register 5 to back-fill an unallocated operand, got %+v", use.assignedUses)
	}
}

func TestSameAsInputAliasUnifiesDefAndTiedUseIntoOneRange(t *testing.T) {
	vIn := VReg{ID: 0, Kind: RegKindInt}
	vOut := VReg{ID: 1, Kind: RegKindInt}

	// Override the fake instruction's Defs() policy for this test: the
	// harness's default is PolicyRegisterOrSlot, so wrap with a tiny
	// same-as-input adapter instead of reusing fakeInstr directly.
	ins := &fakeInstr{name: "add", defs: []VReg{vOut}, uses: []VReg{vIn}}
	same := &sameAsInputInstr{fakeInstr: ins, sameIdx: 0}

	laterUse := &fakeInstr{name: "use result", uses: []VReg{vOut}}

	b0 := &fakeBlock{rpo: 0, instrs: []*fakeInstr{ins, laterUse}}
	fn := &fakeFunction{blocks: []*fakeBlock{b0}, cfg: oneRegConfig()}

	data := newAllocationData(fn, &Config{})
	data.layout = buildInstrLayout(data.blocks)
	data.layout.instrs[0] = same
	data.layout.index[same] = data.layout.index[ins]
	delete(data.layout.index, ins)

	processSameAsInputDefs(data, RegKindInt, same)

	// Aliasing makes both vIn's and vOut's lookups resolve to the same
	// top-level range, so there is exactly one range to allocate, not two
	// independently allocated ones that need reconciling later.
	inTop := data.TopLevelRange(vIn)
	outTop := data.TopLevelRange(vOut)

	if inTop != outTop {
		t.Fatalf("expected the same-as-input def and its tied use to share one top-level range")
	}

	if len(data.OrderedTopLevelRanges()) != 1 {
		t.Fatalf("expected exactly one top-level range after aliasing, got %d", len(data.OrderedTopLevelRanges()))
	}
}

// sameAsInputInstr wraps a fakeInstr to report a PolicySameAsInput def
// tied to use index sameIdx, without complicating fakeInstr's defaults for
// every other test in this package.
type sameAsInputInstr struct {
	*fakeInstr
	sameIdx int
}

func (s *sameAsInputInstr) Defs() []Use {
	return []Use{{V: s.fakeInstr.defs[0], Policy: PolicySameAsInput, SameInputIndex: s.sameIdx}}
}
