package regalloc

import "testing"

func TestBuildLiveRangesSingleBlockDefUse(t *testing.T) {
	v0 := VReg{ID: 0, Kind: RegKindInt}

	def := &fakeInstr{name: "def v0", defs: []VReg{v0}}
	use := &fakeInstr{name: "use v0", uses: []VReg{v0}}
	b0 := &fakeBlock{rpo: 0, instrs: []*fakeInstr{def, use}}

	fn := &fakeFunction{blocks: []*fakeBlock{b0}, cfg: oneRegConfig()}
	data := newAllocationData(fn, &Config{})
	data.layout = buildInstrLayout(data.blocks)

	buildLiveRanges(data, RegKindInt)

	top := data.TopLevelRange(v0)
	if top.LiveRange.IsEmpty() {
		t.Fatalf("expected v0 to have accumulated a live interval")
	}

	if !top.LiveRange.Covers(InstrStart(0)) {
		t.Fatalf("v0's range should cover its own definition point")
	}

	if !top.LiveRange.Covers(InstrStart(1)) {
		t.Fatalf("v0's range should cover its use point")
	}
}

func TestBuildLiveRangesPropagatesLiveOutAcrossBlockBoundary(t *testing.T) {
	v0 := VReg{ID: 0, Kind: RegKindInt}

	def := &fakeInstr{name: "def v0", defs: []VReg{v0}}
	b0 := &fakeBlock{rpo: 0, instrs: []*fakeInstr{def}}

	use := &fakeInstr{name: "use v0", uses: []VReg{v0}}
	ret := &fakeInstr{name: "ret", isRet: true}
	b1 := &fakeBlock{rpo: 1, instrs: []*fakeInstr{use, ret}}

	b0.succs = []*fakeBlock{b1}
	b1.preds = []*fakeBlock{b0}

	fn := &fakeFunction{blocks: []*fakeBlock{b0, b1}, cfg: oneRegConfig()}
	data := newAllocationData(fn, &Config{})
	data.layout = buildInstrLayout(data.blocks)

	buildLiveRanges(data, RegKindInt)

	top := data.TopLevelRange(v0)

	if !top.LiveRange.Covers(InstrStart(0)) {
		t.Fatalf("v0's range should cover its definition in b0")
	}

	if !top.LiveRange.Covers(InstrStart(1)) {
		t.Fatalf("v0's range should reach its use in b1")
	}

	liveIn1 := data.LiveIn(1)
	if _, ok := liveIn1[v0.ID]; !ok {
		t.Fatalf("v0 should be recorded live-in to b1")
	}

	liveIn0 := data.LiveIn(0)
	if _, ok := liveIn0[v0.ID]; ok {
		t.Fatalf("v0 should not be live-in to b0 since it is defined there")
	}
}

func TestBuildLiveRangesExtendsAcrossLoopBody(t *testing.T) {
	v0 := VReg{ID: 0, Kind: RegKindInt}

	defBefore := &fakeInstr{name: "def v0", defs: []VReg{v0}}
	b0 := &fakeBlock{rpo: 0, instrs: []*fakeInstr{defBefore}}

	useInLoop := &fakeInstr{name: "use v0 in loop", uses: []VReg{v0}}
	header := &fakeBlock{rpo: 1, instrs: []*fakeInstr{useInLoop}, isLoopHead: true, loopEnd: 2}

	body := &fakeInstr{name: "loop body tail"}
	tail := &fakeBlock{rpo: 2, instrs: []*fakeInstr{body}}

	after := &fakeInstr{name: "after loop", isRet: true}
	exit := &fakeBlock{rpo: 3, instrs: []*fakeInstr{after}}

	b0.succs = []*fakeBlock{header}
	header.preds = []*fakeBlock{b0, tail}
	header.succs = []*fakeBlock{tail}
	tail.preds = []*fakeBlock{header}
	tail.succs = []*fakeBlock{header, exit}
	exit.preds = []*fakeBlock{tail}

	fn := &fakeFunction{blocks: []*fakeBlock{b0, header, tail, exit}, cfg: oneRegConfig()}
	data := newAllocationData(fn, &Config{})
	data.layout = buildInstrLayout(data.blocks)

	buildLiveRanges(data, RegKindInt)

	top := data.TopLevelRange(v0)

	if !top.LiveRange.Covers(data.layout.BlockStart(2)) {
		t.Fatalf("a value live into a loop header should be extended across the whole loop body, including the back-edge block")
	}
}

func TestBuildLiveRangesRecordsPhiInputs(t *testing.T) {
	vA := VReg{ID: 0, Kind: RegKindInt}
	vB := VReg{ID: 1, Kind: RegKindInt}
	vDst := VReg{ID: 2, Kind: RegKindInt}

	defA := &fakeInstr{name: "def a", defs: []VReg{vA}}
	b0 := &fakeBlock{rpo: 0, instrs: []*fakeInstr{defA}}

	defB := &fakeInstr{name: "def b", defs: []VReg{vB}}
	b1 := &fakeBlock{rpo: 1, instrs: []*fakeInstr{defB}}

	useDst := &fakeInstr{name: "use phi dst", uses: []VReg{vDst}, isRet: true}
	b2 := &fakeBlock{
		rpo:    2,
		instrs: []*fakeInstr{useDst},
		phis:   []Phi{{Dst: vDst, Inputs: []VReg{vA, vB}}},
	}

	b0.succs = []*fakeBlock{b2}
	b1.succs = []*fakeBlock{b2}
	b2.preds = []*fakeBlock{b0, b1}

	fn := &fakeFunction{blocks: []*fakeBlock{b0, b1, b2}, cfg: oneRegConfig()}
	data := newAllocationData(fn, &Config{})
	data.layout = buildInstrLayout(data.blocks)

	buildLiveRanges(data, RegKindInt)

	entry := data.PhiEntry(vDst)
	if len(entry.inputs) != 2 || entry.inputs[0] != vA || entry.inputs[1] != vB {
		t.Fatalf("phi entry should record both inputs in predecessor order, got %+v", entry.inputs)
	}

	top := data.TopLevelRange(vDst)
	if !top.isPhi {
		t.Fatalf("the phi destination's top-level range should be flagged isPhi")
	}
}
