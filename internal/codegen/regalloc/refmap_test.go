package regalloc

import "testing"

// safepointInstr is a minimal Instr reporting a non-nil ReferenceMap, for
// exercising populateReferenceMaps in isolation.
type safepointInstr struct {
	*fakeInstr
	rm *ReferenceMap
}

func (s *safepointInstr) ReferenceMap() *ReferenceMap { return s.rm }

func TestPopulateReferenceMapsRecordsTaggedLiveRanges(t *testing.T) {
	vTagged := VReg{ID: 0, Kind: RegKindInt, Tagged: true}
	vPlain := VReg{ID: 1, Kind: RegKindInt}

	call := &safepointInstr{fakeInstr: &fakeInstr{name: "call", uses: []VReg{vTagged, vPlain}}, rm: &ReferenceMap{}}

	data := &AllocationData{}
	data.layout = &instrLayout{
		index:      map[Instr]int{call: 0},
		instrs:     []Instr{call},
		blockFirst: map[int]int{0: 0},
		blockLast:  map[int]int{0: 0},
	}

	tagged := newTopLevelLiveRange(vTagged)
	tagged.addInterval(GapStart(0), InstrEnd(0))
	tagged.SetAssignedRegister(RealReg(4))

	plain := newTopLevelLiveRange(vPlain)
	plain.addInterval(GapStart(0), InstrEnd(0))
	plain.SetAssignedRegister(RealReg(5))

	data.orderedTopLevel = []*TopLevelLiveRange{tagged, plain}

	populateReferenceMaps(data)

	if len(call.rm.Operands) != 1 {
		t.Fatalf("expected exactly one recorded operand (the tagged range only), got %d", len(call.rm.Operands))
	}

	if call.rm.Operands[0].Reg != RealReg(4) {
		t.Fatalf("expected the tagged range's register 4 to be recorded, got %+v", call.rm.Operands[0])
	}
}

func TestPopulateReferenceMapsSkipsInstructionsWithoutAReferenceMap(t *testing.T) {
	plain := &fakeInstr{name: "plain", uses: nil}

	data := &AllocationData{}
	data.layout = &instrLayout{
		index:      map[Instr]int{plain: 0},
		instrs:     []Instr{plain},
		blockFirst: map[int]int{0: 0},
		blockLast:  map[int]int{0: 0},
	}

	data.orderedTopLevel = nil

	// Should not panic even with no tagged ranges and a nil ReferenceMap.
	populateReferenceMaps(data)
}
