package regalloc

import "testing"

func TestSpillRangeRebuildFromUnionsSiblingIntervals(t *testing.T) {
	top := newTopLevelLiveRange(VReg{ID: 0, Kind: RegKindInt})
	r := &top.LiveRange
	r.addInterval(GapStart(0), GapStart(10))

	child := r.SplitAt(GapStart(5))
	_ = child

	sr := newSpillRange(top)

	if sr.Intervals() == nil || sr.Intervals().Start != GapStart(0) || sr.Intervals().End != GapStart(10) {
		t.Fatalf("spill range should union both siblings back into one run, got %+v", sr.Intervals())
	}
}

func TestSpillRangeTryMergeRefusesOverlap(t *testing.T) {
	a := newTopLevelLiveRange(VReg{ID: 0, Kind: RegKindInt})
	a.addInterval(GapStart(0), GapStart(10))
	srA := newSpillRange(a)

	b := newTopLevelLiveRange(VReg{ID: 1, Kind: RegKindInt})
	b.addInterval(GapStart(5), GapStart(15))
	srB := newSpillRange(b)

	if srA.TryMerge(srB) {
		t.Fatalf("overlapping spill ranges must not merge")
	}
}

func TestSpillRangeTryMergeAcceptsDisjointSameWidth(t *testing.T) {
	a := newTopLevelLiveRange(VReg{ID: 0, Kind: RegKindInt})
	a.addInterval(GapStart(0), GapStart(10))
	srA := newSpillRange(a)

	b := newTopLevelLiveRange(VReg{ID: 1, Kind: RegKindInt})
	b.addInterval(GapStart(10), GapStart(20))
	srB := newSpillRange(b)

	if !srA.TryMerge(srB) {
		t.Fatalf("disjoint, same-width spill ranges should merge")
	}

	if len(srA.Owners()) != 2 {
		t.Fatalf("merged spill range should list both owners, got %d", len(srA.Owners()))
	}

	if b.SpillRange() != srA {
		t.Fatalf("absorbed owner's SpillRange pointer should be retargeted to the surviving range")
	}
}

func TestSpillRangeSetSlotIsIdempotentOnRepeatedCalls(t *testing.T) {
	top := newTopLevelLiveRange(VReg{ID: 0, Kind: RegKindInt})
	top.addInterval(GapStart(0), GapStart(4))
	sr := newSpillRange(top)

	if sr.HasSlot() {
		t.Fatalf("a fresh spill range should report no slot")
	}

	sr.SetSlot(3)

	if !sr.HasSlot() || sr.Slot() != 3 {
		t.Fatalf("SetSlot(3) should commit slot 3, got HasSlot=%v Slot=%v", sr.HasSlot(), sr.Slot())
	}
}

func TestAssignSpillSlotsMergesMergeableRangesBeforeAllocating(t *testing.T) {
	fn := &fakeFunction{cfg: oneRegConfig()}
	data := newAllocationData(fn, &Config{})

	a := data.TopLevelRange(VReg{ID: 0, Kind: RegKindInt})
	a.addInterval(GapStart(0), GapStart(10))
	a.MarkSpilled()
	data.registerSpillRange(a.EnsureSpillRange(false))

	b := data.TopLevelRange(VReg{ID: 1, Kind: RegKindInt})
	b.addInterval(GapStart(10), GapStart(20))
	b.MarkSpilled()
	data.registerSpillRange(b.EnsureSpillRange(false))

	assignSpillSlots(data)

	if len(fn.spillW) != 1 {
		t.Fatalf("two disjoint spilled ranges should share one allocated slot, got %d slots allocated", len(fn.spillW))
	}

	if a.SpillRange().Slot() != b.SpillRange().Slot() {
		t.Fatalf("after merging, both owners' SpillRange should report the same slot")
	}
}
