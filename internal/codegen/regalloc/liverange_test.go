package regalloc

import "testing"

func TestLiveRangeAddIntervalMergesTouchingRuns(t *testing.T) {
	top := newTopLevelLiveRange(VReg{ID: 1, Kind: RegKindInt})
	r := &top.LiveRange

	r.addInterval(GapStart(4), GapStart(6))
	r.addInterval(GapStart(2), GapStart(4))

	if r.Start() != GapStart(2) || r.End() != GapStart(6) {
		t.Fatalf("touching intervals should merge into one: got [%v, %v)", r.Start(), r.End())
	}

	if r.first.Next != nil {
		t.Fatalf("merged interval chain should have a single node, got a second")
	}
}

func TestLiveRangeAddIntervalKeepsDisjointHoles(t *testing.T) {
	top := newTopLevelLiveRange(VReg{ID: 1, Kind: RegKindInt})
	r := &top.LiveRange

	r.addInterval(GapStart(0), GapStart(2))
	r.addInterval(GapStart(8), GapStart(10))

	if !r.Covers(GapStart(1)) {
		t.Fatalf("range should cover a position in its first interval")
	}

	if r.Covers(GapStart(5)) {
		t.Fatalf("range should not cover a position in the hole")
	}

	if !r.Covers(GapStart(9)) {
		t.Fatalf("range should cover a position in its second interval")
	}
}

func TestLiveRangeAssignAndSpillAreExclusive(t *testing.T) {
	top := newTopLevelLiveRange(VReg{ID: 1, Kind: RegKindInt})
	r := &top.LiveRange

	r.SetAssignedRegister(RealReg(2))

	if reg, ok := r.AssignedRegister(); !ok || reg != RealReg(2) {
		t.Fatalf("AssignedRegister() = (%v, %v), want (2, true)", reg, ok)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("MarkSpilled after SetAssignedRegister should panic (spec invariant)")
		}
	}()

	r.MarkSpilled()
}

func TestLiveRangeSplitAtPartitionsIntervalsAndUses(t *testing.T) {
	top := newTopLevelLiveRange(VReg{ID: 1, Kind: RegKindInt})
	r := &top.LiveRange
	r.addInterval(GapStart(0), GapStart(10))

	uBefore := &UsePosition{Pos: GapStart(2), Type: UseRegisterOrSlot}
	uAfter := &UsePosition{Pos: GapStart(8), Type: UseRegisterOrSlot}
	r.addUsePosition(uBefore)
	r.addUsePosition(uAfter)

	child := r.SplitAt(GapStart(5))

	if r.Start() != GapStart(0) || r.End() != GapStart(5) {
		t.Fatalf("parent after split = [%v, %v), want [0, 5)", r.Start(), r.End())
	}

	if child.Start() != GapStart(5) || child.End() != GapStart(10) {
		t.Fatalf("child after split = [%v, %v), want [5, 10)", child.Start(), child.End())
	}

	if r.Uses() != uBefore || r.Uses().Next != nil {
		t.Fatalf("parent should keep only the use before the split point")
	}

	if child.Uses() != uAfter {
		t.Fatalf("child should own the use at/after the split point")
	}

	if r.next != child {
		t.Fatalf("parent.next should point at the new child")
	}

	if len(top.children) != 2 || top.children[1] != child {
		t.Fatalf("split child should be appended to the top-level range's children")
	}
}

func TestLiveRangeAttachToNextRejoinsMatchingSiblings(t *testing.T) {
	top := newTopLevelLiveRange(VReg{ID: 1, Kind: RegKindInt})
	r := &top.LiveRange
	r.addInterval(GapStart(0), GapStart(10))

	child := r.SplitAt(GapStart(5))
	child.SetAssignedRegister(RealReg(3))
	r.SetAssignedRegister(RealReg(3))

	if !r.attachToNext() {
		t.Fatalf("matching, contiguous siblings should rejoin")
	}

	if r.End() != GapStart(10) {
		t.Fatalf("rejoined range should cover through the child's end, got End()=%v", r.End())
	}

	if r.next != nil {
		t.Fatalf("rejoined range should have no further sibling")
	}
}

func TestLiveRangeAttachToNextRefusesMismatchedAssignment(t *testing.T) {
	top := newTopLevelLiveRange(VReg{ID: 1, Kind: RegKindInt})
	r := &top.LiveRange
	r.addInterval(GapStart(0), GapStart(10))

	child := r.SplitAt(GapStart(5))
	child.SetAssignedRegister(RealReg(3))
	r.SetAssignedRegister(RealReg(4))

	if r.attachToNext() {
		t.Fatalf("siblings assigned different registers should not rejoin")
	}
}

func TestTopLevelLiveRangeSpillRangeLifecycle(t *testing.T) {
	top := newTopLevelLiveRange(VReg{ID: 1, Kind: RegKindInt})

	if top.SpillType() != SpillNone {
		t.Fatalf("a fresh range should report SpillNone")
	}

	sr := top.EnsureSpillRange(true)
	if top.SpillType() != SpillDeferredRange {
		t.Fatalf("deferred-only request should record SpillDeferredRange")
	}

	if top.EnsureSpillRange(true) != sr {
		t.Fatalf("EnsureSpillRange should be idempotent")
	}

	top.EnsureSpillRange(false)
	if top.SpillType() != SpillRangeKind {
		t.Fatalf("a later non-deferred demand should upgrade to SpillRangeKind")
	}
}

func TestTopLevelLiveRangeChildCovering(t *testing.T) {
	top := newTopLevelLiveRange(VReg{ID: 1, Kind: RegKindInt})
	r := &top.LiveRange
	r.addInterval(GapStart(0), GapStart(10))

	child := r.SplitAt(GapStart(5))

	if got := top.ChildCovering(GapStart(2)); got != r {
		t.Fatalf("ChildCovering(2) should return the parent sibling")
	}

	if got := top.ChildCovering(GapStart(7)); got != child {
		t.Fatalf("ChildCovering(7) should return the child sibling")
	}

	if got := top.ChildCovering(GapStart(20)); got != nil {
		t.Fatalf("ChildCovering outside any sibling should return nil, got %v", got)
	}
}

func TestFixedTopLevelLiveRangeCannotBeSpilled(t *testing.T) {
	top := newFixedTopLevelLiveRange(RegKindInt, RealReg(0))
	top.addInterval(GapStart(0), GapStart(4))

	if !top.IsFixed() {
		t.Fatalf("newFixedTopLevelLiveRange should report IsFixed")
	}

	if top.CanBeSpilled(GapStart(1)) {
		t.Fatalf("a fixed range must never be spillable")
	}
}
