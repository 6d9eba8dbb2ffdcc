package regalloc

import "testing"

func rangeStartingAt(pos LifetimePosition, end LifetimePosition) *LiveRange {
	top := newTopLevelLiveRange(VReg{ID: 0, Kind: RegKindInt})
	r := &top.LiveRange
	r.addInterval(pos, end)

	return r
}

func TestUnhandledQueuePopsInStartOrder(t *testing.T) {
	q := &unhandledQueue{}

	q.push(rangeStartingAt(GapStart(10), GapStart(20)))
	q.push(rangeStartingAt(GapStart(2), GapStart(4)))
	q.push(rangeStartingAt(GapStart(6), GapStart(8)))

	var order []LifetimePosition
	for !q.empty() {
		order = append(order, q.pop().Start())
	}

	want := []LifetimePosition{GapStart(2), GapStart(6), GapStart(10)}
	for i, p := range want {
		if order[i] != p {
			t.Fatalf("pop order[%d] = %v, want %v", i, order[i], p)
		}
	}
}

func TestUnhandledQueueEmptyPopReturnsNil(t *testing.T) {
	q := &unhandledQueue{}
	if q.pop() != nil {
		t.Fatalf("pop on an empty queue should return nil")
	}
}

func TestRangeSetSweepSplitsExpiredHoleyAndStillActive(t *testing.T) {
	s := &rangeSet{}

	expired := rangeStartingAt(GapStart(0), GapStart(4))
	holey := rangeStartingAt(GapStart(0), GapStart(4))
	holey.addInterval(GapStart(8), GapStart(12))
	stillActive := rangeStartingAt(GapStart(0), GapStart(20))

	s.add(expired)
	s.add(holey)
	s.add(stillActive)

	out := &rangeSet{}
	s.sweep(GapStart(6), out, coversAt)

	if len(s.items) != 1 || s.items[0] != stillActive {
		t.Fatalf("active set after sweep should retain only the still-covering range, got %d items", len(s.items))
	}

	if len(out.items) != 1 || out.items[0] != holey {
		t.Fatalf("sweep should move the holey range into out, not the expired one")
	}
}

func TestRangeSetRemoveAtSwapsWithLast(t *testing.T) {
	s := &rangeSet{}

	a := rangeStartingAt(GapStart(0), GapStart(2))
	b := rangeStartingAt(GapStart(2), GapStart(4))
	c := rangeStartingAt(GapStart(4), GapStart(6))

	s.add(a)
	s.add(b)
	s.add(c)

	s.removeAt(0)

	if len(s.items) != 2 {
		t.Fatalf("removeAt should shrink the set by one")
	}

	for _, r := range s.items {
		if r == a {
			t.Fatalf("removed range should no longer be present")
		}
	}
}
