package regalloc

// SpillRange is a disjoint-interval union built from all siblings of one
// top-level range, used to find other spill ranges it can share a stack
// slot with (two SpillRanges may coalesce iff their total live intervals
// never intersect and their byte widths match).
type SpillRange struct {
	owners    []*TopLevelLiveRange
	intervals *UseInterval
	width     int
	slot      int
	hasSlot   bool
}

func newSpillRange(owner *TopLevelLiveRange) *SpillRange {
	sr := &SpillRange{owners: []*TopLevelLiveRange{owner}, width: repWidth(owner.kind)}
	sr.rebuildFrom(owner)

	return sr
}

func repWidth(k RegisterKind) int {
	if k == RegKindFloat {
		return 8
	}

	return 8
}

// rebuildFrom unions every sibling interval of owner into sr's coverage.
func (sr *SpillRange) rebuildFrom(owner *TopLevelLiveRange) {
	for _, child := range owner.Children() {
		for iv := child.Intervals(); iv != nil; iv = iv.Next {
			sr.addInterval(iv.Start, iv.End)
		}
	}
}

func (sr *SpillRange) addInterval(start, end LifetimePosition) {
	if start >= end {
		return
	}

	if sr.intervals == nil || end < sr.intervals.Start {
		sr.intervals = &UseInterval{Start: start, End: end, Next: sr.intervals}
		return
	}

	var prev *UseInterval

	cur := sr.intervals
	for cur != nil && cur.Start <= end {
		if cur.End >= start {
			if start < cur.Start {
				cur.Start = start
			}

			if end > cur.End {
				cur.End = end
			}

			for cur.Next != nil && cur.Next.Start <= cur.End {
				if cur.Next.End > cur.End {
					cur.End = cur.Next.End
				}

				cur.Next = cur.Next.Next
			}

			return
		}

		prev = cur
		cur = cur.Next
	}

	n := &UseInterval{Start: start, End: end, Next: cur}
	if prev == nil {
		sr.intervals = n
	} else {
		prev.Next = n
	}
}

// Intervals returns the head of the union's interval chain.
func (sr *SpillRange) Intervals() *UseInterval { return sr.intervals }

// Width returns the slot's required byte width.
func (sr *SpillRange) Width() int { return sr.width }

// Owners returns the top-level ranges sharing this spill range's slot.
func (sr *SpillRange) Owners() []*TopLevelLiveRange { return sr.owners }

// Slot returns the assigned stack-slot index, valid after HasSlot.
func (sr *SpillRange) Slot() int { return sr.slot }

// HasSlot reports whether a frame slot has been committed for this range.
func (sr *SpillRange) HasSlot() bool { return sr.hasSlot }

// SetSlot commits slot as this spill range's stack location.
func (sr *SpillRange) SetSlot(slot int) {
	sr.slot = slot
	sr.hasSlot = true
}

// IntersectsWith reports whether sr and other's total live intervals
// overlap anywhere (spec.md §8 property 5: ranges sharing a slot must not).
func (sr *SpillRange) IntersectsWith(other *SpillRange) bool {
	return intervalChainFirstIntersection(sr.intervals, other.intervals).IsValid()
}

// TryMerge absorbs other into sr when they are disjoint and same-width,
// retargeting every absorbed owner's SpillRange pointer. Returns whether
// the merge happened.
func (sr *SpillRange) TryMerge(other *SpillRange) bool {
	if sr == other || sr.width != other.width {
		return false
	}

	if sr.IntersectsWith(other) {
		return false
	}

	merged := sr.intervals
	for iv := other.intervals; iv != nil; iv = iv.Next {
		merged = mergeSortedInterval(merged, iv.Start, iv.End)
	}

	sr.intervals = merged
	sr.owners = append(sr.owners, other.owners...)

	for _, owner := range other.owners {
		owner.spillRange = sr
	}

	return true
}

// mergeSortedInterval inserts [start,end) into an already-sorted,
// non-overlapping chain head, returning the (possibly new) head.
func mergeSortedInterval(head *UseInterval, start, end LifetimePosition) *UseInterval {
	tmp := &SpillRange{intervals: head}
	tmp.addInterval(start, end)

	return tmp.intervals
}
