package regalloc

// UseInterval is a half-open range [Start, End) of LifetimePosition. Chains
// of UseInterval are kept in ascending, non-overlapping order via Next;
// together they express one live range's coverage, possibly with holes.
type UseInterval struct {
	Start, End LifetimePosition
	Next       *UseInterval
}

// Contains reports start <= p < end.
func (u *UseInterval) Contains(p LifetimePosition) bool {
	return u.Start <= p && p < u.End
}

// Intersect returns the earliest position contained in both u and o, or
// LifetimePositionInvalid if they don't overlap.
func (u *UseInterval) Intersect(o *UseInterval) LifetimePosition {
	if u.Start < o.Start {
		if o.Start < u.End {
			return o.Start
		}

		return LifetimePositionInvalid
	}

	if u.Start < o.End {
		return u.Start
	}

	return LifetimePositionInvalid
}

// SplitAt divides u into [Start, p) and [p, End), in place: u becomes the
// left half and the newly allocated right half is returned with its Next
// set to u's old Next. The caller is responsible for relinking u.Next (the
// left half no longer chains to the right half automatically, since a
// split commonly produces two separate LiveRanges with independent
// chains).
func (u *UseInterval) SplitAt(p LifetimePosition) *UseInterval {
	invariant(u.Start < p && p < u.End, FaultInvalidIntervalChain,
		"SplitAt(%d) outside interval [%d, %d)", p, u.Start, u.End)

	right := &UseInterval{Start: p, End: u.End, Next: u.Next}
	u.End = p
	u.Next = nil

	return right
}

// intervalChainWellFormed reports whether a chain starting at head is
// ordered and pairwise disjoint with non-empty members (spec.md §8
// property 1, partially — callers additionally check Start()/End()
// against the owning range's advertised bounds).
func intervalChainWellFormed(head *UseInterval) bool {
	for cur := head; cur != nil; cur = cur.Next {
		if cur.Start >= cur.End {
			return false
		}

		if cur.Next != nil && cur.End > cur.Next.Start {
			return false
		}
	}

	return true
}

// intervalChainCovers reports whether some interval in the chain contains p.
func intervalChainCovers(head *UseInterval, p LifetimePosition) bool {
	for cur := head; cur != nil; cur = cur.Next {
		if cur.Start > p {
			return false
		}

		if cur.Contains(p) {
			return true
		}
	}

	return false
}

// intervalChainFirstIntersection finds the earliest position at which any
// interval of a intersects any interval of b, walking both chains in
// lockstep (they are each individually sorted).
func intervalChainFirstIntersection(a, b *UseInterval) LifetimePosition {
	for a != nil && b != nil {
		if p := a.Intersect(b); p.IsValid() {
			return p
		}

		if a.End < b.End {
			a = a.Next
		} else {
			b = b.Next
		}
	}

	return LifetimePositionInvalid
}
