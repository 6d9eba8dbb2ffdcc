package regalloc

// LiveRangeBundle is a coalescing group: a set of live ranges whose uses do
// not overlap in time, so they can all prefer the same physical register.
// Bundles are built by the bundle builder (component G) from phi
// input/output relationships, but any range may be added to a bundle
// later, e.g. when the original's bundle-hint propagation (SPEC_FULL.md
// "SUPPLEMENTED FEATURES") applies it to ordinary moves too.
type LiveRangeBundle struct {
	members  []*LiveRange
	hint     phiHint
	deferred bool
}

func newLiveRangeBundle() *LiveRangeBundle {
	return &LiveRangeBundle{}
}

// Members returns every range belonging to this bundle.
func (b *LiveRangeBundle) Members() []*LiveRange { return b.members }

// Add inserts r into the bundle, checking none of the existing members'
// intervals intersect r's (the defining property of a bundle: members'
// uses never overlap). Returns false (and does not add r) if they would.
func (b *LiveRangeBundle) Add(r *LiveRange) bool {
	for _, m := range b.members {
		if intervalChainFirstIntersection(m.Intervals(), r.Intervals()).IsValid() {
			return false
		}
	}

	b.members = append(b.members, r)
	r.SetBundle(b)

	return true
}

// TryMerge merges other into b, provided no pair of members across the two
// bundles intersects. Returns false (no mutation) otherwise.
func (b *LiveRangeBundle) TryMerge(other *LiveRangeBundle) bool {
	if b == other {
		return true
	}

	for _, m := range other.members {
		for _, existing := range b.members {
			if intervalChainFirstIntersection(m.Intervals(), existing.Intervals()).IsValid() {
				return false
			}
		}
	}

	for _, m := range other.members {
		b.members = append(b.members, m)
		m.SetBundle(b)
	}

	if other.hint.resolved && !b.hint.resolved {
		b.hint = other.hint
	}

	return true
}

// HintRegister returns the bundle's cached register choice, if any member
// has already been assigned one.
func (b *LiveRangeBundle) HintRegister() (RealReg, bool) {
	if b.hint.resolved {
		return b.hint.reg, true
	}

	return RealRegInvalid, false
}

// RecordRegister caches reg as the bundle's preferred register so future
// members (processed later by the linear scan, since they start later)
// prefer it too (SPEC_FULL.md's supplemented "hint propagation" feature:
// the original propagates the cached candidate to every member, not only
// phi-created bundles).
func (b *LiveRangeBundle) RecordRegister(reg RealReg) {
	if !b.hint.resolved {
		b.hint.set(reg)
	}
}
