package regalloc

// unhandledQueue is the linear scan's worklist, always kept sorted
// ascending by Start() (spec.md §4.H "unhandled, ordered by increasing
// start position"). A plain sorted slice is a deliberate simplification of
// V8's splay-tree-backed priority queue: the ranges any single compiled
// function produces comfortably fit an O(n) insertion without a measurable
// difference, and it keeps the data structure inspectable in tests.
type unhandledQueue struct {
	items []*LiveRange
}

func (q *unhandledQueue) push(r *LiveRange) {
	start := r.Start()

	i := len(q.items)
	for i > 0 && q.items[i-1].Start() > start {
		i--
	}

	q.items = append(q.items, nil)
	copy(q.items[i+1:], q.items[i:])
	q.items[i] = r
}

func (q *unhandledQueue) pop() *LiveRange {
	if len(q.items) == 0 {
		return nil
	}

	r := q.items[0]
	q.items = q.items[1:]

	return r
}

func (q *unhandledQueue) empty() bool { return len(q.items) == 0 }

// rangeSet is active or inactive: an unordered set of live ranges with
// O(1)-ish removal by swap-with-last, since membership order never
// matters (spec.md §4.H active/inactive are sets, not queues).
type rangeSet struct {
	items []*LiveRange
}

func (s *rangeSet) add(r *LiveRange) { s.items = append(s.items, r) }

func (s *rangeSet) removeAt(i int) {
	last := len(s.items) - 1
	s.items[i] = s.items[last]
	s.items = s.items[:last]
}

// sweep removes every range whose End() <= pos (fully handled) and moves
// any remaining range whose liveness has a hole at pos into out, compacting
// in place. Returns the still-current members.
func (s *rangeSet) sweep(pos LifetimePosition, out *rangeSet, stillCoversAt func(*LiveRange, LifetimePosition) bool) {
	i := 0
	for i < len(s.items) {
		r := s.items[i]

		switch {
		case r.End() <= pos:
			s.removeAt(i)
		case !stillCoversAt(r, pos):
			out.add(r)
			s.removeAt(i)
		default:
			i++
		}
	}
}

func coversAt(r *LiveRange, pos LifetimePosition) bool { return r.Covers(pos) }
