package regalloc

// instrLayout flattens every block's instruction list into one
// function-wide sequence so LifetimePosition (spec.md §3, a single integer
// axis spanning the whole function) can be computed from an instruction's
// place in that sequence. Built once at the start of Allocate and shared
// read-only by every later stage.
type instrLayout struct {
	index      map[Instr]int
	instrs     []Instr
	blockOf    []int
	blockFirst map[int]int
	blockLast  map[int]int
}

func buildInstrLayout(blocks []Block) *instrLayout {
	l := &instrLayout{
		index:      make(map[Instr]int),
		blockFirst: make(map[int]int),
		blockLast:  make(map[int]int),
	}

	for _, b := range blocks {
		first := len(l.instrs)

		for _, ins := range b.Instrs() {
			l.index[ins] = len(l.instrs)
			l.instrs = append(l.instrs, ins)
			l.blockOf = append(l.blockOf, b.RPO())
		}

		last := len(l.instrs) - 1
		l.blockFirst[b.RPO()] = first
		l.blockLast[b.RPO()] = last
	}

	return l
}

// IndexOf returns ins's position in the flattened sequence.
func (l *instrLayout) IndexOf(ins Instr) int {
	idx, ok := l.index[ins]
	invariant(ok, FaultInvalidIntervalChain, "instruction not present in layout")

	return idx
}

// BlockRange returns the first and last flattened instruction indices
// belonging to block rpo. last < first means the block has no
// instructions.
func (l *instrLayout) BlockRange(rpo int) (first, last int) {
	return l.blockFirst[rpo], l.blockLast[rpo]
}

// BlockStart returns the LifetimePosition at the very start of block rpo's
// first instruction's gap.
func (l *instrLayout) BlockStart(rpo int) LifetimePosition {
	first, last := l.BlockRange(rpo)
	if last < first {
		// Empty block: synthesize a position from its ordinal so callers
		// still get a monotonically meaningful value.
		return GapStart(rpo * 4)
	}

	return GapStart(first)
}

// BlockEnd returns the LifetimePosition just past block rpo's last
// instruction.
func (l *instrLayout) BlockEnd(rpo int) LifetimePosition {
	first, last := l.BlockRange(rpo)
	if last < first {
		return GapStart(rpo*4 + 1)
	}

	return InstrEnd(last)
}

// InstrAt returns the instruction at flattened index i.
func (l *instrLayout) InstrAt(i int) Instr { return l.instrs[i] }

// Len returns the total number of instructions in the function.
func (l *instrLayout) Len() int { return len(l.instrs) }
