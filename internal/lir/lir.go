// Package lir defines a Low-level IR close to the target ISA.
// It is suitable for straightforward instruction selection and regalloc.
package lir

import (
	"fmt"
	"strings"
)

// Module bundles functions for one object file.
type Module struct {
	Name      string
	Functions []*Function
}

// Function is a sequence of basic blocks of target-like instructions.
type Function struct {
	Name   string
	Blocks []*BasicBlock
}

// BasicBlock contains a linear list of target-like instructions.
//
// The CFG fields (ID, Preds, Succs, ...) are optional: callers that only
// need straight-line codegen (the original use of this package) may leave
// them zero. The register allocator (internal/codegen/regalloc) requires
// them to be populated, via BuildCFG or by the lowering pass that produces
// the function.
type BasicBlock struct {
	Label string
	Insns []Insn

	// ID is the block's position in reverse-postorder. Blocks must be
	// stored in Function.Blocks in this order.
	ID int
	// Preds and Succs hold block IDs, not indices into Function.Blocks
	// directly, since ID already doubles as the RPO-ordered index.
	Preds []int
	Succs []int
	// LoopHeader is true if this block is the header of a natural loop.
	LoopHeader bool
	// LoopEnd is the ID of the last block in the loop body when
	// LoopHeader is true; undefined otherwise.
	LoopEnd int
	// Deferred marks a block as cold (e.g. slow-path / exception edges);
	// the allocator may spill values only for the duration of such blocks.
	Deferred bool
	// Phis lists the phi nodes defined at this block's entry.
	Phis []Phi
}

// Phi is a single phi node: Dst receives one of Inputs depending on which
// predecessor control arrived from. Inputs is parallel to the owning
// block's Preds.
type Phi struct {
	Dst    string
	Inputs []string
}

// Insn is a target-agnostic instruction representation.
type Insn interface{ Op() string }

// Mov, Add, Sub, Mul are minimal sample instructions with textual form.
type Mov struct{ Dst, Src string }

func (Mov) Op() string       { return "mov" }
func (m Mov) String() string { return fmt.Sprintf("mov %s, %s", m.Dst, m.Src) }

type Add struct{ Dst, LHS, RHS string }

func (Add) Op() string       { return "add" }
func (a Add) String() string { return fmt.Sprintf("add %s, %s, %s", a.Dst, a.LHS, a.RHS) }

type Sub struct{ Dst, LHS, RHS string }

func (Sub) Op() string       { return "sub" }
func (s Sub) String() string { return fmt.Sprintf("sub %s, %s, %s", s.Dst, s.LHS, s.RHS) }

type Mul struct{ Dst, LHS, RHS string }

func (Mul) Op() string       { return "mul" }
func (m Mul) String() string { return fmt.Sprintf("mul %s, %s, %s", m.Dst, m.LHS, m.RHS) }

type Div struct{ Dst, LHS, RHS string }

func (Div) Op() string       { return "div" }
func (d Div) String() string { return fmt.Sprintf("div %s, %s, %s", d.Dst, d.LHS, d.RHS) }

type Ret struct{ Src string }

func (Ret) Op() string { return "ret" }
func (r Ret) String() string {
	if r.Src == "" {
		return "ret"
	}

	return fmt.Sprintf("ret %s", r.Src)
}

type Call struct {
	Dst        string
	Callee     string
	RetClass   string
	Args       []string
	ArgClasses []string
	// ClobbersAll marks an instruction (typically a call) that clobbers
	// every allocatable register of its bank, forcing anything live
	// across it out of a caller-saved register.
	ClobbersAll bool
	// Tagged marks Dst as a pointer-typed (GC-visible) value so it is
	// recorded in the instruction's reference map when live across a
	// safepoint.
	Tagged bool
}

func (Call) Op() string { return "call" }
func (c Call) String() string {
	var b strings.Builder
	if c.Dst != "" {
		fmt.Fprintf(&b, "%s = ", c.Dst)
	}

	fmt.Fprintf(&b, "call %s(", c.Callee)

	for i, a := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(a)
	}

	b.WriteString(")")
	// Annotate classes as a comment for debugging.
	if len(c.ArgClasses) > 0 || c.RetClass != "" {
		b.WriteString(" ;")

		if len(c.ArgClasses) > 0 {
			b.WriteString(" args:")

			for i, cl := range c.ArgClasses {
				if i > 0 {
					b.WriteString(",")
				}

				if cl == "" {
					cl = "?"
				}

				b.WriteString(cl)
			}
		}

		if c.RetClass != "" {
			fmt.Fprintf(&b, " ret:%s", c.RetClass)
		}
	}

	return b.String()
}

// Compare and branching.
type Cmp struct{ Dst, Pred, LHS, RHS string }

func (Cmp) Op() string       { return "cmp" }
func (c Cmp) String() string { return fmt.Sprintf("cmp.%s %s, %s, %s", c.Pred, c.Dst, c.LHS, c.RHS) }

type Br struct{ Target string }

func (Br) Op() string       { return "br" }
func (b Br) String() string { return fmt.Sprintf("br %s", b.Target) }

type BrCond struct{ Cond, True, False string }

func (BrCond) Op() string       { return "brcond" }
func (b BrCond) String() string { return fmt.Sprintf("brcond %s, %s, %s", b.Cond, b.True, b.False) }

// Memory operations.
type Alloc struct{ Dst, Name string }

func (Alloc) Op() string { return "alloca" }
func (a Alloc) String() string {
	if a.Name != "" {
		return fmt.Sprintf("%s = alloca %s", a.Dst, a.Name)
	}

	return fmt.Sprintf("%s = alloca", a.Dst)
}

type Load struct{ Dst, Addr string }

func (Load) Op() string       { return "load" }
func (l Load) String() string { return fmt.Sprintf("%s = load %s", l.Dst, l.Addr) }

type Store struct{ Addr, Val string }

func (Store) Op() string       { return "store" }
func (s Store) String() string { return fmt.Sprintf("store %s, %s", s.Addr, s.Val) }

// MoveItem is a single register/slot transfer within a ParallelMove.
type MoveItem struct{ Dst, Src string }

// ParallelMove groups a set of transfers whose semantics are "all reads
// happen before all writes". The register allocator's connector and
// constraint builder insert these at instruction gaps; a later lowering
// pass sequentializes them.
type ParallelMove struct{ Moves []MoveItem }

func (ParallelMove) Op() string { return "pmove" }
func (p ParallelMove) String() string {
	var b strings.Builder

	b.WriteString("pmove ")

	for i, mv := range p.Moves {
		if i > 0 {
			b.WriteString(", ")
		}

		fmt.Fprintf(&b, "%s<-%s", mv.Dst, mv.Src)
	}

	return b.String()
}

// BuildCFG computes predecessor/successor edges from each block's
// terminator, reorders Blocks into reverse-postorder, and marks loop
// headers via back-edge detection (any successor whose new RPO does not
// exceed its source's). It is idempotent: calling it again after edits
// that only change instruction bodies (not control transfers) recomputes
// the same layout. Blocks without a recognized terminator (Br, BrCond, or
// Ret) are treated as falling through to nothing.
func (f *Function) BuildCFG() {
	n := len(f.Blocks)
	labelIndex := make(map[string]int, n)

	for i, bb := range f.Blocks {
		if bb.Label != "" {
			labelIndex[bb.Label] = i
		}
	}

	succs := make([][]int, n)
	for i, bb := range f.Blocks {
		succs[i] = terminatorTargets(bb, labelIndex)
	}

	order := reversePostorder(n, succs)
	newIndex := make([]int, n)

	for rpo, orig := range order {
		newIndex[orig] = rpo
	}

	reordered := make([]*BasicBlock, n)
	for rpo, orig := range order {
		reordered[rpo] = f.Blocks[orig]
	}

	f.Blocks = reordered

	preds := make([][]int, n)
	for origSrc, outs := range succs {
		src := newIndex[origSrc]
		for _, origDst := range outs {
			dst := newIndex[origDst]
			preds[dst] = append(preds[dst], src)
		}
	}

	for rpo, bb := range f.Blocks {
		bb.ID = rpo
		bb.Preds = preds[rpo]

		bb.Succs = nil
		for _, origDst := range succs[order[rpo]] {
			bb.Succs = append(bb.Succs, newIndex[origDst])
		}

		bb.LoopHeader = false
		bb.LoopEnd = 0
	}

	for rpo, bb := range f.Blocks {
		for _, s := range bb.Succs {
			if s <= rpo {
				target := f.Blocks[s]
				target.LoopHeader = true

				if rpo > target.LoopEnd {
					target.LoopEnd = rpo
				}
			}
		}
	}
}

func terminatorTargets(bb *BasicBlock, labelIndex map[string]int) []int {
	if len(bb.Insns) == 0 {
		return nil
	}

	switch t := bb.Insns[len(bb.Insns)-1].(type) {
	case Br:
		if idx, ok := labelIndex[t.Target]; ok {
			return []int{idx}
		}
	case BrCond:
		var out []int
		if idx, ok := labelIndex[t.True]; ok {
			out = append(out, idx)
		}

		if idx, ok := labelIndex[t.False]; ok {
			out = append(out, idx)
		}

		return out
	case Ret:
		return nil
	}

	return nil
}

// reversePostorder computes a DFS reverse-postorder over the block graph
// rooted at block 0, appending any block unreachable from it afterward so
// every index still gets a position.
func reversePostorder(n int, succs [][]int) []int {
	visited := make([]bool, n)
	var post []int

	var visit func(i int)

	visit = func(i int) {
		if visited[i] {
			return
		}

		visited[i] = true

		for _, s := range succs[i] {
			visit(s)
		}

		post = append(post, i)
	}

	if n > 0 {
		visit(0)
	}

	for i := 0; i < n; i++ {
		visit(i)
	}

	order := make([]int, len(post))
	for i, v := range post {
		order[len(post)-1-i] = v
	}

	return order
}

func (m *Module) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "module %s\n", m.Name)

	for _, f := range m.Functions {
		b.WriteString(f.String())
		b.WriteByte('\n')
	}

	return b.String()
}

func (f *Function) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "func %s() {\n", f.Name)

	for _, bb := range f.Blocks {
		if bb.Label != "" {
			fmt.Fprintf(&b, "%s:\n", bb.Label)
		}

		for _, ins := range bb.Insns {
			if s, ok := any(ins).(fmt.Stringer); ok {
				b.WriteString("  ")
				b.WriteString(s.String())
				b.WriteByte('\n')
			} else {
				fmt.Fprintf(&b, "  %s\n", ins.Op())
			}
		}
	}

	b.WriteString("}\n")

	return b.String()
}
