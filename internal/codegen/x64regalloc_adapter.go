package codegen

import (
	"fmt"
	"strings"

	"github.com/orizon-lang/orizon/internal/codegen/regalloc"
	"github.com/orizon-lang/orizon/internal/layout"
	"github.com/orizon-lang/orizon/internal/lir"
)

// x64IntRegNames and x64FloatRegNames name the physical registers the
// allocator may hand out, in the same order and with the same Win64
// callee-saved split the function's prologue/epilogue already assumed
// before register allocation existed.
var x64IntRegNames = []string{
	"rax", "rcx", "rdx", "r8", "r9", "r10", "r11", "rbx", "r12", "r13", "r14", "r15",
}

var x64IntCalleeSaved = map[string]bool{"rbx": true, "r12": true, "r13": true, "r14": true, "r15": true}

// xmm7 is reserved as the emitter's scratch register for spilling floating
// point call arguments (see scratchXMMRegAlloc) and is never handed to the
// allocator.
var x64FloatRegNames = []string{"xmm0", "xmm1", "xmm2", "xmm3", "xmm4", "xmm5", "xmm6"}

var x64FloatCalleeSaved = map[string]bool{"xmm6": true}

func x64RegisterConfiguration() *regalloc.RegisterConfiguration {
	ints := make([]regalloc.RealReg, len(x64IntRegNames))
	for i := range ints {
		ints[i] = regalloc.RealReg(i)
	}

	floats := make([]regalloc.RealReg, len(x64FloatRegNames))
	for i := range floats {
		floats[i] = regalloc.RealReg(i)
	}

	calleeSavedInt := map[regalloc.RealReg]bool{}
	for i, n := range x64IntRegNames {
		if x64IntCalleeSaved[n] {
			calleeSavedInt[regalloc.RealReg(i)] = true
		}
	}

	calleeSavedFloat := map[regalloc.RealReg]bool{}
	for i, n := range x64FloatRegNames {
		if x64FloatCalleeSaved[n] {
			calleeSavedFloat[regalloc.RealReg(i)] = true
		}
	}

	return &regalloc.RegisterConfiguration{
		Allocatable: map[regalloc.RegisterKind][]regalloc.RealReg{
			regalloc.RegKindInt:   ints,
			regalloc.RegKindFloat: floats,
		},
		CalleeSaved: map[regalloc.RegisterKind]map[regalloc.RealReg]bool{
			regalloc.RegKindInt:   calleeSavedInt,
			regalloc.RegKindFloat: calleeSavedFloat,
		},
	}
}

func x64RegName(kind regalloc.RegisterKind, r regalloc.RealReg) string {
	if kind == regalloc.RegKindFloat {
		return x64FloatRegNames[int(r)]
	}

	return x64IntRegNames[int(r)]
}

// lirAdapter implements regalloc.Function over one *lir.Function, bridging
// its plain-string operand model to the allocator's typed VReg/Operand
// model. Every Assign* callback rewrites the owning instruction's string
// field in place, so once Allocate returns, every operand in the function
// is already a final physical location string and the emitter needs no
// further lookups.
type lirAdapter struct {
	fn     *lir.Function
	blocks []*lirBlockAdapter
	byID   map[int]*lirBlockAdapter

	vregIDs map[string]uint32
	names   map[uint32]string
	nextID  uint32

	cfg *regalloc.RegisterConfiguration

	spillSlots   int
	spillFields  []layout.FieldInfo
	spillOffsets []int64
	frameLayout  *layout.LayoutCalculator
	usedRegs     map[string]bool

	pending []pendingGapInsert
	seq     int
}

// pendingGapInsert is one deferred move insertion. Moves are recorded
// during Allocate (which calls InsertMove* many times against operand
// adapters whose index fields were captured once, before any insertion)
// and only spliced into each block's instruction list by Flush, in
// descending-index order, so one insertion never invalidates another
// pending insertion's target position.
type pendingGapInsert struct {
	block *lirBlockAdapter
	// before is the index (in the block's ORIGINAL instruction list) this
	// move must end up immediately before.
	before int
	seq    int
	mv     lir.ParallelMove
}

func newLIRAdapter(fn *lir.Function) *lirAdapter {
	a := &lirAdapter{
		fn:          fn,
		vregIDs:     make(map[string]uint32),
		names:       make(map[uint32]string),
		cfg:         x64RegisterConfiguration(),
		usedRegs:    make(map[string]bool),
		frameLayout: layout.NewLayoutCalculator(),
	}

	fn.BuildCFG()
	a.buildBlocks()

	return a
}

func (a *lirAdapter) vregFor(name string) regalloc.VReg {
	id, ok := a.vregIDs[name]
	if !ok {
		id = a.nextID
		a.nextID++
		a.vregIDs[name] = id
		a.names[id] = name
	}

	return regalloc.VReg{ID: id, Kind: regalloc.RegKindInt}
}

func isVirtual(operand string) bool { return strings.HasPrefix(operand, "%") }

// buildBlocks wraps every lir.BasicBlock (already reordered into
// reverse-postorder by Function.BuildCFG, with ID/Preds/Succs/LoopHeader
// populated) in an adapter carrying the back-reference needed for
// AssignDef/AssignUse to rewrite operands in place.
func (a *lirAdapter) buildBlocks() {
	a.blocks = make([]*lirBlockAdapter, len(a.fn.Blocks))
	a.byID = make(map[int]*lirBlockAdapter, len(a.fn.Blocks))

	for i, bb := range a.fn.Blocks {
		ba := &lirBlockAdapter{a: a, bb: bb, origIndex: bb.ID, rpo: bb.ID}
		a.blocks[i] = ba
		a.byID[bb.ID] = ba
	}

	for _, b := range a.blocks {
		for _, s := range b.bb.Succs {
			b.succs = append(b.succs, a.byID[s])
		}

		for _, p := range b.bb.Preds {
			b.preds = append(b.preds, a.byID[p])
		}
	}
}

func (a *lirAdapter) Blocks() []regalloc.Block {
	out := make([]regalloc.Block, len(a.blocks))
	for i, b := range a.blocks {
		out[i] = b
	}

	return out
}

func (a *lirAdapter) InsertMoveBefore(instr regalloc.Instr, from, to regalloc.Operand) {
	ia := instr.(*lirInstrAdapter)
	a.defer_(ia.block, ia.index, singleMove(a, from, to))
}

func (a *lirAdapter) InsertMoveAfter(instr regalloc.Instr, from, to regalloc.Operand) {
	ia := instr.(*lirInstrAdapter)
	a.defer_(ia.block, ia.index+1, singleMove(a, from, to))
}

func (a *lirAdapter) InsertMoveAtBlockEntry(b regalloc.Block, from, to regalloc.Operand) {
	ba := b.(*lirBlockAdapter)
	a.defer_(ba, 0, singleMove(a, from, to))
}

func (a *lirAdapter) InsertMoveAtBlockExit(b regalloc.Block, from, to regalloc.Operand) {
	ba := b.(*lirBlockAdapter)

	idx := len(ba.bb.Insns)
	if idx > 0 {
		idx--
	}

	a.defer_(ba, idx, singleMove(a, from, to))
}

func singleMove(a *lirAdapter, from, to regalloc.Operand) lir.ParallelMove {
	return lir.ParallelMove{Moves: []lir.MoveItem{{Dst: a.operandExpr(to), Src: a.operandExpr(from)}}}
}

func (a *lirAdapter) defer_(b *lirBlockAdapter, before int, mv lir.ParallelMove) {
	a.pending = append(a.pending, pendingGapInsert{block: b, before: before, seq: a.seq, mv: mv})
	a.seq++
}

// Flush splices every deferred gap move into its block's instruction list.
// It must be called once, after Allocate returns and before the function's
// instructions are emitted; Allocate itself only ever records intent via
// InsertMove*, never mutates block instruction lists directly, since the
// Instr adapters it holds carry indices captured before any insertion.
func (a *lirAdapter) Flush() {
	byBlock := make(map[*lirBlockAdapter][]pendingGapInsert)
	for _, p := range a.pending {
		byBlock[p.block] = append(byBlock[p.block], p)
	}

	for b, inserts := range byBlock {
		for i := 0; i < len(inserts); i++ {
			for j := i + 1; j < len(inserts); j++ {
				if inserts[j].before > inserts[i].before ||
					(inserts[j].before == inserts[i].before && inserts[j].seq > inserts[i].seq) {
					inserts[i], inserts[j] = inserts[j], inserts[i]
				}
			}
		}

		for _, ins := range inserts {
			b.insertBefore(ins.before, ins.mv)
		}
	}

	a.pending = nil
}

func (a *lirAdapter) operandExpr(op regalloc.Operand) string {
	switch op.Kind {
	case regalloc.OperandRegister:
		return x64RegName(op.Rep, op.Reg)
	case regalloc.OperandStackSlot:
		if op.Slot < 0 || op.Slot >= len(a.spillOffsets) {
			return ""
		}

		return fmt.Sprintf("qword ptr [rbp-%d]", a.spillOffsets[op.Slot])
	default:
		return ""
	}
}

// AllocateSpillSlot hands out the next stack slot by growing a struct-like
// frame layout one field at a time through the compiler's own layout
// calculator, rather than assuming every slot is a uniform 8 bytes: a
// future wide spill (e.g. a 128-bit vector temp) gets the alignment and
// padding the calculator already knows how to compute for any other
// aggregate.
func (a *lirAdapter) AllocateSpillSlot(widthBytes int) int {
	if widthBytes <= 0 {
		widthBytes = 8
	}

	idx := a.spillSlots
	a.spillSlots++

	a.spillFields = append(a.spillFields, layout.FieldInfo{
		Name: fmt.Sprintf("slot%d", idx), Type: "i64", Size: int64(widthBytes), Alignment: 8,
	})

	sl, err := a.frameLayout.CalculateStructLayout("spillframe", a.spillFields)
	if err != nil {
		// Only reachable if a caller asked for a non-positive width, which
		// AllocateSpillSlot already normalizes above.
		panic(err)
	}

	last := sl.Fields[len(sl.Fields)-1]
	// rbp-relative offsets grow downward from the frame's high end, so the
	// slot's address is the END of its field within the layout calculator's
	// struct, never its start (offset 0 would alias rbp itself).
	a.spillOffsets = append(a.spillOffsets, last.Offset+last.Size)

	return idx
}

func (a *lirAdapter) Config() *regalloc.RegisterConfiguration { return a.cfg }

func (a *lirAdapter) Tick() {}

// lirBlockAdapter implements regalloc.Block over one *lir.BasicBlock.
type lirBlockAdapter struct {
	a         *lirAdapter
	bb        *lir.BasicBlock
	origIndex int
	rpo       int

	preds, succs []*lirBlockAdapter
}

func (b *lirBlockAdapter) RPO() int { return b.rpo }

func (b *lirBlockAdapter) Instrs() []regalloc.Instr {
	out := make([]regalloc.Instr, len(b.bb.Insns))
	for i, ins := range b.bb.Insns {
		out[i] = &lirInstrAdapter{a: b.a, block: b, index: i, insn: ins}
	}

	return out
}

func (b *lirBlockAdapter) Preds() []regalloc.Block {
	out := make([]regalloc.Block, len(b.preds))
	for i, p := range b.preds {
		out[i] = p
	}

	return out
}

func (b *lirBlockAdapter) Succs() []regalloc.Block {
	out := make([]regalloc.Block, len(b.succs))
	for i, s := range b.succs {
		out[i] = s
	}

	return out
}

func (b *lirBlockAdapter) IsLoopHeader() bool { return b.bb.LoopHeader }
func (b *lirBlockAdapter) LoopEndRPO() int    { return b.bb.LoopEnd }
func (b *lirBlockAdapter) Deferred() bool     { return b.bb.Deferred }
func (b *lirBlockAdapter) Entry() bool        { return b.rpo == 0 }

func (b *lirBlockAdapter) Phis() []regalloc.Phi {
	out := make([]regalloc.Phi, 0, len(b.bb.Phis))

	for _, p := range b.bb.Phis {
		inputs := make([]regalloc.VReg, len(p.Inputs))
		for i, in := range p.Inputs {
			inputs[i] = b.a.vregFor(in)
		}

		out = append(out, regalloc.Phi{Dst: b.a.vregFor(p.Dst), Inputs: inputs})
	}

	return out
}

func (b *lirBlockAdapter) insertBefore(idx int, mv lir.ParallelMove) {
	if idx < 0 {
		idx = 0
	}

	if idx > len(b.bb.Insns) {
		idx = len(b.bb.Insns)
	}

	b.bb.Insns = append(b.bb.Insns, nil)
	copy(b.bb.Insns[idx+1:], b.bb.Insns[idx:])
	b.bb.Insns[idx] = mv
}

// lirInstrAdapter implements regalloc.Instr over one lir.Insn, classifying
// its operands by type switch since lir carries no per-instruction operand
// metadata of its own.
type lirInstrAdapter struct {
	a     *lirAdapter
	block *lirBlockAdapter
	index int
	insn  lir.Insn
}

func (ia *lirInstrAdapter) String() string { return ia.insn.Op() }

func (ia *lirInstrAdapter) uses() []string {
	switch t := ia.insn.(type) {
	case lir.Mov:
		return filterVirtual(t.Src)
	case lir.Add:
		return filterVirtual(t.LHS, t.RHS)
	case lir.Sub:
		return filterVirtual(t.LHS, t.RHS)
	case lir.Mul:
		return filterVirtual(t.LHS, t.RHS)
	case lir.Div:
		return filterVirtual(t.LHS, t.RHS)
	case lir.Cmp:
		return filterVirtual(t.LHS, t.RHS)
	case lir.BrCond:
		return filterVirtual(t.Cond)
	case lir.Call:
		return filterVirtual(t.Args...)
	case lir.Ret:
		return filterVirtual(t.Src)
	case lir.Load:
		return filterVirtual(t.Addr)
	case lir.Store:
		return filterVirtual(t.Addr, t.Val)
	default:
		return nil
	}
}

func (ia *lirInstrAdapter) defName() (string, bool) {
	switch t := ia.insn.(type) {
	case lir.Mov:
		return t.Dst, true
	case lir.Add:
		return t.Dst, true
	case lir.Sub:
		return t.Dst, true
	case lir.Mul:
		return t.Dst, true
	case lir.Div:
		return t.Dst, true
	case lir.Cmp:
		return t.Dst, true
	case lir.Call:
		return t.Dst, t.Dst != ""
	case lir.Load:
		return t.Dst, true
	case lir.Alloc:
		return t.Dst, true
	}

	return "", false
}

func filterVirtual(operands ...string) []string {
	out := make([]string, 0, len(operands))

	for _, o := range operands {
		if isVirtual(o) {
			out = append(out, o)
		}
	}

	return out
}

func (ia *lirInstrAdapter) Defs() []regalloc.Use {
	name, ok := ia.defName()
	if !ok || !isVirtual(name) {
		return nil
	}

	tagged := false
	if c, isCall := ia.insn.(lir.Call); isCall {
		tagged = c.Tagged
	}

	return []regalloc.Use{{V: regalloc.VReg{ID: ia.a.vregFor(name).ID, Kind: regalloc.RegKindInt, Tagged: tagged}, Policy: regalloc.PolicyRegisterOrSlot}}
}

func (ia *lirInstrAdapter) Uses() []regalloc.Use {
	names := ia.uses()
	out := make([]regalloc.Use, len(names))

	for i, n := range names {
		out[i] = regalloc.Use{V: ia.a.vregFor(n), Policy: regalloc.PolicyRegisterOrSlot}
	}

	return out
}

func (ia *lirInstrAdapter) Temps() []regalloc.Use { return nil }

func (ia *lirInstrAdapter) AssignDef(op regalloc.Operand) {
	name, ok := ia.defName()
	if !ok {
		return
	}

	ia.rewrite(name, op)
}

func (ia *lirInstrAdapter) AssignUse(i int, op regalloc.Operand) {
	names := ia.uses()
	if i < 0 || i >= len(names) {
		return
	}

	ia.rewrite(names[i], op)
}

func (ia *lirInstrAdapter) AssignTemp(i int, op regalloc.Operand) {}

func (ia *lirInstrAdapter) rewrite(name string, op regalloc.Operand) {
	expr := ia.a.operandExpr(op)
	if expr == "" {
		return
	}

	if op.Kind == regalloc.OperandRegister {
		ia.a.usedRegs[expr] = true
	}

	ia.insn = rewriteOperand(ia.insn, name, expr)
	ia.block.bb.Insns[ia.index] = ia.insn
}

func (ia *lirInstrAdapter) IsMove() (src, dst regalloc.VReg, ok bool) {
	mv, isMov := ia.insn.(lir.Mov)
	if !isMov || !isVirtual(mv.Src) || !isVirtual(mv.Dst) {
		return regalloc.VReg{}, regalloc.VReg{}, false
	}

	return ia.a.vregFor(mv.Src), ia.a.vregFor(mv.Dst), true
}

func (ia *lirInstrAdapter) IsCall() bool { _, ok := ia.insn.(lir.Call); return ok }

func (ia *lirInstrAdapter) ClobbersAll() bool {
	c, ok := ia.insn.(lir.Call)
	return ok && c.ClobbersAll
}

func (ia *lirInstrAdapter) IsReturn() bool { _, ok := ia.insn.(lir.Ret); return ok }

func (ia *lirInstrAdapter) ReferenceMap() *regalloc.ReferenceMap {
	c, ok := ia.insn.(lir.Call)
	if !ok || !c.Tagged {
		return nil
	}

	return &regalloc.ReferenceMap{}
}

// rewriteOperand returns insn with every occurrence of the virtual register
// name replaced by expr, across whichever fields that concrete instruction
// type has.
func rewriteOperand(insn lir.Insn, name, expr string) lir.Insn {
	repl := func(s string) string {
		if s == name {
			return expr
		}

		return s
	}

	switch t := insn.(type) {
	case lir.Mov:
		t.Dst, t.Src = repl(t.Dst), repl(t.Src)
		return t
	case lir.Add:
		t.Dst, t.LHS, t.RHS = repl(t.Dst), repl(t.LHS), repl(t.RHS)
		return t
	case lir.Sub:
		t.Dst, t.LHS, t.RHS = repl(t.Dst), repl(t.LHS), repl(t.RHS)
		return t
	case lir.Mul:
		t.Dst, t.LHS, t.RHS = repl(t.Dst), repl(t.LHS), repl(t.RHS)
		return t
	case lir.Div:
		t.Dst, t.LHS, t.RHS = repl(t.Dst), repl(t.LHS), repl(t.RHS)
		return t
	case lir.Cmp:
		t.Dst, t.LHS, t.RHS = repl(t.Dst), repl(t.LHS), repl(t.RHS)
		return t
	case lir.BrCond:
		t.Cond = repl(t.Cond)
		return t
	case lir.Call:
		t.Dst = repl(t.Dst)

		for i, arg := range t.Args {
			t.Args[i] = repl(arg)
		}

		return t
	case lir.Ret:
		t.Src = repl(t.Src)
		return t
	case lir.Load:
		t.Dst, t.Addr = repl(t.Dst), repl(t.Addr)
		return t
	case lir.Store:
		t.Addr, t.Val = repl(t.Addr), repl(t.Val)
		return t
	default:
		return insn
	}
}

// UsedCalleeSaved returns, in deterministic order, every callee-saved
// physical register name the allocator actually assigned to something.
func (a *lirAdapter) UsedCalleeSaved() []string {
	var out []string

	for _, n := range x64IntRegNames {
		if a.usedRegs[n] && x64IntCalleeSaved[n] {
			out = append(out, n)
		}
	}

	for _, n := range x64FloatRegNames {
		if a.usedRegs[n] && x64FloatCalleeSaved[n] {
			out = append(out, n)
		}
	}

	return out
}

// SpillSlotCount returns how many distinct stack slots were handed out.
func (a *lirAdapter) SpillSlotCount() int { return a.spillSlots }
