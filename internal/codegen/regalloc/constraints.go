package regalloc

// runConstraintBuilder is the forward pass that runs before the live-range
// builder (spec.md §4.E). Most operand policies (PolicyFixedRegister) carry
// enough information in the Use struct itself that the backward builder and
// the allocator can honor them directly at the position they occur, without
// any program rewrite; this pass handles the constraints that must be
// resolved before liveness is computed: PolicySameAsInput defs, which must
// be aliased onto their tied use before either side's range exists;
// last-instruction-of-block outputs, which need a spill location pinned
// before the block's exit gap is processed; and fixed-slot (constant)
// outputs, whose memory operand is already known and never goes through the
// register file at all.
func runConstraintBuilder(data *AllocationData, kind RegisterKind) {
	for _, b := range data.Blocks() {
		data.invokeTick()

		instrs := b.Instrs()
		if len(instrs) == 0 {
			continue
		}

		last := instrs[len(instrs)-1]
		processLastInstrOutputs(data, kind, b, last)

		for _, ins := range instrs {
			processSameAsInputDefs(data, kind, ins)
			processFixedSlotDefs(data, kind, ins)
		}
	}
}

// processSameAsInputDefs aliases every PolicySameAsInput def onto the vreg
// of the use it ties to, so TopLevelRange treats the def and every later use
// of the result as one continuous live range (spec.md §4.E) rather than two
// independently allocated ranges reconciled by a post-hoc operand override.
func processSameAsInputDefs(data *AllocationData, kind RegisterKind, ins Instr) {
	uses := ins.Uses()

	for _, d := range ins.Defs() {
		if d.V.Kind != kind || d.Policy != PolicySameAsInput {
			continue
		}

		if d.SameInputIndex < 0 || d.SameInputIndex >= len(uses) {
			continue
		}

		data.aliasVReg(d.V, uses[d.SameInputIndex].V)
	}
}

// processLastInstrOutputs handles a value defined by a block's final
// instruction (almost always its branch or return) and consumed across
// control flow: since there is no gap after the terminator to stage a
// spill, the output's top-level range gets an early spill-move location
// recorded so the allocator, upon deciding to spill this range, knows to
// materialize the store at the terminator itself rather than searching for
// a gap that does not exist.
func processLastInstrOutputs(data *AllocationData, kind RegisterKind, b Block, last Instr) {
	idx := -1

	for _, d := range last.Defs() {
		idx++

		if d.V.Kind != kind {
			continue
		}

		if len(b.Succs()) == 0 {
			continue
		}

		top := data.TopLevelRange(d.V)
		top.AddSpillMoveLocation(idx)
		data.addDelayedReference(last, d.V)
	}
}

// processFixedSlotDefs materializes the constant-backed memory operand for
// any def pinned to PolicyFixedSlot, committing it immediately since it
// never competes for a physical register.
func processFixedSlotDefs(data *AllocationData, kind RegisterKind, ins Instr) {
	for _, d := range ins.Defs() {
		if d.V.Kind != kind || d.Policy != PolicyFixedSlot {
			continue
		}

		top := data.TopLevelRange(d.V)
		top.SetSpillOperand(Operand{Kind: OperandStackSlot, Slot: int(d.FixedReg), Rep: kind})
	}
}
