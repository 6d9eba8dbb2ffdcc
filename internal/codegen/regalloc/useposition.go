package regalloc

// HintKind tags the variant carried by a UseHint.
type HintKind uint8

const (
	HintNone HintKind = iota
	HintUnresolved
	HintUsePosition
	HintOperand
	HintPhi
)

// UseHint is a register suggestion attached to a UsePosition. Resolving a
// hint means the pointed-to entity now has an assigned register; the query
// then yields that register code.
type UseHint struct {
	Kind   HintKind
	UsePos *UsePosition // HintUsePosition
	Op     Operand      // HintOperand: AlreadyAllocatedOperand
	Phi    *phiHint      // HintPhi
}

// phiHint is the bundle/phi-side of a hint: once the phi's own top-level
// range gets a register, every use that hinted at it resolves to the same
// code.
type phiHint struct {
	resolved bool
	reg      RealReg
}

func (h *phiHint) set(r RealReg) {
	h.resolved = true
	h.reg = r
}

// Resolve reports the register h currently points to, if any.
func (h UseHint) Resolve() (RealReg, bool) {
	switch h.Kind {
	case HintUsePosition:
		if h.UsePos != nil {
			return h.UsePos.AssignedRegister()
		}
	case HintOperand:
		if h.Op.Kind == OperandRegister {
			return h.Op.Reg, true
		}
	case HintPhi:
		if h.Phi != nil && h.Phi.resolved {
			return h.Phi.reg, true
		}
	}

	return RealRegInvalid, false
}

// slotRole distinguishes which Instr accessor an operandSlot resolves
// through at commit time.
type slotRole uint8

const (
	slotDef slotRole = iota
	slotUse
	slotTemp
)

// operandSlot is where a UsePosition writes back its resolved Operand. Go
// has no safe way to keep a pointer into an arbitrary concrete Instr's
// field, so resolution goes through the Instr interface's Assign*
// callbacks instead (see api.go's Instr doc comment).
type operandSlot struct {
	instr Instr
	role  slotRole
	index int
}

func (s operandSlot) assign(op Operand) {
	switch s.role {
	case slotDef:
		s.instr.AssignDef(op)
	case slotUse:
		s.instr.AssignUse(s.index, op)
	case slotTemp:
		s.instr.AssignTemp(s.index, op)
	}
}

// UseType is the policy a UsePosition pins at its LifetimePosition.
type UseType uint8

const (
	UseRequiresRegister UseType = iota
	UseRequiresSlot
	UseRegisterOrSlot
	UseRegisterOrSlotOrConstant
)

func useTypeFromPolicy(p UsePolicy) UseType {
	switch p {
	case PolicyRequiresSlot, PolicyFixedSlot:
		return UseRequiresSlot
	case PolicyRegisterOrSlot:
		return UseRegisterOrSlot
	case PolicyRegisterOrSlotOrConstant:
		return UseRegisterOrSlotOrConstant
	default:
		return UseRequiresRegister
	}
}

// UsePosition is a single constraint pinned at a LifetimePosition.
type UsePosition struct {
	Pos                LifetimePosition
	Type               UseType
	RegisterBeneficial bool
	slot               operandSlot
	Hint               UseHint
	assignedReg        RealReg
	hasAssignedReg     bool
	Next               *UsePosition
}

// RequiresRegister reports whether this use position can never accept a
// memory operand.
func (u *UsePosition) RequiresRegister() bool { return u.Type == UseRequiresRegister }

// RequiresSlot reports whether this use position can never accept a
// register.
func (u *UsePosition) RequiresSlot() bool { return u.Type == UseRequiresSlot }

// commit resolves this use position's slot to op, and records op as the
// assigned register if it is one (so later hints resolve through it).
func (u *UsePosition) commit(op Operand) {
	u.slot.assign(op)

	if op.Kind == OperandRegister {
		u.assignedReg = op.Reg
		u.hasAssignedReg = true
	}
}

// AssignedRegister reports the register this use position committed to, if
// any and if it was a register.
func (u *UsePosition) AssignedRegister() (RealReg, bool) {
	return u.assignedReg, u.hasAssignedReg
}

// usePositionChainOrdered reports whether a chain is sorted by Pos
// (spec.md §8 property 2's ordering precondition).
func usePositionChainOrdered(head *UsePosition) bool {
	for cur := head; cur != nil && cur.Next != nil; cur = cur.Next {
		if cur.Pos > cur.Next.Pos {
			return false
		}
	}

	return true
}
