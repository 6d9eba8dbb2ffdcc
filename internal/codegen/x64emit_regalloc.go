// Package codegen provides enhanced x64 code generation with full register allocation.
// This replaces the naive stack-slot-only approach with proper register allocation
// using the regalloc package for optimal register utilization.
package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/orizon-lang/orizon/internal/codegen/regalloc"
	"github.com/orizon-lang/orizon/internal/lir"
)

const scratchXMMRegAlloc = "xmm7" // スタック上の浮動小数引数退避に利用（非callee-saved、テストもこれを前提）

// EmitX64WithRegisterAllocation emits optimized x64 assembly, running every
// function through the control-flow-aware allocator first.
func EmitX64WithRegisterAllocation(m *lir.Module) (string, error) {
	return EmitX64WithRegisterAllocationTraced(m, nil)
}

// EmitX64WithRegisterAllocationTraced is EmitX64WithRegisterAllocation with
// an injectable Tracer, wired by cmd/orizon-compiler's -regalloc-trace flag
// to a stderr-backed regalloc.WriterTracer. A nil tracer behaves exactly as
// EmitX64WithRegisterAllocation (silent, regalloc.DefaultConfig's noopTracer).
func EmitX64WithRegisterAllocationTraced(m *lir.Module, tracer regalloc.Tracer) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "; module %s (with register allocation)\n", m.Name)

	for _, f := range m.Functions {
		asm, err := emitFuncWithRegAlloc(f, tracer)
		if err != nil {
			return "", fmt.Errorf("failed to emit function %s: %w", f.Name, err)
		}

		b.WriteString(asm)
	}

	return b.String(), nil
}

// emitFuncWithRegAlloc runs regalloc.Allocate over f and prints the result.
// The adapter rewrites every instruction's virtual-register operands to
// final physical locations in place, so emission below is a direct textual
// translation with no allocation-aware lookups of its own.
func emitFuncWithRegAlloc(f *lir.Function, tracer regalloc.Tracer) (string, error) {
	var funcBuilder strings.Builder

	adapter := newLIRAdapter(f)

	cfg := regalloc.DefaultConfig()
	if tracer != nil {
		cfg.Tracer = tracer
	}

	stats, err := regalloc.Allocate(adapter, &cfg)
	if err != nil {
		return "", fmt.Errorf("register allocation failed: %w", err)
	}

	adapter.Flush()

	frameSize := int64(adapter.SpillSlotCount() * 8)
	if rem := frameSize % 16; rem != 0 {
		frameSize += 16 - rem
	}

	funcBuilder.WriteString(fmt.Sprintf("%s:\n", f.Name))
	funcBuilder.WriteString("  push rbp\n")
	funcBuilder.WriteString("  mov rbp, rsp\n")

	savedRegs := adapter.UsedCalleeSaved()
	for _, reg := range savedRegs {
		funcBuilder.WriteString(fmt.Sprintf("  push %s\n", reg))
		frameSize += 8
	}

	if frameSize > 0 {
		funcBuilder.WriteString(fmt.Sprintf("  sub rsp, %d\n", frameSize))
	}

	for _, bb := range f.Blocks {
		if bb.Label != "" {
			funcBuilder.WriteString(fmt.Sprintf("%s:\n", bb.Label))
		}

		for _, instr := range bb.Insns {
			instrAsm, err := emitInstructionWithRegAlloc(instr)
			if err != nil {
				return "", fmt.Errorf("failed to emit instruction %v: %w", instr, err)
			}

			funcBuilder.WriteString(instrAsm)
		}
	}

	if frameSize > 0 {
		funcBuilder.WriteString(fmt.Sprintf("  add rsp, %d\n", frameSize))
	}

	for i := len(savedRegs) - 1; i >= 0; i-- {
		funcBuilder.WriteString(fmt.Sprintf("  pop %s\n", savedRegs[i]))
	}

	funcBuilder.WriteString("  pop rbp\n")
	funcBuilder.WriteString("  ret\n\n")

	funcBuilder.WriteString("; Register Allocation Summary:\n")
	fmt.Fprintf(&funcBuilder, "; splits=%d spills=%d moves=%d\n", stats.SplitsDone, stats.SpillsDone, stats.MovesInserted)
	funcBuilder.WriteString("\n")

	return funcBuilder.String(), nil
}

// emitInstructionWithRegAlloc generates assembly for one already-allocated
// instruction.
func emitInstructionWithRegAlloc(instr lir.Insn) (string, error) {
	switch inst := instr.(type) {
	case lir.Mov:
		return emitMov(inst)
	case lir.Add:
		return emitBinaryOp(inst.Dst, inst.LHS, inst.RHS, "add")
	case lir.Sub:
		return emitBinaryOp(inst.Dst, inst.LHS, inst.RHS, "sub")
	case lir.Mul:
		return emitBinaryOp(inst.Dst, inst.LHS, inst.RHS, "imul")
	case lir.Div:
		return emitDiv(inst)
	case lir.Load:
		return emitLoad(inst)
	case lir.Store:
		return emitStore(inst)
	case lir.Cmp:
		return emitCmp(inst)
	case lir.Br:
		return fmt.Sprintf("  jmp %s\n", inst.Target), nil
	case lir.BrCond:
		return emitBrCond(inst)
	case lir.Call:
		return emitCall(inst)
	case lir.Ret:
		return emitRet(inst)
	case lir.ParallelMove:
		return emitParallelMove(inst)
	case lir.Alloc:
		return fmt.Sprintf("  ; alloca %s -> %s\n", inst.Name, inst.Dst), nil
	default:
		if s, ok := any(instr).(fmt.Stringer); ok {
			return fmt.Sprintf("  ; unknown: %s\n", s.String()), nil
		}

		return fmt.Sprintf("  ; unknown op %s\n", instr.Op()), nil
	}
}

// emitParallelMove sequentializes a gap move the allocator's connector
// inserted. Every pmove this emitter ever sees holds exactly one transfer:
// the adapter records each InsertMove* call as its own singleton
// ParallelMove rather than batching true parallel swaps, since the lir
// instruction stream has no atomic multi-register exchange of its own.
func emitParallelMove(mv lir.ParallelMove) (string, error) {
	var result strings.Builder

	for _, item := range mv.Moves {
		if item.Src == item.Dst {
			continue
		}

		if isMemoryLocation(item.Src) && isMemoryLocation(item.Dst) {
			fmt.Fprintf(&result, "  mov rax, %s\n  mov %s, rax\n", item.Src, item.Dst)
		} else {
			fmt.Fprintf(&result, "  mov %s, %s\n", item.Dst, item.Src)
		}
	}

	return result.String(), nil
}

func emitMov(inst lir.Mov) (string, error) {
	src := resolveLocation(inst.Src)
	dst := resolveLocation(inst.Dst)

	if src == dst {
		return "  ; nop (src == dst)\n", nil
	}

	if isMemoryLocation(src) && isMemoryLocation(dst) {
		return fmt.Sprintf("  mov rax, %s\n  mov %s, rax\n", src, dst), nil
	}

	return fmt.Sprintf("  mov %s, %s\n", dst, src), nil
}

func emitBinaryOp(dst, lhs, rhs, op string) (string, error) {
	dstLoc := resolveLocation(dst)
	lhsLoc := resolveLocation(lhs)
	rhsLoc := resolveLocation(rhs)

	var result strings.Builder

	if dstLoc != lhsLoc {
		if isMemoryLocation(lhsLoc) && isMemoryLocation(dstLoc) {
			result.WriteString(fmt.Sprintf("  mov rax, %s\n", lhsLoc))
			result.WriteString(fmt.Sprintf("  %s rax, %s\n", op, rhsLoc))
			result.WriteString(fmt.Sprintf("  mov %s, rax\n", dstLoc))
		} else {
			result.WriteString(fmt.Sprintf("  mov %s, %s\n", dstLoc, lhsLoc))
			result.WriteString(fmt.Sprintf("  %s %s, %s\n", op, dstLoc, rhsLoc))
		}
	} else {
		result.WriteString(fmt.Sprintf("  %s %s, %s\n", op, dstLoc, rhsLoc))
	}

	return result.String(), nil
}

// emitDiv special-cases x64's fixed RAX/RDX division operands regardless of
// what the allocator assigned: the allocator has no notion of this
// constraint (lir.Div carries none), so the emitter stages values through
// RAX/RDX itself rather than relying on PolicyFixedRegister.
func emitDiv(inst lir.Div) (string, error) {
	dstLoc := resolveLocation(inst.Dst)
	lhsLoc := resolveLocation(inst.LHS)
	rhsLoc := resolveLocation(inst.RHS)

	var result strings.Builder

	result.WriteString(fmt.Sprintf("  mov rax, %s\n", lhsLoc))
	result.WriteString("  cqo\n")

	if rhsLoc == "rdx" {
		result.WriteString("  mov r10, rdx\n")
		result.WriteString("  idiv r10\n")
	} else {
		result.WriteString(fmt.Sprintf("  idiv %s\n", rhsLoc))
	}

	if dstLoc != "rax" {
		result.WriteString(fmt.Sprintf("  mov %s, rax\n", dstLoc))
	}

	return result.String(), nil
}

func emitLoad(inst lir.Load) (string, error) {
	dstLoc := resolveLocation(inst.Dst)
	addrLoc := resolveLocation(inst.Addr)

	switch {
	case isImmediate(inst.Addr):
		return fmt.Sprintf("  mov %s, %s\n", dstLoc, inst.Addr), nil
	case isMemoryLocation(addrLoc):
		return fmt.Sprintf("  mov rax, %s\n  mov %s, qword ptr [rax]\n", addrLoc, dstLoc), nil
	default:
		return fmt.Sprintf("  mov %s, qword ptr [%s]\n", dstLoc, addrLoc), nil
	}
}

func emitStore(inst lir.Store) (string, error) {
	addrLoc := resolveLocation(inst.Addr)
	valLoc := resolveLocation(inst.Val)

	if isMemoryLocation(addrLoc) {
		if isMemoryLocation(valLoc) {
			return fmt.Sprintf("  mov rax, %s\n  mov r10, %s\n  mov qword ptr [rax], r10\n", addrLoc, valLoc), nil
		}

		return fmt.Sprintf("  mov rax, %s\n  mov qword ptr [rax], %s\n", addrLoc, valLoc), nil
	}

	return fmt.Sprintf("  mov qword ptr [%s], %s\n", addrLoc, valLoc), nil
}

func emitCmp(inst lir.Cmp) (string, error) {
	dstLoc := resolveLocation(inst.Dst)
	lhsLoc := resolveLocation(inst.LHS)
	rhsLoc := resolveLocation(inst.RHS)

	var result strings.Builder

	if isMemoryLocation(lhsLoc) && isMemoryLocation(rhsLoc) {
		result.WriteString(fmt.Sprintf("  mov rax, %s\n", lhsLoc))
		result.WriteString(fmt.Sprintf("  cmp rax, %s\n", rhsLoc))
	} else {
		result.WriteString(fmt.Sprintf("  cmp %s, %s\n", lhsLoc, rhsLoc))
	}

	setcc := mapCmpToSetccRegAlloc(inst.Pred)
	result.WriteString(fmt.Sprintf("  %s al\n", setcc))
	result.WriteString("  movzx rax, al\n")

	if dstLoc != "rax" {
		result.WriteString(fmt.Sprintf("  mov %s, rax\n", dstLoc))
	}

	return result.String(), nil
}

func emitBrCond(inst lir.BrCond) (string, error) {
	condLoc := resolveLocation(inst.Cond)

	var result strings.Builder

	if condLoc == "rax" {
		result.WriteString("  test rax, rax\n")
	} else {
		result.WriteString(fmt.Sprintf("  cmp %s, 0\n", condLoc))
	}

	result.WriteString(fmt.Sprintf("  jnz %s\n", inst.True))
	result.WriteString(fmt.Sprintf("  jmp %s\n", inst.False))

	return result.String(), nil
}

// emitCall implements the Win64 calling convention: RCX/RDX/R8/R9 for the
// first four integer arguments, XMM0-XMM3 for the first four floating
// point arguments, a 32-byte shadow space, and 16-byte stack alignment.
func emitCall(inst lir.Call) (string, error) {
	var result strings.Builder

	gprRegs := []string{"rcx", "rdx", "r8", "r9"}
	xmmRegs := []string{"xmm0", "xmm1", "xmm2", "xmm3"}

	stackArgs := 0
	if len(inst.Args) > 4 {
		stackArgs = len(inst.Args) - 4
	}

	reserve := int64(32 + stackArgs*8)
	if rem := reserve % 16; rem != 0 {
		reserve += 16 - rem
	}

	if reserve > 0 {
		result.WriteString(fmt.Sprintf("  sub rsp, %d\n", reserve))
	}

	for i := 4; i < len(inst.Args); i++ {
		offset := 32 + (i-4)*8
		argLoc := resolveLocation(inst.Args[i])

		cls := ""
		if i < len(inst.ArgClasses) {
			cls = inst.ArgClasses[i]
		}

		if cls == "f32" || cls == "f64" {
			if isMemoryLocation(argLoc) {
				result.WriteString(fmt.Sprintf("  mov rax, %s\n", argLoc))
				result.WriteString(fmt.Sprintf("  movq %s, rax\n", scratchXMMRegAlloc))
			} else {
				result.WriteString(fmt.Sprintf("  movq %s, %s\n", scratchXMMRegAlloc, argLoc))
			}

			if cls == "f32" {
				result.WriteString(fmt.Sprintf("  movss dword ptr [rsp+%d], %s\n", offset, scratchXMMRegAlloc))
			} else {
				result.WriteString(fmt.Sprintf("  movsd qword ptr [rsp+%d], %s\n", offset, scratchXMMRegAlloc))
			}
		} else {
			result.WriteString(fmt.Sprintf("  mov qword ptr [rsp+%d], %s\n", offset, argLoc))
		}
	}

	gprIndex := 0
	xmmIndex := 0

	for i := 0; i < len(inst.Args) && i < 4; i++ {
		argLoc := resolveLocation(inst.Args[i])

		cls := ""
		if i < len(inst.ArgClasses) {
			cls = inst.ArgClasses[i]
		}

		if cls == "f32" || cls == "f64" {
			if xmmIndex < len(xmmRegs) {
				targetReg := xmmRegs[xmmIndex]
				if isMemoryLocation(argLoc) {
					result.WriteString(fmt.Sprintf("  mov rax, %s\n", argLoc))
					result.WriteString(fmt.Sprintf("  movq %s, rax\n", targetReg))
				} else {
					result.WriteString(fmt.Sprintf("  movq %s, %s\n", targetReg, argLoc))
				}

				xmmIndex++
			}
		} else if gprIndex < len(gprRegs) {
			targetReg := gprRegs[gprIndex]
			if argLoc != targetReg {
				result.WriteString(fmt.Sprintf("  mov %s, %s\n", targetReg, argLoc))
			}

			gprIndex++
		}
	}

	result.WriteString(fmt.Sprintf("  call %s\n", inst.Callee))

	if reserve > 0 {
		result.WriteString(fmt.Sprintf("  add rsp, %d\n", reserve))
	}

	if inst.Dst != "" {
		dstLoc := resolveLocation(inst.Dst)

		if inst.RetClass == "f32" || inst.RetClass == "f64" {
			if dstLoc != "xmm0" {
				result.WriteString(fmt.Sprintf("  movq %s, xmm0\n", dstLoc))
			}
		} else if dstLoc != "rax" {
			result.WriteString(fmt.Sprintf("  mov %s, rax\n", dstLoc))
		}
	}

	return result.String(), nil
}

func emitRet(inst lir.Ret) (string, error) {
	if inst.Src != "" {
		srcLoc := resolveLocation(inst.Src)
		if srcLoc != "rax" {
			return fmt.Sprintf("  mov rax, %s\n", srcLoc), nil
		}
	}

	return "", nil
}

// resolveLocation passes through an already-allocated operand unchanged; a
// "%"-prefixed operand surviving to emission means the allocator left it
// unallocated, which only happens for a value genuinely never read.
func resolveLocation(operand string) string {
	if operand == "" {
		return ""
	}

	if strings.HasPrefix(operand, "%") {
		return fmt.Sprintf("qword ptr [rbp-8] ; unallocated %s", operand)
	}

	return operand
}

func isMemoryLocation(loc string) bool {
	return strings.Contains(loc, "[") && strings.Contains(loc, "]")
}

func isImmediate(operand string) bool {
	_, err := strconv.ParseInt(operand, 10, 64)
	return err == nil
}

// mapCmpToSetccRegAlloc maps LIR comparison predicates to x64 setcc instructions.
func mapCmpToSetccRegAlloc(pred string) string {
	switch pred {
	case "eq":
		return "sete"
	case "ne":
		return "setne"
	case "slt":
		return "setl"
	case "sle":
		return "setle"
	case "sgt":
		return "setg"
	case "sge":
		return "setge"
	case "ult":
		return "setb"
	case "ule":
		return "setbe"
	case "ugt":
		return "seta"
	case "uge":
		return "setae"
	default:
		return "sete"
	}
}
