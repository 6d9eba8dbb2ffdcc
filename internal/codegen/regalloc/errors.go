package regalloc

import (
	"fmt"
	"runtime"
)

// Category distinguishes the allocator's own failure modes from the
// compiler-wide ones in internal/errors, following the same
// category+code+message+context shape as internal/errors.StandardError.
type Category string

const CategoryRegalloc Category = "REGALLOC"

// Fault is the allocator's error type. Per spec.md §7, every Fault the
// allocator raises is a programmer-error assertion (an invariant violation
// or a use-without-definition), never a recoverable runtime condition; the
// single exception is a tick-induced abort, which is not a Fault at all
// but a panic of type tickAbort recovered only at Allocate's boundary.
type Fault struct {
	Code    string
	Message string
	Context map[string]any
	Caller  string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("[%s:%s] %s (at %s)", CategoryRegalloc, f.Code, f.Message, f.Caller)
}

func newFault(code, message string, context map[string]any) *Fault {
	pc, _, _, ok := runtime.Caller(2)

	caller := "unknown"
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	return &Fault{Code: code, Message: message, Context: context, Caller: caller}
}

func faultf(code, format string, args ...any) *Fault {
	return newFault(code, fmt.Sprintf(format, args...), nil)
}

// invariant panics with a *Fault when cond is false. Every call site names
// the specific invariant from spec.md §7/§8 it is defending.
func invariant(cond bool, code, format string, args ...any) {
	if !cond {
		panic(newFault(code, fmt.Sprintf(format, args...), nil))
	}
}

// Invariant violation codes, one per spec.md §7 category.
const (
	FaultInvalidIntervalChain = "INVALID_INTERVAL_CHAIN"
	FaultDoubleAssign         = "DOUBLE_ASSIGN"
	FaultSpillOfFixedRange    = "SPILL_OF_FIXED_RANGE"
	FaultSplitAtBlockEnd      = "SPLIT_AT_BLOCK_END"
	FaultUnhandledReappeared  = "UNHANDLED_REAPPEARED"
	FaultNoRegisterNoSplit    = "NO_REGISTER_NO_SPLIT"
)

// UseWithoutDefinitionError is reported (not panicked) to the embedder: the
// entry block's live-in set is non-empty after live-range construction,
// meaning some value is read before any definition reaches it. The
// embedder decides whether to bail out of compiling this unit.
type UseWithoutDefinitionError struct {
	VRegs []VReg
}

func (e *UseWithoutDefinitionError) Error() string {
	return fmt.Sprintf("regalloc: %d virtual register(s) live-in at function entry without a definition", len(e.VRegs))
}

// tickAbort is the panic value InvokeTick uses to unwind out of Allocate
// when the embedder's Tick callback decides to stop. Allocate recovers it
// and returns ErrAborted; the allocation data built so far is discarded by
// the caller, per spec.md §7.
type tickAbort struct{}

// ErrAborted is returned by Allocate when the embedder's TickCounter
// callback aborted the pass.
var ErrAborted = fmt.Errorf("regalloc: aborted by tick callback")

func recoverFault(errp *error) {
	switch r := recover().(type) {
	case nil:
		return
	case tickAbort:
		*errp = ErrAborted
	case *Fault:
		*errp = r
	default:
		panic(r)
	}
}
