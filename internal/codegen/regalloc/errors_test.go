package regalloc

import "testing"

func TestFaultErrorIncludesCategoryCodeAndCaller(t *testing.T) {
	defer func() {
		r := recover()
		f, ok := r.(*Fault)
		if !ok {
			t.Fatalf("expected invariant to panic with a *Fault, got %T", r)
		}

		msg := f.Error()
		if !contains(msg, string(CategoryRegalloc)) || !contains(msg, FaultDoubleAssign) {
			t.Fatalf("Fault.Error() = %q, should mention category %q and code %q", msg, CategoryRegalloc, FaultDoubleAssign)
		}
	}()

	invariant(false, FaultDoubleAssign, "value %d should never reach here", 7)
}

func TestInvariantDoesNotPanicWhenConditionHolds(t *testing.T) {
	invariant(true, FaultDoubleAssign, "unreachable")
}

func TestUseWithoutDefinitionErrorMessageCountsVRegs(t *testing.T) {
	err := &UseWithoutDefinitionError{VRegs: []VReg{{ID: 0}, {ID: 1}, {ID: 2}}}

	if !contains(err.Error(), "3") {
		t.Fatalf("UseWithoutDefinitionError.Error() = %q, should mention the count 3", err.Error())
	}
}

func TestRecoverFaultTranslatesEachPanicKind(t *testing.T) {
	run := func(f func()) error {
		var err error

		func() {
			defer recoverFault(&err)
			f()
		}()

		return err
	}

	if err := run(func() {}); err != nil {
		t.Fatalf("no panic should leave err nil, got %v", err)
	}

	if err := run(func() { panic(tickAbort{}) }); err != ErrAborted {
		t.Fatalf("a tickAbort panic should translate to ErrAborted, got %v", err)
	}

	if err := run(func() { invariant(false, FaultSplitAtBlockEnd, "boom") }); err == nil {
		t.Fatalf("an invariant violation should translate to a non-nil error")
	} else if _, ok := err.(*Fault); !ok {
		t.Fatalf("expected a *Fault, got %T", err)
	}
}

func TestRecoverFaultRepanicsOnUnknownValue(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("an unrecognized panic value should be re-raised, not swallowed")
		}
	}()

	var err error

	func() {
		defer recoverFault(&err)
		panic("not a Fault or tickAbort")
	}()
}

func contains(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}

	return false
}
