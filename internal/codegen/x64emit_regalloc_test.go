package codegen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/orizon-lang/orizon/internal/lir"
)

// summaryRe pulls the three counters off the "; splits=%d spills=%d
// moves=%d" line emitFuncWithRegAlloc prints per function, so assertions
// below can check the allocator's actual decisions instead of grepping the
// emitted text for incidental substrings.
var summaryRe = regexp.MustCompile(`; splits=(\d+) spills=(\d+) moves=(\d+)`)

func regallocSummary(t *testing.T, asm string) (splits, spills, moves int) {
	t.Helper()

	m := summaryRe.FindStringSubmatch(asm)
	if m == nil {
		t.Fatalf("no register allocation summary line found in:\n%s", asm)
	}

	splits, _ = strconv.Atoi(m[1])
	spills, _ = strconv.Atoi(m[2])
	moves, _ = strconv.Atoi(m[3])

	return splits, spills, moves
}

func TestX64EmitWithRegisterAllocation(t *testing.T) {
	tests := []struct {
		name         string
		function     *lir.Function
		expectedRegs []string // Expected registers to be used
		expectSpill  bool     // Whether we expect spill code
	}{
		{
			name: "simple_add_operation",
			function: &lir.Function{
				Name: "test_add",
				Blocks: []*lir.BasicBlock{
					{
						Label: "entry",
						Insns: []lir.Insn{
							lir.Mov{Src: "1", Dst: "%1"},
							lir.Mov{Src: "2", Dst: "%2"},
							lir.Add{Dst: "%3", LHS: "%1", RHS: "%2"},
							lir.Ret{Src: "%3"},
						},
					},
				},
			},
			expectedRegs: []string{"rax", "rcx", "rdx"},
			expectSpill:  false,
		},
		{
			name: "register_pressure_test",
			function: &lir.Function{
				Name: "test_pressure",
				Blocks: []*lir.BasicBlock{
					{
						Label: "entry",
						Insns: []lir.Insn{
							lir.Mov{Src: "1", Dst: "%1"},
							lir.Mov{Src: "2", Dst: "%2"},
							lir.Mov{Src: "3", Dst: "%3"},
							lir.Mov{Src: "4", Dst: "%4"},
							lir.Mov{Src: "5", Dst: "%5"},
							lir.Mov{Src: "6", Dst: "%6"},
							lir.Mov{Src: "7", Dst: "%7"},
							lir.Mov{Src: "8", Dst: "%8"},
							lir.Mov{Src: "9", Dst: "%9"},
							lir.Mov{Src: "10", Dst: "%10"},
							lir.Mov{Src: "11", Dst: "%11"},
							lir.Mov{Src: "12", Dst: "%12"},
							lir.Mov{Src: "13", Dst: "%13"}, // This should cause spilling
							lir.Add{Dst: "%14", LHS: "%1", RHS: "%13"},
							lir.Ret{Src: "%14"},
						},
					},
				},
			},
			expectedRegs: []string{"rax", "rcx", "rdx", "rbx", "r8", "r9", "r10", "r11"},
			// %2..%12 are defined but never read, so their live ranges end at
			// their own def and never compete with %1 for a register; %1 is
			// the only value actually live across the whole chain, well
			// within the 12 allocatable int registers the adapter exposes.
			expectSpill: false,
		},
		{
			name: "function_call_test",
			function: &lir.Function{
				Name: "test_call",
				Blocks: []*lir.BasicBlock{
					{
						Label: "entry",
						Insns: []lir.Insn{
							lir.Mov{Src: "42", Dst: "%1"},
							lir.Mov{Src: "24", Dst: "%2"},
							lir.Call{
								Callee:     "external_func",
								Args:       []string{"%1", "%2"},
								ArgClasses: []string{"i64", "i64"},
								Dst:        "%3",
								RetClass:   "i64",
							},
							lir.Ret{Src: "%3"},
						},
					},
				},
			},
			expectedRegs: []string{"rax", "rcx", "rdx"},
			expectSpill:  false,
		},
		{
			name: "conditional_branch_test",
			function: &lir.Function{
				Name: "test_branch",
				Blocks: []*lir.BasicBlock{
					{
						Label: "entry",
						Insns: []lir.Insn{
							lir.Mov{Src: "10", Dst: "%1"},
							lir.Mov{Src: "5", Dst: "%2"},
							lir.Cmp{Dst: "%3", LHS: "%1", RHS: "%2", Pred: "sgt"},
							lir.BrCond{Cond: "%3", True: "then", False: "else"},
						},
					},
					{
						Label: "then",
						Insns: []lir.Insn{
							lir.Mov{Src: "1", Dst: "%4"},
							lir.Br{Target: "end"},
						},
					},
					{
						Label: "else",
						Insns: []lir.Insn{
							lir.Mov{Src: "0", Dst: "%4"},
							lir.Br{Target: "end"},
						},
					},
					{
						Label: "end",
						Insns: []lir.Insn{
							lir.Ret{Src: "%4"},
						},
					},
				},
			},
			expectedRegs: []string{"rax", "rcx", "rdx"},
			expectSpill:  false,
		},
		{
			name: "memory_operations_test",
			function: &lir.Function{
				Name: "test_memory",
				Blocks: []*lir.BasicBlock{
					{
						Label: "entry",
						Insns: []lir.Insn{
							lir.Alloc{Name: "ptr", Dst: "%1"},
							lir.Mov{Src: "42", Dst: "%2"},
							lir.Store{Addr: "%1", Val: "%2"},
							lir.Load{Dst: "%3", Addr: "%1"},
							lir.Ret{Src: "%3"},
						},
					},
				},
			},
			expectedRegs: []string{"rax", "rcx", "rdx"},
			expectSpill:  false,
		},
		{
			name: "division_test",
			function: &lir.Function{
				Name: "test_div",
				Blocks: []*lir.BasicBlock{
					{
						Label: "entry",
						Insns: []lir.Insn{
							lir.Mov{Src: "100", Dst: "%1"},
							lir.Mov{Src: "5", Dst: "%2"},
							lir.Div{Dst: "%3", LHS: "%1", RHS: "%2"},
							lir.Ret{Src: "%3"},
						},
					},
				},
			},
			expectedRegs: []string{"rax", "rcx", "rdx"},
			expectSpill:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			module := &lir.Module{
				Name:      "test_module",
				Functions: []*lir.Function{tt.function},
			}

			asm, err := EmitX64WithRegisterAllocation(module)
			if err != nil {
				t.Fatalf("Failed to emit assembly: %v", err)
			}

			// Verify assembly was generated
			if asm == "" {
				t.Fatal("No assembly generated")
			}

			// Check for proper function structure
			if !strings.Contains(asm, tt.function.Name+":") {
				t.Errorf("Function label not found in assembly: %s", tt.function.Name)
			}

			if !strings.Contains(asm, "push rbp") {
				t.Error("Function prologue missing")
			}

			if !strings.Contains(asm, "pop rbp") {
				t.Error("Function epilogue missing")
			}

			if !strings.Contains(asm, "ret") {
				t.Error("Return instruction missing")
			}

			// Check for register allocation summary
			if !strings.Contains(asm, "Register Allocation Summary:") {
				t.Error("Register allocation summary missing")
			}

			// Verify expected registers are used (basic check)
			usedRegCount := 0
			for _, reg := range tt.expectedRegs {
				if strings.Contains(asm, reg) {
					usedRegCount++
				}
			}
			if usedRegCount < 2 { // At least 2 registers should be used in most tests
				t.Errorf("Expected at least 2 registers to be used, found %d", usedRegCount)
			}

			// Check spill behavior
			hasSpill := strings.Contains(asm, "[rbp-") && !strings.Contains(asm, "; unallocated")
			if tt.expectSpill && !hasSpill {
				t.Error("Expected spill code but none found")
			}
			if !tt.expectSpill && hasSpill {
				t.Error("Unexpected spill code found")
			}

			// The summary line's own spill counter should agree with the
			// textual scan above: both describe the same allocator decision,
			// just at different layers (stats.SpillsDone vs. the emitted
			// stack-slot references it produced).
			_, spills, _ := regallocSummary(t, asm)
			if tt.expectSpill && spills == 0 {
				t.Errorf("expected stats.SpillsDone > 0, got %d", spills)
			}
			if !tt.expectSpill && spills != 0 {
				t.Errorf("expected stats.SpillsDone == 0, got %d", spills)
			}

			// Print assembly for debugging (optional)
			if testing.Verbose() {
				fmt.Printf("Generated assembly for %s:\n%s\n", tt.name, asm)
			}
		})
	}
}

// TestX64EmitAcrossClobberingCall exercises ClobbersAll (builder.go's
// processInstrBackward fixed-range handling): a value held in a register
// across a call that clobbers every allocatable register of its bank must
// not simply keep that register, forcing a real split or spill around the
// call.
func TestX64EmitAcrossClobberingCall(t *testing.T) {
	function := &lir.Function{
		Name: "test_clobbering_call",
		Blocks: []*lir.BasicBlock{
			{
				Label: "entry",
				Insns: []lir.Insn{
					lir.Mov{Src: "7", Dst: "%live"},
					lir.Call{
						Callee:      "external_func",
						Args:        []string{},
						ArgClasses:  []string{},
						ClobbersAll: true,
					},
					lir.Add{Dst: "%result", LHS: "%live", RHS: "%live"},
					lir.Ret{Src: "%result"},
				},
			},
		},
	}

	module := &lir.Module{Name: "clobber_test", Functions: []*lir.Function{function}}

	asm, err := EmitX64WithRegisterAllocation(module)
	if err != nil {
		t.Fatalf("Failed to emit assembly: %v", err)
	}

	if strings.Contains(asm, "unallocated") {
		t.Errorf("value live across a clobbering call should still resolve to a real location:\n%s", asm)
	}

	splits, spills, _ := regallocSummary(t, asm)
	if splits == 0 && spills == 0 {
		t.Errorf("a value live across a call that clobbers every register should force a split or a spill, got splits=%d spills=%d", splits, spills)
	}
}

// TestX64EmitLoopCarriedValue puts a definition ahead of a loop and a use of
// it both inside the loop body and after the back edge, exercising
// extendAcrossLoop's cross-block liveness union end to end through the real
// lir adapter rather than only the regalloc package's own fakes.
func TestX64EmitLoopCarriedValue(t *testing.T) {
	function := &lir.Function{
		Name: "test_loop_carried",
		Blocks: []*lir.BasicBlock{
			{
				Label: "entry",
				Insns: []lir.Insn{
					lir.Mov{Src: "1", Dst: "%carried"},
					lir.Mov{Src: "0", Dst: "%i"},
				},
			},
			{
				Label: "header",
				Insns: []lir.Insn{
					lir.Cmp{Dst: "%cond", LHS: "%i", RHS: "10", Pred: "slt"},
					lir.BrCond{Cond: "%cond", True: "body", False: "done"},
				},
			},
			{
				Label: "body",
				Insns: []lir.Insn{
					lir.Add{Dst: "%acc", LHS: "%carried", RHS: "%i"},
					lir.Add{Dst: "%i", LHS: "%i", RHS: "1"},
					lir.Br{Target: "header"},
				},
			},
			{
				Label: "done",
				Insns: []lir.Insn{
					lir.Ret{Src: "%carried"},
				},
			},
		},
	}

	module := &lir.Module{Name: "loop_test", Functions: []*lir.Function{function}}

	asm, err := EmitX64WithRegisterAllocation(module)
	if err != nil {
		t.Fatalf("Failed to emit assembly: %v", err)
	}

	for _, label := range []string{"header:", "body:", "done:"} {
		if !strings.Contains(asm, label) {
			t.Errorf("expected block label %q in emitted assembly", label)
		}
	}

	if strings.Contains(asm, "unallocated") {
		t.Errorf("the value carried across the loop's back edge should resolve at every use:\n%s", asm)
	}
}

func TestRegisterAllocationIntegration(t *testing.T) {
	// Test integration with existing MIR to LIR pipeline
	t.Run("integration_with_pipeline", func(t *testing.T) {
		// Create a more complex function to test integration
		function := &lir.Function{
			Name: "complex_test",
			Blocks: []*lir.BasicBlock{
				{
					Label: "entry",
					Insns: []lir.Insn{
						// Setup multiple variables
						lir.Mov{Src: "1", Dst: "%a"},
						lir.Mov{Src: "2", Dst: "%b"},
						lir.Mov{Src: "3", Dst: "%c"},
						lir.Mov{Src: "4", Dst: "%d"},

						// Arithmetic operations
						lir.Add{Dst: "%e", LHS: "%a", RHS: "%b"},
						lir.Mul{Dst: "%f", LHS: "%c", RHS: "%d"},
						lir.Sub{Dst: "%g", LHS: "%e", RHS: "%f"},

						// Conditional logic
						lir.Cmp{Dst: "%h", LHS: "%g", RHS: "0", Pred: "sgt"},
						lir.BrCond{Cond: "%h", True: "positive", False: "negative"},
					},
				},
				{
					Label: "positive",
					Insns: []lir.Insn{
						lir.Mov{Src: "100", Dst: "%result"},
						lir.Br{Target: "end"},
					},
				},
				{
					Label: "negative",
					Insns: []lir.Insn{
						lir.Mov{Src: "-100", Dst: "%result"},
						lir.Br{Target: "end"},
					},
				},
				{
					Label: "end",
					Insns: []lir.Insn{
						lir.Ret{Src: "%result"},
					},
				},
			},
		}

		module := &lir.Module{
			Name:      "integration_test",
			Functions: []*lir.Function{function},
		}

		asm, err := EmitX64WithRegisterAllocation(module)
		if err != nil {
			t.Fatalf("Integration test failed: %v", err)
		}

		// Verify proper structure
		requiredStructures := []string{
			"complex_test:",
			"positive:",
			"negative:",
			"end:",
			"push rbp",
			"pop rbp",
			"ret",
		}

		for _, structure := range requiredStructures {
			if !strings.Contains(asm, structure) {
				t.Errorf("Required structure missing: %s", structure)
			}
		}

		// Verify register allocation works across blocks
		if !strings.Contains(asm, "Register Allocation Summary:") {
			t.Error("Register allocation summary missing in integration test")
		}

		// Check that we have reasonable register usage
		registerCount := 0
		for _, reg := range []string{"rax", "rcx", "rdx", "rbx", "r8", "r9", "r10", "r11"} {
			if strings.Contains(asm, reg) {
				registerCount++
			}
		}

		if registerCount < 3 {
			t.Errorf("Too few registers used (%d), allocation may not be working", registerCount)
		}

		// The join block's %result is defined independently on both arms of
		// the diamond: with only one definition live into "end" on each
		// incoming edge, the connector should not need a reconciling move
		// at all, and nothing here should have needed a spill slot.
		_, spills, _ := regallocSummary(t, asm)
		if spills != 0 {
			t.Errorf("expected no spills for this small a program, got spills=%d", spills)
		}

		if testing.Verbose() {
			fmt.Printf("Integration test assembly:\n%s\n", asm)
		}
	})
}

func TestFloatingPointRegisterAllocation(t *testing.T) {
	function := &lir.Function{
		Name: "test_float",
		Blocks: []*lir.BasicBlock{
			{
				Label: "entry",
				Insns: []lir.Insn{
					lir.Call{
						Callee:     "get_float",
						Args:       []string{},
						ArgClasses: []string{},
						Dst:        "%f1",
						RetClass:   "f64",
					},
					lir.Call{
						Callee:     "get_float",
						Args:       []string{},
						ArgClasses: []string{},
						Dst:        "%f2",
						RetClass:   "f64",
					},
					lir.Call{
						Callee:     "add_floats",
						Args:       []string{"%f1", "%f2"},
						ArgClasses: []string{"f64", "f64"},
						Dst:        "%f3",
						RetClass:   "f64",
					},
					lir.Ret{Src: "%f3"},
				},
			},
		},
	}

	module := &lir.Module{
		Name:      "float_test",
		Functions: []*lir.Function{function},
	}

	asm, err := EmitX64WithRegisterAllocation(module)
	if err != nil {
		t.Fatalf("Failed to emit floating point assembly: %v", err)
	}

	// Check for XMM register usage in calls
	if !strings.Contains(asm, "xmm") {
		t.Error("No XMM registers found in floating point assembly")
	}

	// Check for floating point calling convention
	if !strings.Contains(asm, "movq") {
		t.Error("No floating point move instructions found")
	}

	if testing.Verbose() {
		fmt.Printf("Floating point assembly:\n%s\n", asm)
	}
}

func BenchmarkRegisterAllocation(b *testing.B) {
	// Create a function with many variables to stress test register allocation
	var insns []lir.Insn

	// Create many variables
	for i := 1; i <= 50; i++ {
		insns = append(insns, lir.Mov{Src: fmt.Sprintf("%d", i), Dst: fmt.Sprintf("%%v%d", i)})
	}

	// Use them in operations
	for i := 1; i <= 25; i++ {
		insns = append(insns, lir.Add{
			Dst: fmt.Sprintf("%%r%d", i),
			LHS: fmt.Sprintf("%%v%d", i*2-1),
			RHS: fmt.Sprintf("%%v%d", i*2),
		})
	}

	// Final result
	insns = append(insns, lir.Ret{Src: "%r1"})

	function := &lir.Function{
		Name: "stress_test",
		Blocks: []*lir.BasicBlock{
			{
				Label: "entry",
				Insns: insns,
			},
		},
	}

	module := &lir.Module{
		Name:      "benchmark_test",
		Functions: []*lir.Function{function},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := EmitX64WithRegisterAllocation(module)
		if err != nil {
			b.Fatalf("Benchmark failed: %v", err)
		}
	}
}
