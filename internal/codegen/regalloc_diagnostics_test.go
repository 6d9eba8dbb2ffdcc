package codegen

import (
	"strings"
	"testing"

	"github.com/orizon-lang/orizon/internal/codegen/regalloc"
	"github.com/orizon-lang/orizon/internal/diagnostics"
	"github.com/orizon-lang/orizon/internal/lir"
)

func TestRegallocUseWithoutDefinitionDiagnostic(t *testing.T) {
	err := &regalloc.UseWithoutDefinitionError{
		VRegs: []regalloc.VReg{
			{ID: 3, Kind: regalloc.RegKindInt},
			{ID: 7, Kind: regalloc.RegKindInt},
		},
	}

	diag := RegallocUseWithoutDefinitionDiagnostic("my_func", err)

	if diag.Level != diagnostics.DiagnosticError {
		t.Fatalf("expected error level, got %v", diag.Level)
	}

	if diag.Category != diagnostics.CategoryRegalloc {
		t.Fatalf("expected CategoryRegalloc, got %v", diag.Category)
	}

	if !strings.Contains(diag.Message, "my_func") {
		t.Fatalf("expected message to name the function, got %q", diag.Message)
	}

	if !strings.Contains(diag.Message, "2 virtual register") {
		t.Fatalf("expected message to count the vregs, got %q", diag.Message)
	}

	if !strings.Contains(diag.Explanation, "v3") || !strings.Contains(diag.Explanation, "v7") {
		t.Fatalf("expected explanation to list the offending vregs, got %q", diag.Explanation)
	}
}

func TestEmitX64WithRegisterAllocationTracedInvokesTracer(t *testing.T) {
	mod := &lir.Module{
		Name: "trace_mod",
		Functions: []*lir.Function{
			{
				Name: "trace_fn",
				Blocks: []*lir.BasicBlock{
					{
						Label: "entry",
						Insns: []lir.Insn{
							lir.Mov{Src: "1", Dst: "%1"},
							lir.Ret{Src: "%1"},
						},
					},
				},
			},
		},
	}

	var events []string
	tracer := regalloc.WriterTracer{Write: func(s string) { events = append(events, s) }}

	asmTraced, err := EmitX64WithRegisterAllocationTraced(mod, tracer)
	if err != nil {
		t.Fatalf("traced emission failed: %v", err)
	}

	asmUntraced, err := EmitX64WithRegisterAllocation(mod)
	if err != nil {
		t.Fatalf("untraced emission failed: %v", err)
	}

	if asmTraced != asmUntraced {
		t.Fatalf("expected a tracer to leave emitted assembly unchanged\ntraced:\n%s\nuntraced:\n%s", asmTraced, asmUntraced)
	}
}
