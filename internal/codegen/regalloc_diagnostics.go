package codegen

import (
	"fmt"
	"strings"

	"github.com/orizon-lang/orizon/internal/codegen/regalloc"
	"github.com/orizon-lang/orizon/internal/diagnostics"
	"github.com/orizon-lang/orizon/internal/position"
)

// RegallocUseWithoutDefinitionDiagnostic converts the allocator's
// UseWithoutDefinitionError (spec.md §7: "detected by a post-build scan of
// the entry block's live-in set... reported to the embedder, which may
// choose to bail out") into a diagnostics.Diagnostic, the same reporting
// channel internal/diagnostics already gives parser/type errors. The
// allocator itself never imports internal/diagnostics (spec.md §6: the
// core is a library pass with no persisted/CLI state of its own); this
// conversion is owned by the codegen layer that embeds it, mirroring
// builder.go's UndefinedVariableError/TypeMismatchError constructors.
//
// regalloc has no source-position model (it operates over LifetimePosition,
// an instruction-index axis, not source spans), so the span is reported as
// the zero value; the function name is folded into the message instead.
func RegallocUseWithoutDefinitionDiagnostic(funcName string, err *regalloc.UseWithoutDefinitionError) diagnostics.Diagnostic {
	names := make([]string, 0, len(err.VRegs))
	for _, v := range err.VRegs {
		names = append(names, fmt.Sprintf("v%d", v.ID))
	}

	return diagnostics.NewDiagnosticBuilder().
		Error().
		WithCode("R001").
		WithCategory(diagnostics.CategoryRegalloc).
		WithMessagef("function %q: %d virtual register(s) live-in at entry without a definition", funcName, len(err.VRegs)).
		WithSpan(position.Span{}).
		WithExplanationf("Register allocation requires every virtual register read at a function's entry to have reached it from a definition; %s appear live without one, which indicates a bug earlier in the lowering pipeline.", strings.Join(names, ", ")).
		Build()
}
