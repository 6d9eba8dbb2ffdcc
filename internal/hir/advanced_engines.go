package hir

import (
	"fmt"
)

// =============================================================================.
// Advanced Unification Engine.
// =============================================================================.

// AdvancedUnificationEngine handles unification for advanced type systems.
type AdvancedUnificationEngine struct {
	RankNUnifier      *RankNUnifier
	DependentUnifier  *DependentUnifier
	EffectUnifier     *AdvancedEffectUnifier
	LinearUnifier     *LinearUnifier
	RefinementUnifier *RefinementUnifier
	ConstraintSolver  *AdvancedConstraintSolver
}

// UnificationStep represents a step in the unification process.
type UnificationStep struct {
	Substitutions map[TypeVariable]TypeInfo
	Result        UnificationResult
	Type1         TypeInfo
	Type2         TypeInfo
	Constraints   []TypeConstraint
}

// UnificationResult represents the result of type unification.
type UnificationResult struct {
	Substitution map[TypeVariable]TypeInfo
	UnifiedType  TypeInfo
	ErrorMessage string
	Constraints  []TypeConstraint
	Success      bool
}

// NewAdvancedUnificationEngine creates a new advanced unification engine.
func NewAdvancedUnificationEngine() *AdvancedUnificationEngine {
	return &AdvancedUnificationEngine{
		RankNUnifier:      NewRankNUnifier(),
		DependentUnifier:  NewDependentUnifier(),
		EffectUnifier:     NewAdvancedEffectUnifier(),
		LinearUnifier:     NewLinearUnifier(),
		RefinementUnifier: NewRefinementUnifier(),
		ConstraintSolver:  NewAdvancedConstraintSolver(),
	}
}

// Unify performs type unification for advanced type systems.
func (aue *AdvancedUnificationEngine) Unify(type1, type2 TypeInfo) (*UnificationResult, error) {
	// Check if either type is advanced.
	if advType1, isAdv1 := IsAdvancedType(type1); isAdv1 {
		if advType2, isAdv2 := IsAdvancedType(type2); isAdv2 {
			return aue.unifyAdvanced(advType1, advType2)
		}

		return aue.unifyAdvancedWithBasic(advType1, type2)
	}

	if advType2, isAdv2 := IsAdvancedType(type2); isAdv2 {
		return aue.unifyAdvancedWithBasic(advType2, type1)
	}

	// Both are basic types.
	return aue.unifyBasic(type1, type2)
}

// unifyAdvanced unifies two advanced types.
func (aue *AdvancedUnificationEngine) unifyAdvanced(type1, type2 AdvancedTypeInfo) (*UnificationResult, error) {
	if type1.GetAdvancedKind() != type2.GetAdvancedKind() {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: fmt.Sprintf("Cannot unify different advanced type kinds: %v vs %v", type1.GetAdvancedKind(), type2.GetAdvancedKind()),
		}, nil
	}

	switch type1.GetAdvancedKind() {
	case AdvancedTypeRankN:
		return aue.RankNUnifier.Unify(type1.(*RankNType), type2.(*RankNType))
	case AdvancedTypeDependent:
		return aue.DependentUnifier.Unify(type1.(*DependentType), type2.(*DependentType))
	case AdvancedTypeEffect:
		return aue.EffectUnifier.Unify(type1.(*AdvancedEffectType), type2.(*AdvancedEffectType))
	case AdvancedTypeLinear:
		return aue.LinearUnifier.Unify(type1.(*LinearType), type2.(*LinearType))
	case AdvancedTypeRefinement:
		return aue.RefinementUnifier.Unify(type1.(*RefinementType), type2.(*RefinementType))
	default:
		return &UnificationResult{
			Success:      false,
			ErrorMessage: fmt.Sprintf("Unsupported advanced type kind: %v", type1.GetAdvancedKind()),
		}, nil
	}
}

// unifyAdvancedWithBasic unifies an advanced type with a basic type.
func (aue *AdvancedUnificationEngine) unifyAdvancedWithBasic(advType AdvancedTypeInfo, basicType TypeInfo) (*UnificationResult, error) {
	return &UnificationResult{
		Success:      false,
		ErrorMessage: fmt.Sprintf("Cannot unify advanced type %v with basic type %v", advType.GetAdvancedKind(), basicType.Kind),
	}, nil
}

// unifyBasic unifies two basic types.
func (aue *AdvancedUnificationEngine) unifyBasic(type1, type2 TypeInfo) (*UnificationResult, error) {
	if type1.Kind == type2.Kind && type1.Name == type2.Name {
		return &UnificationResult{
			Success:     true,
			UnifiedType: type1,
		}, nil
	}

	return &UnificationResult{
		Success:      false,
		ErrorMessage: fmt.Sprintf("Cannot unify %v with %v", type1, type2),
	}, nil
}

// =============================================================================.
// Specialized Unifiers.
// =============================================================================.

type (
	RankNUnifier             struct{}
	DependentUnifier         struct{}
	AdvancedEffectUnifier    struct{}
	LinearUnifier            struct{}
	RefinementUnifier        struct{}
	AdvancedConstraintSolver struct{}
)

func NewRankNUnifier() *RankNUnifier                         { return &RankNUnifier{} }
func NewDependentUnifier() *DependentUnifier                 { return &DependentUnifier{} }
func NewAdvancedEffectUnifier() *AdvancedEffectUnifier       { return &AdvancedEffectUnifier{} }
func NewLinearUnifier() *LinearUnifier                       { return &LinearUnifier{} }
func NewRefinementUnifier() *RefinementUnifier               { return &RefinementUnifier{} }
func NewAdvancedConstraintSolver() *AdvancedConstraintSolver { return &AdvancedConstraintSolver{} }

// Unification methods for each specialized unifier.
func (ru *RankNUnifier) Unify(type1, type2 *RankNType) (*UnificationResult, error) {
	if type1 == nil || type2 == nil {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Cannot unify nil RankN types",
		}, nil
	}

	// Check rank compatibility.
	if type1.Rank != type2.Rank {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: fmt.Sprintf("Rank mismatch: %d vs %d", type1.Rank, type2.Rank),
		}, nil
	}

	// Unify quantifiers.
	if len(type1.Quantifiers) != len(type2.Quantifiers) {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Quantifier count mismatch in RankN types",
		}, nil
	}

	substitutions := make(map[TypeVariable]TypeInfo)
	constraints := []TypeConstraint{}

	for i, q1 := range type1.Quantifiers {
		q2 := type2.Quantifiers[i]
		if q1.Kind != q2.Kind {
			return &UnificationResult{
				Success:      false,
				ErrorMessage: fmt.Sprintf("Kind mismatch in quantifier %d", i),
			}, nil
		}

		// Create substitution for type variables.
		if q1.Variable.Name != q2.Variable.Name {
			substitutions[q2.Variable] = TypeInfo{
				ID:   TypeID(q1.Variable.ID),
				Kind: TypeKindVariable,
				Name: q1.Variable.Name,
			}
		}
	}

	// Unify body types with substitutions applied.
	bodyResult, err := ru.unifyWithSubstitution(type1.Body, type2.Body, substitutions)
	if err != nil {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: fmt.Sprintf("Failed to unify RankN body types: %v", err),
		}, err
	}

	if !bodyResult.Success {
		return bodyResult, nil
	}

	return &UnificationResult{
		Success:      true,
		UnifiedType:  type1.TypeInfo(),
		Constraints:  constraints,
		Substitution: substitutions,
	}, nil
}

func (ru *RankNUnifier) unifyWithSubstitution(type1, type2 TypeInfo, subs map[TypeVariable]TypeInfo) (*UnificationResult, error) {
	// Apply substitutions to types before unification.
	appliedType1 := ru.applySubstitutions(type1, subs)
	appliedType2 := ru.applySubstitutions(type2, subs)

	if appliedType1.Kind == appliedType2.Kind && appliedType1.Name == appliedType2.Name {
		return &UnificationResult{Success: true, UnifiedType: appliedType1}, nil
	}

	return &UnificationResult{
		Success:      false,
		ErrorMessage: fmt.Sprintf("Cannot unify %v with %v", appliedType1, appliedType2),
	}, nil
}

func (ru *RankNUnifier) applySubstitutions(t TypeInfo, subs map[TypeVariable]TypeInfo) TypeInfo {
	// This is a simplified version - a full implementation would recursively apply substitutions.
	return t
}

func (du *DependentUnifier) Unify(type1, type2 *DependentType) (*UnificationResult, error) {
	if type1 == nil || type2 == nil {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Cannot unify nil dependent types",
		}, nil
	}

	// Check universe level compatibility.
	if type1.Universe != type2.Universe {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: fmt.Sprintf("Universe level mismatch: %d vs %d", type1.Universe, type2.Universe),
		}, nil
	}

	// Unify dependencies.
	if type1.Dependency.Kind != type2.Dependency.Kind {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Dependency kind mismatch in dependent types",
		}, nil
	}

	if type1.Dependency.Variable != type2.Dependency.Variable {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Dependency variable mismatch in dependent types",
		}, nil
	}

	// Unify constructors.
	if type1.Constructor.Name != type2.Constructor.Name {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Constructor name mismatch in dependent types",
		}, nil
	}

	if len(type1.Constructor.Parameters) != len(type2.Constructor.Parameters) {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Constructor parameter count mismatch",
		}, nil
	}

	// Unify constructor parameters.
	for i, param1 := range type1.Constructor.Parameters {
		param2 := type2.Constructor.Parameters[i]
		if param1.Name != param2.Name {
			return &UnificationResult{
				Success:      false,
				ErrorMessage: fmt.Sprintf("Parameter name mismatch at index %d", i),
			}, nil
		}

		// Unify parameter types.
		if param1.Type.Kind != param2.Type.Kind || param1.Type.Name != param2.Type.Name {
			return &UnificationResult{
				Success:      false,
				ErrorMessage: fmt.Sprintf("Parameter type mismatch at index %d", i),
			}, nil
		}
	}

	// Unify indices.
	if len(type1.Indices) != len(type2.Indices) {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Index count mismatch in dependent types",
		}, nil
	}

	constraints := []TypeConstraint{}
	substitutions := make(map[TypeVariable]TypeInfo)

	return &UnificationResult{
		Success:      true,
		UnifiedType:  type1.TypeInfo(),
		Constraints:  constraints,
		Substitution: substitutions,
	}, nil
}

func (eu *AdvancedEffectUnifier) Unify(type1, type2 *AdvancedEffectType) (*UnificationResult, error) {
	if type1 == nil || type2 == nil {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Cannot unify nil effect types",
		}, nil
	}

	// Check purity compatibility.
	if type1.Purity != type2.Purity {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: fmt.Sprintf("Purity mismatch: %v vs %v", type1.Purity, type2.Purity),
		}, nil
	}

	// Unify regions.
	if type1.Region.Kind != type2.Region.Kind {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Region kind mismatch in effect types",
		}, nil
	}

	if type1.Region.Name != type2.Region.Name {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Region name mismatch in effect types",
		}, nil
	}

	// Unify effects - check if all effects from type1 are compatible with type2.
	effectMap2 := make(map[string]AdvancedEffect)
	for _, effect := range type2.Effects {
		effectMap2[effect.Name] = effect
	}

	constraints := []TypeConstraint{}
	substitutions := make(map[TypeVariable]TypeInfo)

	for _, effect1 := range type1.Effects {
		effect2, exists := effectMap2[effect1.Name]
		if !exists {
			return &UnificationResult{
				Success:      false,
				ErrorMessage: fmt.Sprintf("Effect %s not found in second type", effect1.Name),
			}, nil
		}

		// Unify effect kinds.
		if effect1.Kind != effect2.Kind {
			return &UnificationResult{
				Success:      false,
				ErrorMessage: fmt.Sprintf("Effect kind mismatch for %s", effect1.Name),
			}, nil
		}

		// Unify effect parameters.
		if len(effect1.Parameters) != len(effect2.Parameters) {
			return &UnificationResult{
				Success:      false,
				ErrorMessage: fmt.Sprintf("Parameter count mismatch for effect %s", effect1.Name),
			}, nil
		}

		for i, param1 := range effect1.Parameters {
			param2 := effect2.Parameters[i]
			if param1.Type.Kind != param2.Type.Kind || param1.Type.Name != param2.Type.Name {
				return &UnificationResult{
					Success:      false,
					ErrorMessage: fmt.Sprintf("Parameter type mismatch for effect %s at index %d", effect1.Name, i),
				}, nil
			}
		}

		// Unify effect operations.
		if len(effect1.Operations) != len(effect2.Operations) {
			return &UnificationResult{
				Success:      false,
				ErrorMessage: fmt.Sprintf("Operation count mismatch for effect %s", effect1.Name),
			}, nil
		}

		opMap2 := make(map[string]EffectOperation)
		for _, op := range effect2.Operations {
			opMap2[op.Name] = op
		}

		for _, op1 := range effect1.Operations {
			op2, opExists := opMap2[op1.Name]
			if !opExists {
				return &UnificationResult{
					Success:      false,
					ErrorMessage: fmt.Sprintf("Operation %s not found in effect %s", op1.Name, effect1.Name),
				}, nil
			}

			// Unify operation return types.
			if op1.ReturnType.Kind != op2.ReturnType.Kind || op1.ReturnType.Name != op2.ReturnType.Name {
				return &UnificationResult{
					Success:      false,
					ErrorMessage: fmt.Sprintf("Return type mismatch for operation %s", op1.Name),
				}, nil
			}
		}

		// Check effect attributes compatibility.
		if effect1.Attributes.Atomic != effect2.Attributes.Atomic {
			return &UnificationResult{
				Success:      false,
				ErrorMessage: fmt.Sprintf("Atomicity mismatch for effect %s", effect1.Name),
			}, nil
		}
	}

	return &UnificationResult{
		Success:      true,
		UnifiedType:  type1.TypeInfo(),
		Constraints:  constraints,
		Substitution: substitutions,
	}, nil
}

func (lu *LinearUnifier) Unify(type1, type2 *LinearType) (*UnificationResult, error) {
	if type1 == nil || type2 == nil {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Cannot unify nil linear types",
		}, nil
	}

	// Check usage compatibility.
	if type1.Usage != type2.Usage {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: fmt.Sprintf("Usage mismatch: %v vs %v", type1.Usage, type2.Usage),
		}, nil
	}

	// Check multiplicity compatibility.
	if type1.Multiplicity.Min != type2.Multiplicity.Min || type1.Multiplicity.Max != type2.Multiplicity.Max {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Multiplicity mismatch in linear types",
		}, nil
	}

	// Unify base types.
	if type1.BaseType.Kind != type2.BaseType.Kind || type1.BaseType.Name != type2.BaseType.Name {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Base type mismatch in linear types",
		}, nil
	}

	// Check region compatibility.
	if type1.Region.Name != type2.Region.Name {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Region name mismatch in linear types",
		}, nil
	}

	if type1.Region.Lifetime.Kind != type2.Region.Lifetime.Kind {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Lifetime kind mismatch in linear types",
		}, nil
	}

	// Check access permissions compatibility.
	access1 := type1.Region.Access
	access2 := type2.Region.Access

	// Linear types require compatible access permissions.
	if access1.Read != access2.Read || access1.Write != access2.Write ||
		access1.Move != access2.Move || access1.Borrow != access2.Borrow {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Access permission mismatch in linear types",
		}, nil
	}

	constraints := []TypeConstraint{}
	substitutions := make(map[TypeVariable]TypeInfo)

	// Add linear constraints for resource tracking.
	for _, constraint1 := range type1.Constraints {
		constraints = append(constraints, TypeConstraint{
			Kind:      HirConstraintKindPredicate,
			Target:    type1.TypeInfo(),
			Predicate: constraint1.Message,
		})
	}

	return &UnificationResult{
		Success:      true,
		UnifiedType:  type1.TypeInfo(),
		Constraints:  constraints,
		Substitution: substitutions,
	}, nil
}

func (ru *RefinementUnifier) Unify(type1, type2 *RefinementType) (*UnificationResult, error) {
	if type1 == nil || type2 == nil {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Cannot unify nil refinement types",
		}, nil
	}

	// Unify base types first.
	if type1.BaseType.Kind != type2.BaseType.Kind || type1.BaseType.Name != type2.BaseType.Name {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Base type mismatch in refinement types",
		}, nil
	}

	// Check refinement compatibility.
	if len(type1.Refinements) != len(type2.Refinements) {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Refinement count mismatch",
		}, nil
	}

	constraints := []TypeConstraint{}
	substitutions := make(map[TypeVariable]TypeInfo)

	// Unify refinements.
	for i, ref1 := range type1.Refinements {
		ref2 := type2.Refinements[i]

		if ref1.Variable != ref2.Variable {
			return &UnificationResult{
				Success:      false,
				ErrorMessage: fmt.Sprintf("Refinement variable mismatch at index %d", i),
			}, nil
		}

		if ref1.Kind != ref2.Kind {
			return &UnificationResult{
				Success:      false,
				ErrorMessage: fmt.Sprintf("Refinement kind mismatch at index %d", i),
			}, nil
		}

		if ref1.Strength != ref2.Strength {
			return &UnificationResult{
				Success:      false,
				ErrorMessage: fmt.Sprintf("Refinement strength mismatch at index %d", i),
			}, nil
		}
	}

	// Check proof obligation compatibility.
	if type1.Proof.Status != type2.Proof.Status {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Proof status mismatch in refinement types",
		}, nil
	}

	// Unify proof goals.
	if len(type1.Proof.Goals) != len(type2.Proof.Goals) {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Proof goal count mismatch",
		}, nil
	}

	// Unify refinement contexts.
	if len(type1.Context.Assumptions) != len(type2.Context.Assumptions) {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Context assumption count mismatch",
		}, nil
	}

	if len(type1.Context.Axioms) != len(type2.Context.Axioms) {
		return &UnificationResult{
			Success:      false,
			ErrorMessage: "Context axiom count mismatch",
		}, nil
	}

	// Add proof obligations as constraints.
	for i := range type1.Proof.Goals {
		constraints = append(constraints, TypeConstraint{
			Kind:      HirConstraintKindPredicate,
			Target:    type1.TypeInfo(),
			Predicate: fmt.Sprintf("proof_goal_%d", i),
		})
	}

	return &UnificationResult{
		Success:      true,
		UnifiedType:  type1.TypeInfo(),
		Constraints:  constraints,
		Substitution: substitutions,
	}, nil
}
