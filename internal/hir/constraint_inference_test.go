// Test suite for constraint inference in HIR (High-level Intermediate Representation).
// This module provides testing for constraint-based type inference at the HIR level.

package hir

import (
	"testing"
)

// TestBasicConstraintInference tests basic constraint inference functionality.
func TestBasicConstraintInference(t *testing.T) {
	// This is a placeholder test for HIR constraint inference.
	// In a complete implementation, this would test the constraint inference.
	// engine that works with HIR nodes to generate type constraints.
	// For now, we just test that the test runs without error.
	t.Log("Basic constraint inference test placeholder")
	// Example of what this might test in a full implementation:.
	// 1. Create HIR nodes representing expressions
	// 2. Run constraint inference on these nodes
	// 3. Verify that appropriate constraints are generated
	// 4. Check that the constraints can be solved correctly
}

// TestVariableConstraintInference tests constraint inference for variables.
func TestVariableConstraintInference(t *testing.T) {
	// Placeholder for variable constraint inference testing.
	t.Log("Variable constraint inference test placeholder")
	// This would test:.
	// - Variable declarations and their type constraints.
	// - Variable usage and constraint propagation.
	// - Multiple variable interactions.
}

// TestFunctionConstraintInference tests constraint inference for function calls.
func TestFunctionConstraintInference(t *testing.T) {
	// Placeholder for function constraint inference testing.
	t.Log("Function constraint inference test placeholder")
	// This would test:.
	// - Function call constraint generation.
	// - Parameter type constraint matching.
	// - Return type constraint inference.
	// - Generic function instantiation constraints.
}

// TestComplexExpressionInference tests constraint inference for complex expressions.
func TestComplexExpressionInference(t *testing.T) {
	// Placeholder for complex expression inference testing.
	t.Log("Complex expression constraint inference test placeholder")
	// This would test:.
	// - Nested expression constraint generation.
	// - Operator overloading constraints.
	// - Type coercion constraints.
	// - Error propagation in constraint inference.
}

// TestPolymorphicInference tests constraint inference for polymorphic types.
func TestPolymorphicInference(t *testing.T) {
	// Placeholder for polymorphic type inference testing.
	t.Log("Polymorphic constraint inference test placeholder")
	// This would test:.
	// - Generic type parameter constraints.
	// - Trait/interface constraint generation
	// - Variance constraint handling.
	// - Higher-kinded type constraints.
}

// TestEffectConstraintInference tests constraint inference for effect types.
func TestEffectConstraintInference(t *testing.T) {
	// Placeholder for effect constraint inference testing.
	t.Log("Effect constraint inference test placeholder")
	// This would test:.
	// - Effect type constraint generation.
	// - Effect composition constraints.
	// - Effect handler constraint matching.
	// - Effect polymorphism constraints.
}

// TestConstraintSolvingIntegration tests integration with constraint solving.
func TestConstraintSolvingIntegration(t *testing.T) {
	// Placeholder for constraint solving integration testing.
	t.Log("Constraint solving integration test placeholder")
	// This would test:.
	// - End-to-end constraint inference and solving.
	// - Error reporting for unsolvable constraints.
	// - Performance of constraint solving.
	// - Incremental constraint solving.
}
