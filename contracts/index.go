package contracts

import "fmt"

// VariableIndex is an opaque handle to a decision variable. Nonnegative
// values refer to variables stored directly in the underlying model;
// negative values refer to synthetic variables emulated by a bridge.
type VariableIndex int64

// ConstraintIndex is an opaque handle to a constraint. The sign convention
// matches VariableIndex: negative values are synthetic.
type ConstraintIndex int64

// FunctionKind identifies the outward shape of a Function.
type FunctionKind string

// Function kinds.
const (
	FunctionVariableRef       FunctionKind = "VariableRef"
	FunctionVectorOfVariables FunctionKind = "VectorOfVariables"
	FunctionScalarAffine      FunctionKind = "ScalarAffine"
	FunctionVectorAffine      FunctionKind = "VectorAffine"
)

// SetKind identifies the shape of a Set.
type SetKind string

// Set kinds.
const (
	SetLessThan     SetKind = "LessThan"
	SetGreaterThan  SetKind = "GreaterThan"
	SetEqualTo      SetKind = "EqualTo"
	SetInterval     SetKind = "Interval"
	SetNonnegatives SetKind = "Nonnegatives"
	SetNonpositives SetKind = "Nonpositives"
	SetZeros        SetKind = "Zeros"
)

// TypeKey is a (function kind, set kind) pair. It is the unit at which the
// bridging policy operates: whether constraints are bridged is a property of
// the TypeKey, never of an individual constraint instance.
type TypeKey struct {
	Function FunctionKind
	Set      SetKind
}

// String returns the key in "Function-in-Set" form.
func (k TypeKey) String() string {
	return fmt.Sprintf("%s-in-%s", k.Function, k.Set)
}
