package contracts

import "context"

// Model is the surface of an optimization model. The underlying solver model
// implements it, and the bridging layer implements it too, so that whether a
// given (function kind, set kind) combination is bridged is invisible to
// callers except for synthetic indices being negative.
type Model interface {
	// AddVariable creates one free variable.
	AddVariable() (VariableIndex, error)

	// AddVariables creates n free variables.
	AddVariables(n int) ([]VariableIndex, error)

	// AddConstrainedVariables creates variables constrained to s on
	// creation and returns them together with the membership constraint.
	// Scalar sets produce a single variable.
	AddConstrainedVariables(s Set) ([]VariableIndex, ConstraintIndex, error)

	// AddConstraint adds the constraint f(x) in s.
	AddConstraint(f Function, s Set) (ConstraintIndex, error)

	// DeleteVariable removes a variable.
	DeleteVariable(v VariableIndex) error

	// DeleteConstraint removes a constraint.
	DeleteConstraint(c ConstraintIndex) error

	// IsValidVariable reports whether v refers to a live variable.
	IsValidVariable(v VariableIndex) bool

	// IsValidConstraint reports whether c refers to a live constraint.
	IsValidConstraint(c ConstraintIndex) bool

	// GetModelAttribute reads a model-level attribute.
	GetModelAttribute(attr ModelAttribute) (any, error)

	// SetModelAttribute writes a model-level attribute.
	SetModelAttribute(attr ModelAttribute, value any) error

	// GetVariableAttribute reads a variable-level attribute.
	GetVariableAttribute(attr VariableAttribute, v VariableIndex) (any, error)

	// SetVariableAttribute writes a variable-level attribute.
	SetVariableAttribute(attr VariableAttribute, v VariableIndex, value any) error

	// GetConstraintAttribute reads a constraint-level attribute.
	GetConstraintAttribute(attr ConstraintAttribute, c ConstraintIndex) (any, error)

	// SetConstraintAttribute writes a constraint-level attribute.
	SetConstraintAttribute(attr ConstraintAttribute, c ConstraintIndex, value any) error

	// NumberOfVariables returns the count of live variables.
	NumberOfVariables() int

	// ListVariableIndices returns the indices of live variables.
	ListVariableIndices() []VariableIndex

	// NumberOfConstraints returns the count of live constraints with the
	// given type key.
	NumberOfConstraints(key TypeKey) int

	// ListConstraintIndices returns the indices of live constraints with
	// the given type key.
	ListConstraintIndices(key TypeKey) []ConstraintIndex

	// ListConstraintTypes returns the type keys with at least one live
	// constraint.
	ListConstraintTypes() []TypeKey

	// ConstraintType returns the type key of a live constraint.
	ConstraintType(c ConstraintIndex) (TypeKey, error)

	// ConstraintByName finds a constraint of any type by name. The boolean
	// reports presence; two or more constraints sharing the name is
	// ErrAmbiguousName.
	ConstraintByName(name string) (ConstraintIndex, bool, error)

	// TypedConstraintByName finds a constraint of the given type by name.
	TypedConstraintByName(key TypeKey, name string) (ConstraintIndex, bool, error)

	// CopyFrom replaces the model contents with those of src.
	CopyFrom(src Model) error

	// Optimize runs the solver. The bridging layer forwards this call
	// opaquely.
	Optimize(ctx context.Context) error

	// Reset returns the model to its empty state.
	Reset()
}
