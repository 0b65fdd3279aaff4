package contracts

// Attributes are grouped into three categories, one Go type per category.
// Dispatch keys off (category, concrete attribute), so the set of categories
// is closed while the set of concrete attributes within a category stays
// open: the underlying model and bridges may support attributes this package
// does not enumerate.

// ModelAttribute identifies a model- or optimizer-level attribute.
type ModelAttribute string

// Model-level attributes.
const (
	// ObjectiveFunction is the objective as a Function value.
	ObjectiveFunction ModelAttribute = "ObjectiveFunction"

	// ObjectiveSense is an OptimizationSense value.
	ObjectiveSense ModelAttribute = "ObjectiveSense"

	// ModelName is the model's display name.
	ModelName ModelAttribute = "ModelName"
)

// VariableAttribute identifies a variable-level attribute.
type VariableAttribute string

// Variable-level attributes.
const (
	VariableName        VariableAttribute = "VariableName"
	VariablePrimalStart VariableAttribute = "VariablePrimalStart"
)

// ConstraintAttribute identifies a constraint-level attribute.
type ConstraintAttribute string

// Constraint-level attributes.
const (
	ConstraintName     ConstraintAttribute = "ConstraintName"
	ConstraintFunction ConstraintAttribute = "ConstraintFunction"
	ConstraintSet      ConstraintAttribute = "ConstraintSet"

	// BridgeID reads back the identity of the bridge emulating a synthetic
	// constraint, as a uuid string. Only the bridging layer answers it.
	BridgeID ConstraintAttribute = "BridgeID"
)

// OptimizationSense is the value type of the ObjectiveSense attribute.
type OptimizationSense int

// Optimization senses.
const (
	FeasibilitySense OptimizationSense = iota
	MinSense
	MaxSense
)

// String returns the sense name.
func (s OptimizationSense) String() string {
	switch s {
	case MinSense:
		return "Min"
	case MaxSense:
		return "Max"
	default:
		return "Feasibility"
	}
}
