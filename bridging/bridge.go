package bridging

import (
	"fmt"

	"github.com/optlayer/bridgekit-go/contracts"
)

// ConstraintBridge emulates one constraint by owning zero or more real
// entities in the underlying model. The core holds bridges only behind this
// interface; adding a new reformulation requires no change to the core.
type ConstraintBridge interface {
	// Function returns the constraint function as the caller wrote it
	// (after variable substitution, which happens before construction).
	Function() contracts.Function

	// Set returns the set as the caller wrote it.
	Set() contracts.Set

	// SetFunction replaces the constraint function. The argument has
	// already been through variable substitution.
	SetFunction(f contracts.Function) error

	// SetSet replaces the constraint set.
	SetSet(s contracts.Set) error

	// GetAttribute reads a constraint attribute other than the ones the
	// layer answers itself (name, function, set).
	GetAttribute(attr contracts.ConstraintAttribute) (any, error)

	// SetAttribute writes a constraint attribute.
	SetAttribute(attr contracts.ConstraintAttribute, value any) error

	// NumberOfOwned reports how many real constraints of the given type
	// the bridge created in the underlying model to implement itself.
	// Required by the reconciliation pass that hides plumbing.
	NumberOfOwned(key contracts.TypeKey) int

	// OwnedConstraints lists the real constraints of the given type the
	// bridge created for itself.
	OwnedConstraints(key contracts.TypeKey) []contracts.ConstraintIndex

	// OwnedVariables lists the real variables the bridge created for
	// itself.
	OwnedVariables() []contracts.VariableIndex

	// Delete removes everything the bridge owns from the underlying model.
	Delete() error
}

// VariableBridge emulates a block of variables constrained to a set on
// creation. Slot i of the block corresponds to the i-th synthetic variable
// index handed to the caller.
type VariableBridge interface {
	// NumVariables returns the block size.
	NumVariables() int

	// Set returns the set the virtual block is constrained to.
	Set() contracts.Set

	// DefiningFunction returns the expression, over real variables, that
	// slot i of the block stands for. The substitution engine inlines it
	// wherever the synthetic variable appears.
	DefiningFunction(slot int) (contracts.Function, error)

	// GetAttribute reads a variable attribute for one slot.
	GetAttribute(attr contracts.VariableAttribute, slot int) (any, error)

	// SetAttribute writes a variable attribute for one slot.
	SetAttribute(attr contracts.VariableAttribute, slot int, value any) error

	// NumberOfOwned reports how many real constraints of the given type
	// the bridge created in the underlying model to implement itself.
	NumberOfOwned(key contracts.TypeKey) int

	// OwnedConstraints lists the real constraints of the given type the
	// bridge created for itself.
	OwnedConstraints(key contracts.TypeKey) []contracts.ConstraintIndex

	// OwnedVariables lists the real variables the bridge created for
	// itself.
	OwnedVariables() []contracts.VariableIndex

	// Delete removes everything the bridge owns from the underlying model.
	Delete() error
}

// ConstraintBridgeFactory constructs a bridge for f-in-s against the given
// model. Construction is the point where real backing entities are created;
// a factory that fails must not leave partial state behind.
type ConstraintBridgeFactory func(model contracts.Model, f contracts.Function, s contracts.Set) (ConstraintBridge, error)

// VariableBridgeFactory constructs a bridge realizing a block of variables
// constrained to s.
type VariableBridgeFactory func(model contracts.Model, s contracts.Set) (VariableBridge, error)

// Resolver maps combinations to concrete bridge factories. Resolution is a
// pure lookup and happens strictly before construction, so a miss never
// mutates anything.
type Resolver struct {
	constraints map[contracts.TypeKey]ConstraintBridgeFactory
	variables   map[contracts.SetKind]VariableBridgeFactory
}

// NewResolver returns an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{
		constraints: make(map[contracts.TypeKey]ConstraintBridgeFactory),
		variables:   make(map[contracts.SetKind]VariableBridgeFactory),
	}
}

// RegisterConstraintBridge installs a factory for a constraint type key.
func (r *Resolver) RegisterConstraintBridge(key contracts.TypeKey, factory ConstraintBridgeFactory) {
	r.constraints[key] = factory
}

// RegisterVariableBridge installs a factory for a constrained-variable set
// kind.
func (r *Resolver) RegisterVariableBridge(kind contracts.SetKind, factory VariableBridgeFactory) {
	r.variables[kind] = factory
}

func (r *Resolver) constraintFactory(key contracts.TypeKey) (ConstraintBridgeFactory, error) {
	factory, ok := r.constraints[key]
	if !ok {
		return nil, fmt.Errorf("no bridge resolves for %s: %w", key, contracts.ErrUnsupportedConstraint)
	}
	return factory, nil
}

func (r *Resolver) variableFactory(kind contracts.SetKind) (VariableBridgeFactory, error) {
	factory, ok := r.variables[kind]
	if !ok {
		return nil, fmt.Errorf("no variable bridge resolves for %s: %w", kind, contracts.ErrUnsupportedConstraint)
	}
	return factory, nil
}

// blockConstraint adapts a VariableBridge into the ConstraintBridge shape so
// the membership constraint of a bridged variable block can live in the
// constraint registry like any other synthetic constraint.
type blockConstraint struct {
	bridge  VariableBridge
	indices []contracts.VariableIndex
}

func newBlockConstraint(bridge VariableBridge, indices []contracts.VariableIndex) *blockConstraint {
	return &blockConstraint{bridge: bridge, indices: indices}
}

func (b *blockConstraint) Function() contracts.Function {
	vars := make([]contracts.VariableIndex, len(b.indices))
	copy(vars, b.indices)
	if len(vars) == 1 && !contracts.IsVectorSetKind(b.bridge.Set().Kind()) {
		return contracts.VariableRef{Variable: vars[0]}
	}
	return contracts.VectorOfVariables{Variables: vars}
}

func (b *blockConstraint) Set() contracts.Set { return b.bridge.Set() }

func (b *blockConstraint) SetFunction(contracts.Function) error {
	return fmt.Errorf("the membership constraint of a bridged variable block is fixed: %w", contracts.ErrUnsupportedAttribute)
}

func (b *blockConstraint) SetSet(contracts.Set) error {
	return fmt.Errorf("the membership constraint of a bridged variable block is fixed: %w", contracts.ErrUnsupportedAttribute)
}

func (b *blockConstraint) GetAttribute(attr contracts.ConstraintAttribute) (any, error) {
	return nil, fmt.Errorf("get %s on variable block membership constraint: %w", attr, contracts.ErrUnsupportedAttribute)
}

func (b *blockConstraint) SetAttribute(attr contracts.ConstraintAttribute, _ any) error {
	return fmt.Errorf("set %s on variable block membership constraint: %w", attr, contracts.ErrUnsupportedAttribute)
}

// Owned entities are reported by the underlying VariableBridge, which the
// reconciliation pass already visits. Reporting them here too would subtract
// the plumbing twice.
func (b *blockConstraint) NumberOfOwned(contracts.TypeKey) int { return 0 }

func (b *blockConstraint) OwnedConstraints(contracts.TypeKey) []contracts.ConstraintIndex {
	return nil
}

func (b *blockConstraint) OwnedVariables() []contracts.VariableIndex { return nil }

// Delete is handled through the variable registry, which owns the cascade.
func (b *blockConstraint) Delete() error { return b.bridge.Delete() }
