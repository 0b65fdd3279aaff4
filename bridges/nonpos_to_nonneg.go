package bridges

import (
	"fmt"

	"github.com/optlayer/bridgekit-go/bridging"
	"github.com/optlayer/bridgekit-go/contracts"
)

// nonnegKey is the combination the reflection produces in the underlying
// model.
var nonnegKey = contracts.TypeKey{
	Function: contracts.FunctionVectorOfVariables,
	Set:      contracts.SetNonnegatives,
}

// nonposToNonneg realizes a block of variables constrained to Nonpositives
// through real variables constrained to Nonnegatives. Slot i of the block
// stands for -y[i].
type nonposToNonneg struct {
	model   contracts.Model
	set     contracts.Nonpositives
	reals   []contracts.VariableIndex
	backing contracts.ConstraintIndex
}

// NewNonposToNonneg bridges constrained-variable addition in Nonpositives by
// reflecting the cone into Nonnegatives.
func NewNonposToNonneg(model contracts.Model, s contracts.Set) (bridging.VariableBridge, error) {
	np, ok := s.(contracts.Nonpositives)
	if !ok {
		return nil, fmt.Errorf("bridges: NonposToNonneg needs a Nonpositives set, got %s: %w",
			s.Kind(), contracts.ErrUnsupportedConstraint)
	}
	reals, backing, err := model.AddConstrainedVariables(contracts.Nonnegatives{Dim: np.Dim})
	if err != nil {
		return nil, err
	}
	return &nonposToNonneg{model: model, set: np, reals: reals, backing: backing}, nil
}

func (b *nonposToNonneg) NumVariables() int { return b.set.Dim }

func (b *nonposToNonneg) Set() contracts.Set { return b.set }

func (b *nonposToNonneg) DefiningFunction(slot int) (contracts.Function, error) {
	if slot < 0 || slot >= len(b.reals) {
		return nil, fmt.Errorf("slot %d of a block of %d: %w", slot, len(b.reals), contracts.ErrInvalidIndex)
	}
	return contracts.NewScalarAffineFunc(0, contracts.ScalarAffineTerm{
		Coefficient: -1,
		Variable:    b.reals[slot],
	}), nil
}

// GetAttribute forwards to the real variable backing the slot. Value-like
// attributes are reflected through the negation; the name passes unchanged.
func (b *nonposToNonneg) GetAttribute(attr contracts.VariableAttribute, slot int) (any, error) {
	if slot < 0 || slot >= len(b.reals) {
		return nil, fmt.Errorf("slot %d of a block of %d: %w", slot, len(b.reals), contracts.ErrInvalidIndex)
	}
	value, err := b.model.GetVariableAttribute(attr, b.reals[slot])
	if err != nil {
		return nil, err
	}
	if attr == contracts.VariablePrimalStart {
		if start, ok := value.(float64); ok {
			return -start, nil
		}
	}
	return value, nil
}

func (b *nonposToNonneg) SetAttribute(attr contracts.VariableAttribute, slot int, value any) error {
	if slot < 0 || slot >= len(b.reals) {
		return fmt.Errorf("slot %d of a block of %d: %w", slot, len(b.reals), contracts.ErrInvalidIndex)
	}
	if attr == contracts.VariablePrimalStart {
		if start, ok := value.(float64); ok {
			value = -start
		}
	}
	return b.model.SetVariableAttribute(attr, b.reals[slot], value)
}

func (b *nonposToNonneg) NumberOfOwned(key contracts.TypeKey) int {
	if key == nonnegKey {
		return 1
	}
	return 0
}

func (b *nonposToNonneg) OwnedConstraints(key contracts.TypeKey) []contracts.ConstraintIndex {
	if key == nonnegKey {
		return []contracts.ConstraintIndex{b.backing}
	}
	return nil
}

func (b *nonposToNonneg) OwnedVariables() []contracts.VariableIndex {
	out := make([]contracts.VariableIndex, len(b.reals))
	copy(out, b.reals)
	return out
}

func (b *nonposToNonneg) Delete() error {
	if err := b.model.DeleteConstraint(b.backing); err != nil {
		return err
	}
	for _, v := range b.reals {
		if err := b.model.DeleteVariable(v); err != nil {
			return err
		}
	}
	return nil
}
