package bridges

import (
	"fmt"

	"github.com/optlayer/bridgekit-go/bridging"
	"github.com/optlayer/bridgekit-go/contracts"
)

// GreaterToLessKey is the combination NewGreaterToLess reformulates.
var GreaterToLessKey = contracts.TypeKey{
	Function: contracts.FunctionScalarAffine,
	Set:      contracts.SetGreaterThan,
}

// lessKey is the combination the reformulation produces in the underlying
// model.
var lessKey = contracts.TypeKey{
	Function: contracts.FunctionScalarAffine,
	Set:      contracts.SetLessThan,
}

// greaterToLess stores f >= l as -f <= -l. Callers reading the constraint
// back see the original orientation.
type greaterToLess struct {
	model    contracts.Model
	function contracts.ScalarAffineFunc
	set      contracts.GreaterThan
	backing  contracts.ConstraintIndex
}

// NewGreaterToLess bridges a (ScalarAffine, GreaterThan) constraint by
// adding the negated inequality as (ScalarAffine, LessThan) to the model.
func NewGreaterToLess(model contracts.Model, f contracts.Function, s contracts.Set) (bridging.ConstraintBridge, error) {
	affine, ok := f.(contracts.ScalarAffineFunc)
	if !ok {
		return nil, fmt.Errorf("bridges: GreaterToLess needs a scalar affine function, got %s: %w",
			f.Kind(), contracts.ErrUnsupportedConstraint)
	}
	gt, ok := s.(contracts.GreaterThan)
	if !ok {
		return nil, fmt.Errorf("bridges: GreaterToLess needs a GreaterThan set, got %s: %w",
			s.Kind(), contracts.ErrUnsupportedConstraint)
	}
	backing, err := model.AddConstraint(negate(affine), contracts.LessThan{Upper: -gt.Lower})
	if err != nil {
		return nil, err
	}
	return &greaterToLess{
		model:    model,
		function: affine.CloneFunction().(contracts.ScalarAffineFunc),
		set:      gt,
		backing:  backing,
	}, nil
}

func (b *greaterToLess) Function() contracts.Function {
	return b.function.CloneFunction()
}

func (b *greaterToLess) Set() contracts.Set { return b.set }

func (b *greaterToLess) SetFunction(f contracts.Function) error {
	affine, ok := f.(contracts.ScalarAffineFunc)
	if !ok {
		return fmt.Errorf("bridges: GreaterToLess needs a scalar affine function, got %s: %w",
			f.Kind(), contracts.ErrUnsupportedConstraint)
	}
	if err := b.model.SetConstraintAttribute(contracts.ConstraintFunction, b.backing, negate(affine)); err != nil {
		return err
	}
	b.function = affine.CloneFunction().(contracts.ScalarAffineFunc)
	return nil
}

func (b *greaterToLess) SetSet(s contracts.Set) error {
	gt, ok := s.(contracts.GreaterThan)
	if !ok {
		return fmt.Errorf("bridges: GreaterToLess needs a GreaterThan set, got %s: %w",
			s.Kind(), contracts.ErrUnsupportedConstraint)
	}
	if err := b.model.SetConstraintAttribute(contracts.ConstraintSet, b.backing, contracts.LessThan{Upper: -gt.Lower}); err != nil {
		return err
	}
	b.set = gt
	return nil
}

// GetAttribute forwards to the backing constraint. Function, set, and name
// never reach a bridge; the layer answers those.
func (b *greaterToLess) GetAttribute(attr contracts.ConstraintAttribute) (any, error) {
	return b.model.GetConstraintAttribute(attr, b.backing)
}

func (b *greaterToLess) SetAttribute(attr contracts.ConstraintAttribute, value any) error {
	return b.model.SetConstraintAttribute(attr, b.backing, value)
}

func (b *greaterToLess) NumberOfOwned(key contracts.TypeKey) int {
	if key == lessKey {
		return 1
	}
	return 0
}

func (b *greaterToLess) OwnedConstraints(key contracts.TypeKey) []contracts.ConstraintIndex {
	if key == lessKey {
		return []contracts.ConstraintIndex{b.backing}
	}
	return nil
}

func (b *greaterToLess) OwnedVariables() []contracts.VariableIndex { return nil }

func (b *greaterToLess) Delete() error {
	return b.model.DeleteConstraint(b.backing)
}

func negate(f contracts.ScalarAffineFunc) contracts.ScalarAffineFunc {
	out := f.CloneFunction().(contracts.ScalarAffineFunc)
	for i := range out.Terms {
		out.Terms[i].Coefficient = -out.Terms[i].Coefficient
	}
	out.Constant = -out.Constant
	return out
}
