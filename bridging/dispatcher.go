package bridging

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-set/v3"

	"github.com/optlayer/bridgekit-go/contracts"
)

// Attribute routing. Model-level attributes are forwarded verbatim, except
// that function values pass through substitution first. Variable- and
// constraint-level attributes route on the index: synthetic indices go to
// the owning bridge, real ones to the underlying model.

// GetModelAttribute implements contracts.Model.
func (l *Layer) GetModelAttribute(attr contracts.ModelAttribute) (any, error) {
	return l.model.GetModelAttribute(attr)
}

// SetModelAttribute implements contracts.Model. A Function value (the
// objective) is rewritten first, so the underlying model never observes a
// bridged-variable reference.
func (l *Layer) SetModelAttribute(attr contracts.ModelAttribute, value any) error {
	if f, ok := value.(contracts.Function); ok {
		rf, err := l.rewriteFunction(f)
		if err != nil {
			return err
		}
		value = rf
	}
	return l.model.SetModelAttribute(attr, value)
}

// GetVariableAttribute implements contracts.Model. Synthetic variables are
// answered by their bridge, which receives the variable's slot within the
// block it emulates.
func (l *Layer) GetVariableAttribute(attr contracts.VariableAttribute, v contracts.VariableIndex) (any, error) {
	if !isSyntheticVariable(v) {
		return l.model.GetVariableAttribute(attr, v)
	}
	slot, ok := l.vars.lookup(v)
	if !ok {
		return nil, fmt.Errorf("variable %d: %w", v, contracts.ErrInvalidIndex)
	}
	return slot.block.bridge.GetAttribute(attr, slot.slot)
}

// SetVariableAttribute implements contracts.Model.
func (l *Layer) SetVariableAttribute(attr contracts.VariableAttribute, v contracts.VariableIndex, value any) error {
	if !isSyntheticVariable(v) {
		return l.model.SetVariableAttribute(attr, v, value)
	}
	slot, ok := l.vars.lookup(v)
	if !ok {
		return fmt.Errorf("variable %d: %w", v, contracts.ErrInvalidIndex)
	}
	return slot.block.bridge.SetAttribute(attr, slot.slot, value)
}

// GetConstraintAttribute implements contracts.Model. Name, function, set,
// and bridge identity of synthetic constraints are answered by the layer;
// everything else is delegated to the bridge.
func (l *Layer) GetConstraintAttribute(attr contracts.ConstraintAttribute, c contracts.ConstraintIndex) (any, error) {
	if !isSyntheticConstraint(c) {
		return l.model.GetConstraintAttribute(attr, c)
	}
	entry, ok := l.cons.lookup(c)
	if !ok {
		return nil, fmt.Errorf("constraint %d: %w", c, contracts.ErrInvalidIndex)
	}
	switch attr {
	case contracts.ConstraintName:
		return l.names.name(c), nil
	case contracts.ConstraintFunction:
		return entry.bridge.Function(), nil
	case contracts.ConstraintSet:
		return entry.bridge.Set(), nil
	case contracts.BridgeID:
		return entry.id.String(), nil
	default:
		return entry.bridge.GetAttribute(attr)
	}
}

// SetConstraintAttribute implements contracts.Model.
func (l *Layer) SetConstraintAttribute(attr contracts.ConstraintAttribute, c contracts.ConstraintIndex, value any) error {
	if !isSyntheticConstraint(c) {
		if attr == contracts.ConstraintFunction {
			if f, ok := value.(contracts.Function); ok {
				rf, err := l.rewriteFunction(f)
				if err != nil {
					return err
				}
				value = rf
			}
		}
		err := l.model.SetConstraintAttribute(attr, c, value)
		if err == nil && attr == contracts.ConstraintName {
			l.names.setDirty()
		}
		return err
	}
	entry, ok := l.cons.lookup(c)
	if !ok {
		return fmt.Errorf("constraint %d: %w", c, contracts.ErrInvalidIndex)
	}
	switch attr {
	case contracts.ConstraintName:
		name, ok := value.(string)
		if !ok {
			return fmt.Errorf("constraint name must be a string, got %T: %w", value, contracts.ErrUnsupportedAttribute)
		}
		l.names.setName(c, name)
		return nil
	case contracts.ConstraintFunction:
		f, ok := value.(contracts.Function)
		if !ok {
			return fmt.Errorf("constraint function must be a Function, got %T: %w", value, contracts.ErrUnsupportedAttribute)
		}
		rf, err := l.rewriteFunction(f)
		if err != nil {
			return err
		}
		return entry.bridge.SetFunction(rf)
	case contracts.ConstraintSet:
		s, ok := value.(contracts.Set)
		if !ok {
			return fmt.Errorf("constraint set must be a Set, got %T: %w", value, contracts.ErrUnsupportedAttribute)
		}
		return entry.bridge.SetSet(s)
	default:
		return entry.bridge.SetAttribute(attr, value)
	}
}

// Count and list endpoints run a two-pass reconciliation: raw underlying
// totals plus registry-visible synthetic entries, minus whatever each live
// bridge privately owns of the queried type. The subtraction is what hides
// bridge plumbing from callers.

// NumberOfVariables implements contracts.Model.
func (l *Layer) NumberOfVariables() int {
	n := l.model.NumberOfVariables() + l.vars.size()
	l.forEachLiveBridge(func(r ownedReporter) {
		n -= len(r.OwnedVariables())
	})
	return n
}

// ListVariableIndices implements contracts.Model.
func (l *Layer) ListVariableIndices() []contracts.VariableIndex {
	indices := set.From(l.model.ListVariableIndices())
	indices.InsertSlice(l.vars.indices())
	l.forEachLiveBridge(func(r ownedReporter) {
		for _, v := range r.OwnedVariables() {
			indices.Remove(v)
		}
	})
	out := indices.Slice()
	slices.Sort(out)
	return out
}

// NumberOfConstraints implements contracts.Model.
func (l *Layer) NumberOfConstraints(key contracts.TypeKey) int {
	n := l.model.NumberOfConstraints(key) + l.cons.count(key)
	l.forEachLiveBridge(func(r ownedReporter) {
		n -= r.NumberOfOwned(key)
	})
	return n
}

// ListConstraintIndices implements contracts.Model.
func (l *Layer) ListConstraintIndices(key contracts.TypeKey) []contracts.ConstraintIndex {
	indices := set.From(l.model.ListConstraintIndices(key))
	indices.InsertSlice(l.cons.indices(key))
	l.forEachLiveBridge(func(r ownedReporter) {
		for _, c := range r.OwnedConstraints(key) {
			indices.Remove(c)
		}
	})
	out := indices.Slice()
	slices.Sort(out)
	return out
}

// ListConstraintTypes implements contracts.Model. Keys whose reconciled
// count is zero are dropped: a type may appear in the raw listing solely
// because of bridge plumbing.
func (l *Layer) ListConstraintTypes() []contracts.TypeKey {
	keys := set.From(l.model.ListConstraintTypes())
	keys.InsertSlice(l.cons.typeKeys())
	out := make([]contracts.TypeKey, 0, keys.Size())
	for _, key := range keys.Slice() {
		if l.NumberOfConstraints(key) > 0 {
			out = append(out, key)
		}
	}
	slices.SortFunc(out, func(a, b contracts.TypeKey) int {
		return strings.Compare(a.String(), b.String())
	})
	return out
}

// ownedReporter is the slice of the bridge interfaces the reconciliation
// pass needs.
type ownedReporter interface {
	NumberOfOwned(key contracts.TypeKey) int
	OwnedConstraints(key contracts.TypeKey) []contracts.ConstraintIndex
	OwnedVariables() []contracts.VariableIndex
}

func (l *Layer) forEachLiveBridge(fn func(ownedReporter)) {
	l.cons.forEach(func(_ contracts.ConstraintIndex, entry *constraintEntry) {
		fn(entry.bridge)
	})
	l.vars.forEachBlock(func(block *variableBlock) {
		fn(block.bridge)
	})
}

// Name resolution spanning both worlds.

// ConstraintByName implements contracts.Model with a wildcard type: the
// underlying model is probed first, then the virtual map. A name present in
// both worlds is ambiguous; absent in both is a non-failing miss.
func (l *Layer) ConstraintByName(name string) (contracts.ConstraintIndex, bool, error) {
	real, foundReal, err := l.model.ConstraintByName(name)
	if err != nil {
		return 0, false, err
	}
	virtual, foundVirtual, ambiguous := l.names.lookup(name)
	if ambiguous {
		return 0, false, fmt.Errorf("name %q: %w", name, contracts.ErrAmbiguousName)
	}
	if foundReal && foundVirtual {
		return 0, false, fmt.Errorf("name %q exists in both the model and the bridged world: %w", name, contracts.ErrAmbiguousName)
	}
	if foundReal {
		return real, true, nil
	}
	if foundVirtual {
		return virtual, true, nil
	}
	return 0, false, nil
}

// TypedConstraintByName implements contracts.Model for a known type key.
func (l *Layer) TypedConstraintByName(key contracts.TypeKey, name string) (contracts.ConstraintIndex, bool, error) {
	if l.policy.Classify(key) == RouteBridged {
		virtual, found, ambiguous := l.names.lookup(name)
		if ambiguous {
			return 0, false, fmt.Errorf("name %q: %w", name, contracts.ErrAmbiguousName)
		}
		if !found {
			return 0, false, nil
		}
		if entry, ok := l.cons.lookup(virtual); !ok || entry.key != key {
			return 0, false, nil
		}
		if _, foundReal, err := l.model.ConstraintByName(name); err != nil {
			return 0, false, err
		} else if foundReal {
			return 0, false, fmt.Errorf("name %q exists in both the model and the bridged world: %w", name, contracts.ErrAmbiguousName)
		}
		return virtual, true, nil
	}
	real, found, err := l.model.TypedConstraintByName(key, name)
	if err != nil {
		return 0, false, err
	}
	if _, foundVirtual, ambiguous := l.names.lookup(name); ambiguous || foundVirtual {
		return 0, false, fmt.Errorf("name %q: %w", name, contracts.ErrAmbiguousName)
	}
	return real, found, nil
}
