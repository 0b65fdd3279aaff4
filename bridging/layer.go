package bridging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/optlayer/bridgekit-go/contracts"
)

// Layer is the reformulation layer. It implements contracts.Model, so a
// caller's view of a bridged model is identical to an unbridged one except
// that synthetic indices are negative opaque handles.
type Layer struct {
	model    contracts.Model
	policy   *Policy
	resolver *Resolver
	vars     *variableRegistry
	cons     *constraintRegistry
	names    *nameMap
	logger   *slog.Logger
}

var _ contracts.Model = (*Layer)(nil)

// LayerOption configures a Layer.
type LayerOption func(*Layer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) LayerOption {
	return func(l *Layer) {
		l.logger = logger
	}
}

// WithConstraintBridge marks a type key as bridged and installs the factory
// realizing it.
func WithConstraintBridge(key contracts.TypeKey, factory ConstraintBridgeFactory) LayerOption {
	return func(l *Layer) {
		l.RegisterConstraintBridge(key, factory)
	}
}

// WithVariableBridge marks a constrained-variable set kind as bridged and
// installs the factory realizing it.
func WithVariableBridge(kind contracts.SetKind, factory VariableBridgeFactory) LayerOption {
	return func(l *Layer) {
		l.RegisterVariableBridge(kind, factory)
	}
}

// WithBridgedType marks a type key as bridged without installing a factory.
// Adding such a constraint fails with ErrUnsupportedConstraint until a
// factory is registered.
func WithBridgedType(key contracts.TypeKey) LayerOption {
	return func(l *Layer) {
		l.policy.BridgeConstraints(key)
	}
}

// NewLayer wraps the underlying model. The bridging configuration must be
// complete before the first constraint is added; reconfiguring a layer that
// already holds constraints is undefined behavior.
func NewLayer(model contracts.Model, opts ...LayerOption) *Layer {
	l := &Layer{
		model:    model,
		policy:   NewPolicy(),
		resolver: NewResolver(),
		vars:     newVariableRegistry(),
		cons:     newConstraintRegistry(),
		names:    newNameMap(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// RegisterConstraintBridge marks a type key as bridged and installs its
// factory.
func (l *Layer) RegisterConstraintBridge(key contracts.TypeKey, factory ConstraintBridgeFactory) {
	l.policy.BridgeConstraints(key)
	l.resolver.RegisterConstraintBridge(key, factory)
}

// RegisterVariableBridge marks a constrained-variable set kind as bridged
// and installs its factory.
func (l *Layer) RegisterVariableBridge(kind contracts.SetKind, factory VariableBridgeFactory) {
	l.policy.BridgeVariables(kind)
	l.resolver.RegisterVariableBridge(kind, factory)
}

// AddVariable implements contracts.Model. Free variables always live in the
// underlying model.
func (l *Layer) AddVariable() (contracts.VariableIndex, error) {
	return l.model.AddVariable()
}

// AddVariables implements contracts.Model.
func (l *Layer) AddVariables(n int) ([]contracts.VariableIndex, error) {
	return l.model.AddVariables(n)
}

// AddConstraint implements contracts.Model. The function is rewritten first
// so neither the underlying model nor a bridge ever observes a reference to
// a bridged variable; then the (function kind, set kind) combination decides
// whether a bridge takes over.
func (l *Layer) AddConstraint(f contracts.Function, s contracts.Set) (contracts.ConstraintIndex, error) {
	rf, err := l.rewriteFunction(f)
	if err != nil {
		return 0, err
	}
	key := contracts.TypeKey{Function: rf.Kind(), Set: s.Kind()}
	if l.policy.Classify(key) == RoutePassthrough {
		return l.model.AddConstraint(rf, s)
	}

	// Resolution strictly precedes construction: a miss here has mutated
	// nothing.
	factory, err := l.resolver.constraintFactory(key)
	if err != nil {
		return 0, err
	}
	bridge, err := factory(l.model, rf, s)
	if err != nil {
		return 0, fmt.Errorf("constructing bridge for %s: %w", key, err)
	}
	ci := l.cons.register(bridge, key)
	entry, _ := l.cons.lookup(ci)
	l.logger.Debug("constructed constraint bridge",
		"key", key.String(),
		"index", int64(ci),
		"bridgeId", entry.id.String(),
	)
	return ci, nil
}

// AddConstrainedVariables implements contracts.Model. Three routes, in
// order: a variable bridge designated for the whole set family; constraint
// bridging of the membership constraint over freshly created real variables;
// plain forwarding.
func (l *Layer) AddConstrainedVariables(s contracts.Set) ([]contracts.VariableIndex, contracts.ConstraintIndex, error) {
	kind := s.Kind()
	if contracts.IsVectorSetKind(kind) && l.policy.ClassifyVariables(kind) == RouteBridged {
		factory, err := l.resolver.variableFactory(kind)
		if err != nil {
			return nil, 0, err
		}
		bridge, err := factory(l.model, s)
		if err != nil {
			return nil, 0, fmt.Errorf("constructing variable bridge for %s: %w", kind, err)
		}
		block := l.vars.registerBlock(bridge, kind)
		key := contracts.TypeKey{Function: contracts.FunctionVectorOfVariables, Set: kind}
		ci := l.cons.register(newBlockConstraint(bridge, block.indices), key)
		block.constraint = ci
		l.logger.Debug("constructed variable bridge",
			"setKind", string(kind),
			"variables", len(block.indices),
			"bridgeId", block.id.String(),
		)
		return append([]contracts.VariableIndex(nil), block.indices...), ci, nil
	}

	fKind := contracts.FunctionVariableRef
	if contracts.IsVectorSetKind(kind) {
		fKind = contracts.FunctionVectorOfVariables
	}
	key := contracts.TypeKey{Function: fKind, Set: kind}
	if l.policy.Classify(key) == RouteBridged {
		// Check resolution before creating variables so a miss leaves the
		// model untouched.
		if _, err := l.resolver.constraintFactory(key); err != nil {
			return nil, 0, err
		}
		vis, err := l.model.AddVariables(s.Dimension())
		if err != nil {
			return nil, 0, err
		}
		var f contracts.Function
		if fKind == contracts.FunctionVectorOfVariables {
			f = contracts.VectorOfVariables{Variables: vis}
		} else {
			f = contracts.VariableRef{Variable: vis[0]}
		}
		ci, err := l.AddConstraint(f, s)
		if err != nil {
			return nil, 0, err
		}
		return vis, ci, nil
	}
	return l.model.AddConstrainedVariables(s)
}

// DeleteVariable implements contracts.Model. Single-variable constraints
// referencing the variable go first, so no constraint index is left
// dangling. Deleting any variable of a bridged block deletes the block's
// bridge, and with it every sibling variable.
func (l *Layer) DeleteVariable(v contracts.VariableIndex) error {
	if isSyntheticVariable(v) {
		if _, ok := l.vars.lookup(v); !ok {
			return fmt.Errorf("variable %d: %w", v, contracts.ErrInvalidIndex)
		}
	} else if !l.model.IsValidVariable(v) {
		return fmt.Errorf("variable %d: %w", v, contracts.ErrInvalidIndex)
	}
	if err := l.deleteSingleVariableConstraints(v); err != nil {
		return err
	}
	if !isSyntheticVariable(v) {
		return l.model.DeleteVariable(v)
	}
	slot, ok := l.vars.lookup(v)
	if !ok {
		// The cascade above removed the block already.
		return nil
	}
	block := slot.block
	if err := block.bridge.Delete(); err != nil {
		return fmt.Errorf("deleting variable bridge: %w", err)
	}
	l.dropBlock(block)
	return nil
}

// DeleteConstraint implements contracts.Model.
func (l *Layer) DeleteConstraint(c contracts.ConstraintIndex) error {
	if !isSyntheticConstraint(c) {
		err := l.model.DeleteConstraint(c)
		if err == nil {
			l.names.setDirty()
		}
		return err
	}
	entry, ok := l.cons.lookup(c)
	if !ok {
		return fmt.Errorf("constraint %d: %w", c, contracts.ErrInvalidIndex)
	}
	if bc, ok := entry.bridge.(*blockConstraint); ok {
		// Membership constraint of a bridged variable block: deleting it
		// deletes the block.
		if err := bc.Delete(); err != nil {
			return fmt.Errorf("deleting variable bridge: %w", err)
		}
		slot, ok := l.vars.lookup(bc.indices[0])
		if ok {
			l.dropBlock(slot.block)
		}
		return nil
	}
	if err := entry.bridge.Delete(); err != nil {
		return fmt.Errorf("deleting constraint bridge: %w", err)
	}
	l.cons.unregister(c)
	l.names.remove(c)
	l.logger.Debug("deleted constraint bridge", "index", int64(c), "bridgeId", entry.id.String())
	return nil
}

// deleteSingleVariableConstraints removes every live single-variable
// constraint whose function references v.
func (l *Layer) deleteSingleVariableConstraints(v contracts.VariableIndex) error {
	for _, key := range l.ListConstraintTypes() {
		if key.Function != contracts.FunctionVariableRef {
			continue
		}
		for _, ci := range l.ListConstraintIndices(key) {
			raw, err := l.GetConstraintAttribute(contracts.ConstraintFunction, ci)
			if err != nil {
				return err
			}
			ref, ok := raw.(contracts.VariableRef)
			if !ok || ref.Variable != v {
				continue
			}
			if err := l.DeleteConstraint(ci); err != nil {
				return err
			}
		}
	}
	return nil
}

// dropBlock removes a variable block and its membership constraint from the
// registries and clears the constraint's name bookkeeping.
func (l *Layer) dropBlock(block *variableBlock) {
	l.vars.unregisterBlock(block)
	l.cons.unregister(block.constraint)
	l.names.remove(block.constraint)
	l.logger.Debug("deleted variable bridge", "bridgeId", block.id.String())
}

// IsValidVariable implements contracts.Model.
func (l *Layer) IsValidVariable(v contracts.VariableIndex) bool {
	if isSyntheticVariable(v) {
		_, ok := l.vars.lookup(v)
		return ok
	}
	return l.model.IsValidVariable(v)
}

// IsValidConstraint implements contracts.Model.
func (l *Layer) IsValidConstraint(c contracts.ConstraintIndex) bool {
	if isSyntheticConstraint(c) {
		_, ok := l.cons.lookup(c)
		return ok
	}
	return l.model.IsValidConstraint(c)
}

// ConstraintType implements contracts.Model.
func (l *Layer) ConstraintType(c contracts.ConstraintIndex) (contracts.TypeKey, error) {
	if isSyntheticConstraint(c) {
		entry, ok := l.cons.lookup(c)
		if !ok {
			return contracts.TypeKey{}, fmt.Errorf("constraint %d: %w", c, contracts.ErrInvalidIndex)
		}
		return entry.key, nil
	}
	return l.model.ConstraintType(c)
}

// Optimize implements contracts.Model. The call is opaque to the layer and
// forwarded as-is.
func (l *Layer) Optimize(ctx context.Context) error {
	return l.model.Optimize(ctx)
}

// CopyFrom implements contracts.Model. The source is replayed through the
// layer, so its constraints are re-classified against the current bridging
// configuration.
func (l *Layer) CopyFrom(src contracts.Model) error {
	l.Reset()
	remap := make(map[contracts.VariableIndex]contracts.VariableIndex)
	for _, v := range src.ListVariableIndices() {
		nv, err := l.AddVariable()
		if err != nil {
			return err
		}
		remap[v] = nv
		name, err := src.GetVariableAttribute(contracts.VariableName, v)
		if err == nil {
			if s, ok := name.(string); ok && s != "" {
				if err := l.SetVariableAttribute(contracts.VariableName, nv, s); err != nil {
					return err
				}
			}
		}
	}
	for _, key := range src.ListConstraintTypes() {
		for _, ci := range src.ListConstraintIndices(key) {
			rawF, err := src.GetConstraintAttribute(contracts.ConstraintFunction, ci)
			if err != nil {
				return err
			}
			rawS, err := src.GetConstraintAttribute(contracts.ConstraintSet, ci)
			if err != nil {
				return err
			}
			f, ok := rawF.(contracts.Function)
			if !ok {
				return fmt.Errorf("source constraint %d has no function: %w", ci, contracts.ErrUnsupportedAttribute)
			}
			s, ok := rawS.(contracts.Set)
			if !ok {
				return fmt.Errorf("source constraint %d has no set: %w", ci, contracts.ErrUnsupportedAttribute)
			}
			nci, err := l.AddConstraint(remapFunction(f, remap), s)
			if err != nil {
				return err
			}
			if rawName, err := src.GetConstraintAttribute(contracts.ConstraintName, ci); err == nil {
				if name, ok := rawName.(string); ok && name != "" {
					if err := l.SetConstraintAttribute(contracts.ConstraintName, nci, name); err != nil {
						return err
					}
				}
			}
		}
	}
	for _, attr := range []contracts.ModelAttribute{contracts.ModelName, contracts.ObjectiveSense, contracts.ObjectiveFunction} {
		value, err := src.GetModelAttribute(attr)
		if err != nil || value == nil {
			continue
		}
		if f, ok := value.(contracts.Function); ok {
			value = remapFunction(f, remap)
		}
		if err := l.SetModelAttribute(attr, value); err != nil {
			return err
		}
	}
	return nil
}

// Reset implements contracts.Model: the underlying model, the registries,
// and all name bookkeeping are cleared.
func (l *Layer) Reset() {
	l.model.Reset()
	l.vars.reset()
	l.cons.reset()
	l.names.reset()
}

// remapFunction rewrites variable references through an index translation
// table, leaving unknown indices alone.
func remapFunction(f contracts.Function, remap map[contracts.VariableIndex]contracts.VariableIndex) contracts.Function {
	return contracts.MapVariables(f, func(v contracts.VariableIndex) contracts.VariableIndex {
		if nv, ok := remap[v]; ok {
			return nv
		}
		return v
	})
}
