package bridging

import "github.com/optlayer/bridgekit-go/contracts"

// Route is the outcome of classifying a combination against the policy.
type Route int

// Routes.
const (
	// RoutePassthrough forwards the combination to the underlying model
	// unchanged.
	RoutePassthrough Route = iota

	// RouteBridged hands the combination to a bridge.
	RouteBridged
)

// String returns the route name.
func (r Route) String() string {
	if r == RouteBridged {
		return "bridged"
	}
	return "passthrough"
}

// Policy records which combinations are handled by bridges. It is the unit
// of configuration for the whole layer: classification is a property of the
// (function kind, set kind) pair, never of an individual constraint.
//
// A policy must be fully configured before the first constraint is added.
// Changing it afterwards is undefined behavior.
type Policy struct {
	constraints  map[contracts.TypeKey]struct{}
	variableSets map[contracts.SetKind]struct{}
}

// NewPolicy returns an empty policy: everything passes through.
func NewPolicy() *Policy {
	return &Policy{
		constraints:  make(map[contracts.TypeKey]struct{}),
		variableSets: make(map[contracts.SetKind]struct{}),
	}
}

// BridgeConstraints marks constraint type keys as bridged.
func (p *Policy) BridgeConstraints(keys ...contracts.TypeKey) {
	for _, key := range keys {
		p.constraints[key] = struct{}{}
	}
}

// BridgeVariables marks constrained-variable additions with the given set
// kind as bridged.
func (p *Policy) BridgeVariables(kinds ...contracts.SetKind) {
	for _, kind := range kinds {
		p.variableSets[kind] = struct{}{}
	}
}

// Classify reports whether constraints with the given type key are bridged.
func (p *Policy) Classify(key contracts.TypeKey) Route {
	if _, ok := p.constraints[key]; ok {
		return RouteBridged
	}
	return RoutePassthrough
}

// ClassifyVariables reports whether constrained-variable additions with the
// given set kind are bridged.
func (p *Policy) ClassifyVariables(kind contracts.SetKind) Route {
	if _, ok := p.variableSets[kind]; ok {
		return RouteBridged
	}
	return RoutePassthrough
}

// The sign convention lives here and nowhere else: a negative index is a
// synthetic entity owned by a registry, a nonnegative index is stored in the
// underlying model.

func isSyntheticVariable(v contracts.VariableIndex) bool { return v < 0 }

func isSyntheticConstraint(c contracts.ConstraintIndex) bool { return c < 0 }
