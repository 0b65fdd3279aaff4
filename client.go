// Package bridgekit wires the bridging layer together with an underlying
// model and a default set of reformulations.
//
// Most callers only need New (fresh in-memory model) or Wrap (existing
// model):
//
//	layer := bridgekit.New(bridgekit.WithDefaultBridges())
//	x, _ := layer.AddVariable()
//	ci, _ := layer.AddConstraint(
//	    contracts.NewScalarAffineFunc(3, contracts.ScalarAffineTerm{Coefficient: 2, Variable: x}),
//	    contracts.GreaterThan{Lower: 1},
//	)
//
// The returned index is negative when a bridge took over; every query on it
// behaves as if the constraint were stored natively.
package bridgekit

import (
	"log/slog"

	"github.com/optlayer/bridgekit-go/bridges"
	"github.com/optlayer/bridgekit-go/bridging"
	"github.com/optlayer/bridgekit-go/contracts"
	"github.com/optlayer/bridgekit-go/internal/memmodel"
)

// Option configures the layer built by New or Wrap.
type Option = bridging.LayerOption

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return bridging.WithLogger(logger)
}

// WithDefaultBridges installs the reformulations shipped with this module:
// GreaterToLess for (ScalarAffine, GreaterThan) constraints and
// NonposToNonneg for variables constrained to Nonpositives.
func WithDefaultBridges() Option {
	return func(l *bridging.Layer) {
		l.RegisterConstraintBridge(bridges.GreaterToLessKey, bridges.NewGreaterToLess)
		l.RegisterVariableBridge(contracts.SetNonpositives, bridges.NewNonposToNonneg)
	}
}

// New returns a bridged view over a fresh in-memory model.
func New(opts ...Option) *bridging.Layer {
	return Wrap(memmodel.New(), opts...)
}

// Wrap layers bridging over an existing model. The bridging configuration
// carried in opts must be complete before the first constraint is added.
func Wrap(model contracts.Model, opts ...Option) *bridging.Layer {
	return bridging.NewLayer(model, opts...)
}
