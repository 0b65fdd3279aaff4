// Package bridging implements the reformulation layer between a caller and
// an underlying model.
//
// The layer rewrites constraint and variable combinations the underlying
// model does not support into equivalent supported ones, while keeping every
// externally observable query - counts, listings, attribute values, names -
// behaving exactly as if the rewriting never happened.
//
// The moving parts:
//   - Policy: classifies each (function kind, set kind) combination as
//     bridged or passthrough. All index sign inspection lives next to the
//     policy and nowhere else.
//   - Registries: append-only maps from synthetic (negative) indices to the
//     bridge emulating them, with type-filtered enumeration.
//   - Function substitution: inlines a bridged variable's defining
//     expression into any function that references it, preserving the
//     function's outward shape.
//   - Attribute dispatch: routes every get/set/count/list to the underlying
//     model, to a bridge, or to both with reconciliation. Real entities a
//     bridge created for its own plumbing are subtracted out of counts and
//     listings, so they never leak.
//   - Name resolution: bidirectional name lookup spanning the real model and
//     the virtual registries, with duplicate detection across both worlds.
//
// Layer implements contracts.Model, so callers use the same surface whether
// or not any bridging is configured. Concrete bridge implementations live
// outside this package; see the bridges package for examples.
//
// The layer is synchronous and single-threaded by design: it matches a
// build-then-solve usage pattern and performs no I/O of its own.
package bridging
