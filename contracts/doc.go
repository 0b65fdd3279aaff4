// Package contracts defines the shared vocabulary of the bridging layer.
//
// This package contains the core types exchanged between callers, the
// bridging layer, and the underlying model:
//   - Index types: VariableIndex and ConstraintIndex handles
//   - Function types: VariableRef, VectorOfVariables, ScalarAffineFunc, VectorAffineFunc
//   - Set types: scalar intervals and vector cones
//   - Attribute identifiers, grouped by category (model, variable, constraint)
//   - Error kinds shared across the module
//   - The Model interface implemented by the underlying model and mirrored
//     exactly by the bridging layer
//
// Indices are opaque handles. A negative index denotes a synthetic entity
// emulated by a bridge; callers must never interpret its magnitude.
package contracts
