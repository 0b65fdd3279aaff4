// Package bridges contains concrete reformulations plugged into the
// bridging layer.
//
// Each bridge realizes one virtual constraint or variable block through real
// entities in the underlying model, and self-reports what it owns so the
// layer can hide that plumbing from external counts and listings. The layer
// itself is agnostic to the bridges defined here; new reformulations can be
// added in any package by implementing bridging.ConstraintBridge or
// bridging.VariableBridge.
package bridges
