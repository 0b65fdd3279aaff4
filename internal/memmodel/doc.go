// Package memmodel provides an in-memory implementation of contracts.Model.
//
// It stores variables, constraints, names, and attributes in plain maps and
// performs no optimization: Optimize records that it ran and returns. The
// bridging layer's tests and the CLI use it as the underlying model.
package memmodel
