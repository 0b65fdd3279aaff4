package contracts

import "errors"

// Error kinds shared by the bridging layer and model implementations. All
// errors returned from this module wrap one of these sentinels, so callers
// can classify failures with errors.Is.
var (
	// ErrInvalidIndex reports an operation on a stale, nonexistent, or
	// already-deleted variable or constraint index.
	ErrInvalidIndex = errors.New("bridgekit: invalid index")

	// ErrUnsupportedConstraint reports that a combination is classified as
	// bridgeable but no concrete bridge resolves for it, or that a rewrite
	// would violate outward-type preservation.
	ErrUnsupportedConstraint = errors.New("bridgekit: unsupported constraint")

	// ErrAmbiguousName reports that a name resolves to more than one
	// constraint.
	ErrAmbiguousName = errors.New("bridgekit: ambiguous name")

	// ErrIllegalVariableReuse reports that a bridged variable appears in a
	// function shape that cannot carry a substituted expression.
	ErrIllegalVariableReuse = errors.New("bridgekit: illegal variable reuse")

	// ErrUnsupportedAttribute reports a get or set of an attribute the
	// target does not support.
	ErrUnsupportedAttribute = errors.New("bridgekit: unsupported attribute")
)
