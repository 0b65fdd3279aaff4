package contracts

// Set describes the region a constraint function is required to belong to.
type Set interface {
	// Kind returns the shape of the set.
	Kind() SetKind

	// Dimension returns the number of scalar rows the set constrains.
	Dimension() int
}

// LessThan is the scalar half-line (-inf, Upper].
type LessThan struct {
	Upper float64
}

// Kind implements Set.
func (LessThan) Kind() SetKind { return SetLessThan }

// Dimension implements Set.
func (LessThan) Dimension() int { return 1 }

// GreaterThan is the scalar half-line [Lower, +inf).
type GreaterThan struct {
	Lower float64
}

// Kind implements Set.
func (GreaterThan) Kind() SetKind { return SetGreaterThan }

// Dimension implements Set.
func (GreaterThan) Dimension() int { return 1 }

// EqualTo is the scalar singleton {Value}.
type EqualTo struct {
	Value float64
}

// Kind implements Set.
func (EqualTo) Kind() SetKind { return SetEqualTo }

// Dimension implements Set.
func (EqualTo) Dimension() int { return 1 }

// Interval is the scalar range [Lower, Upper].
type Interval struct {
	Lower float64
	Upper float64
}

// Kind implements Set.
func (Interval) Kind() SetKind { return SetInterval }

// Dimension implements Set.
func (Interval) Dimension() int { return 1 }

// Nonnegatives is the cone of componentwise-nonnegative vectors.
type Nonnegatives struct {
	Dim int
}

// Kind implements Set.
func (Nonnegatives) Kind() SetKind { return SetNonnegatives }

// Dimension implements Set.
func (s Nonnegatives) Dimension() int { return s.Dim }

// Nonpositives is the cone of componentwise-nonpositive vectors.
type Nonpositives struct {
	Dim int
}

// Kind implements Set.
func (Nonpositives) Kind() SetKind { return SetNonpositives }

// Dimension implements Set.
func (s Nonpositives) Dimension() int { return s.Dim }

// Zeros is the set containing only the zero vector.
type Zeros struct {
	Dim int
}

// Kind implements Set.
func (Zeros) Kind() SetKind { return SetZeros }

// Dimension implements Set.
func (s Zeros) Dimension() int { return s.Dim }

// IsVectorSetKind reports whether the kind describes a vector set.
func IsVectorSetKind(kind SetKind) bool {
	switch kind {
	case SetNonnegatives, SetNonpositives, SetZeros:
		return true
	default:
		return false
	}
}
