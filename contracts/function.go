package contracts

// Function is a mathematical function over decision variables. Every
// function exposes its outward shape via Kind; rewriting a function must
// never change its Kind.
type Function interface {
	// Kind returns the outward shape of the function.
	Kind() FunctionKind

	// OutputDimension returns the number of scalar outputs.
	OutputDimension() int

	// CloneFunction returns a deep copy that shares no mutable state with
	// the receiver.
	CloneFunction() Function
}

// VariableRef is a bare reference to a single variable.
type VariableRef struct {
	Variable VariableIndex
}

// Kind implements Function.
func (VariableRef) Kind() FunctionKind { return FunctionVariableRef }

// OutputDimension implements Function.
func (VariableRef) OutputDimension() int { return 1 }

// CloneFunction implements Function.
func (f VariableRef) CloneFunction() Function { return f }

// VectorOfVariables is an unordered list of raw variables with no
// coefficients. Because it cannot carry coefficients or constants, it cannot
// express a substituted affine expression.
type VectorOfVariables struct {
	Variables []VariableIndex
}

// Kind implements Function.
func (VectorOfVariables) Kind() FunctionKind { return FunctionVectorOfVariables }

// OutputDimension implements Function.
func (f VectorOfVariables) OutputDimension() int { return len(f.Variables) }

// CloneFunction implements Function.
func (f VectorOfVariables) CloneFunction() Function {
	vars := make([]VariableIndex, len(f.Variables))
	copy(vars, f.Variables)
	return VectorOfVariables{Variables: vars}
}

// ScalarAffineTerm is a single coefficient*variable product.
type ScalarAffineTerm struct {
	Coefficient float64
	Variable    VariableIndex
}

// ScalarAffineFunc is sum(terms) + constant.
type ScalarAffineFunc struct {
	Terms    []ScalarAffineTerm
	Constant float64
}

// NewScalarAffineFunc builds a scalar affine function from coefficient and
// variable pairs.
func NewScalarAffineFunc(constant float64, terms ...ScalarAffineTerm) ScalarAffineFunc {
	return ScalarAffineFunc{Terms: terms, Constant: constant}
}

// Kind implements Function.
func (ScalarAffineFunc) Kind() FunctionKind { return FunctionScalarAffine }

// OutputDimension implements Function.
func (ScalarAffineFunc) OutputDimension() int { return 1 }

// CloneFunction implements Function.
func (f ScalarAffineFunc) CloneFunction() Function {
	terms := make([]ScalarAffineTerm, len(f.Terms))
	copy(terms, f.Terms)
	return ScalarAffineFunc{Terms: terms, Constant: f.Constant}
}

// MapVariables returns a copy of f with every variable index passed through
// translate. The outward shape is preserved.
func MapVariables(f Function, translate func(VariableIndex) VariableIndex) Function {
	switch fn := f.(type) {
	case VariableRef:
		return VariableRef{Variable: translate(fn.Variable)}
	case VectorOfVariables:
		out := fn.CloneFunction().(VectorOfVariables)
		for i, v := range out.Variables {
			out.Variables[i] = translate(v)
		}
		return out
	case ScalarAffineFunc:
		out := fn.CloneFunction().(ScalarAffineFunc)
		for i := range out.Terms {
			out.Terms[i].Variable = translate(out.Terms[i].Variable)
		}
		return out
	case VectorAffineFunc:
		out := fn.CloneFunction().(VectorAffineFunc)
		for i := range out.Terms {
			out.Terms[i].Variable = translate(out.Terms[i].Variable)
		}
		return out
	default:
		return f
	}
}

// VectorAffineTerm is a coefficient*variable product contributing to one
// output row of a VectorAffineFunc.
type VectorAffineTerm struct {
	Output      int
	Coefficient float64
	Variable    VariableIndex
}

// VectorAffineFunc is a vector of affine expressions: row i equals
// sum(terms with Output == i) + Constants[i].
type VectorAffineFunc struct {
	Terms     []VectorAffineTerm
	Constants []float64
}

// Kind implements Function.
func (VectorAffineFunc) Kind() FunctionKind { return FunctionVectorAffine }

// OutputDimension implements Function.
func (f VectorAffineFunc) OutputDimension() int { return len(f.Constants) }

// CloneFunction implements Function.
func (f VectorAffineFunc) CloneFunction() Function {
	terms := make([]VectorAffineTerm, len(f.Terms))
	copy(terms, f.Terms)
	consts := make([]float64, len(f.Constants))
	copy(consts, f.Constants)
	return VectorAffineFunc{Terms: terms, Constants: consts}
}
