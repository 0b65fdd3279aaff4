package bridging

import (
	"fmt"

	"github.com/optlayer/bridgekit-go/contracts"
)

// rewriteFunction replaces every reference to a bridged variable with that
// variable's defining expression, preserving the function's outward shape.
// With no bridged variables in play it returns the input untouched, so the
// unbridged case stays at native cost.
func (l *Layer) rewriteFunction(f contracts.Function) (contracts.Function, error) {
	if l.vars.empty() {
		return f, nil
	}
	switch fn := f.(type) {
	case contracts.VariableRef:
		def, bridged, err := l.definingFunction(fn.Variable)
		if err != nil {
			return nil, err
		}
		if !bridged {
			return f, nil
		}
		ref, ok := def.(contracts.VariableRef)
		if !ok {
			return nil, fmt.Errorf("variable %d: defining expression is not a single variable reference: %w",
				fn.Variable, contracts.ErrUnsupportedConstraint)
		}
		return ref, nil
	case contracts.VectorOfVariables:
		for _, v := range fn.Variables {
			if _, ok := l.vars.lookup(v); ok {
				return nil, fmt.Errorf("variable %d appears in a raw variable list: %w",
					v, contracts.ErrIllegalVariableReuse)
			}
		}
		return f, nil
	case contracts.ScalarAffineFunc:
		return l.rewriteScalarAffine(fn)
	case contracts.VectorAffineFunc:
		return l.rewriteVectorAffine(fn)
	default:
		return f, nil
	}
}

func (l *Layer) rewriteScalarAffine(fn contracts.ScalarAffineFunc) (contracts.Function, error) {
	out := contracts.ScalarAffineFunc{
		Terms:    make([]contracts.ScalarAffineTerm, 0, len(fn.Terms)),
		Constant: fn.Constant,
	}
	for _, term := range fn.Terms {
		def, bridged, err := l.definingFunction(term.Variable)
		if err != nil {
			return nil, err
		}
		if !bridged {
			out.Terms = append(out.Terms, term)
			continue
		}
		switch d := def.(type) {
		case contracts.VariableRef:
			out.Terms = append(out.Terms, contracts.ScalarAffineTerm{
				Coefficient: term.Coefficient,
				Variable:    d.Variable,
			})
		case contracts.ScalarAffineFunc:
			for _, dt := range d.Terms {
				out.Terms = append(out.Terms, contracts.ScalarAffineTerm{
					Coefficient: term.Coefficient * dt.Coefficient,
					Variable:    dt.Variable,
				})
			}
			out.Constant += term.Coefficient * d.Constant
		default:
			return nil, fmt.Errorf("variable %d: defining expression of kind %s cannot be expanded linearly: %w",
				term.Variable, def.Kind(), contracts.ErrUnsupportedConstraint)
		}
	}
	return out, nil
}

func (l *Layer) rewriteVectorAffine(fn contracts.VectorAffineFunc) (contracts.Function, error) {
	out := contracts.VectorAffineFunc{
		Terms:     make([]contracts.VectorAffineTerm, 0, len(fn.Terms)),
		Constants: make([]float64, len(fn.Constants)),
	}
	copy(out.Constants, fn.Constants)
	for _, term := range fn.Terms {
		def, bridged, err := l.definingFunction(term.Variable)
		if err != nil {
			return nil, err
		}
		if !bridged {
			out.Terms = append(out.Terms, term)
			continue
		}
		switch d := def.(type) {
		case contracts.VariableRef:
			out.Terms = append(out.Terms, contracts.VectorAffineTerm{
				Output:      term.Output,
				Coefficient: term.Coefficient,
				Variable:    d.Variable,
			})
		case contracts.ScalarAffineFunc:
			for _, dt := range d.Terms {
				out.Terms = append(out.Terms, contracts.VectorAffineTerm{
					Output:      term.Output,
					Coefficient: term.Coefficient * dt.Coefficient,
					Variable:    dt.Variable,
				})
			}
			out.Constants[term.Output] += term.Coefficient * d.Constant
		default:
			return nil, fmt.Errorf("variable %d: defining expression of kind %s cannot be expanded linearly: %w",
				term.Variable, def.Kind(), contracts.ErrUnsupportedConstraint)
		}
	}
	return out, nil
}

// definingFunction resolves a variable to its bridge-defined expression.
// The second return is false when the variable is real.
func (l *Layer) definingFunction(v contracts.VariableIndex) (contracts.Function, bool, error) {
	if !isSyntheticVariable(v) {
		return nil, false, nil
	}
	slot, ok := l.vars.lookup(v)
	if !ok {
		return nil, false, fmt.Errorf("variable %d: %w", v, contracts.ErrInvalidIndex)
	}
	def, err := slot.block.bridge.DefiningFunction(slot.slot)
	if err != nil {
		return nil, false, fmt.Errorf("defining expression for variable %d: %w", v, err)
	}
	return def, true, nil
}
