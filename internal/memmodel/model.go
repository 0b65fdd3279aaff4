package memmodel

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/optlayer/bridgekit-go/contracts"
)

type variableData struct {
	name       string
	attributes map[contracts.VariableAttribute]any
}

type constraintData struct {
	function contracts.Function
	set      contracts.Set
	name     string
}

// Model is an in-memory contracts.Model. Indices are dense nonnegative
// counters; deleted indices are not reused.
type Model struct {
	nextVariable   int64
	nextConstraint int64
	variables      map[contracts.VariableIndex]*variableData
	constraints    map[contracts.ConstraintIndex]*constraintData
	byKey          map[contracts.TypeKey]map[contracts.ConstraintIndex]struct{}

	name      string
	sense     contracts.OptimizationSense
	objective contracts.Function
	optimized bool
}

var _ contracts.Model = (*Model)(nil)

// New returns an empty model.
func New() *Model {
	m := &Model{}
	m.Reset()
	return m
}

// AddVariable implements contracts.Model.
func (m *Model) AddVariable() (contracts.VariableIndex, error) {
	v := contracts.VariableIndex(m.nextVariable)
	m.nextVariable++
	m.variables[v] = &variableData{attributes: make(map[contracts.VariableAttribute]any)}
	return v, nil
}

// AddVariables implements contracts.Model.
func (m *Model) AddVariables(n int) ([]contracts.VariableIndex, error) {
	if n < 0 {
		return nil, fmt.Errorf("memmodel: cannot add %d variables", n)
	}
	out := make([]contracts.VariableIndex, n)
	for i := range out {
		v, err := m.AddVariable()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// AddConstrainedVariables implements contracts.Model.
func (m *Model) AddConstrainedVariables(s contracts.Set) ([]contracts.VariableIndex, contracts.ConstraintIndex, error) {
	vis, err := m.AddVariables(s.Dimension())
	if err != nil {
		return nil, 0, err
	}
	var f contracts.Function
	if contracts.IsVectorSetKind(s.Kind()) {
		f = contracts.VectorOfVariables{Variables: vis}
	} else {
		f = contracts.VariableRef{Variable: vis[0]}
	}
	ci, err := m.AddConstraint(f, s)
	if err != nil {
		return nil, 0, err
	}
	return vis, ci, nil
}

// AddConstraint implements contracts.Model.
func (m *Model) AddConstraint(f contracts.Function, s contracts.Set) (contracts.ConstraintIndex, error) {
	if f.OutputDimension() != s.Dimension() {
		return 0, fmt.Errorf("memmodel: function output dimension %d does not match set dimension %d",
			f.OutputDimension(), s.Dimension())
	}
	c := contracts.ConstraintIndex(m.nextConstraint)
	m.nextConstraint++
	m.constraints[c] = &constraintData{function: f.CloneFunction(), set: s}
	key := contracts.TypeKey{Function: f.Kind(), Set: s.Kind()}
	if m.byKey[key] == nil {
		m.byKey[key] = make(map[contracts.ConstraintIndex]struct{})
	}
	m.byKey[key][c] = struct{}{}
	return c, nil
}

// DeleteVariable implements contracts.Model. Constraints referencing the
// variable are not touched; callers are expected to clean those up first.
func (m *Model) DeleteVariable(v contracts.VariableIndex) error {
	if _, ok := m.variables[v]; !ok {
		return fmt.Errorf("variable %d: %w", v, contracts.ErrInvalidIndex)
	}
	delete(m.variables, v)
	return nil
}

// DeleteConstraint implements contracts.Model.
func (m *Model) DeleteConstraint(c contracts.ConstraintIndex) error {
	data, ok := m.constraints[c]
	if !ok {
		return fmt.Errorf("constraint %d: %w", c, contracts.ErrInvalidIndex)
	}
	key := contracts.TypeKey{Function: data.function.Kind(), Set: data.set.Kind()}
	delete(m.byKey[key], c)
	delete(m.constraints, c)
	return nil
}

// IsValidVariable implements contracts.Model.
func (m *Model) IsValidVariable(v contracts.VariableIndex) bool {
	_, ok := m.variables[v]
	return ok
}

// IsValidConstraint implements contracts.Model.
func (m *Model) IsValidConstraint(c contracts.ConstraintIndex) bool {
	_, ok := m.constraints[c]
	return ok
}

// GetModelAttribute implements contracts.Model.
func (m *Model) GetModelAttribute(attr contracts.ModelAttribute) (any, error) {
	switch attr {
	case contracts.ModelName:
		return m.name, nil
	case contracts.ObjectiveSense:
		return m.sense, nil
	case contracts.ObjectiveFunction:
		if m.objective == nil {
			return nil, nil
		}
		return m.objective.CloneFunction(), nil
	default:
		return nil, fmt.Errorf("model attribute %s: %w", attr, contracts.ErrUnsupportedAttribute)
	}
}

// SetModelAttribute implements contracts.Model.
func (m *Model) SetModelAttribute(attr contracts.ModelAttribute, value any) error {
	switch attr {
	case contracts.ModelName:
		name, ok := value.(string)
		if !ok {
			return fmt.Errorf("model name must be a string, got %T: %w", value, contracts.ErrUnsupportedAttribute)
		}
		m.name = name
	case contracts.ObjectiveSense:
		sense, ok := value.(contracts.OptimizationSense)
		if !ok {
			return fmt.Errorf("objective sense must be an OptimizationSense, got %T: %w", value, contracts.ErrUnsupportedAttribute)
		}
		m.sense = sense
	case contracts.ObjectiveFunction:
		f, ok := value.(contracts.Function)
		if !ok {
			return fmt.Errorf("objective must be a Function, got %T: %w", value, contracts.ErrUnsupportedAttribute)
		}
		m.objective = f.CloneFunction()
	default:
		return fmt.Errorf("model attribute %s: %w", attr, contracts.ErrUnsupportedAttribute)
	}
	return nil
}

// GetVariableAttribute implements contracts.Model.
func (m *Model) GetVariableAttribute(attr contracts.VariableAttribute, v contracts.VariableIndex) (any, error) {
	data, ok := m.variables[v]
	if !ok {
		return nil, fmt.Errorf("variable %d: %w", v, contracts.ErrInvalidIndex)
	}
	if attr == contracts.VariableName {
		return data.name, nil
	}
	value, ok := data.attributes[attr]
	if !ok {
		return nil, fmt.Errorf("variable attribute %s: %w", attr, contracts.ErrUnsupportedAttribute)
	}
	return value, nil
}

// SetVariableAttribute implements contracts.Model.
func (m *Model) SetVariableAttribute(attr contracts.VariableAttribute, v contracts.VariableIndex, value any) error {
	data, ok := m.variables[v]
	if !ok {
		return fmt.Errorf("variable %d: %w", v, contracts.ErrInvalidIndex)
	}
	if attr == contracts.VariableName {
		name, ok := value.(string)
		if !ok {
			return fmt.Errorf("variable name must be a string, got %T: %w", value, contracts.ErrUnsupportedAttribute)
		}
		data.name = name
		return nil
	}
	data.attributes[attr] = value
	return nil
}

// GetConstraintAttribute implements contracts.Model.
func (m *Model) GetConstraintAttribute(attr contracts.ConstraintAttribute, c contracts.ConstraintIndex) (any, error) {
	data, ok := m.constraints[c]
	if !ok {
		return nil, fmt.Errorf("constraint %d: %w", c, contracts.ErrInvalidIndex)
	}
	switch attr {
	case contracts.ConstraintName:
		return data.name, nil
	case contracts.ConstraintFunction:
		return data.function.CloneFunction(), nil
	case contracts.ConstraintSet:
		return data.set, nil
	default:
		return nil, fmt.Errorf("constraint attribute %s: %w", attr, contracts.ErrUnsupportedAttribute)
	}
}

// SetConstraintAttribute implements contracts.Model.
func (m *Model) SetConstraintAttribute(attr contracts.ConstraintAttribute, c contracts.ConstraintIndex, value any) error {
	data, ok := m.constraints[c]
	if !ok {
		return fmt.Errorf("constraint %d: %w", c, contracts.ErrInvalidIndex)
	}
	switch attr {
	case contracts.ConstraintName:
		name, ok := value.(string)
		if !ok {
			return fmt.Errorf("constraint name must be a string, got %T: %w", value, contracts.ErrUnsupportedAttribute)
		}
		data.name = name
		return nil
	case contracts.ConstraintFunction:
		f, ok := value.(contracts.Function)
		if !ok {
			return fmt.Errorf("constraint function must be a Function, got %T: %w", value, contracts.ErrUnsupportedAttribute)
		}
		if f.Kind() != data.function.Kind() {
			return fmt.Errorf("cannot change constraint function kind from %s to %s: %w",
				data.function.Kind(), f.Kind(), contracts.ErrUnsupportedConstraint)
		}
		data.function = f.CloneFunction()
		return nil
	case contracts.ConstraintSet:
		s, ok := value.(contracts.Set)
		if !ok {
			return fmt.Errorf("constraint set must be a Set, got %T: %w", value, contracts.ErrUnsupportedAttribute)
		}
		if s.Kind() != data.set.Kind() {
			return fmt.Errorf("cannot change constraint set kind from %s to %s: %w",
				data.set.Kind(), s.Kind(), contracts.ErrUnsupportedConstraint)
		}
		data.set = s
		return nil
	default:
		return fmt.Errorf("constraint attribute %s: %w", attr, contracts.ErrUnsupportedAttribute)
	}
}

// NumberOfVariables implements contracts.Model.
func (m *Model) NumberOfVariables() int { return len(m.variables) }

// ListVariableIndices implements contracts.Model.
func (m *Model) ListVariableIndices() []contracts.VariableIndex {
	out := make([]contracts.VariableIndex, 0, len(m.variables))
	for v := range m.variables {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// NumberOfConstraints implements contracts.Model.
func (m *Model) NumberOfConstraints(key contracts.TypeKey) int {
	return len(m.byKey[key])
}

// ListConstraintIndices implements contracts.Model.
func (m *Model) ListConstraintIndices(key contracts.TypeKey) []contracts.ConstraintIndex {
	out := make([]contracts.ConstraintIndex, 0, len(m.byKey[key]))
	for c := range m.byKey[key] {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// ListConstraintTypes implements contracts.Model.
func (m *Model) ListConstraintTypes() []contracts.TypeKey {
	out := make([]contracts.TypeKey, 0, len(m.byKey))
	for key, members := range m.byKey {
		if len(members) > 0 {
			out = append(out, key)
		}
	}
	slices.SortFunc(out, func(a, b contracts.TypeKey) int {
		return strings.Compare(a.String(), b.String())
	})
	return out
}

// ConstraintType implements contracts.Model.
func (m *Model) ConstraintType(c contracts.ConstraintIndex) (contracts.TypeKey, error) {
	data, ok := m.constraints[c]
	if !ok {
		return contracts.TypeKey{}, fmt.Errorf("constraint %d: %w", c, contracts.ErrInvalidIndex)
	}
	return contracts.TypeKey{Function: data.function.Kind(), Set: data.set.Kind()}, nil
}

// ConstraintByName implements contracts.Model.
func (m *Model) ConstraintByName(name string) (contracts.ConstraintIndex, bool, error) {
	return m.findByName(name, func(contracts.ConstraintIndex) bool { return true })
}

// TypedConstraintByName implements contracts.Model.
func (m *Model) TypedConstraintByName(key contracts.TypeKey, name string) (contracts.ConstraintIndex, bool, error) {
	return m.findByName(name, func(c contracts.ConstraintIndex) bool {
		_, ok := m.byKey[key][c]
		return ok
	})
}

func (m *Model) findByName(name string, match func(contracts.ConstraintIndex) bool) (contracts.ConstraintIndex, bool, error) {
	if name == "" {
		return 0, false, nil
	}
	var found contracts.ConstraintIndex
	hits := 0
	for c, data := range m.constraints {
		if data.name == name && match(c) {
			found = c
			hits++
		}
	}
	switch hits {
	case 0:
		return 0, false, nil
	case 1:
		return found, true, nil
	default:
		return 0, false, fmt.Errorf("name %q held by %d constraints: %w", name, hits, contracts.ErrAmbiguousName)
	}
}

// CopyFrom implements contracts.Model.
func (m *Model) CopyFrom(src contracts.Model) error {
	m.Reset()
	remap := make(map[contracts.VariableIndex]contracts.VariableIndex)
	for _, v := range src.ListVariableIndices() {
		nv, err := m.AddVariable()
		if err != nil {
			return err
		}
		remap[v] = nv
		if name, err := src.GetVariableAttribute(contracts.VariableName, v); err == nil {
			if s, ok := name.(string); ok && s != "" {
				m.variables[nv].name = s
			}
		}
	}
	for _, key := range src.ListConstraintTypes() {
		for _, ci := range src.ListConstraintIndices(key) {
			rawF, err := src.GetConstraintAttribute(contracts.ConstraintFunction, ci)
			if err != nil {
				return err
			}
			rawS, err := src.GetConstraintAttribute(contracts.ConstraintSet, ci)
			if err != nil {
				return err
			}
			f, okF := rawF.(contracts.Function)
			s, okS := rawS.(contracts.Set)
			if !okF || !okS {
				return fmt.Errorf("memmodel: source constraint %d is missing function or set", ci)
			}
			nci, err := m.AddConstraint(remapVariables(f, remap), s)
			if err != nil {
				return err
			}
			if rawName, err := src.GetConstraintAttribute(contracts.ConstraintName, ci); err == nil {
				if name, ok := rawName.(string); ok {
					m.constraints[nci].name = name
				}
			}
		}
	}
	if value, err := src.GetModelAttribute(contracts.ModelName); err == nil {
		if name, ok := value.(string); ok {
			m.name = name
		}
	}
	if value, err := src.GetModelAttribute(contracts.ObjectiveSense); err == nil {
		if sense, ok := value.(contracts.OptimizationSense); ok {
			m.sense = sense
		}
	}
	if value, err := src.GetModelAttribute(contracts.ObjectiveFunction); err == nil && value != nil {
		if f, ok := value.(contracts.Function); ok {
			m.objective = remapVariables(f, remap)
		}
	}
	return nil
}

// Optimize implements contracts.Model. No numeric work happens; the call is
// recorded so tests can observe forwarding.
func (m *Model) Optimize(context.Context) error {
	m.optimized = true
	return nil
}

// Optimized reports whether Optimize has run since the last Reset.
func (m *Model) Optimized() bool { return m.optimized }

// Reset implements contracts.Model.
func (m *Model) Reset() {
	m.nextVariable = 0
	m.nextConstraint = 0
	m.variables = make(map[contracts.VariableIndex]*variableData)
	m.constraints = make(map[contracts.ConstraintIndex]*constraintData)
	m.byKey = make(map[contracts.TypeKey]map[contracts.ConstraintIndex]struct{})
	m.name = ""
	m.sense = contracts.FeasibilitySense
	m.objective = nil
	m.optimized = false
}

func remapVariables(f contracts.Function, remap map[contracts.VariableIndex]contracts.VariableIndex) contracts.Function {
	return contracts.MapVariables(f, func(v contracts.VariableIndex) contracts.VariableIndex {
		if nv, ok := remap[v]; ok {
			return nv
		}
		return v
	})
}
