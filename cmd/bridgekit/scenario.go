package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/optlayer/bridgekit-go/contracts"
)

// Scenario is a YAML description of a model to build through the bridging
// layer.
type Scenario struct {
	Name        string               `yaml:"name"`
	Variables   []string             `yaml:"variables"`
	Constraints []ScenarioConstraint `yaml:"constraints"`
	Objective   *ScenarioObjective   `yaml:"objective"`
}

// ScenarioConstraint is one constraint entry.
type ScenarioConstraint struct {
	Name     string           `yaml:"name"`
	Function ScenarioFunction `yaml:"function"`
	Set      ScenarioSet      `yaml:"set"`
}

// ScenarioFunction is a scalar affine function over named variables.
type ScenarioFunction struct {
	Terms    []ScenarioTerm `yaml:"terms"`
	Constant float64        `yaml:"constant"`
}

// ScenarioTerm is one coefficient*variable product.
type ScenarioTerm struct {
	Variable    string  `yaml:"variable"`
	Coefficient float64 `yaml:"coefficient"`
}

// ScenarioSet selects a scalar set by kind.
type ScenarioSet struct {
	Kind  string  `yaml:"kind"`
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"`
	Value float64 `yaml:"value"`
}

// ScenarioObjective is the optional objective entry.
type ScenarioObjective struct {
	Sense    string           `yaml:"sense"`
	Function ScenarioFunction `yaml:"function"`
}

// LoadScenario reads and parses a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &s, nil
}

// Build replays the scenario into the model and returns the name-to-index
// table of the created variables.
func (s *Scenario) Build(model contracts.Model) (map[string]contracts.VariableIndex, error) {
	vars := make(map[string]contracts.VariableIndex, len(s.Variables))
	for _, name := range s.Variables {
		if _, exists := vars[name]; exists {
			return nil, fmt.Errorf("variable %q declared twice", name)
		}
		v, err := model.AddVariable()
		if err != nil {
			return nil, err
		}
		if err := model.SetVariableAttribute(contracts.VariableName, v, name); err != nil {
			return nil, err
		}
		vars[name] = v
	}
	for _, sc := range s.Constraints {
		f, err := sc.Function.toFunction(vars)
		if err != nil {
			return nil, fmt.Errorf("constraint %q: %w", sc.Name, err)
		}
		set, err := sc.Set.toSet()
		if err != nil {
			return nil, fmt.Errorf("constraint %q: %w", sc.Name, err)
		}
		ci, err := model.AddConstraint(f, set)
		if err != nil {
			return nil, fmt.Errorf("constraint %q: %w", sc.Name, err)
		}
		if sc.Name != "" {
			if err := model.SetConstraintAttribute(contracts.ConstraintName, ci, sc.Name); err != nil {
				return nil, err
			}
		}
	}
	if s.Objective != nil {
		f, err := s.Objective.Function.toFunction(vars)
		if err != nil {
			return nil, fmt.Errorf("objective: %w", err)
		}
		sense := contracts.MinSense
		if s.Objective.Sense == "Max" {
			sense = contracts.MaxSense
		}
		if err := model.SetModelAttribute(contracts.ObjectiveSense, sense); err != nil {
			return nil, err
		}
		if err := model.SetModelAttribute(contracts.ObjectiveFunction, f); err != nil {
			return nil, err
		}
	}
	if s.Name != "" {
		if err := model.SetModelAttribute(contracts.ModelName, s.Name); err != nil {
			return nil, err
		}
	}
	return vars, nil
}

func (f ScenarioFunction) toFunction(vars map[string]contracts.VariableIndex) (contracts.Function, error) {
	terms := make([]contracts.ScalarAffineTerm, 0, len(f.Terms))
	for _, t := range f.Terms {
		v, ok := vars[t.Variable]
		if !ok {
			return nil, fmt.Errorf("unknown variable %q", t.Variable)
		}
		terms = append(terms, contracts.ScalarAffineTerm{Coefficient: t.Coefficient, Variable: v})
	}
	return contracts.ScalarAffineFunc{Terms: terms, Constant: f.Constant}, nil
}

func (s ScenarioSet) toSet() (contracts.Set, error) {
	switch contracts.SetKind(s.Kind) {
	case contracts.SetLessThan:
		return contracts.LessThan{Upper: s.Upper}, nil
	case contracts.SetGreaterThan:
		return contracts.GreaterThan{Lower: s.Lower}, nil
	case contracts.SetEqualTo:
		return contracts.EqualTo{Value: s.Value}, nil
	case contracts.SetInterval:
		return contracts.Interval{Lower: s.Lower, Upper: s.Upper}, nil
	default:
		return nil, fmt.Errorf("unknown set kind %q", s.Kind)
	}
}
