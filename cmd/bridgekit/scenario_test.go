package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bridgekit "github.com/optlayer/bridgekit-go"
	"github.com/optlayer/bridgekit-go/bridges"
	"github.com/optlayer/bridgekit-go/contracts"
	"github.com/optlayer/bridgekit-go/internal/memmodel"
)

const sampleScenario = `
name: production-plan
variables: [x, y]
constraints:
  - name: capacity
    function:
      terms:
        - {variable: x, coefficient: 1}
        - {variable: y, coefficient: 2}
    set: {kind: LessThan, upper: 10}
  - name: demand
    function:
      terms:
        - {variable: x, coefficient: 2}
      constant: 3
    set: {kind: GreaterThan, lower: 1}
objective:
  sense: Max
  function:
    terms:
      - {variable: x, coefficient: 1}
      - {variable: y, coefficient: 1}
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario(t *testing.T) {
	t.Run("parses a full scenario", func(t *testing.T) {
		s, err := LoadScenario(writeScenario(t, sampleScenario))
		require.NoError(t, err)

		assert.Equal(t, "production-plan", s.Name)
		assert.Equal(t, []string{"x", "y"}, s.Variables)
		require.Len(t, s.Constraints, 2)
		assert.Equal(t, "capacity", s.Constraints[0].Name)
		assert.Equal(t, 10.0, s.Constraints[0].Set.Upper)
		require.NotNil(t, s.Objective)
		assert.Equal(t, "Max", s.Objective.Sense)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		_, err := LoadScenario(writeScenario(t, "variables: [x\n"))
		assert.Error(t, err)
	})

	t.Run("rejects a missing file", func(t *testing.T) {
		_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestScenarioBuild(t *testing.T) {
	t.Run("replays through the bridging layer", func(t *testing.T) {
		s, err := LoadScenario(writeScenario(t, sampleScenario))
		require.NoError(t, err)

		model := memmodel.New()
		layer := bridgekit.Wrap(model, bridgekit.WithDefaultBridges())
		vars, err := s.Build(layer)
		require.NoError(t, err)
		require.Len(t, vars, 2)

		// The greater-than row is bridged; its name resolves to a synthetic
		// index while the model only holds less-than rows.
		ci, found, err := layer.ConstraintByName("demand")
		require.NoError(t, err)
		require.True(t, found)
		assert.Less(t, int64(ci), int64(0))
		assert.Equal(t, 1, layer.NumberOfConstraints(bridges.GreaterToLessKey))
		assert.Equal(t, 0, model.NumberOfConstraints(bridges.GreaterToLessKey))

		sense, err := layer.GetModelAttribute(contracts.ObjectiveSense)
		require.NoError(t, err)
		assert.Equal(t, contracts.MaxSense, sense)

		name, err := layer.GetModelAttribute(contracts.ModelName)
		require.NoError(t, err)
		assert.Equal(t, "production-plan", name)
	})

	t.Run("unknown variables fail the build", func(t *testing.T) {
		s := &Scenario{
			Variables: []string{"x"},
			Constraints: []ScenarioConstraint{{
				Name: "bad",
				Function: ScenarioFunction{
					Terms: []ScenarioTerm{{Variable: "ghost", Coefficient: 1}},
				},
				Set: ScenarioSet{Kind: "LessThan", Upper: 1},
			}},
		}
		_, err := s.Build(memmodel.New())
		assert.ErrorContains(t, err, "ghost")
	})

	t.Run("duplicate variable names fail the build", func(t *testing.T) {
		s := &Scenario{Variables: []string{"x", "x"}}
		_, err := s.Build(memmodel.New())
		assert.ErrorContains(t, err, "declared twice")
	})

	t.Run("unknown set kinds fail the build", func(t *testing.T) {
		s := &Scenario{
			Variables: []string{"x"},
			Constraints: []ScenarioConstraint{{
				Function: ScenarioFunction{
					Terms: []ScenarioTerm{{Variable: "x", Coefficient: 1}},
				},
				Set: ScenarioSet{Kind: "Halfspace"},
			}},
		}
		_, err := s.Build(memmodel.New())
		assert.ErrorContains(t, err, "Halfspace")
	})
}
