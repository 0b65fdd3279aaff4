package bridges_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optlayer/bridgekit-go/bridges"
	"github.com/optlayer/bridgekit-go/bridging"
	"github.com/optlayer/bridgekit-go/contracts"
	"github.com/optlayer/bridgekit-go/internal/memmodel"
)

var (
	nonposKey = contracts.TypeKey{
		Function: contracts.FunctionVectorOfVariables,
		Set:      contracts.SetNonpositives,
	}
	nonnegKey = contracts.TypeKey{
		Function: contracts.FunctionVectorOfVariables,
		Set:      contracts.SetNonnegatives,
	}
)

func nonposLayer(t *testing.T) (*bridging.Layer, *memmodel.Model) {
	t.Helper()
	model := memmodel.New()
	l := bridging.NewLayer(model,
		bridging.WithVariableBridge(contracts.SetNonpositives, bridges.NewNonposToNonneg),
	)
	return l, model
}

func TestNonposToNonneg(t *testing.T) {
	t.Run("the cone is reflected into nonnegative real variables", func(t *testing.T) {
		l, model := nonposLayer(t)

		vis, ci, err := l.AddConstrainedVariables(contracts.Nonpositives{Dim: 3})
		require.NoError(t, err)
		require.Len(t, vis, 3)
		for _, v := range vis {
			assert.Less(t, int64(v), int64(0))
			assert.True(t, l.IsValidVariable(v))
		}
		assert.Less(t, int64(ci), int64(0))

		assert.Equal(t, 3, model.NumberOfVariables())
		assert.Equal(t, 1, model.NumberOfConstraints(nonnegKey))
	})

	t.Run("counts hide the reflected plumbing", func(t *testing.T) {
		l, model := nonposLayer(t)
		_, _, err := l.AddConstrainedVariables(contracts.Nonpositives{Dim: 3})
		require.NoError(t, err)

		assert.Equal(t, 3, l.NumberOfVariables())
		assert.Equal(t, 3, model.NumberOfVariables())
		assert.Equal(t, 1, l.NumberOfConstraints(nonposKey))
		assert.Equal(t, 0, l.NumberOfConstraints(nonnegKey))
		assert.Equal(t, []contracts.TypeKey{nonposKey}, l.ListConstraintTypes())
	})

	t.Run("the membership constraint reads back in synthetic terms", func(t *testing.T) {
		l, _ := nonposLayer(t)
		vis, ci, err := l.AddConstrainedVariables(contracts.Nonpositives{Dim: 2})
		require.NoError(t, err)

		f, err := l.GetConstraintAttribute(contracts.ConstraintFunction, ci)
		require.NoError(t, err)
		assert.Equal(t, contracts.VectorOfVariables{Variables: vis}, f)

		s, err := l.GetConstraintAttribute(contracts.ConstraintSet, ci)
		require.NoError(t, err)
		assert.Equal(t, contracts.Nonpositives{Dim: 2}, s)
	})

	t.Run("objective functions over the block are substituted", func(t *testing.T) {
		l, model := nonposLayer(t)
		vis, _, err := l.AddConstrainedVariables(contracts.Nonpositives{Dim: 1})
		require.NoError(t, err)

		// minimize 2*v + 1 with v <= 0 becomes minimize -2*y + 1 with y >= 0.
		require.NoError(t, l.SetModelAttribute(contracts.ObjectiveSense, contracts.MinSense))
		objective := contracts.NewScalarAffineFunc(1,
			contracts.ScalarAffineTerm{Coefficient: 2, Variable: vis[0]},
		)
		require.NoError(t, l.SetModelAttribute(contracts.ObjectiveFunction, objective))

		raw, err := model.GetModelAttribute(contracts.ObjectiveFunction)
		require.NoError(t, err)
		y := model.ListVariableIndices()[0]
		want := contracts.NewScalarAffineFunc(1,
			contracts.ScalarAffineTerm{Coefficient: -2, Variable: y},
		)
		assert.Equal(t, want, raw)
	})

	t.Run("constraints on the block land on the real variables", func(t *testing.T) {
		l, model := nonposLayer(t)
		vis, _, err := l.AddConstrainedVariables(contracts.Nonpositives{Dim: 1})
		require.NoError(t, err)

		ci, err := l.AddConstraint(
			contracts.NewScalarAffineFunc(0, contracts.ScalarAffineTerm{Coefficient: 3, Variable: vis[0]}),
			contracts.LessThan{Upper: 6},
		)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, int64(ci), int64(0))

		raw, err := model.GetConstraintAttribute(contracts.ConstraintFunction, ci)
		require.NoError(t, err)
		y := model.ListVariableIndices()[0]
		want := contracts.NewScalarAffineFunc(0, contracts.ScalarAffineTerm{Coefficient: -3, Variable: y})
		assert.Equal(t, want, raw)
		assert.Equal(t, 1, l.NumberOfConstraints(lessKey))
	})

	t.Run("primal starts are reflected both ways", func(t *testing.T) {
		l, model := nonposLayer(t)
		vis, _, err := l.AddConstrainedVariables(contracts.Nonpositives{Dim: 1})
		require.NoError(t, err)

		require.NoError(t, l.SetVariableAttribute(contracts.VariablePrimalStart, vis[0], -2.5))

		y := model.ListVariableIndices()[0]
		raw, err := model.GetVariableAttribute(contracts.VariablePrimalStart, y)
		require.NoError(t, err)
		assert.Equal(t, 2.5, raw)

		got, err := l.GetVariableAttribute(contracts.VariablePrimalStart, vis[0])
		require.NoError(t, err)
		assert.Equal(t, -2.5, got)
	})

	t.Run("deleting any block variable removes the whole block", func(t *testing.T) {
		l, model := nonposLayer(t)
		vis, ci, err := l.AddConstrainedVariables(contracts.Nonpositives{Dim: 2})
		require.NoError(t, err)

		require.NoError(t, l.DeleteVariable(vis[1]))

		for _, v := range vis {
			assert.False(t, l.IsValidVariable(v))
		}
		assert.False(t, l.IsValidConstraint(ci))
		assert.Equal(t, 0, model.NumberOfVariables())
		assert.Equal(t, 0, model.NumberOfConstraints(nonnegKey))
	})

	t.Run("a wrong set kind fails the factory", func(t *testing.T) {
		model := memmodel.New()
		_, err := bridges.NewNonposToNonneg(model, contracts.Zeros{Dim: 1})
		assert.ErrorIs(t, err, contracts.ErrUnsupportedConstraint)
	})
}
