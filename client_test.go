package bridgekit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bridgekit "github.com/optlayer/bridgekit-go"
	"github.com/optlayer/bridgekit-go/bridges"
	"github.com/optlayer/bridgekit-go/contracts"
	"github.com/optlayer/bridgekit-go/internal/memmodel"
)

func TestDefaultBridges(t *testing.T) {
	t.Run("greater-than constraints are bridged transparently", func(t *testing.T) {
		layer := bridgekit.New(bridgekit.WithDefaultBridges())
		x, err := layer.AddVariable()
		require.NoError(t, err)

		f := contracts.NewScalarAffineFunc(3, contracts.ScalarAffineTerm{Coefficient: 2, Variable: x})
		ci, err := layer.AddConstraint(f, contracts.GreaterThan{Lower: 1})
		require.NoError(t, err)
		assert.Less(t, int64(ci), int64(0))

		got, err := layer.GetConstraintAttribute(contracts.ConstraintFunction, ci)
		require.NoError(t, err)
		assert.Equal(t, f, got)
		assert.Equal(t, 1, layer.NumberOfConstraints(bridges.GreaterToLessKey))
	})

	t.Run("nonpositive blocks are bridged transparently", func(t *testing.T) {
		layer := bridgekit.New(bridgekit.WithDefaultBridges())

		vis, _, err := layer.AddConstrainedVariables(contracts.Nonpositives{Dim: 2})
		require.NoError(t, err)
		require.Len(t, vis, 2)
		assert.Equal(t, 2, layer.NumberOfVariables())
	})

	t.Run("without options everything passes through", func(t *testing.T) {
		layer := bridgekit.New()
		x, err := layer.AddVariable()
		require.NoError(t, err)

		f := contracts.NewScalarAffineFunc(0, contracts.ScalarAffineTerm{Coefficient: 1, Variable: x})
		ci, err := layer.AddConstraint(f, contracts.GreaterThan{Lower: 0})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, int64(ci), int64(0))
	})
}

func TestWrap(t *testing.T) {
	model := memmodel.New()
	layer := bridgekit.Wrap(model, bridgekit.WithDefaultBridges())
	x, err := layer.AddVariable()
	require.NoError(t, err)

	f := contracts.NewScalarAffineFunc(0, contracts.ScalarAffineTerm{Coefficient: 1, Variable: x})
	_, err = layer.AddConstraint(f, contracts.GreaterThan{Lower: 0})
	require.NoError(t, err)

	// The caller's model only ever sees the reformulated inequality.
	lessKey := contracts.TypeKey{Function: contracts.FunctionScalarAffine, Set: contracts.SetLessThan}
	assert.Equal(t, 1, model.NumberOfConstraints(lessKey))
	assert.Equal(t, 0, model.NumberOfConstraints(bridges.GreaterToLessKey))
}
