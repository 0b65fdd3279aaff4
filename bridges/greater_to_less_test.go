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

var lessKey = contracts.TypeKey{
	Function: contracts.FunctionScalarAffine,
	Set:      contracts.SetLessThan,
}

func greaterLayer(t *testing.T) (*bridging.Layer, *memmodel.Model) {
	t.Helper()
	model := memmodel.New()
	l := bridging.NewLayer(model,
		bridging.WithConstraintBridge(bridges.GreaterToLessKey, bridges.NewGreaterToLess),
	)
	return l, model
}

func TestGreaterToLess(t *testing.T) {
	t.Run("the model receives the negated inequality", func(t *testing.T) {
		l, model := greaterLayer(t)
		x, err := l.AddVariable()
		require.NoError(t, err)

		// 2x + 3 >= 1 becomes -2x - 3 <= -1 underneath.
		f := contracts.NewScalarAffineFunc(3, contracts.ScalarAffineTerm{Coefficient: 2, Variable: x})
		ci, err := l.AddConstraint(f, contracts.GreaterThan{Lower: 1})
		require.NoError(t, err)
		assert.Less(t, int64(ci), int64(0))

		backing := model.ListConstraintIndices(lessKey)
		require.Len(t, backing, 1)
		raw, err := model.GetConstraintAttribute(contracts.ConstraintFunction, backing[0])
		require.NoError(t, err)
		want := contracts.NewScalarAffineFunc(-3, contracts.ScalarAffineTerm{Coefficient: -2, Variable: x})
		assert.Equal(t, want, raw)

		rawSet, err := model.GetConstraintAttribute(contracts.ConstraintSet, backing[0])
		require.NoError(t, err)
		assert.Equal(t, contracts.LessThan{Upper: -1}, rawSet)
	})

	t.Run("reads report the original orientation", func(t *testing.T) {
		l, _ := greaterLayer(t)
		x, _ := l.AddVariable()
		f := contracts.NewScalarAffineFunc(3, contracts.ScalarAffineTerm{Coefficient: 2, Variable: x})
		ci, err := l.AddConstraint(f, contracts.GreaterThan{Lower: 1})
		require.NoError(t, err)

		got, err := l.GetConstraintAttribute(contracts.ConstraintFunction, ci)
		require.NoError(t, err)
		assert.Equal(t, f, got)

		gotSet, err := l.GetConstraintAttribute(contracts.ConstraintSet, ci)
		require.NoError(t, err)
		assert.Equal(t, contracts.GreaterThan{Lower: 1}, gotSet)

		key, err := l.ConstraintType(ci)
		require.NoError(t, err)
		assert.Equal(t, bridges.GreaterToLessKey, key)
	})

	t.Run("the backing inequality is hidden from listings", func(t *testing.T) {
		l, model := greaterLayer(t)
		x, _ := l.AddVariable()
		f := contracts.NewScalarAffineFunc(0, contracts.ScalarAffineTerm{Coefficient: 1, Variable: x})
		_, err := l.AddConstraint(f, contracts.GreaterThan{Lower: 0})
		require.NoError(t, err)

		assert.Equal(t, 1, model.NumberOfConstraints(lessKey))
		assert.Equal(t, 0, l.NumberOfConstraints(lessKey))
		assert.Equal(t, 1, l.NumberOfConstraints(bridges.GreaterToLessKey))
		assert.Equal(t, []contracts.TypeKey{bridges.GreaterToLessKey}, l.ListConstraintTypes())
	})

	t.Run("constraint updates keep both views consistent", func(t *testing.T) {
		l, model := greaterLayer(t)
		x, _ := l.AddVariable()
		f := contracts.NewScalarAffineFunc(0, contracts.ScalarAffineTerm{Coefficient: 1, Variable: x})
		ci, err := l.AddConstraint(f, contracts.GreaterThan{Lower: 0})
		require.NoError(t, err)

		updated := contracts.NewScalarAffineFunc(5, contracts.ScalarAffineTerm{Coefficient: 4, Variable: x})
		require.NoError(t, l.SetConstraintAttribute(contracts.ConstraintFunction, ci, updated))
		require.NoError(t, l.SetConstraintAttribute(contracts.ConstraintSet, ci, contracts.GreaterThan{Lower: 2}))

		got, err := l.GetConstraintAttribute(contracts.ConstraintFunction, ci)
		require.NoError(t, err)
		assert.Equal(t, updated, got)

		backing := model.ListConstraintIndices(lessKey)
		require.Len(t, backing, 1)
		raw, err := model.GetConstraintAttribute(contracts.ConstraintSet, backing[0])
		require.NoError(t, err)
		assert.Equal(t, contracts.LessThan{Upper: -2}, raw)
	})

	t.Run("deletion removes the backing inequality", func(t *testing.T) {
		l, model := greaterLayer(t)
		x, _ := l.AddVariable()
		f := contracts.NewScalarAffineFunc(0, contracts.ScalarAffineTerm{Coefficient: 1, Variable: x})
		ci, err := l.AddConstraint(f, contracts.GreaterThan{Lower: 0})
		require.NoError(t, err)

		require.NoError(t, l.DeleteConstraint(ci))
		assert.False(t, l.IsValidConstraint(ci))
		assert.Equal(t, 0, model.NumberOfConstraints(lessKey))
	})

	t.Run("a wrong function shape fails without touching the model", func(t *testing.T) {
		l, model := greaterLayer(t)
		x, _ := l.AddVariable()
		l.RegisterConstraintBridge(contracts.TypeKey{
			Function: contracts.FunctionVariableRef,
			Set:      contracts.SetGreaterThan,
		}, bridges.NewGreaterToLess)

		_, err := l.AddConstraint(contracts.VariableRef{Variable: x}, contracts.GreaterThan{Lower: 0})
		assert.ErrorIs(t, err, contracts.ErrUnsupportedConstraint)
		assert.Empty(t, model.ListConstraintTypes())
	})
}
