package petgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueBroadcast(t *testing.T) {
	s := Scalar(3.)
	assert.True(t, s.IsSet())
	assert.False(t, s.IsField())
	assert.Equal(t, 3., s.at(0))
	assert.Equal(t, 3., s.at(5))

	f := CellField([]float64{1., 2., 3.})
	assert.True(t, f.IsField())
	assert.Equal(t, 2., f.at(1))

	var z Value
	assert.False(t, z.IsSet())
}

func TestAnyGreater(t *testing.T) {
	assert.False(t, anyGreater(Scalar(1.), Scalar(2.)))
	assert.True(t, anyGreater(Scalar(3.), Scalar(2.)))
	assert.True(t, anyGreater(CellField([]float64{1., 5.}), Scalar(2.)))
	assert.False(t, anyGreater(CellField([]float64{1., 2.}), Scalar(2.)))
	assert.True(t, anyGreater(Scalar(2.), CellField([]float64{1., 5.})))
	assert.True(t, anyGreater(CellField([]float64{1., 5.}), CellField([]float64{2., 2.})))
	assert.False(t, anyGreater(CellField([]float64{1., 2.}), CellField([]float64{2., 2.})))
	// incomparable lengths are left for dimension checks downstream
	assert.False(t, anyGreater(CellField([]float64{9.}), CellField([]float64{1., 2.})))
}

func TestMaterialize(t *testing.T) {
	v := materialize(3, false, func(i int) float64 { return float64(i) + 1. })
	assert.False(t, v.IsField())
	assert.Equal(t, 1., v.Float())

	v = materialize(3, true, func(i int) float64 { return float64(i) + 1. })
	assert.Equal(t, []float64{1., 2., 3.}, v.Slice())
}
