package petgrid

import (
	"errors"
	"math"
	"testing"

	"github.com/maseology/petgrid/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrid(t *testing.T) *grid.Definition {
	t.Helper()
	gd, err := grid.NewDefinition(5, 4, 0.2)
	require.NoError(t, err)
	return gd
}

func TestNewOutputFieldZeroed(t *testing.T) {
	gd := testGrid(t)
	p, err := New(gd, Default())
	require.NoError(t, err)

	out := gd.CellField(FieldName)
	require.Len(t, out, gd.Ncells())
	for _, v := range out {
		assert.Zero(t, v)
	}
	assert.Same(t, &out[0], &p.Values()[0], "output field must share backing storage")
}

func TestInvalidMethodName(t *testing.T) {
	cfg := Default()
	cfg.Method = "Hamon"
	_, err := New(testGrid(t), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
	assert.Contains(t, err.Error(), "PriestleyTaylor")
	assert.Contains(t, err.Error(), "PenmanMonteith")
	assert.Contains(t, err.Error(), "NetRadEqPE")
	assert.Contains(t, err.Error(), "Cosine")
}

func TestTemperatureRangeValidation(t *testing.T) {
	gd := testGrid(t)
	cfg := Default()
	cfg.Tmin, cfg.Tmax = Scalar(30.), Scalar(25.)
	_, err := New(gd, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
	assert.Nil(t, gd.CellField(FieldName), "output field must not be registered on failed construction")

	cfg = Default()
	cfg.Tmin = Value{}
	_, err = New(testGrid(t), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}

func TestTemperatureRangeRevalidatedEachUpdate(t *testing.T) {
	gd := testGrid(t)
	p, err := New(gd, Default())
	require.NoError(t, err)
	require.NoError(t, p.Update())

	before := append([]float64(nil), p.Values()...)
	p.SetTmin(Scalar(30.)) // now exceeds Tmax
	err = p.Update()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
	assert.Equal(t, before, p.Values(), "failed update must leave prior output untouched")
}

func TestGeometryDimensionMismatch(t *testing.T) {
	gd := testGrid(t) // 6 cells
	cfg := Default()
	cfg.Method = MethodPenmanMonteith
	cfg.Zo = CellField(make([]float64, 4))
	_, err := New(gd, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	var de *DimensionError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "Zo", de.Field)
	assert.Equal(t, 4, de.Size)
	assert.Equal(t, 6, de.Want)
	assert.Contains(t, de.Error(), "4")
	assert.Contains(t, de.Error(), "6")
}

func TestOffSizeArrayRejected(t *testing.T) {
	gd := testGrid(t) // 20 nodes, 6 cells
	cfg := Default()
	cfg.Tmin = CellField(make([]float64, 4)) // matches neither count
	_, err := New(gd, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	var de *DimensionError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "min_temperature", de.Field)
	assert.Equal(t, 4, de.Size)
	assert.Equal(t, 6, de.Want)

	cfg = Default()
	cfg.LAI = NodeField(make([]float64, 7))
	_, err = New(testGrid(t), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	// mutation between updates takes the same path, erroring instead of
	// indexing past the short array
	p, err := New(testGrid(t), Default())
	require.NoError(t, err)
	require.NoError(t, p.Update())
	before := append([]float64(nil), p.Values()...)
	p.SetTmin(CellField(make([]float64, 4)))
	err = p.Update()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
	assert.Equal(t, before, p.Values())
}

func TestAllMethodsNonNegative(t *testing.T) {
	for _, m := range []string{MethodPriestleyTaylor, MethodPenmanMonteith, MethodNetRadEqPE, MethodCosine} {
		cfg := Default()
		cfg.Method = m
		p, err := New(testGrid(t), cfg)
		require.NoError(t, err, m)
		require.NoError(t, p.Update(), m)
		for i, v := range p.Values() {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%s cell %d not finite", m, i)
			assert.GreaterOrEqual(t, v, 0., "%s cell %d", m, i)
		}
	}
}

func TestUpdateIdempotent(t *testing.T) {
	for _, m := range []string{MethodPriestleyTaylor, MethodPenmanMonteith, MethodNetRadEqPE, MethodCosine} {
		cfg := Default()
		cfg.Method = m
		p, err := New(testGrid(t), cfg)
		require.NoError(t, err, m)
		require.NoError(t, p.Update(), m)
		first := append([]float64(nil), p.Values()...)
		require.NoError(t, p.Update(), m)
		assert.Equal(t, first, p.Values(), "%s: repeated update with unchanged inputs must be bitwise identical", m)
	}
}

func TestCosineScenario(t *testing.T) {
	gd := testGrid(t) // 5x4 nodes, 6 cells, flat (unit ratio)
	cfg := Default()  // method Cosine, current time 0.5
	p, err := New(gd, cfg)
	require.NoError(t, err)
	require.NoError(t, p.Update())

	j := math.Floor(0.5 * 365.)
	want := math.Max(12.+5./2.*math.Cos(2.*math.Pi*(j-0.-365./2.)/365.), 0.)
	for _, v := range p.Values() {
		assert.InDelta(t, want, v, 1e-12)
		assert.Greater(t, v, 0.)
	}
}

func TestPriestleyTaylorHumiditySensitivity(t *testing.T) {
	run := func(rh float64) []float64 {
		cfg := Default()
		cfg.Method = MethodPriestleyTaylor
		cfg.RelativeHumidity = rh
		p, err := New(testGrid(t), cfg)
		require.NoError(t, err)
		require.NoError(t, p.Update())
		return append([]float64(nil), p.Values()...)
	}
	lo, hi := run(0.65), run(1.0)
	for i := range lo {
		assert.False(t, math.IsNaN(lo[i]) || math.IsInf(lo[i], 0))
		assert.GreaterOrEqual(t, lo[i], 0.)
		assert.LessOrEqual(t, lo[i], hi[i], "a lower vapor deficit cannot increase PET")
	}
}

func TestTminRoundTripWithNodeField(t *testing.T) {
	gd := testGrid(t)
	p, err := New(gd, Default())
	require.NoError(t, err)

	nodes := make([]float64, gd.Nnodes())
	for i := range nodes {
		nodes[i] = 5. + float64(i)*0.1
	}
	p.SetTmin(NodeField(nodes))
	assert.Equal(t, nodes, p.Tmin().Slice(), "set value reads back unchanged before the next update")

	require.NoError(t, p.Update())
	got := p.Tmin()
	require.Len(t, got.Slice(), gd.Ncells(), "after an update the value is resolved onto cells")
	for i, v := range got.Slice() {
		assert.Equal(t, nodes[gd.CellNode(i)], v)
	}
}

func TestUserRadiationPreferred(t *testing.T) {
	gd := testGrid(t)
	cfg := Default()
	cfg.Method = MethodNetRadEqPE
	cfg.Radiation = Scalar(56.68) // 2x the latent heat of vaporization
	p, err := New(gd, cfg)
	require.NoError(t, err)
	require.NoError(t, p.Update())
	for _, v := range p.Values() {
		assert.InDelta(t, 2., v, 1e-12)
	}
}

func TestVegetationHeightKeepsPropagating(t *testing.T) {
	cfg := Default()
	cfg.Method = MethodPenmanMonteith
	p, err := New(testGrid(t), cfg)
	require.NoError(t, err)

	require.NoError(t, p.Update())
	base := append([]float64(nil), p.Values()...)

	p.SetZveg(Scalar(1.))
	require.NoError(t, p.Update())
	veg1 := append([]float64(nil), p.Values()...)
	assert.NotEqual(t, base, veg1, "derived canopy geometry must alter the aerodynamic term")

	p.SetZveg(Scalar(2.))
	require.NoError(t, p.Update())
	assert.NotEqual(t, veg1, p.Values(), "later vegetation height changes keep propagating")
}

func TestCalmAirGuard(t *testing.T) {
	cfg := Default()
	cfg.Method = MethodPenmanMonteith
	cfg.Wind = Scalar(0.)
	p, err := New(testGrid(t), cfg)
	require.NoError(t, err)
	require.NoError(t, p.Update())
	for _, v := range p.Values() {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}

func TestTavgDefaultsToExtremesMean(t *testing.T) {
	gd := testGrid(t)
	cfg := Default()
	cfg.Tmin, cfg.Tmax = Scalar(4.), Scalar(16.)
	p, err := New(gd, cfg)
	require.NoError(t, err)
	require.NoError(t, p.Update())
	assert.InDelta(t, 10., p.Tavg().Float(), 1e-12)
}
