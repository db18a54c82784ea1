package solar

import (
	"math"
	"testing"

	"github.com/maseology/petgrid/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatModel(t *testing.T, albedo float64) *Model {
	t.Helper()
	gd, err := grid.NewDefinition(5, 4, 0.2)
	require.NoError(t, err)
	m, err := New(gd, 34., albedo, 300., 0.18, 1366.67, 5.67e-8)
	require.NoError(t, err)
	m.Tmin, m.Tmax = gd.CellArray(10.), gd.CellArray(25.)
	return m
}

func TestPressureAtElevation(t *testing.T) {
	m := flatModel(t, 0.6)
	assert.InDelta(t, 97.8, m.P, 0.2, "standard atmosphere at 300 m")
}

func TestFlatTerrainUnitRatio(t *testing.T) {
	m := flatModel(t, 0.6)
	m.CurrentTime = 0.5
	m.Update()
	for i := range m.Ratio {
		assert.Equal(t, 1., m.Ratio[i])
		assert.False(t, math.IsNaN(m.NetFlux[i]) || math.IsInf(m.NetFlux[i], 0))
		assert.GreaterOrEqual(t, m.NetShortwave[i], 0.)
		assert.GreaterOrEqual(t, m.NetLongwave[i], 0.)
		assert.Equal(t, m.NetShortwave[i]-m.NetLongwave[i], m.NetFlux[i])
	}
}

func TestAlbedoReducesShortwave(t *testing.T) {
	lo, hi := flatModel(t, 0.23), flatModel(t, 0.6)
	lo.CurrentTime, hi.CurrentTime = 0.5, 0.5
	lo.Update()
	hi.Update()
	for i := range lo.NetShortwave {
		assert.Greater(t, lo.NetShortwave[i], hi.NetShortwave[i])
	}
}

func TestSeasonalCycle(t *testing.T) {
	m := flatModel(t, 0.23)
	m.CurrentTime = 0.5 // midsummer at 34N
	m.Update()
	summer := m.NetShortwave[0]

	m.CurrentTime = 0.0 // midwinter
	m.Update()
	winter := m.NetShortwave[0]
	assert.Greater(t, summer, winter)
}

func TestPolarNight(t *testing.T) {
	gd, err := grid.NewDefinition(5, 4, 0.2)
	require.NoError(t, err)
	m, err := New(gd, 80., 0.23, 0., 0.18, 1366.67, 5.67e-8)
	require.NoError(t, err)
	m.Tmin, m.Tmax = gd.CellArray(-30.), gd.CellArray(-20.)
	m.CurrentTime = 0.0
	m.Update()
	for i := range m.NetShortwave {
		assert.Zero(t, m.NetShortwave[i])
	}
}

func TestTerrainFactorsEngage(t *testing.T) {
	gd, err := grid.NewDefinition(5, 4, 1.)
	require.NoError(t, err)
	elev := make([]float64, gd.Nnodes())
	for i := range elev {
		elev[i] = 0.2 * float64(i/gd.Nc) // northward incline
	}
	require.NoError(t, gd.AddNodeField(ElevField, elev))

	m, err := New(gd, 34., 0.23, 300., 0.18, 1366.67, 5.67e-8)
	require.NoError(t, err)
	m.Tmin, m.Tmax = gd.CellArray(10.), gd.CellArray(25.)
	m.CurrentTime = 0.5
	m.Update()
	for i := range m.Ratio {
		assert.Greater(t, m.Ratio[i], 0.)
		assert.False(t, math.IsNaN(m.Ratio[i]))
	}
}
