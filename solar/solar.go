package solar

import (
	"fmt"
	"math"

	"github.com/maseology/goHydro/solirrad"
	"github.com/maseology/petgrid/grid"
)

// ElevField is the node field consulted for terrain shading factors.
const ElevField = "topographic__elevation"

// Model computes daily per-cell radiative fluxes over a raster grid. Input
// fields are pushed in by the owning component before every Update; outputs
// are only valid immediately after an Update.
type Model struct {
	// inputs, set by the owner before each Update
	CurrentTime float64   // fractional years
	Latitude    float64   // [deg]
	Albedo      float64   // shortwave albedo [-]
	Tmin, Tmax  []float64 // per-cell daily temperature extremes [deg C]

	Krs   float64 // coefficient predicting solar radiation from the daily temperature range [(deg C)^-0.5]
	Gsc   float64 // solar constant [W/m²]
	Sigma float64 // Stefan-Boltzmann constant [W/(m²K⁴)]
	P     float64 // atmospheric pressure at measurement elevation [kPa]

	// outputs, per cell [W/m²] (Ratio dimensionless)
	NetShortwave, NetLongwave, NetFlux, Ratio []float64

	elev float64         // measurement elevation [m]
	fac  [][366]float64  // per-cell slope/aspect correction by day of year; nil over flat terrain
}

// New builds a radiation model over gd. When gd carries a node elevation
// field, per-cell slope/aspect irradiation factors are built from it;
// otherwise all cells are treated as flat (unit ratio).
func New(gd *grid.Definition, latitude, albedo, elev, krs, gsc, sigma float64) (*Model, error) {
	nc := gd.Ncells()
	m := &Model{
		Latitude:     latitude,
		Albedo:       albedo,
		Krs:          krs,
		Gsc:          gsc,
		Sigma:        sigma,
		P:            pressure(elev),
		NetShortwave: make([]float64, nc),
		NetLongwave:  make([]float64, nc),
		NetFlux:      make([]float64, nc),
		Ratio:        gd.CellArray(1.),
		elev:         elev,
	}
	if ez := gd.NodeField(ElevField); ez != nil {
		slope, aspect, err := gd.SlopeAspect(ez)
		if err != nil {
			return nil, fmt.Errorf("solar.New: %v", err)
		}
		m.fac = make([][366]float64, nc)
		for i := 0; i < nc; i++ {
			si := solirrad.New(latitude, slope[i], aspect[i])
			m.fac[i] = si.PSIfactor
		}
	}
	return m, nil
}

// pressure returns the standard atmospheric pressure [kPa] at elevation z [m].
func pressure(z float64) float64 {
	return 101.325 * math.Pow((293.-0.0065*z)/293., 5.26)
}

func satVaporPressure(tc float64) float64 {
	return 0.6108 * math.Exp(17.27*tc/(237.7+tc))
}

// Update recomputes the per-cell flux and ratio outputs from the current
// input state.
func (m *Model) Update() {
	j := int((m.CurrentTime - math.Floor(m.CurrentTime)) * 365.) // day of year, zero-based
	phi := m.Latitude * math.Pi / 180.

	// daily-mean extraterrestrial radiation on a flat surface
	g := 2. * math.Pi * float64(j+1) / 365.
	dr := 1. + 0.033*math.Cos(g)
	decl := 0.409 * math.Sin(g-1.39)
	cws := -math.Tan(phi) * math.Tan(decl)
	if cws > 1. {
		cws = 1. // polar night
	} else if cws < -1. {
		cws = -1. // polar day
	}
	ws := math.Acos(cws)
	ra := m.Gsc / math.Pi * dr * (ws*math.Sin(phi)*math.Sin(decl) + math.Cos(phi)*math.Cos(decl)*math.Sin(ws))
	if ra < 0. {
		ra = 0.
	}
	rso := (0.75 + 2e-5*m.elev) * ra // clear-sky envelope

	for i := range m.NetFlux {
		tn, tx := m.Tmin[i], m.Tmax[i]

		// Hargreaves-type prediction of incoming shortwave from the daily
		// temperature range, capped at the clear-sky envelope
		dt := tx - tn
		if dt < 0. {
			dt = 0.
		}
		rs := m.Krs * math.Sqrt(dt) * ra
		if rs > rso {
			rs = rso
		}
		m.NetShortwave[i] = (1. - m.Albedo) * rs

		// net outgoing longwave, dew point taken at the daily minimum
		fcd := 0.05
		if rso > 0. {
			fcd = 1.35*rs/rso - 0.35
			if fcd < 0.05 {
				fcd = 0.05
			} else if fcd > 1. {
				fcd = 1.
			}
		}
		ea := satVaporPressure(tn)
		tk4 := (math.Pow(tx+273.16, 4.) + math.Pow(tn+273.16, 4.)) / 2.
		m.NetLongwave[i] = m.Sigma * tk4 * (0.34 - 0.14*math.Sqrt(ea)) * fcd

		m.NetFlux[i] = m.NetShortwave[i] - m.NetLongwave[i]
		if m.fac != nil {
			m.Ratio[i] = m.fac[i][j]
		}
	}
}
