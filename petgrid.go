// Package petgrid computes spatially distributed potential evapotranspiration
// over a raster grid using one of several interchangeable formulations
// (Priestley-Taylor, Penman-Monteith, net-radiation equivalence, or a seasonal
// cosine approximation), for use inside a larger hydrologic simulation.
// Ref: Zhou et al. (2013) for the Cosine method and the ASCE-EWRI Task
// Committee Report (2005) for the radiation and psychrometric relations.
package petgrid

import (
	"fmt"

	"github.com/maseology/petgrid/grid"
	"github.com/maseology/petgrid/solar"
)

// FieldName is the cell field receiving the computed PET rate [mm].
const FieldName = "surface__potential_evapotranspiration_rate"

// PET computes a per-cell potential evapotranspiration rate on every call to
// Update, writing it in place into the grid's FieldName cell field. Inputs
// may be mutated between updates; every update re-validates and re-derives
// internal state before computing. Not safe for concurrent use.
type PET struct {
	gd      *grid.Definition
	scratch *grid.Definition // private copy receiving node fields during remapping
	rad     *solar.Model
	out     []float64 // the registered FieldName cell field

	method      string
	alpha       float64
	rh          float64
	albedo      float64
	pwhv        float64 // latent heat of vaporization [Wd/(m·mm²)]
	gamma       float64 // psychrometric constant [kPa/deg C]
	latitude    float64 // [deg]
	lt, nd      float64 // Cosine method lag and days in year
	tmaxFmean   float64 // Cosine method mean annual peak rate [mm/d]
	deltaD      float64 // Cosine method seasonal range [mm/d]
	currentTime float64 // [yr]
	rl, zm      float64
	zd, zo      Value
	zveg        Value
	vz          Value // wind speed
	pa          Value // user air density; derived each cycle when unset
	lai         Value
	tmin, tmax  Value
	tavg        Value
	temps       Value // explicit distributed temperatures
	userRad     Value

	// scratch state, valid only within an update cycle
	inputRad   Value // working net radiation [W/m²]
	ghf        Value // ground heat flux [W/m²]
	temp       Value // working mean temperature [deg C]
	es, ea     Value // saturation and actual vapor pressure [kPa]
	delta      Value // slope of the saturation vapor pressure curve [kPa/deg C]
	zdw, zow   Value // working canopy geometry after defaulting
	paw        Value // working air density
	tnb, txb   []float64 // broadcast buffers pushed into the radiation model
}

const (
	karman = 0.4  // von Karman constant for air and clear water
	ca     = 1.22 // specific heat term from the Penman paper
)

// New builds a PET engine over gd, registering a zeroed FieldName cell field.
// The grid is treated as read/append-only; node-defined inputs are remapped
// through a private copy so the caller's node-field namespace stays clean.
func New(gd *grid.Definition, cfg Config) (*PET, error) {
	if err := validMethod(cfg.Method); err != nil {
		return nil, err
	}
	nc := gd.Ncells()
	p := &PET{
		gd:          gd,
		scratch:     gd.Copy(),
		method:      cfg.Method,
		alpha:       cfg.Alpha,
		rh:          cfg.RelativeHumidity,
		albedo:      cfg.Albedo,
		pwhv:        cfg.LatentHeatVap,
		gamma:       cfg.PsychroConst,
		latitude:    cfg.Latitude,
		lt:          cfg.Lag,
		nd:          cfg.DaysInYear,
		tmaxFmean:   cfg.MeanTmaxF,
		deltaD:      cfg.DeltaD,
		currentTime: cfg.CurrentTime,
		rl:          cfg.Rl,
		zm:          cfg.Zm,
		zd:          cfg.Zd,
		zo:          cfg.Zo,
		zveg:        cfg.Zveg,
		vz:          cfg.Wind,
		pa:          cfg.AirDensity,
		lai:         cfg.LAI,
		tmin:        cfg.Tmin,
		tmax:        cfg.Tmax,
		tavg:        cfg.Tavg,
		temps:       cfg.Temperatures,
		userRad:     cfg.Radiation,
		tnb:         make([]float64, nc),
		txb:         make([]float64, nc),
	}

	var err error
	if p.lai, err = p.validateLAI(p.lai); err != nil {
		return nil, err
	}
	if p.tmin, p.tmax, err = p.validateTemperatureRange(p.tmin, p.tmax); err != nil {
		return nil, err
	}

	p.out = gd.CellArray(0.)
	if err := gd.AddCellField(FieldName, p.out); err != nil {
		return nil, fmt.Errorf("petgrid.New: %v", err)
	}

	if p.rad, err = solar.New(gd, cfg.Latitude, cfg.Albedo, cfg.MeasurementElev,
		cfg.AdjustmentCoeff, cfg.SolarConst, cfg.StefanBoltz); err != nil {
		return nil, err
	}

	if err := p.updateRad(); err != nil {
		return nil, err
	}
	return p, nil
}

// Values returns the registered PET rate cell field; its contents are
// overwritten in place by every successful Update.
func (p *PET) Values() []float64 { return p.out }

// Radiation returns the user-supplied net radiation input.
func (p *PET) Radiation() Value { return p.userRad }

// SetRadiation overrides the internally computed net radiation. Pass the
// zero Value to revert to the radiation model's output.
func (p *PET) SetRadiation(v Value) { p.userRad = v }

// Tmin returns the minimum daily temperature; after an update this is the
// resolved (cell-mapped) value.
func (p *PET) Tmin() Value { return p.tmin }

// SetTmin sets the minimum daily temperature [deg C].
func (p *PET) SetTmin(v Value) { p.tmin = v }

// Tmax returns the maximum daily temperature; after an update this is the
// resolved (cell-mapped) value.
func (p *PET) Tmax() Value { return p.tmax }

// SetTmax sets the maximum daily temperature [deg C].
func (p *PET) SetTmax(v Value) { p.tmax = v }

// Tavg returns the average daily temperature; while left at its default it is
// re-derived from the extremes every update.
func (p *PET) Tavg() Value { return p.tavg }

// SetTavg sets the average daily temperature [deg C].
func (p *PET) SetTavg(v Value) { p.tavg = v }

// CurrentTime returns the simulation time [yr].
func (p *PET) CurrentTime() float64 { return p.currentTime }

// SetCurrentTime sets the simulation time [yr]; the fractional part selects
// the day of year.
func (p *PET) SetCurrentTime(t float64) { p.currentTime = t }

// SetZveg sets the vegetation height [m]; while the displacement height and
// roughness length remain at their defaults they are re-derived from it every
// update.
func (p *PET) SetZveg(v Value) { p.zveg = v }

// SetWind sets the wind speed [m/s].
func (p *PET) SetWind(v Value) { p.vz = v }
