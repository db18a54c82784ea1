package petgrid

import "fmt"

// PET method names.
const (
	MethodPriestleyTaylor = "PriestleyTaylor"
	MethodPenmanMonteith  = "PenmanMonteith"
	MethodNetRadEqPE      = "NetRadEqPE"
	MethodCosine          = "Cosine"
)

// default sentinels; while an input sits at its sentinel it is re-derived
// every synchronization cycle
const (
	tavgDefault = 17.5  // [deg C] re-derived as the Tmin/Tmax mean
	zdDefault   = 0.084 // [m] re-derived as 0.7*Zveg when Zveg is given
	zoDefault   = 0.012 // [m] re-derived as 0.1*Zveg when Zveg is given
)

// Config collects the method selection, physical constants and optional field
// overrides for a PET engine. Any Value member may be a scalar, a cell array
// or a node array (node arrays are remapped onto cells).
type Config struct {
	Method string

	Alpha            float64 // Priestley-Taylor coefficient [-]
	RelativeHumidity float64 // [-]
	Albedo           float64 // shortwave albedo [-]
	AirDensity       Value   // [kg/m³]; derived from pressure and temperature when unset
	LatentHeatVap    float64 // latent heat of vaporization [Wd/(m·mm²)]
	PsychroConst     float64 // psychrometric constant [kPa/deg C]
	LAI              Value   // leaf area index [-]
	StefanBoltz      float64 // Stefan-Boltzmann constant [W/(m²K⁴)]
	SolarConst       float64 // [W/m²]
	Latitude         float64 // [deg]
	MeasurementElev  float64 // elevation of measurement [m]
	AdjustmentCoeff  float64 // predicts shortwave from the daily temperature range [(deg C)^-0.5]

	// seasonal (Cosine) method parameters
	Lag        float64 // lag between peak PET and solar forcing [d]
	DaysInYear float64
	MeanTmaxF  float64 // mean annual rate of peak daily PET [mm/d]
	DeltaD     float64 // calibrated range between max and min daily peak PET [mm/d]

	CurrentTime float64 // [yr], fractional part selects the day of year

	Tmin, Tmax   Value // daily temperature extremes [deg C], required
	Tavg         Value // daily average temperature [deg C]
	Temperatures Value // explicit distributed temperatures [deg C], preferred over Tavg when set

	Rl   float64 // stomatal wall resistance [s/m]
	Zm   float64 // wind measurement height [m]
	Zd   Value   // zero-plane displacement height [m]
	Zo   Value   // roughness length [m]
	Zveg Value   // vegetation height [m]
	Wind Value   // wind speed [m/s]

	Radiation Value // user-supplied net radiation [W/m²]; computed internally when unset
}

// Default returns the conventional semi-arid parameterization.
func Default() Config {
	return Config{
		Method:           MethodCosine,
		Alpha:            1.26,
		RelativeHumidity: 0.65,
		Albedo:           0.6,
		LatentHeatVap:    28.34,
		PsychroConst:     0.066,
		LAI:              Scalar(2.88),
		StefanBoltz:      5.67e-8,
		SolarConst:       1366.67,
		Latitude:         34.,
		MeasurementElev:  300.,
		AdjustmentCoeff:  0.18,
		Lag:              0.,
		DaysInYear:       365.,
		MeanTmaxF:        12.,
		DeltaD:           5.,
		CurrentTime:      0.5,
		Tmin:             Scalar(10.),
		Tmax:             Scalar(25.),
		Tavg:             Scalar(tavgDefault),
		Rl:               100.,
		Zm:               2.,
		Zd:               Scalar(zdDefault),
		Zo:               Scalar(zoDefault),
		Wind:             Scalar(3.12),
	}
}

func validMethod(m string) error {
	switch m {
	case MethodPriestleyTaylor, MethodPenmanMonteith, MethodNetRadEqPE, MethodCosine:
		return nil
	}
	return fmt.Errorf("%w: %s: invalid method name, must be one of {%s, %s, %s, %s}",
		ErrInvalidConfiguration, m, MethodPriestleyTaylor, MethodCosine, MethodNetRadEqPE, MethodPenmanMonteith)
}
