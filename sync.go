package petgrid

import "math"

// satVaporPressure is the saturation vapor pressure [kPa] at tc [deg C]
// (ASCE-EWRI 2005, Eqn 6).
func satVaporPressure(tc float64) float64 {
	return 0.6108 * math.Exp(17.27*tc/(237.7+tc))
}

// updateRad brings the radiation model and every derived psychrometric
// quantity in line with the current configuration. Inputs are often mutated
// between cycles, so this runs before every PET computation; it is idempotent
// and safe to call every cycle.
func (p *PET) updateRad() error {
	var err error
	if p.tmin, p.tmax, err = p.validateTemperatureRange(p.tmin, p.tmax); err != nil {
		return err
	}
	if p.lai, err = p.validateLAI(p.lai); err != nil {
		return err
	}

	// push current state into the radiation model and recompute its fluxes
	nc := p.gd.Ncells()
	for i := 0; i < nc; i++ {
		p.tnb[i] = p.tmin.at(i)
		p.txb[i] = p.tmax.at(i)
	}
	p.rad.CurrentTime = p.currentTime
	p.rad.Tmin, p.rad.Tmax = p.tnb, p.txb
	p.rad.Albedo = p.albedo
	p.rad.Latitude = p.latitude
	p.rad.Update()

	// The net shortwave and longwave fluxes are also available and could be
	// summed here instead; the model's own net flux output is taken as
	// authoritative.
	if p.userRad.IsSet() {
		if p.inputRad, err = p.resolve(p.userRad, "net_radiation"); err != nil {
			return err
		}
	} else {
		p.inputRad = CellField(p.rad.NetFlux)
	}

	// ground heat flux, 10% of net radiation
	p.ghf = materialize(nc, p.inputRad.IsField(), func(i int) float64 { return 0.1 * p.inputRad.at(i) })

	// working mean temperature: an explicit distributed field wins, otherwise
	// Tavg, itself re-derived from the extremes while left at its default
	if !p.tavg.IsField() && (!p.tavg.IsSet() || p.tavg.s == tavgDefault) {
		p.tavg = materialize(nc, anyField(p.tmin, p.tmax), func(i int) float64 {
			return (p.tmin.at(i) + p.tmax.at(i)) / 2.
		})
	}
	p.temp = p.tavg
	if p.temps.IsSet() {
		if p.temp, err = p.resolve(p.temps, "temperatures"); err != nil {
			return err
		}
	}

	// saturation vapor pressure (ASCE-EWRI 2005, Eqn 6), actual vapor
	// pressure from the daily minimum and relative humidity (Eqn 8), and the
	// vapor pressure curve slope (Eqn 5)
	p.es = materialize(nc, p.temp.IsField(), func(i int) float64 { return satVaporPressure(p.temp.at(i)) })
	p.ea = materialize(nc, p.tmin.IsField(), func(i int) float64 { return satVaporPressure(p.tmin.at(i)) * p.rh })
	p.delta = materialize(nc, anyField(p.es, p.temp), func(i int) float64 {
		t := p.temp.at(i)
		return 4098. * p.es.at(i) / ((237.3 + t) * (237.3 + t))
	})

	if err := p.checkGeometryDims(); err != nil {
		return err
	}
	p.canopyDefaults()

	// air density from atmospheric pressure and temperature when not
	// user-supplied; the factor 1000 converts kg/m³ to the g/m³ convention of
	// the Penman-Monteith vapor term
	if p.pa.IsSet() {
		if p.paw, err = p.resolve(p.pa, "air_density"); err != nil {
			return err
		}
	} else {
		p.paw = materialize(nc, p.temp.IsField(), func(i int) float64 {
			return 3.47 * p.rad.P / (273.3 + p.temp.at(i)) * 1000.
		})
	}
	return nil
}
