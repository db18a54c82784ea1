package petgrid

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Update recomputes the PET rate under current conditions and writes it in
// place into the FieldName cell field. Validation failures abort the call
// before the output field is modified, leaving prior contents untouched.
//
// The PenmanMonteith method draws on the temperature, wind and vegetation
// inputs; PriestleyTaylor on the temperature extremes; NetRadEqPE on the
// working net radiation alone; Cosine only on the current time.
func (p *PET) Update() error {
	if err := p.updateRad(); err != nil {
		return err
	}

	var pet Value
	switch p.method {
	case MethodPriestleyTaylor:
		pet = p.priestleyTaylor()
	case MethodPenmanMonteith:
		pet = p.penmanMonteith()
	case MethodNetRadEqPE:
		pet = p.netRadEqPE()
	case MethodCosine:
		pet = p.cosine()
	}

	// all methods scale by the per-cell flat-surface ratio on the way out
	if pet.IsField() {
		floats.MulTo(p.out, pet.a, p.rad.Ratio)
	} else {
		copy(p.out, p.rad.Ratio)
		floats.Scale(pet.s, p.out)
	}
	return nil
}

func (p *PET) priestleyTaylor() Value {
	return materialize(p.gd.Ncells(), anyField(p.delta, p.inputRad), func(i int) float64 {
		d := p.delta.at(i)
		return math.Max(p.alpha*(d/(d+p.gamma))*(p.inputRad.at(i)/p.pwhv), 0.)
	})
}

func (p *PET) penmanMonteith() Value {
	dist := anyField(p.delta, p.inputRad, p.ghf, p.lai, p.paw, p.vz, p.zdw, p.zow, p.es, p.ea)
	return materialize(p.gd.Ncells(), dist, func(i int) float64 {
		deltaTerm := p.delta.at(i) * (p.inputRad.at(i) - p.ghf.at(i))

		// bulk stomatal resistance over the active (sunlit) half of the canopy
		rs := p.rl / (0.5 * p.lai.at(i))

		// calm-air guard: substitute a unit wind speed rather than divide by
		// zero (an approximation, not physically rigorous)
		vz := p.vz.at(i)
		if vz == 0. {
			vz = 1.
		}
		lnz := math.Log((p.zm - p.zdw.at(i)) / p.zow.at(i))
		ra := lnz * lnz / (karman * karman * vz)

		vaporTerm := ca * p.paw.at(i) * (p.es.at(i) - p.ea.at(i)) / ra
		denom := p.pwhv * (p.delta.at(i) + p.gamma*(1.+rs/ra))
		return (deltaTerm + vaporTerm) / denom
	})
}

// netRadEqPE neglects the ground and sensible heat fluxes.
func (p *PET) netRadEqPE() Value {
	return materialize(p.gd.Ncells(), p.inputRad.IsField(), func(i int) float64 {
		return p.inputRad.at(i) / p.pwhv
	})
}

// cosine is the seasonal sinusoidal approximation of Zhou et al. (2013); it
// depends only on the day of year.
func (p *PET) cosine() Value {
	j := math.Floor((p.currentTime - math.Floor(p.currentTime)) * 365.)
	return Scalar(math.Max(p.tmaxFmean+p.deltaD/2.*math.Cos(2.*math.Pi*(j-p.lt-p.nd/2.)/p.nd), 0.))
}
