package petgrid

import "fmt"

// resolve normalizes a scalar-or-field input: node-length arrays are
// registered on the private grid copy and remapped onto cells; arrays sized
// to neither the node nor the cell count are rejected before any broadcast
// can index past them.
func (p *PET) resolve(v Value, name string) (Value, error) {
	if !v.IsField() {
		return v, nil
	}
	if v.k == nodeKind && len(v.a) == p.gd.Nnodes() {
		if err := p.scratch.AddNodeField(name, v.a); err != nil {
			return v, fmt.Errorf("petgrid: %v", err)
		}
		cv, err := p.scratch.NodeToCell(name)
		if err != nil {
			return v, fmt.Errorf("petgrid: %v", err)
		}
		return CellField(cv), nil
	}
	if len(v.a) != p.gd.Ncells() && len(v.a) != p.gd.Nnodes() {
		return v, &DimensionError{Field: name, Size: len(v.a), Want: p.gd.Ncells()}
	}
	return v, nil
}

// validateTemperatureRange checks that both daily temperature extremes are
// supplied and ordered, then maps them onto cells if given as node fields.
func (p *PET) validateTemperatureRange(tn, tx Value) (Value, Value, error) {
	if !tn.IsSet() || !tx.IsSet() {
		return tn, tx, fmt.Errorf("%w: Tmin and Tmax are required fields", ErrInvalidConfiguration)
	}
	if anyGreater(tn, tx) {
		return tn, tx, fmt.Errorf("%w: Tmin must be less than Tmax", ErrInvalidConfiguration)
	}
	tn, err := p.resolve(tn, "min_temperature")
	if err != nil {
		return tn, tx, err
	}
	tx, err = p.resolve(tx, "max_temperature")
	if err != nil {
		return tn, tx, err
	}
	return tn, tx, nil
}

// validateLAI maps a distributed leaf area index onto cells if given as a
// node field; no range check applies.
func (p *PET) validateLAI(lai Value) (Value, error) {
	return p.resolve(lai, "leaf_area_index")
}

// checkGeometryDims asserts that any distributed vegetation-geometry input
// has exactly one entry per grid cell.
func (p *PET) checkGeometryDims() error {
	nc := p.gd.Ncells()
	for _, c := range []struct {
		name string
		v    Value
	}{
		{"Zveg", p.zveg},
		{"Zo", p.zo},
		{"Zd", p.zd},
	} {
		if c.v.IsField() && len(c.v.a) != nc {
			return &DimensionError{Field: c.name, Size: len(c.v.a), Want: nc}
		}
	}
	return nil
}

// canopyDefaults derives the working displacement height and roughness length.
// While both remain at their defaults and a vegetation height is given, they
// are re-derived from it (Zd = 0.7 Zveg, Zo = 0.1 Zveg) so that later changes
// to the vegetation height keep propagating.
func (p *PET) canopyDefaults() {
	p.zdw, p.zow = p.zd, p.zo
	if !p.zveg.IsSet() {
		return
	}
	zoDef := !p.zo.IsField() && p.zo.s == zoDefault
	zdDef := !p.zd.IsField() && p.zd.s == zdDefault
	if zoDef && zdDef {
		nc := p.gd.Ncells()
		p.zdw = materialize(nc, p.zveg.IsField(), func(i int) float64 { return 0.7 * p.zveg.at(i) })
		p.zow = materialize(nc, p.zveg.IsField(), func(i int) float64 { return 0.1 * p.zveg.at(i) })
	}
}
