package petgrid

// Value is a physical input that may be a single number broadcast over all
// cells, or an array distributed at grid cells or at grid nodes. Node-defined
// arrays are remapped onto cells during resolution; once resolved, a Value is
// either a scalar or a cell-length array.
type Value struct {
	k kind
	s float64
	a []float64
}

type kind int

const (
	unset kind = iota
	scalarKind
	cellKind
	nodeKind
)

// Scalar wraps a single number applying to every cell.
func Scalar(v float64) Value { return Value{k: scalarKind, s: v} }

// CellField wraps an array with one value per grid cell.
func CellField(a []float64) Value { return Value{k: cellKind, a: a} }

// NodeField wraps an array with one value per grid node.
func NodeField(a []float64) Value { return Value{k: nodeKind, a: a} }

// IsSet reports whether the value was supplied at all.
func (v Value) IsSet() bool { return v.k != unset }

// IsField reports whether the value is spatially distributed.
func (v Value) IsField() bool { return v.k == cellKind || v.k == nodeKind }

// Float returns the scalar value (0 when distributed or unset).
func (v Value) Float() float64 { return v.s }

// Slice returns the backing array, nil when scalar or unset.
func (v Value) Slice() []float64 { return v.a }

// at returns the value applying to cell i, broadcasting scalars.
func (v Value) at(i int) float64 {
	if v.a == nil {
		return v.s
	}
	return v.a[i]
}

// anyField reports whether any of vs is spatially distributed.
func anyField(vs ...Value) bool {
	for _, v := range vs {
		if v.IsField() {
			return true
		}
	}
	return false
}

// materialize evaluates f per cell when distributed is set, otherwise once as
// a broadcast scalar.
func materialize(nc int, distributed bool, f func(i int) float64) Value {
	if !distributed {
		return Scalar(f(0))
	}
	a := make([]float64, nc)
	for i := range a {
		a[i] = f(i)
	}
	return CellField(a)
}

// anyGreater reports whether a exceeds b anywhere, elementwise where both are
// arrays of equal length, broadcasting scalars. Arrays of differing lengths
// are left for dimension checks downstream.
func anyGreater(a, b Value) bool {
	switch {
	case !a.IsField() && !b.IsField():
		return a.s > b.s
	case a.IsField() && !b.IsField():
		for _, v := range a.a {
			if v > b.s {
				return true
			}
		}
	case !a.IsField() && b.IsField():
		for _, v := range b.a {
			if a.s > v {
				return true
			}
		}
	default:
		if len(a.a) != len(b.a) {
			return false
		}
		for i, v := range a.a {
			if v > b.a[i] {
				return true
			}
		}
	}
	return false
}
