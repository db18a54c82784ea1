package grid

import (
	"fmt"
	"math"
)

// Definition holds a uniform raster grid of Nr x Nc nodes. Cells are centred
// on interior nodes, giving (Nr-2)*(Nc-2) cells; nodes are ordered row-major
// from the lower-left corner. Named float fields may be registered at nodes
// or at cells.
type Definition struct {
	Nr, Nc       int     // node rows, columns
	Cs           float64 // uniform cell size [m]
	Eorig, Norig float64 // easting/northing of the lower-left node
	nfield       map[string][]float64
	cfield       map[string][]float64
}

// NewDefinition builds a raster grid definition of nr x nc nodes with uniform
// cell size cs.
func NewDefinition(nr, nc int, cs float64) (*Definition, error) {
	if nr < 3 || nc < 3 {
		return nil, fmt.Errorf("grid.NewDefinition: need at least 3x3 nodes to form cells, got %dx%d", nr, nc)
	}
	if cs <= 0. {
		return nil, fmt.Errorf("grid.NewDefinition: cell size must be positive, got %f", cs)
	}
	return &Definition{
		Nr:     nr,
		Nc:     nc,
		Cs:     cs,
		nfield: make(map[string][]float64),
		cfield: make(map[string][]float64),
	}, nil
}

// Nnodes returns the node count.
func (gd *Definition) Nnodes() int { return gd.Nr * gd.Nc }

// Ncells returns the cell count (one cell per interior node).
func (gd *Definition) Ncells() int { return (gd.Nr - 2) * (gd.Nc - 2) }

// CellNode returns the node ID at the centre of cell cid.
func (gd *Definition) CellNode(cid int) int {
	ncol := gd.Nc - 2
	return (cid/ncol+1)*gd.Nc + cid%ncol + 1
}

// CellCoord returns the easting/northing of the centre of cell cid.
func (gd *Definition) CellCoord(cid int) (x, y float64) {
	nid := gd.CellNode(cid)
	return gd.Eorig + float64(nid%gd.Nc)*gd.Cs, gd.Norig + float64(nid/gd.Nc)*gd.Cs
}

// CellArray allocates a cell-length array initialized to v.
func (gd *Definition) CellArray(v float64) []float64 {
	a := make([]float64, gd.Ncells())
	for i := range a {
		a[i] = v
	}
	return a
}

// AddNodeField registers a node field. The slice is held by reference.
func (gd *Definition) AddNodeField(name string, v []float64) error {
	if len(v) != gd.Nnodes() {
		return fmt.Errorf("grid.AddNodeField: %s length %d does not match node count %d", name, len(v), gd.Nnodes())
	}
	gd.nfield[name] = v
	return nil
}

// AddCellField registers a cell field. The slice is held by reference.
func (gd *Definition) AddCellField(name string, v []float64) error {
	if len(v) != gd.Ncells() {
		return fmt.Errorf("grid.AddCellField: %s length %d does not match cell count %d", name, len(v), gd.Ncells())
	}
	gd.cfield[name] = v
	return nil
}

// NodeField returns the named node field, nil if not registered.
func (gd *Definition) NodeField(name string) []float64 { return gd.nfield[name] }

// CellField returns the named cell field, nil if not registered.
func (gd *Definition) CellField(name string) []float64 { return gd.cfield[name] }

// NodeToCell maps a registered node field onto cells, taking the value at
// each cell's centre node.
func (gd *Definition) NodeToCell(name string) ([]float64, error) {
	nv, ok := gd.nfield[name]
	if !ok {
		return nil, fmt.Errorf("grid.NodeToCell: node field %s not registered", name)
	}
	cv := make([]float64, gd.Ncells())
	for i := range cv {
		cv[i] = nv[gd.CellNode(i)]
	}
	return cv, nil
}

// Copy returns a deep copy of the grid definition and its registered fields.
func (gd *Definition) Copy() *Definition {
	c := &Definition{
		Nr:     gd.Nr,
		Nc:     gd.Nc,
		Cs:     gd.Cs,
		Eorig:  gd.Eorig,
		Norig:  gd.Norig,
		nfield: make(map[string][]float64, len(gd.nfield)),
		cfield: make(map[string][]float64, len(gd.cfield)),
	}
	for k, v := range gd.nfield {
		a := make([]float64, len(v))
		copy(a, v)
		c.nfield[k] = a
	}
	for k, v := range gd.cfield {
		a := make([]float64, len(v))
		copy(a, v)
		c.cfield[k] = a
	}
	return c
}

// SlopeAspect derives per-cell slope [rad] and aspect [rad, clockwise from
// north] from a node elevation array, by central differences about each
// cell's centre node. Flat cells are given a north aspect.
func (gd *Definition) SlopeAspect(elev []float64) (slope, aspect []float64, err error) {
	if len(elev) != gd.Nnodes() {
		return nil, nil, fmt.Errorf("grid.SlopeAspect: elevation length %d does not match node count %d", len(elev), gd.Nnodes())
	}
	nc := gd.Ncells()
	slope, aspect = make([]float64, nc), make([]float64, nc)
	for i := 0; i < nc; i++ {
		nid := gd.CellNode(i)
		gx := (elev[nid+1] - elev[nid-1]) / (2. * gd.Cs)
		gy := (elev[nid+gd.Nc] - elev[nid-gd.Nc]) / (2. * gd.Cs)
		slope[i] = math.Atan(math.Hypot(gx, gy))
		if gx == 0. && gy == 0. {
			continue
		}
		a := math.Atan2(-gx, -gy) // azimuth of the downslope direction
		if a < 0. {
			a += 2. * math.Pi
		}
		aspect[i] = a
	}
	return slope, aspect, nil
}
