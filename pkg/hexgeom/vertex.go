package hexgeom

import "fmt"

// Vertex is the canonical unordered triple of three mutually adjacent
// cell coordinates: the point where three cells meet. Vertices are
// immutable; any permutation of the same triple compares equal and
// shares a key.
type Vertex struct {
	hexes [3]Axial
	key   uint64
}

// NewVertex builds the vertex where three cells meet. It fails with
// ErrInvalidGeometry unless all three pairwise distances equal 1.
func NewVertex(a, b, c Axial) (*Vertex, error) {
	if Distance(a, b) != 1 || Distance(a, c) != 1 || Distance(b, c) != 1 {
		return nil, fmt.Errorf("%w: hexes %v, %v and %v are not mutually adjacent", ErrInvalidGeometry, a, b, c)
	}
	return newVertexCanonical(a, b, c), nil
}

// VertexAt returns the vertex at corner vd of cell c. The flanking
// table guarantees mutual adjacency, so construction cannot fail.
func VertexAt(c Axial, vd VertexDirection) *Vertex {
	f1, f2 := vd.Flanking()
	return newVertexCanonical(c, c.Neighbor(f1), c.Neighbor(f2))
}

func newVertexCanonical(a, b, c Axial) *Vertex {
	if less(b, a) {
		a, b = b, a
	}
	if less(c, b) {
		b, c = c, b
		if less(b, a) {
			a, b = b, a
		}
	}
	v := &Vertex{hexes: [3]Axial{a, b, c}}
	v.key = hashCoords(a, b, c)
	return v
}

// Hexes returns the three participating coordinates in canonical order.
func (v *Vertex) Hexes() [3]Axial { return v.hexes }

// Key returns the canonical 64-bit identity of the vertex.
func (v *Vertex) Key() uint64 { return v.key }

// AdjacentTo reports whether c is one of the vertex's coordinates.
func (v *Vertex) AdjacentTo(c Axial) bool {
	return v.hexes[0] == c || v.hexes[1] == c || v.hexes[2] == c
}

// Equal reports logical equality.
func (v *Vertex) Equal(o *Vertex) bool { return o != nil && v.hexes == o.hexes }

// HexTowards returns the stored coordinate that lies in corner
// direction vd as seen from the vertex: the candidate whose vertex at
// the opposite corner reproduces this exact vertex. Each vertex
// resolves exactly three of the six directions; ok is false for the
// rest, and false for all six only on a vertex that was never validly
// built.
func (v *Vertex) HexTowards(vd VertexDirection) (Axial, bool) {
	opp := vd.Opposite()
	for _, h := range v.hexes {
		if VertexAt(h, opp).key == v.key {
			return h, true
		}
	}
	return Axial{}, false
}

func (v *Vertex) String() string {
	return fmt.Sprintf("Vertex%v-%v-%v", v.hexes[0], v.hexes[1], v.hexes[2])
}
