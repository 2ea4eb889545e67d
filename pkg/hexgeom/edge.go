package hexgeom

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ErrInvalidGeometry reports an Edge or Vertex constructed from
// coordinates that are not mutually adjacent.
var ErrInvalidGeometry = errors.New("hexgeom: invalid geometry")

// Edge is the canonical unordered pair of two mutually adjacent cell
// coordinates. Edges are immutable once constructed; two edges built
// from the same pair in either order compare equal and share a key.
type Edge struct {
	hexes [2]Axial
	key   uint64
}

// NewEdge builds the edge between two adjacent coordinates. It fails
// with ErrInvalidGeometry unless Distance(a, b) == 1.
func NewEdge(a, b Axial) (*Edge, error) {
	if Distance(a, b) != 1 {
		return nil, fmt.Errorf("%w: hexes %v and %v are not adjacent", ErrInvalidGeometry, a, b)
	}
	return newEdgeCanonical(a, b), nil
}

// EdgeAt returns the edge on side d of cell c. The delta table
// guarantees adjacency, so construction cannot fail.
func EdgeAt(c Axial, d Direction) *Edge {
	return newEdgeCanonical(c, c.Neighbor(d))
}

func newEdgeCanonical(a, b Axial) *Edge {
	if less(b, a) {
		a, b = b, a
	}
	e := &Edge{hexes: [2]Axial{a, b}}
	e.key = hashCoords(a, b)
	return e
}

// Hexes returns the two participating coordinates in canonical order.
func (e *Edge) Hexes() [2]Axial { return e.hexes }

// Key returns the canonical 64-bit identity of the edge. Two logically
// identical edges always share a key.
func (e *Edge) Key() uint64 { return e.key }

// AdjacentTo reports whether c is one of the edge's two coordinates.
func (e *Edge) AdjacentTo(c Axial) bool {
	return e.hexes[0] == c || e.hexes[1] == c
}

// Equal reports logical equality.
func (e *Edge) Equal(o *Edge) bool { return o != nil && e.hexes == o.hexes }

func (e *Edge) String() string {
	return fmt.Sprintf("Edge%v-%v", e.hexes[0], e.hexes[1])
}

func (a Axial) String() string { return fmt.Sprintf("(%d,%d)", a.Q, a.R) }

// hashCoords produces a canonical content hash over an ordered
// coordinate sequence.
func hashCoords(coords ...Axial) uint64 {
	h := xxhash.New()
	var buf [8]byte
	for _, c := range coords {
		binary.LittleEndian.PutUint32(buf[0:4], uint32(int32(c.Q)))
		binary.LittleEndian.PutUint32(buf[4:8], uint32(int32(c.R)))
		h.Write(buf[:])
	}
	return h.Sum64()
}
