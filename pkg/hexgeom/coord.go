// Package hexgeom provides axial coordinate math and the canonical
// geometric primitives (Edge, Vertex) of a pointy-top hexagonal grid.
package hexgeom

// Axial represents axial coordinates (q, r) for pointy-top orientation.
// The third cube coordinate s = -q - r is derived.
type Axial struct {
	Q int
	R int
}

// S returns the implicit third cube coordinate.
func (a Axial) S() int { return -a.Q - a.R }

// Add returns a+b in axial space.
func (a Axial) Add(b Axial) Axial { return Axial{a.Q + b.Q, a.R + b.R} }

// Sub returns a-b in axial space.
func (a Axial) Sub(b Axial) Axial { return Axial{a.Q - b.Q, a.R - b.R} }

// Mul scales an axial vector by k.
func (a Axial) Mul(k int) Axial { return Axial{a.Q * k, a.R * k} }

// Neighbor returns the adjacent coordinate in the given direction.
func (a Axial) Neighbor(d Direction) Axial { return a.Add(d.Delta()) }

// Neighbors returns all six adjacent coordinates. Existence in any grid
// is irrelevant here; this is pure arithmetic over the infinite plane.
func (a Axial) Neighbors() [6]Axial {
	var out [6]Axial
	for i, d := range AllDirections {
		out[i] = a.Neighbor(d)
	}
	return out
}

// Distance returns the hex distance between two axial coordinates.
func Distance(a, b Axial) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	return (abs(dq) + abs(dq+dr) + abs(dr)) / 2
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// less orders coordinates by q then r; it is the total order behind
// every canonical form in this package.
func less(a, b Axial) bool {
	if a.Q != b.Q {
		return a.Q < b.Q
	}
	return a.R < b.R
}
