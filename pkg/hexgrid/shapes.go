package hexgrid

import "github.com/gravitas-games/hexland/pkg/hexgeom"

// Ring returns the coordinates at exact distance k from center c,
// starting south-west of the center and proceeding counter-clockwise.
// If k == 0, returns [c].
func Ring(c hexgeom.Axial, k int) []hexgeom.Axial {
	if k == 0 {
		return []hexgeom.Axial{c}
	}
	res := make([]hexgeom.Axial, 0, 6*k)
	cur := c.Add(hexgeom.DirSouthWest.Delta().Mul(k))
	for _, side := range hexgeom.AllDirections {
		for step := 0; step < k; step++ {
			res = append(res, cur)
			cur = cur.Neighbor(side)
		}
	}
	return res
}

// Disk returns all coordinates at distance <= r from center c, in a
// deterministic row-major order.
func Disk(c hexgeom.Axial, r int) []hexgeom.Axial {
	size := 1 + 3*r*(r+1)
	res := make([]hexgeom.Axial, 0, size)
	for q := -r; q <= r; q++ {
		for r2 := max(-r, -q-r); r2 <= min(r, -q+r); r2++ {
			res = append(res, c.Add(hexgeom.Axial{Q: q, R: r2}))
		}
	}
	return res
}

// NewHexagon builds the standard hexagon-shaped grid of the given
// radius around the origin.
func NewHexagon(radius int) *Grid {
	return New(Disk(hexgeom.Axial{}, radius))
}
