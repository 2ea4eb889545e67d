// Package hexgrid owns a finite, frozen set of hex cells and the
// memoized edge/vertex topology shared between them.
package hexgrid

import (
	"encoding/json"
	"fmt"

	"github.com/gravitas-games/hexland/pkg/hexgeom"
)

// Cell is a grid member. It carries no intrinsic payload; terrain and
// ownership live in overlays layered on top of the grid.
type Cell struct {
	Coord hexgeom.Axial
}

// Grid is a fixed set of cells plus caches of every edge and vertex
// shared between two or more members. The caches are populated once at
// construction and never mutated afterwards, so concurrent reads are
// safe; the grid has no post-construction write surface at all.
type Grid struct {
	cells map[hexgeom.Axial]*Cell
	order []hexgeom.Axial

	edges     map[uint64]*hexgeom.Edge
	edgeOrder []*hexgeom.Edge

	vertices    map[uint64]*hexgeom.Vertex
	vertexOrder []*hexgeom.Vertex
}

// New builds a grid from a cell list. Duplicate coordinates collapse;
// construction cannot fail. Cache population visits every cell once in
// input order, deriving its member-member edges and then the vertices
// flanking them, so enumeration order is deterministic and independent
// of later query order.
func New(cells []hexgeom.Axial) *Grid {
	g := &Grid{
		cells:    make(map[hexgeom.Axial]*Cell, len(cells)),
		edges:    make(map[uint64]*hexgeom.Edge),
		vertices: make(map[uint64]*hexgeom.Vertex),
	}
	for _, c := range cells {
		if _, dup := g.cells[c]; dup {
			continue
		}
		g.cells[c] = &Cell{Coord: c}
		g.order = append(g.order, c)
	}
	g.populate()
	return g
}

// populate interns every edge between two members and every vertex
// touching at least two members. Vertices with a single member cell
// stay uncached: they only ever exist as query-time values.
func (g *Grid) populate() {
	for _, c := range g.order {
		for _, d := range hexgeom.AllDirections {
			if _, ok := g.cells[c.Neighbor(d)]; ok {
				g.internEdge(hexgeom.EdgeAt(c, d))
			}
		}
		for _, vd := range hexgeom.AllVertexDirections {
			f1, f2 := vd.Flanking()
			_, m1 := g.cells[c.Neighbor(f1)]
			_, m2 := g.cells[c.Neighbor(f2)]
			if m1 || m2 {
				g.internVertex(hexgeom.VertexAt(c, vd))
			}
		}
	}
}

func (g *Grid) internEdge(e *hexgeom.Edge) *hexgeom.Edge {
	if cached, ok := g.edges[e.Key()]; ok {
		return cached
	}
	g.edges[e.Key()] = e
	g.edgeOrder = append(g.edgeOrder, e)
	return e
}

func (g *Grid) internVertex(v *hexgeom.Vertex) *hexgeom.Vertex {
	if cached, ok := g.vertices[v.Key()]; ok {
		return cached
	}
	g.vertices[v.Key()] = v
	g.vertexOrder = append(g.vertexOrder, v)
	return v
}

// cachedEdge routes a derived edge through the cache: hits return the
// interned instance, misses return the fresh value untouched so the
// frozen cache never grows after construction.
func (g *Grid) cachedEdge(e *hexgeom.Edge) *hexgeom.Edge {
	if cached, ok := g.edges[e.Key()]; ok {
		return cached
	}
	return e
}

func (g *Grid) cachedVertex(v *hexgeom.Vertex) *hexgeom.Vertex {
	if cached, ok := g.vertices[v.Key()]; ok {
		return cached
	}
	return v
}

// Size returns the number of member cells.
func (g *Grid) Size() int { return len(g.order) }

// HasHex reports membership of a coordinate.
func (g *Grid) HasHex(c hexgeom.Axial) bool {
	_, ok := g.cells[c]
	return ok
}

// CellAt returns the member cell at a coordinate.
func (g *Grid) CellAt(c hexgeom.Axial) (*Cell, bool) {
	cell, ok := g.cells[c]
	return cell, ok
}

// Hexes returns the member coordinates in construction order.
func (g *Grid) Hexes() []hexgeom.Axial {
	out := make([]hexgeom.Axial, len(g.order))
	copy(out, g.order)
	return out
}

// Neighbors returns only the neighbors of c that are grid members.
func (g *Grid) Neighbors(c hexgeom.Axial) []hexgeom.Axial {
	out := make([]hexgeom.Axial, 0, 6)
	for _, d := range hexgeom.AllDirections {
		n := c.Neighbor(d)
		if _, ok := g.cells[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

// EdgesForHex derives all six edges incident to c, whether or not the
// far cells are members: topology is defined over the infinite
// coordinate space, not just populated cells. Every result is routed
// through the shared cache, so an edge reached from either of its two
// cells is the same cached instance.
func (g *Grid) EdgesForHex(c hexgeom.Axial) []*hexgeom.Edge {
	out := make([]*hexgeom.Edge, 0, 6)
	for _, d := range hexgeom.AllDirections {
		out = append(out, g.cachedEdge(hexgeom.EdgeAt(c, d)))
	}
	return out
}

// VerticesForHex derives all six corner vertices of c regardless of
// neighbor membership, routed through the shared cache.
func (g *Grid) VerticesForHex(c hexgeom.Axial) []*hexgeom.Vertex {
	out := make([]*hexgeom.Vertex, 0, 6)
	for _, vd := range hexgeom.AllVertexDirections {
		out = append(out, g.cachedVertex(hexgeom.VertexAt(c, vd)))
	}
	return out
}

// EdgeAt returns the cache-routed edge on side d of cell c.
func (g *Grid) EdgeAt(c hexgeom.Axial, d hexgeom.Direction) *hexgeom.Edge {
	return g.cachedEdge(hexgeom.EdgeAt(c, d))
}

// VertexAt returns the cache-routed vertex at corner vd of cell c.
func (g *Grid) VertexAt(c hexgeom.Axial, vd hexgeom.VertexDirection) *hexgeom.Vertex {
	return g.cachedVertex(hexgeom.VertexAt(c, vd))
}

// EdgeBetween returns the cache-routed edge between two adjacent
// coordinates, failing with hexgeom.ErrInvalidGeometry otherwise.
func (g *Grid) EdgeBetween(a, b hexgeom.Axial) (*hexgeom.Edge, error) {
	e, err := hexgeom.NewEdge(a, b)
	if err != nil {
		return nil, err
	}
	return g.cachedEdge(e), nil
}

// AllEdges enumerates the edge cache in population order.
func (g *Grid) AllEdges() []*hexgeom.Edge {
	out := make([]*hexgeom.Edge, len(g.edgeOrder))
	copy(out, g.edgeOrder)
	return out
}

// AllVertices enumerates the vertex cache in population order.
func (g *Grid) AllVertices() []*hexgeom.Vertex {
	out := make([]*hexgeom.Vertex, len(g.vertexOrder))
	copy(out, g.vertexOrder)
	return out
}

type gridSnapshot struct {
	Cells []hexgeom.Axial `json:"cells"`
}

// MarshalJSON encodes the grid as {"cells":[[q,r],...]}.
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(gridSnapshot{Cells: g.order})
}

// UnmarshalJSON replays construction from a cell list, re-deriving the
// caches and re-validating every adjacency invariant along the way.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var snap gridSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("hexgrid: decode grid: %w", err)
	}
	*g = *New(snap.Cells)
	return nil
}
