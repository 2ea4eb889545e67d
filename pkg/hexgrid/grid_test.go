package hexgrid

import (
	"encoding/json"
	"testing"

	"github.com/gravitas-games/hexland/pkg/hexgeom"
)

// flowerCells is the reference scenario: the origin plus its six
// neighbors.
func flowerCells() []hexgeom.Axial {
	center := hexgeom.Axial{}
	cells := []hexgeom.Axial{center}
	for _, n := range center.Neighbors() {
		cells = append(cells, n)
	}
	return cells
}

func TestFlowerTopologyCounts(t *testing.T) {
	g := New(flowerCells())
	if g.Size() != 7 {
		t.Fatalf("expected 7 cells, got %d", g.Size())
	}
	if n := len(g.AllEdges()); n != 12 {
		t.Fatalf("expected 12 cached edges, got %d", n)
	}
	// 6 inner spoke vertices touching three cells, 6 outer rim
	// vertices touching two.
	if n := len(g.AllVertices()); n != 12 {
		t.Fatalf("expected 12 cached vertices, got %d", n)
	}
}

func TestCachesStableAcrossConstructions(t *testing.T) {
	a := New(flowerCells())
	b := New(flowerCells())
	ea, eb := a.AllEdges(), b.AllEdges()
	if len(ea) != len(eb) {
		t.Fatalf("edge counts differ: %d vs %d", len(ea), len(eb))
	}
	for i := range ea {
		if ea[i].Key() != eb[i].Key() {
			t.Fatalf("edge enumeration diverges at index %d", i)
		}
	}
	va, vb := a.AllVertices(), b.AllVertices()
	if len(va) != len(vb) {
		t.Fatalf("vertex counts differ: %d vs %d", len(va), len(vb))
	}
	for i := range va {
		if va[i].Key() != vb[i].Key() {
			t.Fatalf("vertex enumeration diverges at index %d", i)
		}
	}
}

func TestCacheHasNoDuplicateKeys(t *testing.T) {
	g := NewHexagon(3)
	edgeKeys := make(map[uint64]bool)
	for _, e := range g.AllEdges() {
		if edgeKeys[e.Key()] {
			t.Fatalf("duplicate edge key %d", e.Key())
		}
		edgeKeys[e.Key()] = true
	}
	vertexKeys := make(map[uint64]bool)
	for _, v := range g.AllVertices() {
		if vertexKeys[v.Key()] {
			t.Fatalf("duplicate vertex key %d", v.Key())
		}
		vertexKeys[v.Key()] = true
	}
}

func TestSharedPrimitivesAreSameInstance(t *testing.T) {
	g := New(flowerCells())
	center := hexgeom.Axial{}
	east := center.Neighbor(hexgeom.DirEast)

	var fromCenter, fromEast *hexgeom.Edge
	for _, e := range g.EdgesForHex(center) {
		if e.AdjacentTo(east) {
			fromCenter = e
		}
	}
	for _, e := range g.EdgesForHex(east) {
		if e.AdjacentTo(center) {
			fromEast = e
		}
	}
	if fromCenter == nil || fromEast == nil {
		t.Fatalf("shared edge not derived from both cells")
	}
	if fromCenter != fromEast {
		t.Fatalf("shared edge is not reference-identical across cells")
	}

	v1 := g.VertexAt(center, hexgeom.VertexNorth)
	v2 := g.VertexAt(center.Neighbor(hexgeom.DirNorthEast), hexgeom.VertexSouthWest)
	if v1 != v2 {
		t.Fatalf("shared vertex is not reference-identical across cells")
	}
}

func TestQueriesWorkBeyondMembership(t *testing.T) {
	g := New([]hexgeom.Axial{{Q: 0, R: 0}})
	if edges := g.EdgesForHex(hexgeom.Axial{Q: 0, R: 0}); len(edges) != 6 {
		t.Fatalf("expected 6 candidate edges for a lone cell, got %d", len(edges))
	}
	if verts := g.VerticesForHex(hexgeom.Axial{Q: 0, R: 0}); len(verts) != 6 {
		t.Fatalf("expected 6 candidate vertices for a lone cell, got %d", len(verts))
	}
	// None of them are cached: a lone cell shares nothing.
	if n := len(g.AllEdges()); n != 0 {
		t.Fatalf("expected an empty edge cache, got %d entries", n)
	}
	// A coordinate far outside the grid still has full topology.
	far := hexgeom.Axial{Q: 40, R: -11}
	if edges := g.EdgesForHex(far); len(edges) != 6 {
		t.Fatalf("expected 6 candidate edges off-grid, got %d", len(edges))
	}
}

func TestNeighborsFiltersToMembers(t *testing.T) {
	g := New([]hexgeom.Axial{{Q: 0, R: 0}, {Q: 1, R: 0}, {Q: 0, R: 1}})
	got := g.Neighbors(hexgeom.Axial{Q: 0, R: 0})
	if len(got) != 2 {
		t.Fatalf("expected 2 member neighbors, got %d (%v)", len(got), got)
	}
	for _, n := range got {
		if !g.HasHex(n) {
			t.Fatalf("Neighbors returned non-member %v", n)
		}
	}
}

func TestDuplicateInputCellsCollapse(t *testing.T) {
	g := New([]hexgeom.Axial{{Q: 0, R: 0}, {Q: 1, R: 0}, {Q: 0, R: 0}, {Q: 1, R: 0}})
	if g.Size() != 2 {
		t.Fatalf("expected duplicates to collapse to 2 cells, got %d", g.Size())
	}
	if n := len(g.AllEdges()); n != 1 {
		t.Fatalf("expected 1 cached edge, got %d", n)
	}
}

func TestGridJSONRoundTrip(t *testing.T) {
	g := New(flowerCells())
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var out Grid
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if out.Size() != g.Size() {
		t.Fatalf("size mismatch after roundtrip: %d vs %d", out.Size(), g.Size())
	}
	for _, c := range g.Hexes() {
		if !out.HasHex(c) {
			t.Fatalf("cell %v lost in roundtrip", c)
		}
	}
	if len(out.AllEdges()) != len(g.AllEdges()) || len(out.AllVertices()) != len(g.AllVertices()) {
		t.Fatalf("cache counts differ after roundtrip")
	}
}
