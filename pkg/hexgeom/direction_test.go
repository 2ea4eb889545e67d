package hexgeom

import "testing"

func TestFlankingTableExhaustive(t *testing.T) {
	if len(flankingDirections) != 6 {
		t.Fatalf("expected 6 flanking entries, got %d", len(flankingDirections))
	}
	for _, vd := range AllVertexDirections {
		f1, f2 := vd.Flanking()
		if f1 == f2 {
			t.Fatalf("corner %v maps to a degenerate flanking pair", vd)
		}
		// The two flanking neighbors of any cell must themselves be
		// adjacent, otherwise the corner would not form a vertex.
		a := Axial{}.Neighbor(f1)
		b := Axial{}.Neighbor(f2)
		if Distance(a, b) != 1 {
			t.Fatalf("flanking neighbors of corner %v are not adjacent: %v vs %v", vd, a, b)
		}
	}
}

func TestVertexDirectionOppositeInvolution(t *testing.T) {
	seen := make(map[VertexDirection]bool)
	for _, vd := range AllVertexDirections {
		if vd.Opposite().Opposite() != vd {
			t.Fatalf("Opposite is not an involution for corner %v", vd)
		}
		if vd.Opposite() == vd {
			t.Fatalf("corner %v is its own opposite", vd)
		}
		seen[vd.Opposite()] = true
	}
	if len(seen) != 6 {
		t.Fatalf("Opposite is not a bijection over corners, covered %d of 6", len(seen))
	}
}

func TestEachMainDirectionFlanksTwoCorners(t *testing.T) {
	counts := make(map[Direction]int)
	for _, vd := range AllVertexDirections {
		f1, f2 := vd.Flanking()
		counts[f1]++
		counts[f2]++
	}
	for _, d := range AllDirections {
		if counts[d] != 2 {
			t.Fatalf("direction %v flanks %d corners, want 2", d, counts[d])
		}
	}
}
