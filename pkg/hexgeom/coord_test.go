package hexgeom

import "testing"

func TestNeighborsDistinctAndAtDistanceOne(t *testing.T) {
	origins := []Axial{{0, 0}, {3, -2}, {-5, 7}}
	for _, a := range origins {
		seen := make(map[Axial]bool)
		for _, d := range AllDirections {
			n := a.Neighbor(d)
			if seen[n] {
				t.Fatalf("duplicate neighbor %v of %v in direction %v", n, a, d)
			}
			seen[n] = true
			if got := Distance(a, n); got != 1 {
				t.Fatalf("expected distance 1 from %v to %v, got %d", a, n, got)
			}
			if back := n.Neighbor(d.Opposite()); back != a {
				t.Fatalf("inverse of %v from %v returned %v, want %v", d, n, back, a)
			}
		}
		if len(seen) != 6 {
			t.Fatalf("expected 6 distinct neighbors of %v, got %d", a, len(seen))
		}
	}
}

func TestDirectionOppositeInvolution(t *testing.T) {
	for _, d := range AllDirections {
		if d.Opposite().Opposite() != d {
			t.Fatalf("Opposite is not an involution for %v", d)
		}
		sum := d.Delta().Add(d.Opposite().Delta())
		if sum != (Axial{}) {
			t.Fatalf("deltas of %v and %v do not cancel: %v", d, d.Opposite(), sum)
		}
	}
}

func TestDistance(t *testing.T) {
	cases := []struct {
		a, b Axial
		want int
	}{
		{Axial{0, 0}, Axial{0, 0}, 0},
		{Axial{0, 0}, Axial{1, 0}, 1},
		{Axial{0, 0}, Axial{5, 5}, 10},
		{Axial{0, 0}, Axial{3, -3}, 3},
		{Axial{-2, 1}, Axial{2, -1}, 4},
	}
	for _, tc := range cases {
		if got := Distance(tc.a, tc.b); got != tc.want {
			t.Fatalf("Distance(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
		if got := Distance(tc.b, tc.a); got != tc.want {
			t.Fatalf("Distance(%v, %v) = %d, want %d (symmetry)", tc.b, tc.a, got, tc.want)
		}
	}
}

func TestDerivedCubeCoordinate(t *testing.T) {
	for _, a := range []Axial{{0, 0}, {4, -1}, {-3, 8}} {
		if a.Q+a.R+a.S() != 0 {
			t.Fatalf("cube coordinates of %v do not sum to zero", a)
		}
	}
}
