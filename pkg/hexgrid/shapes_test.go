package hexgrid

import (
	"testing"

	"github.com/gravitas-games/hexland/pkg/hexgeom"
)

func TestRing(t *testing.T) {
	center := hexgeom.Axial{Q: 1, R: -2}
	for k := 0; k <= 3; k++ {
		ring := Ring(center, k)
		wantLen := 6 * k
		if k == 0 {
			wantLen = 1
		}
		if len(ring) != wantLen {
			t.Fatalf("Ring(%d) has %d cells, want %d", k, len(ring), wantLen)
		}
		seen := make(map[hexgeom.Axial]bool)
		for _, a := range ring {
			if hexgeom.Distance(center, a) != k {
				t.Fatalf("ring cell %v at distance %d, want %d", a, hexgeom.Distance(center, a), k)
			}
			if seen[a] {
				t.Fatalf("duplicate ring cell %v", a)
			}
			seen[a] = true
		}
	}
}

func TestDiskSize(t *testing.T) {
	for r := 0; r <= 4; r++ {
		disk := Disk(hexgeom.Axial{}, r)
		want := 1 + 3*r*(r+1)
		if len(disk) != want {
			t.Fatalf("Disk(%d) has %d cells, want %d", r, len(disk), want)
		}
		for _, a := range disk {
			if hexgeom.Distance(hexgeom.Axial{}, a) > r {
				t.Fatalf("disk cell %v outside radius %d", a, r)
			}
		}
	}
}

func TestNewHexagonMatchesDisk(t *testing.T) {
	g := NewHexagon(2)
	if g.Size() != 19 {
		t.Fatalf("radius-2 hexagon has %d cells, want 19", g.Size())
	}
	for _, a := range Disk(hexgeom.Axial{}, 2) {
		if !g.HasHex(a) {
			t.Fatalf("hexagon grid missing disk cell %v", a)
		}
	}
}
