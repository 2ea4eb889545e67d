package worldmap

import (
	"errors"
	"testing"

	"github.com/gravitas-games/hexland/pkg/hexgeom"
	"github.com/gravitas-games/hexland/pkg/hexgrid"
)

func TestPlanRoadStraightLine(t *testing.T) {
	o := New(hexgrid.NewHexagon(3))
	from := hexgeom.Axial{Q: -2, R: 0}
	to := hexgeom.Axial{Q: 2, R: 0}
	edges, err := o.PlanRoad(from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(edges) != 4 {
		t.Fatalf("expected 4 edges for a distance-4 route, got %d", len(edges))
	}
	if !edges[0].AdjacentTo(from) {
		t.Fatalf("route does not start at %v", from)
	}
	if !edges[len(edges)-1].AdjacentTo(to) {
		t.Fatalf("route does not end at %v", to)
	}
}

func TestPlanRoadSkipsExistingRoads(t *testing.T) {
	o := New(hexgrid.NewHexagon(2))
	o.RegisterCivilization("rome")
	from := hexgeom.Axial{Q: 0, R: 0}
	mid := hexgeom.Axial{Q: 1, R: 0}
	to := hexgeom.Axial{Q: 2, R: 0}
	first, err := o.Grid().EdgeBetween(from, mid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := o.AddRoad(first, "rome"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	edges, err := o.PlanRoad(from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, e := range edges {
		if e.Key() == first.Key() {
			t.Fatalf("plan includes an edge that already has a road")
		}
	}
	if len(edges) != 1 {
		t.Fatalf("expected 1 remaining edge, got %d", len(edges))
	}
}

func TestPlanRoadAvoidsLakes(t *testing.T) {
	o := New(hexgrid.NewHexagon(2))
	// Dam the direct line with lakes.
	if err := o.SetTerrain(hexgeom.Axial{Q: 1, R: 0}, TerrainLake); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	edges, err := o.PlanRoad(hexgeom.Axial{Q: 0, R: 0}, hexgeom.Axial{Q: 2, R: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, e := range edges {
		if e.AdjacentTo(hexgeom.Axial{Q: 1, R: 0}) {
			t.Fatalf("route crosses the lake via %v", e)
		}
	}
	// The detour must be longer than the direct 2-edge line.
	if len(edges) <= 2 {
		t.Fatalf("expected a detour of more than 2 edges, got %d", len(edges))
	}
}

func TestPlanRoadUnknownHex(t *testing.T) {
	o := New(hexgrid.NewHexagon(1))
	if _, err := o.PlanRoad(hexgeom.Axial{Q: 0, R: 0}, hexgeom.Axial{Q: 9, R: 9}); !errors.Is(err, ErrUnknownHex) {
		t.Fatalf("expected ErrUnknownHex, got %v", err)
	}
}
