package worldmap

import (
	"fmt"

	"github.com/gravitas-games/hexland/pkg/hexgeom"
	"github.com/gravitas-games/hexland/pkg/hexpath"
)

// terrain weights for route planning; rough ground is dearer to pave.
func roadCost(t Terrain) int {
	switch t {
	case TerrainMountains:
		return 3
	case TerrainHills, TerrainForest:
		return 2
	default:
		return 1
	}
}

// PlanRoad returns the edges a civilization would build to connect two
// map hexes, in travel order. Routes stay on map hexes, avoid lakes,
// prefer cheap terrain, and skip edges that already carry a road. The
// plan is advisory: it performs no ownership or affordability checks.
func (o *Overlay) PlanRoad(from, to hexgeom.Axial) ([]*hexgeom.Edge, error) {
	if !o.grid.HasHex(from) {
		return nil, fmt.Errorf("%w: %v", ErrUnknownHex, from)
	}
	if !o.grid.HasHex(to) {
		return nil, fmt.Errorf("%w: %v", ErrUnknownHex, to)
	}

	neighbors := func(a hexgeom.Axial) []hexgeom.Axial {
		out := make([]hexgeom.Axial, 0, 6)
		for _, n := range o.grid.Neighbors(a) {
			if o.terrain[n].Passable() {
				out = append(out, n)
			}
		}
		return out
	}
	cost := func(a, b hexgeom.Axial) int { return roadCost(o.terrain[b]) }

	cells := hexpath.AStar(from, to, hexpath.HeuristicTo(to), neighbors, cost)
	if cells == nil {
		return nil, fmt.Errorf("%w: %v -> %v", ErrNoRoute, from, to)
	}

	edges := make([]*hexgeom.Edge, 0, len(cells)-1)
	for i := 0; i+1 < len(cells); i++ {
		e, err := o.grid.EdgeBetween(cells[i], cells[i+1])
		if err != nil {
			return nil, err
		}
		if o.HasRoad(e) {
			continue
		}
		edges = append(edges, e)
	}
	return edges, nil
}
