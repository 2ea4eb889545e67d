// Package worldmap layers terrain, civilizations and built
// infrastructure (cities on vertices, roads on edges) atop a frozen
// hex grid, and derives cell visibility from nearby infrastructure.
//
// The overlay is append-only within a session and assumes a single
// logical writer (the enclosing game loop); hosts that mutate it from
// several goroutines must serialize writes externally.
package worldmap

import (
	"fmt"

	"github.com/gravitas-games/hexland/pkg/hexgeom"
	"github.com/gravitas-games/hexland/pkg/hexgrid"
)

// CivID identifies a civilization. Ownership writes require prior
// registration of the id.
type CivID string

// DefaultCityLevel is the level a freshly founded city starts at.
const DefaultCityLevel = 1

// City is a settlement occupying a vertex.
type City struct {
	Vertex *hexgeom.Vertex
	Owner  CivID
	Level  int
}

// Road occupies an edge.
type Road struct {
	Edge  *hexgeom.Edge
	Owner CivID
}

// Overlay is the ownership and visibility layer over a grid.
type Overlay struct {
	grid    *hexgrid.Grid
	terrain map[hexgeom.Axial]Terrain

	civs     map[CivID]struct{}
	civOrder []CivID

	cities    map[uint64]*City
	cityOrder []*City

	roads     map[uint64]*Road
	roadOrder []*Road
}

// New builds an empty overlay over a grid. Every grid hex starts with
// the neutral TerrainUnsurveyed classification.
func New(grid *hexgrid.Grid) *Overlay {
	o := &Overlay{
		grid:    grid,
		terrain: make(map[hexgeom.Axial]Terrain, grid.Size()),
		civs:    make(map[CivID]struct{}),
		cities:  make(map[uint64]*City),
		roads:   make(map[uint64]*Road),
	}
	for _, c := range grid.Hexes() {
		o.terrain[c] = TerrainUnsurveyed
	}
	return o
}

// Grid returns the underlying topology.
func (o *Overlay) Grid() *hexgrid.Grid { return o.grid }

// RegisterCivilization records a civilization id. Idempotent; a
// precondition for any ownership write by that id.
func (o *Overlay) RegisterCivilization(id CivID) {
	if _, ok := o.civs[id]; ok {
		return
	}
	o.civs[id] = struct{}{}
	o.civOrder = append(o.civOrder, id)
}

// Registered reports whether a civilization id has been registered.
func (o *Overlay) Registered(id CivID) bool {
	_, ok := o.civs[id]
	return ok
}

// Civilizations returns registered ids in registration order.
func (o *Overlay) Civilizations() []CivID {
	out := make([]CivID, len(o.civOrder))
	copy(out, o.civOrder)
	return out
}

// SetTerrain classifies a map hex.
func (o *Overlay) SetTerrain(c hexgeom.Axial, t Terrain) error {
	if !o.grid.HasHex(c) {
		return fmt.Errorf("%w: %v", ErrUnknownHex, c)
	}
	o.terrain[c] = t
	return nil
}

// TerrainAt returns the classification of a map hex.
func (o *Overlay) TerrainAt(c hexgeom.Axial) (Terrain, error) {
	t, ok := o.terrain[c]
	if !ok {
		return TerrainUnsurveyed, fmt.Errorf("%w: %v", ErrUnknownHex, c)
	}
	return t, nil
}

// AddCity founds a city at the default level.
func (o *Overlay) AddCity(v *hexgeom.Vertex, owner CivID) error {
	return o.AddCityLevel(v, owner, DefaultCityLevel)
}

// AddCityLevel founds a city at an explicit level; save loaders use it
// to replay grown cities. The vertex must touch at least one map hex,
// the owner must be registered, and the vertex must be free.
func (o *Overlay) AddCityLevel(v *hexgeom.Vertex, owner CivID, level int) error {
	if !o.Registered(owner) {
		return fmt.Errorf("%w: %q", ErrUnregisteredCivilization, owner)
	}
	if !o.touchesGrid3(v.Hexes()) {
		return fmt.Errorf("%w: %v", ErrInvalidVertex, v)
	}
	if _, occupied := o.cities[v.Key()]; occupied {
		return fmt.Errorf("%w: %v", ErrDuplicateCity, v)
	}
	if level < DefaultCityLevel {
		level = DefaultCityLevel
	}
	city := &City{Vertex: v, Owner: owner, Level: level}
	o.cities[v.Key()] = city
	o.cityOrder = append(o.cityOrder, city)
	return nil
}

// UpgradeCity raises the level of the city at v by one and returns the
// new level.
func (o *Overlay) UpgradeCity(v *hexgeom.Vertex) (int, error) {
	city, ok := o.cities[v.Key()]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrNoCity, v)
	}
	city.Level++
	return city.Level, nil
}

// AddRoad builds a road on an edge. The edge must touch at least one
// map hex, the owner must be registered, and the edge must be free.
func (o *Overlay) AddRoad(e *hexgeom.Edge, owner CivID) error {
	if !o.Registered(owner) {
		return fmt.Errorf("%w: %q", ErrUnregisteredCivilization, owner)
	}
	if !o.touchesGrid2(e.Hexes()) {
		return fmt.Errorf("%w: %v", ErrInvalidEdge, e)
	}
	if _, occupied := o.roads[e.Key()]; occupied {
		return fmt.Errorf("%w: %v", ErrDuplicateRoad, e)
	}
	road := &Road{Edge: e, Owner: owner}
	o.roads[e.Key()] = road
	o.roadOrder = append(o.roadOrder, road)
	return nil
}

// HasCity reports whether a city occupies the vertex.
func (o *Overlay) HasCity(v *hexgeom.Vertex) bool {
	_, ok := o.cities[v.Key()]
	return ok
}

// HasRoad reports whether a road occupies the edge.
func (o *Overlay) HasRoad(e *hexgeom.Edge) bool {
	_, ok := o.roads[e.Key()]
	return ok
}

// CityAt returns the city at a vertex.
func (o *Overlay) CityAt(v *hexgeom.Vertex) (City, bool) {
	city, ok := o.cities[v.Key()]
	if !ok {
		return City{}, false
	}
	return *city, true
}

// RoadAt returns the road on an edge.
func (o *Overlay) RoadAt(e *hexgeom.Edge) (Road, bool) {
	road, ok := o.roads[e.Key()]
	if !ok {
		return Road{}, false
	}
	return *road, true
}

// CityOwner returns the owner of the city at a vertex.
func (o *Overlay) CityOwner(v *hexgeom.Vertex) (CivID, bool) {
	city, ok := o.cities[v.Key()]
	if !ok {
		return "", false
	}
	return city.Owner, true
}

// RoadOwner returns the owner of the road on an edge.
func (o *Overlay) RoadOwner(e *hexgeom.Edge) (CivID, bool) {
	road, ok := o.roads[e.Key()]
	if !ok {
		return "", false
	}
	return road.Owner, true
}

// CitiesFor returns the cities owned by a civilization, in founding
// order. Full scan; grids here are tens to hundreds of cells.
func (o *Overlay) CitiesFor(id CivID) []City {
	var out []City
	for _, city := range o.cityOrder {
		if city.Owner == id {
			out = append(out, *city)
		}
	}
	return out
}

// RoadsFor returns the roads owned by a civilization, in build order.
func (o *Overlay) RoadsFor(id CivID) []Road {
	var out []Road
	for _, road := range o.roadOrder {
		if road.Owner == id {
			out = append(out, *road)
		}
	}
	return out
}

// Cities returns every city in founding order.
func (o *Overlay) Cities() []City {
	out := make([]City, 0, len(o.cityOrder))
	for _, city := range o.cityOrder {
		out = append(out, *city)
	}
	return out
}

// Roads returns every road in build order.
func (o *Overlay) Roads() []Road {
	out := make([]Road, 0, len(o.roadOrder))
	for _, road := range o.roadOrder {
		out = append(out, *road)
	}
	return out
}

// HexVisible reports whether a map hex is revealed by built
// infrastructure: a city on any of its six corner vertices, or a road
// on any edge between two coordinates of such a vertex. Visibility is
// ownership-agnostic; fog of war is shared.
func (o *Overlay) HexVisible(c hexgeom.Axial) bool {
	if !o.grid.HasHex(c) {
		return false
	}
	for _, vd := range hexgeom.AllVertexDirections {
		v := o.grid.VertexAt(c, vd)
		if _, ok := o.cities[v.Key()]; ok {
			return true
		}
		hexes := v.Hexes()
		for i := 0; i < 3; i++ {
			for j := i + 1; j < 3; j++ {
				if hexgeom.Distance(hexes[i], hexes[j]) != 1 {
					// Unreachable for a validly built vertex.
					continue
				}
				e, err := o.grid.EdgeBetween(hexes[i], hexes[j])
				if err != nil {
					continue
				}
				if _, ok := o.roads[e.Key()]; ok {
					return true
				}
			}
		}
	}
	return false
}

func (o *Overlay) touchesGrid3(hexes [3]hexgeom.Axial) bool {
	return o.grid.HasHex(hexes[0]) || o.grid.HasHex(hexes[1]) || o.grid.HasHex(hexes[2])
}

func (o *Overlay) touchesGrid2(hexes [2]hexgeom.Axial) bool {
	return o.grid.HasHex(hexes[0]) || o.grid.HasHex(hexes[1])
}
