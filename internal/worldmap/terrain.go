package worldmap

// Terrain classifies a map hex. Every hex starts unsurveyed; world
// generation or a loaded save assigns the real class.
type Terrain uint8

const (
	TerrainUnsurveyed Terrain = iota
	TerrainFields
	TerrainForest
	TerrainPasture
	TerrainHills
	TerrainMountains
	TerrainDesert
	TerrainLake
)

// String returns a human-readable representation of the terrain class.
func (t Terrain) String() string {
	switch t {
	case TerrainUnsurveyed:
		return "Unsurveyed"
	case TerrainFields:
		return "Fields"
	case TerrainForest:
		return "Forest"
	case TerrainPasture:
		return "Pasture"
	case TerrainHills:
		return "Hills"
	case TerrainMountains:
		return "Mountains"
	case TerrainDesert:
		return "Desert"
	case TerrainLake:
		return "Lake"
	default:
		return "Unknown"
	}
}

// Passable reports whether ground routes may cross this terrain.
func (t Terrain) Passable() bool { return t != TerrainLake }
