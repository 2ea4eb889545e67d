package worldmap

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/gravitas-games/hexland/pkg/hexgrid"
)

// GenConfig holds world generation parameters.
type GenConfig struct {
	Radius        int     // hexagon radius around the origin
	Seed          int64   // 0 picks a random seed
	WaterLevel    float64 // elevation below this becomes lake
	MountainLevel float64 // elevation above this becomes mountains
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Radius:        6,
		Seed:          0,
		WaterLevel:    0.22,
		MountainLevel: 0.74,
	}
}

// Generate builds a hexagon grid of the configured radius and assigns
// terrain from layered simplex noise. Deterministic for a fixed seed.
func Generate(cfg GenConfig) *Overlay {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	elevNoise := opensimplex.NewNormalized(seed)
	moistNoise := opensimplex.NewNormalized(seed + 1)

	o := New(hexgrid.NewHexagon(cfg.Radius))
	for _, c := range o.grid.Hexes() {
		// Axial to continuous space for noise sampling.
		x := float64(c.Q) + float64(c.R)*0.5
		y := float64(c.R) * math.Sqrt(3.0) / 2.0

		elev := octaveNoise(elevNoise, x, y, 4, 0.35, 0.5)
		moist := octaveNoise(moistNoise, x, y, 3, 0.28, 0.5)

		// SetTerrain cannot fail here: c comes from the grid itself.
		o.terrain[c] = classifyTerrain(elev, moist, cfg)
	}
	return o
}

func classifyTerrain(elev, moist float64, cfg GenConfig) Terrain {
	switch {
	case elev < cfg.WaterLevel:
		return TerrainLake
	case elev > cfg.MountainLevel:
		return TerrainMountains
	case elev > cfg.MountainLevel-0.12:
		return TerrainHills
	case moist > 0.62:
		return TerrainForest
	case moist > 0.42:
		return TerrainFields
	case moist > 0.25:
		return TerrainPasture
	default:
		return TerrainDesert
	}
}

// octaveNoise sums several noise octaves with increasing frequency and
// decaying amplitude, renormalized to [0,1].
func octaveNoise(n opensimplex.Noise, x, y float64, octaves int, freq, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxValue := 0.0
	for i := 0; i < octaves; i++ {
		total += n.Eval2(x*freq, y*freq) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		freq *= 2
	}
	return total / maxValue
}
