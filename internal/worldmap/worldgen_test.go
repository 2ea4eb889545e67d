package worldmap

import "testing"

func TestGenerateDeterministicPerSeed(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Radius = 4
	cfg.Seed = 1337
	a := Generate(cfg)
	b := Generate(cfg)
	if a.Grid().Size() != b.Grid().Size() {
		t.Fatalf("grid sizes differ: %d vs %d", a.Grid().Size(), b.Grid().Size())
	}
	for _, c := range a.Grid().Hexes() {
		ta, err := a.TerrainAt(c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tb, err := b.TerrainAt(c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ta != tb {
			t.Fatalf("terrain at %v differs across runs: %v vs %v", c, ta, tb)
		}
	}
}

func TestGenerateCoversWholeGrid(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Radius = 3
	cfg.Seed = 7
	o := Generate(cfg)
	if want := 1 + 3*cfg.Radius*(cfg.Radius+1); o.Grid().Size() != want {
		t.Fatalf("grid size %d, want %d", o.Grid().Size(), want)
	}
	for _, c := range o.Grid().Hexes() {
		terr, err := o.TerrainAt(c)
		if err != nil {
			t.Fatalf("unexpected error at %v: %v", c, err)
		}
		if terr == TerrainUnsurveyed {
			t.Fatalf("cell %v left unsurveyed by generation", c)
		}
	}
}
