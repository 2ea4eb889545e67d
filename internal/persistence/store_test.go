package persistence

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/gravitas-games/hexland/internal/worldmap"
	"github.com/gravitas-games/hexland/pkg/hexgeom"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "world.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func buildWorld(t *testing.T) *worldmap.Overlay {
	t.Helper()
	cfg := worldmap.DefaultGenConfig()
	cfg.Radius = 3
	cfg.Seed = 99
	o := worldmap.Generate(cfg)
	o.RegisterCivilization("rome")
	o.RegisterCivilization("carthage")
	v := o.Grid().VertexAt(hexgeom.Axial{Q: 0, R: 0}, hexgeom.VertexNorth)
	if err := o.AddCity(v, "rome"); err != nil {
		t.Fatalf("add city: %v", err)
	}
	if _, err := o.UpgradeCity(v); err != nil {
		t.Fatalf("upgrade city: %v", err)
	}
	if err := o.AddRoad(o.Grid().EdgeAt(hexgeom.Axial{Q: 0, R: 0}, hexgeom.DirEast), "carthage"); err != nil {
		t.Fatalf("add road: %v", err)
	}
	return o
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	world := buildWorld(t)
	if err := s.Save(world); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil {
		t.Fatalf("expected a snapshot")
	}
	if loaded.Grid().Size() != world.Grid().Size() {
		t.Fatalf("grid size mismatch: %d vs %d", loaded.Grid().Size(), world.Grid().Size())
	}
	for _, c := range world.Grid().Hexes() {
		if !loaded.Grid().HasHex(c) {
			t.Fatalf("cell %v lost in roundtrip", c)
		}
		want, _ := world.TerrainAt(c)
		got, err := loaded.TerrainAt(c)
		if err != nil {
			t.Fatalf("terrain of %v: %v", c, err)
		}
		if got != want {
			t.Fatalf("terrain of %v: %v, want %v", c, got, want)
		}
	}
	if len(loaded.Civilizations()) != 2 {
		t.Fatalf("civilizations lost: %v", loaded.Civilizations())
	}

	v := loaded.Grid().VertexAt(hexgeom.Axial{Q: 0, R: 0}, hexgeom.VertexNorth)
	city, ok := loaded.CityAt(v)
	if !ok {
		t.Fatalf("city lost in roundtrip")
	}
	if city.Owner != "rome" || city.Level != worldmap.DefaultCityLevel+1 {
		t.Fatalf("city corrupted: %+v", city)
	}
	e := loaded.Grid().EdgeAt(hexgeom.Axial{Q: 0, R: 0}, hexgeom.DirEast)
	if owner, ok := loaded.RoadOwner(e); !ok || owner != "carthage" {
		t.Fatalf("road corrupted: %v %v", owner, ok)
	}
}

func TestLoadEmptyStore(t *testing.T) {
	s := openTestStore(t)
	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected no snapshot from an empty store")
	}
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	s := openTestStore(t)
	world := buildWorld(t)
	if err := s.Save(world); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := s.Save(world); err != nil {
		t.Fatalf("second save: %v", err)
	}
	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Cities()) != 1 || len(loaded.Roads()) != 1 {
		t.Fatalf("snapshot not replaced: %d cities, %d roads", len(loaded.Cities()), len(loaded.Roads()))
	}
}

func TestLoadRejectsCorruptRoad(t *testing.T) {
	s := openTestStore(t)
	world := buildWorld(t)
	if err := s.Save(world); err != nil {
		t.Fatalf("save: %v", err)
	}
	// A road between non-adjacent cells must fail geometry validation.
	if _, err := s.conn.Exec(
		"INSERT INTO roads (q1, r1, q2, r2, owner) VALUES (0, 0, 5, 5, 'rome')",
	); err != nil {
		t.Fatalf("inject corrupt row: %v", err)
	}
	if _, err := s.Load(); !errors.Is(err, hexgeom.ErrInvalidGeometry) {
		t.Fatalf("expected ErrInvalidGeometry from corrupt snapshot, got %v", err)
	}
}
