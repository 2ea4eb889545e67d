package worldmap

import "errors"

// Placement and lookup failures. All are synchronous and surfaced
// directly to the caller; validation always precedes mutation, so a
// failed call leaves the overlay unchanged.
var (
	ErrUnregisteredCivilization = errors.New("worldmap: civilization not registered")
	ErrInvalidVertex            = errors.New("worldmap: vertex touches no map hex")
	ErrInvalidEdge              = errors.New("worldmap: edge touches no map hex")
	ErrDuplicateCity            = errors.New("worldmap: vertex already has a city")
	ErrDuplicateRoad            = errors.New("worldmap: edge already has a road")
	ErrNoCity                   = errors.New("worldmap: no city at vertex")
	ErrUnknownHex               = errors.New("worldmap: hex is not part of the map")
	ErrNoRoute                  = errors.New("worldmap: no route between hexes")
)
