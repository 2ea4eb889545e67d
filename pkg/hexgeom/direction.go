package hexgeom

// Direction identifies one of the six cell-to-cell ("main") directions
// of a pointy-top hex grid, with r growing southward.
type Direction int

const (
	DirEast Direction = iota
	DirNorthEast
	DirNorthWest
	DirWest
	DirSouthWest
	DirSouthEast
)

// AllDirections lists the main directions in enum order.
var AllDirections = [6]Direction{
	DirEast, DirNorthEast, DirNorthWest, DirWest, DirSouthWest, DirSouthEast,
}

var directionDeltas = [6]Axial{
	DirEast:      {+1, 0},
	DirNorthEast: {+1, -1},
	DirNorthWest: {0, -1},
	DirWest:      {-1, 0},
	DirSouthWest: {-1, +1},
	DirSouthEast: {0, +1},
}

// Delta returns the axial offset for the direction.
func (d Direction) Delta() Axial { return directionDeltas[d] }

// Opposite returns the inverse direction.
func (d Direction) Opposite() Direction { return (d + 3) % 6 }

func (d Direction) String() string {
	switch d {
	case DirEast:
		return "E"
	case DirNorthEast:
		return "NE"
	case DirNorthWest:
		return "NW"
	case DirWest:
		return "W"
	case DirSouthWest:
		return "SW"
	case DirSouthEast:
		return "SE"
	default:
		return "?"
	}
}

// VertexDirection identifies one of the six corners of a pointy-top
// cell ("secondary" directions, pointing at vertices rather than
// neighboring cells).
type VertexDirection int

const (
	VertexNorth VertexDirection = iota
	VertexNorthEast
	VertexSouthEast
	VertexSouth
	VertexSouthWest
	VertexNorthWest
)

// AllVertexDirections lists the corner directions in enum order.
var AllVertexDirections = [6]VertexDirection{
	VertexNorth, VertexNorthEast, VertexSouthEast,
	VertexSouth, VertexSouthWest, VertexNorthWest,
}

// flankingDirections maps each corner to the two main directions that
// flank it, in clockwise order. The corner vertex of a cell c is the
// meeting point of c and its two flanking neighbors.
var flankingDirections = [6][2]Direction{
	VertexNorth:     {DirNorthWest, DirNorthEast},
	VertexNorthEast: {DirNorthEast, DirEast},
	VertexSouthEast: {DirEast, DirSouthEast},
	VertexSouth:     {DirSouthEast, DirSouthWest},
	VertexSouthWest: {DirSouthWest, DirWest},
	VertexNorthWest: {DirWest, DirNorthWest},
}

// Flanking returns the two main directions flanking the corner, in
// clockwise order.
func (vd VertexDirection) Flanking() (Direction, Direction) {
	p := flankingDirections[vd]
	return p[0], p[1]
}

// Opposite returns the inverse corner direction.
func (vd VertexDirection) Opposite() VertexDirection { return (vd + 3) % 6 }

func (vd VertexDirection) String() string {
	switch vd {
	case VertexNorth:
		return "N"
	case VertexNorthEast:
		return "NE"
	case VertexSouthEast:
		return "SE"
	case VertexSouth:
		return "S"
	case VertexSouthWest:
		return "SW"
	case VertexNorthWest:
		return "NW"
	default:
		return "?"
	}
}
