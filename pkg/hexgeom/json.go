package hexgeom

import (
	"encoding/json"
	"fmt"
)

// Wire formats, shared with the save/load layer and the client
// protocol: Axial <-> [q,r], Edge <-> [[q1,r1],[q2,r2]],
// Vertex <-> [[q1,r1],[q2,r2],[q3,r3]]. Deserialization always replays
// validated construction, so corrupted input fails loudly.

// MarshalJSON encodes the coordinate as [q,r].
func (a Axial) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{a.Q, a.R})
}

// UnmarshalJSON decodes a [q,r] pair.
func (a *Axial) UnmarshalJSON(data []byte) error {
	var qr [2]int
	if err := json.Unmarshal(data, &qr); err != nil {
		return fmt.Errorf("hexgeom: decode axial: %w", err)
	}
	a.Q, a.R = qr[0], qr[1]
	return nil
}

// MarshalJSON encodes the edge as its canonical coordinate pair.
func (e *Edge) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.hexes)
}

// UnmarshalJSON decodes and re-validates a coordinate pair.
func (e *Edge) UnmarshalJSON(data []byte) error {
	var pair [2]Axial
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("hexgeom: decode edge: %w", err)
	}
	decoded, err := NewEdge(pair[0], pair[1])
	if err != nil {
		return err
	}
	*e = *decoded
	return nil
}

// MarshalJSON encodes the vertex as its canonical coordinate triple.
func (v *Vertex) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.hexes)
}

// UnmarshalJSON decodes and re-validates a coordinate triple.
func (v *Vertex) UnmarshalJSON(data []byte) error {
	var triple [3]Axial
	if err := json.Unmarshal(data, &triple); err != nil {
		return fmt.Errorf("hexgeom: decode vertex: %w", err)
	}
	decoded, err := NewVertex(triple[0], triple[1], triple[2])
	if err != nil {
		return err
	}
	*v = *decoded
	return nil
}
