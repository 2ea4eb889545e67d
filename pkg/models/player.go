package models

import "time"

// Player is a connected account, as identified by its login token.
type Player struct {
	// From token claims
	ID        string `json:"id"`
	Username  string `json:"username"`
	Activated int64  `json:"activated"` // >0 active, 0 pending, -1 banned

	// Connection state
	Connected   bool      `json:"connected"`
	ConnectedAt time.Time `json:"connected_at"`
	LastSeen    time.Time `json:"last_seen"`

	// Session state
	SessionID string `json:"session_id"`

	// Civilization under which all cities and roads built by this
	// player are registered on the world map
	CivID string `json:"civ_id,omitempty"`
}

// IsActive reports whether the account is activated and not banned.
func (p *Player) IsActive() bool {
	return p.Activated > 0
}

// IsBanned reports whether the account is banned.
func (p *Player) IsBanned() bool {
	return p.Activated == -1
}

// IsConnected reports whether the player is currently connected.
func (p *Player) IsConnected() bool {
	return p.Connected
}
