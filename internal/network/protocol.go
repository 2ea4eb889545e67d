package network

import (
	"encoding/json"

	"github.com/gravitas-games/hexland/pkg/hexgeom"
)

// Message types - Client → Server
const (
	MsgTypeJoin        = "join"
	MsgTypeLeave       = "leave"
	MsgTypeChat        = "chat"
	MsgTypePing        = "ping"
	MsgTypeBuildCity   = "build_city"
	MsgTypeBuildRoad   = "build_road"
	MsgTypeUpgradeCity = "upgrade_city"
	MsgTypePlanRoad    = "plan_road"
	MsgTypeMapState    = "map_state"
)

// Message types - Server → Client
const (
	MsgTypeWelcome       = "welcome"
	MsgTypePlayerJoined  = "player_joined"
	MsgTypePlayerLeft    = "player_left"
	MsgTypeChatBroadcast = "chat"
	MsgTypeSessionStatus = "session_status"
	MsgTypeError         = "error"
	MsgTypePong          = "pong"
	MsgTypeCityBuilt     = "city_built"
	MsgTypeRoadBuilt     = "road_built"
	MsgTypeCityUpgraded  = "city_upgraded"
	MsgTypeRoadPlan      = "road_plan"
	MsgTypeMapSnapshot   = "map_snapshot"
)

// ClientMessage represents any message from client to server
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServerMessage represents any message from server to client
type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// --- Client Message Payloads ---

// ChatPayload is sent by client to send a chat message
type ChatPayload struct {
	Message string `json:"message"`
}

// BuildCityPayload asks to found a city on the vertex where the three
// listed cells meet
type BuildCityPayload struct {
	Vertex [3]hexgeom.Axial `json:"vertex"`
}

// BuildRoadPayload asks to build a road on the edge between two cells
type BuildRoadPayload struct {
	Edge [2]hexgeom.Axial `json:"edge"`
}

// UpgradeCityPayload asks to raise the level of an owned city
type UpgradeCityPayload struct {
	Vertex [3]hexgeom.Axial `json:"vertex"`
}

// PlanRoadPayload asks for an advisory road route between two cells
type PlanRoadPayload struct {
	From hexgeom.Axial `json:"from"`
	To   hexgeom.Axial `json:"to"`
}

// --- Server Message Payloads ---

// WelcomePayload is sent to client after successful connection
type WelcomePayload struct {
	PlayerID      string        `json:"player_id"`
	Username      string        `json:"username"`
	SessionID     string        `json:"session_id"`
	SessionStatus SessionStatus `json:"session_status"`
}

// PlayerJoinedPayload notifies clients when a player joins
type PlayerJoinedPayload struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
	CivID    string `json:"civ_id"`
}

// PlayerLeftPayload notifies clients when a player leaves
type PlayerLeftPayload struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
}

// ChatBroadcastPayload broadcasts a chat message to all clients
type ChatBroadcastPayload struct {
	PlayerID  string `json:"player_id"`
	Username  string `json:"username"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"` // Unix timestamp
}

// SessionStatus represents the current session state
type SessionStatus struct {
	State       string `json:"state"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
	ServerTick  int64  `json:"server_tick"`
	Uptime      int64  `json:"uptime"`
}

// CityBuiltPayload announces a newly founded city
type CityBuiltPayload struct {
	Vertex [3]hexgeom.Axial `json:"vertex"`
	Owner  string           `json:"owner"`
	Level  int              `json:"level"`
}

// RoadBuiltPayload announces a newly built road
type RoadBuiltPayload struct {
	Edge  [2]hexgeom.Axial `json:"edge"`
	Owner string           `json:"owner"`
}

// CityUpgradedPayload announces a city level change
type CityUpgradedPayload struct {
	Vertex [3]hexgeom.Axial `json:"vertex"`
	Owner  string           `json:"owner"`
	Level  int              `json:"level"`
}

// RoadPlanPayload returns the advisory route for a plan_road request
type RoadPlanPayload struct {
	From  hexgeom.Axial      `json:"from"`
	To    hexgeom.Axial      `json:"to"`
	Edges [][2]hexgeom.Axial `json:"edges"`
}

// MapHex describes one cell of the world in a map snapshot
type MapHex struct {
	Coord   hexgeom.Axial `json:"coord"`
	Terrain string        `json:"terrain"`
	Visible bool          `json:"visible"`
}

// MapSnapshotPayload carries the current world state
type MapSnapshotPayload struct {
	Hexes  []MapHex           `json:"hexes"`
	Cities []CityBuiltPayload `json:"cities"`
	Roads  []RoadBuiltPayload `json:"roads"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
