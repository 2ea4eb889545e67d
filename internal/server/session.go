package server

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gravitas-games/hexland/internal/config"
	"github.com/gravitas-games/hexland/internal/network"
	"github.com/gravitas-games/hexland/internal/worldmap"
	"github.com/gravitas-games/hexland/pkg/hexgeom"
	"github.com/gravitas-games/hexland/pkg/models"
)

// ErrNotCityOwner is returned when a player tries to upgrade a city
// owned by another civilization.
var ErrNotCityOwner = errors.New("server: city belongs to another civilization")

// Session represents a game session
type Session struct {
	ID        string
	CreatedAt time.Time

	// Player management
	players     map[string]*models.Player // playerID -> Player
	connections map[string]*Connection    // playerID -> Connection
	mu          sync.RWMutex

	// World state. The topology/ownership core assumes a single
	// logical writer; the session mutex provides that serialization
	// for all connection goroutines.
	world  *worldmap.Overlay
	status SessionStatus

	// Broadcasting
	broadcast chan []byte

	// Configuration
	config *config.Config
}

// SessionStatus represents the current state of the session
type SessionStatus struct {
	State       string `json:"state"`        // "waiting", "running", "paused"
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
	ServerTick  int64  `json:"server_tick"`
	Uptime      int64  `json:"uptime"` // seconds
}

// NewSession creates a new game session around an existing world
func NewSession(id string, cfg *config.Config, world *worldmap.Overlay) *Session {
	log.Printf("Creating session: %s (world: %d hexes)", id, world.Grid().Size())

	return &Session{
		ID:          id,
		CreatedAt:   time.Now(),
		players:     make(map[string]*models.Player),
		connections: make(map[string]*Connection),
		world:       world,
		broadcast:   make(chan []byte, 256),
		config:      cfg,
		status: SessionStatus{
			State:      "waiting",
			MaxPlayers: cfg.Session.MaxPlayers,
		},
	}
}

// World returns the session's map overlay
func (s *Session) World() *worldmap.Overlay {
	return s.world
}

// AddPlayer adds a player to the session and registers its civilization
func (s *Session) AddPlayer(player *models.Player, conn *Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.players[player.ID] = player
	s.connections[player.ID] = conn
	s.status.PlayerCount = len(s.players)
	s.world.RegisterCivilization(worldmap.CivID(player.CivID))

	log.Printf("Player %s (%s) joined session %s as civilization %s", player.Username, player.ID, s.ID, player.CivID)
	return nil
}

// RemovePlayer removes a player from the session
func (s *Session) RemovePlayer(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if player, exists := s.players[playerID]; exists {
		log.Printf("Player %s (%s) left session %s", player.Username, playerID, s.ID)
		delete(s.players, playerID)
		delete(s.connections, playerID)
		s.status.PlayerCount = len(s.players)
	}
}

// GetPlayer retrieves a player by ID
func (s *Session) GetPlayer(playerID string) (*models.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, exists := s.players[playerID]
	return player, exists
}

// GetPlayers returns all players in the session
func (s *Session) GetPlayers() []*models.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]*models.Player, 0, len(s.players))
	for _, player := range s.players {
		players = append(players, player)
	}
	return players
}

// BuildCity validates and founds a city on the vertex where the three
// listed cells meet
func (s *Session) BuildCity(owner worldmap.CivID, coords [3]hexgeom.Axial) (worldmap.City, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := hexgeom.NewVertex(coords[0], coords[1], coords[2])
	if err != nil {
		return worldmap.City{}, err
	}
	if err := s.world.AddCity(v, owner); err != nil {
		return worldmap.City{}, err
	}
	city, _ := s.world.CityAt(v)
	return city, nil
}

// BuildRoad validates and builds a road on the edge between two cells
func (s *Session) BuildRoad(owner worldmap.CivID, coords [2]hexgeom.Axial) (worldmap.Road, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := hexgeom.NewEdge(coords[0], coords[1])
	if err != nil {
		return worldmap.Road{}, err
	}
	if err := s.world.AddRoad(e, owner); err != nil {
		return worldmap.Road{}, err
	}
	road, _ := s.world.RoadAt(e)
	return road, nil
}

// UpgradeCity raises the level of a city owned by the caller
func (s *Session) UpgradeCity(owner worldmap.CivID, coords [3]hexgeom.Axial) (worldmap.City, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := hexgeom.NewVertex(coords[0], coords[1], coords[2])
	if err != nil {
		return worldmap.City{}, err
	}
	if current, ok := s.world.CityOwner(v); ok && current != owner {
		return worldmap.City{}, ErrNotCityOwner
	}
	if _, err := s.world.UpgradeCity(v); err != nil {
		return worldmap.City{}, err
	}
	city, _ := s.world.CityAt(v)
	return city, nil
}

// PlanRoad returns an advisory road route between two cells
func (s *Session) PlanRoad(from, to hexgeom.Axial) ([]*hexgeom.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.world.PlanRoad(from, to)
}

// MapSnapshot captures the full world state for a client
func (s *Session) MapSnapshot() network.MapSnapshotPayload {
	s.mu.RLock()
	defer s.mu.RUnlock()

	grid := s.world.Grid()
	snap := network.MapSnapshotPayload{
		Hexes: make([]network.MapHex, 0, grid.Size()),
	}
	for _, c := range grid.Hexes() {
		terr, _ := s.world.TerrainAt(c)
		snap.Hexes = append(snap.Hexes, network.MapHex{
			Coord:   c,
			Terrain: terr.String(),
			Visible: s.world.HexVisible(c),
		})
	}
	for _, city := range s.world.Cities() {
		snap.Cities = append(snap.Cities, network.CityBuiltPayload{
			Vertex: city.Vertex.Hexes(),
			Owner:  string(city.Owner),
			Level:  city.Level,
		})
	}
	for _, road := range s.world.Roads() {
		snap.Roads = append(snap.Roads, network.RoadBuiltPayload{
			Edge:  road.Edge.Hexes(),
			Owner: string(road.Owner),
		})
	}
	return snap
}

// BroadcastMessage sends a message to all connected players
func (s *Session) BroadcastMessage(msg *network.ServerMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, conn := range s.connections {
		conn.SendMessage(msg)
	}
}

// BroadcastExcept sends a message to all players except the specified connection
func (s *Session) BroadcastExcept(exclude *Connection, msg *network.ServerMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, conn := range s.connections {
		if conn != exclude {
			conn.SendMessage(msg)
		}
	}
}

// GetStatus returns the current session status
func (s *Session) GetStatus() SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := s.status
	status.Uptime = int64(time.Since(s.CreatedAt).Seconds())
	return status
}
