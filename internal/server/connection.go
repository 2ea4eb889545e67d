package server

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/gravitas-games/hexland/internal/network"
	"github.com/gravitas-games/hexland/internal/worldmap"
	"github.com/gravitas-games/hexland/pkg/hexgeom"
	"github.com/gravitas-games/hexland/pkg/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	// WebSocket connection
	ws *websocket.Conn

	// Server reference
	server *Server

	// Player information (set after authentication)
	player *models.Player

	// Buffered channel for outbound messages
	send chan []byte

	// Is connection authenticated
	authenticated bool

	// Close is reachable from both the read pump and server shutdown
	closeOnce sync.Once

	// Chat rate limiting (touched only by the read pump goroutine)
	chatWindow time.Time
	chatCount  int
}

// NewConnection creates a new connection
func NewConnection(ws *websocket.Conn, server *Server) *Connection {
	return &Connection{
		ws:            ws,
		server:        server,
		send:          make(chan []byte, 256),
		authenticated: false,
	}
}

// Handle manages the connection lifecycle
func (c *Connection) Handle() {
	// Set up connection parameters
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Start read and write pumps
	go c.writePump()
	c.readPump() // Blocking
}

// readPump pumps messages from the WebSocket connection to the server
func (c *Connection) readPump() {
	defer func() {
		c.Close()
	}()

	for {
		// Read message
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		// Parse message
		var clientMsg network.ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			log.Printf("Failed to parse client message: %v", err)
			c.SendError("invalid_message", "Failed to parse message")
			continue
		}

		// Handle message based on type
		c.handleMessage(&clientMsg)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// Write message
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}

		case <-ticker.C:
			// Send ping
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.server.ctx.Done():
			// Server shutting down
			return
		}
	}
}

// handleMessage routes messages to appropriate handlers
func (c *Connection) handleMessage(msg *network.ClientMessage) {
	log.Printf("Received message type: %s", msg.Type)

	switch msg.Type {
	case network.MsgTypeJoin:
		c.handleJoin(msg.Payload)

	case network.MsgTypeLeave:
		c.handleLeave()

	case network.MsgTypeChat:
		c.handleChat(msg.Payload)

	case network.MsgTypePing:
		c.handlePing()

	case network.MsgTypeBuildCity:
		c.handleBuildCity(msg.Payload)

	case network.MsgTypeBuildRoad:
		c.handleBuildRoad(msg.Payload)

	case network.MsgTypeUpgradeCity:
		c.handleUpgradeCity(msg.Payload)

	case network.MsgTypePlanRoad:
		c.handlePlanRoad(msg.Payload)

	case network.MsgTypeMapState:
		c.handleMapState()

	default:
		log.Printf("Unknown message type: %s", msg.Type)
		c.SendError("unknown_message_type", "Unknown message type")
	}
}

// handleJoin handles player join requests
func (c *Connection) handleJoin(payload json.RawMessage) {
	// Verify player is authenticated (should always be true now)
	if !c.authenticated || c.player == nil {
		c.SendError("not_authenticated", "Connection not authenticated")
		return
	}

	log.Printf("Player join request from %s", c.player.Username)

	// Update player connection state
	c.player.Connected = true
	c.player.ConnectedAt = time.Now()
	c.player.SessionID = c.server.session.ID

	// Add player to session
	if err := c.server.session.AddPlayer(c.player, c); err != nil {
		log.Printf("Failed to add player to session: %v", err)
		c.SendError("join_failed", "Failed to join session")
		return
	}

	// Send welcome message
	status := c.server.session.GetStatus()
	welcome := network.ServerMessage{
		Type: network.MsgTypeWelcome,
		Payload: network.WelcomePayload{
			PlayerID:  c.player.ID,
			Username:  c.player.Username,
			SessionID: c.server.session.ID,
			SessionStatus: network.SessionStatus{
				State:       status.State,
				PlayerCount: status.PlayerCount,
				MaxPlayers:  status.MaxPlayers,
				ServerTick:  status.ServerTick,
				Uptime:      status.Uptime,
			},
		},
	}

	c.SendMessage(&welcome)

	// Broadcast player joined to all other players
	c.server.session.BroadcastExcept(c, &network.ServerMessage{
		Type: network.MsgTypePlayerJoined,
		Payload: network.PlayerJoinedPayload{
			PlayerID: c.player.ID,
			Username: c.player.Username,
			CivID:    c.player.CivID,
		},
	})

	log.Printf("Player %s joined session %s", c.player.Username, c.server.session.ID)
}

// handleLeave handles player leave requests
func (c *Connection) handleLeave() {
	if c.player != nil {
		c.server.session.RemovePlayer(c.player.ID)

		// Broadcast player left
		c.server.session.BroadcastMessage(&network.ServerMessage{
			Type: network.MsgTypePlayerLeft,
			Payload: network.PlayerLeftPayload{
				PlayerID: c.player.ID,
				Username: c.player.Username,
			},
		})
	}
}

// handleChat handles chat messages
func (c *Connection) handleChat(payload json.RawMessage) {
	if !c.authenticated || c.player == nil {
		c.SendError("not_authenticated", "Must be authenticated to chat")
		return
	}

	// Parse chat payload
	var chatMsg network.ChatPayload
	if err := json.Unmarshal(payload, &chatMsg); err != nil {
		log.Printf("Failed to parse chat payload: %v", err)
		c.SendError("invalid_chat", "Invalid chat message")
		return
	}

	if max := c.server.config.Chat.MaxMessageLength; max > 0 && len(chatMsg.Message) > max {
		c.SendError("message_too_long", "Chat message exceeds the allowed length")
		return
	}

	// Fixed-window rate limit, counted per connection
	now := time.Now()
	if now.Sub(c.chatWindow) >= time.Minute {
		c.chatWindow = now
		c.chatCount = 0
	}
	c.chatCount++
	if limit := c.server.config.Chat.RateLimit; limit > 0 && c.chatCount > limit {
		c.SendError("chat_rate_limited", "Too many chat messages, slow down")
		return
	}

	// Broadcast chat message to all players
	broadcast := &network.ServerMessage{
		Type: network.MsgTypeChatBroadcast,
		Payload: network.ChatBroadcastPayload{
			PlayerID:  c.player.ID,
			Username:  c.player.Username,
			Message:   chatMsg.Message,
			Timestamp: time.Now().Unix(),
		},
	}

	c.server.session.BroadcastMessage(broadcast)
	log.Printf("Chat from %s: %s", c.player.Username, chatMsg.Message)
}

// handlePing handles ping requests
func (c *Connection) handlePing() {
	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypePong,
		Payload: map[string]interface{}{"timestamp": time.Now().Unix()},
	})
}

// handleBuildCity founds a city for the player's civilization
func (c *Connection) handleBuildCity(payload json.RawMessage) {
	if !c.requireJoined() {
		return
	}

	var req network.BuildCityPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.SendError("invalid_payload", "Invalid build_city payload")
		return
	}

	city, err := c.server.session.BuildCity(worldmap.CivID(c.player.CivID), req.Vertex)
	if err != nil {
		c.SendWorldError(err)
		return
	}

	c.server.session.BroadcastMessage(&network.ServerMessage{
		Type: network.MsgTypeCityBuilt,
		Payload: network.CityBuiltPayload{
			Vertex: city.Vertex.Hexes(),
			Owner:  string(city.Owner),
			Level:  city.Level,
		},
	})
	log.Printf("City founded by %s at %v", c.player.Username, city.Vertex)
}

// handleBuildRoad builds a road for the player's civilization
func (c *Connection) handleBuildRoad(payload json.RawMessage) {
	if !c.requireJoined() {
		return
	}

	var req network.BuildRoadPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.SendError("invalid_payload", "Invalid build_road payload")
		return
	}

	road, err := c.server.session.BuildRoad(worldmap.CivID(c.player.CivID), req.Edge)
	if err != nil {
		c.SendWorldError(err)
		return
	}

	c.server.session.BroadcastMessage(&network.ServerMessage{
		Type: network.MsgTypeRoadBuilt,
		Payload: network.RoadBuiltPayload{
			Edge:  road.Edge.Hexes(),
			Owner: string(road.Owner),
		},
	})
	log.Printf("Road built by %s at %v", c.player.Username, road.Edge)
}

// handleUpgradeCity raises the level of one of the player's cities
func (c *Connection) handleUpgradeCity(payload json.RawMessage) {
	if !c.requireJoined() {
		return
	}

	var req network.UpgradeCityPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.SendError("invalid_payload", "Invalid upgrade_city payload")
		return
	}

	city, err := c.server.session.UpgradeCity(worldmap.CivID(c.player.CivID), req.Vertex)
	if err != nil {
		c.SendWorldError(err)
		return
	}

	c.server.session.BroadcastMessage(&network.ServerMessage{
		Type: network.MsgTypeCityUpgraded,
		Payload: network.CityUpgradedPayload{
			Vertex: city.Vertex.Hexes(),
			Owner:  string(city.Owner),
			Level:  city.Level,
		},
	})
}

// handlePlanRoad answers with an advisory route, no world mutation
func (c *Connection) handlePlanRoad(payload json.RawMessage) {
	if !c.requireJoined() {
		return
	}

	var req network.PlanRoadPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.SendError("invalid_payload", "Invalid plan_road payload")
		return
	}

	edges, err := c.server.session.PlanRoad(req.From, req.To)
	if err != nil {
		c.SendWorldError(err)
		return
	}

	plan := network.RoadPlanPayload{
		From:  req.From,
		To:    req.To,
		Edges: make([][2]hexgeom.Axial, 0, len(edges)),
	}
	for _, e := range edges {
		plan.Edges = append(plan.Edges, e.Hexes())
	}

	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypeRoadPlan,
		Payload: plan,
	})
}

// handleMapState sends the full world snapshot to the requesting client
func (c *Connection) handleMapState() {
	if !c.requireJoined() {
		return
	}

	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypeMapSnapshot,
		Payload: c.server.session.MapSnapshot(),
	})
}

// requireJoined checks that the connection belongs to an authenticated,
// joined player before a world-affecting request is processed
func (c *Connection) requireJoined() bool {
	if !c.authenticated || c.player == nil {
		c.SendError("not_authenticated", "Connection not authenticated")
		return false
	}
	if _, ok := c.server.session.GetPlayer(c.player.ID); !ok {
		c.SendError("not_joined", "Join the session first")
		return false
	}
	return true
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *network.ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("Send buffer full, dropping message")
	}
}

// SendError sends an error message to the client
func (c *Connection) SendError(code, message string) {
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeError,
		Payload: network.ErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}

// SendWorldError translates world-map failures into protocol error codes
func (c *Connection) SendWorldError(err error) {
	code := "world_error"
	switch {
	case errors.Is(err, hexgeom.ErrInvalidGeometry):
		code = "invalid_geometry"
	case errors.Is(err, worldmap.ErrInvalidVertex):
		code = "detached_vertex"
	case errors.Is(err, worldmap.ErrInvalidEdge):
		code = "detached_edge"
	case errors.Is(err, worldmap.ErrDuplicateCity):
		code = "vertex_occupied"
	case errors.Is(err, worldmap.ErrDuplicateRoad):
		code = "edge_occupied"
	case errors.Is(err, worldmap.ErrNoCity):
		code = "no_city"
	case errors.Is(err, worldmap.ErrUnknownHex):
		code = "unknown_hex"
	case errors.Is(err, worldmap.ErrNoRoute):
		code = "no_route"
	case errors.Is(err, worldmap.ErrUnregisteredCivilization):
		code = "unknown_civilization"
	case errors.Is(err, ErrNotCityOwner):
		code = "not_city_owner"
	}
	c.SendError(code, err.Error())
}

// Close closes the connection. Both the read pump and server shutdown
// reach here for the same connection, so the teardown runs once.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		// Remove player from session if authenticated
		if c.authenticated && c.player != nil {
			c.handleLeave()
		}

		// Close send channel
		close(c.send)

		// Close WebSocket connection
		c.ws.Close()
	})
}
