package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lab1702/ofbot/config"
	"github.com/lab1702/ofbot/game"
)

// isValidOrigin checks if the origin is allowed to connect
func isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// No origin header - could be a non-browser client
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		log.Printf("Invalid origin URL: %s", origin)
		return false
	}

	// Allow same-origin connections
	if r.Host == originURL.Host {
		return true
	}

	// Allow localhost connections for development
	if strings.HasPrefix(originURL.Host, "localhost:") ||
		strings.HasPrefix(originURL.Host, "127.0.0.1:") ||
		originURL.Host == "localhost" ||
		originURL.Host == "127.0.0.1" {
		return true
	}

	log.Printf("Rejected WebSocket connection from origin: %s", origin)
	return false
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       isValidOrigin,
	EnableCompression: true,
}

// Message types pushed to inspector clients
const (
	MsgTypeUpdate  = "update"
	MsgTypeEvent   = "event"
	MsgTypeSpeech  = "speech"
	MsgTypeMessage = "message"
)

// ServerMessage is one message on the inspector feed
type ServerMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Client is a connected inspector. The feed is read-only; anything the
// client sends is discarded.
type Client struct {
	ID     int
	conn   *websocket.Conn
	send   chan ServerMessage
	server *Server
}

// Server runs the arena simulation and streams bot decisions to clients
type Server struct {
	mu         sync.RWMutex
	clients    map[int]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan ServerMessage
	nextID     int

	// simMu guards the arena, its players and their bots
	simMu      sync.Mutex
	arena      *Arena
	tuning     config.Tuning
	rng        *rand.Rand
	ticks      int64
	nextReplan time.Duration

	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// NewServer builds the arena described by tuning and fills it with bots
func NewServer(tuning config.Tuning) (*Server, error) {
	gameType, ok := config.ParseGameType(tuning.Match.GameType)
	if !ok {
		return nil, fmt.Errorf("unsupported game type %q", tuning.Match.GameType)
	}

	seed := tuning.Match.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	mutators := make([]game.Mutator, len(tuning.Match.Mutators))
	for i, m := range tuning.Match.Mutators {
		mutators[i] = game.Mutator(m)
	}

	arena, err := NewArena(gameType, mutators, seed)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		clients:    make(map[int]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan ServerMessage, 256),
		arena:      arena,
		tuning:     tuning,
		rng:        rand.New(rand.NewSource(seed)),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	s.populate()
	return s, nil
}

// Run starts the server main loop
func (s *Server) Run() {
	// Start game loop
	go s.gameLoop()

	// Handle client events
	for {
		select {
		case client := <-s.register:
			s.mu.Lock()
			s.clients[client.ID] = client
			s.mu.Unlock()
			log.Printf("Client %d connected", client.ID)

		case client := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.clients[client.ID]; ok {
				delete(s.clients, client.ID)
				close(client.send)
			}
			s.mu.Unlock()
			log.Printf("Client %d disconnected", client.ID)

		case message := <-s.broadcast:
			s.mu.RLock()
			for _, client := range s.clients {
				select {
				case client.send <- message:
				default:
					// Client send channel is full, skip this message
					log.Printf("Warning: Client %d send buffer full, skipping broadcast", client.ID)
				}
			}
			s.mu.RUnlock()

		case <-s.done:
			return
		}
	}
}

// Shutdown stops the game loop and the client hub
func (s *Server) Shutdown() {
	s.stopOnce.Do(func() {
		s.cancel()
		close(s.done)
	})
}

// gameLoop runs the arena simulation
func (s *Server) gameLoop() {
	ticker := time.NewTicker(game.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.updateGame()
			if s.ticks%SnapshotEvery == 0 {
				s.sendSnapshot()
			}
		case <-s.done:
			return
		}
	}
}

// publish queues a message for every client without blocking the simulation
func (s *Server) publish(msg ServerMessage) {
	select {
	case s.broadcast <- msg:
	default:
	}
}

func (s *Server) sendSnapshot() {
	s.simMu.Lock()
	snap := s.snapshot()
	s.simMu.Unlock()

	s.publish(ServerMessage{Type: MsgTypeUpdate, Data: snap})
}

// HandleWebSocket handles WebSocket connections
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	s.mu.Lock()
	clientID := s.nextID
	s.nextID++
	s.mu.Unlock()

	client := &Client{
		ID:     clientID,
		conn:   conn,
		send:   make(chan ServerMessage, 256),
		server: s,
	}

	// The hub is gone after Shutdown; do not wait for it
	select {
	case s.register <- client:
	case <-s.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump keeps the connection's read deadline fresh and detects closes
func (c *Client) readPump() {
	defer func() {
		select {
		case c.server.unregister <- c:
		case <-c.server.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		var msg json.RawMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
		logBot("client %d sent %d bytes to the read-only feed", c.ID, len(msg))
	}
}

// writePump sends messages to the client
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
