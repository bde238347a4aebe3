package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/jnalanko/Hu4Rolls-2/holdem"
	"github.com/jnalanko/Hu4Rolls-2/server/connection"
	"github.com/jnalanko/Hu4Rolls-2/server/events"
	"github.com/jnalanko/Hu4Rolls-2/server/handlers"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, implement proper origin checks
	},
}

// Config carries the env-driven server settings
type Config struct {
	DefaultSBSize int
	DefaultStack  int
	Debug         bool
}

// Server exposes the game registry over HTTP and WebSocket
type Server struct {
	config     Config
	registry   *holdem.Registry
	connMgr    *connection.Manager
	cmdRouter  *handlers.CommandRouter
	dispatcher *events.Dispatcher
}

// RegisterRequest asks for a websocket ticket for one seat of a game
type RegisterRequest struct {
	GameID string `json:"game_id"`
	Seat   int    `json:"seat"`
}

// RegisterResponse hands back the ticket and the URL to dial
type RegisterResponse struct {
	ClientID string `json:"client_id"`
	URL      string `json:"url"`
}

// CreateGameRequest creates a new game. Zero values fall back to the
// configured defaults.
type CreateGameRequest struct {
	ID     string `json:"id"`
	SBSize int    `json:"sb_size"`
	Stacks [2]int `json:"stacks"` // seat 0, seat 1
}

// CreateGameResponse reports the created game
type CreateGameResponse struct {
	Message string `json:"message"`
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewServer creates a new poker server
func NewServer(config Config) *Server {
	registry := holdem.NewRegistry()
	connMgr := connection.NewManager()
	dispatcher := events.NewDispatcher(connMgr, config.Debug)
	cmdRouter := handlers.NewCommandRouter(registry, dispatcher)

	return &Server{
		config:     config,
		registry:   registry,
		connMgr:    connMgr,
		cmdRouter:  cmdRouter,
		dispatcher: dispatcher,
	}
}

// Start begins the server on the specified port
func (s *Server) Start(port string) error {
	// Start connection manager in its own goroutine
	go s.connMgr.Start()

	log.Printf("Starting server on port %s", port)
	return http.ListenAndServe("0.0.0.0:"+port, s.routes())
}

func (s *Server) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(corsMiddleware)

	router.Get("/health", s.handleHealth)
	router.Post("/register", s.handleRegister)
	router.Delete("/register/{clientID}", s.handleUnregister)
	router.Post("/create_game", s.handleCreateGame)
	router.Get("/ws/{clientID}", s.handleWebSocket)

	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleRegister binds a seat of a game to a fresh client id and
// returns the websocket URL that redeems it.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Seat != 0 && req.Seat != 1 {
		http.Error(w, "Seat must be 0 or 1", http.StatusBadRequest)
		return
	}

	if _, err := s.registry.Get(req.GameID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	clientID := uuid.NewString()
	s.connMgr.AddTicket(clientID, connection.Ticket{GameID: req.GameID, Seat: req.Seat})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RegisterResponse{
		ClientID: clientID,
		URL:      fmt.Sprintf("ws://%s/ws/%s", r.Host, clientID),
	})
}

func (s *Server) handleUnregister(w http.ResponseWriter, r *http.Request) {
	s.connMgr.RemoveTicket(chi.URLParam(r, "clientID"))
	w.WriteHeader(http.StatusOK)
}

// handleCreateGame creates a new game with the requested blinds and
// per-seat stacks
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.ID == "" {
		http.Error(w, "Game id is required", http.StatusBadRequest)
		return
	}
	if req.SBSize <= 0 {
		req.SBSize = s.config.DefaultSBSize
	}
	for i, stack := range req.Stacks {
		if stack <= 0 {
			req.Stacks[i] = s.config.DefaultStack
		}
		if req.Stacks[i] < 2*req.SBSize {
			http.Error(w, "Stacks must cover the big blind", http.StatusBadRequest)
			return
		}
	}

	if _, err := s.registry.Create(req.ID, req.SBSize, req.Stacks[0], req.Stacks[1]); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(CreateGameResponse{
		Message: fmt.Sprintf("Game created with id %s, sb_size %d, stacks (%d, %d)",
			req.ID, req.SBSize, req.Stacks[0], req.Stacks[1]),
	})
}

// handleWebSocket redeems a registered client id and upgrades the
// connection
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")

	ticket, ok := s.connMgr.TakeTicket(clientID)
	if !ok {
		http.Error(w, "Unknown client id", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading to WebSocket: %v", err)
		return
	}

	log.Printf("Client %s connected to game %s as seat %d", clientID, ticket.GameID, ticket.Seat)

	client := &connection.Client{
		ID:     clientID,
		GameID: ticket.GameID,
		Seat:   ticket.Seat,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	// Register with connection manager
	s.connMgr.Register <- client

	// Handle reading and writing in separate goroutines
	go s.readPump(client)
	go s.writePump(client)

	// Greet the new client with its current view
	if session, err := s.registry.Get(ticket.GameID); err == nil {
		s.dispatcher.SendState(client, session)
	}
}

// readPump reads messages from the WebSocket connection
func (s *Server) readPump(client *connection.Client) {
	defer func() {
		s.connMgr.Unregister <- client
		client.Conn.Close()
	}()

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Error: %v", err)
			}
			break
		}

		// Process the message through the command router
		if err := s.cmdRouter.HandleCommand(client, message); err != nil {
			log.Printf("Error handling command from %s: %v", client.ID, err)
		}
	}
}

// writePump sends messages to the WebSocket connection
func (s *Server) writePump(client *connection.Client) {
	defer func() {
		client.Conn.Close()
	}()

	for {
		message, ok := <-client.Send
		if !ok {
			// Channel closed
			client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		err := client.Conn.WriteMessage(websocket.TextMessage, message)
		if err != nil {
			log.Printf("Error writing message: %v", err)
			return
		}
	}
}
