package connection

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client represents one connected player: a websocket bound to a seat
// in a game.
type Client struct {
	ID     string
	GameID string
	Seat   int
	Conn   *websocket.Conn
	Send   chan []byte
}

// Ticket is a registered-but-not-yet-connected client: the /register
// endpoint hands out the id, the /ws upgrade redeems it.
type Ticket struct {
	GameID string
	Seat   int
}

// Manager handles all client connections
type Manager struct {
	clients    map[string]*Client // connection id -> client
	tickets    map[string]Ticket  // registered ids awaiting their ws upgrade
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

// NewManager creates a new connection manager
func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		tickets:    make(map[string]Ticket),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start begins processing connection events
func (m *Manager) Start() {
	for {
		select {
		case client := <-m.Register:
			m.mutex.Lock()
			m.clients[client.ID] = client
			m.mutex.Unlock()
		case client := <-m.Unregister:
			m.mutex.Lock()
			if _, ok := m.clients[client.ID]; ok {
				delete(m.clients, client.ID)
				close(client.Send)
			}
			m.mutex.Unlock()
		}
	}
}

// AddTicket records a registered client id for later redemption
func (m *Manager) AddTicket(id string, ticket Ticket) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.tickets[id] = ticket
}

// RemoveTicket drops a registration that will not be redeemed
func (m *Manager) RemoveTicket(id string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.tickets, id)
}

// TakeTicket redeems a registered id, removing it from the pending set
func (m *Manager) TakeTicket(id string) (Ticket, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	ticket, ok := m.tickets[id]
	if ok {
		delete(m.tickets, id)
	}
	return ticket, ok
}

// SendToClient sends a message to one connected client. Holding the
// lock across the send keeps it ordered against Unregister closing the
// channel: a client absent from the map is never sent to.
func (m *Manager) SendToClient(clientID string, message []byte) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if client, ok := m.clients[clientID]; ok {
		client.Send <- message
		return true
	}
	return false
}

// GameClients returns the clients currently connected to a game
func (m *Manager) GameClients(gameID string) []*Client {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var clients []*Client
	for _, client := range m.clients {
		if client.GameID == gameID {
			clients = append(clients, client)
		}
	}
	return clients
}

// SendToGame sends the same message to every client in a game, under
// the same lock discipline as SendToClient.
func (m *Manager) SendToGame(gameID string, message []byte) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, client := range m.clients {
		if client.GameID == gameID {
			client.Send <- message
		}
	}
}
