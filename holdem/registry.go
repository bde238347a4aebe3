package holdem

import "sync"

// Registry holds the running games keyed by game id. Different games
// are independent: the registry lock only guards the map, each session
// carries its own lock.
type Registry struct {
	mu    sync.RWMutex
	games map[string]*Session
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{games: make(map[string]*Session)}
}

// Create starts a new game with the given blind size and per-seat
// stacks. The id must be unused.
func (r *Registry) Create(id string, sbSize, seat0Stack, seat1Stack int, opts ...SessionOption) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.games[id]; exists {
		return nil, ErrGameExists
	}

	session := NewSession(id, sbSize, seat0Stack, seat1Stack, opts...)
	r.games[id] = session

	return session, nil
}

// Get retrieves a game by id
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.games[id]
	if !exists {
		return nil, ErrGameNotFound
	}

	return session, nil
}
