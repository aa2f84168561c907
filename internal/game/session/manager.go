// Package session tracks concurrently running game instances.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/cory-johannsen/scoundrel/internal/dungeon"
	"github.com/cory-johannsen/scoundrel/internal/game/engine"
)

// Game is one registered game instance.
type Game struct {
	// ID is the engine's game ID.
	ID string
	// Engine runs the game. The engine itself is single-driver; the manager
	// only guards its own registry.
	Engine *engine.Engine
	// CreatedAt is when the game was registered.
	CreatedAt time.Time
}

// Manager tracks all active games, keyed by game ID.
// All methods are safe for concurrent use.
type Manager struct {
	mu    sync.RWMutex
	games map[string]*Game
}

// NewManager creates an empty session Manager.
func NewManager() *Manager {
	return &Manager{games: make(map[string]*Game)}
}

// Create builds a new engine from pool, registers it, and returns the game.
//
// Postcondition: Returns a registered Game, or the engine construction error.
func (m *Manager) Create(pool *dungeon.Pool, opts ...engine.Option) (*Game, error) {
	eng, err := engine.New(pool, opts...)
	if err != nil {
		return nil, err
	}

	g := &Game{ID: eng.ID(), Engine: eng, CreatedAt: time.Now()}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return g, nil
}

// Get returns the game with the given ID.
//
// Postcondition: Returns (game, true) if found, or (nil, false) otherwise.
func (m *Manager) Get(id string) (*Game, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	return g, ok
}

// Remove unregisters the game with the given ID.
//
// Postcondition: Returns an error if the ID is not registered.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return fmt.Errorf("session: game %q not found", id)
	}
	delete(m.games, id)
	return nil
}

// Len returns the number of registered games.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// IDs returns the IDs of all registered games.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.games))
	for id := range m.games {
		out = append(out, id)
	}
	return out
}
