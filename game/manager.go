package game

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is a managed game with its controller.
type Entry struct {
	ID         string
	Game       *Game
	Controller *Controller
	CreatedAt  time.Time
}

// Manager keeps concurrent games by id.
type Manager struct {
	mu    sync.RWMutex
	games map[string]*Entry
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*Entry)}
}

// NewGame creates a game from the initial position and starts its controller.
func (m *Manager) NewGame(opts ...Option) *Entry {
	id := uuid.NewString()
	g := New(append(opts, withID(id))...)
	return m.add(id, g)
}

// LoadGame creates a game from saved text and registers it.
func (m *Manager) LoadGame(text string, opts ...Option) (*Entry, error) {
	id := uuid.NewString()
	g, err := Load(text, append(opts, withID(id))...)
	if err != nil {
		return nil, err
	}
	return m.add(id, g), nil
}

func (m *Manager) add(id string, g *Game) *Entry {
	e := &Entry{ID: id, Game: g, Controller: NewController(g), CreatedAt: time.Now()}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[id] = e
	return e
}

func (m *Manager) Get(id string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return e, nil
}

// Delete closes the game's controller and forgets it.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	e, ok := m.games[id]
	delete(m.games, id)
	m.mu.Unlock()
	if !ok {
		return ErrGameNotFound
	}
	e.Controller.Close()
	return nil
}

// List returns the ids ordered by creation time.
func (m *Manager) List() []string {
	m.mu.RLock()
	entries := make([]*Entry, 0, len(m.games))
	for _, e := range m.games {
		entries = append(entries, e)
	}
	m.mu.RUnlock()
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
