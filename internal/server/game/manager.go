package game

import (
	"errors"
	"log"
	"slices"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"
)

var ErrGameNotFound = errors.New("game not found")

type Manager struct {
	mu    sync.RWMutex
	games map[string]*Session
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*Session)}
}

func (m *Manager) NewGame(opts Options) (*Session, error) {
	id := uuid.NewString()
	s, err := newSession(id, opts)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.games[id] = s
	m.mu.Unlock()
	log.Printf("game %s: created, bots=%v policy=%q seed=%d", id, opts.Rules.BotTeams, opts.Rules.Policy, opts.Rules.Seed)
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return s, nil
}

// IDs 返回所有对局 ID，已排序。
func (m *Manager) IDs() []string {
	m.mu.RLock()
	ids := maps.Keys(m.games)
	m.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// Remove 关闭并删除一局。
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	s, ok := m.games[id]
	delete(m.games, id)
	m.mu.Unlock()
	if !ok {
		return ErrGameNotFound
	}
	s.Close()
	return nil
}

func (m *Manager) CloseAll() {
	m.mu.Lock()
	games := m.games
	m.games = make(map[string]*Session)
	m.mu.Unlock()
	for _, s := range games {
		s.Close()
	}
}
