// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/apex/log"
)

var (
	ErrGameNotFound       = errors.New("game not found")
	ErrGameExists         = errors.New("game already exists")
	ErrClientNotConnected = errors.New("client not connected")
)

// GameManager owns the live sessions keyed by game id.
type GameManager struct {
	games map[string]*Session
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*Session),
	}
}

func (gm *GameManager) CreateGame(gameID string) (*Session, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return nil, fmt.Errorf("%w: %s", ErrGameExists, gameID)
	}

	session := NewSession(gameID)
	gm.games[gameID] = session
	log.WithField("game", gameID).WithField("games", len(gm.games)).Info("game created")
	return session, nil
}

func (gm *GameManager) GetGame(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	session, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	return session, nil
}

// DeleteGame removes the session and disconnects its clients.
func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	session, exists := gm.games[gameID]
	if !exists {
		gm.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	delete(gm.games, gameID)
	gm.mu.Unlock()

	session.Close()
	log.WithField("game", gameID).Info("game deleted")
	return nil
}

func (gm *GameManager) Len() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}
