package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wricardo/dastan/game/engine"
)

// ErrSessionBusy is returned when a second caller tries to play a session
// that already has a game loop running.
var ErrSessionBusy = errors.New("session is already being played")

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string, opts ...engine.Option) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	PlaySession(ctx context.Context, sessionID string, in engine.InputProvider, out engine.Display) (*engine.Result, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig, opts ...engine.Option) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
}

// StateBroadcaster pushes snapshots to spectators of a session
type StateBroadcaster interface {
	BroadcastToSession(sessionID string, event GameEvent)
}

// Session represents an active game session. Engine is only touched by the
// goroutine running PlaySession; everyone else reads the last published
// snapshot through State.
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time

	mu      sync.Mutex
	state   *engine.GameState
	playing bool
}

// NewSession wraps an engine and publishes its initial state
func NewSession(id string, eng *engine.GameEngine, config *engine.GameConfig) *Session {
	now := time.Now()
	return &Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      now,
		LastAccessedAt: now,
		state:          eng.GetState(),
	}
}

// Publish stores state as the session's latest snapshot
func (s *Session) Publish(state *engine.GameState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// State returns the latest published snapshot
func (s *Session) State() *engine.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Touch records an access
func (s *Session) Touch() {
	s.mu.Lock()
	s.LastAccessedAt = time.Now()
	s.mu.Unlock()
}

// LastAccessed returns the time of the last access
func (s *Session) LastAccessed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.LastAccessedAt
}

// Playing reports whether a game loop currently owns the engine
func (s *Session) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

func (s *Session) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.playing {
		return false
	}
	s.playing = true
	return true
}

func (s *Session) release() {
	s.mu.Lock()
	s.playing = false
	s.mu.Unlock()
}
