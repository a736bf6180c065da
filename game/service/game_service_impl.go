package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/dastan/game/engine"
)

// ErrConfigUnavailable wraps config lookups that failed while creating a session
var ErrConfigUnavailable = errors.New("configuration unavailable")

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions    SessionManager
	configs     ConfigManager
	broadcaster StateBroadcaster
}

// ServiceOption customises the game service
type ServiceOption func(*gameServiceImpl)

// WithBroadcaster forwards every published snapshot to b
func WithBroadcaster(b StateBroadcaster) ServiceOption {
	return func(s *gameServiceImpl) {
		s.broadcaster = b
	}
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, opts ...ServiceOption) GameService {
	s := &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSession creates a new game session from a named configuration, or the
// default one when configName is empty.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string, opts ...engine.Option) (*SessionInfo, error) {
	var config *engine.GameConfig
	if configName != "" {
		var err error
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if available := s.configIDs(); len(available) > 0 {
				return nil, fmt.Errorf("%w: %q: %v (available: %v)", ErrConfigUnavailable, configName, err, available)
			}
			return nil, fmt.Errorf("%w: %q: %v", ErrConfigUnavailable, configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	session, err := s.sessions.Create("", config, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Info().
		Str("session_id", session.ID).
		Str("config", config.Name).
		Int("rows", config.Rows).
		Int("cols", config.Cols).
		Msg("session created")

	return s.info(session), nil
}

func (s *gameServiceImpl) configIDs() []string {
	available, err := s.configs.ListConfigs()
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(available))
	for _, cfg := range available {
		ids = append(ids, cfg.ConfigID)
	}
	return ids
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return s.info(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.info(sess))
	}
	return result, nil
}

// DeleteSession removes a session. A session with a running game cannot be deleted.
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if session.Playing() {
		return fmt.Errorf("session %s: %w", sessionID, ErrSessionBusy)
	}
	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	log.Info().Str("session_id", sessionID).Msg("session deleted")
	return nil
}

// GetGameState returns the last snapshot published by the session
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	return session.State(), nil
}

// PlaySession runs the game loop of a session to completion on the calling
// goroutine. Every snapshot shown to out is also stored on the session and
// sent to the broadcaster.
func (s *gameServiceImpl) PlaySession(ctx context.Context, sessionID string, in engine.InputProvider, out engine.Display) (*engine.Result, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	if !session.acquire() {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionBusy)
	}
	defer session.release()

	logger := log.With().Str("session_id", sessionID).Logger()
	logger.Info().Msg("game started")

	display := engine.MultiDisplay{engine.DisplayFunc(func(state *engine.GameState) {
		s.publish(session, state)
	}), out}

	result, err := session.Engine.Play(ctx, in, display)
	s.sessions.UpdateLastAccessed(sessionID)
	if err != nil {
		logger.Warn().Err(err).Int("turn", session.State().Turn).Msg("game aborted")
		return nil, err
	}

	logger.Info().
		Str("winner", result.Winner).
		Bool("draw", result.Draw).
		Str("reason", string(result.Reason)).
		Interface("scores", result.Scores).
		Msg("game over")
	return result, nil
}

func (s *gameServiceImpl) publish(session *Session, state *engine.GameState) {
	session.Publish(state)
	if s.broadcaster == nil {
		return
	}
	event := GameEvent{
		Type:      "state",
		SessionID: session.ID,
		Timestamp: time.Now(),
		State:     state,
	}
	if state.GameOver {
		event.Type = "game_over"
	}
	s.broadcaster.BroadcastToSession(session.ID, event)
}

// ListConfigs returns available configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

func (s *gameServiceImpl) info(session *Session) *SessionInfo {
	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     session.Config.Name,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessed(),
		Playing:        session.Playing(),
		GameState:      session.State(),
		GameConfig:     session.Config,
	}
}
