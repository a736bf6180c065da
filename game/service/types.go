package service

import (
	"time"

	"github.com/wricardo/dastan/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	Playing        bool               `json:"playing"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename      string `json:"filename"`
	ConfigID      string `json:"config_id"` // The identifier to use for session creation
	Name          string `json:"name"`      // Display name
	Description   string `json:"description"`
	Rows          int    `json:"rows"`
	Cols          int    `json:"cols"`
	PiecesPerSide int    `json:"pieces_per_side"`
	StartingScore int    `json:"starting_score"`
}

// GameEvent is what spectators receive for every published snapshot
type GameEvent struct {
	Type      string            `json:"type"` // "state", "game_over"
	SessionID string            `json:"session_id"`
	Timestamp time.Time         `json:"timestamp"`
	State     *engine.GameState `json:"state"`
}
