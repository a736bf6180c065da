package engine

import (
	"fmt"
	"strings"
)

// GameConfig describes board size, piece count, players and the starting move options
type GameConfig struct {
	Name          string   `json:"name" mapstructure:"name"`
	Description   string   `json:"description" mapstructure:"description"`
	Rows          int      `json:"rows" mapstructure:"rows"`
	Cols          int      `json:"cols" mapstructure:"cols"`
	PiecesPerSide int      `json:"pieces_per_side" mapstructure:"pieces_per_side"`
	StartingScore int      `json:"starting_score" mapstructure:"starting_score"`
	PlayerOne     string   `json:"player_one" mapstructure:"player_one"`
	PlayerTwo     string   `json:"player_two" mapstructure:"player_two"`
	QueueOne      []string `json:"queue_one" mapstructure:"queue_one"`
	QueueTwo      []string `json:"queue_two" mapstructure:"queue_two"`
	Offer         []string `json:"offer" mapstructure:"offer"`

	// Seed fixes the offer pointer sequence; 0 seeds from the clock
	Seed int64 `json:"seed,omitempty" mapstructure:"seed"`
}

// DefaultGameConfig returns the standard 6×6 game with four pieces a side
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Name:          "classic",
		Description:   "Standard 6x6 board with four pieces a side",
		Rows:          6,
		Cols:          6,
		PiecesPerSide: 4,
		StartingScore: DefaultStartingScore,
		PlayerOne:     "Player One",
		PlayerTwo:     "Player Two",
		QueueOne:      []string{"ryott", "chowkidar", "cuirassier", "faujdar", "jazair"},
		QueueTwo:      []string{"ryott", "chowkidar", "jazair", "faujdar", "cuirassier"},
		Offer:         []string{"jazair", "chowkidar", "cuirassier", "ryott", "faujdar"},
	}
}

// ApplyDefaults fills zero-valued fields from DefaultGameConfig
func (c *GameConfig) ApplyDefaults() {
	def := DefaultGameConfig()
	if c.StartingScore == 0 {
		c.StartingScore = def.StartingScore
	}
	if c.PlayerOne == "" {
		c.PlayerOne = def.PlayerOne
	}
	if c.PlayerTwo == "" {
		c.PlayerTwo = def.PlayerTwo
	}
	if len(c.QueueOne) == 0 {
		c.QueueOne = def.QueueOne
	}
	if len(c.QueueTwo) == 0 {
		c.QueueTwo = def.QueueTwo
	}
	if len(c.Offer) == 0 {
		c.Offer = def.Offer
	}
}

// ValidateGameConfig checks a configuration for a playable board
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if strings.TrimSpace(config.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}

	// row*10+col references cap both dimensions at 9
	if config.Rows < MinBoardSize || config.Rows > MaxBoardSize {
		return fmt.Errorf("%w: rows must be between %d and %d, got %d", ErrInvalidConfig, MinBoardSize, MaxBoardSize, config.Rows)
	}
	if config.Cols < MinBoardSize || config.Cols > MaxBoardSize {
		return fmt.Errorf("%w: cols must be between %d and %d, got %d", ErrInvalidConfig, MinBoardSize, MaxBoardSize, config.Cols)
	}

	// pieces occupy columns 2..n+1
	if config.PiecesPerSide < 1 || config.PiecesPerSide > config.Cols-1 {
		return fmt.Errorf("%w: pieces_per_side must be between 1 and %d, got %d", ErrInvalidConfig, config.Cols-1, config.PiecesPerSide)
	}

	if config.PlayerOne == "" || config.PlayerTwo == "" {
		return fmt.Errorf("%w: both player names are required", ErrInvalidConfig)
	}
	if config.PlayerOne == config.PlayerTwo {
		return fmt.Errorf("%w: player names must differ, both are %q", ErrInvalidConfig, config.PlayerOne)
	}

	lists := []struct {
		field string
		names []string
	}{
		{"queue_one", config.QueueOne},
		{"queue_two", config.QueueTwo},
		{"offer", config.Offer},
	}
	for _, l := range lists {
		if len(l.names) != QueueLength {
			return fmt.Errorf("%w: %s must list %d move options, got %d", ErrInvalidConfig, l.field, QueueLength, len(l.names))
		}
		for _, n := range l.names {
			if _, err := ParseMoveOptionName(n); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, l.field, err)
			}
		}
	}

	return nil
}

func parseNames(names []string) []MoveOptionName {
	out := make([]MoveOptionName, 0, len(names))
	for _, n := range names {
		name, err := ParseMoveOptionName(n)
		if err != nil {
			continue
		}
		out = append(out, name)
	}
	return out
}
