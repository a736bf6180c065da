package engine

import "fmt"

// PieceKind distinguishes ordinary pieces from the commander
type PieceKind string

const (
	Standard  PieceKind = "standard"
	Commander PieceKind = "commander"
)

// Phase is the position of the turn state machine
type Phase string

const (
	AwaitingMoveSelection Phase = "awaiting_move_selection"
	AwaitingStartSquare   Phase = "awaiting_start_square"
	AwaitingFinishSquare  Phase = "awaiting_finish_square"
	Resolving             Phase = "resolving"
	TurnComplete          Phase = "turn_complete"
	GameOverPhase         Phase = "game_over"
)

// TerminationReason explains why the game ended
type TerminationReason string

const (
	Infiltration      TerminationReason = "infiltration"
	CommanderCaptured TerminationReason = "commander_captured"
)

const (
	// Board and queue limits
	MinBoardSize  = 4
	MaxBoardSize  = 9
	QueueLength   = 5
	UsableSlots   = 3
	OfferSentinel = 9

	DefaultStartingScore = 100
	StandardCaptureValue = 1
	CommanderValue       = 5

	OwnStrongholdPoints   = 5
	EnemyStrongholdPoints = 1
)

// Position is a 1-indexed board coordinate
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// ParseRef decodes the row*10+col square reference used at the input boundary
func ParseRef(ref int) Position {
	return Position{Row: ref / 10, Col: ref % 10}
}

// Ref encodes the position as row*10+col.
func (p Position) Ref() int {
	return p.Row*10 + p.Col
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// SquarePurpose tells the input provider which square is being asked for
type SquarePurpose int

const (
	StartSquare SquarePurpose = iota
	FinishSquare
)

func (s SquarePurpose) String() string {
	if s == StartSquare {
		return "containing the piece to move"
	}
	return "to move to"
}
