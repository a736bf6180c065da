package engine

import (
	"fmt"
	"strings"
)

// MoveOptionName identifies one of the five movement families
type MoveOptionName string

const (
	Ryott      MoveOptionName = "ryott"
	Chowkidar  MoveOptionName = "chowkidar"
	Cuirassier MoveOptionName = "cuirassier"
	Faujdar    MoveOptionName = "faujdar"
	Jazair     MoveOptionName = "jazair"
)

// Move is a single relative displacement
type Move struct {
	RowDelta int `json:"row_delta"`
	ColDelta int `json:"col_delta"`
}

// baseMoves lists every family's displacements for direction +1.
var baseMoves = map[MoveOptionName][]Move{
	Ryott: {
		{0, 1}, {0, -1}, {1, 0}, {-1, 0},
	},
	Faujdar: {
		{0, -1}, {0, 1}, {0, 2}, {0, -2},
	},
	Jazair: {
		{2, 0}, {2, -2}, {2, 2}, {0, 2}, {0, -2}, {-1, -1}, {-1, 1},
	},
	Cuirassier: {
		{1, 0}, {2, 0}, {1, -2}, {1, 2},
	},
	Chowkidar: {
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1}, {0, 2}, {0, -2},
	},
}

// MoveOptionNames returns the five families in a stable order.
func MoveOptionNames() []MoveOptionName {
	return []MoveOptionName{Ryott, Chowkidar, Cuirassier, Faujdar, Jazair}
}

// ParseMoveOptionName converts a (case-insensitive) string to a MoveOptionName
func ParseMoveOptionName(s string) (MoveOptionName, error) {
	name := MoveOptionName(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := baseMoves[name]; !ok {
		return "", fmt.Errorf("unknown move option %q", s)
	}
	return name, nil
}

// MoveOption is a named, direction-mirrored bundle of moves
type MoveOption struct {
	name      MoveOptionName
	direction int
	moves     []Move
}

// NewMoveOption builds the option for a player facing direction (+1 or -1).
// Every base delta is scaled by the direction so that forward matches the
// player's facing.
func NewMoveOption(name MoveOptionName, direction int) (*MoveOption, error) {
	base, ok := baseMoves[name]
	if !ok {
		return nil, fmt.Errorf("unknown move option %q", name)
	}
	if direction != 1 && direction != -1 {
		return nil, fmt.Errorf("direction must be +1 or -1, got %d", direction)
	}

	moves := make([]Move, len(base))
	for i, m := range base {
		moves[i] = Move{RowDelta: m.RowDelta * direction, ColDelta: m.ColDelta * direction}
	}

	return &MoveOption{name: name, direction: direction, moves: moves}, nil
}

// mustMoveOption is used where name and direction have already been validated.
func mustMoveOption(name MoveOptionName, direction int) *MoveOption {
	opt, err := NewMoveOption(name, direction)
	if err != nil {
		panic(err)
	}
	return opt
}

// Name returns the family name
func (o *MoveOption) Name() MoveOptionName {
	return o.name
}

// Direction returns the sign the option was built for
func (o *MoveOption) Direction() int {
	return o.direction
}

// Moves returns a copy of the option's displacements
func (o *MoveOption) Moves() []Move {
	out := make([]Move, len(o.moves))
	copy(out, o.moves)
	return out
}

// HasMoveTo reports whether some move takes a piece from one square to the other.
// Moves are single jumps; squares in between are never inspected.
func (o *MoveOption) HasMoveTo(from, to Position) bool {
	dRow, dCol := to.Row-from.Row, to.Col-from.Col
	for _, m := range o.moves {
		if m.RowDelta == dRow && m.ColDelta == dCol {
			return true
		}
	}
	return false
}
