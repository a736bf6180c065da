package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoveOption_Families(t *testing.T) {
	tests := []struct {
		name  MoveOptionName
		moves []Move
	}{
		{Ryott, []Move{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}},
		{Faujdar, []Move{{0, -1}, {0, 1}, {0, 2}, {0, -2}}},
		{Jazair, []Move{{2, 0}, {2, -2}, {2, 2}, {0, 2}, {0, -2}, {-1, -1}, {-1, 1}}},
		{Cuirassier, []Move{{1, 0}, {2, 0}, {1, -2}, {1, 2}}},
		{Chowkidar, []Move{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}, {0, 2}, {0, -2}}},
	}

	for _, test := range tests {
		t.Run(string(test.name), func(t *testing.T) {
			opt, err := NewMoveOption(test.name, 1)
			require.NoError(t, err)
			assert.Equal(t, test.name, opt.Name())
			assert.Equal(t, test.moves, opt.Moves())
		})
	}
}

func TestNewMoveOption_MirrorsForDirection(t *testing.T) {
	for _, name := range MoveOptionNames() {
		t.Run(string(name), func(t *testing.T) {
			forward, err := NewMoveOption(name, 1)
			require.NoError(t, err)
			backward, err := NewMoveOption(name, -1)
			require.NoError(t, err)

			fm, bm := forward.Moves(), backward.Moves()
			require.Len(t, bm, len(fm))
			for i := range fm {
				assert.Equal(t, -fm[i].RowDelta, bm[i].RowDelta)
				assert.Equal(t, -fm[i].ColDelta, bm[i].ColDelta)
			}
		})
	}
}

func TestNewMoveOption_Invalid(t *testing.T) {
	_, err := NewMoveOption("bishop", 1)
	assert.Error(t, err)

	_, err = NewMoveOption(Ryott, 0)
	assert.Error(t, err)
}

func TestParseMoveOptionName(t *testing.T) {
	name, err := ParseMoveOptionName(" Jazair ")
	require.NoError(t, err)
	assert.Equal(t, Jazair, name)

	_, err = ParseMoveOptionName("rook")
	assert.Error(t, err)
}

func TestHasMoveTo(t *testing.T) {
	ryottOne, _ := NewMoveOption(Ryott, 1)
	ryottTwo, _ := NewMoveOption(Ryott, -1)
	cuirassier, _ := NewMoveOption(Cuirassier, 1)
	jazairTwo, _ := NewMoveOption(Jazair, -1)

	tests := []struct {
		name     string
		opt      *MoveOption
		from, to Position
		expected bool
	}{
		{"ryott forward", ryottOne, Position{2, 2}, Position{3, 2}, true},
		{"ryott two rows", ryottOne, Position{2, 2}, Position{4, 2}, false},
		{"ryott diagonal", ryottOne, Position{2, 2}, Position{3, 3}, false},
		{"ryott player two forward", ryottTwo, Position{5, 2}, Position{4, 2}, true},
		{"cuirassier double", cuirassier, Position{2, 3}, Position{4, 3}, true},
		{"cuirassier side jump", cuirassier, Position{2, 3}, Position{3, 5}, true},
		{"cuirassier backwards", cuirassier, Position{3, 3}, Position{2, 3}, false},
		{"jazair player two forward two", jazairTwo, Position{5, 4}, Position{3, 4}, true},
		{"jazair player two back diagonal", jazairTwo, Position{4, 4}, Position{5, 5}, true},
		{"jumps ignore squares between", cuirassier, Position{1, 1}, Position{3, 1}, true},
		{"same square", ryottOne, Position{2, 2}, Position{2, 2}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.opt.HasMoveTo(test.from, test.to))
		})
	}
}

func TestMoves_ReturnsCopy(t *testing.T) {
	opt, _ := NewMoveOption(Ryott, 1)
	moves := opt.Moves()
	moves[0] = Move{9, 9}

	assert.Equal(t, Move{0, 1}, opt.Moves()[0])
}
