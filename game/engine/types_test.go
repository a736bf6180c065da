package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefRoundTrip(t *testing.T) {
	for row := 1; row <= MaxBoardSize; row++ {
		for col := 1; col <= MaxBoardSize; col++ {
			ref := row*10 + col
			pos := ParseRef(ref)
			assert.Equal(t, Position{Row: row, Col: col}, pos)
			assert.Equal(t, ref, pos.Ref())
		}
	}
}

func TestParseRef_Boundary(t *testing.T) {
	tests := []struct {
		ref      int
		expected Position
	}{
		{0, Position{0, 0}},
		{10, Position{1, 0}},
		{7, Position{0, 7}},
		{100, Position{10, 0}},
		{-12, Position{-1, -2}},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, ParseRef(test.ref), "ref %d", test.ref)
	}
}

func TestValidationConstants(t *testing.T) {
	tests := []struct {
		name     string
		actual   int
		expected int
	}{
		{"MinBoardSize", MinBoardSize, 4},
		{"MaxBoardSize", MaxBoardSize, 9},
		{"QueueLength", QueueLength, 5},
		{"UsableSlots", UsableSlots, 3},
		{"OfferSentinel", OfferSentinel, 9},
		{"DefaultStartingScore", DefaultStartingScore, 100},
		{"CommanderValue", CommanderValue, 5},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.actual, test.name)
	}
}

func TestSquarePurposeString(t *testing.T) {
	assert.Equal(t, "containing the piece to move", StartSquare.String())
	assert.Equal(t, "to move to", FinishSquare.String())
}

func TestGameStateJSON(t *testing.T) {
	e := NewEngineWithDefaults(WithSeed(1))

	data, err := json.Marshal(e.GetState())
	require.NoError(t, err)

	var decoded GameState
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, 6, decoded.Rows)
	assert.Equal(t, "Player One", decoded.CurrentPlayer)
	assert.Equal(t, Jazair, decoded.Offer)
	assert.Len(t, decoded.Players, 2)
	assert.Equal(t, "K", decoded.Board[0][2].Symbol)
	assert.Equal(t, "1", decoded.Board[0][2].PieceSymbol)
	assert.Equal(t, "Player One", decoded.Board[0][2].Stronghold)
	assert.Empty(t, decoded.Board[0][0].Stronghold)
	assert.Nil(t, decoded.Result)
}
