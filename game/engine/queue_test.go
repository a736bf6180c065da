package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestQueue(t *testing.T) *MoveOptionQueue {
	t.Helper()
	var options []*MoveOption
	for _, name := range []MoveOptionName{Ryott, Chowkidar, Cuirassier, Faujdar, Jazair} {
		opt, err := NewMoveOption(name, 1)
		require.NoError(t, err)
		options = append(options, opt)
	}
	q, err := NewMoveOptionQueue(options...)
	require.NoError(t, err)
	return q
}

func TestNewMoveOptionQueue_WrongLength(t *testing.T) {
	opt, _ := NewMoveOption(Ryott, 1)
	_, err := NewMoveOptionQueue(opt, opt)
	assert.Error(t, err)
}

func TestQueueRotateToBack(t *testing.T) {
	tests := []struct {
		position int
		expected []MoveOptionName
	}{
		{0, []MoveOptionName{Chowkidar, Cuirassier, Faujdar, Jazair, Ryott}},
		{1, []MoveOptionName{Ryott, Cuirassier, Faujdar, Jazair, Chowkidar}},
		{2, []MoveOptionName{Ryott, Chowkidar, Faujdar, Jazair, Cuirassier}},
		{4, []MoveOptionName{Ryott, Chowkidar, Cuirassier, Faujdar, Jazair}},
	}

	for _, test := range tests {
		q := createTestQueue(t)
		before, _ := q.At(test.position)

		require.NoError(t, q.RotateToBack(test.position))

		assert.Equal(t, QueueLength, q.Len())
		assert.Equal(t, test.expected, q.Names())
		assert.ElementsMatch(t, MoveOptionNames(), q.Names())
		last, _ := q.At(4)
		assert.Same(t, before, last)
	}
}

func TestQueueRotateToBack_RandomPositionsKeepContents(t *testing.T) {
	q := createTestQueue(t)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		require.NoError(t, q.RotateToBack(rng.Intn(QueueLength)))
		assert.Equal(t, QueueLength, q.Len())
		assert.ElementsMatch(t, MoveOptionNames(), q.Names())
	}
}

func TestQueueReplaceAndAt(t *testing.T) {
	q := createTestQueue(t)
	jazair, _ := NewMoveOption(Jazair, 1)

	require.NoError(t, q.Replace(0, jazair))
	got, err := q.At(0)
	require.NoError(t, err)
	assert.Equal(t, Jazair, got.Name())

	for _, pos := range []int{-1, 5, 9} {
		_, err := q.At(pos)
		assert.ErrorIs(t, err, ErrQueueIndexInvalid)
		assert.ErrorIs(t, q.Replace(pos, jazair), ErrQueueIndexInvalid)
		assert.ErrorIs(t, q.RotateToBack(pos), ErrQueueIndexInvalid)
	}
}

func TestOfferPool(t *testing.T) {
	pool, err := NewOfferPool([]MoveOptionName{Jazair, Chowkidar, Cuirassier, Ryott, Faujdar})
	require.NoError(t, err)
	assert.Equal(t, 0, pool.Index())
	assert.Equal(t, Jazair, pool.Current())

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		pool.Advance(rng)
		assert.GreaterOrEqual(t, pool.Index(), 0)
		assert.Less(t, pool.Index(), QueueLength)
		assert.Equal(t, pool.Offers()[pool.Index()], pool.Current())
	}

	_, err = NewOfferPool([]MoveOptionName{Jazair})
	assert.Error(t, err)
	_, err = NewOfferPool([]MoveOptionName{Jazair, Chowkidar, Cuirassier, Ryott, "rook"})
	assert.Error(t, err)
}
