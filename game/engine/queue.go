package engine

import "fmt"

// MoveOptionQueue is a player's ordered list of move options.
// Positions are 0-based here; callers convert from the 1-based form shown to players.
type MoveOptionQueue struct {
	slots []*MoveOption
}

// NewMoveOptionQueue builds a queue from exactly QueueLength options
func NewMoveOptionQueue(options ...*MoveOption) (*MoveOptionQueue, error) {
	if len(options) != QueueLength {
		return nil, fmt.Errorf("queue needs %d move options, got %d", QueueLength, len(options))
	}
	slots := make([]*MoveOption, QueueLength)
	copy(slots, options)
	return &MoveOptionQueue{slots: slots}, nil
}

// Len is always QueueLength
func (q *MoveOptionQueue) Len() int {
	return len(q.slots)
}

// At returns the option in a slot
func (q *MoveOptionQueue) At(position int) (*MoveOption, error) {
	if position < 0 || position >= len(q.slots) {
		return nil, fmt.Errorf("%w: %d", ErrQueueIndexInvalid, position+1)
	}
	return q.slots[position], nil
}

// Replace overwrites a slot
func (q *MoveOptionQueue) Replace(position int, option *MoveOption) error {
	if position < 0 || position >= len(q.slots) {
		return fmt.Errorf("%w: %d", ErrQueueIndexInvalid, position+1)
	}
	q.slots[position] = option
	return nil
}

// RotateToBack removes the option at position and appends it at the end.
// Options after the position each move up one slot.
func (q *MoveOptionQueue) RotateToBack(position int) error {
	if position < 0 || position >= len(q.slots) {
		return fmt.Errorf("%w: %d", ErrQueueIndexInvalid, position+1)
	}
	used := q.slots[position]
	copy(q.slots[position:], q.slots[position+1:])
	q.slots[len(q.slots)-1] = used
	return nil
}

// Names lists the option names in queue order
func (q *MoveOptionQueue) Names() []MoveOptionName {
	names := make([]MoveOptionName, len(q.slots))
	for i, opt := range q.slots {
		names[i] = opt.Name()
	}
	return names
}
