package engine

import "fmt"

// Player holds identity, score, facing and the move option queue
type Player struct {
	name      string
	direction int
	score     int
	queue     *MoveOptionQueue
}

// NewPlayer creates a player whose queue is built from names, mirrored for direction
func NewPlayer(name string, direction, score int, queue []MoveOptionName) (*Player, error) {
	if name == "" {
		return nil, fmt.Errorf("player name is required")
	}
	options := make([]*MoveOption, 0, len(queue))
	for _, n := range queue {
		opt, err := NewMoveOption(n, direction)
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", name, err)
		}
		options = append(options, opt)
	}
	q, err := NewMoveOptionQueue(options...)
	if err != nil {
		return nil, fmt.Errorf("player %s: %w", name, err)
	}
	return &Player{name: name, direction: direction, score: score, queue: q}, nil
}

// SameAs compares players by name
func (p *Player) SameAs(other *Player) bool {
	if p == nil || other == nil {
		return false
	}
	return p.name == other.name
}

func (p *Player) Name() string { return p.name }

func (p *Player) Direction() int { return p.direction }

func (p *Player) Score() int { return p.score }

// Queue exposes the player's move option queue
func (p *Player) Queue() *MoveOptionQueue { return p.queue }

// ChangeScore adds amount (which may be negative) to the score
func (p *Player) ChangeScore(amount int) {
	p.score += amount
}

// CheckMove asks the option at a 1-based queue choice whether start→finish is a legal jump
func (p *Player) CheckMove(choice int, start, finish Position) (bool, error) {
	opt, err := p.queue.At(choice - 1)
	if err != nil {
		return false, err
	}
	return opt.HasMoveTo(start, finish), nil
}

// UpdateQueueAfterMove sends the used option to the back of the queue
func (p *Player) UpdateQueueAfterMove(choice int) error {
	return p.queue.RotateToBack(choice - 1)
}

// UpdateQueueWithOffer overwrites a 1-based queue position with a fresh option.
// name comes from the offer pool, which only holds known options.
func (p *Player) UpdateQueueWithOffer(position int, name MoveOptionName) error {
	return p.queue.Replace(position-1, mustMoveOption(name, p.direction))
}
