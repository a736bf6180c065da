package engine

import "fmt"

// Square is one board cell. Plain cells and strongholds differ only in
// symbol, ownership and how they score occupancy.
type Square interface {
	Piece() *Piece
	SetPiece(p *Piece)
	RemovePiece() *Piece
	Symbol() string
	OccupancyScore(player *Player) int
}

// Cell is an ordinary square
type Cell struct {
	piece *Piece
}

func (c *Cell) Piece() *Piece { return c.piece }

func (c *Cell) SetPiece(p *Piece) { c.piece = p }

// RemovePiece clears the cell and returns whatever was on it
func (c *Cell) RemovePiece() *Piece {
	p := c.piece
	c.piece = nil
	return p
}

func (c *Cell) Symbol() string { return " " }

// OccupancyScore is always 0 for a plain cell
func (c *Cell) OccupancyScore(*Player) int { return 0 }

// Stronghold is a player's home square
type Stronghold struct {
	Cell
	owner  *Player
	symbol string
}

// NewStronghold creates an empty stronghold for owner
func NewStronghold(owner *Player, symbol string) *Stronghold {
	return &Stronghold{owner: owner, symbol: symbol}
}

func (s *Stronghold) Symbol() string { return s.symbol }

// Owner returns the player the stronghold belongs to
func (s *Stronghold) Owner() *Player { return s.owner }

// OccupancyScore rewards defending your own stronghold and infiltrating the enemy's
func (s *Stronghold) OccupancyScore(player *Player) int {
	if s.piece == nil || !s.piece.BelongsTo(player) {
		return 0
	}
	if s.owner.SameAs(player) {
		return OwnStrongholdPoints
	}
	return EnemyStrongholdPoints
}

// Board is a rows×cols grid of squares stored row-major
type Board struct {
	rows    int
	cols    int
	squares []Square
}

// NewBoard builds an empty board with one stronghold per player: player one's
// at (1, cols/2), player two's at (rows, cols/2+1).
func NewBoard(rows, cols int, one, two *Player) *Board {
	b := &Board{
		rows:    rows,
		cols:    cols,
		squares: make([]Square, 0, rows*cols),
	}
	for row := 1; row <= rows; row++ {
		for col := 1; col <= cols; col++ {
			switch {
			case row == 1 && col == cols/2:
				b.squares = append(b.squares, NewStronghold(one, "K"))
			case row == rows && col == cols/2+1:
				b.squares = append(b.squares, NewStronghold(two, "k"))
			default:
				b.squares = append(b.squares, &Cell{})
			}
		}
	}
	return b
}

func (b *Board) Rows() int { return b.rows }

func (b *Board) Cols() int { return b.cols }

// InBounds reports whether pos addresses a square on the board
func (b *Board) InBounds(pos Position) bool {
	return pos.Row >= 1 && pos.Row <= b.rows && pos.Col >= 1 && pos.Col <= b.cols
}

func (b *Board) index(pos Position) int {
	return (pos.Row-1)*b.cols + (pos.Col - 1)
}

// SquareAt returns the square at pos
func (b *Board) SquareAt(pos Position) (Square, error) {
	if !b.InBounds(pos) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}
	return b.squares[b.index(pos)], nil
}

// PieceAt returns the occupant of pos, or nil if empty or off the board
func (b *Board) PieceAt(pos Position) *Piece {
	sq, err := b.SquareAt(pos)
	if err != nil {
		return nil
	}
	return sq.Piece()
}

// PlacePiece puts p on pos, replacing any occupant
func (b *Board) PlacePiece(pos Position, p *Piece) error {
	sq, err := b.SquareAt(pos)
	if err != nil {
		return err
	}
	sq.SetPiece(p)
	return nil
}

// RemovePiece clears pos and returns the previous occupant (nil if it was empty)
func (b *Board) RemovePiece(pos Position) *Piece {
	sq, err := b.SquareAt(pos)
	if err != nil {
		return nil
	}
	return sq.RemovePiece()
}

// MovePiece relocates the piece on from to to, discarding anything already on to.
func (b *Board) MovePiece(from, to Position) error {
	if !b.InBounds(from) || !b.InBounds(to) {
		return fmt.Errorf("%w: %s -> %s", ErrOutOfBounds, from, to)
	}
	return b.PlacePiece(to, b.RemovePiece(from))
}

// IsOccupiableStart: in bounds and holding one of player's pieces
func (b *Board) IsOccupiableStart(pos Position, player *Player) bool {
	p := b.PieceAt(pos)
	return p != nil && p.BelongsTo(player)
}

// IsOccupiableFinish: in bounds and either empty or holding an opponent piece
func (b *Board) IsOccupiableFinish(pos Position, player *Player) bool {
	if !b.InBounds(pos) {
		return false
	}
	p := b.PieceAt(pos)
	return p == nil || !p.BelongsTo(player)
}

// OccupancyScore sums every square's occupancy score for player
func (b *Board) OccupancyScore(player *Player) int {
	total := 0
	for _, sq := range b.squares {
		total += sq.OccupancyScore(player)
	}
	return total
}

// Strongholds returns the board's strongholds in board order
func (b *Board) Strongholds() []*Stronghold {
	var out []*Stronghold
	for _, sq := range b.squares {
		if s, ok := sq.(*Stronghold); ok {
			out = append(out, s)
		}
	}
	return out
}

// StrongholdOf returns the position of player's stronghold
func (b *Board) StrongholdOf(player *Player) (Position, bool) {
	for i, sq := range b.squares {
		if s, ok := sq.(*Stronghold); ok && s.owner.SameAs(player) {
			return Position{Row: i/b.cols + 1, Col: i%b.cols + 1}, true
		}
	}
	return Position{}, false
}

// Each calls fn for every square in row-major order
func (b *Board) Each(fn func(pos Position, sq Square)) {
	for i, sq := range b.squares {
		fn(Position{Row: i/b.cols + 1, Col: i%b.cols + 1}, sq)
	}
}
