package engine

// Piece is a token owned by one player
type Piece struct {
	Kind         PieceKind
	Owner        *Player
	CaptureValue int
	Symbol       string
}

// NewPiece creates a standard piece or commander for a player
func NewPiece(kind PieceKind, owner *Player, symbol string) *Piece {
	value := StandardCaptureValue
	if kind == Commander {
		value = CommanderValue
	}
	return &Piece{
		Kind:         kind,
		Owner:        owner,
		CaptureValue: value,
		Symbol:       symbol,
	}
}

// IsCommander reports whether the piece is its owner's commander
func (p *Piece) IsCommander() bool {
	return p.Kind == Commander
}

// BelongsTo reports whether the piece is owned by player
func (p *Piece) BelongsTo(player *Player) bool {
	return p.Owner.SameAs(player)
}
