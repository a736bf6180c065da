package engine

// CellView is the display form of one square
type CellView struct {
	Position    Position  `json:"position"`
	Symbol      string    `json:"symbol"`
	Stronghold  string    `json:"stronghold,omitempty"`
	PieceSymbol string    `json:"piece_symbol,omitempty"`
	PieceKind   PieceKind `json:"piece_kind,omitempty"`
	PieceOwner  string    `json:"piece_owner,omitempty"`
}

// PlayerState is a read-only view of a player
type PlayerState struct {
	Name      string           `json:"name"`
	Direction int              `json:"direction"`
	Score     int              `json:"score"`
	Queue     []MoveOptionName `json:"queue"`
}

// Result is the outcome of a finished game. The winner is decided by score alone.
type Result struct {
	Winner string            `json:"winner,omitempty"`
	Draw   bool              `json:"draw"`
	Scores map[string]int    `json:"scores"`
	Reason TerminationReason `json:"reason"`
}

// GameState is the snapshot handed to display sinks
type GameState struct {
	ConfigName    string         `json:"config_name"`
	Rows          int            `json:"rows"`
	Cols          int            `json:"cols"`
	Board         [][]CellView   `json:"board"`
	Offer         MoveOptionName `json:"offer"`
	OfferIndex    int            `json:"offer_index"`
	CurrentPlayer string         `json:"current_player"`
	Players       []PlayerState  `json:"players"`
	Phase         Phase          `json:"phase"`
	Turn          int            `json:"turn"`
	Message       string         `json:"message,omitempty"`
	GameOver      bool           `json:"game_over"`
	Result        *Result        `json:"result,omitempty"`
}

// Player returns the state of the named player
func (s *GameState) Player(name string) (PlayerState, bool) {
	for _, p := range s.Players {
		if p.Name == name {
			return p, true
		}
	}
	return PlayerState{}, false
}

// Current returns the state of the player whose turn it is
func (s *GameState) Current() PlayerState {
	p, _ := s.Player(s.CurrentPlayer)
	return p
}

// TurnResult reports what happened when a move was resolved
type TurnResult struct {
	Player        string   `json:"player"`
	Choice        int      `json:"choice"`
	Option        string   `json:"option"`
	Start         Position `json:"start"`
	Finish        Position `json:"finish"`
	Legal         bool     `json:"legal"`
	Reason        error    `json:"-"`
	CapturePoints int      `json:"capture_points"`
	MoveCost      int      `json:"move_cost"`
	Occupancy     int      `json:"occupancy"`
	ScoreBefore   int      `json:"score_before"`
	ScoreAfter    int      `json:"score_after"`
	GameOver      bool     `json:"game_over"`
}

func (e *GameEngine) snapshot() *GameState {
	b := e.board
	grid := make([][]CellView, b.Rows())
	for r := range grid {
		grid[r] = make([]CellView, b.Cols())
	}
	b.Each(func(pos Position, sq Square) {
		view := CellView{Position: pos, Symbol: sq.Symbol()}
		if s, ok := sq.(*Stronghold); ok {
			view.Stronghold = s.Owner().Name()
		}
		if p := sq.Piece(); p != nil {
			view.PieceSymbol = p.Symbol
			view.PieceKind = p.Kind
			view.PieceOwner = p.Owner.Name()
		}
		grid[pos.Row-1][pos.Col-1] = view
	})

	players := make([]PlayerState, 0, len(e.players))
	for _, p := range e.players {
		players = append(players, PlayerState{
			Name:      p.Name(),
			Direction: p.Direction(),
			Score:     p.Score(),
			Queue:     p.Queue().Names(),
		})
	}

	state := &GameState{
		ConfigName:    e.config.Name,
		Rows:          b.Rows(),
		Cols:          b.Cols(),
		Board:         grid,
		Offer:         e.offer.Current(),
		OfferIndex:    e.offer.Index(),
		CurrentPlayer: e.current.Name(),
		Players:       players,
		Phase:         e.phase,
		Turn:          e.turn,
		Message:       e.message,
		GameOver:      e.gameOver,
	}
	if e.gameOver {
		state.Result = e.Result()
	}
	return state
}
