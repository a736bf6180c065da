package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state
	GetState() *GameState
	GetConfig() *GameConfig
	Phase() Phase
	IsGameOver() bool
	Result() *Result
	CurrentPlayer() *Player
	Players() []*Player
	Board() *Board
	Offer() *OfferPool

	// Turn steps
	SelectMoveOption(choice int) (bool, error)
	TakeOffer(position int) error
	SelectStart(ref int) (Position, error)
	SelectFinish(ref int) (Position, error)
	ResolveMove(choice int, start, finish Position) (*TurnResult, error)

	// Driving the game from an input provider
	PlayTurn(ctx context.Context, in InputProvider, out Display) (*TurnResult, error)
	Play(ctx context.Context, in InputProvider, out Display) (*Result, error)
}

// Option customises a GameEngine
type Option func(*GameEngine)

// WithSeed fixes the random source that moves the offer pointer
func WithSeed(seed int64) Option {
	return func(e *GameEngine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand supplies the random source directly
func WithRand(rng *rand.Rand) Option {
	return func(e *GameEngine) {
		e.rng = rng
	}
}

// GameEngine implements the Engine interface. It is not safe for concurrent
// use; one turn runs to completion before the next starts.
type GameEngine struct {
	config  *GameConfig
	board   *Board
	players []*Player
	offer   *OfferPool
	current *Player
	rng     *rand.Rand

	phase    Phase
	turn     int
	message  string
	gameOver bool
	reason   TerminationReason
}

// NewEngine creates a game from the provided configuration
func NewEngine(config *GameConfig, opts ...Option) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	one, err := NewPlayer(config.PlayerOne, 1, config.StartingScore, parseNames(config.QueueOne))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	two, err := NewPlayer(config.PlayerTwo, -1, config.StartingScore, parseNames(config.QueueTwo))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	offer, err := NewOfferPool(parseNames(config.Offer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	e := &GameEngine{
		config:  config,
		board:   NewBoard(config.Rows, config.Cols, one, two),
		players: []*Player{one, two},
		offer:   offer,
		current: one,
		phase:   AwaitingMoveSelection,
		turn:    1,
	}
	if config.Seed != 0 {
		e.rng = rand.New(rand.NewSource(config.Seed))
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if err := e.createPieces(config.PiecesPerSide); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	e.message = fmt.Sprintf("%s to move", e.current.Name())
	return e, nil
}

// NewEngineWithDefaults creates the standard 6×6 game
func NewEngineWithDefaults(opts ...Option) *GameEngine {
	e, err := NewEngine(DefaultGameConfig(), opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// createPieces lines up each side's pieces from column 2 and puts each
// commander on its own stronghold.
func (e *GameEngine) createPieces(n int) error {
	rows := e.board.Rows()
	sides := []struct {
		player    *Player
		row       int
		piece     string
		commander string
	}{
		{e.players[0], 2, "!", "1"},
		{e.players[1], rows - 1, "\"", "2"},
	}

	for _, side := range sides {
		for i := 1; i <= n; i++ {
			if err := e.board.PlacePiece(Position{Row: side.row, Col: i + 1}, NewPiece(Standard, side.player, side.piece)); err != nil {
				return err
			}
		}
		home, ok := e.board.StrongholdOf(side.player)
		if !ok {
			return fmt.Errorf("no stronghold for %s", side.player.Name())
		}
		if err := e.board.PlacePiece(home, NewPiece(Commander, side.player, side.commander)); err != nil {
			return err
		}
	}
	return nil
}

// GetState returns a snapshot of the game
func (e *GameEngine) GetState() *GameState {
	return e.snapshot()
}

// GetConfig returns the configuration the game was built from
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

func (e *GameEngine) Phase() Phase { return e.phase }

func (e *GameEngine) IsGameOver() bool { return e.gameOver }

func (e *GameEngine) CurrentPlayer() *Player { return e.current }

func (e *GameEngine) Board() *Board { return e.board }

func (e *GameEngine) Offer() *OfferPool { return e.offer }

// Players returns player one and player two, in that order
func (e *GameEngine) Players() []*Player {
	return []*Player{e.players[0], e.players[1]}
}

func (e *GameEngine) opponentOf(p *Player) *Player {
	if p.SameAs(e.players[0]) {
		return e.players[1]
	}
	return e.players[0]
}

// SelectMoveOption validates a move-option choice. It returns true when the
// player asked for the offer instead of a queue slot.
func (e *GameEngine) SelectMoveOption(choice int) (bool, error) {
	if e.gameOver {
		return false, ErrGameOver
	}
	if choice == OfferSentinel {
		e.phase = AwaitingMoveSelection
		return true, nil
	}
	if choice < 1 || choice > UsableSlots {
		return false, fmt.Errorf("%w: choose 1 to %d or %d, got %d", ErrQueueIndexInvalid, UsableSlots, OfferSentinel, choice)
	}
	e.phase = AwaitingStartSquare
	return false, nil
}

// TakeOffer replaces queue position (1-5) of the current player with the
// offered option, charges 10-2*position points and re-rolls the offer pointer.
// It may be called any number of times before a move is played.
func (e *GameEngine) TakeOffer(position int) error {
	if e.gameOver {
		return ErrGameOver
	}
	if position < 1 || position > QueueLength {
		return fmt.Errorf("%w: choose 1 to %d, got %d", ErrQueueIndexInvalid, QueueLength, position)
	}

	name := e.offer.Current()
	if err := e.current.UpdateQueueWithOffer(position, name); err != nil {
		return err
	}
	e.current.ChangeScore(-OfferCost(position))
	e.offer.Advance(e.rng)

	e.phase = AwaitingMoveSelection
	e.message = fmt.Sprintf("%s took %s into slot %d", e.current.Name(), name, position)
	return nil
}

// SelectStart validates the square holding the piece to move
func (e *GameEngine) SelectStart(ref int) (Position, error) {
	pos, err := e.checkSquare(ref, true)
	if err != nil {
		return pos, err
	}
	e.phase = AwaitingFinishSquare
	return pos, nil
}

// SelectFinish validates the destination square
func (e *GameEngine) SelectFinish(ref int) (Position, error) {
	pos, err := e.checkSquare(ref, false)
	if err != nil {
		return pos, err
	}
	e.phase = Resolving
	return pos, nil
}

func (e *GameEngine) checkSquare(ref int, start bool) (Position, error) {
	pos := ParseRef(ref)
	if e.gameOver {
		return pos, ErrGameOver
	}
	return pos, e.validateSquare(pos, start)
}

func (e *GameEngine) validateSquare(pos Position, start bool) error {
	if !e.board.InBounds(pos) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}
	if start && !e.board.IsOccupiableStart(pos, e.current) {
		return fmt.Errorf("%w: %s does not hold a piece of %s", ErrInvalidSelection, pos, e.current.Name())
	}
	if !start && !e.board.IsOccupiableFinish(pos, e.current) {
		return fmt.Errorf("%w: %s holds a piece of %s", ErrInvalidSelection, pos, e.current.Name())
	}
	return nil
}

// MoveCost is the score charged for playing queue choice c (1-based): 3c-2
func MoveCost(choice int) int {
	return choice + 2*(choice-1)
}

// OfferCost is the score charged for replacing queue position p (1-based): 10-2p
func OfferCost(position int) int {
	return 10 - position*2
}

// ResolveMove plays queue choice from start to finish for the current player.
// A pattern the option does not contain is not an error: nothing moves, no
// score changes, and the turn still passes to the opponent.
func (e *GameEngine) ResolveMove(choice int, start, finish Position) (*TurnResult, error) {
	if e.gameOver {
		return nil, ErrGameOver
	}
	if choice < 1 || choice > UsableSlots {
		return nil, fmt.Errorf("%w: choose 1 to %d, got %d", ErrQueueIndexInvalid, UsableSlots, choice)
	}
	if err := e.validateSquare(start, true); err != nil {
		return nil, err
	}
	if err := e.validateSquare(finish, false); err != nil {
		return nil, err
	}

	e.phase = Resolving
	player := e.current
	opt, err := player.Queue().At(choice - 1)
	if err != nil {
		return nil, err
	}
	legal, err := player.CheckMove(choice, start, finish)
	if err != nil {
		return nil, err
	}

	result := &TurnResult{
		Player:      player.Name(),
		Choice:      choice,
		Option:      string(opt.Name()),
		Start:       start,
		Finish:      finish,
		ScoreBefore: player.Score(),
	}

	if !legal {
		result.Reason = ErrIllegalPattern
		result.ScoreAfter = player.Score()
		e.message = fmt.Sprintf("%s: %s cannot move %s to %s, turn passes", player.Name(), opt.Name(), start, finish)
		e.endTurn(result)
		return result, nil
	}

	result.Legal = true
	if target := e.board.PieceAt(finish); target != nil {
		result.CapturePoints = target.CaptureValue
	}
	result.MoveCost = MoveCost(choice)
	player.ChangeScore(-result.MoveCost)
	if err := player.UpdateQueueAfterMove(choice); err != nil {
		return nil, err
	}
	if err := e.board.MovePiece(start, finish); err != nil {
		return nil, err
	}
	result.Occupancy = e.board.OccupancyScore(player)
	player.ChangeScore(result.Occupancy + result.CapturePoints)
	result.ScoreAfter = player.Score()

	e.message = fmt.Sprintf("%s moved %s to %s with %s. New score: %d", player.Name(), start, finish, opt.Name(), player.Score())
	e.endTurn(result)
	return result, nil
}

// endTurn switches player unconditionally and evaluates termination
func (e *GameEngine) endTurn(result *TurnResult) {
	e.phase = TurnComplete
	e.current = e.opponentOf(e.current)
	e.turn++

	if over, reason := e.checkGameOver(); over {
		e.gameOver = true
		e.reason = reason
		e.phase = GameOverPhase
		result.GameOver = true
		return
	}
	e.phase = AwaitingMoveSelection
}

// checkGameOver: a commander stands on the other side's stronghold, or either
// commander is gone from the board.
func (e *GameEngine) checkGameOver() (bool, TerminationReason) {
	for _, s := range e.board.Strongholds() {
		if p := s.Piece(); p != nil && p.IsCommander() && !p.BelongsTo(s.Owner()) {
			return true, Infiltration
		}
	}

	hasCommander := make(map[string]bool, len(e.players))
	e.board.Each(func(_ Position, sq Square) {
		if p := sq.Piece(); p != nil && p.IsCommander() {
			hasCommander[p.Owner.Name()] = true
		}
	})
	for _, p := range e.players {
		if !hasCommander[p.Name()] {
			return true, CommanderCaptured
		}
	}
	return false, ""
}

// Result compares the two scores: higher wins, equal is a draw
func (e *GameEngine) Result() *Result {
	one, two := e.players[0], e.players[1]
	res := &Result{
		Scores: map[string]int{
			one.Name(): one.Score(),
			two.Name(): two.Score(),
		},
		Reason: e.reason,
	}
	switch {
	case one.Score() == two.Score():
		res.Draw = true
	case one.Score() > two.Score():
		res.Winner = one.Name()
	default:
		res.Winner = two.Name()
	}
	return res
}

// PlayTurn runs one full turn, asking in for every decision and re-asking
// until each answer is acceptable. out sees the state again after each offer taken.
func (e *GameEngine) PlayTurn(ctx context.Context, in InputProvider, out Display) (*TurnResult, error) {
	if e.gameOver {
		return nil, ErrGameOver
	}
	e.phase = AwaitingMoveSelection

	var choice int
	for {
		c, err := in.SelectMoveOption(ctx, e.GetState())
		if err != nil {
			return nil, err
		}
		offer, err := e.SelectMoveOption(c)
		if err != nil {
			in.Reject(err)
			continue
		}
		if !offer {
			choice = c
			break
		}
		if err := e.takeOffer(ctx, in); err != nil {
			return nil, err
		}
		out.Render(e.GetState())
	}

	start, err := e.askSquare(ctx, in, StartSquare)
	if err != nil {
		return nil, err
	}
	finish, err := e.askSquare(ctx, in, FinishSquare)
	if err != nil {
		return nil, err
	}

	return e.ResolveMove(choice, start, finish)
}

func (e *GameEngine) takeOffer(ctx context.Context, in InputProvider) error {
	for {
		pos, err := in.SelectReplacePosition(ctx, e.GetState())
		if err != nil {
			return err
		}
		if err := e.TakeOffer(pos); err != nil {
			if errors.Is(err, ErrQueueIndexInvalid) {
				in.Reject(err)
				continue
			}
			return err
		}
		return nil
	}
}

func (e *GameEngine) askSquare(ctx context.Context, in InputProvider, purpose SquarePurpose) (Position, error) {
	for {
		ref, err := in.SelectSquare(ctx, purpose)
		if err != nil {
			return Position{}, err
		}
		var pos Position
		if purpose == StartSquare {
			pos, err = e.SelectStart(ref)
		} else {
			pos, err = e.SelectFinish(ref)
		}
		if err == nil {
			return pos, nil
		}
		in.Reject(err)
	}
}

// Play runs turns until the game ends and returns the result. out receives
// the state before every turn and once more when the game is over.
func (e *GameEngine) Play(ctx context.Context, in InputProvider, out Display) (*Result, error) {
	for !e.gameOver {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out.Render(e.GetState())
		if _, err := e.PlayTurn(ctx, in, out); err != nil {
			return nil, err
		}
	}
	out.Render(e.GetState())
	return e.Result(), nil
}
