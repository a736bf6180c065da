package engine

import "context"

// InputProvider supplies player decisions. Each call blocks until the player
// answers; an error means the input source is gone and aborts the game loop.
type InputProvider interface {
	// SelectMoveOption returns a queue choice 1-3, or OfferSentinel to take the offer
	SelectMoveOption(ctx context.Context, state *GameState) (int, error)
	// SelectReplacePosition returns the 1-5 queue position the offer replaces
	SelectReplacePosition(ctx context.Context, state *GameState) (int, error)
	// SelectSquare returns a row*10+col square reference
	SelectSquare(ctx context.Context, purpose SquarePurpose) (int, error)
	// Reject is told why the last answer was refused before the engine asks again
	Reject(err error)
}

// Display receives snapshots to show
type Display interface {
	Render(state *GameState)
}

// DisplayFunc adapts a function to Display
type DisplayFunc func(state *GameState)

func (f DisplayFunc) Render(state *GameState) { f(state) }

// MultiDisplay fans a snapshot out to several displays
type MultiDisplay []Display

func (m MultiDisplay) Render(state *GameState) {
	for _, d := range m {
		if d != nil {
			d.Render(state)
		}
	}
}
