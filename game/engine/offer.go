package engine

import (
	"fmt"
	"math/rand"
)

// OfferPool is the rotating set of move options either player may acquire.
// The engine owns the single instance for a game.
type OfferPool struct {
	offers []MoveOptionName
	index  int
}

// NewOfferPool creates a pool of QueueLength names with the pointer at 0
func NewOfferPool(offers []MoveOptionName) (*OfferPool, error) {
	if len(offers) != QueueLength {
		return nil, fmt.Errorf("offer pool needs %d entries, got %d", QueueLength, len(offers))
	}
	for _, name := range offers {
		if _, err := ParseMoveOptionName(string(name)); err != nil {
			return nil, err
		}
	}
	o := make([]MoveOptionName, len(offers))
	copy(o, offers)
	return &OfferPool{offers: o}, nil
}

// Current returns the name under the pointer
func (o *OfferPool) Current() MoveOptionName {
	return o.offers[o.index]
}

// Index returns the pointer position
func (o *OfferPool) Index() int {
	return o.index
}

// Offers returns a copy of the pool contents
func (o *OfferPool) Offers() []MoveOptionName {
	out := make([]MoveOptionName, len(o.offers))
	copy(out, o.offers)
	return out
}

// Advance moves the pointer to a pseudorandom slot in [0,4]
func (o *OfferPool) Advance(rng *rand.Rand) {
	o.index = rng.Intn(len(o.offers))
}
