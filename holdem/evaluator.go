package holdem

import (
	"fmt"

	"github.com/paulhankin/poker"

	"github.com/jnalanko/Hu4Rolls-2/cards"
)

// Rank is a totally ordered hand strength. A higher rank beats a lower
// one; equal ranks split.
type Rank int16

// BetterThan reports whether r beats other
func (r Rank) BetterThan(other Rank) bool { return r > other }

// WorseThan reports whether r loses to other
func (r Rank) WorseThan(other Rank) bool { return r < other }

// Evaluation is a scored hand plus a human-readable description of the
// best five-card combination, e.g. "two pair, kings and tens".
type Evaluation struct {
	Rank  Rank   `json:"rank"`
	Class string `json:"class"`
}

// Evaluator scores a 5, 6, or 7 card hand. The betting core treats it
// as an opaque capability: evaluate, then compare ranks.
type Evaluator interface {
	Evaluate(hand cards.Stack) (Evaluation, error)
}

// LibraryEvaluator scores hands with github.com/paulhankin/poker
type LibraryEvaluator struct{}

// NewEvaluator returns the production evaluator
func NewEvaluator() LibraryEvaluator {
	return LibraryEvaluator{}
}

// Evaluate scores the best five-card hand out of the given cards
func (LibraryEvaluator) Evaluate(hand cards.Stack) (Evaluation, error) {
	libCards, err := toLibraryCards(hand)
	if err != nil {
		return Evaluation{}, err
	}

	var score int16
	described := libCards
	switch len(libCards) {
	case 5:
		var five [5]poker.Card
		copy(five[:], libCards)
		score = poker.Eval5(&five)
	case 6:
		// The library has no 6-card entry point: take the best of the
		// six 5-card subsets and describe that one.
		var five, best [5]poker.Card
		for skip := 0; skip < 6; skip++ {
			n := 0
			for i, c := range libCards {
				if i == skip {
					continue
				}
				five[n] = c
				n++
			}
			if s := poker.Eval5(&five); skip == 0 || s > score {
				score = s
				best = five
			}
		}
		described = best[:]
	case 7:
		var seven [7]poker.Card
		copy(seven[:], libCards)
		score = poker.Eval7(&seven)
	default:
		return Evaluation{}, fmt.Errorf("cannot evaluate %d cards, want 5-7", len(libCards))
	}

	class, err := poker.Describe(described)
	if err != nil {
		return Evaluation{}, fmt.Errorf("describe hand: %w", err)
	}

	return Evaluation{Rank: Rank(score), Class: class}, nil
}

func toLibraryCards(hand cards.Stack) ([]poker.Card, error) {
	out := make([]poker.Card, len(hand))
	for i, c := range hand {
		lc, err := toLibraryCard(c)
		if err != nil {
			return nil, err
		}
		out[i] = lc
	}
	return out, nil
}

func toLibraryCard(c cards.Card) (poker.Card, error) {
	var none poker.Card

	var suit poker.Suit
	switch c.Suit {
	case cards.Clubs:
		suit = poker.Club
	case cards.Diamonds:
		suit = poker.Diamond
	case cards.Hearts:
		suit = poker.Heart
	case cards.Spades:
		suit = poker.Spade
	default:
		return none, fmt.Errorf("invalid suit in card %s", c)
	}

	// Our ranks run 2..14 with Ace = 14, the library wants Ace = 1.
	rank := c.Value.Rank()
	if rank == 14 {
		rank = 1
	}

	return poker.MakeCard(suit, poker.Rank(rank))
}
