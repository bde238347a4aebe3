package cards

import (
	"math/rand"
	"time"
)

// Deck is an ordered run of cards consumed from the front. The betting
// core never shuffles; it only pops from whatever order it was given.
type Deck struct {
	cards Stack
}

// NewDeck creates an unshuffled standard deck of 52 cards
func NewDeck() *Deck {
	var deck Stack
	suits := []Suit{Spades, Hearts, Diamonds, Clubs}
	values := []Value{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

	for _, suit := range suits {
		for _, value := range values {
			deck = append(deck, Card{Suit: suit, Value: value})
		}
	}

	return &Deck{cards: deck}
}

// NewShuffledDeck creates a standard deck in random order
func NewShuffledDeck() *Deck {
	d := NewDeck()
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	r.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	return d
}

// NewStackedDeck creates a deck that deals the given cards in order.
// Used by tests to script exact hole and board cards.
func NewStackedDeck(cards ...Card) *Deck {
	return &Deck{cards: cards}
}

// Pop removes and returns the next card. Running the deck dry is a
// caller bug (the dealer never asks for more than 9 + board cards), so
// it panics rather than returning an error.
func (d *Deck) Pop() Card {
	if len(d.cards) == 0 {
		panic("cards: pop from empty deck")
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}
