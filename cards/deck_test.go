package cards

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	deck := NewDeck()
	require.Equal(t, 52, deck.Len())

	seen := make(map[Card]bool)
	for deck.Len() > 0 {
		card := deck.Pop()
		require.False(t, seen[card], "duplicate card %s", card)
		seen[card] = true
	}
	require.Len(t, seen, 52)
}

func TestNewShuffledDeckHas52UniqueCards(t *testing.T) {
	deck := NewShuffledDeck()
	require.Equal(t, 52, deck.Len())

	seen := make(map[Card]bool)
	for deck.Len() > 0 {
		seen[deck.Pop()] = true
	}
	require.Len(t, seen, 52)
}

func TestStackedDeckPopsInOrder(t *testing.T) {
	as := Card{Suit: Spades, Value: Ace}
	kd := Card{Suit: Diamonds, Value: King}
	deck := NewStackedDeck(as, kd)

	require.Equal(t, as, deck.Pop())
	require.Equal(t, kd, deck.Pop())
	require.Equal(t, 0, deck.Len())
}

func TestPopFromEmptyDeckPanics(t *testing.T) {
	deck := NewStackedDeck()
	require.Panics(t, func() { deck.Pop() })
}
