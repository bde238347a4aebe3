package holdem

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jnalanko/Hu4Rolls-2/cards"
)

func mustStack(t *testing.T, shorthands ...string) cards.Stack {
	t.Helper()
	stack := make(cards.Stack, len(shorthands))
	for i, s := range shorthands {
		card, err := cards.CardFromString(s)
		require.NoError(t, err)
		stack[i] = card
	}
	return stack
}

func TestEvaluateOrdersHandsCorrectly(t *testing.T) {
	eval := NewEvaluator()

	royalFlush, err := eval.Evaluate(mustStack(t, "As", "Ks", "Qs", "Js", "10s"))
	require.NoError(t, err)

	pair, err := eval.Evaluate(mustStack(t, "3c", "4h", "10d", "3h", "Kd"))
	require.NoError(t, err)

	require.True(t, royalFlush.Rank.BetterThan(pair.Rank))
	require.True(t, pair.Rank.WorseThan(royalFlush.Rank))
	require.False(t, pair.Rank.BetterThan(pair.Rank))
	require.NotEmpty(t, royalFlush.Class)
}

func TestEvaluateSevenCardsPicksBestFive(t *testing.T) {
	eval := NewEvaluator()

	// Hole cards complete a flush hiding in the seven
	flush, err := eval.Evaluate(mustStack(t, "Ah", "9h", "2h", "7h", "Kh", "3c", "8d"))
	require.NoError(t, err)

	straight, err := eval.Evaluate(mustStack(t, "9c", "8h", "7d", "6s", "5h", "2c", "2d"))
	require.NoError(t, err)

	require.True(t, flush.Rank.BetterThan(straight.Rank))
}

func TestEvaluateSixCards(t *testing.T) {
	eval := NewEvaluator()

	// The sixth card upgrades two pair to a full house
	withoutBoat, err := eval.Evaluate(mustStack(t, "Kc", "Kd", "7h", "7s", "2c"))
	require.NoError(t, err)

	withBoat, err := eval.Evaluate(mustStack(t, "Kc", "Kd", "7h", "7s", "2c", "Kh"))
	require.NoError(t, err)

	require.True(t, withBoat.Rank.BetterThan(withoutBoat.Rank))
}

func TestEvaluateEqualHandsTie(t *testing.T) {
	eval := NewEvaluator()

	a, err := eval.Evaluate(mustStack(t, "2s", "2h", "2d", "2c", "As"))
	require.NoError(t, err)
	b, err := eval.Evaluate(mustStack(t, "2s", "2h", "2d", "2c", "Ad"))
	require.NoError(t, err)

	require.Equal(t, a.Rank, b.Rank)
}

func TestEvaluateRejectsWrongCardCounts(t *testing.T) {
	eval := NewEvaluator()

	_, err := eval.Evaluate(mustStack(t, "As", "Ks"))
	require.Error(t, err)

	_, err = eval.Evaluate(mustStack(t, "As", "Ks", "Qs", "Js", "10s", "9s", "8s", "7s"))
	require.Error(t, err)
}
