package holdem

import (
	"fmt"

	"github.com/jnalanko/Hu4Rolls-2/cards"
)

// Winner identifies who takes the pot at the end of a hand
type Winner string

const (
	ButtonWins   Winner = "button"
	BigBlindWins Winner = "bigblind"
	SplitPot     Winner = "split"
)

// Showdown records both evaluated hands and the hole cards shown, so
// the winner can be justified to the players.
type Showdown struct {
	BtnHoleCards cards.Stack `json:"btn_hole_cards"`
	BBHoleCards  cards.Stack `json:"bb_hole_cards"`
	BtnHand      Evaluation  `json:"btn_hand"`
	BBHand       Evaluation  `json:"bb_hand"`
}

// HandResult is the immutable summary of a concluded hand. Showdown is
// nil when the hand ended on a fold.
type HandResult struct {
	Winner       Winner    `json:"winner"`
	BtnNextStack int       `json:"btn_next_stack"`
	BBNextStack  int       `json:"bb_next_stack"`
	Showdown     *Showdown `json:"showdown,omitempty"`
}

// Hand sequences the betting rounds of one complete hand of heads-up
// no-limit hold'em: it deals community cards between streets, runs the
// showdown after the river, and computes the post-hand settlement.
//
// Invariant at every observable point:
//
//	Pot + BtnStack + BBStack == BtnStartStack + BBStartStack
type Hand struct {
	BtnHoleCards cards.Stack
	BBHoleCards  cards.Stack
	Board        cards.Stack
	SBSize       int

	// Stacks at the start of the hand
	BtnStartStack int
	BBStartStack  int

	// Remaining stacks after all action in the hand so far
	BtnStack int
	BBStack  int
	Pot      int

	// Streets played so far; the current street is the last element
	Streets []*BettingRound

	deck      *cards.Deck
	evaluator Evaluator
}

// NewHand deals hole cards (button first), opens the preflop round, and
// posts both blinds into it. Both players covering their blinds is a
// caller precondition, not a runtime condition: violating it panics.
func NewHand(deck *cards.Deck, btnStack, bbStack, sbSize int, evaluator Evaluator) *Hand {
	if btnStack < sbSize || bbStack < 2*sbSize {
		panic(fmt.Sprintf("holdem: stacks (%d, %d) cannot cover blinds at sb %d", btnStack, bbStack, sbSize))
	}

	btnHole := cards.NewStack(deck.Pop(), deck.Pop())
	bbHole := cards.NewStack(deck.Pop(), deck.Pop())

	preflop := NewBettingRound(Preflop, 2*sbSize, btnStack, bbStack)
	if _, err := preflop.SubmitAction(NewPostBlind(sbSize)); err != nil {
		panic(fmt.Sprintf("holdem: small blind rejected: %v", err))
	}
	if _, err := preflop.SubmitAction(NewPostBlind(2 * sbSize)); err != nil {
		panic(fmt.Sprintf("holdem: big blind rejected: %v", err))
	}

	hand := &Hand{
		BtnHoleCards:  btnHole,
		BBHoleCards:   bbHole,
		Board:         cards.Stack{},
		SBSize:        sbSize,
		BtnStartStack: btnStack,
		BBStartStack:  bbStack,
		Streets:       []*BettingRound{preflop},
		deck:          deck,
		evaluator:     evaluator,
	}
	hand.updatePotAndStacks()

	return hand
}

// CurrentRound returns the street whose betting is in progress
func (h *Hand) CurrentRound() *BettingRound {
	return h.Streets[len(h.Streets)-1]
}

// SubmitAction forwards the action to the current street. It returns a
// HandResult when the action concluded the hand (a fold, or the river
// closing into showdown), nil while the hand continues. Rejected
// actions propagate unchanged and leave the hand untouched.
func (h *Hand) SubmitAction(action Action) (*HandResult, error) {
	result, err := h.CurrentRound().SubmitAction(action)
	if err != nil {
		return nil, err
	}

	h.updatePotAndStacks()

	switch result.Outcome {
	case RoundFolded:
		return h.settleFold(result.FoldedBy), nil
	case RoundClosed:
		return h.advanceStreet(), nil
	default:
		return nil, nil
	}
}

// advanceStreet deals the next street's board cards and opens its
// betting round, or runs the showdown when the river just closed. The
// new round inherits the stacks as they stood at the end of the prior
// street, and the minimum open raise resets to one big blind bet.
func (h *Hand) advanceStreet() *HandResult {
	switch h.CurrentRound().Street {
	case Preflop:
		h.Board = append(h.Board, h.deck.Pop(), h.deck.Pop(), h.deck.Pop())
		h.Streets = append(h.Streets, NewBettingRound(Flop, 2*h.SBSize, h.BtnStack, h.BBStack))
	case Flop:
		h.Board = append(h.Board, h.deck.Pop())
		h.Streets = append(h.Streets, NewBettingRound(Turn, 2*h.SBSize, h.BtnStack, h.BBStack))
	case Turn:
		h.Board = append(h.Board, h.deck.Pop())
		h.Streets = append(h.Streets, NewBettingRound(River, 2*h.SBSize, h.BtnStack, h.BBStack))
	case River:
		return h.settleShowdown()
	}
	return nil
}

// settleFold awards the whole pot to the player who did not fold
func (h *Hand) settleFold(folded Position) *HandResult {
	var winner Winner
	if folded == Button {
		winner = BigBlindWins
	} else {
		winner = ButtonWins
	}

	btnNext, bbNext := h.stacksAfterHand(winner)
	return &HandResult{Winner: winner, BtnNextStack: btnNext, BBNextStack: bbNext}
}

// settleShowdown evaluates both hands against the full board and
// settles the pot by rank comparison.
func (h *Hand) settleShowdown() *HandResult {
	showdown := h.runShowdown()

	var winner Winner
	switch {
	case showdown.BtnHand.Rank.BetterThan(showdown.BBHand.Rank):
		winner = ButtonWins
	case showdown.BtnHand.Rank.WorseThan(showdown.BBHand.Rank):
		winner = BigBlindWins
	default:
		winner = SplitPot
	}

	btnNext, bbNext := h.stacksAfterHand(winner)
	return &HandResult{Winner: winner, BtnNextStack: btnNext, BBNextStack: bbNext, Showdown: showdown}
}

// runShowdown scores each player's best hand from 2 hole + 5 board
// cards. The evaluator failing here means the deck handed to the hand
// was corrupt, which is a precondition violation.
func (h *Hand) runShowdown() *Showdown {
	btnHand, err := h.evaluator.Evaluate(append(append(cards.Stack{}, h.BtnHoleCards...), h.Board...))
	if err != nil {
		panic(fmt.Sprintf("holdem: evaluate button hand: %v", err))
	}
	bbHand, err := h.evaluator.Evaluate(append(append(cards.Stack{}, h.BBHoleCards...), h.Board...))
	if err != nil {
		panic(fmt.Sprintf("holdem: evaluate big blind hand: %v", err))
	}

	return &Showdown{
		BtnHoleCards: h.BtnHoleCards,
		BBHoleCards:  h.BBHoleCards,
		BtnHand:      btnHand,
		BBHand:       bbHand,
	}
}

// stacksAfterHand computes each position's stack for the next hand: the
// winner gains exactly what the loser contributed, a split returns both
// players to their hand-start stacks.
func (h *Hand) stacksAfterHand(winner Winner) (btnNext, bbNext int) {
	btnPutIn := h.BtnStartStack - h.BtnStack
	bbPutIn := h.BBStartStack - h.BBStack

	switch winner {
	case ButtonWins:
		return h.BtnStartStack + bbPutIn, h.BBStartStack - bbPutIn
	case BigBlindWins:
		return h.BtnStartStack - btnPutIn, h.BBStartStack + btnPutIn
	default:
		return h.BtnStartStack, h.BBStartStack
	}
}

// updatePotAndStacks recomputes the pot and both remaining stacks by
// summing every street's replayed contributions.
func (h *Hand) updatePotAndStacks() {
	pot := 0
	btnStack := h.BtnStartStack
	bbStack := h.BBStartStack

	for _, street := range h.Streets {
		status := street.Status()
		pot += status.ButtonAdded + status.BigBlindAdded
		btnStack -= status.ButtonAdded
		bbStack -= status.BigBlindAdded
	}

	h.Pot = pot
	h.BtnStack = btnStack
	h.BBStack = bbStack
}
