package holdem

import (
	"sync"

	"github.com/jnalanko/Hu4Rolls-2/cards"
)

// Session owns the hand currently being played at a table of two
// physical seats (0 and 1). It maps seats to logical positions,
// authorizes actions by seat, rotates the button between hands, and
// threads each seat's stack into the role it occupies next.
//
// A session is a shared resource: every mutation holds the write lock
// for validation and mutation as one atomic unit, snapshots take the
// read lock so they never observe a torn pot or stack update.
type Session struct {
	mu sync.RWMutex

	ID     string
	SBSize int

	buttonSeat int
	hand       *Hand
	seatStacks [2]int
	finished   bool

	evaluator  Evaluator
	deckSource func() *cards.Deck
}

// SessionOption customizes a session at construction
type SessionOption func(*Session)

// WithDeckSource replaces the deck source used for each new hand.
// Tests use it to script exact hole and board cards.
func WithDeckSource(source func() *cards.Deck) SessionOption {
	return func(s *Session) { s.deckSource = source }
}

// WithEvaluator replaces the showdown evaluator
func WithEvaluator(evaluator Evaluator) SessionOption {
	return func(s *Session) { s.evaluator = evaluator }
}

// NewSession creates a table with seat 0 on the button for the first
// hand and deals that hand immediately. Both starting stacks covering
// their blinds is a caller precondition.
func NewSession(id string, sbSize, seat0Stack, seat1Stack int, opts ...SessionOption) *Session {
	s := &Session{
		ID:         id,
		SBSize:     sbSize,
		buttonSeat: 0,
		seatStacks: [2]int{seat0Stack, seat1Stack},
		evaluator:  NewEvaluator(),
		deckSource: cards.NewShuffledDeck,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.hand = NewHand(s.deckSource(), seat0Stack, seat1Stack, sbSize, s.evaluator)

	return s
}

// positionForSeat resolves a physical seat to its logical position in
// the current hand.
func (s *Session) positionForSeat(seat int) Position {
	if seat == s.buttonSeat {
		return Button
	}
	return BigBlind
}

// seatForPosition is the inverse mapping
func (s *Session) seatForPosition(p Position) int {
	if p == Button {
		return s.buttonSeat
	}
	return 1 - s.buttonSeat
}

// ProcessAction submits an action on behalf of a seat. Acting out of
// turn or outside the legal menu fails without mutating anything. When
// the action concludes the hand, the result is returned and the next
// hand starts with the button rotated and the settled stacks carried
// over. If a stack can no longer cover its blind, the session finishes
// instead.
func (s *Session) ProcessAction(seat int, action Action) (*HandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return nil, ErrSessionFinished
	}

	if s.positionForSeat(seat) != s.hand.CurrentRound().Status().ActivePlayer {
		return nil, ErrOutOfTurn
	}

	result, err := s.hand.SubmitAction(action)
	if err != nil {
		return nil, err
	}

	if result != nil {
		s.startNextHand(result)
	}

	return result, nil
}

// startNextHand flips the button and threads each seat's settled stack
// through the position it occupies in the new hand.
func (s *Session) startNextHand(result *HandResult) {
	s.seatStacks[s.seatForPosition(Button)] = result.BtnNextStack
	s.seatStacks[s.seatForPosition(BigBlind)] = result.BBNextStack

	s.buttonSeat = 1 - s.buttonSeat

	btnStack := s.seatStacks[s.seatForPosition(Button)]
	bbStack := s.seatStacks[s.seatForPosition(BigBlind)]

	if btnStack < s.SBSize || bbStack < 2*s.SBSize {
		// A busted (or nearly busted) player cannot post: stop dealing
		// instead of violating the hand constructor's precondition.
		s.finished = true
		s.hand = nil
		return
	}

	s.hand = NewHand(s.deckSource(), btnStack, bbStack, s.SBSize, s.evaluator)
}

// SessionState is a read-only snapshot of the table as one seat is
// allowed to see it. Slices indexed by physical seat.
type SessionState struct {
	GameID     string     `json:"game_id"`
	Seat       int        `json:"seat"`
	Position   Position   `json:"position"`
	ButtonSeat int        `json:"button_seat"`
	SBSize     int        `json:"sb_size"`
	BBSize     int        `json:"bb_size"`
	Finished   bool       `json:"finished"`
	Street     StreetName `json:"street,omitempty"`

	Pot                 int    `json:"pot"`
	SeatStacks          [2]int `json:"seat_stacks"`
	StreetContributions [2]int `json:"street_contributions"`

	HoleCards cards.Stack `json:"hole_cards,omitempty"`
	Board     cards.Stack `json:"board"`

	ActiveSeat       int            `json:"active_seat"`
	ActivePosition   Position       `json:"active_position,omitempty"`
	YourTurn         bool           `json:"your_turn"`
	AvailableActions []ActionOption `json:"available_actions,omitempty"`
}

// State renders the snapshot visible to the given seat. It includes the
// requesting seat's own hole cards and never the opponent's: this is
// the only place hole-card information crosses the session boundary
// while a hand is in progress.
func (s *Session) State(forSeat int) SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := SessionState{
		GameID:     s.ID,
		Seat:       forSeat,
		Position:   s.positionForSeat(forSeat),
		ButtonSeat: s.buttonSeat,
		SBSize:     s.SBSize,
		BBSize:     2 * s.SBSize,
		Finished:   s.finished,
		ActiveSeat: -1,
		Board:      cards.Stack{},
	}

	if s.finished {
		state.SeatStacks = s.seatStacks
		return state
	}

	hand := s.hand
	round := hand.CurrentRound()
	status := round.Status()

	state.Street = round.Street
	state.Pot = hand.Pot
	state.SeatStacks[s.seatForPosition(Button)] = hand.BtnStack
	state.SeatStacks[s.seatForPosition(BigBlind)] = hand.BBStack
	state.StreetContributions[s.seatForPosition(Button)] = status.ButtonAdded
	state.StreetContributions[s.seatForPosition(BigBlind)] = status.BigBlindAdded
	state.Board = hand.Board

	if state.Position == Button {
		state.HoleCards = hand.BtnHoleCards
	} else {
		state.HoleCards = hand.BBHoleCards
	}

	state.ActivePosition = status.ActivePlayer
	state.ActiveSeat = s.seatForPosition(status.ActivePlayer)
	state.YourTurn = state.ActiveSeat == forSeat
	state.AvailableActions = round.AvailableActions()

	return state
}
