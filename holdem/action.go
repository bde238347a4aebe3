package holdem

// ActionKind identifies a player move
type ActionKind string

const (
	Fold      ActionKind = "fold"
	Check     ActionKind = "check"
	PostBlind ActionKind = "post_blind"
	Call      ActionKind = "call"
	Bet       ActionKind = "bet"
	Raise     ActionKind = "raise"
)

// Action is a player's move. All monetary actions carry the resulting
// total contribution for the current street ("to", not "by"): raising
// to 200 means "my total stake on this street becomes 200".
type Action struct {
	Kind ActionKind `json:"kind"`
	To   int        `json:"to,omitempty"`
}

// NewFold returns a fold action
func NewFold() Action { return Action{Kind: Fold} }

// NewCheck returns a check action
func NewCheck() Action { return Action{Kind: Check} }

// NewPostBlind returns a blind post for the given amount
func NewPostBlind(to int) Action { return Action{Kind: PostBlind, To: to} }

// NewCall returns a call to the given total street stake
func NewCall(to int) Action { return Action{Kind: Call, To: to} }

// NewBet returns a bet to the given total street stake
func NewBet(to int) Action { return Action{Kind: Bet, To: to} }

// NewRaise returns a raise to the given total street stake
func NewRaise(to int) Action { return Action{Kind: Raise, To: to} }

// ActionOption is one entry of the currently legal menu. Fold and Check
// carry no amount, PostBlind and Call carry the exact required "to"
// amount, Bet and Raise carry inclusive bounds on the "to" amount.
type ActionOption struct {
	Kind ActionKind `json:"kind"`
	To   int        `json:"to,omitempty"`
	Min  int        `json:"min,omitempty"`
	Max  int        `json:"max,omitempty"`
}

// RoundOutcome classifies the effect of an action on the betting round
type RoundOutcome int

const (
	// RoundOpen means the street's betting continues
	RoundOpen RoundOutcome = iota
	// RoundClosed means the street's betting is complete
	RoundClosed
	// RoundFolded means a player folded and the hand ends immediately
	RoundFolded
)

// SubmitResult reports what an accepted action did to the round.
// FoldedBy is meaningful only when Outcome is RoundFolded.
type SubmitResult struct {
	Outcome  RoundOutcome
	FoldedBy Position
}
