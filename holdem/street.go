package holdem

// StreetName identifies one of the four betting rounds of a hand
type StreetName string

const (
	Preflop StreetName = "preflop"
	Flop    StreetName = "flop"
	Turn    StreetName = "turn"
	River   StreetName = "river"
)

// StreetStatus is the replayed state of a betting round: how much each
// position has put in this street, the current minimum legal raise-to
// amount, and whose turn it is.
type StreetStatus struct {
	ButtonAdded   int
	BigBlindAdded int
	MinRaiseTo    int
	ActivePlayer  Position
}

// BettingRound enforces the legal-action protocol of a single street.
// Contributions and the minimum raise are always derived by replaying
// the action list from the street's first action, so the ledger cannot
// drift from the recorded actions.
type BettingRound struct {
	Street       StreetName
	Actions      []Action
	MinOpenRaise int

	// Stacks at the start of the street
	BtnStartStack int
	BBStartStack  int

	// Remaining stacks after all action in the street so far
	BtnStack int
	BBStack  int
}

// NewBettingRound creates a round with fresh start-stacks equal to the
// stacks remaining at the end of the previous street.
func NewBettingRound(street StreetName, minOpenRaise, btnStartStack, bbStartStack int) *BettingRound {
	return &BettingRound{
		Street:        street,
		MinOpenRaise:  minOpenRaise,
		BtnStartStack: btnStartStack,
		BBStartStack:  bbStartStack,
		BtnStack:      btnStartStack,
		BBStack:       bbStartStack,
	}
}

// FirstToAct returns the position that opens the street: the button
// preflop, the big blind on every later street.
func (r *BettingRound) FirstToAct() Position {
	if r.Street == Preflop {
		return Button
	}
	return BigBlind
}

// Status replays the action list and returns both positions' total
// contributions this street, the minimum legal raise-to amount, and the
// position whose turn it now is.
func (r *BettingRound) Status() StreetStatus {
	active := r.FirstToAct()

	btnAdded := 0
	bbAdded := 0
	minRaiseTo := r.MinOpenRaise

	for _, action := range r.Actions {
		biggerBefore := max(btnAdded, bbAdded)

		setActive := func(amount int) {
			if active == Button {
				btnAdded = amount
			} else {
				bbAdded = amount
			}
		}

		switch action.Kind {
		case Fold, Check:
			// no change to contributions
		case Call:
			setActive(action.To)
		case PostBlind:
			// The big blind posting establishes the opening raise floor.
			minRaiseTo = 2 * action.To
			setActive(action.To)
		case Bet:
			minRaiseTo = 2 * action.To
			setActive(action.To)
		case Raise:
			// The next minimum raise-to is the new stake plus the same
			// increment this raise added over the prior stake.
			raiseBy := action.To - biggerBefore
			minRaiseTo = biggerBefore + 2*raiseBy
			setActive(action.To)
		}

		active = active.Other()
	}

	return StreetStatus{
		ButtonAdded:   btnAdded,
		BigBlindAdded: bbAdded,
		MinRaiseTo:    minRaiseTo,
		ActivePlayer:  active,
	}
}

// AvailableActions returns the menu of currently legal actions for the
// player in turn.
func (r *BettingRound) AvailableActions() []ActionOption {
	// The first two actions of the preflop street can only be the forced
	// blinds: small blind, then big blind.
	if r.Street == Preflop && len(r.Actions) < 2 {
		if len(r.Actions) == 0 {
			return []ActionOption{{Kind: PostBlind, To: r.MinOpenRaise / 2}}
		}
		return []ActionOption{{Kind: PostBlind, To: r.MinOpenRaise}}
	}

	status := r.Status()

	var activeStack, activeStartStack int
	switch status.ActivePlayer {
	case Button:
		activeStack, activeStartStack = r.BtnStack, r.BtnStartStack
	case BigBlind:
		activeStack, activeStartStack = r.BBStack, r.BBStartStack
	}

	bigger := max(status.ButtonAdded, status.BigBlindAdded)

	options := []ActionOption{{Kind: Fold}}

	// Bet: only as the opening action of a street with no forced bet
	if status.ButtonAdded == 0 && status.BigBlindAdded == 0 {
		options = append(options, ActionOption{Kind: Bet, Min: status.MinRaiseTo, Max: activeStack})
	}

	// Call: contributions differ; a short stack calls all-in for less
	if status.ButtonAdded != status.BigBlindAdded {
		options = append(options, ActionOption{Kind: Call, To: min(bigger, activeStartStack)})
	}

	// Raise: money in the pot and more chips behind than it costs to call
	if status.ButtonAdded+status.BigBlindAdded > 0 && activeStack > bigger {
		options = append(options, ActionOption{Kind: Raise, Min: status.MinRaiseTo, Max: activeStack})
	}

	// Check: contributions equal
	if status.ButtonAdded == status.BigBlindAdded {
		options = append(options, ActionOption{Kind: Check})
	}

	return options
}

// SubmitAction validates the action against the current menu, records
// it, and reports whether the round stays open, closed, or ended on a
// fold. Rejected actions leave the round untouched.
func (r *BettingRound) SubmitAction(action Action) (SubmitResult, error) {
	if !r.isValidAction(action) {
		return SubmitResult{}, ErrInvalidAction
	}

	// Status before applying the action
	active := r.Status().ActivePlayer
	lastToAct := r.FirstToAct().Other()

	r.Actions = append(r.Actions, action)

	result := SubmitResult{Outcome: RoundOpen}

	switch action.Kind {
	case Fold:
		result = SubmitResult{Outcome: RoundFolded, FoldedBy: active}
	case Check:
		if active == lastToAct {
			result.Outcome = RoundClosed
		}
	case Call:
		// A call closes the street, except a preflop limp from the
		// button: the big blind keeps the option to act again.
		if !(r.Street == Preflop && active == Button && action.To == r.MinOpenRaise) {
			result.Outcome = RoundClosed
		}
	case PostBlind, Bet, Raise:
		// betting stays open
	}

	status := r.Status()
	r.BtnStack = r.BtnStartStack - status.ButtonAdded
	r.BBStack = r.BBStartStack - status.BigBlindAdded

	return result, nil
}

// isValidAction checks membership in the current menu: exact match for
// Fold/Check and for PostBlind/Call amounts, inclusive-range membership
// for Bet/Raise amounts.
func (r *BettingRound) isValidAction(action Action) bool {
	for _, option := range r.AvailableActions() {
		if option.Kind != action.Kind {
			continue
		}
		switch action.Kind {
		case Fold, Check:
			return true
		case PostBlind, Call:
			if option.To == action.To {
				return true
			}
		case Bet, Raise:
			if action.To >= option.Min && action.To <= option.Max {
				return true
			}
		}
	}
	return false
}
