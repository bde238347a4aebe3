package commands

import "github.com/jnalanko/Hu4Rolls-2/holdem"

// Command is a message a client sends over the websocket. The Name
// discriminates the flat JSON encoding.
type Command interface {
	Name() string
}

// SubmitAction plays a move in the client's game. Amounts use the
// "to" convention: the resulting total contribution for the street.
type SubmitAction struct {
	Kind holdem.ActionKind `json:"kind"`
	To   int               `json:"to,omitempty"`
}

func (s SubmitAction) Name() string { return "SUBMIT_ACTION" }

// Action converts the command to a core action
func (s SubmitAction) Action() holdem.Action {
	return holdem.Action{Kind: s.Kind, To: s.To}
}

// GetState asks for the client's current view of the table
type GetState struct{}

func (g GetState) Name() string { return "GET_STATE" }
