package handlers

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jnalanko/Hu4Rolls-2/holdem"
	"github.com/jnalanko/Hu4Rolls-2/server/commands"
	"github.com/jnalanko/Hu4Rolls-2/server/connection"
	"github.com/jnalanko/Hu4Rolls-2/server/events"
)

// CommandRouter routes incoming websocket commands to the appropriate
// handler
type CommandRouter struct {
	registry   *holdem.Registry
	dispatcher *events.Dispatcher
}

// NewCommandRouter creates a new command router
func NewCommandRouter(registry *holdem.Registry, dispatcher *events.Dispatcher) *CommandRouter {
	return &CommandRouter{
		registry:   registry,
		dispatcher: dispatcher,
	}
}

// HandleCommand processes an incoming command message
func (r *CommandRouter) HandleCommand(client *connection.Client, message []byte) error {
	// First determine command type
	var baseCmd struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(message, &baseCmd); err != nil {
		return err
	}

	// Route to appropriate handler based on command type
	switch baseCmd.Name {
	case commands.SubmitAction{}.Name():
		var cmd commands.SubmitAction
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handleSubmitAction(client, cmd)

	case commands.GetState{}.Name():
		return r.handleGetState(client)

	default:
		return fmt.Errorf("unknown command type %q", baseCmd.Name)
	}
}

// handleSubmitAction plays one move. Protocol-level rejections go back
// to the offending client verbatim; successful mutations are broadcast
// to every seat.
func (r *CommandRouter) handleSubmitAction(client *connection.Client, cmd commands.SubmitAction) error {
	session, err := r.registry.Get(client.GameID)
	if err != nil {
		return err
	}

	result, err := session.ProcessAction(client.Seat, cmd.Action())
	if err != nil {
		if errors.Is(err, holdem.ErrInvalidAction) || errors.Is(err, holdem.ErrOutOfTurn) || errors.Is(err, holdem.ErrSessionFinished) {
			r.dispatcher.SendError(client, err)
			return nil
		}
		return err
	}

	r.dispatcher.BroadcastState(client.GameID, session)
	if result != nil {
		r.dispatcher.BroadcastHandEnded(client.GameID, result)
	}

	return nil
}

func (r *CommandRouter) handleGetState(client *connection.Client) error {
	session, err := r.registry.Get(client.GameID)
	if err != nil {
		return err
	}

	r.dispatcher.SendState(client, session)
	return nil
}
