package events

import (
	"encoding/json"
	"log"

	"github.com/sanity-io/litter"

	"github.com/jnalanko/Hu4Rolls-2/holdem"
	"github.com/jnalanko/Hu4Rolls-2/server/connection"
)

// Envelope wraps an outbound event with its name for client consumption
type Envelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// ErrorPayload carries a rejected command's message back to its sender
type ErrorPayload struct {
	Message string `json:"message"`
}

// Dispatcher routes game events to connected clients. State snapshots
// are rendered per seat so a client never receives the opponent's hole
// cards while a hand is in progress.
type Dispatcher struct {
	connMgr *connection.Manager
	debug   bool
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(connMgr *connection.Manager, debug bool) *Dispatcher {
	return &Dispatcher{connMgr: connMgr, debug: debug}
}

func envelope(name string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Name: name, Payload: raw})
}

// SendState sends one client its own view of the table. Delivery goes
// through the connection manager so a client that unregistered in the
// meantime is skipped, not sent to.
func (d *Dispatcher) SendState(client *connection.Client, session *holdem.Session) {
	data, err := envelope("STATE", session.State(client.Seat))
	if err != nil {
		log.Println("Failed to marshal state envelope:", err)
		return
	}
	d.connMgr.SendToClient(client.ID, data)
}

// BroadcastState sends every connected client of the game its own view.
// Called after every successful mutation: broadcasting is the
// transport's job, the core only returns results.
func (d *Dispatcher) BroadcastState(gameID string, session *holdem.Session) {
	for _, client := range d.connMgr.GameClients(gameID) {
		d.SendState(client, session)
	}
}

// BroadcastHandEnded notifies all clients of a concluded hand,
// including the showdown record when one exists.
func (d *Dispatcher) BroadcastHandEnded(gameID string, result *holdem.HandResult) {
	if d.debug {
		litter.D(result)
	}

	data, err := envelope("HAND_ENDED", result)
	if err != nil {
		log.Println("Failed to marshal hand result envelope:", err)
		return
	}
	d.connMgr.SendToGame(gameID, data)
}

// SendError reports a rejected command to the offending client only;
// other clients observe no change.
func (d *Dispatcher) SendError(client *connection.Client, cmdErr error) {
	data, err := envelope("ERROR", ErrorPayload{Message: cmdErr.Error()})
	if err != nil {
		log.Println("Failed to marshal error envelope:", err)
		return
	}
	d.connMgr.SendToClient(client.ID, data)
}
