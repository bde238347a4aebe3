package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jnalanko/Hu4Rolls-2/holdem"
	"github.com/jnalanko/Hu4Rolls-2/server/connection"
	"github.com/jnalanko/Hu4Rolls-2/server/events"
)

type fixture struct {
	router  *CommandRouter
	seat0   *connection.Client
	seat1   *connection.Client
	session *holdem.Session
}

// newFixture wires a router against a game with both seats connected.
// Clients get buffered send queues so handlers never block.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	registry := holdem.NewRegistry()
	session, err := registry.Create("game-1", 5, 500, 600)
	require.NoError(t, err)

	connMgr := connection.NewManager()
	go connMgr.Start()

	seat0 := &connection.Client{ID: "c0", GameID: "game-1", Seat: 0, Send: make(chan []byte, 16)}
	seat1 := &connection.Client{ID: "c1", GameID: "game-1", Seat: 1, Send: make(chan []byte, 16)}
	connMgr.Register <- seat0
	connMgr.Register <- seat1
	// The manager loop is serial: once this rendezvous happens, both
	// seats are in the client map.
	connMgr.Register <- &connection.Client{ID: "sync", Send: make(chan []byte, 1)}

	dispatcher := events.NewDispatcher(connMgr, false)
	return &fixture{
		router:  NewCommandRouter(registry, dispatcher),
		seat0:   seat0,
		seat1:   seat1,
		session: session,
	}
}

func recvEnvelope(t *testing.T, client *connection.Client) events.Envelope {
	t.Helper()
	select {
	case data := <-client.Send:
		var env events.Envelope
		require.NoError(t, json.Unmarshal(data, &env))
		return env
	default:
		t.Fatal("expected a message on the send queue")
		return events.Envelope{}
	}
}

func requireNoMessage(t *testing.T, client *connection.Client) {
	t.Helper()
	select {
	case data := <-client.Send:
		t.Fatalf("unexpected message: %s", data)
	default:
	}
}

func TestGetStateAnswersOnlyTheRequester(t *testing.T) {
	f := newFixture(t)

	err := f.router.HandleCommand(f.seat1, []byte(`{"name":"GET_STATE"}`))
	require.NoError(t, err)

	env := recvEnvelope(t, f.seat1)
	require.Equal(t, "STATE", env.Name)

	var state holdem.SessionState
	require.NoError(t, json.Unmarshal(env.Payload, &state))
	require.Equal(t, 1, state.Seat)
	require.Equal(t, holdem.BigBlind, state.Position)
	require.Len(t, state.HoleCards, 2)

	requireNoMessage(t, f.seat0)
}

func TestSubmitActionBroadcastsPerSeatStates(t *testing.T) {
	f := newFixture(t)

	err := f.router.HandleCommand(f.seat0, []byte(`{"name":"SUBMIT_ACTION","kind":"call","to":10}`))
	require.NoError(t, err)

	for _, client := range []*connection.Client{f.seat0, f.seat1} {
		env := recvEnvelope(t, client)
		require.Equal(t, "STATE", env.Name)

		var state holdem.SessionState
		require.NoError(t, json.Unmarshal(env.Payload, &state))
		require.Equal(t, client.Seat, state.Seat)
		require.Equal(t, 20, state.Pot)
		require.Len(t, state.HoleCards, 2, "each seat sees exactly its own two cards")
	}
}

func TestOutOfTurnErrorGoesToOffenderOnly(t *testing.T) {
	f := newFixture(t)

	err := f.router.HandleCommand(f.seat1, []byte(`{"name":"SUBMIT_ACTION","kind":"check"}`))
	require.NoError(t, err, "protocol rejections are answered, not escalated")

	env := recvEnvelope(t, f.seat1)
	require.Equal(t, "ERROR", env.Name)

	var payload events.ErrorPayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	require.Equal(t, holdem.ErrOutOfTurn.Error(), payload.Message)

	requireNoMessage(t, f.seat0)
}

func TestInvalidActionErrorGoesToOffenderOnly(t *testing.T) {
	f := newFixture(t)

	err := f.router.HandleCommand(f.seat0, []byte(`{"name":"SUBMIT_ACTION","kind":"raise","to":5}`))
	require.NoError(t, err)

	env := recvEnvelope(t, f.seat0)
	require.Equal(t, "ERROR", env.Name)
	requireNoMessage(t, f.seat1)
}

func TestFoldBroadcastsHandEnded(t *testing.T) {
	f := newFixture(t)

	err := f.router.HandleCommand(f.seat0, []byte(`{"name":"SUBMIT_ACTION","kind":"fold"}`))
	require.NoError(t, err)

	for _, client := range []*connection.Client{f.seat0, f.seat1} {
		state := recvEnvelope(t, client)
		require.Equal(t, "STATE", state.Name)

		ended := recvEnvelope(t, client)
		require.Equal(t, "HAND_ENDED", ended.Name)

		var result holdem.HandResult
		require.NoError(t, json.Unmarshal(ended.Payload, &result))
		require.Equal(t, holdem.BigBlindWins, result.Winner)
		require.Nil(t, result.Showdown)
	}
}

func TestUnknownCommandIsAnError(t *testing.T) {
	f := newFixture(t)

	err := f.router.HandleCommand(f.seat0, []byte(`{"name":"DANCE"}`))
	require.Error(t, err)
}

func TestUnknownGameIsAnError(t *testing.T) {
	f := newFixture(t)

	stranger := &connection.Client{ID: "cx", GameID: "nope", Seat: 0, Send: make(chan []byte, 16)}
	err := f.router.HandleCommand(stranger, []byte(`{"name":"GET_STATE"}`))
	require.ErrorIs(t, err, holdem.ErrGameNotFound)
}
