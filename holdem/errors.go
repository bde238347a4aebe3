package holdem

import "errors"

var (
	// ErrInvalidAction is returned when a submitted action is not in the
	// current legal-option set. No state is mutated.
	ErrInvalidAction = errors.New("invalid action")

	// ErrOutOfTurn is returned when a seat acts out of turn. No state is
	// mutated.
	ErrOutOfTurn = errors.New("not your turn")

	// ErrSessionFinished is returned when acting on a session whose
	// players can no longer cover the blinds.
	ErrSessionFinished = errors.New("session is finished")

	// ErrGameExists is returned when creating a game with a taken id
	ErrGameExists = errors.New("game with this id already exists")

	// ErrGameNotFound is returned when looking up an unknown game id
	ErrGameNotFound = errors.New("game not found")
)
