package holdem

// Position is one of the two logical seats in a heads-up hand. The
// button posts the small blind and acts first preflop; the big blind
// acts first on every later street.
type Position string

const (
	Button   Position = "button"
	BigBlind Position = "bigblind"
)

// Other returns the opposite position
func (p Position) Other() Position {
	if p == Button {
		return BigBlind
	}
	return Button
}
