package game

// Engagement is the outcome of a combat, always seen from the attacker.
type Engagement int

const (
	Win Engagement = iota
	Lose
	Draw
)

func (e Engagement) String() string {
	switch e {
	case Win:
		return "win"
	case Lose:
		return "lose"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

func (e Engagement) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// MovementResult reports whether a move was executed and, when the
// destination held an enemy, how the combat ended.
type MovementResult struct {
	Moved      bool        `json:"moved"`
	Engagement *Engagement `json:"engagement,omitempty"`
}

// Fought reports whether the move resolved a combat.
func (mr MovementResult) Fought() bool {
	return mr.Engagement != nil
}
