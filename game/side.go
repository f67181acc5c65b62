package game

import (
	"fmt"
	"strings"
)

// Side identifies which army owns a piece or a start square.
type Side int

const (
	Neither Side = iota // unowned squares and pieces not yet assigned
	SideA
	SideB
)

// Opposite returns the enemy side. Neither has no opposite and panics.
func (s Side) Opposite() Side {
	switch s {
	case SideA:
		return SideB
	case SideB:
		return SideA
	default:
		panic(fmt.Sprintf("side %v has no opposite", s))
	}
}

func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	default:
		return "neither"
	}
}

// ParseSide accepts "A", "B" or "neither" (case-insensitive).
func ParseSide(text string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "a":
		return SideA, nil
	case "b":
		return SideB, nil
	case "neither", "":
		return Neither, nil
	}
	return Neither, fmt.Errorf("unknown side %q", text)
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	side, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = side
	return nil
}
