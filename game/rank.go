package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Rank is both the strength of a piece and its type tag.
type Rank int

const (
	Flag       Rank = -1
	Bomb       Rank = 0
	Spy        Rank = 1
	Scout      Rank = 2
	Miner      Rank = 3
	Sergeant   Rank = 4
	Lieutenant Rank = 5
	Captain    Rank = 6
	Major      Rank = 7
	Colonel    Rank = 8
	General    Rank = 9
	Marshal    Rank = 10
)

var rankNames = map[Rank]string{
	Flag:       "flag",
	Bomb:       "bomb",
	Spy:        "spy",
	Scout:      "scout",
	Miner:      "miner",
	Sergeant:   "sergeant",
	Lieutenant: "lieutenant",
	Captain:    "captain",
	Major:      "major",
	Colonel:    "colonel",
	General:    "general",
	Marshal:    "marshal",
}

func (r Rank) Valid() bool {
	return r >= Flag && r <= Marshal
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return fmt.Sprintf("rank(%d)", int(r))
}

// ParseRank accepts a rank name ("miner") or its number ("3").
func ParseRank(text string) (Rank, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	for rank, name := range rankNames {
		if name == text {
			return rank, nil
		}
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("unknown rank %q", text)
	}
	if r := Rank(n); r.Valid() {
		return r, nil
	}
	return 0, fmt.Errorf("rank %d out of range [%d, %d]", n, Flag, Marshal)
}
