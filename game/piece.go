package game

import (
	"fmt"

	"github.com/google/uuid"
)

// Position is a grid coordinate. X indexes columns, Y indexes rows.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Piece is a single unit. Rank never changes after construction and Side is
// stamped once by the army that builds it. Position is nil while the piece is
// off the board, which is always the case once it is dead.
type Piece struct {
	ID       uuid.UUID `json:"id"`
	Rank     Rank      `json:"rank"`
	Side     Side      `json:"side"`
	Position *Position `json:"position,omitempty"`
	Alive    bool      `json:"alive"`
	Revealed bool      `json:"revealed"`
}

func NewPiece(rank Rank) *Piece {
	return &Piece{
		ID:    uuid.New(),
		Rank:  rank,
		Side:  Neither,
		Alive: true,
	}
}

// Movable is false for bombs and flags.
func (p *Piece) Movable() bool {
	return p.Rank != Bomb && p.Rank != Flag
}

func (p *Piece) OnBoard() bool {
	return p.Position != nil
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s %s", p.Side, p.Rank)
}

type attackerClass int

const (
	attackerImmobile attackerClass = iota
	attackerMiner
	attackerSpy
	attackerRegular
)

type defenderClass int

const (
	defenderBomb defenderClass = iota
	defenderMarshal
	defenderRegular
)

func classifyAttacker(r Rank) attackerClass {
	switch r {
	case Bomb, Flag:
		return attackerImmobile
	case Miner:
		return attackerMiner
	case Spy:
		return attackerSpy
	default:
		return attackerRegular
	}
}

func classifyDefender(r Rank) defenderClass {
	switch r {
	case Bomb:
		return defenderBomb
	case Marshal:
		return defenderMarshal
	default:
		return defenderRegular
	}
}

// Attack resolves p attacking target. Only miners survive bombs and only
// spies beat the marshal by attacking it; everything else compares ranks.
// Attacking with a bomb or a flag is a caller bug and panics.
func (p *Piece) Attack(target *Piece) Engagement {
	attacker, defender := classifyAttacker(p.Rank), classifyDefender(target.Rank)

	switch {
	case attacker == attackerImmobile:
		panic(fmt.Sprintf("%s cannot attack", p.Rank))
	case attacker == attackerMiner && defender == defenderBomb:
		return Win
	case attacker == attackerSpy && defender == defenderBomb:
		return Lose
	case attacker == attackerSpy && defender == defenderMarshal:
		return Win
	case attacker == attackerRegular && defender == defenderBomb:
		return Lose
	}
	return compareRanks(p.Rank, target.Rank)
}

func compareRanks(attacker, defender Rank) Engagement {
	switch {
	case attacker > defender:
		return Win
	case attacker == defender:
		return Draw
	default:
		return Lose
	}
}
