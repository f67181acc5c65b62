package game

import (
	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

// ArmySize is the number of pieces each side fields.
const ArmySize = 40

// RankCount is one row of the army composition table.
type RankCount struct {
	Rank  Rank
	Count int
}

// Composition lists every army's pieces in build order, strongest first.
var Composition = []RankCount{
	{Marshal, 1},
	{General, 1},
	{Colonel, 2},
	{Major, 3},
	{Captain, 4},
	{Lieutenant, 4},
	{Sergeant, 4},
	{Miner, 5},
	{Scout, 8},
	{Spy, 1},
	{Bomb, 6},
	{Flag, 1},
}

// Army is the fixed set of pieces of one side. Members are never removed;
// dead pieces stay in Pieces for census purposes.
type Army struct {
	Side   Side     `json:"side"`
	Pieces []*Piece `json:"pieces"`
}

func NewArmy(side Side) *Army {
	a := &Army{
		Side:   side,
		Pieces: make([]*Piece, 0, ArmySize),
	}
	for _, rc := range Composition {
		for i := 0; i < rc.Count; i++ {
			p := NewPiece(rc.Rank)
			p.Side = side
			a.Pieces = append(a.Pieces, p)
		}
	}
	return a
}

// FindAnyByRank returns some piece of the given rank. Which one is not
// guaranteed to stay the same across calls; track Piece.ID for identity.
func (a *Army) FindAnyByRank(rank Rank) (*Piece, bool) {
	for _, p := range a.Pieces {
		if p.Rank == rank {
			return p, true
		}
	}
	return nil, false
}

// FindUnplacedByRank returns a living piece of the rank that is off the board.
func (a *Army) FindUnplacedByRank(rank Rank) (*Piece, bool) {
	for _, p := range a.Pieces {
		if p.Rank == rank && p.Alive && !p.OnBoard() {
			return p, true
		}
	}
	return nil, false
}

func (a *Army) FindByID(id uuid.UUID) (*Piece, bool) {
	for _, p := range a.Pieces {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Alive counts the living pieces per rank.
func (a *Army) Alive() map[Rank]int {
	census := make(map[Rank]int)
	for _, p := range a.Pieces {
		if p.Alive {
			census[p.Rank]++
		}
	}
	return census
}

// Shuffled returns the members in a random order (Fisher-Yates) without
// touching the army's own build order.
func (a *Army) Shuffled(rng *rand.Rand) []*Piece {
	pieces := make([]*Piece, len(a.Pieces))
	copy(pieces, a.Pieces)
	for i := len(pieces) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		pieces[i], pieces[j] = pieces[j], pieces[i]
	}
	return pieces
}
