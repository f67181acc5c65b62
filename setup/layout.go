// Package setup arranges armies on their start zones, either from a YAML
// layout file or at random.
package setup

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"stratego/game"
)

var (
	ErrInvalidLayout = errors.New("invalid layout")
	ErrRankExhausted = errors.New("no unplaced piece of rank left")
	ErrRejected      = errors.New("placement rejected")
)

// Placement puts one piece of Rank on (X, Y). Rank is a name or a number.
type Placement struct {
	Rank string `yaml:"rank"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

// Layout is the opening arrangement of one side.
//
//	side: A
//	pieces:
//	  - {rank: marshal, x: 0, y: 3}
//	  - {rank: flag, x: 0, y: 0}
type Layout struct {
	Side   string      `yaml:"side"`
	Pieces []Placement `yaml:"pieces"`
}

func Load(r io.Reader) (*Layout, error) {
	var l Layout
	if err := yaml.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("failed to decode layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

func LoadFile(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Validate checks the side, the ranks and that no rank is used more often
// than the army holds it. Squares are checked by the board on Apply.
func (l *Layout) Validate() error {
	side, err := game.ParseSide(l.Side)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if side == game.Neither {
		return fmt.Errorf("%w: side must be A or B", ErrInvalidLayout)
	}

	available := make(map[game.Rank]int)
	for _, rc := range game.Composition {
		available[rc.Rank] = rc.Count
	}
	for i, p := range l.Pieces {
		rank, err := game.ParseRank(p.Rank)
		if err != nil {
			return fmt.Errorf("%w: piece %d: %v", ErrInvalidLayout, i, err)
		}
		available[rank]--
		if available[rank] < 0 {
			return fmt.Errorf("%w: too many %s pieces", ErrInvalidLayout, rank)
		}
	}
	return nil
}

// Apply places the layout's pieces on board, drawing unplaced pieces of each
// rank from the layout side's army. It stops at the first failure; pieces
// placed before it stay where they are.
func Apply(board *game.Board, l *Layout) error {
	if err := l.Validate(); err != nil {
		return err
	}
	side, _ := game.ParseSide(l.Side)
	army := board.Army(side)

	for _, p := range l.Pieces {
		rank, _ := game.ParseRank(p.Rank)
		piece, ok := army.FindUnplacedByRank(rank)
		if !ok {
			return fmt.Errorf("%w: %s %s", ErrRankExhausted, side, rank)
		}
		if !board.Place(piece, p.X, p.Y) {
			return fmt.Errorf("%w: %s on (%d,%d)", ErrRejected, piece, p.X, p.Y)
		}
	}
	return nil
}
