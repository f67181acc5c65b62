package setup

import (
	"golang.org/x/exp/rand"

	"stratego/game"
)

// Random deals side's army, shuffled, onto the side's start squares. Side A
// has fewer start squares than pieces, so the pieces left over stay in
// reserve and are simply not part of the layout.
func Random(board *game.Board, side game.Side, rng *rand.Rand) *Layout {
	squares := board.StartSquares(side)
	pieces := board.Army(side).Shuffled(rng)

	l := &Layout{Side: side.String()}
	for i, sq := range squares {
		if i == len(pieces) {
			break
		}
		l.Pieces = append(l.Pieces, Placement{
			Rank: pieces[i].Rank.String(),
			X:    sq.X,
			Y:    sq.Y,
		})
	}
	return l
}
