package game

import (
	"encoding/binary"
	"hash/fnv"
	"strings"

	"golang.org/x/exp/slices"
)

const (
	Width  = 10
	Height = 10
)

// LakePositions are impassable and belong to no side.
var LakePositions = []Position{
	{2, 4}, {2, 5}, {3, 4}, {3, 5}, // left lake
	{6, 4}, {6, 5}, {7, 4}, {7, 5}, // right lake
}

// Start rows per side. Rows 2 and 5 are neutral.
var startRows = map[int]Side{
	0: SideA, 1: SideA, 3: SideA, 4: SideA,
	6: SideB, 7: SideB, 8: SideB, 9: SideB,
}

// up, down, left, right
var directions = [4][2]int{
	{-1, 0},
	{1, 0},
	{0, -1},
	{0, 1},
}

// Board owns the grid and both armies. It is not safe for concurrent use;
// callers embedding it in a server must serialize access per board.
type Board struct {
	grid [Width][Height]Square
	A    *Army
	B    *Army
}

func NewBoard() *Board {
	b := &Board{}
	for x := 0; x < Width; x++ {
		for y := 0; y < Height; y++ {
			s := Square{X: x, Y: y, Passable: true}
			if side, ok := startRows[y]; ok {
				s.Startable = true
				s.Side = side
			}
			b.grid[x][y] = s
		}
	}
	for _, pos := range LakePositions {
		s := &b.grid[pos.X][pos.Y]
		s.Passable = false
		s.Startable = false
		s.Side = Neither
	}
	b.A = NewArmy(SideA)
	b.B = NewArmy(SideB)
	return b
}

// IsLakeTile reports whether (x, y) is one of the fixed lake coordinates.
func IsLakeTile(x, y int) bool {
	return slices.Contains(LakePositions, Position{X: x, Y: y})
}

func InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// Army returns the army of side, or nil for Neither.
func (b *Board) Army(side Side) *Army {
	switch side {
	case SideA:
		return b.A
	case SideB:
		return b.B
	default:
		return nil
	}
}

func (b *Board) Square(x, y int) (*Square, bool) {
	if !InBounds(x, y) {
		return nil, false
	}
	return &b.grid[x][y], true
}

func (b *Board) IsPassable(x, y int) bool {
	return InBounds(x, y) && b.grid[x][y].Passable
}

func (b *Board) GetPiece(x, y int) (*Piece, bool) {
	if !InBounds(x, y) || b.grid[x][y].Piece == nil {
		return nil, false
	}
	return b.grid[x][y].Piece, true
}

// IsOccupied reports whether (x, y) holds a piece of side.
func (b *Board) IsOccupied(side Side, x, y int) bool {
	p, ok := b.GetPiece(x, y)
	return ok && p.Side == side
}

// IsOccupiedByOpposite reports whether (x, y) holds a piece of side's enemy.
// side must be A or B whenever the square is occupied.
func (b *Board) IsOccupiedByOpposite(side Side, x, y int) bool {
	p, ok := b.GetPiece(x, y)
	return ok && p.Side == side.Opposite()
}

// StartSquares lists the squares side may place on, row by row.
func (b *Board) StartSquares(side Side) []*Square {
	var squares []*Square
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if s := &b.grid[x][y]; s.Startable && s.Side == side {
				squares = append(squares, s)
			}
		}
	}
	return squares
}

// Place puts piece on (x, y), vacating its previous square if it had one.
// It fails without side effects when the target is out of bounds, is the
// piece's current square, belongs to another side (neutral rows and lakes
// included) or is already occupied. Dead pieces cannot return to the board.
func (b *Board) Place(piece *Piece, x, y int) bool {
	if !InBounds(x, y) || !piece.Alive {
		return false
	}
	if piece.Position != nil && piece.Position.X == x && piece.Position.Y == y {
		return false
	}
	target := &b.grid[x][y]
	if !target.Startable || target.Side != piece.Side {
		return false
	}
	if target.Occupied() {
		return false
	}
	b.relocate(piece, x, y)
	return true
}

// ValidMoves lists the legal destinations of piece. Scouts run any number of
// empty passable squares in a straight line and may end on the first enemy;
// every other piece steps one square. Friendly pieces and lakes always block.
func (b *Board) ValidMoves(piece *Piece) []Position {
	if piece.Position == nil || piece.Side == Neither {
		return nil
	}
	var moves []Position
	for _, dir := range directions {
		x, y := piece.Position.X+dir[0], piece.Position.Y+dir[1]

		if piece.Rank != Scout {
			if b.IsPassable(x, y) && !b.IsOccupied(piece.Side, x, y) {
				moves = append(moves, Position{X: x, Y: y})
			}
			continue
		}

		for b.IsPassable(x, y) && !b.IsOccupied(piece.Side, x, y) {
			moves = append(moves, Position{X: x, Y: y})
			if b.grid[x][y].Occupied() {
				break
			}
			x, y = x+dir[0], y+dir[1]
		}
	}
	return moves
}

func (b *Board) IsValidMove(piece *Piece, x, y int) bool {
	return slices.Contains(b.ValidMoves(piece), Position{X: x, Y: y})
}

// Move advances piece to (x, y), fighting any enemy found there. Illegal
// moves return Moved=false and leave the board untouched. A combat always
// counts as moved, whoever survives it.
func (b *Board) Move(piece *Piece, x, y int) MovementResult {
	if !piece.Movable() || !InBounds(x, y) || !b.IsValidMove(piece, x, y) {
		return MovementResult{Moved: false}
	}

	if b.IsOccupiedByOpposite(piece.Side, x, y) {
		enemy := b.grid[x][y].Piece
		engagement := piece.Attack(enemy)
		switch engagement {
		case Win:
			b.kill(enemy)
			b.relocate(piece, x, y)
		case Lose:
			b.kill(piece)
		case Draw:
			b.kill(piece)
			b.kill(enemy)
		}
		return MovementResult{Moved: true, Engagement: &engagement}
	}

	b.relocate(piece, x, y)
	return MovementResult{Moved: true}
}

// relocate moves piece to (x, y), keeping square and position in step.
func (b *Board) relocate(piece *Piece, x, y int) {
	if piece.Position != nil {
		b.grid[piece.Position.X][piece.Position.Y].Piece = nil
	}
	b.grid[x][y].Piece = piece
	piece.Position = &Position{X: x, Y: y}
}

// kill is terminal: the piece leaves the grid but stays in its army.
func (b *Board) kill(piece *Piece) {
	piece.Alive = false
	if piece.Position != nil {
		b.grid[piece.Position.X][piece.Position.Y].Piece = nil
	}
	piece.Position = nil
}

// Hash fingerprints which piece sits where.
func (b *Board) Hash() StateHash {
	hasher := fnv.New64a()
	for x := 0; x < Width; x++ {
		for y := 0; y < Height; y++ {
			p := b.grid[x][y].Piece
			if p == nil {
				binary.Write(hasher, binary.LittleEndian, int64(-2))
				continue
			}
			binary.Write(hasher, binary.LittleEndian, int64(p.Side))
			binary.Write(hasher, binary.LittleEndian, int64(p.Rank))
		}
	}
	return StateHash(hasher.Sum64())
}

var rankSymbols = map[Rank]string{
	Flag: "F", Bomb: "B", Spy: "S", Marshal: "M",
}

func symbol(r Rank) string {
	if s, ok := rankSymbols[r]; ok {
		return s
	}
	return string(rune('0' + int(r)))
}

// String draws the grid row by row, y=0 on top: "~" lake, "." empty,
// otherwise side then rank symbol, e.g. "A3" or "BM".
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			s := &b.grid[x][y]
			cell := "."
			switch {
			case !s.Passable:
				cell = "~"
			case s.Piece != nil:
				cell = s.Piece.Side.String() + symbol(s.Piece.Rank)
			}
			sb.WriteString(cell)
			sb.WriteString(strings.Repeat(" ", 3-len(cell)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
