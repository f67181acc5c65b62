package game

// Square is one grid cell. Piece is a non-owning reference that always
// mirrors the occupant's Position; only Board mutates either side.
type Square struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Passable  bool   `json:"passable"`
	Startable bool   `json:"startable"`
	Side      Side   `json:"side"`
	Piece     *Piece `json:"piece,omitempty"`
}

func (s *Square) Occupied() bool {
	return s.Piece != nil
}

func (s *Square) Position() Position {
	return Position{X: s.X, Y: s.Y}
}
