// Package gamemaster embeds one game board in a session that serializes
// every call, so a server can drive many games from many goroutines.
package gamemaster

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"stratego/game"
	"stratego/meta"
)

var (
	ErrIllegalMove     = errors.New("illegal move")
	ErrIllegalPlace    = errors.New("illegal placement")
	ErrNoPiece         = errors.New("no such piece")
	ErrSessionClosed   = errors.New("session is closed - no moves allowed")
	ErrNotYourPiece    = errors.New("piece belongs to the other side")
	errInvalidPosition = errors.New("position out of bounds")
)

// Move asks the piece on From to go to To. Side, when set, must own that
// piece; it lets a transport layer attach the caller's identity.
type Move struct {
	Side game.Side     `json:"side"`
	From game.Position `json:"from"`
	To   game.Position `json:"to"`
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)->(%d,%d)", m.From.X, m.From.Y, m.To.X, m.To.Y)
}

// Update is published after every executed move.
type Update struct {
	Move   Move                `json:"move"`
	Result game.MovementResult `json:"result"`
	Hash   game.StateHash      `json:"hash"`
}

// UpdateGetter returns the oldest unread update without blocking. ok is
// false when nothing is pending or the session is closed and drained.
type UpdateGetter func() (u Update, ok bool)

type Option func(s *Session)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.log = logger
	}
}

func WithUpdateBuffer(size int) Option {
	return func(s *Session) {
		if size > 0 {
			s.bufferSize = size
		}
	}
}

func defaultOptions(s *Session) {
	s.log = zerolog.Nop()
	s.bufferSize = meta.UpdateBuffer
}
