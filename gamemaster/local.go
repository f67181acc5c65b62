package gamemaster

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stratego/game"
	"stratego/setup"
)

// Session owns one board. All methods are safe for concurrent use.
type Session struct {
	mu         sync.Mutex
	board      *game.Board
	updateCh   chan Update
	closed     bool
	log        zerolog.Logger
	bufferSize int
}

func NewSession(options ...Option) *Session {
	s := &Session{}
	defaultOptions(s)
	for _, option := range options {
		option(s)
	}
	s.board = game.NewBoard()
	s.updateCh = make(chan Update, s.bufferSize)
	return s
}

// Updates returns the session's update feed.
func (s *Session) Updates() UpdateGetter {
	return func() (Update, bool) {
		select {
		case u, ok := <-s.updateCh:
			return u, ok
		default:
			return Update{}, false
		}
	}
}

// ApplyLayout places a whole side's opening arrangement.
func (s *Session) ApplyLayout(l *setup.Layout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if err := setup.Apply(s.board, l); err != nil {
		s.log.Warn().Err(err).Str("side", l.Side).Msg("layout rejected")
		return err
	}
	s.log.Info().Str("side", l.Side).Int("pieces", len(l.Pieces)).Msg("layout applied")
	return nil
}

// Place puts the piece with the given ID on (x, y).
func (s *Session) Place(id uuid.UUID, x, y int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	piece, err := s.findPiece(id)
	if err != nil {
		return err
	}
	if !s.board.Place(piece, x, y) {
		return fmt.Errorf("%w: %s on (%d,%d)", ErrIllegalPlace, piece, x, y)
	}
	s.log.Debug().Stringer("piece", piece).Int("x", x).Int("y", y).Msg("placed")
	return nil
}

// ValidMoves lists where the piece with the given ID may go.
func (s *Session) ValidMoves(id uuid.UUID) ([]game.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}
	piece, err := s.findPiece(id)
	if err != nil {
		return nil, err
	}
	return s.board.ValidMoves(piece), nil
}

// Play executes m. Moves the board rejects return the unmoved result along
// with ErrIllegalMove; nothing is published for them.
func (s *Session) Play(m Move) (game.MovementResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return game.MovementResult{}, ErrSessionClosed
	}
	if !game.InBounds(m.From.X, m.From.Y) {
		return game.MovementResult{}, fmt.Errorf("%w: %w %v", ErrIllegalMove, errInvalidPosition, m.From)
	}
	piece, ok := s.board.GetPiece(m.From.X, m.From.Y)
	if !ok {
		return game.MovementResult{}, fmt.Errorf("%w on (%d,%d)", ErrNoPiece, m.From.X, m.From.Y)
	}
	if m.Side != game.Neither && m.Side != piece.Side {
		return game.MovementResult{}, fmt.Errorf("%w: %s", ErrNotYourPiece, piece)
	}

	attacker := piece.String()
	res := s.board.Move(piece, m.To.X, m.To.Y)
	if !res.Moved {
		s.log.Debug().Str("piece", attacker).Stringer("move", m).Msg("move rejected")
		return res, fmt.Errorf("%w: %s %s", ErrIllegalMove, attacker, m)
	}

	event := s.log.Info().Str("piece", attacker).Stringer("move", m)
	if res.Fought() {
		event = event.Stringer("engagement", *res.Engagement)
	}
	event.Msg("moved")

	s.publish(Update{Move: m, Result: res, Hash: s.board.Hash()})
	return res, nil
}

// publish drops the oldest pending update when the feed is full.
func (s *Session) publish(u Update) {
	for {
		select {
		case s.updateCh <- u:
			return
		default:
		}
		select {
		case <-s.updateCh:
			s.log.Warn().Msg("update feed full, dropped oldest update")
		default:
		}
	}
}

// Close ends the session. Pending updates stay readable; placing, moving and
// move queries fail with ErrSessionClosed afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.updateCh)
}

// Piece returns a copy of the piece with the given ID.
func (s *Session) Piece(id uuid.UUID) (game.Piece, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	piece, err := s.findPiece(id)
	if err != nil {
		return game.Piece{}, err
	}
	cp := *piece
	if piece.Position != nil {
		pos := *piece.Position
		cp.Position = &pos
	}
	return cp, nil
}

// Pieces lists the IDs of side's army in build order.
func (s *Session) Pieces(side game.Side) []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	army := s.board.Army(side)
	if army == nil {
		return nil
	}
	ids := make([]uuid.UUID, len(army.Pieces))
	for i, p := range army.Pieces {
		ids[i] = p.ID
	}
	return ids
}

// Census counts side's living pieces per rank.
func (s *Session) Census(side game.Side) map[game.Rank]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if army := s.board.Army(side); army != nil {
		return army.Alive()
	}
	return nil
}

func (s *Session) Hash() game.StateHash {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Hash()
}

func (s *Session) Render() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.String()
}

func (s *Session) findPiece(id uuid.UUID) (*game.Piece, error) {
	for _, army := range []*game.Army{s.board.A, s.board.B} {
		if p, ok := army.FindByID(id); ok {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoPiece, id)
}
