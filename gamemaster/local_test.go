package gamemaster

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"stratego/game"
	"stratego/setup"
)

func idOf(t *testing.T, s *Session, side game.Side, rank game.Rank) uuid.UUID {
	t.Helper()
	for _, id := range s.Pieces(side) {
		p, err := s.Piece(id)
		require.NoError(t, err)
		if p.Rank == rank && !p.OnBoard() && p.Alive {
			return id
		}
	}
	t.Fatalf("no unplaced %s %s", side, rank)
	return uuid.Nil
}

func TestSessionInit(t *testing.T) {
	s := NewSession()

	require.Len(t, s.Pieces(game.SideA), game.ArmySize)
	require.Len(t, s.Pieces(game.SideB), game.ArmySize)
	require.Nil(t, s.Pieces(game.Neither))
	require.Equal(t, 8, s.Census(game.SideB)[game.Scout])
	require.Equal(t, game.NewBoard().Hash(), s.Hash(), "New sessions start empty")

	_, ok := s.Updates()()
	require.False(t, ok, "No updates before any move")
}

func TestSessionPlace(t *testing.T) {
	s := NewSession()
	marshal := idOf(t, s, game.SideA, game.Marshal)

	require.NoError(t, s.Place(marshal, 0, 0))
	require.ErrorIs(t, s.Place(marshal, 0, 0), ErrIllegalPlace)
	require.ErrorIs(t, s.Place(marshal, 0, 9), ErrIllegalPlace)
	require.ErrorIs(t, s.Place(uuid.New(), 0, 1), ErrNoPiece)

	p, err := s.Piece(marshal)
	require.NoError(t, err)
	require.Equal(t, &game.Position{X: 0, Y: 0}, p.Position)

	moves, err := s.ValidMoves(marshal)
	require.NoError(t, err)
	require.ElementsMatch(t, []game.Position{{X: 1, Y: 0}, {X: 0, Y: 1}}, moves)
}

func TestSessionPlay(t *testing.T) {
	t.Run("legal move publishes an update", func(t *testing.T) {
		s := NewSession()
		getUpdate := s.Updates()
		require.NoError(t, s.Place(idOf(t, s, game.SideA, game.Captain), 0, 4))

		move := Move{Side: game.SideA, From: game.Position{X: 0, Y: 4}, To: game.Position{X: 0, Y: 5}}
		res, err := s.Play(move)
		require.NoError(t, err)
		require.True(t, res.Moved)

		u, ok := getUpdate()
		require.True(t, ok)
		require.Equal(t, move, u.Move)
		require.Equal(t, s.Hash(), u.Hash)
		_, ok = getUpdate()
		require.False(t, ok)
	})

	t.Run("combat result", func(t *testing.T) {
		s := NewSession()
		require.NoError(t, s.Place(idOf(t, s, game.SideA, game.Captain), 0, 4))
		sergeant := idOf(t, s, game.SideB, game.Sergeant)
		require.NoError(t, s.Place(sergeant, 0, 6))

		_, err := s.Play(Move{From: game.Position{X: 0, Y: 4}, To: game.Position{X: 0, Y: 5}})
		require.NoError(t, err)
		res, err := s.Play(Move{From: game.Position{X: 0, Y: 5}, To: game.Position{X: 0, Y: 6}})
		require.NoError(t, err)
		require.True(t, res.Fought())
		require.Equal(t, game.Win, *res.Engagement)

		p, err := s.Piece(sergeant)
		require.NoError(t, err)
		require.False(t, p.Alive)
		require.Equal(t, 3, s.Census(game.SideB)[game.Sergeant])
	})

	t.Run("illegal moves", func(t *testing.T) {
		s := NewSession()
		require.NoError(t, s.Place(idOf(t, s, game.SideA, game.Bomb), 1, 0))
		require.NoError(t, s.Place(idOf(t, s, game.SideA, game.Marshal), 0, 0))

		_, err := s.Play(Move{From: game.Position{X: 1, Y: 0}, To: game.Position{X: 1, Y: 1}})
		require.ErrorIs(t, err, ErrIllegalMove, "Bombs do not move")

		res, err := s.Play(Move{From: game.Position{X: 0, Y: 0}, To: game.Position{X: -1, Y: 0}})
		require.ErrorIs(t, err, ErrIllegalMove)
		require.False(t, res.Moved)

		_, err = s.Play(Move{From: game.Position{X: 5, Y: 5}, To: game.Position{X: 5, Y: 6}})
		require.ErrorIs(t, err, ErrNoPiece)

		_, err = s.Play(Move{From: game.Position{X: 42, Y: 0}, To: game.Position{X: 0, Y: 0}})
		require.ErrorIs(t, err, ErrIllegalMove)

		_, err = s.Play(Move{Side: game.SideB, From: game.Position{X: 0, Y: 0}, To: game.Position{X: 0, Y: 1}})
		require.ErrorIs(t, err, ErrNotYourPiece)

		_, ok := s.Updates()()
		require.False(t, ok, "Rejected moves publish nothing")
	})
}

func TestSessionUpdateBuffer(t *testing.T) {
	s := NewSession(WithUpdateBuffer(2))
	require.NoError(t, s.Place(idOf(t, s, game.SideA, game.Marshal), 0, 0))

	path := []game.Position{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}}
	for i := 1; i < len(path); i++ {
		_, err := s.Play(Move{From: path[i-1], To: path[i]})
		require.NoError(t, err)
	}

	getUpdate := s.Updates()
	u, ok := getUpdate()
	require.True(t, ok)
	require.Equal(t, path[2], u.Move.To, "Oldest update was dropped")
	u, ok = getUpdate()
	require.True(t, ok)
	require.Equal(t, path[3], u.Move.To)
}

func TestSessionClose(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Place(idOf(t, s, game.SideA, game.Marshal), 0, 0))
	_, err := s.Play(Move{From: game.Position{X: 0, Y: 0}, To: game.Position{X: 0, Y: 1}})
	require.NoError(t, err)

	s.Close()
	s.Close()

	getUpdate := s.Updates()
	_, ok := getUpdate()
	require.True(t, ok, "Pending update survives close")
	_, ok = getUpdate()
	require.False(t, ok)

	_, err = s.Play(Move{From: game.Position{X: 0, Y: 1}, To: game.Position{X: 0, Y: 0}})
	require.ErrorIs(t, err, ErrSessionClosed)
	require.EqualError(t, err, "session is closed - no moves allowed")

	scout := idOf(t, s, game.SideA, game.Scout)
	require.ErrorIs(t, s.Place(scout, 1, 0), ErrSessionClosed)
	_, err = s.ValidMoves(scout)
	require.ErrorIs(t, err, ErrSessionClosed)
	require.ErrorIs(t, s.ApplyLayout(&setup.Layout{
		Side:   "B",
		Pieces: []setup.Placement{{Rank: "flag", X: 0, Y: 9}},
	}), ErrSessionClosed)

	p, err := s.Piece(scout)
	require.NoError(t, err)
	require.Nil(t, p.Position, "Nothing was placed after close")
}

func TestSessionApplyLayout(t *testing.T) {
	s := NewSession()

	require.NoError(t, s.ApplyLayout(&setup.Layout{
		Side:   "B",
		Pieces: []setup.Placement{{Rank: "flag", X: 0, Y: 9}, {Rank: "bomb", X: 1, Y: 9}},
	}))
	require.ErrorIs(t, s.ApplyLayout(&setup.Layout{
		Side:   "B",
		Pieces: []setup.Placement{{Rank: "spy", X: 0, Y: 9}},
	}), setup.ErrRejected)
	require.Contains(t, s.Render(), "BF")
}

func TestSessionConcurrentPlay(t *testing.T) {
	s := NewSession(WithUpdateBuffer(1))
	columns := []int{0, 9}
	for _, x := range columns {
		require.NoError(t, s.Place(idOf(t, s, game.SideA, game.Scout), x, 0))
	}

	var wg sync.WaitGroup
	errs := make(chan error, 100)
	for _, x := range columns {
		wg.Add(1)
		go func(x int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				from, to := game.Position{X: x, Y: 0}, game.Position{X: x, Y: 1}
				if i%2 == 1 {
					from, to = to, from
				}
				if _, err := s.Play(Move{From: from, To: to}); err != nil {
					errs <- err
				}
			}
		}(x)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	u, ok := s.Updates()()
	require.True(t, ok)
	require.True(t, u.Result.Moved)
	for _, id := range s.Pieces(game.SideA) {
		p, err := s.Piece(id)
		require.NoError(t, err)
		if p.OnBoard() {
			require.Equal(t, 0, p.Position.Y, "Every scout made an even number of moves")
		}
	}
}
