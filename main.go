package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"stratego/game"
	"stratego/gamemaster"
	"stratego/meta"
	"stratego/setup"
)

type config struct {
	layoutA string
	layoutB string
	script  string
	seed    uint64
	debug   bool
	render  bool
}

func main() {
	cfg := config{}
	flag.StringVar(&cfg.layoutA, "layout-a", "", "YAML layout for side A (random when empty)")
	flag.StringVar(&cfg.layoutB, "layout-b", "", "YAML layout for side B (random when empty)")
	flag.StringVar(&cfg.script, "script", "", "YAML move script to play")
	flag.Uint64Var(&cfg.seed, "seed", meta.DEFAULT_SEED, "Seed for random layouts")
	flag.BoolVar(&cfg.debug, "debug", false, "Log rejected moves and placements")
	flag.BoolVar(&cfg.render, "render", true, "Print the board after the script")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("game aborted")
	}
}

func run(cfg config) error {
	session := gamemaster.NewSession(gamemaster.WithLogger(log.Logger))
	defer session.Close()

	rng := rand.New(rand.NewSource(cfg.seed))
	for _, side := range []game.Side{game.SideA, game.SideB} {
		path := cfg.layoutA
		if side == game.SideB {
			path = cfg.layoutB
		}
		l, err := loadLayout(path, side, rng)
		if err != nil {
			return err
		}
		if err := session.ApplyLayout(l); err != nil {
			return fmt.Errorf("failed to set up side %s: %w", side, err)
		}
	}

	if cfg.script != "" {
		s, err := loadScript(cfg.script)
		if err != nil {
			return err
		}
		played, rejected := 0, 0
		for i, m := range s.Moves {
			_, err := session.Play(m)
			switch {
			case errors.Is(err, gamemaster.ErrIllegalMove), errors.Is(err, gamemaster.ErrNotYourPiece):
				rejected++
			case err != nil:
				return fmt.Errorf("move %d: %w", i+1, err)
			default:
				played++
			}
		}
		log.Info().Int("played", played).Int("rejected", rejected).Msg("script finished")
	}

	for _, side := range []game.Side{game.SideA, game.SideB} {
		log.Info().Stringer("side", side).Interface("alive", session.Census(side)).Msg("census")
	}
	if cfg.render {
		fmt.Print(session.Render())
	}
	return nil
}

// loadLayout reads path, or deals a random layout when path is empty. A
// throwaway board is enough to know the start squares.
func loadLayout(path string, side game.Side, rng *rand.Rand) (*setup.Layout, error) {
	if path == "" {
		return setup.Random(game.NewBoard(), side, rng), nil
	}
	l, err := setup.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if got, _ := game.ParseSide(l.Side); got != side {
		return nil, fmt.Errorf("%s holds a layout for side %s, want %s", path, l.Side, side)
	}
	return l, nil
}
