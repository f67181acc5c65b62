package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"stratego/game"
	"stratego/gamemaster"
	"stratego/meta"
)

type scriptMove struct {
	Side string        `yaml:"side"`
	From game.Position `yaml:"from"`
	To   game.Position `yaml:"to"`
}

// script is a list of moves played in order. Turn order is not enforced.
//
//	moves:
//	  - {side: A, from: {x: 0, y: 4}, to: {x: 0, y: 5}}
type script struct {
	Moves []gamemaster.Move
}

func loadScript(path string) (*script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return parseScript(data)
}

func parseScript(data []byte) (*script, error) {
	var raw struct {
		Moves []scriptMove `yaml:"moves"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode script: %w", err)
	}
	if len(raw.Moves) > meta.MAX_SCRIPT_MOVES {
		return nil, fmt.Errorf("script has %d moves, at most %d allowed", len(raw.Moves), meta.MAX_SCRIPT_MOVES)
	}

	s := &script{Moves: make([]gamemaster.Move, 0, len(raw.Moves))}
	for i, m := range raw.Moves {
		side, err := game.ParseSide(m.Side)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		s.Moves = append(s.Moves, gamemaster.Move{Side: side, From: m.From, To: m.To})
	}
	return s, nil
}
