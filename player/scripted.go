package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"homeworlds/game"

	"gopkg.in/yaml.v3"
)

var ErrScriptExhausted = errors.New("script has no turns left")

// Script is the YAML layout read by Scripted. Each turn is a flat action
// list in the form accepted by game.ParseTurn:
//
//	turns:
//	  - [setup, [[g3, y1], b2]]
//	  - [construct, [1, blue], move, [1, "p1:b1", {new: r2}]]
//	fallback:
//	  - []
type Script struct {
	Turns    [][]any `yaml:"turns"`
	Fallback [][]any `yaml:"fallback"`
}

// Scripted plays the turns of a Script in order. A rejected turn is replayed
// on retry unless fallback turns remain, in which case the next one is tried
// instead.
type Scripted struct {
	name     string
	script   Script
	next     int // Next unplayed turn
	fallback int // Next unused fallback turn
	current  []any
}

func NewScripted(name string, script Script) *Scripted {
	return &Scripted{name: name, script: script}
}

// ReadScript decodes a script from r.
func ReadScript(name string, r io.Reader) (*Scripted, error) {
	var script Script
	if err := yaml.NewDecoder(r).Decode(&script); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode script %s: %w", name, err)
	}
	return NewScripted(name, script), nil
}

// LoadScript reads the script stored at path.
func LoadScript(path string) (*Scripted, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()
	return ReadScript(path, f)
}

func (s *Scripted) String() string {
	return s.name
}

// Remaining returns the number of turns not yet played.
func (s *Scripted) Remaining() int {
	return len(s.script.Turns) - s.next
}

func (s *Scripted) TakeTurn(ctx context.Context, _ *game.GameState, tc TurnContext) ([]game.Action, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch {
	case !tc.Retry() || s.current == nil:
		if s.next >= len(s.script.Turns) {
			return nil, fmt.Errorf("%s: %w", s.name, ErrScriptExhausted)
		}
		s.current = s.script.Turns[s.next]
		s.next++
	case s.fallback < len(s.script.Fallback):
		s.current = s.script.Fallback[s.fallback]
		s.fallback++
	}

	return game.ParseTurn(s.current)
}
