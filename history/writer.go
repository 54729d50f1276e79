package history

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"homeworlds/game"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Header opens a history file.
type Header struct {
	Game        string    `yaml:"game"`
	Players     []int     `yaml:"players"`
	FirstPlayer int       `yaml:"first_player"`
	StartTime   time.Time `yaml:"start_time"`
	EndTime     time.Time `yaml:"end_time"`
	Turns       int       `yaml:"turns"`
}

// Entry is the written form of a game.TurnRecord.
type Entry struct {
	Player     int      `yaml:"player,omitempty"`
	Actions    []string `yaml:"actions,omitempty"`
	Forfeit    bool     `yaml:"forfeit,omitempty"`
	End        bool     `yaml:"end,omitempty"`
	Eliminated []int    `yaml:"eliminated,omitempty"`
}

func NewEntry(r game.TurnRecord) Entry {
	e := Entry{
		Player:  int(r.Player),
		Forfeit: r.Forfeit,
		End:     r.End,
	}
	for _, a := range r.Actions {
		e.Actions = append(e.Actions, fmt.Sprint(a))
	}
	for _, p := range r.Eliminated {
		e.Eliminated = append(e.Eliminated, int(p))
	}
	return e
}

// Writer dumps the history of one game to a file, one YAML document per
// record after the header.
type Writer struct {
	path string
	id   uuid.UUID
}

func NewWriter(path string) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	return &Writer{
		path: path,
		id:   uuid.New(),
	}, nil
}

// GameID identifies the game in the header of the file.
func (w *Writer) GameID() uuid.UUID {
	return w.id
}

func (w *Writer) Path() string {
	return w.path
}

func (w *Writer) Write(header Header, records []game.TurnRecord) error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create history file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)

	header.Game = w.id.String()
	if err := enc.Encode(header); err != nil {
		return fmt.Errorf("failed to write history header: %w", err)
	}

	for _, r := range records {
		if err := enc.Encode(NewEntry(r)); err != nil {
			return fmt.Errorf("failed to write history entry: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush history: %w", err)
	}
	return nil
}

// Read decodes a file produced by Writer.
func Read(r io.Reader) (Header, []Entry, error) {
	dec := yaml.NewDecoder(r)

	var header Header
	if err := dec.Decode(&header); err != nil {
		return Header{}, nil, fmt.Errorf("failed to read history header: %w", err)
	}
	if _, err := uuid.Parse(header.Game); err != nil {
		return Header{}, nil, fmt.Errorf("invalid game id %q: %w", header.Game, err)
	}

	var entries []Entry
	for {
		var e Entry
		err := dec.Decode(&e)
		if errors.Is(err, io.EOF) {
			return header, entries, nil
		}
		if err != nil {
			return Header{}, nil, fmt.Errorf("failed to read history entry: %w", err)
		}
		entries = append(entries, e)
	}
}
