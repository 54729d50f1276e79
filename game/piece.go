package game

import (
	"fmt"
	"strings"
)

// Color of a piece. Each color grants one power.
type Color int

const (
	Red Color = iota
	Green
	Blue
	Yellow
)

// Size of a piece.
type Size int

const (
	_ Size = iota
	Small
	Medium
	Large
)

var colorNames = map[Color]string{
	Red:    "red",
	Green:  "green",
	Blue:   "blue",
	Yellow: "yellow",
}

// Colors lists every color in catalog order.
func Colors() []Color {
	return []Color{Red, Green, Blue, Yellow}
}

// Sizes lists every size from small to large.
func Sizes() []Size {
	return []Size{Small, Medium, Large}
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

func (c Color) valid() bool {
	_, ok := colorNames[c]
	return ok
}

// Power returns the kind of action the color grants.
func (c Color) Power() ActionKind {
	switch c {
	case Green:
		return ConstructAction
	case Yellow:
		return MoveAction
	case Blue:
		return TradeAction
	case Red:
		return AttackAction
	}
	return unknownAction
}

// ParseColor accepts a full color name or its initial, case-insensitive.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range colorNames {
		if s == name || (len(s) == 1 && s[0] == name[0]) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

func (s Size) valid() bool {
	return s >= Small && s <= Large
}

func (s Size) String() string {
	switch s {
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Large:
		return "large"
	}
	return fmt.Sprintf("Size(%d)", int(s))
}

// Piece is one pyramid of the catalog.
type Piece struct {
	Color Color
	Size  Size
}

// PieceKey is the canonical identity of a piece, e.g. "g3".
type PieceKey string

// Key returns the reserve index of the piece.
func (p Piece) Key() PieceKey {
	return PieceKey(fmt.Sprintf("%c%d", p.Color.String()[0], int(p.Size)))
}

func (p Piece) String() string {
	return string(p.Key())
}

func (p Piece) valid() bool {
	return p.Color.valid() && p.Size.valid()
}

// ParsePiece parses the short form of a piece ("b2").
func ParsePiece(s string) (Piece, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return Piece{}, fmt.Errorf("invalid piece %q", s)
	}
	c, err := ParseColor(s[:1])
	if err != nil {
		return Piece{}, fmt.Errorf("invalid piece %q: %w", s, err)
	}
	size := Size(s[1] - '0')
	if !size.valid() {
		return Piece{}, fmt.Errorf("invalid piece %q: size must be 1, 2 or 3", s)
	}
	return Piece{Color: c, Size: size}, nil
}

// AllPieces returns the 12 distinct pieces of the catalog.
func AllPieces() []Piece {
	pieces := make([]Piece, 0, len(colorNames)*3)
	for _, c := range Colors() {
		for _, s := range Sizes() {
			pieces = append(pieces, Piece{Color: c, Size: s})
		}
	}
	return pieces
}
