package game

import (
	"fmt"

	"homeworlds/meta"
)

// Reserve is the shared supply of pieces not on the board, indexed by key.
type Reserve map[PieceKey]int

// NewReserve returns a full reserve holding the entire supply of every piece.
func NewReserve() Reserve {
	r := make(Reserve, 12)
	for _, p := range AllPieces() {
		r[p.Key()] = meta.SUPPLY_PER_PIECE
	}
	return r
}

func (r Reserve) Count(p Piece) int {
	return r[p.Key()]
}

func (r Reserve) Has(p Piece) bool {
	return r[p.Key()] > 0
}

// HasColor reports whether any size of the color is left.
func (r Reserve) HasColor(c Color) bool {
	_, ok := r.SmallestOfColor(c)
	return ok
}

// SmallestOfColor returns the smallest piece of the color still available.
func (r Reserve) SmallestOfColor(c Color) (Piece, bool) {
	for _, s := range Sizes() {
		p := Piece{Color: c, Size: s}
		if r.Has(p) {
			return p, true
		}
	}
	return Piece{}, false
}

// Take removes one piece. Taking a piece that isn't there means the
// validator let something through, so it panics.
func (r Reserve) Take(p Piece) {
	if r[p.Key()] <= 0 {
		panic(integrityf("reserve underflow for %s", p))
	}
	r[p.Key()]--
}

// Put returns one piece.
func (r Reserve) Put(p Piece) {
	if r[p.Key()] >= meta.SUPPLY_PER_PIECE {
		panic(integrityf("reserve overflow for %s", p))
	}
	r[p.Key()]++
}

func (r Reserve) Copy() Reserve {
	c := make(Reserve, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

func (r Reserve) Total() int {
	total := 0
	for _, n := range r {
		total += n
	}
	return total
}

func (r Reserve) String() string {
	s := ""
	for i, p := range AllPieces() {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s:%d", p, r.Count(p))
	}
	return s
}
