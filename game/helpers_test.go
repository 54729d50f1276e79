package game

import "testing"

func pc(s string) Piece {
	p, err := ParsePiece(s)
	if err != nil {
		panic(err)
	}
	return p
}

func ship(owner PlayerID, piece string) Ship {
	return Ship{Owner: owner, Piece: pc(piece)}
}

func newTestState(t *testing.T) *GameState {
	t.Helper()
	gs := NewGameState(1, 2)
	gs.CurrentPlayer = 1
	return gs
}

// addSystem places a system on the board, taking its pieces from the reserve
// so the supply stays conserved.
func addSystem(t *testing.T, gs *GameState, owner PlayerID, star []string, ships ...Ship) SystemID {
	t.Helper()
	pieces := make([]Piece, len(star))
	for i, s := range star {
		pieces[i] = pc(s)
		gs.Reserve.Take(pieces[i])
	}
	for _, sh := range ships {
		gs.Reserve.Take(sh.Piece)
	}
	return gs.addSystem(Star{Owner: owner, Pieces: pieces}, ships...).ID
}

// drain empties the reserve of a piece.
func drain(gs *GameState, piece string) {
	for gs.Reserve.Has(pc(piece)) {
		gs.Reserve.Take(pc(piece))
	}
}

func rejectionReason(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatal("expected a rejection, got nil")
	}
	r, ok := err.(*Rejection)
	if !ok {
		t.Fatalf("expected *Rejection, got %T: %v", err, err)
	}
	return r.Reason
}
