package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// homeworldState returns a board where player 1 sits at a g3/y1 homeworld
// with a blue medium ship, and player 2 at a b2/r3 homeworld with a green
// large ship.
func homeworldState(t *testing.T) (*GameState, SystemID, SystemID) {
	gs := newTestState(t)
	home1 := addSystem(t, gs, 1, []string{"g3", "y1"}, ship(1, "b2"))
	home2 := addSystem(t, gs, 2, []string{"b2", "r3"}, ship(2, "g3"))
	return gs, home1, home2
}

func TestValidateConstruct(t *testing.T) {
	gs, home1, home2 := homeworldState(t)

	require.NoError(t, gs.Validate(Construct{System: home1, Color: Blue}))

	t.Run("unknown system", func(t *testing.T) {
		reason := rejectionReason(t, gs.Validate(Construct{System: 99, Color: Blue}))
		require.Contains(t, reason, "system id 99")
	})

	t.Run("needs an own ship of the color", func(t *testing.T) {
		reason := rejectionReason(t, gs.Validate(Construct{System: home1, Color: Green}))
		require.Contains(t, reason, "does not own a ship of color green")
	})

	t.Run("a star of the color is not enough", func(t *testing.T) {
		// Player 1 has no ship at home2 even though its star has blue.
		reason := rejectionReason(t, gs.Validate(Construct{System: home2, Color: Blue}))
		require.Contains(t, reason, "does not own")
	})

	t.Run("needs green in the system", func(t *testing.T) {
		gs, _, _ := homeworldState(t)
		sys := addSystem(t, gs, Neutral, []string{"r1"}, ship(1, "b1"))
		reason := rejectionReason(t, gs.Validate(Construct{System: sys, Color: Blue}))
		require.Contains(t, reason, "no green ability")

		require.NoError(t, gs.validate(Construct{System: sys, Color: Blue}, true), "sacrifice grants the power")
	})

	t.Run("needs the color in reserve", func(t *testing.T) {
		gs, home1, _ := homeworldState(t)
		drain(gs, "b1")
		drain(gs, "b2")
		drain(gs, "b3")
		reason := rejectionReason(t, gs.Validate(Construct{System: home1, Color: Blue}))
		require.Contains(t, reason, "not enough pieces of color blue")
	})
}

func TestValidateMove(t *testing.T) {
	gs, home1, _ := homeworldState(t)
	large := addSystem(t, gs, Neutral, []string{"b3"}, ship(1, "y2"))
	medium := addSystem(t, gs, Neutral, []string{"r2"}, ship(2, "r1"))

	t.Run("adjacency is symmetric", func(t *testing.T) {
		reason := rejectionReason(t, gs.Validate(Move{From: home1, Ship: ship(1, "b2"), To: Existing(large)}))
		require.Contains(t, reason, "same size")

		reason = rejectionReason(t, gs.Validate(Move{From: large, Ship: ship(1, "y2"), To: Existing(home1)}))
		require.Contains(t, reason, "same size")
	})

	t.Run("disjoint sizes are adjacent", func(t *testing.T) {
		require.NoError(t, gs.Validate(Move{From: home1, Ship: ship(1, "b2"), To: Existing(medium)}))
		require.NoError(t, gs.Validate(Move{From: large, Ship: ship(1, "y2"), To: Existing(medium)}))
	})

	t.Run("new system", func(t *testing.T) {
		require.NoError(t, gs.Validate(Move{From: home1, Ship: ship(1, "b2"), To: NewSystem(pc("r2"))}))

		reason := rejectionReason(t, gs.Validate(Move{From: home1, Ship: ship(1, "b2"), To: NewSystem(pc("r1"))}))
		require.Contains(t, reason, "same size")

		gs := gs.Copy()
		drain(gs, "r2")
		reason = rejectionReason(t, gs.Validate(Move{From: home1, Ship: ship(1, "b2"), To: NewSystem(pc("r2"))}))
		require.Contains(t, reason, "no r2 piece in reserve")
	})

	t.Run("ship must belong to the current player", func(t *testing.T) {
		reason := rejectionReason(t, gs.Validate(Move{From: medium, Ship: ship(2, "r1"), To: NewSystem(pc("g1"))}))
		require.Contains(t, reason, "does not own ship")
	})

	t.Run("ship must be in the origin", func(t *testing.T) {
		reason := rejectionReason(t, gs.Validate(Move{From: home1, Ship: ship(1, "g1"), To: Existing(medium)}))
		require.Contains(t, reason, "not found in system")
	})

	t.Run("needs yellow in the origin", func(t *testing.T) {
		gs := gs.Copy()
		sys := addSystem(t, gs, Neutral, []string{"g1"}, ship(1, "r2"))
		reason := rejectionReason(t, gs.Validate(Move{From: sys, Ship: ship(1, "r2"), To: Existing(large)}))
		require.Contains(t, reason, "no yellow ability")
		require.NoError(t, gs.validate(Move{From: sys, Ship: ship(1, "r2"), To: Existing(large)}, true))
	})

	t.Run("cannot stay in place", func(t *testing.T) {
		reason := rejectionReason(t, gs.Validate(Move{From: home1, Ship: ship(1, "b2"), To: Existing(home1)}))
		require.Contains(t, reason, "already in system")
	})
}

func TestValidateTrade(t *testing.T) {
	gs, _, home2 := homeworldState(t)
	gs.CurrentPlayer = 2

	require.NoError(t, gs.Validate(Trade{System: home2, Ship: ship(2, "g3"), Color: Yellow}))

	t.Run("same color", func(t *testing.T) {
		reason := rejectionReason(t, gs.Validate(Trade{System: home2, Ship: ship(2, "g3"), Color: Green}))
		require.Contains(t, reason, "already green")
	})

	t.Run("piece of the same size must be in reserve", func(t *testing.T) {
		gs := gs.Copy()
		drain(gs, "y3")
		reason := rejectionReason(t, gs.Validate(Trade{System: home2, Ship: ship(2, "g3"), Color: Yellow}))
		require.Contains(t, reason, "no pieces in reserve")
	})
}

func TestValidateTradeNeedsBlue(t *testing.T) {
	gs := newTestState(t)
	sys := addSystem(t, gs, Neutral, []string{"r1"}, ship(1, "g2"))

	reason := rejectionReason(t, gs.Validate(Trade{System: sys, Ship: ship(1, "g2"), Color: Yellow}))
	require.Contains(t, reason, "no blue ability")
	require.NoError(t, gs.validate(Trade{System: sys, Ship: ship(1, "g2"), Color: Yellow}, true))
}

func TestValidateAttack(t *testing.T) {
	gs := newTestState(t)
	sys := addSystem(t, gs, Neutral, []string{"r3"}, ship(1, "g2"), ship(2, "y2"), ship(2, "b3"))

	require.NoError(t, gs.Validate(Attack{System: sys, Ship: ship(2, "y2")}))

	t.Run("no self capture", func(t *testing.T) {
		reason := rejectionReason(t, gs.Validate(Attack{System: sys, Ship: ship(1, "g2")}))
		require.Contains(t, reason, "already owns target ship")

		// Granting the power doesn't change that.
		err := gs.validate(Attack{System: sys, Ship: ship(1, "g2")}, true)
		require.Equal(t, reason, rejectionReason(t, err))
	})

	t.Run("needs a ship at least as large", func(t *testing.T) {
		reason := rejectionReason(t, gs.Validate(Attack{System: sys, Ship: ship(2, "b3")}))
		require.Contains(t, reason, "large enough")
	})

	t.Run("target must be there", func(t *testing.T) {
		reason := rejectionReason(t, gs.Validate(Attack{System: sys, Ship: ship(2, "r1")}))
		require.Contains(t, reason, "not found")
	})

	t.Run("needs red", func(t *testing.T) {
		gs := newTestState(t)
		sys := addSystem(t, gs, Neutral, []string{"b3"}, ship(1, "g2"), ship(2, "y1"))
		reason := rejectionReason(t, gs.Validate(Attack{System: sys, Ship: ship(2, "y1")}))
		require.Contains(t, reason, "no red ability")
		require.NoError(t, gs.validate(Attack{System: sys, Ship: ship(2, "y1")}, true))
	})
}

func TestValidateCatastrophe(t *testing.T) {
	gs := newTestState(t)
	three := addSystem(t, gs, Neutral, []string{"r2"}, ship(1, "r1"), ship(2, "r1"))
	four := addSystem(t, gs, Neutral, []string{"r3"}, ship(1, "r2"), ship(2, "r2"), ship(2, "r3"))

	reason := rejectionReason(t, gs.Validate(Catastrophe{System: three, Color: Red}))
	require.Contains(t, reason, "not overpopulated")

	require.NoError(t, gs.Validate(Catastrophe{System: four, Color: Red}))

	t.Run("anyone may trigger it", func(t *testing.T) {
		gs := gs.Copy()
		gs.CurrentPlayer = 2
		require.NoError(t, gs.Validate(Catastrophe{System: four, Color: Red}))
	})
}

func TestValidateSacrifice(t *testing.T) {
	gs := newTestState(t)
	home := addSystem(t, gs, 1, []string{"g1", "b2"}, ship(1, "y2"), ship(1, "g3"))
	target := addSystem(t, gs, Neutral, []string{"r3"}, ship(2, "b1"))

	move := func(s Ship, from SystemID, to Destination) Action {
		return Move{From: from, Ship: s, To: to}
	}

	t.Run("count law", func(t *testing.T) {
		one := move(ship(1, "g3"), home, Existing(target))

		reason := rejectionReason(t, gs.Validate(Sacrifice{System: home, Ship: ship(1, "y2"), Actions: []Action{one}}))
		require.Contains(t, reason, "expected 2, given 1")

		reason = rejectionReason(t, gs.Validate(Sacrifice{System: home, Ship: ship(1, "y2"), Actions: []Action{one, one, one}}))
		require.Contains(t, reason, "expected 2, given 3")
	})

	t.Run("chained moves see the board left by earlier ones", func(t *testing.T) {
		// The g3 ship leaves home for a new y3 system, then flies on from
		// there.
		next := SystemID(gs.SystemCount + 1)
		err := gs.Validate(Sacrifice{System: home, Ship: ship(1, "y2"), Actions: []Action{
			move(ship(1, "g3"), home, NewSystem(pc("y3"))),
			move(ship(1, "g3"), next, Existing(target)),
		}})
		require.Error(t, err, "y3 and r3 share a size")

		err = gs.Validate(Sacrifice{System: home, Ship: ship(1, "y2"), Actions: []Action{
			move(ship(1, "g3"), home, NewSystem(pc("y3"))),
			move(ship(1, "g3"), next, NewSystem(pc("r1"))),
		}})
		require.NoError(t, err)
	})

	t.Run("only the ship's power or catastrophes", func(t *testing.T) {
		reason := rejectionReason(t, gs.Validate(Sacrifice{System: home, Ship: ship(1, "y2"), Actions: []Action{
			Construct{System: home, Color: Green},
			Construct{System: home, Color: Green},
		}}))
		require.Contains(t, reason, "expected one of move, catastrophe")
	})

	t.Run("catastrophes do not count", func(t *testing.T) {
		gs := newTestState(t)
		home := addSystem(t, gs, 1, []string{"g1", "b2"}, ship(1, "r1"), ship(1, "g3"))
		crowded := addSystem(t, gs, Neutral, []string{"y3"}, ship(2, "y1"), ship(2, "y2"), ship(1, "y1"), ship(1, "r2"))

		err := gs.Validate(Sacrifice{System: home, Ship: ship(1, "r1"), Actions: []Action{
			Catastrophe{System: crowded, Color: Yellow},
			Attack{System: home, Ship: ship(2, "g2")},
		}})
		reason := rejectionReason(t, err)
		require.Contains(t, reason, "action 2", "the attack target is missing, the count was accepted")
	})

	t.Run("sacrificed ship must be owned", func(t *testing.T) {
		reason := rejectionReason(t, gs.Validate(Sacrifice{System: target, Ship: ship(2, "b1"), Actions: []Action{
			Trade{System: target, Ship: ship(2, "b1"), Color: Red},
		}}))
		require.Contains(t, reason, "does not own")
	})
}

func TestValidateSetup(t *testing.T) {
	gs := newTestState(t)

	setup := Setup{Star: [2]Piece{pc("g3"), pc("y1")}, Ship: pc("b2")}
	require.NoError(t, gs.Validate(setup))

	t.Run("already set up", func(t *testing.T) {
		done := gs.Apply(setup)
		reason := rejectionReason(t, done.Validate(setup))
		require.Contains(t, reason, "already completed setup")
	})

	t.Run("duplicates need enough copies", func(t *testing.T) {
		gs := gs.Copy()
		gs.Reserve.Take(pc("g3"))
		gs.Reserve.Take(pc("g3"))
		dup := Setup{Star: [2]Piece{pc("g3"), pc("g3")}, Ship: pc("b2")}
		reason := rejectionReason(t, gs.Validate(dup))
		require.Contains(t, reason, "not enough pieces of type g3")
	})
}

func TestValidateUnknownAction(t *testing.T) {
	gs := newTestState(t)
	reason := rejectionReason(t, gs.Validate(nil))
	require.Contains(t, reason, "unknown action kind")
}

func TestRejectionIsIdempotent(t *testing.T) {
	gs, home1, _ := homeworldState(t)
	before := gs.Hash()

	illegal := []Action{
		Construct{System: home1, Color: Red},
		Move{From: home1, Ship: ship(1, "b2"), To: NewSystem(pc("g1"))},
		Attack{System: home1, Ship: ship(1, "b2")},
		Catastrophe{System: home1, Color: Green},
		Sacrifice{System: home1, Ship: ship(1, "b2"), Actions: nil},
		Setup{Star: [2]Piece{pc("g3"), pc("y1")}, Ship: pc("b2")},
	}
	for _, a := range illegal {
		first := rejectionReason(t, gs.Validate(a))
		second := rejectionReason(t, gs.Validate(a))
		require.Equal(t, first, second, a.String())
		require.Equal(t, before, gs.Hash(), "%s must not touch the state", a)
	}
}
