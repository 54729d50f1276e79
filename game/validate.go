package game

import (
	"strings"

	"homeworlds/meta"
	"homeworlds/utils"
)

// Validate checks whether a is legal for the current player. It returns nil
// when it is, or a *Rejection saying why not. The state is never modified.
func (gs *GameState) Validate(a Action) error {
	return gs.validate(a, false)
}

// validate checks a; when sacrifice is set the power of the action's color
// is granted by the sacrificed ship and need not be present in the system.
func (gs *GameState) validate(a Action, sacrifice bool) error {
	switch a := a.(type) {
	case Construct:
		return gs.validateConstruct(a, sacrifice)
	case Move:
		return gs.validateMove(a, sacrifice)
	case Trade:
		return gs.validateTrade(a, sacrifice)
	case Attack:
		return gs.validateAttack(a, sacrifice)
	case Sacrifice:
		return gs.validateSacrifice(a)
	case Catastrophe:
		return gs.validateCatastrophe(a)
	case Setup:
		return gs.validateSetup(a)
	default:
		return rejectf("unknown action kind %T", a)
	}
}

func (gs *GameState) system(id SystemID) (*System, error) {
	s, ok := gs.Systems[id]
	if !ok {
		return nil, rejectf("system id %d is not valid", id)
	}
	return s, nil
}

// checkOwnShip verifies that the current player flies ship in s.
func (gs *GameState) checkOwnShip(s *System, ship Ship) error {
	if !gs.hasPlayer(ship.Owner) {
		return rejectf("player id %d is not valid", ship.Owner)
	}
	if ship.Owner != gs.CurrentPlayer {
		return rejectf("current player does not own ship %s", ship)
	}
	if !s.hasShip(ship) {
		return rejectf("ship %s not found in system %d", ship, s.ID)
	}
	return nil
}

func requirePower(s *System, c Color, sacrifice bool) error {
	if !sacrifice && !s.hasColor(c) {
		return rejectf("there is no %s ability in system %d", c, s.ID)
	}
	return nil
}

func checkColor(c Color) error {
	if !c.valid() {
		return rejectf("unknown color %d", int(c))
	}
	return nil
}

func (gs *GameState) validateConstruct(a Construct, sacrifice bool) error {
	s, err := gs.system(a.System)
	if err != nil {
		return err
	}
	if err := checkColor(a.Color); err != nil {
		return err
	}
	if !gs.Reserve.HasColor(a.Color) {
		return rejectf("not enough pieces of color %s in reserve", a.Color)
	}
	if !s.ownsColor(gs.CurrentPlayer, a.Color) {
		return rejectf("current player does not own a ship of color %s in system %d", a.Color, a.System)
	}
	return requirePower(s, Green, sacrifice)
}

func (gs *GameState) validateMove(a Move, sacrifice bool) error {
	from, err := gs.system(a.From)
	if err != nil {
		return err
	}

	var toSizes map[Size]bool
	if a.To.IsNew() {
		star := *a.To.NewStar
		if !star.valid() {
			return rejectf("invalid piece %v for a new system", star)
		}
		if !gs.Reserve.Has(star) {
			return rejectf("no %s piece in reserve to found a new system", star)
		}
		toSizes = map[Size]bool{star.Size: true}
	} else {
		if a.To.System == a.From {
			return rejectf("ship is already in system %d", a.From)
		}
		to, err := gs.system(a.To.System)
		if err != nil {
			return err
		}
		toSizes = to.sizes()
	}

	if err := gs.checkOwnShip(from, a.Ship); err != nil {
		return err
	}

	for size := range from.sizes() {
		if toSizes[size] {
			return rejectf("target system %s has a star of the same size as origin system %d", a.To, a.From)
		}
	}

	return requirePower(from, Yellow, sacrifice)
}

func (gs *GameState) validateTrade(a Trade, sacrifice bool) error {
	s, err := gs.system(a.System)
	if err != nil {
		return err
	}
	if err := gs.checkOwnShip(s, a.Ship); err != nil {
		return err
	}
	if err := checkColor(a.Color); err != nil {
		return err
	}
	if a.Color == a.Ship.Piece.Color {
		return rejectf("ship %s is already %s", a.Ship, a.Color)
	}
	if !gs.Reserve.Has(Piece{Color: a.Color, Size: a.Ship.Piece.Size}) {
		return rejectf("no pieces in reserve to trade with")
	}
	return requirePower(s, Blue, sacrifice)
}

func (gs *GameState) validateAttack(a Attack, sacrifice bool) error {
	s, err := gs.system(a.System)
	if err != nil {
		return err
	}
	if a.Ship.Owner == gs.CurrentPlayer {
		return rejectf("current player already owns target ship")
	}
	if !s.hasShip(a.Ship) {
		return rejectf("ship %s not found in system %d", a.Ship, a.System)
	}

	large := false
	for _, sh := range s.ShipsOf(gs.CurrentPlayer) {
		if sh.Piece.Size >= a.Ship.Piece.Size {
			large = true
			break
		}
	}
	if !large {
		return rejectf("current player does not have a ship large enough to attack target ship")
	}

	return requirePower(s, Red, sacrifice)
}

func (gs *GameState) validateSacrifice(a Sacrifice) error {
	s, err := gs.system(a.System)
	if err != nil {
		return err
	}
	if err := gs.checkOwnShip(s, a.Ship); err != nil {
		return err
	}

	power := a.Ship.Piece.Color.Power()
	given := utils.Count(a.Actions, func(sub Action) bool {
		return sub == nil || sub.Kind() != CatastropheAction
	})
	if expected := int(a.Ship.Piece.Size); given != expected {
		return rejectf("number of subsequent actions does not match the size of the sacrificed ship: expected %d, given %d", expected, given)
	}
	for _, sub := range a.Actions {
		if sub == nil || (sub.Kind() != power && sub.Kind() != CatastropheAction) {
			return rejectf("given action %v is not valid, expected one of %s", sub, strings.Join([]string{power.String(), CatastropheAction.String()}, ", "))
		}
	}

	// Each sub-action sees the board left by the ones before it.
	work := gs.Copy()
	work.spend(a.System, a.Ship)
	for i, sub := range a.Actions {
		if err := work.validate(sub, true); err != nil {
			return rejectf("action %d %s is not valid: %s", i+1, sub, err)
		}
		work.apply(sub)
	}
	return nil
}

func (gs *GameState) validateCatastrophe(a Catastrophe) error {
	s, err := gs.system(a.System)
	if err != nil {
		return err
	}
	if err := checkColor(a.Color); err != nil {
		return err
	}
	if s.countColor(a.Color) < meta.CATASTROPHE_THRESHOLD {
		return rejectf("color %s is not overpopulated in system %d", a.Color, a.System)
	}
	return nil
}

func (gs *GameState) validateSetup(a Setup) error {
	if !gs.hasPlayer(gs.CurrentPlayer) {
		return rejectf("player id %d is not valid", gs.CurrentPlayer)
	}

	pieces := []Piece{a.Star[0], a.Star[1], a.Ship}
	needed := make(map[PieceKey]int, len(pieces))
	for _, p := range pieces {
		if !p.valid() {
			return rejectf("invalid piece %v", p)
		}
		needed[p.Key()]++
	}
	for _, p := range pieces {
		if gs.Reserve[p.Key()] < needed[p.Key()] {
			return rejectf("not enough pieces of type %s remaining to do setup", p)
		}
	}

	if len(gs.Homeworlds(gs.CurrentPlayer)) > 0 {
		return rejectf("current player has already completed setup")
	}
	return nil
}
