package game

import (
	"homeworlds/utils"
)

// Apply returns the state that results from playing a, leaving gs untouched.
// a must have passed Validate against gs; anything else is a programming
// error and panics.
func (gs *GameState) Apply(a Action) *GameState {
	next := gs.Copy()
	next.apply(a)
	return next
}

func (gs *GameState) apply(a Action) {
	switch a := a.(type) {
	case Construct:
		gs.construct(a)
	case Move:
		gs.move(a)
	case Trade:
		gs.trade(a)
	case Attack:
		gs.attack(a)
	case Sacrifice:
		gs.sacrifice(a)
	case Catastrophe:
		gs.catastrophe(a)
	case Setup:
		gs.setup(a)
	default:
		panic(integrityf("cannot apply unknown action %T", a))
	}
}

func (gs *GameState) mustSystem(id SystemID) *System {
	s, ok := gs.Systems[id]
	if !ok {
		panic(integrityf("system %d does not exist", id))
	}
	return s
}

func (gs *GameState) removeShip(s *System, ship Ship) {
	i := utils.FindIndex(s.Ships, ship)
	if i < 0 {
		panic(integrityf("ship %s is not in system %d", ship, s.ID))
	}
	s.Ships = utils.Remove(s.Ships, i)
}

// addSystem allocates the next system id.
func (gs *GameState) addSystem(star Star, ships ...Ship) *System {
	gs.SystemCount++
	s := &System{
		ID:    SystemID(gs.SystemCount),
		Star:  star,
		Ships: append([]Ship{}, ships...),
	}
	gs.Systems[s.ID] = s
	return s
}

// abandonIfEmpty returns the star of a neutral system without ships to the
// reserve and removes the system. Homeworlds stay even when empty.
func (gs *GameState) abandonIfEmpty(s *System) {
	if len(s.Ships) > 0 || s.Star.IsHomeworld() {
		return
	}
	for _, p := range s.Star.Pieces {
		gs.Reserve.Put(p)
	}
	delete(gs.Systems, s.ID)
}

// spend removes a sacrificed ship and returns its piece to the reserve.
func (gs *GameState) spend(id SystemID, ship Ship) {
	s := gs.mustSystem(id)
	gs.removeShip(s, ship)
	gs.Reserve.Put(ship.Piece)
	gs.abandonIfEmpty(s)
}

func (gs *GameState) construct(a Construct) {
	s := gs.mustSystem(a.System)
	p, ok := gs.Reserve.SmallestOfColor(a.Color)
	if !ok {
		panic(integrityf("no %s piece left to construct", a.Color))
	}
	gs.Reserve.Take(p)
	s.Ships = append(s.Ships, Ship{Owner: gs.CurrentPlayer, Piece: p})
}

func (gs *GameState) move(a Move) {
	from := gs.mustSystem(a.From)
	gs.removeShip(from, a.Ship)
	gs.abandonIfEmpty(from)

	if a.To.IsNew() {
		star := *a.To.NewStar
		gs.Reserve.Take(star)
		gs.addSystem(Star{Owner: Neutral, Pieces: []Piece{star}}, a.Ship)
		return
	}
	to := gs.mustSystem(a.To.System)
	to.Ships = append(to.Ships, a.Ship)
}

func (gs *GameState) trade(a Trade) {
	s := gs.mustSystem(a.System)
	gs.removeShip(s, a.Ship)
	gs.Reserve.Put(a.Ship.Piece)

	p := Piece{Color: a.Color, Size: a.Ship.Piece.Size}
	gs.Reserve.Take(p)
	s.Ships = append(s.Ships, Ship{Owner: gs.CurrentPlayer, Piece: p})
}

func (gs *GameState) attack(a Attack) {
	s := gs.mustSystem(a.System)
	i := utils.FindIndex(s.Ships, a.Ship)
	if i < 0 {
		panic(integrityf("ship %s is not in system %d", a.Ship, a.System))
	}
	s.Ships[i].Owner = gs.CurrentPlayer
}

func (gs *GameState) sacrifice(a Sacrifice) {
	gs.spend(a.System, a.Ship)
	for _, sub := range a.Actions {
		gs.apply(sub)
	}
}

func (gs *GameState) catastrophe(a Catastrophe) {
	s := gs.mustSystem(a.System)

	var remaining, lost []Piece
	for _, p := range s.Star.Pieces {
		if p.Color == a.Color {
			lost = append(lost, p)
		} else {
			remaining = append(remaining, p)
		}
	}

	// The whole star went: everything in the system returns to the reserve.
	if len(remaining) == 0 {
		for _, p := range s.Star.Pieces {
			gs.Reserve.Put(p)
		}
		for _, sh := range s.Ships {
			gs.Reserve.Put(sh.Piece)
		}
		delete(gs.Systems, s.ID)
		return
	}

	for _, p := range lost {
		gs.Reserve.Put(p)
	}
	s.Star.Pieces = remaining

	var survivors []Ship
	for _, sh := range s.Ships {
		if sh.Piece.Color == a.Color {
			gs.Reserve.Put(sh.Piece)
		} else {
			survivors = append(survivors, sh)
		}
	}
	s.Ships = survivors
	gs.abandonIfEmpty(s)
}

func (gs *GameState) setup(a Setup) {
	for _, p := range a.Star {
		gs.Reserve.Take(p)
	}
	gs.Reserve.Take(a.Ship)

	star := Star{Owner: gs.CurrentPlayer, Pieces: []Piece{a.Star[0], a.Star[1]}}
	gs.addSystem(star, Ship{Owner: gs.CurrentPlayer, Piece: a.Ship})
}
