package game

import (
	"fmt"
	"strings"
)

// Action is one step of a turn. The set of actions is closed: only the types
// of this package implement it.
type Action interface {
	Kind() ActionKind
	fmt.Stringer
	action()
}

// Destination is where a move goes: an existing system, or a new system
// founded on a piece taken from the reserve.
type Destination struct {
	System  SystemID
	NewStar *Piece
}

func Existing(id SystemID) Destination {
	return Destination{System: id}
}

func NewSystem(p Piece) Destination {
	return Destination{NewStar: &p}
}

func (d Destination) IsNew() bool {
	return d.NewStar != nil
}

func (d Destination) String() string {
	if d.IsNew() {
		return "new:" + d.NewStar.String()
	}
	return fmt.Sprint(d.System)
}

// Construct builds the smallest available ship of Color in System.
type Construct struct {
	System SystemID
	Color  Color
}

// Move flies Ship from From to To.
type Move struct {
	From SystemID
	Ship Ship
	To   Destination
}

// Trade swaps Ship for a ship of the same size in Color.
type Trade struct {
	System SystemID
	Ship   Ship
	Color  Color
}

// Attack takes over an enemy Ship.
type Attack struct {
	System SystemID
	Ship   Ship
}

// Sacrifice spends Ship to perform Actions with its color's power, one per
// size step. Catastrophes may be interleaved freely.
type Sacrifice struct {
	System  SystemID
	Ship    Ship
	Actions []Action
}

// Catastrophe clears an overpopulated color from System.
type Catastrophe struct {
	System SystemID
	Color  Color
}

// Setup founds the current player's homeworld.
type Setup struct {
	Star [2]Piece
	Ship Piece
}

func (Construct) Kind() ActionKind   { return ConstructAction }
func (Move) Kind() ActionKind        { return MoveAction }
func (Trade) Kind() ActionKind       { return TradeAction }
func (Attack) Kind() ActionKind      { return AttackAction }
func (Sacrifice) Kind() ActionKind   { return SacrificeAction }
func (Catastrophe) Kind() ActionKind { return CatastropheAction }
func (Setup) Kind() ActionKind       { return SetupAction }

func (Construct) action()   {}
func (Move) action()        {}
func (Trade) action()       {}
func (Attack) action()      {}
func (Sacrifice) action()   {}
func (Catastrophe) action() {}
func (Setup) action()       {}

func (a Construct) String() string {
	return fmt.Sprintf("construct(%d, %s)", a.System, a.Color)
}

func (a Move) String() string {
	return fmt.Sprintf("move(%d, %s, %s)", a.From, a.Ship, a.To)
}

func (a Trade) String() string {
	return fmt.Sprintf("trade(%d, %s, %s)", a.System, a.Ship, a.Color)
}

func (a Attack) String() string {
	return fmt.Sprintf("attack(%d, %s)", a.System, a.Ship)
}

func (a Sacrifice) String() string {
	subs := make([]string, len(a.Actions))
	for i, sub := range a.Actions {
		subs[i] = fmt.Sprint(sub)
	}
	return fmt.Sprintf("sacrifice(%d, %s, [%s])", a.System, a.Ship, strings.Join(subs, ", "))
}

func (a Catastrophe) String() string {
	return fmt.Sprintf("catastrophe(%d, %s)", a.System, a.Color)
}

func (a Setup) String() string {
	return fmt.Sprintf("setup([%s, %s], %s)", a.Star[0], a.Star[1], a.Ship)
}
