package game

import "fmt"

// ActionKind represents the type of action a player can perform.
type ActionKind int

const (
	unknownAction ActionKind = iota
	ConstructAction
	MoveAction
	TradeAction
	AttackAction
	SacrificeAction
	CatastropheAction
	SetupAction
)

var actionNames = map[ActionKind]string{
	ConstructAction:   "construct",
	MoveAction:        "move",
	TradeAction:       "trade",
	AttackAction:      "attack",
	SacrificeAction:   "sacrifice",
	CatastropheAction: "catastrophe",
	SetupAction:       "setup",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// ParseActionKind maps an action name to its kind.
func ParseActionKind(name string) (ActionKind, bool) {
	for k, n := range actionNames {
		if n == name {
			return k, true
		}
	}
	return unknownAction, false
}
