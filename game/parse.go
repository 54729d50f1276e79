package game

import (
	"fmt"
	"strconv"
	"strings"

	"homeworlds/meta"
)

// ParseTurn decodes the flat action list a turn-source submits:
//
//	[kind0, args0, kind1, args1, ...]
//
// where each kind is an action name and each args is a list of that action's
// arguments. Values are the generic shapes produced by YAML or JSON decoding.
// Anything malformed is reported as a *Rejection so the turn-source can
// correct it and resubmit.
//
// Argument forms:
//
//	construct:   [system, color]
//	move:        [from, ship, to]        to is a system id or {new: piece}
//	trade:       [system, ship, color]
//	attack:      [system, ship]
//	sacrifice:   [system, ship, [kind, args, ...]]
//	catastrophe: [system, color]
//	setup:       [[piece, piece], piece]
//
// A ship is "p1:b2" or {owner: 1, piece: b2}; a piece is "b2" or
// {color: blue, size: 2}.
func ParseTurn(flat []any) ([]Action, error) {
	if len(flat)%2 != 0 {
		return nil, rejectf("action list has odd length %d: expected action, args pairs", len(flat))
	}
	actions := make([]Action, 0, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		a, err := parseAction(flat[i], flat[i+1])
		if err != nil {
			return nil, rejectf("action %d: %s", i/2+1, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

func parseAction(rawKind, rawArgs any) (Action, error) {
	name, ok := rawKind.(string)
	if !ok {
		return nil, fmt.Errorf("action name must be a string, got %v", rawKind)
	}
	kind, ok := ParseActionKind(strings.ToLower(name))
	if !ok {
		return nil, fmt.Errorf("unknown action kind %q", name)
	}
	args, ok := rawArgs.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: arguments must be a list, got %v", kind, rawArgs)
	}

	a, err := parseArgs(kind, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	return a, nil
}

var arity = map[ActionKind]int{
	ConstructAction:   2,
	MoveAction:        3,
	TradeAction:       3,
	AttackAction:      2,
	SacrificeAction:   3,
	CatastropheAction: 2,
	SetupAction:       2,
}

func parseArgs(kind ActionKind, args []any) (Action, error) {
	if len(args) != arity[kind] {
		return nil, fmt.Errorf("expected %d arguments, got %d", arity[kind], len(args))
	}

	switch kind {
	case ConstructAction:
		id, c, err := systemAndColor(args)
		return Construct{System: id, Color: c}, err
	case CatastropheAction:
		id, c, err := systemAndColor(args)
		return Catastrophe{System: id, Color: c}, err
	case MoveAction:
		from, ship, err := systemAndShip(args)
		if err != nil {
			return nil, err
		}
		to, err := parseDestination(args[2])
		return Move{From: from, Ship: ship, To: to}, err
	case TradeAction:
		id, ship, err := systemAndShip(args)
		if err != nil {
			return nil, err
		}
		c, err := parseColorArg(args[2])
		return Trade{System: id, Ship: ship, Color: c}, err
	case AttackAction:
		id, ship, err := systemAndShip(args)
		return Attack{System: id, Ship: ship}, err
	case SacrificeAction:
		id, ship, err := systemAndShip(args)
		if err != nil {
			return nil, err
		}
		flat, ok := args[2].([]any)
		if !ok {
			return nil, fmt.Errorf("subsequent actions must be a list, got %v", args[2])
		}
		subs, err := ParseTurn(flat)
		if err != nil {
			return nil, err
		}
		return Sacrifice{System: id, Ship: ship, Actions: subs}, nil
	case SetupAction:
		stars, ok := args[0].([]any)
		if !ok || len(stars) != meta.STAR_PIECES {
			return nil, fmt.Errorf("star must be a list of %d pieces, got %v", meta.STAR_PIECES, args[0])
		}
		var a Setup
		for i, raw := range stars {
			p, err := parsePieceArg(raw)
			if err != nil {
				return nil, err
			}
			a.Star[i] = p
		}
		p, err := parsePieceArg(args[1])
		if err != nil {
			return nil, err
		}
		a.Ship = p
		return a, nil
	}
	return nil, fmt.Errorf("unknown action kind %d", int(kind))
}

func systemAndColor(args []any) (SystemID, Color, error) {
	id, err := parseSystemID(args[0])
	if err != nil {
		return 0, 0, err
	}
	c, err := parseColorArg(args[1])
	return id, c, err
}

func systemAndShip(args []any) (SystemID, Ship, error) {
	id, err := parseSystemID(args[0])
	if err != nil {
		return 0, Ship{}, err
	}
	ship, err := parseShip(args[1])
	return id, ship, err
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("%v is not an integer", v)
}

func parseSystemID(v any) (SystemID, error) {
	n, err := toInt(v)
	if err != nil {
		return 0, fmt.Errorf("system id: %w", err)
	}
	return SystemID(n), nil
}

func parseColorArg(v any) (Color, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("color must be a string, got %v", v)
	}
	return ParseColor(s)
}

func parsePieceArg(v any) (Piece, error) {
	switch p := v.(type) {
	case string:
		return ParsePiece(p)
	case map[string]any:
		c, err := parseColorArg(p["color"])
		if err != nil {
			return Piece{}, err
		}
		n, err := toInt(p["size"])
		if err != nil {
			return Piece{}, fmt.Errorf("piece size: %w", err)
		}
		if size := Size(n); size.valid() {
			return Piece{Color: c, Size: size}, nil
		}
		return Piece{}, fmt.Errorf("piece size must be 1, 2 or 3, got %d", n)
	}
	return Piece{}, fmt.Errorf("invalid piece %v", v)
}

func parseShip(v any) (Ship, error) {
	switch s := v.(type) {
	case string:
		owner, piece, ok := strings.Cut(strings.TrimSpace(s), ":")
		if !ok || !strings.HasPrefix(owner, "p") {
			return Ship{}, fmt.Errorf("invalid ship %q, expected p<owner>:<piece>", s)
		}
		id, err := strconv.Atoi(owner[1:])
		if err != nil {
			return Ship{}, fmt.Errorf("invalid ship owner %q", owner)
		}
		p, err := ParsePiece(piece)
		if err != nil {
			return Ship{}, err
		}
		return Ship{Owner: PlayerID(id), Piece: p}, nil
	case map[string]any:
		id, err := toInt(s["owner"])
		if err != nil {
			return Ship{}, fmt.Errorf("ship owner: %w", err)
		}
		p, err := parsePieceArg(s["piece"])
		if err != nil {
			return Ship{}, err
		}
		return Ship{Owner: PlayerID(id), Piece: p}, nil
	}
	return Ship{}, fmt.Errorf("invalid ship %v", v)
}

func parseDestination(v any) (Destination, error) {
	switch d := v.(type) {
	case map[string]any:
		raw, ok := d["new"]
		if !ok {
			return Destination{}, fmt.Errorf("invalid destination %v, expected {new: piece}", v)
		}
		p, err := parsePieceArg(raw)
		if err != nil {
			return Destination{}, err
		}
		return NewSystem(p), nil
	case string:
		if piece, ok := strings.CutPrefix(d, "new:"); ok {
			p, err := ParsePiece(piece)
			if err != nil {
				return Destination{}, err
			}
			return NewSystem(p), nil
		}
	}
	id, err := parseSystemID(v)
	if err != nil {
		return Destination{}, err
	}
	return Existing(id), nil
}
