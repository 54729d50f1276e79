package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sort"

	"homeworlds/meta"
	"homeworlds/utils"
)

type PlayerID int

// Neutral owns every star that is not a homeworld.
const Neutral PlayerID = 0

type SystemID int

// Ship is a piece flown by a player.
type Ship struct {
	Owner PlayerID
	Piece Piece
}

func (s Ship) String() string {
	return fmt.Sprintf("p%d:%s", s.Owner, s.Piece)
}

// Star is the one or two pieces a system is built around. A star owned by a
// player is that player's homeworld.
type Star struct {
	Owner  PlayerID
	Pieces []Piece
}

func (s Star) IsHomeworld() bool {
	return s.Owner != Neutral
}

// System is an occupied star system.
type System struct {
	ID    SystemID
	Star  Star
	Ships []Ship
}

func (s *System) copy() *System {
	pieces := make([]Piece, len(s.Star.Pieces))
	copy(pieces, s.Star.Pieces)
	ships := make([]Ship, len(s.Ships))
	copy(ships, s.Ships)
	return &System{
		ID:    s.ID,
		Star:  Star{Owner: s.Star.Owner, Pieces: pieces},
		Ships: ships,
	}
}

// sizes returns the set of star sizes, which decides adjacency.
func (s *System) sizes() map[Size]bool {
	sizes := make(map[Size]bool, len(s.Star.Pieces))
	for _, p := range s.Star.Pieces {
		sizes[p.Size] = true
	}
	return sizes
}

// countColor tallies pieces of color c on ships and in the star.
func (s *System) countColor(c Color) int {
	n := utils.Count(s.Ships, func(sh Ship) bool { return sh.Piece.Color == c })
	return n + utils.Count(s.Star.Pieces, func(p Piece) bool { return p.Color == c })
}

// hasColor reports whether the power of c is available in the system.
func (s *System) hasColor(c Color) bool {
	return s.countColor(c) > 0
}

// ownsColor reports whether player flies a ship of color c here. Stars don't
// count.
func (s *System) ownsColor(player PlayerID, c Color) bool {
	for _, sh := range s.Ships {
		if sh.Owner == player && sh.Piece.Color == c {
			return true
		}
	}
	return false
}

func (s *System) hasShip(ship Ship) bool {
	return utils.FindIndex(s.Ships, ship) >= 0
}

// ShipsOf returns the ships player flies in the system.
func (s *System) ShipsOf(player PlayerID) []Ship {
	var ships []Ship
	for _, sh := range s.Ships {
		if sh.Owner == player {
			ships = append(ships, sh)
		}
	}
	return ships
}

// TurnRecord is one entry of the game history.
type TurnRecord struct {
	Player     PlayerID
	Actions    []Action
	Forfeit    bool       // The player ran out of attempts and passed
	End        bool       // Terminal record
	Eliminated []PlayerID // Set on the terminal record
}

// GameState represents the whole board at any point of the game.
type GameState struct {
	Reserve       Reserve              // Pieces not on the board
	Systems       map[SystemID]*System // Occupied systems by id
	Players       []PlayerID           // Seating order
	CurrentPlayer PlayerID             // Whose turn it is
	History       []TurnRecord         // Completed turns
	SystemCount   int                  // Last allocated system id
}

// NewGameState returns an empty board with a full reserve.
func NewGameState(players ...PlayerID) *GameState {
	if len(players) == 0 {
		players = make([]PlayerID, meta.NUM_PLAYERS)
		for i := range players {
			players[i] = PlayerID(i + 1)
		}
	}
	return &GameState{
		Reserve:       NewReserve(),
		Systems:       make(map[SystemID]*System),
		Players:       players,
		CurrentPlayer: players[0],
	}
}

// Copy returns a deep copy of the state.
func (gs *GameState) Copy() *GameState {
	systems := make(map[SystemID]*System, len(gs.Systems))
	for id, s := range gs.Systems {
		systems[id] = s.copy()
	}

	players := make([]PlayerID, len(gs.Players))
	copy(players, gs.Players)

	history := make([]TurnRecord, len(gs.History))
	copy(history, gs.History) // Records are never modified once appended

	return &GameState{
		Reserve:       gs.Reserve.Copy(),
		Systems:       systems,
		Players:       players,
		CurrentPlayer: gs.CurrentPlayer,
		History:       history,
		SystemCount:   gs.SystemCount,
	}
}

// Player returns the identifier of the current player.
func (gs *GameState) Player() string {
	return fmt.Sprintf("Player%d", gs.CurrentPlayer)
}

// NextPlayer returns the player seated after the current one.
func (gs *GameState) NextPlayer() PlayerID {
	i := utils.FindIndex(gs.Players, gs.CurrentPlayer)
	return gs.Players[(i+1)%len(gs.Players)]
}

func (gs *GameState) hasPlayer(id PlayerID) bool {
	return utils.FindIndex(gs.Players, id) >= 0
}

// SystemIDs returns the ids of all systems in ascending order.
func (gs *GameState) SystemIDs() []SystemID {
	ids := make([]SystemID, 0, len(gs.Systems))
	for id := range gs.Systems {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Homeworlds returns the systems whose star is owned by player.
func (gs *GameState) Homeworlds(player PlayerID) []*System {
	var systems []*System
	for _, id := range gs.SystemIDs() {
		if s := gs.Systems[id]; s.Star.Owner == player {
			systems = append(systems, s)
		}
	}
	return systems
}

func (gs *GameState) Hash() uint64 {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(gs.CurrentPlayer))
	binary.Write(hasher, binary.LittleEndian, int64(gs.SystemCount))

	for _, p := range AllPieces() {
		binary.Write(hasher, binary.LittleEndian, int64(gs.Reserve.Count(p)))
	}

	for _, id := range gs.SystemIDs() {
		s := gs.Systems[id]
		binary.Write(hasher, binary.LittleEndian, int64(id))
		binary.Write(hasher, binary.LittleEndian, int64(s.Star.Owner))
		for _, p := range s.Star.Pieces {
			hasher.Write([]byte(p.Key()))
		}
		hasher.Write([]byte{'|'})
		for _, sh := range s.Ships {
			binary.Write(hasher, binary.LittleEndian, int64(sh.Owner))
			hasher.Write([]byte(sh.Piece.Key()))
		}
		hasher.Write([]byte{'#'})
	}

	return hasher.Sum64()
}

// PieceCounts tallies every piece wherever it is: reserve, ships and stars.
func (gs *GameState) PieceCounts() map[PieceKey]int {
	counts := make(map[PieceKey]int, 12)
	for k, n := range gs.Reserve {
		counts[k] += n
	}
	for _, s := range gs.Systems {
		for _, p := range s.Star.Pieces {
			counts[p.Key()]++
		}
		for _, sh := range s.Ships {
			counts[sh.Piece.Key()]++
		}
	}
	return counts
}

// CheckConservation verifies that every piece of the fixed supply is
// accounted for exactly once.
func (gs *GameState) CheckConservation() error {
	counts := gs.PieceCounts()
	for _, p := range AllPieces() {
		if n := counts[p.Key()]; n != meta.SUPPLY_PER_PIECE {
			return fmt.Errorf("piece %s: found %d, want %d", p, n, meta.SUPPLY_PER_PIECE)
		}
	}
	return nil
}
