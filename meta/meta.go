// meta/meta.go
package meta

// SUPPLY_PER_PIECE is how many copies of each (color, size) piece exist.
const SUPPLY_PER_PIECE = 3

// CATASTROPHE_THRESHOLD is the number of same-colored pieces in a system
// (ships and star together) at which a catastrophe may be triggered.
const CATASTROPHE_THRESHOLD = 4

// STAR_PIECES is the number of pieces in a homeworld star.
const STAR_PIECES = 2

// NUM_PLAYERS is the number of seats at the table.
const NUM_PLAYERS = 2

// MAX_TURNS is the default turn limit of a game.
const MAX_TURNS = 1000

// MAX_RETRIES is the default number of attempts a player gets per turn.
const MAX_RETRIES = 10
