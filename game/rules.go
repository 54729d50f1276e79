package game

// Losers returns the players with no ship of their own left at any of their
// homeworlds, in seating order. A player whose homeworld was destroyed has
// none left either.
func Losers(gs *GameState) []PlayerID {
	var losers []PlayerID
	for _, player := range gs.Players {
		alive := false
		for _, s := range gs.Homeworlds(player) {
			if len(s.ShipsOf(player)) > 0 {
				alive = true
				break
			}
		}
		if !alive {
			losers = append(losers, player)
		}
	}
	return losers
}

