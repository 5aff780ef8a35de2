package game

import "github.com/MrJoeKr/arcane-estates/internal/board"

// SendToJail moves the player to the jail space and starts their sentence.
func (g *Game) SendToJail(playerID string) {
	p := g.players[playerID]
	if p == nil {
		return
	}
	p.Position = board.JailPosition
	p.InJail = true
	p.JailTurns = 0
	g.logf("%s has been banished to the Dungeon!", p.Name)
}

// PayJailFine releases the player if they can afford the fixed fine.
func (g *Game) PayJailFine(playerID string) bool {
	p := g.players[playerID]
	if p == nil || !p.InJail {
		return false
	}
	if p.Crowns < board.JailFine {
		return false
	}
	p.Crowns -= board.JailFine
	p.InJail = false
	p.JailTurns = 0
	g.logf("%s paid %d Crowns to escape the Dungeon.", p.Name, board.JailFine)
	return true
}

// UseEscapeCard consumes the player's escape card to leave jail.
func (g *Game) UseEscapeCard(playerID string) bool {
	p := g.players[playerID]
	if p == nil || !p.InJail {
		return false
	}
	if !p.HasEscapeCard {
		return false
	}
	p.HasEscapeCard = false
	p.InJail = false
	p.JailTurns = 0
	g.logf("%s used an Escape Scroll!", p.Name)
	return true
}

// HandleJailTurn resolves one jailed roll and reports whether the player
// may still move this turn. Doubles release immediately. The third
// non-double turn forces a release: the fine is paid when affordable,
// otherwise the player settles into bankruptcy with their assets voided.
func (g *Game) HandleJailTurn(playerID string, die1, die2 int) bool {
	p := g.players[playerID]
	if p == nil || !p.InJail {
		return false
	}

	if die1 == die2 {
		p.InJail = false
		p.JailTurns = 0
		g.logf("%s rolled doubles and escaped the Dungeon!", p.Name)
		return true
	}

	p.JailTurns++
	if p.JailTurns < board.MaxJailTurns {
		return false
	}

	p.InJail = false
	p.JailTurns = 0
	if p.Crowns >= board.JailFine {
		p.Crowns -= board.JailFine
		g.logf("%s paid the %d Crown fine after three turns in the Dungeon.", p.Name, board.JailFine)
		return true
	}
	g.settle(playerID, "", board.JailFine)
	return false
}
