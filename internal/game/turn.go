package game

import "github.com/MrJoeKr/arcane-estates/internal/board"

// RollResult reports what a roll produced, including any card drawn while
// resolving the landing.
type RollResult struct {
	Die1    int
	Die2    int
	Doubles bool
	Card    *board.CardDefinition
}

// RollDice resolves one roll for the player: jail handling, the
// doubles chain with its three-in-a-row jail cap, movement, and landing
// dispatch. Callers guard that it is the player's turn and the roll phase.
func (g *Game) RollDice(playerID string) RollResult {
	p := g.players[playerID]
	if p == nil {
		return RollResult{}
	}

	die1, die2 := g.roll()
	g.Dice = [2]int{die1, die2}
	res := RollResult{Die1: die1, Die2: die2, Doubles: die1 == die2}
	total := die1 + die2
	g.logf("%s rolled %d + %d = %d.", p.Name, die1, die2, total)

	// Jail rolls never feed the doubles chain; a release by doubles is
	// consumed rather than granting an extra roll.
	if p.InJail {
		if g.HandleJailTurn(playerID, die1, die2) {
			res.Card = g.movePlayer(p, total)
		} else {
			g.TurnPhase = TurnEndTurn
		}
		return res
	}

	if res.Doubles {
		g.DoublesCount++
		if g.DoublesCount >= board.MaxDoubles {
			g.logf("%s rolled three doubles in a row!", p.Name)
			g.SendToJail(playerID)
			g.DoublesCount = 0
			g.TurnPhase = TurnEndTurn
			return res
		}
	} else {
		g.DoublesCount = 0
	}

	res.Card = g.movePlayer(p, total)
	return res
}

// movePlayer advances the player, pays the GO salary on a wrap that does
// not land exactly on GO, and dispatches the landing.
func (g *Game) movePlayer(p *Player, spaces int) *board.CardDefinition {
	old := p.Position
	next := (old + spaces) % board.Size
	if next < old && next != 0 {
		p.Crowns += board.GoSalary
		g.logf("%s passed the Grand Portal and collected %d Crowns.", p.Name, board.GoSalary)
	}
	p.Position = next
	return g.handleLanding(p)
}

// handleLanding resolves the space the player stopped on and sets the next
// turn phase. It returns the card drawn, if the landing drew one.
func (g *Game) handleLanding(p *Player) *board.CardDefinition {
	def, ok := board.Space(p.Position)
	if !ok {
		return nil
	}

	var drawn *board.CardDefinition

	switch def.Type {
	case board.SpaceGo:
		p.Crowns += board.GoSalary
		g.logf("%s landed on the Grand Portal and collected %d Crowns.", p.Name, board.GoSalary)
		g.TurnPhase = TurnAction

	case board.SpaceProperty, board.SpacePortal, board.SpaceManaWell:
		sp := g.Spaces[p.Position]
		switch {
		case sp.OwnerID == "":
			g.TurnPhase = TurnPostRoll
		case sp.OwnerID != p.ID && !sp.IsMortgaged:
			rent := g.CalculateRent(p.Position, g.Dice[0]+g.Dice[1])
			if rent > 0 {
				owner := g.players[sp.OwnerID]
				g.logf("%s pays %d Crowns rent to %s.", p.Name, rent, owner.Name)
				g.PayRent(p.ID, sp.OwnerID, rent)
			}
			g.TurnPhase = TurnAction
		default:
			g.TurnPhase = TurnAction
		}

	case board.SpaceTax:
		// Taxes clamp at zero and never trigger bankruptcy.
		p.Crowns -= def.Cost
		if p.Crowns < 0 {
			p.Crowns = 0
		}
		g.logf("%s pays %d Crowns: %s.", p.Name, def.Cost, def.Name)
		g.TurnPhase = TurnAction

	case board.SpaceFateCard:
		drawn = g.DrawCard(p.ID, board.DeckFate)
		g.TurnPhase = TurnAction

	case board.SpaceGuildCard:
		drawn = g.DrawCard(p.ID, board.DeckGuild)
		g.TurnPhase = TurnAction

	case board.SpaceGoToJail:
		g.SendToJail(p.ID)
		g.TurnPhase = TurnEndTurn

	default:
		// Jail (just visiting) and free parking are inert.
		g.TurnPhase = TurnAction
	}

	// Unconsumed doubles grant another roll unless the landing jailed the
	// player or left a pending decision.
	if g.DoublesCount > 0 && !p.InJail && g.TurnPhase == TurnAction {
		g.TurnPhase = TurnRoll
		g.logf("%s rolled doubles and rolls again!", p.Name)
	}

	return drawn
}

// GetNextPlayerID walks the rotation ring from the current player,
// skipping bankrupt players. If no other player remains it returns the
// current player unchanged.
func (g *Game) GetNextPlayerID() string {
	ring := g.turnOrder
	if len(ring) == 0 {
		ring = g.playerOrder
	}
	if len(ring) == 0 {
		return g.CurrentPlayerID
	}
	current := -1
	for i, id := range ring {
		if id == g.CurrentPlayerID {
			current = i
			break
		}
	}
	for step := 1; step <= len(ring); step++ {
		id := ring[(current+step)%len(ring)]
		if p := g.players[id]; p != nil && !p.Bankrupt {
			return id
		}
	}
	return g.CurrentPlayerID
}

// AdvanceTurn rotates to the next player and resets the roll state.
func (g *Game) AdvanceTurn() {
	g.CurrentPlayerID = g.GetNextPlayerID()
	g.TurnPhase = TurnRoll
	g.DoublesCount = 0
}
