package game

import "github.com/MrJoeKr/arcane-estates/internal/board"

// nearestAssumedDiceTotal stands in for a dice total when a card resolves
// mana-well rent: card movement has no roll, so the expected total of two
// dice is used, giving the fixed 28/70 schedule.
const nearestAssumedDiceTotal = 7

// DrawCard draws a uniform-random card from the deck, applies its effect,
// and returns the drawn definition for broadcast.
func (g *Game) DrawCard(playerID string, deck board.Deck) *board.CardDefinition {
	p := g.players[playerID]
	if p == nil {
		return nil
	}
	card := g.pick(board.CardsFor(deck))
	g.logf("%s drew a %s card: %q", p.Name, card.Deck, card.Text)
	g.ApplyCard(playerID, card)
	return &card
}

// ApplyCard interprets one card effect against the game state.
func (g *Game) ApplyCard(playerID string, card board.CardDefinition) {
	p := g.players[playerID]
	if p == nil {
		return
	}
	e := card.Effect

	switch e.Kind {
	case board.EffectCollect:
		p.Crowns += e.Amount

	case board.EffectPay:
		g.settle(playerID, "", e.Amount)

	case board.EffectMoveTo:
		old := p.Position
		p.Position = e.Position
		if e.CollectGo && (e.Position == 0 || e.Position < old) {
			p.Crowns += board.GoSalary
		}

	case board.EffectMoveBack:
		p.Position -= e.Spaces
		if p.Position < 0 {
			p.Position = 0
		}

	case board.EffectGoToJail:
		g.SendToJail(playerID)

	case board.EffectGetOutOfJail:
		p.HasEscapeCard = true

	case board.EffectCollectFromEach:
		for _, other := range g.ActivePlayers() {
			if other.ID == playerID {
				continue
			}
			g.settle(other.ID, playerID, e.Amount)
		}

	case board.EffectPayEach:
		g.payEach(p, e.Amount)

	case board.EffectRepair:
		cost := 0
		for _, idx := range p.Properties {
			sp := g.Spaces[idx]
			switch {
			case sp.HasFortress:
				cost += e.PerFortress
			case sp.Towers > 0:
				cost += sp.Towers * e.PerTower
			}
		}
		g.settle(playerID, "", cost)

	case board.EffectNearest:
		g.moveToNearest(p, e)
	}
}

// payEach pays every other active player a fixed share. When the acting
// player cannot cover the total, each recipient gets an equal floor-divided
// share of what remains and the payer goes bankrupt with assets voided.
func (g *Game) payEach(p *Player, amount int) {
	others := make([]*Player, 0)
	for _, other := range g.ActivePlayers() {
		if other.ID != p.ID {
			others = append(others, other)
		}
	}
	if len(others) == 0 {
		return
	}

	total := amount * len(others)
	if p.Crowns >= total {
		for _, other := range others {
			p.Crowns -= amount
			other.Crowns += amount
		}
		return
	}

	share := p.Crowns / len(others)
	for _, other := range others {
		other.Crowns += share
	}
	p.Crowns = 0
	p.Bankrupt = true
	g.forfeitAssets(p, nil)
	g.logf("%s went bankrupt; all assets return to the bank.", p.Name)
}

// moveToNearest relocates the player to the next space of the named
// category strictly ahead of them, wrapping (with GO salary) past the
// board end, then immediately resolves rent against its owner.
func (g *Game) moveToNearest(p *Player, e board.Effect) {
	var positions []int
	switch e.Nearest {
	case board.SpacePortal:
		positions = board.PortalPositions
	case board.SpaceManaWell:
		positions = board.ManaWellPositions
	default:
		return
	}

	target := -1
	for _, pos := range positions {
		if pos > p.Position {
			target = pos
			break
		}
	}
	if target < 0 {
		target = positions[0]
		p.Crowns += board.GoSalary
	}
	p.Position = target

	sp := g.Spaces[target]
	if sp.OwnerID == "" || sp.OwnerID == p.ID {
		return
	}
	rent := g.CalculateRent(target, nearestAssumedDiceTotal)
	if e.RentMultiplier > 0 {
		rent *= e.RentMultiplier
	}
	if rent > 0 {
		owner := g.players[sp.OwnerID]
		g.logf("%s pays %d Crowns rent to %s.", p.Name, rent, owner.Name)
		g.settle(p.ID, sp.OwnerID, rent)
	}
}
