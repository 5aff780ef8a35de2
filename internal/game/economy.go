package game

import "github.com/MrJoeKr/arcane-estates/internal/board"

// CanBuy reports whether the player may purchase the space: it must be a
// purchasable type, unowned, and within the player's balance.
func (g *Game) CanBuy(playerID string, spaceIndex int) bool {
	p := g.players[playerID]
	if p == nil {
		return false
	}
	def, ok := board.Space(spaceIndex)
	if !ok || !def.Type.Purchasable() {
		return false
	}
	if g.Spaces[spaceIndex].OwnerID != "" {
		return false
	}
	return p.Crowns >= def.Cost
}

// Buy debits the listed cost and assigns ownership. It does not re-check
// affordability; callers gate with CanBuy.
func (g *Game) Buy(playerID string, spaceIndex int) {
	p := g.players[playerID]
	def, ok := board.Space(spaceIndex)
	if p == nil || !ok {
		return
	}
	p.Crowns -= def.Cost
	g.Spaces[spaceIndex].OwnerID = playerID
	p.addProperty(spaceIndex)
	g.logf("%s bought %s.", p.Name, def.Name)
}

// CalculateRent returns the rent due for landing on the space with the
// given dice total. Unowned and mortgaged spaces charge nothing.
func (g *Game) CalculateRent(spaceIndex, diceTotal int) int {
	def, ok := board.Space(spaceIndex)
	if !ok {
		return 0
	}
	sp := g.Spaces[spaceIndex]
	if sp.OwnerID == "" || sp.IsMortgaged {
		return 0
	}
	if g.players[sp.OwnerID] == nil {
		return 0
	}

	switch def.Type {
	case board.SpaceProperty:
		if len(def.Rent) != 6 {
			return 0
		}
		if sp.HasFortress {
			return def.Rent[5]
		}
		if sp.Towers > 0 {
			return def.Rent[sp.Towers]
		}
		base := def.Rent[0]
		if def.Color != "" && g.ownsFullColorSet(sp.OwnerID, def.Color) {
			return base * 2
		}
		return base

	case board.SpacePortal:
		owned := g.countOwned(sp.OwnerID, board.PortalPositions)
		if owned < 1 || owned > len(board.PortalRents) {
			return 0
		}
		return board.PortalRents[owned-1]

	case board.SpaceManaWell:
		if g.countOwned(sp.OwnerID, board.ManaWellPositions) == len(board.ManaWellPositions) {
			return diceTotal * 10
		}
		return diceTotal * 4
	}
	return 0
}

func (g *Game) ownsFullColorSet(ownerID string, color board.ColorGroup) bool {
	indices, ok := board.ColorGroups[color]
	if !ok {
		return false
	}
	for _, idx := range indices {
		if g.Spaces[idx].OwnerID != ownerID {
			return false
		}
	}
	return true
}

func (g *Game) countOwned(ownerID string, positions []int) int {
	n := 0
	for _, idx := range positions {
		if g.Spaces[idx].OwnerID == ownerID {
			n++
		}
	}
	return n
}

// PayRent transfers amount from payer to owner, settling through the
// bankruptcy resolver when the payer cannot cover it.
func (g *Game) PayRent(payerID, ownerID string, amount int) {
	g.settle(payerID, ownerID, amount)
}

// CanBuildTower checks every building precondition: sole unmortgaged
// ownership of the space, full color-set ownership, no fortress, fewer
// than four towers, affordable build cost, and the even-build rule (a
// fortress counts as five towers when comparing against the group
// minimum).
func (g *Game) CanBuildTower(playerID string, spaceIndex int) bool {
	p := g.players[playerID]
	def, ok := board.Space(spaceIndex)
	if p == nil || !ok || def.Type != board.SpaceProperty {
		return false
	}
	sp := g.Spaces[spaceIndex]
	if sp.OwnerID != playerID || sp.IsMortgaged || sp.HasFortress {
		return false
	}
	if def.Color == "" || !g.ownsFullColorSet(playerID, def.Color) {
		return false
	}
	if sp.Towers >= board.MaxTowers {
		return false
	}
	if p.Crowns < def.TowerCost {
		return false
	}
	min := -1
	for _, idx := range board.ColorGroups[def.Color] {
		level := g.Spaces[idx].Towers
		if g.Spaces[idx].HasFortress {
			level = board.MaxTowers + 1
		}
		if min < 0 || level < min {
			min = level
		}
	}
	return sp.Towers <= min
}

// BuildTower debits the build cost and adds a tower; a fifth build
// collapses the four towers into a fortress. Callers gate with
// CanBuildTower.
func (g *Game) BuildTower(playerID string, spaceIndex int) {
	p := g.players[playerID]
	def, ok := board.Space(spaceIndex)
	if p == nil || !ok {
		return
	}
	sp := g.Spaces[spaceIndex]
	p.Crowns -= def.TowerCost
	if sp.Towers == board.MaxTowers {
		sp.Towers = 0
		sp.HasFortress = true
		g.logf("%s raised a fortress on %s.", p.Name, def.Name)
		return
	}
	sp.Towers++
	g.logf("%s built a tower on %s.", p.Name, def.Name)
}

// SellTower refunds half the build cost for one unit; selling a fortress
// reverses it into four towers.
func (g *Game) SellTower(playerID string, spaceIndex int) bool {
	p := g.players[playerID]
	def, ok := board.Space(spaceIndex)
	if p == nil || !ok {
		return false
	}
	sp := g.Spaces[spaceIndex]
	if sp.OwnerID != playerID {
		return false
	}
	refund := def.TowerCost / 2
	switch {
	case sp.HasFortress:
		sp.HasFortress = false
		sp.Towers = board.MaxTowers
	case sp.Towers > 0:
		sp.Towers--
	default:
		return false
	}
	p.Crowns += refund
	return true
}

// Mortgage credits the listed mortgage value. The space must be owned by
// the player, unmortgaged, and free of buildings.
func (g *Game) Mortgage(playerID string, spaceIndex int) bool {
	p := g.players[playerID]
	def, ok := board.Space(spaceIndex)
	if p == nil || !ok {
		return false
	}
	sp := g.Spaces[spaceIndex]
	if sp.OwnerID != playerID || sp.IsMortgaged {
		return false
	}
	if sp.Towers > 0 || sp.HasFortress {
		return false
	}
	sp.IsMortgaged = true
	p.Crowns += def.Mortgage
	g.logf("%s mortgaged %s.", p.Name, def.Name)
	return true
}

// Unmortgage clears the flag for 110 percent of the mortgage value, floored.
func (g *Game) Unmortgage(playerID string, spaceIndex int) bool {
	p := g.players[playerID]
	def, ok := board.Space(spaceIndex)
	if p == nil || !ok {
		return false
	}
	sp := g.Spaces[spaceIndex]
	if sp.OwnerID != playerID || !sp.IsMortgaged {
		return false
	}
	cost := def.Mortgage * 110 / 100
	if p.Crowns < cost {
		return false
	}
	p.Crowns -= cost
	sp.IsMortgaged = false
	g.logf("%s lifted the mortgage on %s.", p.Name, def.Name)
	return true
}
