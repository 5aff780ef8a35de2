package game

// settlementOutcome reports how a forced payment resolved.
type settlementOutcome int

const (
	settledInFull settlementOutcome = iota
	settledBankrupt
	settleSkipped
)

// settle is the shared "pay or go bankrupt" operation used by rent, jail
// fines, and card effects. When the payer can cover the amount it is
// transferred to the creditor (or the bank when creditorID is empty).
// Otherwise the payer's remaining balance, every owned space, and any
// escape card go to the creditor, and the payer is flagged bankrupt; with
// no creditor the assets are voided back to the bank.
func (g *Game) settle(payerID, creditorID string, amount int) settlementOutcome {
	payer := g.players[payerID]
	if payer == nil || payer.Bankrupt || amount < 0 {
		return settleSkipped
	}
	creditor := g.players[creditorID]

	if payer.Crowns >= amount {
		payer.Crowns -= amount
		if creditor != nil {
			creditor.Crowns += amount
		}
		return settledInFull
	}

	if creditor != nil {
		creditor.Crowns += payer.Crowns
	}
	payer.Crowns = 0
	payer.Bankrupt = true
	g.forfeitAssets(payer, creditor)
	if creditor != nil {
		g.logf("%s went bankrupt; all assets pass to %s.", payer.Name, creditor.Name)
	} else {
		g.logf("%s went bankrupt; all assets return to the bank.", payer.Name)
	}
	return settledBankrupt
}

// forfeitAssets moves every owned space and any escape card from p to the
// creditor. A nil creditor voids them: the spaces return to the bank with
// buildings and mortgages cleared, keeping the ownership invariant intact.
func (g *Game) forfeitAssets(p *Player, creditor *Player) {
	for _, idx := range p.Properties {
		sp := g.Spaces[idx]
		if creditor != nil {
			sp.OwnerID = creditor.ID
			creditor.addProperty(idx)
			continue
		}
		sp.OwnerID = ""
		sp.Towers = 0
		sp.HasFortress = false
		sp.IsMortgaged = false
	}
	p.Properties = nil

	if p.HasEscapeCard {
		p.HasEscapeCard = false
		if creditor != nil {
			creditor.HasEscapeCard = true
		}
	}
}
