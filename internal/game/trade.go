package game

// TradeOffer is a two-party exchange of properties and currency. Only one
// offer exists at a time for the whole game; a new valid proposal replaces
// any pending one.
type TradeOffer struct {
	FromID            string
	ToID              string
	OfferProperties   []int
	OfferCrowns       int
	RequestProperties []int
	RequestCrowns     int
}

// Trade returns the pending offer, or nil.
func (g *Game) Trade() *TradeOffer {
	return g.trade
}

// ProposeTrade validates and installs an offer: both parties must exist,
// every offered space must belong to the proposer, every requested space
// to the target, and both sides must cover their currency commitments.
func (g *Game) ProposeTrade(fromID string, offer TradeOffer) bool {
	from := g.players[fromID]
	to := g.players[offer.ToID]
	if from == nil || to == nil {
		return false
	}
	for _, idx := range offer.OfferProperties {
		if idx < 0 || idx >= len(g.Spaces) || g.Spaces[idx].OwnerID != fromID {
			return false
		}
	}
	for _, idx := range offer.RequestProperties {
		if idx < 0 || idx >= len(g.Spaces) || g.Spaces[idx].OwnerID != offer.ToID {
			return false
		}
	}
	if from.Crowns < offer.OfferCrowns || to.Crowns < offer.RequestCrowns {
		return false
	}

	installed := TradeOffer{
		FromID:            fromID,
		ToID:              offer.ToID,
		OfferCrowns:       offer.OfferCrowns,
		RequestCrowns:     offer.RequestCrowns,
		OfferProperties:   append([]int(nil), offer.OfferProperties...),
		RequestProperties: append([]int(nil), offer.RequestProperties...),
	}
	g.trade = &installed
	g.logf("%s proposed a trade to %s.", from.Name, to.Name)
	return true
}

// AcceptTrade executes the pending offer: currency moves both directions
// and every listed space still held by its side changes hands. The offer
// is discarded if either party no longer exists.
func (g *Game) AcceptTrade() {
	t := g.trade
	if t == nil {
		return
	}
	from := g.players[t.FromID]
	to := g.players[t.ToID]
	if from == nil || to == nil {
		g.trade = nil
		return
	}

	from.Crowns -= t.OfferCrowns
	to.Crowns += t.OfferCrowns
	to.Crowns -= t.RequestCrowns
	from.Crowns += t.RequestCrowns

	for _, idx := range t.OfferProperties {
		sp := g.Spaces[idx]
		if sp.OwnerID != t.FromID {
			continue
		}
		sp.OwnerID = t.ToID
		from.removeProperty(idx)
		to.addProperty(idx)
	}
	for _, idx := range t.RequestProperties {
		sp := g.Spaces[idx]
		if sp.OwnerID != t.ToID {
			continue
		}
		sp.OwnerID = t.FromID
		to.removeProperty(idx)
		from.addProperty(idx)
	}

	g.trade = nil
	g.logf("%s and %s completed a trade.", from.Name, to.Name)
}

// RejectTrade discards the pending offer unconditionally.
func (g *Game) RejectTrade() {
	if g.trade != nil {
		g.logf("The trade was rejected.")
	}
	g.trade = nil
}
