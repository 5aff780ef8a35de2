package game

// Snapshot is a read-only deep copy of the whole game tree, produced after
// every mutation for broadcast to observers. Serialization of the snapshot
// is the transport's concern; the JSON tags only fix the field names.
type Snapshot struct {
	Phase           string           `json:"phase"`
	Players         []PlayerSnapshot `json:"players"`
	Spaces          []SpaceSnapshot  `json:"spaces"`
	CurrentPlayerID string           `json:"currentPlayerId"`
	TurnPhase       string           `json:"turnPhase"`
	Dice            [2]int           `json:"dice"`
	DoublesCount    int              `json:"doublesCount"`
	Auction         AuctionSnapshot  `json:"auction"`
	Trade           *TradeSnapshot   `json:"trade,omitempty"`
	WinnerID        string           `json:"winnerId"`
}

// PlayerSnapshot captures one player's state.
type PlayerSnapshot struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Token         string `json:"token"`
	Position      int    `json:"position"`
	Crowns        int    `json:"crowns"`
	Properties    []int  `json:"properties"`
	InJail        bool   `json:"inJail"`
	JailTurns     int    `json:"jailTurns"`
	HasEscapeCard bool   `json:"hasEscapeCard"`
	Bankrupt      bool   `json:"bankrupt"`
	Connected     bool   `json:"connected"`
}

// SpaceSnapshot captures one space's mutable state.
type SpaceSnapshot struct {
	Index       int    `json:"index"`
	OwnerID     string `json:"ownerId"`
	Towers      int    `json:"towers"`
	HasFortress bool   `json:"hasFortress"`
	IsMortgaged bool   `json:"isMortgaged"`
}

// AuctionSnapshot captures the auction state.
type AuctionSnapshot struct {
	Active          bool     `json:"active"`
	SpaceIndex      int      `json:"spaceIndex"`
	CurrentBid      int      `json:"currentBid"`
	CurrentBidderID string   `json:"currentBidderId"`
	TimeRemaining   int      `json:"timeRemaining"`
	Passed          []string `json:"passed"`
}

// TradeSnapshot captures the pending trade offer.
type TradeSnapshot struct {
	FromID            string `json:"fromId"`
	ToID              string `json:"toId"`
	OfferProperties   []int  `json:"offerProperties"`
	OfferCrowns       int    `json:"offerCrowns"`
	RequestProperties []int  `json:"requestProperties"`
	RequestCrowns     int    `json:"requestCrowns"`
}

// Snapshot builds the view.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:           g.Phase.String(),
		CurrentPlayerID: g.CurrentPlayerID,
		TurnPhase:       g.TurnPhase.String(),
		Dice:            g.Dice,
		DoublesCount:    g.DoublesCount,
		WinnerID:        g.WinnerID,
	}

	snap.Players = make([]PlayerSnapshot, 0, len(g.playerOrder))
	for _, p := range g.Players() {
		snap.Players = append(snap.Players, PlayerSnapshot{
			ID:            p.ID,
			Name:          p.Name,
			Token:         p.Token,
			Position:      p.Position,
			Crowns:        p.Crowns,
			Properties:    append([]int(nil), p.Properties...),
			InJail:        p.InJail,
			JailTurns:     p.JailTurns,
			HasEscapeCard: p.HasEscapeCard,
			Bankrupt:      p.Bankrupt,
			Connected:     p.Connected,
		})
	}

	snap.Spaces = make([]SpaceSnapshot, 0, len(g.Spaces))
	for _, sp := range g.Spaces {
		snap.Spaces = append(snap.Spaces, SpaceSnapshot{
			Index:       sp.Index,
			OwnerID:     sp.OwnerID,
			Towers:      sp.Towers,
			HasFortress: sp.HasFortress,
			IsMortgaged: sp.IsMortgaged,
		})
	}

	a := g.auction
	snap.Auction = AuctionSnapshot{
		Active:          a.Active,
		SpaceIndex:      a.SpaceIndex,
		CurrentBid:      a.CurrentBid,
		CurrentBidderID: a.CurrentBidderID,
		TimeRemaining:   a.TimeRemaining,
		Passed:          a.PassedPlayers(),
	}

	if t := g.trade; t != nil {
		snap.Trade = &TradeSnapshot{
			FromID:            t.FromID,
			ToID:              t.ToID,
			OfferProperties:   append([]int(nil), t.OfferProperties...),
			OfferCrowns:       t.OfferCrowns,
			RequestProperties: append([]int(nil), t.RequestProperties...),
			RequestCrowns:     t.RequestCrowns,
		}
	}

	return snap
}
