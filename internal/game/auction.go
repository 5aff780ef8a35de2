package game

import (
	"sort"

	"github.com/MrJoeKr/arcane-estates/internal/board"
)

// Auction is the open-bid English auction state. The pass-tracking set is
// part of the auction itself so that concurrent rooms stay isolated; it is
// one state machine with two input edges, player actions and the wall
// clock tick, both serialized by the room.
type Auction struct {
	Active          bool
	SpaceIndex      int
	CurrentBid      int
	CurrentBidderID string
	TimeRemaining   int

	passed map[string]bool
}

func newAuction() *Auction {
	return &Auction{passed: make(map[string]bool)}
}

// PassedPlayers returns the ids that have passed, sorted for stable
// snapshots.
func (a *Auction) PassedPlayers() []string {
	out := make([]string, 0, len(a.passed))
	for id := range a.passed {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Auction exposes the auction state for inspection.
func (g *Game) Auction() *Auction {
	return g.auction
}

// StartAuction opens an auction for the space with a fresh countdown and
// an empty passed set.
func (g *Game) StartAuction(spaceIndex int) {
	a := g.auction
	a.Active = true
	a.SpaceIndex = spaceIndex
	a.CurrentBid = 0
	a.CurrentBidderID = ""
	a.TimeRemaining = g.auctionSeconds
	a.passed = make(map[string]bool)
	g.logf("An auction begins for space %d!", spaceIndex)
}

// PlaceBid accepts a bid that strictly exceeds the current one and that
// the bidder can afford. A successful bid re-enters the bidder if they had
// passed.
func (g *Game) PlaceBid(playerID string, amount int) bool {
	a := g.auction
	if !a.Active {
		return false
	}
	p := g.players[playerID]
	if p == nil || p.Bankrupt {
		return false
	}
	if amount <= a.CurrentBid {
		return false
	}
	if p.Crowns < amount {
		return false
	}
	a.CurrentBid = amount
	a.CurrentBidderID = playerID
	delete(a.passed, playerID)
	g.logf("%s bids %d Crowns!", p.Name, amount)
	return true
}

// PassAuction records the player's pass. Once every non-bankrupt player
// has passed the auction ends; the return value reports whether it did.
func (g *Game) PassAuction(playerID string) bool {
	a := g.auction
	if !a.Active {
		return false
	}
	p := g.players[playerID]
	if p == nil || p.Bankrupt {
		return false
	}
	a.passed[playerID] = true
	g.logf("%s passes.", p.Name)
	if len(a.passed) >= len(g.ActivePlayers()) {
		g.EndAuction()
		return true
	}
	return false
}

// AuctionTick consumes one second of the countdown and ends the auction at
// zero. It reports whether the auction ended on this tick. Ticks arriving
// after the auction has already ended are no-ops.
func (g *Game) AuctionTick() bool {
	a := g.auction
	if !a.Active {
		return false
	}
	a.TimeRemaining--
	if a.TimeRemaining > 0 {
		return false
	}
	g.logf("The auction timer runs out.")
	g.EndAuction()
	return true
}

// EndAuction awards the space to the highest bidder, if any, and resets
// the auction to its inactive defaults. Bids were validated against the
// bidder's balance, so settlement cannot underflow.
func (g *Game) EndAuction() {
	a := g.auction
	if a.CurrentBidderID != "" && a.CurrentBid > 0 {
		if winner := g.players[a.CurrentBidderID]; winner != nil {
			winner.Crowns -= a.CurrentBid
			g.Spaces[a.SpaceIndex].OwnerID = winner.ID
			winner.addProperty(a.SpaceIndex)
			if def, ok := board.Space(a.SpaceIndex); ok {
				g.logf("%s wins the auction for %s at %d Crowns!", winner.Name, def.Name, a.CurrentBid)
			}
		}
	} else {
		g.logf("No one bid. The space remains unowned.")
	}

	a.Active = false
	a.SpaceIndex = 0
	a.CurrentBid = 0
	a.CurrentBidderID = ""
	a.TimeRemaining = 0
	a.passed = make(map[string]bool)

	if g.Phase == PhasePlaying {
		g.TurnPhase = TurnAction
	}
}
