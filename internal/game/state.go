// Package game implements the Arcane Estates rules engine: the turn and
// movement state machine, the property economy, the jail, auction and trade
// subsystems, the card-effect interpreter, and bankruptcy settlement.
//
// The engine is a single-writer state machine. Nothing in this package
// locks or spawns goroutines; callers (internal/room) must serialize every
// mutating call, including the auction tick.
package game

import (
	"fmt"
	"math/rand"

	"github.com/MrJoeKr/arcane-estates/internal/board"
)

// Phase is the overall room phase.
type Phase int

const (
	PhaseLobby Phase = iota
	PhasePlaying
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhasePlaying:
		return "playing"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("phase-%d", int(p))
	}
}

// TurnPhase is the current player's position in the turn state machine.
type TurnPhase int

const (
	TurnRoll TurnPhase = iota
	TurnPostRoll
	TurnAction
	TurnEndTurn
)

func (p TurnPhase) String() string {
	switch p {
	case TurnRoll:
		return "roll"
	case TurnPostRoll:
		return "postRoll"
	case TurnAction:
		return "action"
	case TurnEndTurn:
		return "endTurn"
	default:
		return fmt.Sprintf("turn-phase-%d", int(p))
	}
}

// Player is the mutable per-player state. Players are created during the
// lobby and never removed once the game starts; bankrupt players stay in
// the map and are skipped by turn rotation.
type Player struct {
	ID            string
	Name          string
	Token         string
	Position      int
	Crowns        int
	Properties    []int
	InJail        bool
	JailTurns     int
	HasEscapeCard bool
	Bankrupt      bool
	Connected     bool
}

func (p *Player) addProperty(index int) {
	p.Properties = append(p.Properties, index)
}

func (p *Player) removeProperty(index int) {
	for i, idx := range p.Properties {
		if idx == index {
			p.Properties = append(p.Properties[:i], p.Properties[i+1:]...)
			return
		}
	}
}

// Space is the mutable state of one board space. The static definition
// lives in the board catalog under the same index.
type Space struct {
	Index       int
	OwnerID     string
	Towers      int
	HasFortress bool
	IsMortgaged bool
}

// Config carries the engine tunables a room may override.
type Config struct {
	// AuctionSeconds is the auction countdown; zero means the catalog
	// default.
	AuctionSeconds int
}

// Game is the root of one room's game state.
type Game struct {
	Phase           Phase
	Spaces          []*Space
	CurrentPlayerID string
	TurnPhase       TurnPhase
	Dice            [2]int
	DoublesCount    int
	WinnerID        string

	players     map[string]*Player
	playerOrder []string // join order
	turnOrder   []string // rotation ring, shuffled at Start
	auction     *Auction
	trade       *TradeOffer

	auctionSeconds int

	roll    func() (int, int)
	pick    func(deck []board.CardDefinition) board.CardDefinition
	shuffle func(n int, swap func(i, j int))

	journal []string
}

// New creates an empty game in the lobby phase with all 40 spaces unowned.
func New(cfg Config) *Game {
	seconds := cfg.AuctionSeconds
	if seconds <= 0 {
		seconds = board.AuctionCountdownSeconds
	}
	g := &Game{
		Phase:          PhaseLobby,
		TurnPhase:      TurnRoll,
		players:        make(map[string]*Player),
		auction:        newAuction(),
		auctionSeconds: seconds,
		roll: func() (int, int) {
			return rand.Intn(6) + 1, rand.Intn(6) + 1
		},
		pick: func(deck []board.CardDefinition) board.CardDefinition {
			return deck[rand.Intn(len(deck))]
		},
		shuffle: rand.Shuffle,
	}
	g.Spaces = make([]*Space, board.Size)
	for i := range g.Spaces {
		g.Spaces[i] = &Space{Index: i}
	}
	return g
}

// SetDiceRoller replaces the dice source. Intended for tests.
func (g *Game) SetDiceRoller(roll func() (die1, die2 int)) {
	g.roll = roll
}

// SetCardPicker replaces the uniform card draw. Intended for tests.
func (g *Game) SetCardPicker(pick func(deck []board.CardDefinition) board.CardDefinition) {
	g.pick = pick
}

// SetShuffler replaces the turn-order shuffle. Intended for tests.
func (g *Game) SetShuffler(shuffle func(n int, swap func(i, j int))) {
	g.shuffle = shuffle
}

// Player returns the player with the given id, or nil.
func (g *Game) Player(id string) *Player {
	return g.players[id]
}

// Players returns all players in join order.
func (g *Game) Players() []*Player {
	out := make([]*Player, 0, len(g.playerOrder))
	for _, id := range g.playerOrder {
		out = append(out, g.players[id])
	}
	return out
}

// ActivePlayers returns all non-bankrupt players in join order.
func (g *Game) ActivePlayers() []*Player {
	out := make([]*Player, 0, len(g.playerOrder))
	for _, id := range g.playerOrder {
		if p := g.players[id]; !p.Bankrupt {
			out = append(out, p)
		}
	}
	return out
}

// AddPlayer creates a player during the lobby phase. It returns nil once
// the game has started, when the room is full, or on a duplicate id.
func (g *Game) AddPlayer(id, name, token string) *Player {
	if g.Phase != PhaseLobby || len(g.players) >= board.MaxPlayers {
		return nil
	}
	if _, exists := g.players[id]; exists {
		return nil
	}
	p := &Player{
		ID:        id,
		Name:      name,
		Token:     token,
		Crowns:    board.StartingCrowns,
		Connected: true,
	}
	g.players[id] = p
	g.playerOrder = append(g.playerOrder, id)
	return p
}

// RemovePlayer deletes a player. Only permitted during the lobby phase.
func (g *Game) RemovePlayer(id string) bool {
	if g.Phase != PhaseLobby {
		return false
	}
	if _, exists := g.players[id]; !exists {
		return false
	}
	delete(g.players, id)
	for i, pid := range g.playerOrder {
		if pid == id {
			g.playerOrder = append(g.playerOrder[:i], g.playerOrder[i+1:]...)
			break
		}
	}
	return true
}

// Start shuffles the turn rotation and opens play.
func (g *Game) Start() error {
	if g.Phase != PhaseLobby {
		return fmt.Errorf("game already started")
	}
	if len(g.players) < board.MinPlayers {
		return fmt.Errorf("not enough players: have %d, need %d", len(g.players), board.MinPlayers)
	}
	g.turnOrder = make([]string, len(g.playerOrder))
	copy(g.turnOrder, g.playerOrder)
	g.shuffle(len(g.turnOrder), func(i, j int) {
		g.turnOrder[i], g.turnOrder[j] = g.turnOrder[j], g.turnOrder[i]
	})
	g.Phase = PhasePlaying
	g.CurrentPlayerID = g.turnOrder[0]
	g.TurnPhase = TurnRoll
	return nil
}

// CheckWinner finishes the game when at most one non-bankrupt player
// remains. It reports the winner id and whether the game just ended.
func (g *Game) CheckWinner() (string, bool) {
	if g.Phase != PhasePlaying {
		return "", false
	}
	active := g.ActivePlayers()
	if len(active) > 1 {
		return "", false
	}
	g.Phase = PhaseFinished
	if len(active) == 1 {
		g.WinnerID = active[0].ID
	}
	return g.WinnerID, true
}

// CheckConsistency verifies the ownership invariant: a space lists a player
// as owner exactly when the player's property set contains its index, and
// building state stays within bounds. It returns the first violation found.
func (g *Game) CheckConsistency() error {
	for _, sp := range g.Spaces {
		if sp.Towers < 0 || sp.Towers > board.MaxTowers {
			return fmt.Errorf("space %d has %d towers", sp.Index, sp.Towers)
		}
		if sp.HasFortress && sp.Towers != 0 {
			return fmt.Errorf("space %d has a fortress and %d towers", sp.Index, sp.Towers)
		}
		if sp.OwnerID == "" {
			continue
		}
		owner := g.players[sp.OwnerID]
		if owner == nil {
			return fmt.Errorf("space %d owned by unknown player %s", sp.Index, sp.OwnerID)
		}
		found := false
		for _, idx := range owner.Properties {
			if idx == sp.Index {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("space %d owned by %s but missing from their property set", sp.Index, sp.OwnerID)
		}
	}
	for _, id := range g.playerOrder {
		p := g.players[id]
		if p.Crowns < 0 {
			return fmt.Errorf("player %s has negative balance %d", id, p.Crowns)
		}
		seen := make(map[int]bool, len(p.Properties))
		for _, idx := range p.Properties {
			if seen[idx] {
				return fmt.Errorf("player %s lists space %d twice", id, idx)
			}
			seen[idx] = true
			if idx < 0 || idx >= board.Size {
				return fmt.Errorf("player %s lists out-of-range space %d", id, idx)
			}
			if g.Spaces[idx].OwnerID != id {
				return fmt.Errorf("player %s lists space %d owned by %q", id, idx, g.Spaces[idx].OwnerID)
			}
		}
	}
	return nil
}

// DrainLog returns and clears the human-readable event journal accumulated
// since the previous drain.
func (g *Game) DrainLog() []string {
	out := g.journal
	g.journal = nil
	return out
}

func (g *Game) logf(format string, args ...any) {
	g.journal = append(g.journal, fmt.Sprintf(format, args...))
}
