// Package room hosts game rooms: it serializes player intents onto the
// rules engine, runs the auction countdown, and fans events out to the
// transport layer.
package room

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/MrJoeKr/arcane-estates/internal/board"
	"github.com/MrJoeKr/arcane-estates/internal/game"
)

// EventType discriminates the messages a room emits.
type EventType string

const (
	EventGameLog   EventType = "game_log"
	EventCardDrawn EventType = "card_drawn"
	EventState     EventType = "state"
)

// Event is one outbound room message. Exactly one payload field is set,
// according to Type.
type Event struct {
	Type    EventType             `json:"type"`
	Message string                `json:"message,omitempty"`
	Card    *board.CardDefinition `json:"card,omitempty"`
	State   *StateView            `json:"state,omitempty"`
}

// StateView is the full room state as broadcast to clients.
type StateView struct {
	RoomCode string `json:"roomCode"`
	HostID   string `json:"hostId"`
	game.Snapshot
}

// Options configures a room beyond the engine defaults.
type Options struct {
	Game game.Config
	// AuctionTickInterval is the wall-clock spacing of auction countdown
	// ticks. Zero means one second.
	AuctionTickInterval time.Duration

	// DiceRoller, CardPicker and Shuffler override the engine's random
	// sources. Nil keeps the defaults. Intended for tests.
	DiceRoller func() (die1, die2 int)
	CardPicker func(deck []board.CardDefinition) board.CardDefinition
	Shuffler   func(n int, swap func(i, j int))
}

// Room owns one game and the goroutines around it. All engine access goes
// through the room mutex; the auction timer is the only internal writer.
type Room struct {
	ID   string
	Code string

	mu          sync.Mutex
	hostID      string
	g           *game.Game
	auctionStop chan struct{}
	closed      bool

	tickEvery time.Duration
	emit      func(Event)
	logger    *zap.Logger
}

// New creates a lobby-phase room. The emit callback receives every
// outbound event; it is called with the room mutex held, so it must not
// call back into the room.
func New(id, code string, opts Options, emit func(Event), logger *zap.Logger) *Room {
	tick := opts.AuctionTickInterval
	if tick <= 0 {
		tick = time.Second
	}
	if emit == nil {
		emit = func(Event) {}
	}
	g := game.New(opts.Game)
	if opts.DiceRoller != nil {
		g.SetDiceRoller(opts.DiceRoller)
	}
	if opts.CardPicker != nil {
		g.SetCardPicker(opts.CardPicker)
	}
	if opts.Shuffler != nil {
		g.SetShuffler(opts.Shuffler)
	}
	return &Room{
		ID:        id,
		Code:      code,
		g:         g,
		tickEvery: tick,
		emit:      emit,
		logger:    logger.With(zap.String("room_code", code)),
	}
}

// SetEmit replaces the event sink. The transport attaches itself here
// after the first client connects.
func (r *Room) SetEmit(emit func(Event)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if emit == nil {
		emit = func(Event) {}
	}
	r.emit = emit
}

// Close stops the auction timer and detaches the event sink.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.stopAuctionTimerLocked()
	r.emit = func(Event) {}
}

// HostID returns the current host.
func (r *Room) HostID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hostID
}

// Snapshot returns the broadcast view of the room.
func (r *Room) Snapshot() StateView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateViewLocked()
}

func (r *Room) stateViewLocked() StateView {
	return StateView{
		RoomCode: r.Code,
		HostID:   r.hostID,
		Snapshot: r.g.Snapshot(),
	}
}

// flushLocked drains the engine journal into game_log events and then
// broadcasts the state. Every mutating intent ends here.
func (r *Room) flushLocked() {
	for _, line := range r.g.DrainLog() {
		r.emit(Event{Type: EventGameLog, Message: line})
	}
	view := r.stateViewLocked()
	r.emit(Event{Type: EventState, State: &view})

	if err := r.g.CheckConsistency(); err != nil {
		r.logger.Error("state consistency violation", zap.Error(err))
	}
}

// Join adds a player in the lobby, or reconnects a known player of a
// running game. The first player to join becomes host. Tokens are
// auto-assigned from the unclaimed pool.
func (r *Room) Join(playerID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p := r.g.Player(playerID); p != nil {
		p.Connected = true
		r.logger.Info("player reconnected", zap.String("player_id", playerID))
		r.flushLocked()
		return nil
	}

	if name == "" {
		name = fmt.Sprintf("Wizard %d", len(r.g.Players())+1)
	}
	token := r.freeTokenLocked()
	p := r.g.AddPlayer(playerID, name, token)
	if p == nil {
		return fmt.Errorf("cannot join room %s: game started or room full", r.Code)
	}
	if len(r.g.Players()) == 1 {
		r.hostID = playerID
	}
	r.logger.Info("player joined",
		zap.String("player_id", playerID),
		zap.String("name", name),
		zap.String("token", token),
	)
	r.emit(Event{Type: EventGameLog, Message: fmt.Sprintf("%s has joined the game.", name)})
	r.flushLocked()
	return nil
}

func (r *Room) freeTokenLocked() string {
	taken := make(map[string]bool)
	for _, p := range r.g.Players() {
		taken[p.Token] = true
	}
	for _, t := range board.PlayerTokens {
		if !taken[t] {
			return t
		}
	}
	return board.PlayerTokens[0]
}

// Leave removes a lobby player, or marks a playing player disconnected.
// A disconnected current player has their turn ended for them.
func (r *Room) Leave(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.g.Player(playerID)
	if p == nil {
		return
	}

	if r.g.Phase == game.PhaseLobby {
		name := p.Name
		r.g.RemovePlayer(playerID)
		if r.hostID == playerID {
			r.hostID = ""
			if remaining := r.g.Players(); len(remaining) > 0 {
				r.hostID = remaining[0].ID
			}
		}
		r.logger.Info("player left lobby", zap.String("player_id", playerID))
		r.emit(Event{Type: EventGameLog, Message: fmt.Sprintf("%s has left the game.", name)})
		r.flushLocked()
		return
	}

	p.Connected = false
	r.emit(Event{Type: EventGameLog, Message: fmt.Sprintf("%s has disconnected.", p.Name)})
	if r.g.CurrentPlayerID == playerID && r.g.Phase == game.PhasePlaying {
		r.g.AdvanceTurn()
		r.announceTurnLocked()
	}
	r.flushLocked()
}

// SelectToken changes the player's token during the lobby when no other
// player holds it.
func (r *Room) SelectToken(playerID, token string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.g.Phase != game.PhaseLobby {
		return
	}
	p := r.g.Player(playerID)
	if p == nil {
		return
	}
	for _, other := range r.g.Players() {
		if other.ID != playerID && other.Token == token {
			return
		}
	}
	valid := false
	for _, t := range board.PlayerTokens {
		if t == token {
			valid = true
			break
		}
	}
	if !valid {
		return
	}
	p.Token = token
	r.flushLocked()
}

// StartGame begins play. Host only.
func (r *Room) StartGame(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if playerID != r.hostID {
		return fmt.Errorf("only the host can start the game")
	}
	if err := r.g.Start(); err != nil {
		return err
	}
	r.logger.Info("game started", zap.Int("players", len(r.g.Players())))
	r.emit(Event{Type: EventGameLog, Message: "The game has begun! May the best wizard win!"})
	r.announceTurnLocked()
	r.flushLocked()
	return nil
}

func (r *Room) announceTurnLocked() {
	if p := r.g.Player(r.g.CurrentPlayerID); p != nil {
		r.emit(Event{Type: EventGameLog, Message: fmt.Sprintf("It's %s's turn.", p.Name)})
	}
}

// RollDice resolves the current player's roll. A card drawn during the
// landing is broadcast separately for the reveal.
func (r *Room) RollDice(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.g.Phase != game.PhasePlaying || playerID != r.g.CurrentPlayerID || r.g.TurnPhase != game.TurnRoll {
		return
	}
	res := r.g.RollDice(playerID)
	if res.Card != nil {
		r.emit(Event{Type: EventCardDrawn, Card: res.Card})
	}
	r.flushLocked()
}

// BuyProperty purchases the space the current player stands on.
func (r *Room) BuyProperty(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if playerID != r.g.CurrentPlayerID || r.g.TurnPhase != game.TurnPostRoll {
		return
	}
	p := r.g.Player(playerID)
	if p == nil || !r.g.CanBuy(playerID, p.Position) {
		return
	}
	r.g.Buy(playerID, p.Position)
	r.g.TurnPhase = game.TurnAction
	r.flushLocked()
}

// DeclineProperty refuses the purchase and opens an auction for the space.
func (r *Room) DeclineProperty(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if playerID != r.g.CurrentPlayerID || r.g.TurnPhase != game.TurnPostRoll {
		return
	}
	p := r.g.Player(playerID)
	if p == nil {
		return
	}
	r.emit(Event{Type: EventGameLog, Message: fmt.Sprintf("%s declined the property. Auction begins!", p.Name)})
	r.g.StartAuction(p.Position)
	r.startAuctionTimerLocked()
	r.flushLocked()
}

// BuildTower erects a tower, or the fortress on the fifth build.
func (r *Room) BuildTower(playerID string, spaceIndex int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if playerID != r.g.CurrentPlayerID {
		return
	}
	if r.g.TurnPhase != game.TurnAction && r.g.TurnPhase != game.TurnPostRoll {
		return
	}
	if !r.g.CanBuildTower(playerID, spaceIndex) {
		return
	}
	r.g.BuildTower(playerID, spaceIndex)
	r.flushLocked()
}

// SellTower sells one tower (or the fortress) back at half price.
func (r *Room) SellTower(playerID string, spaceIndex int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if playerID != r.g.CurrentPlayerID {
		return
	}
	if r.g.SellTower(playerID, spaceIndex) {
		r.flushLocked()
	}
}

// Mortgage mortgages an unimproved property.
func (r *Room) Mortgage(playerID string, spaceIndex int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if playerID != r.g.CurrentPlayerID {
		return
	}
	if r.g.Mortgage(playerID, spaceIndex) {
		r.flushLocked()
	}
}

// Unmortgage lifts a mortgage at 110 percent of its value.
func (r *Room) Unmortgage(playerID string, spaceIndex int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if playerID != r.g.CurrentPlayerID {
		return
	}
	if r.g.Unmortgage(playerID, spaceIndex) {
		r.flushLocked()
	}
}

// ProposeTrade installs a trade offer from the current player.
func (r *Room) ProposeTrade(playerID string, offer game.TradeOffer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if playerID != r.g.CurrentPlayerID {
		return
	}
	if r.g.ProposeTrade(playerID, offer) {
		r.flushLocked()
	}
}

// AcceptTrade executes the pending offer. Only its target may accept.
func (r *Room) AcceptTrade(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.g.Trade()
	if t == nil || t.ToID != playerID {
		return
	}
	r.g.AcceptTrade()
	r.flushLocked()
}

// RejectTrade discards the pending offer. Only its target may reject.
func (r *Room) RejectTrade(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.g.Trade()
	if t == nil || t.ToID != playerID {
		return
	}
	r.g.RejectTrade()
	r.flushLocked()
}

// PlaceBid submits an auction bid.
func (r *Room) PlaceBid(playerID string, amount int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.g.PlaceBid(playerID, amount) {
		r.flushLocked()
	}
}

// PassAuction records an auction pass; the last pass closes the auction.
func (r *Room) PassAuction(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := r.g.Auction()
	if a == nil || !a.Active {
		return
	}
	if r.g.PassAuction(playerID) {
		r.stopAuctionTimerLocked()
	}
	r.flushLocked()
}

// PayJailFine buys the current player out of the Dungeon.
func (r *Room) PayJailFine(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if playerID != r.g.CurrentPlayerID {
		return
	}
	if r.g.PayJailFine(playerID) {
		r.g.TurnPhase = game.TurnRoll
		r.flushLocked()
	}
}

// UseEscapeCard spends an Escape Scroll to leave the Dungeon.
func (r *Room) UseEscapeCard(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if playerID != r.g.CurrentPlayerID {
		return
	}
	if r.g.UseEscapeCard(playerID) {
		r.g.TurnPhase = game.TurnRoll
		r.flushLocked()
	}
}

// EndTurn finishes the current player's turn. Win detection runs before
// rotation so a game with one player left finishes here.
func (r *Room) EndTurn(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if playerID != r.g.CurrentPlayerID {
		return
	}
	if r.g.TurnPhase != game.TurnAction && r.g.TurnPhase != game.TurnEndTurn {
		return
	}

	if winnerID, finished := r.g.CheckWinner(); finished {
		if winner := r.g.Player(winnerID); winner != nil {
			r.emit(Event{Type: EventGameLog, Message: fmt.Sprintf("%s wins the game! All hail the Arcane Estate master!", winner.Name)})
		}
		r.logger.Info("game finished", zap.String("winner_id", winnerID))
		r.flushLocked()
		return
	}

	r.g.AdvanceTurn()
	r.announceTurnLocked()
	r.flushLocked()
}

// startAuctionTimerLocked launches the countdown goroutine. Any previous
// timer is stopped first.
func (r *Room) startAuctionTimerLocked() {
	r.stopAuctionTimerLocked()
	if r.closed {
		return
	}
	stop := make(chan struct{})
	r.auctionStop = stop

	go func() {
		ticker := time.NewTicker(r.tickEvery)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				r.mu.Lock()
				ended := r.g.AuctionTick()
				if ended || !r.g.Auction().Active {
					if r.auctionStop == stop {
						r.auctionStop = nil
					}
					r.flushLocked()
					r.mu.Unlock()
					return
				}
				r.flushLocked()
				r.mu.Unlock()
			}
		}
	}()
}

func (r *Room) stopAuctionTimerLocked() {
	if r.auctionStop != nil {
		close(r.auctionStop)
		r.auctionStop = nil
	}
}
