package room

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/MrJoeKr/arcane-estates/internal/board"
	"github.com/MrJoeKr/arcane-estates/internal/game"
)

// eventRecorder collects room events under its own lock; the auction timer
// emits from a separate goroutine.
type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (rec *eventRecorder) emit(e Event) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.events = append(rec.events, e)
}

func (rec *eventRecorder) logs() []string {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	var out []string
	for _, e := range rec.events {
		if e.Type == EventGameLog {
			out = append(out, e.Message)
		}
	}
	return out
}

func (rec *eventRecorder) cards() []*board.CardDefinition {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	var out []*board.CardDefinition
	for _, e := range rec.events {
		if e.Type == EventCardDrawn {
			out = append(out, e.Card)
		}
	}
	return out
}

func newTestRoom(t *testing.T, opts Options) (*Room, *eventRecorder) {
	t.Helper()
	rec := &eventRecorder{}
	r := New("room-1", "ABC234", opts, rec.emit, zaptest.NewLogger(t))
	t.Cleanup(r.Close)
	return r, rec
}

// startedRoom joins the named players and starts the game with join-order
// rotation.
func startedRoom(t *testing.T, opts Options, names ...string) (*Room, *eventRecorder) {
	t.Helper()
	r, rec := newTestRoom(t, opts)
	r.g.SetShuffler(func(n int, swap func(i, j int)) {})
	for i, name := range names {
		require.NoError(t, r.Join(playerID(i), name))
	}
	require.NoError(t, r.StartGame("p0"))
	return r, rec
}

func playerID(i int) string {
	return fmt.Sprintf("p%d", i)
}

func TestJoinAssignsTokenAndHost(t *testing.T) {
	r, rec := newTestRoom(t, Options{})

	require.NoError(t, r.Join("p0", "Alice"))
	require.NoError(t, r.Join("p1", "Bob"))

	assert.Equal(t, "p0", r.HostID())
	view := r.Snapshot()
	require.Len(t, view.Players, 2)
	assert.Equal(t, board.PlayerTokens[0], view.Players[0].Token)
	assert.Equal(t, board.PlayerTokens[1], view.Players[1].Token)
	assert.Contains(t, rec.logs(), "Alice has joined the game.")
}

func TestJoinDefaultName(t *testing.T) {
	r, _ := newTestRoom(t, Options{})
	require.NoError(t, r.Join("p0", ""))
	assert.Equal(t, "Wizard 1", r.Snapshot().Players[0].Name)
}

func TestJoinRejectedWhenFull(t *testing.T) {
	r, _ := newTestRoom(t, Options{})
	for i := 0; i < board.MaxPlayers; i++ {
		require.NoError(t, r.Join(playerID(i), "Wizard"))
	}
	assert.Error(t, r.Join("p9", "Latecomer"))
}

func TestSelectTokenConflict(t *testing.T) {
	r, _ := newTestRoom(t, Options{})
	require.NoError(t, r.Join("p0", "Alice"))
	require.NoError(t, r.Join("p1", "Bob"))

	r.SelectToken("p1", board.PlayerTokens[0])
	assert.Equal(t, board.PlayerTokens[1], r.Snapshot().Players[1].Token, "taken token refused")

	r.SelectToken("p1", board.PlayerTokens[3])
	assert.Equal(t, board.PlayerTokens[3], r.Snapshot().Players[1].Token)

	r.SelectToken("p0", "not-a-token")
	assert.Equal(t, board.PlayerTokens[0], r.Snapshot().Players[0].Token)
}

func TestStartGameHostOnly(t *testing.T) {
	r, _ := newTestRoom(t, Options{})
	require.NoError(t, r.Join("p0", "Alice"))
	require.NoError(t, r.Join("p1", "Bob"))

	assert.Error(t, r.StartGame("p1"))
	require.NoError(t, r.StartGame("p0"))
	assert.Equal(t, "playing", r.Snapshot().Phase)
	assert.Error(t, r.StartGame("p0"), "already started")
}

func TestStartGameNeedsTwoPlayers(t *testing.T) {
	r, _ := newTestRoom(t, Options{})
	require.NoError(t, r.Join("p0", "Alice"))
	assert.Error(t, r.StartGame("p0"))
}

func TestLeaveLobbyReassignsHost(t *testing.T) {
	r, _ := newTestRoom(t, Options{})
	require.NoError(t, r.Join("p0", "Alice"))
	require.NoError(t, r.Join("p1", "Bob"))

	r.Leave("p0")

	assert.Equal(t, "p1", r.HostID())
	assert.Len(t, r.Snapshot().Players, 1)
}

func TestDisconnectDuringGameEndsTurn(t *testing.T) {
	r, rec := startedRoom(t, Options{}, "Alice", "Bob")

	r.Leave("p0")

	view := r.Snapshot()
	require.Len(t, view.Players, 2, "playing players are kept")
	assert.False(t, view.Players[0].Connected)
	assert.Equal(t, "p1", view.CurrentPlayerID)
	assert.Contains(t, rec.logs(), "Alice has disconnected.")
}

func TestReconnect(t *testing.T) {
	r, _ := startedRoom(t, Options{}, "Alice", "Bob")
	r.Leave("p1")
	require.NoError(t, r.Join("p1", ""))
	assert.True(t, r.Snapshot().Players[1].Connected)
}

func TestRollAndBuyFlow(t *testing.T) {
	r, rec := startedRoom(t, Options{}, "Alice", "Bob")
	r.g.SetDiceRoller(func() (int, int) { return 2, 1 })

	r.RollDice("p0")
	require.Equal(t, "postRoll", r.Snapshot().TurnPhase)

	r.RollDice("p0")    // wrong phase, ignored
	r.BuyProperty("p1") // not their turn, ignored
	r.BuyProperty("p0")

	view := r.Snapshot()
	assert.Equal(t, "p0", view.Spaces[3].OwnerID)
	assert.Equal(t, "action", view.TurnPhase)

	r.EndTurn("p0")
	assert.Equal(t, "p1", r.Snapshot().CurrentPlayerID)
	assert.Contains(t, rec.logs(), "It's Bob's turn.")
}

func TestCardDrawBroadcastsReveal(t *testing.T) {
	r, rec := startedRoom(t, Options{}, "Alice", "Bob")
	r.g.SetDiceRoller(func() (int, int) { return 1, 1 }) // space 2, Guild Card
	r.g.SetCardPicker(func(deck []board.CardDefinition) board.CardDefinition {
		return board.CardDefinition{ID: 99, Deck: board.DeckGuild, Text: "test", Effect: board.Effect{Kind: board.EffectCollect, Amount: 5}}
	})

	r.RollDice("p0")

	cards := rec.cards()
	require.Len(t, cards, 1)
	assert.Equal(t, 99, cards[0].ID)
}

func TestDeclineStartsTimedAuction(t *testing.T) {
	r, _ := startedRoom(t, Options{
		Game:                game.Config{AuctionSeconds: 2},
		AuctionTickInterval: 5 * time.Millisecond,
	}, "Alice", "Bob")
	r.g.SetDiceRoller(func() (int, int) { return 2, 1 })

	r.RollDice("p0")
	r.DeclineProperty("p0")
	require.True(t, r.Snapshot().Auction.Active)

	r.PlaceBid("p1", 40)

	assert.Eventually(t, func() bool {
		view := r.Snapshot()
		return !view.Auction.Active && view.Spaces[3].OwnerID == "p1"
	}, time.Second, 5*time.Millisecond, "timer should close the auction and award the space")
	assert.Equal(t, "action", r.Snapshot().TurnPhase)
}

func TestAuctionEndsWhenAllPass(t *testing.T) {
	r, _ := startedRoom(t, Options{}, "Alice", "Bob")
	r.g.SetDiceRoller(func() (int, int) { return 2, 1 })

	r.RollDice("p0")
	r.DeclineProperty("p0")

	r.PassAuction("p0")
	r.PassAuction("p1")

	view := r.Snapshot()
	assert.False(t, view.Auction.Active)
	assert.Empty(t, view.Spaces[3].OwnerID)
}

func TestTradeTargetGuards(t *testing.T) {
	r, _ := startedRoom(t, Options{}, "Alice", "Bob")

	r.ProposeTrade("p0", game.TradeOffer{ToID: "p1", OfferCrowns: 100})
	require.NotNil(t, r.Snapshot().Trade)

	r.AcceptTrade("p0") // proposer cannot accept their own offer
	require.NotNil(t, r.Snapshot().Trade)

	r.AcceptTrade("p1")
	assert.Nil(t, r.Snapshot().Trade)

	view := r.Snapshot()
	assert.Equal(t, board.StartingCrowns-100, view.Players[0].Crowns)
	assert.Equal(t, board.StartingCrowns+100, view.Players[1].Crowns)
}

func TestJailFineResetsRollPhase(t *testing.T) {
	r, _ := startedRoom(t, Options{}, "Alice", "Bob")
	r.g.SendToJail("p0")
	r.g.TurnPhase = game.TurnEndTurn
	r.g.DrainLog()

	r.PayJailFine("p0")

	view := r.Snapshot()
	assert.False(t, view.Players[0].InJail)
	assert.Equal(t, "roll", view.TurnPhase)
	assert.Equal(t, board.StartingCrowns-board.JailFine, view.Players[0].Crowns)
}

func TestEndTurnDetectsWinner(t *testing.T) {
	r, rec := startedRoom(t, Options{}, "Alice", "Bob")
	r.g.Player("p1").Bankrupt = true
	r.g.TurnPhase = game.TurnAction

	r.EndTurn("p0")

	view := r.Snapshot()
	assert.Equal(t, "finished", view.Phase)
	assert.Equal(t, "p0", view.WinnerID)
	assert.Contains(t, rec.logs(), "Alice wins the game! All hail the Arcane Estate master!")
}

func TestManagerRoomLifecycle(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t))

	r := m.CreateRoom(Options{})
	assert.Len(t, r.Code, codeLength)
	for _, c := range r.Code {
		assert.Contains(t, codeAlphabet, string(c))
	}

	got, ok := m.GetRoom(r.ID)
	require.True(t, ok)
	assert.Same(t, r, got)

	byCode, ok := m.GetRoomByCode(r.Code)
	require.True(t, ok)
	assert.Same(t, r, byCode)

	_, ok = m.GetRoomByCode("ZZZZZZ")
	assert.False(t, ok)

	m.RemoveRoom(r.ID)
	assert.Zero(t, m.RoomCount())
	_, ok = m.GetRoomByCode(r.Code)
	assert.False(t, ok)
}

func TestManagerCodeLookupIsCaseInsensitive(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t))
	r := m.CreateRoom(Options{})

	_, ok := m.GetRoomByCode(strings.ToLower(r.Code))
	require.True(t, ok)
}
