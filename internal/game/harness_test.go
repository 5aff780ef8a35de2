package game

import (
	"fmt"
	"testing"

	"github.com/MrJoeKr/arcane-estates/internal/board"
	"github.com/stretchr/testify/require"
)

// newTestGame builds a started game with the given players. The rotation
// shuffle is disabled so turn order equals join order, and player ids are
// p1, p2, ... in join order.
func newTestGame(t *testing.T, names ...string) *Game {
	t.Helper()
	g := New(Config{})
	g.shuffle = func(n int, swap func(i, j int)) {}
	for i, name := range names {
		id := fmt.Sprintf("p%d", i+1)
		require.NotNil(t, g.AddPlayer(id, name, board.PlayerTokens[i]))
	}
	require.NoError(t, g.Start())
	return g
}

// giveSpace assigns ownership of a space directly, bypassing purchase.
func giveSpace(t *testing.T, g *Game, playerID string, indices ...int) {
	t.Helper()
	p := g.Player(playerID)
	require.NotNil(t, p)
	for _, idx := range indices {
		require.Empty(t, g.Spaces[idx].OwnerID, "space %d already owned", idx)
		g.Spaces[idx].OwnerID = playerID
		p.addProperty(idx)
	}
}

// fixedDice returns a roller that always produces the same pair.
func fixedDice(die1, die2 int) func() (int, int) {
	return func() (int, int) { return die1, die2 }
}

// diceScript returns a roller that replays the given pairs in order and
// fails the test if it runs dry.
func diceScript(t *testing.T, pairs ...[2]int) func() (int, int) {
	t.Helper()
	i := 0
	return func() (int, int) {
		if i >= len(pairs) {
			t.Fatalf("dice script exhausted after %d rolls", len(pairs))
		}
		d := pairs[i]
		i++
		return d[0], d[1]
	}
}

// requireConsistent asserts the ownership invariant after a mutation.
func requireConsistent(t *testing.T, g *Game) {
	t.Helper()
	require.NoError(t, g.CheckConsistency())
}
