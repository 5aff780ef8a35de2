package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	ti := NewTokenIssuer([]byte("test-secret"), time.Hour)

	token, playerID, err := ti.Issue("Alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, playerID)

	claims, err := ti.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, playerID, claims.PlayerID)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, playerID, claims.Subject)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	ti := NewTokenIssuer([]byte("secret-a"), time.Hour)
	other := NewTokenIssuer([]byte("secret-b"), time.Hour)

	token, _, err := ti.Issue("Alice")
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	ti := NewTokenIssuer([]byte("test-secret"), time.Hour)
	_, err := ti.Parse("not-a-token")
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	ti := NewTokenIssuer([]byte("test-secret"), time.Nanosecond)

	token, _, err := ti.Issue("Alice")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = ti.Parse(token)
	assert.Error(t, err)
}

func TestIssueGeneratesDistinctIdentities(t *testing.T) {
	ti := NewTokenIssuer([]byte("test-secret"), time.Hour)

	_, id1, err := ti.Issue("Alice")
	require.NoError(t, err)
	_, id2, err := ti.Issue("Alice")
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
}
