package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/MrJoeKr/arcane-estates/internal/config"
	"github.com/MrJoeKr/arcane-estates/internal/room"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Server.SessionSecret = "test-secret"
	logger := zaptest.NewLogger(t)
	s := New(cfg, room.NewManager(logger), logger)
	t.Cleanup(func() {
		s.mu.Lock()
		for id, h := range s.hubs {
			h.stop()
			delete(s.hubs, id)
		}
		s.mu.Unlock()
	})
	return s
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestCreateSession(t *testing.T) {
	s := newTestServer(t)

	w := postJSON(t, s.Router(), "/api/session", sessionRequest{Name: "Alice"})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp sessionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.PlayerID)
	assert.Equal(t, "Alice", resp.Name)

	claims, err := s.issuer.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.PlayerID, claims.PlayerID)
}

func TestCreateSessionBadBody(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader("{broken"))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAndFetchRoom(t *testing.T) {
	s := newTestServer(t)

	w := postJSON(t, s.Router(), "/api/rooms", struct{}{})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp roomResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Code, 6)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/"+resp.Code, nil)
	got := httptest.NewRecorder()
	s.Router().ServeHTTP(got, req)
	require.Equal(t, http.StatusOK, got.Code)

	var view room.StateView
	require.NoError(t, json.NewDecoder(got.Body).Decode(&view))
	assert.Equal(t, resp.Code, view.RoomCode)
	assert.Equal(t, "lobby", view.Phase)
	assert.Len(t, view.Spaces, 40)
}

func TestGetRoomNotFound(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/rooms/NOPE22", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebSocketRequiresValidToken(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	w := postJSON(t, s.Router(), "/api/rooms", struct{}{})
	var rm roomResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&rm))

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/" + rm.Code + "?token=garbage"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebSocketJoinReceivesState(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	w := postJSON(t, s.Router(), "/api/rooms", struct{}{})
	var rm roomResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&rm))

	sw := postJSON(t, s.Router(), "/api/session", sessionRequest{Name: "Alice"})
	var sess sessionResponse
	require.NoError(t, json.NewDecoder(sw.Body).Decode(&sess))

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/" + rm.Code + "?token=" + sess.Token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// The join broadcasts log and state events; read until the first
	// state frame arrives.
	deadline := 20
	for i := 0; i < deadline; i++ {
		var ev room.Event
		require.NoError(t, conn.ReadJSON(&ev))
		if ev.Type == room.EventState {
			require.NotNil(t, ev.State)
			require.Len(t, ev.State.Players, 1)
			assert.Equal(t, sess.PlayerID, ev.State.Players[0].ID)
			assert.Equal(t, sess.PlayerID, ev.State.HostID)
			return
		}
	}
	t.Fatalf("no state event within %d frames", deadline)
}

func TestWebSocketUnknownRoom(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/ZZZZZZ?token=x"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
