// Package server is the transport layer: HTTP endpoints for session and
// room management plus the websocket endpoint game clients speak over.
package server

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/MrJoeKr/arcane-estates/internal/config"
	"github.com/MrJoeKr/arcane-estates/internal/game"
	"github.com/MrJoeKr/arcane-estates/internal/room"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Game clients are served from a separate origin during development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server wires the room manager to HTTP and websocket transport.
type Server struct {
	cfg    config.ServerConfig
	rooms  *room.Manager
	opts   room.Options
	issuer *TokenIssuer
	logger *zap.Logger

	mu   sync.Mutex
	hubs map[string]*Hub // keyed by room id

	httpServer *http.Server
}

// New creates a server. When no session secret is configured a random one
// is generated, which invalidates outstanding tokens across restarts.
func New(cfg *config.Config, rooms *room.Manager, logger *zap.Logger) *Server {
	secret := []byte(cfg.Server.SessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		rand.Read(secret)
		logger.Warn("session secret not configured, generated an ephemeral one")
	}
	s := &Server{
		cfg:    cfg.Server,
		rooms:  rooms,
		opts:   room.Options{Game: roomGameConfig(cfg)},
		issuer: NewTokenIssuer(secret, cfg.Server.SessionTTL),
		logger: logger,
		hubs:   make(map[string]*Hub),
	}
	s.httpServer = &http.Server{
		Addr:    cfg.Server.Address,
		Handler: s.Router(),
	}
	return s
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/session", s.handleCreateSession).Methods(http.MethodPost)
	r.HandleFunc("/api/rooms", s.handleCreateRoom).Methods(http.MethodPost)
	r.HandleFunc("/api/rooms/{code}", s.handleGetRoom).Methods(http.MethodGet)
	r.HandleFunc("/ws/{code}", s.handleWebSocket)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	return r
}

// ListenAndServe blocks serving HTTP until the server is shut down.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", zap.String("address", s.cfg.Address))
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains HTTP connections and stops every hub.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for id, h := range s.hubs {
		h.stop()
		delete(s.hubs, id)
	}
	s.mu.Unlock()
	return s.httpServer.Shutdown(ctx)
}

type sessionRequest struct {
	Name string `json:"name"`
}

type sessionResponse struct {
	Token    string `json:"token"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token, playerID, err := s.issuer.Issue(req.Name)
	if err != nil {
		s.logger.Error("failed to issue session token", zap.Error(err))
		httpError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{Token: token, PlayerID: playerID, Name: req.Name})
}

type roomResponse struct {
	RoomID string `json:"roomId"`
	Code   string `json:"code"`
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	rm := s.rooms.CreateRoom(s.opts)
	writeJSON(w, http.StatusCreated, roomResponse{RoomID: rm.ID, Code: rm.Code})
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	rm, ok := s.rooms.GetRoomByCode(code)
	if !ok {
		httpError(w, http.StatusNotFound, "room not found")
		return
	}
	writeJSON(w, http.StatusOK, rm.Snapshot())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "rooms": s.rooms.RoomCount()})
}

// handleWebSocket authenticates the session token, joins the player to the
// room, and starts the connection pumps.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	rm, ok := s.rooms.GetRoomByCode(code)
	if !ok {
		httpError(w, http.StatusNotFound, "room not found")
		return
	}

	claims, err := s.issuer.Parse(r.URL.Query().Get("token"))
	if err != nil {
		httpError(w, http.StatusUnauthorized, "invalid session token")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	hub := s.hubFor(rm)
	if err := rm.Join(claims.PlayerID, claims.Name); err != nil {
		s.logger.Info("join rejected",
			zap.String("room_code", code),
			zap.String("player_id", claims.PlayerID),
			zap.Error(err),
		)
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
		conn.Close()
		return
	}

	client := &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		playerID: claims.PlayerID,
	}
	hub.register <- client

	go client.writePump()
	go client.readPump()

	// Late joiners need the current state without waiting for the next
	// mutation.
	if data, err := json.Marshal(stateEvent(rm)); err == nil {
		client.send <- data
	}
}

func stateEvent(rm *room.Room) room.Event {
	view := rm.Snapshot()
	return room.Event{Type: room.EventState, State: &view}
}

// hubFor returns the room's hub, creating and starting it on first use.
func (s *Server) hubFor(rm *room.Room) *Hub {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.hubs[rm.ID]; ok {
		return h
	}
	h := newHub(rm, s.logger)
	s.hubs[rm.ID] = h
	go h.run()
	return h
}

func roomGameConfig(cfg *config.Config) game.Config {
	return game.Config{AuctionSeconds: cfg.Game.AuctionSeconds}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
