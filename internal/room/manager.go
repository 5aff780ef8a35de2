package room

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// codeAlphabet omits the characters players confuse when reading a room
// code aloud (0/O, 1/I).
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 6

// Manager tracks live rooms by id and by join code.
type Manager struct {
	mu     sync.RWMutex
	rooms  map[string]*Room
	byCode map[string]*Room
	logger *zap.Logger
}

// NewManager creates an empty room manager.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		rooms:  make(map[string]*Room),
		byCode: make(map[string]*Room),
		logger: logger,
	}
}

// CreateRoom creates a lobby-phase room with a fresh join code.
func (m *Manager) CreateRoom(opts Options) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	code := m.newCodeLocked()
	r := New(uuid.New().String(), code, opts, nil, m.logger)
	m.rooms[r.ID] = r
	m.byCode[code] = r

	m.logger.Info("room created",
		zap.String("room_id", r.ID),
		zap.String("room_code", code),
	)
	return r
}

// GetRoom retrieves a room by id.
func (m *Manager) GetRoom(id string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// GetRoomByCode retrieves a room by its join code, case-insensitively.
func (m *Manager) GetRoomByCode(code string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.byCode[strings.ToUpper(code)]
	return r, ok
}

// RemoveRoom closes a room and forgets it.
func (m *Manager) RemoveRoom(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[id]
	if !ok {
		return
	}
	r.Close()
	delete(m.rooms, id)
	delete(m.byCode, r.Code)
	m.logger.Info("room removed", zap.String("room_id", id), zap.String("room_code", r.Code))
}

// RoomCount returns the number of live rooms.
func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

func (m *Manager) newCodeLocked() string {
	for {
		var b strings.Builder
		for i := 0; i < codeLength; i++ {
			b.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
		}
		code := b.String()
		if _, taken := m.byCode[code]; !taken {
			return code
		}
	}
}

// CloseAll shuts every room down.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.rooms {
		r.Close()
		delete(m.rooms, id)
		delete(m.byCode, r.Code)
	}
}
