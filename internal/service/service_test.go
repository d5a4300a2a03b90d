package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aomkarpatil97-boop/power-network-platform/internal/config"
	"github.com/aomkarpatil97-boop/power-network-platform/internal/models"
	"github.com/aomkarpatil97-boop/power-network-platform/pkg/ws"
)

// memoryStore 测试用的内存存储
type memoryStore struct {
	mu       sync.Mutex
	users    map[string]*models.User
	vehicles map[string]models.Vehicle
	bookings map[string][]models.Booking
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    make(map[string]*models.User),
		vehicles: make(map[string]models.Vehicle),
		bookings: make(map[string][]models.Booking),
	}
}

func (m *memoryStore) LoadUser(_ context.Context, sessionID string) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[sessionID]
	if !ok {
		return nil
	}
	userCopy := *u
	return &userCopy
}

func (m *memoryStore) LoadVehicle(_ context.Context, sessionID string, def models.Vehicle) models.Vehicle {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vehicles[sessionID]
	if !ok {
		return def
	}
	return v
}

func (m *memoryStore) LoadBookings(_ context.Context, sessionID string, def []models.Booking) []models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	bs, ok := m.bookings[sessionID]
	if !ok {
		return def
	}
	result := make([]models.Booking, len(bs))
	copy(result, bs)
	return result
}

func (m *memoryStore) SaveUser(_ context.Context, sessionID string, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	userCopy := *user
	m.users[sessionID] = &userCopy
	return nil
}

func (m *memoryStore) SaveVehicle(_ context.Context, sessionID string, v models.Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[sessionID] = v
	return nil
}

func (m *memoryStore) SaveBookings(_ context.Context, sessionID string, bookings []models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := make([]models.Booking, len(bookings))
	copy(saved, bookings)
	m.bookings[sessionID] = saved
	return nil
}

func (m *memoryStore) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, sessionID)
	delete(m.vehicles, sessionID)
	delete(m.bookings, sessionID)
	return nil
}

// testConfig 测试配置，定时器间隔拉长避免测试期间自然步进
func testConfig() *config.Config {
	return &config.Config{
		ChargeTickInterval:  time.Hour,
		ChargeTickIncrement: 0.5,
	}
}

// testDeps 测试依赖集合
type testDeps struct {
	store    *memoryStore
	hub      *ws.Hub
	charger  *ChargeSimulator
	sessions *SessionService
	bookings *BookingService
}

func newTestDeps() *testDeps {
	cfg := testConfig()
	logger := zap.NewNop()
	store := newMemoryStore()
	hub := ws.NewHub(logger)
	go hub.Run()
	charger := NewChargeSimulator(cfg, logger, store, hub)

	return &testDeps{
		store:    store,
		hub:      hub,
		charger:  charger,
		sessions: NewSessionService(cfg, logger, store, hub, charger),
		bookings: NewBookingService(logger, store, hub, charger),
	}
}
