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

// ChargeSimulator 充电模拟器
// 每个会话最多一个定时器，仅当车辆处于充电中且电量未满时运行。
// 充电标志或电量变化时必须先拆除旧定时器再装载新定时器
type ChargeSimulator struct {
	logger    *zap.Logger
	store     Store
	hub       *ws.Hub
	interval  time.Duration
	increment float64

	mu    sync.Mutex
	stops map[string]chan struct{}
	wg    sync.WaitGroup
}

// NewChargeSimulator 创建充电模拟器
func NewChargeSimulator(cfg *config.Config, logger *zap.Logger, store Store, hub *ws.Hub) *ChargeSimulator {
	return &ChargeSimulator{
		logger:    logger,
		store:     store,
		hub:       hub,
		interval:  cfg.ChargeTickInterval,
		increment: cfg.ChargeTickIncrement,
		stops:     make(map[string]chan struct{}),
	}
}

// shouldRun 是否需要运行定时器
func shouldRun(v models.Vehicle) bool {
	return v.IsCharging && v.BatteryLevel < 100
}

// step 单次充电步进，钳制到 100
func step(v *models.Vehicle, increment float64) {
	if v.BatteryLevel >= 100 {
		// 已满，步进是无操作
		return
	}
	v.BatteryLevel += increment
	v.ClampBattery()
}

// Sync 根据车辆状态装载或拆除会话定时器
func (s *ChargeSimulator) Sync(sess *Session) {
	// 先拆除旧定时器，保证同一会话不会出现重复定时器
	s.Stop(sess.ID)

	sess.mu.Lock()
	run := shouldRun(sess.Vehicle)
	sess.mu.Unlock()
	if !run {
		return
	}

	stopCh := make(chan struct{})
	s.mu.Lock()
	s.stops[sess.ID] = stopCh
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(sess, stopCh)

	s.logger.Debug("Charge timer armed", zap.String("session_id", sess.ID))
}

// run 定时器循环
func (s *ChargeSimulator) run(sess *Session, stopCh chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !s.Tick(sess) {
				s.release(sess.ID, stopCh)
				s.logger.Debug("Charge timer stopped", zap.String("session_id", sess.ID))
				return
			}
		}
	}
}

// Tick 执行一次充电步进并同步状态，返回 false 表示定时器应当停止
func (s *ChargeSimulator) Tick(sess *Session) bool {
	sess.mu.Lock()
	if !shouldRun(sess.Vehicle) {
		sess.mu.Unlock()
		return false
	}
	step(&sess.Vehicle, s.increment)
	vehicle := sess.Vehicle
	sess.mu.Unlock()

	// 存储同步失败不影响模拟继续运行
	if err := s.store.SaveVehicle(context.Background(), sess.ID, vehicle); err != nil {
		s.logger.Warn("Failed to sync vehicle record", zap.String("session_id", sess.ID), zap.Error(err))
	}

	s.hub.BroadcastVehicleUpdate(vehicle)

	return vehicle.BatteryLevel < 100
}

// Stop 拆除会话定时器
func (s *ChargeSimulator) Stop(sessionID string) {
	s.mu.Lock()
	stopCh, ok := s.stops[sessionID]
	if ok {
		delete(s.stops, sessionID)
	}
	s.mu.Unlock()

	if ok {
		close(stopCh)
	}
}

// release 定时器自然停止后清理登记（仅当登记的仍是自己时）
func (s *ChargeSimulator) release(sessionID string, stopCh chan struct{}) {
	s.mu.Lock()
	if s.stops[sessionID] == stopCh {
		delete(s.stops, sessionID)
	}
	s.mu.Unlock()
}

// Running 会话是否有运行中的定时器
func (s *ChargeSimulator) Running(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.stops[sessionID]
	return ok
}

// StopAll 拆除全部定时器并等待退出（服务关闭时调用）
func (s *ChargeSimulator) StopAll() {
	s.mu.Lock()
	for id, stopCh := range s.stops {
		delete(s.stops, id)
		close(stopCh)
	}
	s.mu.Unlock()

	s.wg.Wait()
}
