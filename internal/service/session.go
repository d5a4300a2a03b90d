package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aomkarpatil97-boop/power-network-platform/internal/config"
	"github.com/aomkarpatil97-boop/power-network-platform/internal/models"
	"github.com/aomkarpatil97-boop/power-network-platform/internal/view"
	"github.com/aomkarpatil97-boop/power-network-platform/pkg/ws"
)

// Session 会话上下文
// 内存中的用户/车辆/预约列表是权威状态，存储层只做镜像
type Session struct {
	ID string

	mu       sync.Mutex
	User     *models.User
	Vehicle  models.Vehicle
	Bookings []models.Booking
	View     view.View

	askInFlight bool // 助手请求进行中标记（同会话同时最多一个请求）
}

// Snapshot 会话状态快照（返回副本，调用方可安全读取）
type Snapshot struct {
	User     *models.User     `json:"user"`
	Vehicle  models.Vehicle   `json:"vehicle"`
	Bookings []models.Booking `json:"bookings"`
	View     view.View        `json:"view"`
}

// Snapshot 获取会话状态快照
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	userCopy := *s.User
	bookings := make([]models.Booking, len(s.Bookings))
	copy(bookings, s.Bookings)

	return Snapshot{
		User:     &userCopy,
		Vehicle:  s.Vehicle,
		Bookings: bookings,
		View:     s.View,
	}
}

// TryBeginAsk 标记助手请求开始，已有进行中请求时返回 false
func (s *Session) TryBeginAsk() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.askInFlight {
		return false
	}
	s.askInFlight = true
	return true
}

// EndAsk 标记助手请求结束
func (s *Session) EndAsk() {
	s.mu.Lock()
	s.askInFlight = false
	s.mu.Unlock()
}

// SignupInput 注册请求
type SignupInput struct {
	Name            string
	Email           string
	Role            models.UserRole
	BusinessType    models.BusinessType
	PlugCount       int
	TechnicianCount int
	Vehicle         *models.Vehicle // 车主角色可自带车辆参数
}

// SessionService 会话管理
type SessionService struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   Store
	hub     *ws.Hub
	charger *ChargeSimulator

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionService 创建会话管理
func NewSessionService(cfg *config.Config, logger *zap.Logger, store Store, hub *ws.Hub, charger *ChargeSimulator) *SessionService {
	return &SessionService{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		hub:      hub,
		charger:  charger,
		sessions: make(map[string]*Session),
	}
}

// Signup 注册并创建会话
func (s *SessionService) Signup(ctx context.Context, input SignupInput) (*Session, error) {
	if input.Role != models.RoleUser && input.Role != models.RoleProvider {
		return nil, fmt.Errorf("invalid role: %s", input.Role)
	}

	user := &models.User{
		ID:    uuid.NewString(),
		Name:  input.Name,
		Email: input.Email,
		IsPro: true,
		Role:  input.Role,
	}

	avatarStyle := "avataaars"
	if input.Role == models.RoleProvider {
		avatarStyle = "bottts"

		user.BusinessType = input.BusinessType
		if user.BusinessType == "" {
			user.BusinessType = models.BusinessFastCharging
		}
		if user.BusinessType == models.BusinessFastCharging {
			user.PlugCount = input.PlugCount
			if user.PlugCount <= 0 {
				user.PlugCount = 4
			}
		} else {
			user.TechnicianCount = input.TechnicianCount
			if user.TechnicianCount <= 0 {
				user.TechnicianCount = 2
			}
		}
	}
	user.Avatar = fmt.Sprintf("https://api.dicebear.com/7.x/%s/svg?seed=%s", avatarStyle, user.Name)

	vehicle := DefaultVehicle()
	if input.Vehicle != nil {
		vehicle = *input.Vehicle
		if vehicle.ID == "" {
			vehicle.ID = uuid.NewString()
		}
		if vehicle.BatteryLevel == 0 {
			vehicle.BatteryLevel = 65
		}
		vehicle.ClampBattery()
	}

	sess := &Session{
		ID:       uuid.NewString(),
		User:     user,
		Vehicle:  vehicle,
		Bookings: SeedBookings(),
		View:     view.Default(user.Role),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.persistAll(ctx, sess)
	s.charger.Sync(sess)

	s.logger.Info("Session created",
		zap.String("session_id", sess.ID),
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))

	return sess, nil
}

// Resume 恢复会话（从存储水合，缺失或损坏的记录回退到种子默认值）
func (s *SessionService) Resume(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("empty session id")
	}

	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return sess, nil
	}

	user := s.store.LoadUser(ctx, sessionID)
	if user == nil {
		// 用户记录缺失视为已登出
		return nil, fmt.Errorf("session %s not found", sessionID)
	}

	sess = &Session{
		ID:       sessionID,
		User:     user,
		Vehicle:  s.store.LoadVehicle(ctx, sessionID, DefaultVehicle()),
		Bookings: s.store.LoadBookings(ctx, sessionID, SeedBookings()),
		View:     view.Default(user.Role),
	}

	s.mu.Lock()
	s.sessions[sessionID] = sess
	s.mu.Unlock()

	s.charger.Sync(sess)

	s.logger.Info("Session resumed", zap.String("session_id", sessionID), zap.String("user_id", user.ID))
	return sess, nil
}

// Get 获取内存中的会话
func (s *SessionService) Get(sessionID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	return sess, ok
}

// ProfileUpdate 资料编辑请求
type ProfileUpdate struct {
	Name            string
	Email           string
	Avatar          string
	PlugCount       int
	TechnicianCount int
}

// UpdateProfile 更新用户资料
func (s *SessionService) UpdateProfile(ctx context.Context, sess *Session, update ProfileUpdate) *models.User {
	sess.mu.Lock()
	if update.Name != "" {
		sess.User.Name = update.Name
	}
	if update.Email != "" {
		sess.User.Email = update.Email
	}
	if update.Avatar != "" {
		sess.User.Avatar = update.Avatar
	}
	if update.PlugCount > 0 {
		sess.User.PlugCount = update.PlugCount
	}
	if update.TechnicianCount > 0 {
		sess.User.TechnicianCount = update.TechnicianCount
	}
	userCopy := *sess.User
	sess.mu.Unlock()

	if err := s.store.SaveUser(ctx, sess.ID, &userCopy); err != nil {
		s.logger.Warn("Failed to sync user record", zap.String("session_id", sess.ID), zap.Error(err))
	}

	return &userCopy
}

// UpdateVehicle 更新车辆参数（资料编辑），并重新同步充电定时器
func (s *SessionService) UpdateVehicle(ctx context.Context, sess *Session, v models.Vehicle) models.Vehicle {
	sess.mu.Lock()
	if v.ID == "" {
		v.ID = sess.Vehicle.ID
	}
	v.ClampBattery()
	sess.Vehicle = v
	vehicleCopy := sess.Vehicle
	sess.mu.Unlock()

	if err := s.store.SaveVehicle(ctx, sess.ID, vehicleCopy); err != nil {
		s.logger.Warn("Failed to sync vehicle record", zap.String("session_id", sess.ID), zap.Error(err))
	}

	// 充电标志或电量可能跨越停止条件，重新装载定时器
	s.charger.Sync(sess)

	return vehicleCopy
}

// SelectView 选择视图，按角色校正后写回
func (s *SessionService) SelectView(sess *Session, v view.View) view.View {
	sess.mu.Lock()
	resolved := view.Resolve(sess.User.Role, v)
	sess.View = resolved
	sess.mu.Unlock()
	return resolved
}

// Logout 登出：停掉定时器，清空存储记录，丢弃会话
func (s *SessionService) Logout(ctx context.Context, sess *Session) {
	s.charger.Stop(sess.ID)

	if err := s.store.Clear(ctx, sess.ID); err != nil {
		s.logger.Warn("Failed to clear session records", zap.String("session_id", sess.ID), zap.Error(err))
	}

	s.mu.Lock()
	delete(s.sessions, sess.ID)
	s.mu.Unlock()

	s.logger.Info("Session cleared", zap.String("session_id", sess.ID))
}

// persistAll 写入全部三条记录（失败只记录日志）
func (s *SessionService) persistAll(ctx context.Context, sess *Session) {
	snap := sess.Snapshot()
	if err := s.store.SaveUser(ctx, sess.ID, snap.User); err != nil {
		s.logger.Warn("Failed to sync user record", zap.String("session_id", sess.ID), zap.Error(err))
	}
	if err := s.store.SaveVehicle(ctx, sess.ID, snap.Vehicle); err != nil {
		s.logger.Warn("Failed to sync vehicle record", zap.String("session_id", sess.ID), zap.Error(err))
	}
	if err := s.store.SaveBookings(ctx, sess.ID, snap.Bookings); err != nil {
		s.logger.Warn("Failed to sync bookings record", zap.String("session_id", sess.ID), zap.Error(err))
	}
}
