package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/aomkarpatil97-boop/power-network-platform/internal/models"
)

// 会话记录 key 前缀
const (
	keyPrefixUser     = "powernest:user:"
	keyPrefixVehicle  = "powernest:vehicle:"
	keyPrefixBookings = "powernest:bookings:"
)

// SessionStore 会话持久化存储
// 每个会话三条 JSON 记录（用户/车辆/预约列表），内存状态为权威数据，
// 存储只做被动镜像：读取失败或记录损坏时回退到默认值，不向上传播
type SessionStore struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *redis.Client, logger *zap.Logger, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, logger: logger, ttl: ttl}
}

// load 读取并反序列化一条记录，缺失或损坏返回 false
func (s *SessionStore) load(ctx context.Context, key string, out interface{}) bool {
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		s.logger.Warn("Failed to read session record", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		// 损坏的记录按缺失处理，回退到默认值
		s.logger.Warn("Corrupt session record, falling back to default", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// save 序列化并写入一条记录
func (s *SessionStore) save(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("write session record: %w", err)
	}
	return nil
}

// LoadUser 读取用户记录，缺失或损坏时返回 nil
func (s *SessionStore) LoadUser(ctx context.Context, sessionID string) *models.User {
	user := &models.User{}
	if !s.load(ctx, keyPrefixUser+sessionID, user) {
		return nil
	}
	return user
}

// LoadVehicle 读取车辆记录，缺失或损坏时返回默认值
func (s *SessionStore) LoadVehicle(ctx context.Context, sessionID string, def models.Vehicle) models.Vehicle {
	var v models.Vehicle
	if !s.load(ctx, keyPrefixVehicle+sessionID, &v) {
		return def
	}
	v.ClampBattery()
	return v
}

// LoadBookings 读取预约列表记录，缺失或损坏时返回默认值
func (s *SessionStore) LoadBookings(ctx context.Context, sessionID string, def []models.Booking) []models.Booking {
	var bookings []models.Booking
	if !s.load(ctx, keyPrefixBookings+sessionID, &bookings) {
		return def
	}
	// 旧存档只带格式化价格字符串，读取时回填金额字段
	for i := range bookings {
		bookings[i].Normalize()
	}
	return bookings
}

// SaveUser 写入用户记录
func (s *SessionStore) SaveUser(ctx context.Context, sessionID string, user *models.User) error {
	return s.save(ctx, keyPrefixUser+sessionID, user)
}

// SaveVehicle 写入车辆记录
func (s *SessionStore) SaveVehicle(ctx context.Context, sessionID string, v models.Vehicle) error {
	return s.save(ctx, keyPrefixVehicle+sessionID, v)
}

// SaveBookings 写入预约列表记录
func (s *SessionStore) SaveBookings(ctx context.Context, sessionID string, bookings []models.Booking) error {
	return s.save(ctx, keyPrefixBookings+sessionID, bookings)
}

// Clear 删除会话的全部三条记录（登出时调用）
func (s *SessionStore) Clear(ctx context.Context, sessionID string) error {
	keys := []string{
		keyPrefixUser + sessionID,
		keyPrefixVehicle + sessionID,
		keyPrefixBookings + sessionID,
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("clear session records: %w", err)
	}
	return nil
}
