package service

import (
	"context"

	"github.com/aomkarpatil97-boop/power-network-platform/internal/models"
)

// Store 会话持久化存储契约
// 内存会话是权威数据，存储只做镜像：读取缺失/损坏回退默认值，
// 写入失败由调用方记录日志，不中断业务
type Store interface {
	LoadUser(ctx context.Context, sessionID string) *models.User
	LoadVehicle(ctx context.Context, sessionID string, def models.Vehicle) models.Vehicle
	LoadBookings(ctx context.Context, sessionID string, def []models.Booking) []models.Booking
	SaveUser(ctx context.Context, sessionID string, user *models.User) error
	SaveVehicle(ctx context.Context, sessionID string, v models.Vehicle) error
	SaveBookings(ctx context.Context, sessionID string, bookings []models.Booking) error
	Clear(ctx context.Context, sessionID string) error
}
