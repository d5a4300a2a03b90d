package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aomkarpatil97-boop/power-network-platform/internal/models"
	"github.com/aomkarpatil97-boop/power-network-platform/internal/state"
	"github.com/aomkarpatil97-boop/power-network-platform/internal/view"
	"github.com/aomkarpatil97-boop/power-network-platform/pkg/ws"
)

// BookingService 预约生命周期管理
// 会话内存中的预约列表（新的在前）是权威数据，每次变更后同步到存储
type BookingService struct {
	logger  *zap.Logger
	store   Store
	hub     *ws.Hub
	charger *ChargeSimulator
}

// NewBookingService 创建预约服务
func NewBookingService(logger *zap.Logger, store Store, hub *ws.Hub, charger *ChargeSimulator) *BookingService {
	return &BookingService{
		logger:  logger,
		store:   store,
		hub:     hub,
		charger: charger,
	}
}

// CreateBookingInput 创建预约请求
type CreateBookingInput struct {
	Type          models.BookingType
	Title         string
	Date          string
	Time          string
	PriceMinor    int64
	PaymentMethod models.PaymentMethod
	Location      string
	UserName      string
	UserAvatar    string
}

// Create 创建预约
// 车主直接预约无审批环节，初始状态即为 Confirmed；
// Pending 只用于服务商侧的审批流程。
// 充电类预约会把车辆置为充电中，并广播跳转到仪表盘的导航信号
func (s *BookingService) Create(ctx context.Context, sess *Session, input CreateBookingInput) (*models.Booking, error) {
	switch input.Type {
	case models.BookingCharging, models.BookingMechanic, models.BookingInstallation:
	default:
		return nil, fmt.Errorf("invalid booking type: %s", input.Type)
	}

	if input.PaymentMethod == "" {
		input.PaymentMethod = models.PaymentOnline
	}
	if input.Date == "" {
		input.Date = time.Now().Format("Jan 2, 2006")
	}

	booking := models.Booking{
		ID:            uuid.NewString(),
		Type:          input.Type,
		Title:         input.Title,
		Date:          input.Date,
		Time:          input.Time,
		Status:        models.StatusConfirmed,
		PriceMinor:    input.PriceMinor,
		Currency:      models.DefaultCurrency,
		Price:         models.FormatMinor(input.PriceMinor),
		PaymentMethod: input.PaymentMethod,
		Location:      input.Location,
		UserName:      input.UserName,
		UserAvatar:    input.UserAvatar,
	}

	sess.mu.Lock()
	booking.VehicleID = sess.Vehicle.ID
	// 新预约排在最前
	sess.Bookings = append([]models.Booking{booking}, sess.Bookings...)
	charging := booking.Type == models.BookingCharging
	if charging {
		sess.Vehicle.IsCharging = true
	}
	vehicleCopy := sess.Vehicle
	sess.mu.Unlock()

	s.syncBookings(ctx, sess)

	if charging {
		if err := s.store.SaveVehicle(ctx, sess.ID, vehicleCopy); err != nil {
			s.logger.Warn("Failed to sync vehicle record", zap.String("session_id", sess.ID), zap.Error(err))
		}
		s.charger.Sync(sess)
		// 通知视图层跳转到仪表盘查看充电状态
		s.hub.BroadcastNavigate(sess.ID, string(view.Dashboard))
	}

	s.hub.BroadcastBookingUpdate(booking)
	s.logger.Info("Booking created",
		zap.String("booking_id", booking.ID),
		zap.String("type", string(booking.Type)),
		zap.String("title", booking.Title))

	return &booking, nil
}

// Cancel 取消预约
// 已处于终态（Completed/Cancelled）时为无操作，不报错也不触发存储写入
func (s *BookingService) Cancel(ctx context.Context, sess *Session, bookingID string) error {
	sess.mu.Lock()
	idx := findBooking(sess.Bookings, bookingID)
	if idx < 0 {
		sess.mu.Unlock()
		return fmt.Errorf("booking %s not found", bookingID)
	}
	if sess.Bookings[idx].Status.IsTerminal() {
		sess.mu.Unlock()
		return nil
	}
	sess.Bookings[idx].Status = models.StatusCancelled
	booking := sess.Bookings[idx]
	sess.mu.Unlock()

	s.syncBookings(ctx, sess)
	s.hub.BroadcastBookingUpdate(booking)
	s.logger.Info("Booking cancelled", zap.String("booking_id", bookingID))

	return nil
}

// SetStatus 服务商侧状态流转，非法流转被拒绝
func (s *BookingService) SetStatus(ctx context.Context, sess *Session, bookingID string, target models.BookingStatus) error {
	sess.mu.Lock()
	idx := findBooking(sess.Bookings, bookingID)
	if idx < 0 {
		sess.mu.Unlock()
		return fmt.Errorf("booking %s not found", bookingID)
	}

	newStatus, err := state.Apply(sess.Bookings[idx].Status, target)
	if err != nil {
		sess.mu.Unlock()
		return err
	}
	sess.Bookings[idx].Status = newStatus
	booking := sess.Bookings[idx]
	sess.mu.Unlock()

	s.syncBookings(ctx, sess)
	s.hub.BroadcastBookingUpdate(booking)
	s.logger.Info("Booking status updated",
		zap.String("booking_id", bookingID),
		zap.String("status", string(newStatus)))

	return nil
}

// List 获取预约列表，statusFilter 为空时返回全部
func (s *BookingService) List(sess *Session, statusFilter models.BookingStatus) []models.Booking {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	result := make([]models.Booking, 0, len(sess.Bookings))
	for _, b := range sess.Bookings {
		if statusFilter == "" || b.Status == statusFilter {
			result = append(result, b)
		}
	}
	return result
}

// Revenue 按状态过滤汇总营收（最小货币单位）
func Revenue(bookings []models.Booking, statuses ...models.BookingStatus) int64 {
	var total int64
	for _, b := range bookings {
		for _, st := range statuses {
			if b.Status == st {
				total += b.PriceMinor
				break
			}
		}
	}
	return total
}

// CountByStatus 按状态统计数量
func CountByStatus(bookings []models.Booking, status models.BookingStatus) int {
	n := 0
	for _, b := range bookings {
		if b.Status == status {
			n++
		}
	}
	return n
}

// ProviderStats 服务商仪表盘统计
type ProviderStats struct {
	RevenueMinor   int64             `json:"revenue_minor"`
	Revenue        string            `json:"revenue"`
	ConfirmedCount int               `json:"confirmed_count"`
	PendingCount   int               `json:"pending_count"`
	ResourceLabel  string            `json:"resource_label"`
	Resources      []models.Resource `json:"resources"`
}

// 演示用的资源时段表（真实排班不在本系统范围内）
var resourceSlots = []string{"09:00", "12:30", "15:00", "18:30"}

// ProviderStatsFor 计算服务商仪表盘统计
// 营收只统计 Confirmed 和 Completed 的预约
func (s *BookingService) ProviderStatsFor(sess *Session) ProviderStats {
	snap := sess.Snapshot()

	revenue := Revenue(snap.Bookings, models.StatusConfirmed, models.StatusCompleted)

	stats := ProviderStats{
		RevenueMinor:   revenue,
		Revenue:        models.FormatMinor(revenue),
		ConfirmedCount: CountByStatus(snap.Bookings, models.StatusConfirmed),
		PendingCount:   CountByStatus(snap.Bookings, models.StatusPending),
		ResourceLabel:  snap.User.ResourceLabel(),
	}

	count := snap.User.ResourceCount()
	for i := 1; i <= count; i++ {
		res := models.Resource{
			ID:     fmt.Sprintf("r%d", i),
			Name:   fmt.Sprintf("%s #%d", stats.ResourceLabel, i),
			Status: "Available",
		}
		// 演示数据：1 号和 3 号资源当前占用
		if i == 1 || i == 3 {
			res.Status = "Occupied"
			res.BookedSlots = resourceSlots
		}
		stats.Resources = append(stats.Resources, res)
	}

	return stats
}

// AdminStats 运营总览统计
type AdminStats struct {
	TotalBookings int            `json:"total_bookings"`
	ByStatus      map[string]int `json:"by_status"`
	RevenueMinor  int64          `json:"revenue_minor"`
	Revenue       string         `json:"revenue"`
}

// AdminStatsFor 计算运营总览统计
func (s *BookingService) AdminStatsFor(sess *Session) AdminStats {
	snap := sess.Snapshot()

	byStatus := make(map[string]int)
	for _, b := range snap.Bookings {
		byStatus[string(b.Status)]++
	}

	revenue := Revenue(snap.Bookings, models.StatusConfirmed, models.StatusCompleted)

	return AdminStats{
		TotalBookings: len(snap.Bookings),
		ByStatus:      byStatus,
		RevenueMinor:  revenue,
		Revenue:       models.FormatMinor(revenue),
	}
}

// syncBookings 同步预约列表到存储（失败只记录日志，不影响调用方）
func (s *BookingService) syncBookings(ctx context.Context, sess *Session) {
	sess.mu.Lock()
	bookings := make([]models.Booking, len(sess.Bookings))
	copy(bookings, sess.Bookings)
	sess.mu.Unlock()

	if err := s.store.SaveBookings(ctx, sess.ID, bookings); err != nil {
		s.logger.Warn("Failed to sync bookings record", zap.String("session_id", sess.ID), zap.Error(err))
	}
}

// findBooking 在列表中定位预约
func findBooking(bookings []models.Booking, id string) int {
	for i := range bookings {
		if bookings[i].ID == id {
			return i
		}
	}
	return -1
}
