package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aomkarpatil97-boop/power-network-platform/internal/models"
)

func newUserSession(t *testing.T, deps *testDeps) *Session {
	t.Helper()
	sess, err := deps.sessions.Signup(context.Background(), SignupInput{
		Name:  "Alex",
		Email: "alex@example.com",
		Role:  models.RoleUser,
	})
	require.NoError(t, err)
	return sess
}

func TestCreateChargingBooking(t *testing.T) {
	deps := newTestDeps()
	defer deps.charger.StopAll()
	sess := newUserSession(t, deps)

	booking, err := deps.bookings.Create(context.Background(), sess, CreateBookingInput{
		Type:       models.BookingCharging,
		Title:      "VoltPark Express",
		Time:       "10:00",
		PriceMinor: 85000,
		Location:   "12 MG Road, Mumbai",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusConfirmed, booking.Status)
	assert.Equal(t, "₹850.00", booking.Price)
	assert.Equal(t, models.PaymentOnline, booking.PaymentMethod)
	assert.NotEmpty(t, booking.Date)
	assert.Equal(t, "v1", booking.VehicleID)

	snap := sess.Snapshot()
	// 新预约排在最前
	require.Len(t, snap.Bookings, 2)
	assert.Equal(t, booking.ID, snap.Bookings[0].ID)

	// 充电预约把车辆置为充电中并装载定时器
	assert.True(t, snap.Vehicle.IsCharging)
	assert.True(t, deps.charger.Running(sess.ID))

	// 预约列表已落库
	stored := deps.store.LoadBookings(context.Background(), sess.ID, nil)
	require.Len(t, stored, 2)
	assert.Equal(t, booking.ID, stored[0].ID)
}

func TestCreateMechanicBookingLeavesChargeFlag(t *testing.T) {
	deps := newTestDeps()
	defer deps.charger.StopAll()
	sess := newUserSession(t, deps)

	_, err := deps.bookings.Create(context.Background(), sess, CreateBookingInput{
		Type:       models.BookingMechanic,
		Title:      "Battery Diagnostic",
		PriceMinor: 149900,
	})
	require.NoError(t, err)

	snap := sess.Snapshot()
	assert.False(t, snap.Vehicle.IsCharging)
	assert.False(t, deps.charger.Running(sess.ID))
}

func TestCreateBookingRejectsUnknownType(t *testing.T) {
	deps := newTestDeps()
	defer deps.charger.StopAll()
	sess := newUserSession(t, deps)

	_, err := deps.bookings.Create(context.Background(), sess, CreateBookingInput{
		Type:  models.BookingType("Towing"),
		Title: "Help",
	})
	require.Error(t, err)
}

func TestCancelBooking(t *testing.T) {
	deps := newTestDeps()
	defer deps.charger.StopAll()
	sess := newUserSession(t, deps)

	seedID := sess.Snapshot().Bookings[0].ID
	require.NoError(t, deps.bookings.Cancel(context.Background(), sess, seedID))
	assert.Equal(t, models.StatusCancelled, sess.Snapshot().Bookings[0].Status)

	// 终态取消是无操作，不报错
	require.NoError(t, deps.bookings.Cancel(context.Background(), sess, seedID))
	assert.Equal(t, models.StatusCancelled, sess.Snapshot().Bookings[0].Status)

	// 未知预约报错
	require.Error(t, deps.bookings.Cancel(context.Background(), sess, "nope"))
}

func TestSetStatusFollowsStateMachine(t *testing.T) {
	deps := newTestDeps()
	defer deps.charger.StopAll()
	sess := newUserSession(t, deps)

	// 植入一条服务商侧的待审批预约
	sess.mu.Lock()
	sess.Bookings = append(sess.Bookings, models.Booking{
		ID:     "bp",
		Type:   models.BookingMechanic,
		Title:  "Brake Service",
		Status: models.StatusPending,
	})
	sess.mu.Unlock()

	require.NoError(t, deps.bookings.SetStatus(context.Background(), sess, "bp", models.StatusConfirmed))
	require.NoError(t, deps.bookings.SetStatus(context.Background(), sess, "bp", models.StatusCompleted))

	// 终态之后的流转被拒绝
	err := deps.bookings.SetStatus(context.Background(), sess, "bp", models.StatusCancelled)
	require.Error(t, err)

	idx := findBooking(sess.Snapshot().Bookings, "bp")
	assert.Equal(t, models.StatusCompleted, sess.Snapshot().Bookings[idx].Status)
}

func TestListWithStatusFilter(t *testing.T) {
	deps := newTestDeps()
	defer deps.charger.StopAll()
	sess := newUserSession(t, deps)

	_, err := deps.bookings.Create(context.Background(), sess, CreateBookingInput{
		Type: models.BookingMechanic, Title: "Software Update",
	})
	require.NoError(t, err)

	seedID := sess.Snapshot().Bookings[1].ID
	require.NoError(t, deps.bookings.Cancel(context.Background(), sess, seedID))

	all := deps.bookings.List(sess, "")
	assert.Len(t, all, 2)

	confirmed := deps.bookings.List(sess, models.StatusConfirmed)
	require.Len(t, confirmed, 1)
	assert.Equal(t, "Software Update", confirmed[0].Title)

	cancelled := deps.bookings.List(sess, models.StatusCancelled)
	assert.Len(t, cancelled, 1)
}

func TestRevenueAndCounts(t *testing.T) {
	bookings := []models.Booking{
		{ID: "b1", Status: models.StatusConfirmed, PriceMinor: 45000},
		{ID: "b2", Status: models.StatusCompleted, PriceMinor: 299900},
		{ID: "b3", Status: models.StatusCancelled, PriceMinor: 149900},
		{ID: "b4", Status: models.StatusPending, PriceMinor: 85000},
	}

	// 营收只统计 Confirmed 和 Completed
	revenue := Revenue(bookings, models.StatusConfirmed, models.StatusCompleted)
	assert.Equal(t, int64(344900), revenue)

	assert.Equal(t, 1, CountByStatus(bookings, models.StatusConfirmed))
	assert.Equal(t, 1, CountByStatus(bookings, models.StatusPending))
	assert.Equal(t, 0, CountByStatus(nil, models.StatusConfirmed))
}

func TestProviderStats(t *testing.T) {
	deps := newTestDeps()
	defer deps.charger.StopAll()

	sess, err := deps.sessions.Signup(context.Background(), SignupInput{
		Name: "VoltWorks", Email: "ops@voltworks.example", Role: models.RoleProvider,
	})
	require.NoError(t, err)

	stats := deps.bookings.ProviderStatsFor(sess)
	assert.Equal(t, "Plug", stats.ResourceLabel)
	assert.Len(t, stats.Resources, 4)
	assert.Equal(t, int64(45000), stats.RevenueMinor)
	assert.Equal(t, "₹450.00", stats.Revenue)
	assert.Equal(t, 1, stats.ConfirmedCount)
	assert.Equal(t, 0, stats.PendingCount)
}

func TestAdminStats(t *testing.T) {
	deps := newTestDeps()
	defer deps.charger.StopAll()
	sess := newUserSession(t, deps)

	seedID := sess.Snapshot().Bookings[0].ID
	require.NoError(t, deps.bookings.Cancel(context.Background(), sess, seedID))
	_, err := deps.bookings.Create(context.Background(), sess, CreateBookingInput{
		Type: models.BookingInstallation, Title: "Home Installation", PriceMinor: 1599900,
	})
	require.NoError(t, err)

	stats := deps.bookings.AdminStatsFor(sess)
	assert.Equal(t, 2, stats.TotalBookings)
	assert.Equal(t, 1, stats.ByStatus["Cancelled"])
	assert.Equal(t, 1, stats.ByStatus["Confirmed"])
	assert.Equal(t, int64(1599900), stats.RevenueMinor)
	assert.Equal(t, "₹15,999.00", stats.Revenue)
}
