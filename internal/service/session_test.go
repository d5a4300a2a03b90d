package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aomkarpatil97-boop/power-network-platform/internal/models"
	"github.com/aomkarpatil97-boop/power-network-platform/internal/view"
)

func TestSignupUserDefaults(t *testing.T) {
	deps := newTestDeps()
	defer deps.charger.StopAll()

	sess, err := deps.sessions.Signup(context.Background(), SignupInput{
		Name:  "Alex",
		Email: "alex@example.com",
		Role:  models.RoleUser,
	})
	require.NoError(t, err)

	snap := sess.Snapshot()
	assert.True(t, snap.User.IsPro)
	assert.Equal(t, models.RoleUser, snap.User.Role)
	assert.Contains(t, snap.User.Avatar, "avataaars")
	assert.Contains(t, snap.User.Avatar, "seed=Alex")

	// 默认车辆和种子预约
	assert.Equal(t, "Nexon EV", snap.Vehicle.Model)
	assert.Equal(t, 65.0, snap.Vehicle.BatteryLevel)
	assert.False(t, snap.Vehicle.IsCharging)
	require.Len(t, snap.Bookings, 1)
	assert.Equal(t, models.StatusConfirmed, snap.Bookings[0].Status)

	assert.Equal(t, view.Dashboard, snap.View)

	// 三条记录已落库
	assert.NotNil(t, deps.store.LoadUser(context.Background(), sess.ID))
}

func TestSignupProviderDefaults(t *testing.T) {
	deps := newTestDeps()
	defer deps.charger.StopAll()

	sess, err := deps.sessions.Signup(context.Background(), SignupInput{
		Name:  "VoltWorks",
		Email: "ops@voltworks.example",
		Role:  models.RoleProvider,
	})
	require.NoError(t, err)

	snap := sess.Snapshot()
	assert.Equal(t, models.BusinessFastCharging, snap.User.BusinessType)
	assert.Equal(t, 4, snap.User.PlugCount)
	assert.Contains(t, snap.User.Avatar, "bottts")
	assert.Equal(t, view.ProviderDashboard, snap.View)
}

func TestSignupMechanicProviderGetsTechnicians(t *testing.T) {
	deps := newTestDeps()
	defer deps.charger.StopAll()

	sess, err := deps.sessions.Signup(context.Background(), SignupInput{
		Name:         "QuickFix",
		Email:        "fix@quickfix.example",
		Role:         models.RoleProvider,
		BusinessType: models.BusinessMechanic,
	})
	require.NoError(t, err)

	snap := sess.Snapshot()
	assert.Equal(t, 2, snap.User.TechnicianCount)
	assert.Equal(t, 0, snap.User.PlugCount)
	assert.Equal(t, "Technician", snap.User.ResourceLabel())
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	deps := newTestDeps()
	defer deps.charger.StopAll()

	_, err := deps.sessions.Signup(context.Background(), SignupInput{
		Name: "X",
		Role: models.UserRole("admin"),
	})
	require.Error(t, err)
}

func TestResumeHydratesFromStore(t *testing.T) {
	deps := newTestDeps()
	defer deps.charger.StopAll()

	sess, err := deps.sessions.Signup(context.Background(), SignupInput{
		Name:  "Alex",
		Email: "alex@example.com",
		Role:  models.RoleUser,
	})
	require.NoError(t, err)

	// 新的服务实例共享同一个存储，模拟进程重启后恢复
	fresh := NewSessionService(testConfig(), deps.sessions.logger, deps.store, deps.hub, deps.charger)
	resumed, err := fresh.Resume(context.Background(), sess.ID)
	require.NoError(t, err)

	snap := resumed.Snapshot()
	assert.Equal(t, "Alex", snap.User.Name)
	assert.Equal(t, "Nexon EV", snap.Vehicle.Model)
	require.Len(t, snap.Bookings, 1)
}

func TestResumeUnknownSession(t *testing.T) {
	deps := newTestDeps()
	defer deps.charger.StopAll()

	_, err := deps.sessions.Resume(context.Background(), "missing")
	require.Error(t, err)

	_, err = deps.sessions.Resume(context.Background(), "")
	require.Error(t, err)
}

func TestUpdateVehicleClampsAndResyncs(t *testing.T) {
	deps := newTestDeps()
	defer deps.charger.StopAll()

	sess, err := deps.sessions.Signup(context.Background(), SignupInput{
		Name: "Alex", Email: "alex@example.com", Role: models.RoleUser,
	})
	require.NoError(t, err)

	v := sess.Snapshot().Vehicle
	v.BatteryLevel = 120
	v.IsCharging = true
	updated := deps.sessions.UpdateVehicle(context.Background(), sess, v)

	assert.Equal(t, 100.0, updated.BatteryLevel)
	// 电量已满，定时器不会装载
	assert.False(t, deps.charger.Running(sess.ID))

	v.BatteryLevel = 50
	updated = deps.sessions.UpdateVehicle(context.Background(), sess, v)
	assert.Equal(t, 50.0, updated.BatteryLevel)
	assert.True(t, deps.charger.Running(sess.ID))
}

func TestSelectViewWritesBackResolved(t *testing.T) {
	deps := newTestDeps()
	defer deps.charger.StopAll()

	sess, err := deps.sessions.Signup(context.Background(), SignupInput{
		Name: "VoltWorks", Email: "ops@voltworks.example", Role: models.RoleProvider,
	})
	require.NoError(t, err)

	// 服务商选择车主视图被重定向到自己的仪表盘
	got := deps.sessions.SelectView(sess, view.Stations)
	assert.Equal(t, view.ProviderDashboard, got)
	assert.Equal(t, view.ProviderDashboard, sess.Snapshot().View)

	got = deps.sessions.SelectView(sess, view.Profile)
	assert.Equal(t, view.Profile, got)
}

func TestLogoutClearsEverything(t *testing.T) {
	deps := newTestDeps()
	defer deps.charger.StopAll()

	sess, err := deps.sessions.Signup(context.Background(), SignupInput{
		Name: "Alex", Email: "alex@example.com", Role: models.RoleUser,
	})
	require.NoError(t, err)

	deps.sessions.Logout(context.Background(), sess)

	_, ok := deps.sessions.Get(sess.ID)
	assert.False(t, ok)
	assert.Nil(t, deps.store.LoadUser(context.Background(), sess.ID))
	assert.False(t, deps.charger.Running(sess.ID))

	// 登出后恢复会话失败
	_, err = deps.sessions.Resume(context.Background(), sess.ID)
	require.Error(t, err)
}

func TestAskInFlightGuard(t *testing.T) {
	sess := &Session{ID: "s1"}

	assert.True(t, sess.TryBeginAsk())
	assert.False(t, sess.TryBeginAsk())
	sess.EndAsk()
	assert.True(t, sess.TryBeginAsk())
}
