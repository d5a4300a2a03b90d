package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aomkarpatil97-boop/power-network-platform/internal/models"
)

func TestDefault(t *testing.T) {
	assert.Equal(t, Dashboard, Default(models.RoleUser))
	assert.Equal(t, ProviderDashboard, Default(models.RoleProvider))
}

func TestResolveProviderRedirect(t *testing.T) {
	// 服务商访问车主专属视图被重定向
	assert.Equal(t, ProviderDashboard, Resolve(models.RoleProvider, Stations))
	assert.Equal(t, ProviderDashboard, Resolve(models.RoleProvider, Dashboard))
	assert.Equal(t, ProviderDashboard, Resolve(models.RoleProvider, Bookings))

	// provider_ 前缀视图和共享的 profile 放行
	assert.Equal(t, ProviderBookings, Resolve(models.RoleProvider, ProviderBookings))
	assert.Equal(t, ProviderServices, Resolve(models.RoleProvider, ProviderServices))
	assert.Equal(t, Profile, Resolve(models.RoleProvider, Profile))
}

func TestResolveUserRedirect(t *testing.T) {
	// 车主访问服务商专属视图被重定向
	assert.Equal(t, Dashboard, Resolve(models.RoleUser, ProviderDashboard))
	assert.Equal(t, Dashboard, Resolve(models.RoleUser, ProviderBookings))

	assert.Equal(t, Stations, Resolve(models.RoleUser, Stations))
	assert.Equal(t, Profile, Resolve(models.RoleUser, Profile))
	assert.Equal(t, Admin, Resolve(models.RoleUser, Admin))
}

func TestResolveUnknownView(t *testing.T) {
	assert.Equal(t, Dashboard, Resolve(models.RoleUser, View("garage")))
	assert.Equal(t, ProviderDashboard, Resolve(models.RoleProvider, View("")))
}

func TestIsProviderView(t *testing.T) {
	assert.True(t, ProviderDashboard.IsProviderView())
	assert.False(t, Profile.IsProviderView())
	assert.False(t, Dashboard.IsProviderView())
}
