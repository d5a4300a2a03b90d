package view

import (
	"strings"

	"github.com/aomkarpatil97-boop/power-network-platform/internal/models"
)

// View 应用视图标识
type View string

const (
	Dashboard         View = "dashboard"
	Stations          View = "stations"
	Services          View = "services"
	Bookings          View = "bookings"
	Profile           View = "profile"
	Admin             View = "admin"
	ProviderDashboard View = "provider_dashboard"
	ProviderServices  View = "provider_services"
	ProviderBookings  View = "provider_bookings"
)

const providerPrefix = "provider_"

// Valid 是否为已知视图
func (v View) Valid() bool {
	switch v {
	case Dashboard, Stations, Services, Bookings, Profile, Admin,
		ProviderDashboard, ProviderServices, ProviderBookings:
		return true
	}
	return false
}

// IsProviderView 是否为服务商专属视图
func (v View) IsProviderView() bool {
	return strings.HasPrefix(string(v), providerPrefix)
}

// Default 角色默认视图
func Default(role models.UserRole) View {
	if role == models.RoleProvider {
		return ProviderDashboard
	}
	return Dashboard
}

// Resolve 根据角色校正视图选择
// 服务商只能访问 provider_ 前缀视图和共享的 profile 视图，
// 车主不能访问 provider_ 前缀视图，越界时重定向到角色默认视图
func Resolve(role models.UserRole, v View) View {
	if !v.Valid() {
		return Default(role)
	}
	if role == models.RoleProvider && !v.IsProviderView() && v != Profile {
		return ProviderDashboard
	}
	if role == models.RoleUser && v.IsProviderView() {
		return Dashboard
	}
	return v
}
