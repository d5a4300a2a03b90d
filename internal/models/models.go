package models

// UserRole 用户角色
type UserRole string

const (
	RoleUser     UserRole = "user"     // 车主
	RoleProvider UserRole = "provider" // 服务商
)

// BusinessType 服务商业务类型
type BusinessType string

const (
	BusinessFastCharging BusinessType = "Fast Charging"
	BusinessMechanic     BusinessType = "EV Mechanic"
	BusinessInstaller    BusinessType = "Normal Installer"
)

// VehicleType 车辆类型
type VehicleType string

const (
	VehicleTwoWheeler   VehicleType = "Two-wheeler"
	VehicleThreeWheeler VehicleType = "Three-wheeler"
	VehicleFourWheeler  VehicleType = "Four-wheeler"
)

// StationType 站点类型
type StationType string

const (
	StationFast     StationType = "Fast"
	StationStandard StationType = "Standard"
	StationHyper    StationType = "Hyper"
	StationMechanic StationType = "Mechanic"
)

// User 用户信息
type User struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	IsPro           bool         `json:"is_pro"`
	Avatar          string       `json:"avatar"`
	Role            UserRole     `json:"role"`
	BusinessType    BusinessType `json:"business_type,omitempty"`
	PlugCount       int          `json:"plug_count,omitempty"`       // 快充站充电插头数量
	TechnicianCount int          `json:"technician_count,omitempty"` // 修理/安装服务商技师数量
}

// ResourceCount 服务商可预约资源数量（插头或技师）
func (u *User) ResourceCount() int {
	if u.BusinessType == BusinessFastCharging {
		if u.PlugCount > 0 {
			return u.PlugCount
		}
		return 4
	}
	if u.TechnicianCount > 0 {
		return u.TechnicianCount
	}
	return 3
}

// ResourceLabel 资源展示名称
func (u *User) ResourceLabel() string {
	if u.BusinessType == BusinessFastCharging {
		return "Plug"
	}
	return "Technician"
}

// Vehicle 车辆信息
// BatteryLevel 始终被钳制在 [0, 100] 区间内
type Vehicle struct {
	ID              string      `json:"id"`
	Type            VehicleType `json:"type"`
	Brand           string      `json:"brand"`
	Model           string      `json:"model"`
	BatteryCapacity float64     `json:"battery_capacity"` // kWh
	BatteryLevel    float64     `json:"battery_level"`    // 百分比，可为小数
	IsCharging      bool        `json:"is_charging"`
}

// ClampBattery 钳制电量到 [0, 100]
func (v *Vehicle) ClampBattery() {
	if v.BatteryLevel < 0 {
		v.BatteryLevel = 0
	}
	if v.BatteryLevel > 100 {
		v.BatteryLevel = 100
	}
}

// Station 站点信息（只读目录数据）
type Station struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Lat            float64     `json:"lat"`
	Lng            float64     `json:"lng"`
	Type           StationType `json:"type"`
	Status         string      `json:"status"` // Available, Occupied, Maintenance
	PriceMinor     int64       `json:"price_minor"`
	Distance       string      `json:"distance"`
	Address        string      `json:"address"`
	AvailableSlots []string    `json:"available_slots,omitempty"`
}

// MechanicService 维修/安装服务目录条目
type MechanicService struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceMinor  int64  `json:"price_minor"`
	Icon        string `json:"icon"`
}

// Resource 服务商可预约资源（插头/技师）
type Resource struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Status      string   `json:"status"` // Available, Occupied, Maintenance
	BookedSlots []string `json:"booked_slots,omitempty"`
}
