package service

import "github.com/aomkarpatil97-boop/power-network-platform/internal/models"

// DefaultVehicle 新用户的初始车辆
func DefaultVehicle() models.Vehicle {
	return models.Vehicle{
		ID:              "v1",
		Type:            models.VehicleFourWheeler,
		Brand:           "Tata",
		Model:           "Nexon EV",
		BatteryCapacity: 40.5,
		BatteryLevel:    65,
		IsCharging:      false,
	}
}

// SeedBookings 新会话的初始预约列表
func SeedBookings() []models.Booking {
	return []models.Booking{
		{
			ID:            "b1",
			Type:          models.BookingCharging,
			Title:         "ElectraHub Downtown",
			Date:          "Oct 22, 2024",
			Time:          "14:30",
			Status:        models.StatusConfirmed,
			PriceMinor:    45000,
			Currency:      models.DefaultCurrency,
			Price:         "₹450.00",
			PaymentMethod: models.PaymentOnline,
			Location:      "455 Market St, Mumbai",
			VehicleID:     "v1",
		},
	}
}
