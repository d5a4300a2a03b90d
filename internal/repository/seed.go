package repository

import (
	"context"
	"fmt"

	"github.com/aomkarpatil97-boop/power-network-platform/internal/models"
)

// seedStations 站点种子数据
var seedStations = []*models.Station{
	{
		ID:             "s1",
		Name:           "ElectraHub Downtown",
		Lat:            37.7749,
		Lng:            -122.4194,
		Type:           models.StationHyper,
		Status:         "Available",
		PriceMinor:     1850,
		Distance:       "1.2 km",
		Address:        "455 Market St, Mumbai",
		AvailableSlots: []string{"09:00", "11:30", "14:00", "16:30"},
	},
	{
		ID:             "s2",
		Name:           "GreenDrive Plaza",
		Lat:            37.7833,
		Lng:            -122.4167,
		Type:           models.StationFast,
		Status:         "Occupied",
		PriceMinor:     1225,
		Distance:       "2.5 km",
		Address:        "101 Post St, Mumbai",
		AvailableSlots: []string{"10:00", "12:00", "15:00"},
	},
	{
		ID:             "s3",
		Name:           "VoltPark North",
		Lat:            37.7950,
		Lng:            -122.4000,
		Type:           models.StationStandard,
		Status:         "Available",
		PriceMinor:     850,
		Distance:       "4.8 km",
		Address:        "888 Marine Drive, Mumbai",
		AvailableSlots: []string{"08:00", "13:00", "17:00"},
	},
	{
		ID:             "m1",
		Name:           "EV Specialist Workshop",
		Lat:            37.7800,
		Lng:            -122.4100,
		Type:           models.StationMechanic,
		Status:         "Available",
		PriceMinor:     149900,
		Distance:       "3.1 km",
		Address:        "Sector 4, Navi Mumbai",
		AvailableSlots: []string{"09:00", "14:00"},
	},
	{
		ID:             "m2",
		Name:           "QuickFix EV Care",
		Lat:            37.7700,
		Lng:            -122.4250,
		Type:           models.StationMechanic,
		Status:         "Available",
		PriceMinor:     99900,
		Distance:       "0.8 km",
		Address:        "Station Road, Mumbai",
		AvailableSlots: []string{"11:00", "16:00"},
	},
}

// seedServices 维修/安装服务种子数据
var seedServices = []*models.MechanicService{
	{
		ID:          "m1",
		Title:       "Battery Diagnostic",
		Description: "Full health check and optimization of EV battery cells.",
		PriceMinor:  149900,
		Icon:        "Battery",
	},
	{
		ID:          "m2",
		Title:       "Brake Service",
		Description: "Regenerative braking system calibration and pad check.",
		PriceMinor:  299900,
		Icon:        "Disc",
	},
	{
		ID:          "m3",
		Title:       "Software Update",
		Description: "Latest firmware optimization for better efficiency.",
		PriceMinor:  0,
		Icon:        "Cpu",
	},
	{
		ID:          "m4",
		Title:       "Home Installation",
		Description: "Level 2 charger setup at your residential property.",
		PriceMinor:  1599900,
		Icon:        "Zap",
	},
}

// Seed 写入目录种子数据（首次启动时建立站点和服务目录，已有记录不覆盖）
func (db *DB) Seed(ctx context.Context) error {
	stationQuery := `
		INSERT INTO stations (id, name, lat, lng, type, status, price_minor, distance, address, available_slots)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`
	for _, st := range seedStations {
		_, err := db.Pool.Exec(ctx, stationQuery,
			st.ID, st.Name, st.Lat, st.Lng, string(st.Type),
			st.Status, st.PriceMinor, st.Distance, st.Address, st.AvailableSlots,
		)
		if err != nil {
			return fmt.Errorf("seed station %s: %w", st.ID, err)
		}
	}

	serviceQuery := `
		INSERT INTO mechanic_services (id, title, description, price_minor, icon)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	for _, svc := range seedServices {
		_, err := db.Pool.Exec(ctx, serviceQuery,
			svc.ID, svc.Title, svc.Description, svc.PriceMinor, svc.Icon,
		)
		if err != nil {
			return fmt.Errorf("seed mechanic service %s: %w", svc.ID, err)
		}
	}

	return nil
}
