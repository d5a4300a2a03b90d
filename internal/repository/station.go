package repository

import (
	"context"
	"fmt"

	"github.com/aomkarpatil97-boop/power-network-platform/internal/models"
)

// StationRepository 站点目录仓库（只读参考数据）
type StationRepository struct {
	db *DB
}

// NewStationRepository 创建站点仓库
func NewStationRepository(db *DB) *StationRepository {
	return &StationRepository{db: db}
}

// List 获取站点列表，typeFilter 为空时返回全部
func (r *StationRepository) List(ctx context.Context, typeFilter models.StationType) ([]*models.Station, error) {
	query := `
		SELECT id, name, lat, lng, type, status, price_minor, distance, address, available_slots
		FROM stations
	`
	args := []interface{}{}
	if typeFilter != "" {
		query += ` WHERE type = $1`
		args = append(args, string(typeFilter))
	}
	query += ` ORDER BY id`

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}
	defer rows.Close()

	var stations []*models.Station
	for rows.Next() {
		st := &models.Station{}
		err := rows.Scan(
			&st.ID,
			&st.Name,
			&st.Lat,
			&st.Lng,
			&st.Type,
			&st.Status,
			&st.PriceMinor,
			&st.Distance,
			&st.Address,
			&st.AvailableSlots,
		)
		if err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		stations = append(stations, st)
	}

	return stations, nil
}

// GetByID 通过 ID 获取站点
func (r *StationRepository) GetByID(ctx context.Context, id string) (*models.Station, error) {
	query := `
		SELECT id, name, lat, lng, type, status, price_minor, distance, address, available_slots
		FROM stations WHERE id = $1
	`
	st := &models.Station{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&st.ID,
		&st.Name,
		&st.Lat,
		&st.Lng,
		&st.Type,
		&st.Status,
		&st.PriceMinor,
		&st.Distance,
		&st.Address,
		&st.AvailableSlots,
	)
	if err != nil {
		return nil, fmt.Errorf("get station by id: %w", err)
	}
	return st, nil
}

// Upsert 创建或更新站点
func (r *StationRepository) Upsert(ctx context.Context, st *models.Station) error {
	query := `
		INSERT INTO stations (id, name, lat, lng, type, status, price_minor, distance, address, available_slots)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			lat = EXCLUDED.lat,
			lng = EXCLUDED.lng,
			type = EXCLUDED.type,
			status = EXCLUDED.status,
			price_minor = EXCLUDED.price_minor,
			distance = EXCLUDED.distance,
			address = EXCLUDED.address,
			available_slots = EXCLUDED.available_slots
	`
	_, err := r.db.Pool.Exec(ctx, query,
		st.ID,
		st.Name,
		st.Lat,
		st.Lng,
		string(st.Type),
		st.Status,
		st.PriceMinor,
		st.Distance,
		st.Address,
		st.AvailableSlots,
	)
	if err != nil {
		return fmt.Errorf("upsert station: %w", err)
	}
	return nil
}
