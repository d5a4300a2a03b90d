package repository

import (
	"context"
	"fmt"

	"github.com/aomkarpatil97-boop/power-network-platform/internal/models"
)

// ServiceRepository 维修/安装服务目录仓库
type ServiceRepository struct {
	db *DB
}

// NewServiceRepository 创建服务目录仓库
func NewServiceRepository(db *DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// List 获取服务目录
func (r *ServiceRepository) List(ctx context.Context) ([]*models.MechanicService, error) {
	query := `
		SELECT id, title, description, price_minor, icon
		FROM mechanic_services ORDER BY id
	`
	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list mechanic services: %w", err)
	}
	defer rows.Close()

	var services []*models.MechanicService
	for rows.Next() {
		svc := &models.MechanicService{}
		err := rows.Scan(
			&svc.ID,
			&svc.Title,
			&svc.Description,
			&svc.PriceMinor,
			&svc.Icon,
		)
		if err != nil {
			return nil, fmt.Errorf("scan mechanic service: %w", err)
		}
		services = append(services, svc)
	}

	return services, nil
}

// GetByID 通过 ID 获取服务条目
func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*models.MechanicService, error) {
	query := `
		SELECT id, title, description, price_minor, icon
		FROM mechanic_services WHERE id = $1
	`
	svc := &models.MechanicService{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&svc.ID,
		&svc.Title,
		&svc.Description,
		&svc.PriceMinor,
		&svc.Icon,
	)
	if err != nil {
		return nil, fmt.Errorf("get mechanic service by id: %w", err)
	}
	return svc, nil
}

// Upsert 创建或更新服务条目
func (r *ServiceRepository) Upsert(ctx context.Context, svc *models.MechanicService) error {
	query := `
		INSERT INTO mechanic_services (id, title, description, price_minor, icon)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			price_minor = EXCLUDED.price_minor,
			icon = EXCLUDED.icon
	`
	_, err := r.db.Pool.Exec(ctx, query,
		svc.ID,
		svc.Title,
		svc.Description,
		svc.PriceMinor,
		svc.Icon,
	)
	if err != nil {
		return fmt.Errorf("upsert mechanic service: %w", err)
	}
	return nil
}
