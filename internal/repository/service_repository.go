package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// ServiceRepository encapsulates catalog persistence.
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) error
	List(ctx context.Context) ([]domain.Service, error)
}

type serviceRepository struct {
	pool *pgxpool.Pool
}

// NewServiceRepository instantiates repository.
func NewServiceRepository(pool *pgxpool.Pool) ServiceRepository {
	return &serviceRepository{pool: pool}
}

func (r *serviceRepository) Create(ctx context.Context, service *domain.Service) error {
	const query = `
        INSERT INTO services (category, name, price, image_url, description)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		service.Category,
		service.Name,
		service.Price,
		service.ImageURL,
		service.Description,
	).Scan(&service.ID, &service.CreatedAt)
}

// List returns every catalog row. No filtering or pagination; the result set
// is unbounded.
func (r *serviceRepository) List(ctx context.Context) ([]domain.Service, error) {
	const query = `
        SELECT id, category, name, price, image_url, description, created_at
        FROM services ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Service
	for rows.Next() {
		var service domain.Service
		if err := rows.Scan(
			&service.ID,
			&service.Category,
			&service.Name,
			&service.Price,
			&service.ImageURL,
			&service.Description,
			&service.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, service)
	}
	return result, rows.Err()
}
