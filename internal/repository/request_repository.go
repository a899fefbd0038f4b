package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// RequestRepository encapsulates request persistence.
type RequestRepository interface {
	Create(ctx context.Context, request *domain.Request) error
	List(ctx context.Context) ([]domain.Request, error)
	ListByUsername(ctx context.Context, username string) ([]domain.Request, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Request, error)
}

type requestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository instantiates repository.
func NewRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &requestRepository{pool: pool}
}

func (r *requestRepository) Create(ctx context.Context, request *domain.Request) error {
	// request_date and status come from the table defaults.
	const query = `
        INSERT INTO requests (username, product_name, quantity)
        VALUES ($1, $2, $3)
        RETURNING id, request_date, status`

	return r.pool.QueryRow(ctx, query,
		request.Username,
		request.ProductName,
		request.Quantity,
	).Scan(&request.ID, &request.RequestDate, &request.Status)
}

func (r *requestRepository) List(ctx context.Context) ([]domain.Request, error) {
	const query = `
        SELECT id, username, product_name, quantity, request_date, status
        FROM requests ORDER BY request_date DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *requestRepository) ListByUsername(ctx context.Context, username string) ([]domain.Request, error) {
	const query = `
        SELECT id, username, product_name, quantity, request_date, status
        FROM requests WHERE username=$1 ORDER BY request_date DESC`

	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

// UpdateStatus sets the status of the matching row and returns it. Returns
// pgx.ErrNoRows when no row matched the id.
func (r *requestRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Request, error) {
	const query = `
        UPDATE requests SET status=$1 WHERE id=$2
        RETURNING id, username, product_name, quantity, request_date, status`

	var request domain.Request
	if err := r.pool.QueryRow(ctx, query, status, id).Scan(
		&request.ID,
		&request.Username,
		&request.ProductName,
		&request.Quantity,
		&request.RequestDate,
		&request.Status,
	); err != nil {
		return nil, err
	}
	return &request, nil
}

func scanRequests(rows pgx.Rows) ([]domain.Request, error) {
	var result []domain.Request
	for rows.Next() {
		var request domain.Request
		if err := rows.Scan(
			&request.ID,
			&request.Username,
			&request.ProductName,
			&request.Quantity,
			&request.RequestDate,
			&request.Status,
		); err != nil {
			return nil, err
		}
		result = append(result, request)
	}
	return result, rows.Err()
}
