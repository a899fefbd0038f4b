package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// AdminRepository handles persistence for operator accounts.
type AdminRepository interface {
	// Upsert inserts the admin, silently ignoring a username conflict.
	// It reports whether a row was actually inserted.
	Upsert(ctx context.Context, admin *domain.Admin) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	List(ctx context.Context) ([]domain.Admin, error)
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository instantiates the repository.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

func (r *adminRepository) Upsert(ctx context.Context, admin *domain.Admin) (bool, error) {
	const query = `
        INSERT INTO admins (username, password_hash, role)
        VALUES ($1, $2, $3)
        ON CONFLICT (username) DO NOTHING`

	cmd, err := r.pool.Exec(ctx, query,
		admin.Username,
		admin.PasswordHash,
		admin.Role,
	)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	const query = `
        SELECT id, username, password_hash, role, created_at
        FROM admins WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	const query = `
        SELECT id, username, password_hash, role, created_at
        FROM admins WHERE username=$1`
	return r.fetchSingle(ctx, query, username)
}

func (r *adminRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Admin, error) {
	var admin domain.Admin
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.Role,
		&admin.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) List(ctx context.Context) ([]domain.Admin, error) {
	const query = `
        SELECT id, username, password_hash, role, created_at
        FROM admins ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Admin
	for rows.Next() {
		var admin domain.Admin
		if err := rows.Scan(
			&admin.ID,
			&admin.Username,
			&admin.PasswordHash,
			&admin.Role,
			&admin.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, admin)
	}
	return result, rows.Err()
}
