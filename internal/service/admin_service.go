package service

import (
	"context"

	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/repository"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// AdminService manages operator accounts.
type AdminService struct {
	admins     repository.AdminRepository
	bcryptCost int
}

// NewAdminService builds the service.
func NewAdminService(admins repository.AdminRepository, bcryptCost int) *AdminService {
	return &AdminService{admins: admins, bcryptCost: bcryptCost}
}

// Add inserts an admin with the admin role. Re-adding an existing username is
// a silent no-op, unlike user registration's conflict error.
func (s *AdminService) Add(ctx context.Context, username, password string) error {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	admin := &domain.Admin{
		Username:     username,
		PasswordHash: hash,
		Role:         string(domain.RoleAdmin),
	}
	if _, err := s.admins.Upsert(ctx, admin); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// List returns every admin row.
func (s *AdminService) List(ctx context.Context) ([]domain.Admin, error) {
	result, err := s.admins.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return result, nil
}
