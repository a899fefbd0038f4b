package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/config"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/repository"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

// invalidCredentials is the constant login failure: an unknown username and a
// wrong password are indistinguishable to the caller.
const invalidCredentials = "Invalid username or password"

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	admins     repository.AdminRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo  repository.UserRepository
	AdminRepo repository.AdminRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		admins:     deps.AdminRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account. A duplicate username surfaces as a conflict.
func (s *AuthService) Register(ctx context.Context, username, password, role string) (*domain.User, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("Username already exists")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// Login authenticates an account and issues a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized(invalidCredentials)
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized(invalidCredentials)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// LoginAdmin authenticates an operator account.
func (s *AuthService) LoginAdmin(ctx context.Context, username, password string) (*domain.Admin, string, time.Time, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized(invalidCredentials)
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized(invalidCredentials)
	}

	token, exp, err := s.tokenMgr.GenerateToken(admin.ID, admin.Username, admin.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return admin, token, exp, nil
}

// Profile verifies the bearer token and loads the admin it identifies.
func (s *AuthService) Profile(ctx context.Context, token string) (*domain.Admin, error) {
	claims, err := s.tokenMgr.ParseToken(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid or expired token")
	}

	admin, err := s.admins.GetByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("admin")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return admin, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
