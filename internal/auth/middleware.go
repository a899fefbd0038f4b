package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/domain"
	apperrors "github.com/spec-kit/catalog-service/pkg/util"
)

const claimsKey = "auth_claims"

// BearerToken extracts the token from the Authorization header.
func BearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.NewUnauthorized("invalid authorization header")
	}
	return parts[1], nil
}

// AdminGuard gates admin-only routes: it rejects missing or invalid bearer
// tokens with 401 and non-admin roles with 403, and stashes the decoded
// claims for downstream handlers.
//
// Note: the guard is not mounted on any route; the admin endpoints are served
// unprotected and the profile endpoint verifies its token in-handler. Wiring
// it to /api/admin would be the obvious hardening step.
type AdminGuard struct {
	tokens *TokenManager
}

// NewAdminGuard constructs the guard.
func NewAdminGuard(tokens *TokenManager) *AdminGuard {
	return &AdminGuard{tokens: tokens}
}

// Handle enforces an admin bearer token.
func (g *AdminGuard) Handle(c *fiber.Ctx) error {
	token, err := BearerToken(c)
	if err != nil {
		return err
	}

	claims, err := g.tokens.ParseToken(token)
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	if claims.Role != string(domain.RoleAdmin) {
		return apperrors.NewForbidden("admin role required")
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// ClaimsFromContext retrieves claims stashed by the guard.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
