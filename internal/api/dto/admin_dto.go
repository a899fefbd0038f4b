package dto

import "github.com/spec-kit/catalog-service/internal/domain"

// AdminAddRequest payload for adding an operator account.
type AdminAddRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminResponse is the public projection of an operator account.
type AdminResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// NewAdminResponse maps a domain admin.
func NewAdminResponse(admin *domain.Admin) AdminResponse {
	return AdminResponse{
		ID:       admin.ID,
		Username: admin.Username,
		Role:     admin.Role,
	}
}

// NewAdminResponses maps a slice of domain admins.
func NewAdminResponses(admins []domain.Admin) []AdminResponse {
	result := make([]AdminResponse, 0, len(admins))
	for i := range admins {
		result = append(result, NewAdminResponse(&admins[i]))
	}
	return result
}
