package ports

import (
	"context"

	"github.com/quickservice/marketplace-api/internal/core/domain"
)

// RegisterInput carries the data supplied at registration. Profession is
// only meaningful when Role is worker; a worker registered without one gets
// no extension row and stays out of public listings until a profile update.
type RegisterInput struct {
	Email      string
	Password   string
	Name       string
	Role       domain.Role
	Phone      *string
	Profession *string
}

// AuthResult bundles the issued token with the merged user view.
type AuthResult struct {
	Token   string
	Profile *domain.Profile
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
