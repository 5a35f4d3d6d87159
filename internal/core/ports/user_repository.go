package ports

import (
	"context"

	"github.com/quickservice/marketplace-api/internal/core/domain"
)

// CreateUserParams carries the write parameters for registering an account.
// Profession, when present on a worker registration, creates the extension
// row inside the same transaction as the user row.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	Role         domain.Role
	Name         string
	Phone        *string
	Profession   *string
}

// UpdateProfileParams carries the fields of a profile update. The worker
// fields are applied only when Role is worker, as an upsert keyed on the
// unique user_id constraint.
type UpdateProfileParams struct {
	UserID          int64
	Role            domain.Role
	Name            string
	Phone           *string
	AvatarURL       *string
	Profession      *string
	Description     *string
	ExperienceYears *int
	HourlyRate      *float64
}

// WorkerFilter narrows the public worker directory.
type WorkerFilter struct {
	Profession    string
	MinRating     *float64
	OnlyAvailable bool
}

// UserFinder is the slice of the repository the auth middleware needs to
// re-check that a token's subject still exists.
type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

// UserRepository is the persistence boundary for users and their worker
// extensions. Multi-table writes are transactional: either every statement
// commits or none does.
type UserRepository interface {
	UserFinder

	CreateUser(ctx context.Context, params CreateUserParams) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	GetProfile(ctx context.Context, userID int64) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) error
	UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	DeleteUser(ctx context.Context, userID int64) error

	ListWorkers(ctx context.Context, filter WorkerFilter) ([]domain.WorkerListing, error)
	GetWorker(ctx context.Context, userID int64) (*domain.WorkerListing, error)
	UpdateAvailability(ctx context.Context, userID int64, availability domain.Availability) error
}
