package ports

import (
	"context"

	"github.com/quickservice/marketplace-api/internal/core/domain"
)

// UpdateProfileInput carries a profile update from an authenticated caller.
// Name is mandatory; the worker fields are ignored for non-worker roles.
type UpdateProfileInput struct {
	Name            string
	Phone           *string
	AvatarURL       *string
	Profession      *string
	Description     *string
	ExperienceYears *int
	HourlyRate      *float64
}

// UserStats is the per-role aggregate returned by the stats endpoint.
// Fields are nil when they do not apply to the caller's role.
type UserStats struct {
	Rating            *float64 `json:"rating,omitempty"`
	TotalRatings      *int     `json:"total_ratings,omitempty"`
	CompletedServices *int     `json:"completed_services,omitempty"`
}

// UserService covers profile management and the worker directory.
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, role domain.Role, input UpdateProfileInput) (*domain.Profile, error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
	UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error
	DeleteAccount(ctx context.Context, userID int64, password string) error
	Stats(ctx context.Context, userID int64, role domain.Role) (*UserStats, error)

	ListWorkers(ctx context.Context, filter WorkerFilter) ([]domain.WorkerListing, error)
	GetWorker(ctx context.Context, userID int64) (*domain.WorkerListing, error)
	SetAvailability(ctx context.Context, userID int64, availability domain.Availability) error
}
