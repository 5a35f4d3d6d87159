package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/quickservice/marketplace-api/internal/core/domain"
	"github.com/quickservice/marketplace-api/internal/core/ports"
)

// UserService covers profile management and the public worker directory.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

// UpdateProfile applies the user-core update and, for workers, the extension
// upsert in one transaction, then re-reads the merged view.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, role domain.Role, input ports.UpdateProfileInput) (*domain.Profile, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.ExperienceYears != nil && *input.ExperienceYears < 0 {
		return nil, domain.ErrInvalidInput
	}

	err := s.repo.UpdateProfile(ctx, ports.UpdateProfileParams{
		UserID:          userID,
		Role:            role,
		Name:            strings.TrimSpace(input.Name),
		Phone:           input.Phone,
		AvatarURL:       input.AvatarURL,
		Profession:      input.Profession,
		Description:     input.Description,
		ExperienceYears: input.ExperienceYears,
		HourlyRate:      input.HourlyRate,
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetProfile(ctx, userID)
}

// ChangePassword re-verifies the current password before storing a new hash.
// Token possession alone never authorizes a credential change.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return domain.ErrInvalidInput
	}
	if len(newPassword) < minPasswordLen {
		return domain.ErrPasswordTooShort
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrPasswordIncorrect
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, userID, string(hash))
}

// UpdateAvatar stores the new avatar URL and nothing else; profile and
// worker fields are untouched.
func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error {
	if strings.TrimSpace(avatarURL) == "" {
		return domain.ErrInvalidInput
	}
	return s.repo.UpdateAvatar(ctx, userID, avatarURL)
}

// DeleteAccount removes the user after re-verifying the password. The worker
// extension goes with it via the cascading foreign key.
func (s *UserService) DeleteAccount(ctx context.Context, userID int64, password string) error {
	if password == "" {
		return domain.ErrInvalidInput
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.ErrPasswordIncorrect
	}

	if err := s.repo.DeleteUser(ctx, userID); err != nil {
		return err
	}
	s.log.Info().Int64("user_id", userID).Msg("account deleted")
	return nil
}

// Stats returns the caller's aggregates. Workers get their directory
// figures; clients and admins have none recorded yet.
func (s *UserService) Stats(ctx context.Context, userID int64, role domain.Role) (*ports.UserStats, error) {
	if role != domain.RoleWorker {
		return &ports.UserStats{}, nil
	}

	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.Worker == nil {
		return &ports.UserStats{}, nil
	}

	w := profile.Worker
	return &ports.UserStats{
		Rating:            &w.Rating,
		TotalRatings:      &w.TotalRatings,
		CompletedServices: &w.CompletedServices,
	}, nil
}

func (s *UserService) ListWorkers(ctx context.Context, filter ports.WorkerFilter) ([]domain.WorkerListing, error) {
	if filter.MinRating != nil && (*filter.MinRating < 0 || *filter.MinRating > 5) {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.ListWorkers(ctx, filter)
}

func (s *UserService) GetWorker(ctx context.Context, userID int64) (*domain.WorkerListing, error) {
	return s.repo.GetWorker(ctx, userID)
}

func (s *UserService) SetAvailability(ctx context.Context, userID int64, availability domain.Availability) error {
	if !domain.ValidAvailability(availability) {
		return domain.ErrInvalidInput
	}
	return s.repo.UpdateAvailability(ctx, userID, availability)
}
