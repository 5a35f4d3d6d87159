package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/quickservice/marketplace-api/internal/api/metrics"
	"github.com/quickservice/marketplace-api/internal/core/domain"
	"github.com/quickservice/marketplace-api/internal/core/ports"
	"github.com/quickservice/marketplace-api/pkg/token"
)

// bcryptCost matches the original deployment so existing hashes keep working.
const bcryptCost = 12

const minPasswordLen = 6

// AuthService implements registration and login over the user store.
type AuthService struct {
	repo   ports.UserRepository
	signer *token.Signer
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, signer *token.Signer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, signer: signer, log: log}
}

// Register creates an account and, for workers with a profession, the worker
// extension row in the same transaction. It returns a signed token plus the
// merged profile view.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" || strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(input.Password) < minPasswordLen {
		return nil, domain.ErrPasswordTooShort
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidInput
	}

	// Advisory pre-check only. Two racing registrations can both pass it;
	// the unique constraint inside CreateUser is the authoritative guard.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	profession := input.Profession
	if input.Role != domain.RoleWorker {
		profession = nil
	}

	user, err := s.repo.CreateUser(ctx, ports.CreateUserParams{
		Email:        email,
		PasswordHash: string(hash),
		Role:         input.Role,
		Name:         strings.TrimSpace(input.Name),
		Phone:        input.Phone,
		Profession:   profession,
	})
	if err != nil {
		return nil, err
	}

	signed, err := s.signer.Issue(user)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(user.Role)).Inc()
	s.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")

	return &ports.AuthResult{Token: signed, Profile: profile}, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password come back as the same generic error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	// Same trim as Register, so a padded email round-trips.
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := s.signer.Issue(user)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &ports.AuthResult{Token: signed, Profile: profile}, nil
}
