package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/quickservice/marketplace-api/internal/core/domain"
	"github.com/quickservice/marketplace-api/internal/core/ports"
	"github.com/quickservice/marketplace-api/pkg/token"
)

func newAuthService(repo ports.UserRepository) *AuthService {
	return NewAuthService(repo, token.NewSigner("secret", time.Hour), zerolog.Nop())
}

func strPtr(s string) *string { return &s }

func TestAuthService_Register_Client(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "alice@example.com",
		Password: "hunter22",
		Name:     "Alice",
		Role:     domain.RoleClient,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a token")
	}
	if result.Profile == nil || result.Profile.Email != "alice@example.com" {
		t.Fatalf("unexpected profile: %+v", result.Profile)
	}
	if result.Profile.Worker != nil {
		t.Fatalf("client must not carry a worker extension")
	}

	stored := repo.users[result.Profile.ID]
	if stored.PasswordHash == "hunter22" {
		t.Fatalf("password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter22")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_WorkerWithProfession(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:      "bob@example.com",
		Password:   "hunter22",
		Name:       "Bob",
		Role:       domain.RoleWorker,
		Profession: strPtr("plumber"),
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.Profile.Worker == nil {
		t.Fatalf("expected worker extension")
	}
	if result.Profile.Worker.Profession != "plumber" {
		t.Fatalf("expected plumber, got %s", result.Profile.Worker.Profession)
	}
}

func TestAuthService_Register_ProfessionIgnoredForClients(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:      "carol@example.com",
		Password:   "hunter22",
		Name:       "Carol",
		Role:       domain.RoleClient,
		Profession: strPtr("plumber"),
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.Profile.Worker != nil {
		t.Fatalf("profession must not create an extension for clients")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	cases := []struct {
		name  string
		input ports.RegisterInput
		want  error
	}{
		{"missing email", ports.RegisterInput{Password: "hunter22", Name: "A", Role: domain.RoleClient}, domain.ErrInvalidInput},
		{"missing name", ports.RegisterInput{Email: "a@b.c", Password: "hunter22", Role: domain.RoleClient}, domain.ErrInvalidInput},
		{"short password", ports.RegisterInput{Email: "a@b.c", Password: "four", Name: "A", Role: domain.RoleClient}, domain.ErrPasswordTooShort},
		{"bad role", ports.RegisterInput{Email: "a@b.c", Password: "hunter22", Name: "A", Role: "superuser"}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	input := ports.RegisterInput{
		Email:    "alice@example.com",
		Password: "hunter22",
		Name:     "Alice",
		Role:     domain.RoleClient,
	}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "alice@example.com",
		Password: "hunter22",
		Name:     "Alice",
		Role:     domain.RoleClient,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Login(context.Background(), "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a token")
	}

	claims, err := token.NewSigner("secret", time.Hour).Verify(result.Token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.Email != "alice@example.com" || claims.Role != domain.RoleClient {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_PaddedEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "alice@example.com",
		Password: "hunter22",
		Name:     "Alice",
		Role:     domain.RoleClient,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Whitespace is trimmed the same way on both paths.
	if _, err := svc.Login(context.Background(), "  alice@example.com  ", "hunter22"); err != nil {
		t.Fatalf("login with padded email: %v", err)
	}
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "alice@example.com",
		Password: "hunter22",
		Name:     "Alice",
		Role:     domain.RoleClient,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Unknown email and wrong password must be indistinguishable.
	if _, err := svc.Login(context.Background(), "nobody@example.com", "hunter22"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "alice@example.com", "wrong-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_StoreDown(t *testing.T) {
	repo := newStubUserRepo()
	repo.failWith = domain.ErrStoreUnavailable
	svc := newAuthService(repo)

	if _, err := svc.Login(context.Background(), "alice@example.com", "hunter22"); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
