package service

import (
	"context"
	"strings"
	"time"

	"github.com/quickservice/marketplace-api/internal/core/domain"
	"github.com/quickservice/marketplace-api/internal/core/ports"
)

// stubUserRepo is an in-memory ports.UserRepository for service tests.
type stubUserRepo struct {
	nextID  int64
	users   map[int64]*domain.User
	workers map[int64]*domain.WorkerInfo

	listings   []domain.WorkerListing
	lastFilter ports.WorkerFilter

	failWith error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:   make(map[int64]*domain.User),
		workers: make(map[int64]*domain.WorkerInfo),
	}
}

func cloneUser(u *domain.User) *domain.User {
	cp := *u
	return &cp
}

func (r *stubUserRepo) CreateUser(_ context.Context, params ports.CreateUserParams) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Email, params.Email) {
			return nil, domain.ErrUserExists
		}
	}

	r.nextID++
	u := &domain.User{
		ID:           r.nextID,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Role:         params.Role,
		Name:         params.Name,
		Phone:        params.Phone,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	r.users[u.ID] = u

	if params.Role == domain.RoleWorker && params.Profession != nil {
		r.workers[u.ID] = &domain.WorkerInfo{
			Profession:   *params.Profession,
			Availability: domain.AvailabilityAvailable,
		}
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) GetProfile(_ context.Context, userID int64) (*domain.Profile, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	p := &domain.Profile{User: *cloneUser(u)}
	if w, ok := r.workers[userID]; ok {
		cp := *w
		p.Worker = &cp
	}
	return p, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, params ports.UpdateProfileParams) error {
	if r.failWith != nil {
		return r.failWith
	}
	u, ok := r.users[params.UserID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Name = params.Name
	u.Phone = params.Phone
	if params.AvatarURL != nil {
		u.AvatarURL = params.AvatarURL
	}
	u.UpdatedAt = time.Now()

	if params.Role != domain.RoleWorker {
		return nil
	}
	w, ok := r.workers[params.UserID]
	if !ok {
		if params.Profession == nil {
			return nil
		}
		w = &domain.WorkerInfo{Availability: domain.AvailabilityAvailable}
		r.workers[params.UserID] = w
	}
	if params.Profession != nil {
		w.Profession = *params.Profession
	}
	w.Description = params.Description
	if params.ExperienceYears != nil {
		w.ExperienceYears = *params.ExperienceYears
	}
	w.HourlyRate = params.HourlyRate
	return nil
}

func (r *stubUserRepo) UpdateAvatar(_ context.Context, userID int64, avatarURL string) error {
	if r.failWith != nil {
		return r.failWith
	}
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.AvatarURL = &avatarURL
	u.UpdatedAt = time.Now()
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	if r.failWith != nil {
		return r.failWith
	}
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) DeleteUser(_ context.Context, userID int64) error {
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.users[userID]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, userID)
	delete(r.workers, userID)
	return nil
}

func (r *stubUserRepo) ListWorkers(_ context.Context, filter ports.WorkerFilter) ([]domain.WorkerListing, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	r.lastFilter = filter
	return r.listings, nil
}

func (r *stubUserRepo) GetWorker(_ context.Context, userID int64) (*domain.WorkerListing, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	u, ok := r.users[userID]
	if !ok || u.Role != domain.RoleWorker {
		return nil, domain.ErrWorkerNotFound
	}
	w, ok := r.workers[userID]
	if !ok {
		return nil, domain.ErrWorkerNotFound
	}
	return &domain.WorkerListing{
		ID:          u.ID,
		Name:        u.Name,
		AvatarURL:   u.AvatarURL,
		MemberSince: u.CreatedAt,
		WorkerInfo:  *w,
	}, nil
}

func (r *stubUserRepo) UpdateAvailability(_ context.Context, userID int64, availability domain.Availability) error {
	if r.failWith != nil {
		return r.failWith
	}
	w, ok := r.workers[userID]
	if !ok {
		return domain.ErrWorkerNotFound
	}
	w.Availability = availability
	return nil
}
