package handler

import (
	"time"

	"github.com/quickservice/marketplace-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type updateProfileRequest struct {
	Name            string   `json:"name"             validate:"required"`
	Phone           *string  `json:"phone"`
	AvatarURL       *string  `json:"avatar_url"`
	Profession      *string  `json:"profession"`
	Description     *string  `json:"description"`
	ExperienceYears *int     `json:"experience_years" validate:"omitempty,gte=0"`
	HourlyRate      *float64 `json:"hourly_rate"      validate:"omitempty,gte=0"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6"`
}

type updateAvatarRequest struct {
	AvatarURL string `json:"avatar_url" validate:"required"`
}

type deleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

type availabilityRequest struct {
	Availability string `json:"availability" validate:"required,oneof=available busy offline"`
}

// --- Response types ---

// profileResponse is the flat merged user view: worker fields appear at the
// top level when the extension row exists, mirroring the mobile client's
// contract. The password hash has no field here at all.
type profileResponse struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Phone      *string   `json:"phone,omitempty"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Profession        *string  `json:"profession,omitempty"`
	Description       *string  `json:"description,omitempty"`
	ExperienceYears   *int     `json:"experience_years,omitempty"`
	HourlyRate        *float64 `json:"hourly_rate,omitempty"`
	ImmediateService  *bool    `json:"immediate_service,omitempty"`
	Availability      *string  `json:"availability,omitempty"`
	Rating            *float64 `json:"rating,omitempty"`
	TotalRatings      *int     `json:"total_ratings,omitempty"`
	CompletedServices *int     `json:"completed_services,omitempty"`
}

type profileEnvelope struct {
	User *profileResponse `json:"user"`
}

type workerResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	AvatarURL         *string   `json:"avatar_url,omitempty"`
	Profession        string    `json:"profession"`
	Description       *string   `json:"description,omitempty"`
	ExperienceYears   int       `json:"experience_years"`
	HourlyRate        *float64  `json:"hourly_rate,omitempty"`
	ImmediateService  bool      `json:"immediate_service"`
	Availability      string    `json:"availability"`
	Rating            float64   `json:"rating"`
	TotalRatings      int       `json:"total_ratings"`
	CompletedServices int       `json:"completed_services"`
	MemberSince       time.Time `json:"member_since"`
}

type workersEnvelope struct {
	Workers []workerResponse `json:"workers"`
}

// --- Mappers ---

func toProfileResponse(p *domain.Profile) *profileResponse {
	resp := &profileResponse{
		ID:         p.ID,
		Email:      p.Email,
		Name:       p.Name,
		Role:       string(p.Role),
		Phone:      p.Phone,
		AvatarURL:  p.AvatarURL,
		IsVerified: p.IsVerified,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if w := p.Worker; w != nil {
		availability := string(w.Availability)
		resp.Profession = &w.Profession
		resp.Description = w.Description
		resp.ExperienceYears = &w.ExperienceYears
		resp.HourlyRate = w.HourlyRate
		resp.ImmediateService = &w.ImmediateService
		resp.Availability = &availability
		resp.Rating = &w.Rating
		resp.TotalRatings = &w.TotalRatings
		resp.CompletedServices = &w.CompletedServices
	}
	return resp
}

// toUserResponse renders the identity part only, for routes that never load
// the worker extension.
func toUserResponse(u *domain.User) *profileResponse {
	return &profileResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       string(u.Role),
		Phone:      u.Phone,
		AvatarURL:  u.AvatarURL,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func toWorkerResponse(l *domain.WorkerListing) workerResponse {
	return workerResponse{
		ID:                l.ID,
		Name:              l.Name,
		AvatarURL:         l.AvatarURL,
		Profession:        l.Profession,
		Description:       l.Description,
		ExperienceYears:   l.ExperienceYears,
		HourlyRate:        l.HourlyRate,
		ImmediateService:  l.ImmediateService,
		Availability:      string(l.Availability),
		Rating:            l.Rating,
		TotalRatings:      l.TotalRatings,
		CompletedServices: l.CompletedServices,
		MemberSince:       l.MemberSince,
	}
}
