package domain

import "time"

// Role classifies what an account can do in the marketplace.
type Role string

const (
	RoleClient Role = "client"
	RoleWorker Role = "worker"
	RoleAdmin  Role = "admin"
)

// ValidRole reports whether r is one of the roles accepted at registration.
func ValidRole(r Role) bool {
	switch r {
	case RoleClient, RoleWorker, RoleAdmin:
		return true
	}
	return false
}

// Availability is the worker's current service state.
type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityBusy      Availability = "busy"
	AvailabilityOffline   Availability = "offline"
)

// ValidAvailability reports whether a is an accepted availability state.
func ValidAvailability(a Availability) bool {
	switch a {
	case AvailabilityAvailable, AvailabilityBusy, AvailabilityOffline:
		return true
	}
	return false
}

// User is the identity record behind every account. The password hash is
// never serialized.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Name         string    `json:"name"`
	Phone        *string   `json:"phone,omitempty"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// WorkerInfo is the 1:1 extension row a worker account may carry. It is
// created lazily: a worker registered without a profession has none until
// the first profile update.
type WorkerInfo struct {
	Profession        string       `json:"profession"`
	Description       *string      `json:"description,omitempty"`
	ExperienceYears   int          `json:"experience_years"`
	HourlyRate        *float64     `json:"hourly_rate,omitempty"`
	ImmediateService  bool         `json:"immediate_service"`
	Availability      Availability `json:"availability"`
	Rating            float64      `json:"rating"`
	TotalRatings      int          `json:"total_ratings"`
	CompletedServices int          `json:"completed_services"`
}

// Profile is the left-joined view of a user with its optional worker
// extension. Worker is nil for clients, admins, and incomplete workers.
type Profile struct {
	User
	Worker *WorkerInfo
}

// WorkerListing is the public directory entry for a verified worker.
// Only workers with an extension row appear in listings.
type WorkerListing struct {
	ID          int64
	Name        string
	AvatarURL   *string
	MemberSince time.Time
	WorkerInfo
}
