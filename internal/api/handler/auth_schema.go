package handler

// --- Request / Response types ---

type registerRequest struct {
	Email      string  `json:"email"      validate:"required,email"`
	Password   string  `json:"password"   validate:"required,min=6"`
	Name       string  `json:"name"       validate:"required"`
	Role       string  `json:"role"       validate:"required,oneof=client worker admin"`
	Phone      *string `json:"phone"`
	Profession *string `json:"profession"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string           `json:"token"`
	User  *profileResponse `json:"user"`
}

type verifyResponse struct {
	Valid bool             `json:"valid"`
	User  *profileResponse `json:"user"`
}
