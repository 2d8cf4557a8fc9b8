package session

// Requests

type LoginRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type TokenRequest struct {
	Token string `json:"token" validate:"required"`
}
