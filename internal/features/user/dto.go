package user

import "github.com/google/uuid"

// Requests

type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type UpdateProfileRequest struct {
	UserID       uuid.UUID `json:"user_id" validate:"required"`
	ProfileImage *string   `json:"profile_image"`
}

type ResetPasswordRequest struct {
	Email       string `validate:"required,email"`
	Code        string `validate:"required"`
	NewPassword string `validate:"required,min=8,max=72"`
}
