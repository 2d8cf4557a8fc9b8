package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	UserID         uuid.UUID `json:"user_id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	ProfileImage   string    `json:"profile_image,omitempty"`
	ResetCode      string    `json:"-"`
	IsActive       bool      `json:"is_active"`
	IsAdmin        bool      `json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
}
