package review

import "github.com/google/uuid"

type CreateReviewRequest struct {
	UserID  uuid.UUID `json:"user_id" validate:"required"`
	Rating  int       `json:"rating" validate:"min=0,max=5"`
	Comment string    `json:"comment" validate:"max=2000"`
}
