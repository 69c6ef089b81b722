package types

import (
	"github.com/google/uuid"
)

// UserWithAuth is the authenticated operator attached to admin requests.
type UserWithAuth struct {
	ID    uuid.UUID `json:"id" validate:"required"`
	Email string    `json:"email" validate:"required,email"`
	Role  string    `json:"role" validate:"omitempty"`
}
