package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. The password is kept only as a bcrypt hash;
// accounts are never mutated or deleted once created.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
