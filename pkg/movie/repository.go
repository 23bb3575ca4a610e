package movie

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when the referenced movie does not exist.
var ErrNotFound = errors.New("movie not found")

// Repository abstracts persistence concerns from the domain layer.
// Implementations may be in-memory, SQL, NoSQL, etc.
type Repository interface {
	Create(ctx context.Context, m Movie) error
	GetByID(ctx context.Context, id uuid.UUID) (Movie, error)
	List(ctx context.Context, f Filter) ([]Movie, error)
	Update(ctx context.Context, m Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
}
