package movie

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UseCase encapsulates catalog operations. Reads are open to anyone; the
// HTTP layer gates mutations behind authentication before they reach here.
type UseCase interface {
	List(ctx context.Context, f Filter) ([]Movie, error)
	GetByID(ctx context.Context, id uuid.UUID) (Movie, error)
	Create(ctx context.Context, m Movie) (Movie, error)
	// Replace overwrites every mutable field of the stored movie.
	// Last write wins; there is no conflict detection.
	Replace(ctx context.Context, id uuid.UUID, m Movie) (Movie, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService returns the default implementation of UseCase.
func NewService(repo Repository) UseCase {
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) List(ctx context.Context, f Filter) ([]Movie, error) {
	return s.repo.List(ctx, f)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (Movie, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, m Movie) (Movie, error) {
	if err := validate(&m); err != nil {
		return Movie{}, err
	}
	m.ID = uuid.New()
	now := s.now()
	m.CreatedAt = now
	m.UpdatedAt = now
	if err := s.repo.Create(ctx, m); err != nil {
		return Movie{}, err
	}
	return m, nil
}

func (s *service) Replace(ctx context.Context, id uuid.UUID, m Movie) (Movie, error) {
	if err := validate(&m); err != nil {
		return Movie{}, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Movie{}, err
	}
	m.ID = existing.ID
	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, m); err != nil {
		return Movie{}, err
	}
	return m, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func validate(m *Movie) error {
	m.Title = strings.TrimSpace(m.Title)
	if m.Title == "" {
		return ErrValidation("title is required")
	}
	if m.Rating != nil && (*m.Rating < 0 || *m.Rating > 10) {
		return ErrValidation("rating must be between 0 and 10")
	}
	return nil
}

// ErrValidation is a simple validation error.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
