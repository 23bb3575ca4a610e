package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/vbncursed/movies/pkg/movie"
)

// MovieRepository is an in-memory movie.Repository with the same ordering
// contract as the postgres one (newest first).
type MovieRepository struct {
	mu     sync.RWMutex
	movies map[uuid.UUID]movie.Movie
	seq    map[uuid.UUID]int
	next   int
}

func NewMovieRepository() *MovieRepository {
	return &MovieRepository{
		movies: make(map[uuid.UUID]movie.Movie),
		seq:    make(map[uuid.UUID]int),
	}
}

func (r *MovieRepository) Create(ctx context.Context, m movie.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movies[m.ID] = m
	r.next++
	r.seq[m.ID] = r.next
	return nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id uuid.UUID) (movie.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.movies[id]
	if !ok {
		return movie.Movie{}, movie.ErrNotFound
	}
	return m, nil
}

func (r *MovieRepository) List(ctx context.Context, f movie.Filter) ([]movie.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var res []movie.Movie
	for _, m := range r.movies {
		if f.Matches(m) {
			res = append(res, m)
		}
	}
	sort.Slice(res, func(i, j int) bool { return r.seq[res[i].ID] > r.seq[res[j].ID] })
	return res, nil
}

func (r *MovieRepository) Update(ctx context.Context, m movie.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.movies[m.ID]; !ok {
		return movie.ErrNotFound
	}
	r.movies[m.ID] = m
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.movies[id]; !ok {
		return movie.ErrNotFound
	}
	delete(r.movies, id)
	delete(r.seq, id)
	return nil
}
