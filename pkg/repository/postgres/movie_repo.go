package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vbncursed/movies/pkg/movie"
)

// MovieRepository implements movie.Repository backed by PostgreSQL (pgx).
type MovieRepository struct {
	pool *pgxpool.Pool
}

func NewMovieRepository(pool *pgxpool.Pool) (*MovieRepository, error) {
	r := &MovieRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *MovieRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS movies (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	genre TEXT NOT NULL DEFAULT '',
	rating DOUBLE PRECISION CHECK (rating >= 0 AND rating <= 10),
	poster_url TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_movies_genre ON movies(genre);
`)
	return err
}

func (r *MovieRepository) Create(ctx context.Context, m movie.Movie) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO movies (id, title, description, genre, rating, poster_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, m.ID, m.Title, m.Description, m.Genre, m.Rating, m.PosterURL, m.CreatedAt, m.UpdatedAt)
	return err
}

func (r *MovieRepository) GetByID(ctx context.Context, id uuid.UUID) (movie.Movie, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, title, description, genre, rating, poster_url, created_at, updated_at
FROM movies WHERE id = $1
`, id)
	return scanMovie(row)
}

func (r *MovieRepository) List(ctx context.Context, f movie.Filter) ([]movie.Movie, error) {
	// Filter conditions are appended positionally; both at once intersect.
	query := `
SELECT id, title, description, genre, rating, poster_url, created_at, updated_at
FROM movies WHERE 1=1`
	var args []any
	if f.Genre != "" {
		args = append(args, f.Genre)
		query += ` AND genre = $1`
	}
	if f.MinRating != nil {
		args = append(args, *f.MinRating)
		if len(args) == 1 {
			query += ` AND rating >= $1`
		} else {
			query += ` AND rating >= $2`
		}
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []movie.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func (r *MovieRepository) Update(ctx context.Context, m movie.Movie) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE movies
SET title = $2, description = $3, genre = $4, rating = $5, poster_url = $6, updated_at = $7
WHERE id = $1
`, m.ID, m.Title, m.Description, m.Genre, m.Rating, m.PosterURL, m.UpdatedAt)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return movie.ErrNotFound
	}
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return movie.ErrNotFound
	}
	return nil
}

func scanMovie(row pgx.Row) (movie.Movie, error) {
	var m movie.Movie
	var created, updated time.Time
	err := row.Scan(&m.ID, &m.Title, &m.Description, &m.Genre, &m.Rating, &m.PosterURL, &created, &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return movie.Movie{}, movie.ErrNotFound
		}
		return movie.Movie{}, err
	}
	m.CreatedAt = created.UTC()
	m.UpdatedAt = updated.UTC()
	return m, nil
}
