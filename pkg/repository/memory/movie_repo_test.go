package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbncursed/movies/pkg/movie"
)

func seed(t *testing.T, r *MovieRepository, title, genre string, rating *float64) movie.Movie {
	t.Helper()
	m := movie.Movie{
		ID:        uuid.New(),
		Title:     title,
		Genre:     genre,
		Rating:    rating,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, r.Create(context.Background(), m))
	return m
}

func rating(v float64) *float64 { return &v }

func TestListFilters(t *testing.T) {
	repo := NewMovieRepository()
	ctx := context.Background()

	drama1 := seed(t, repo, "Whiplash", "Drama", rating(8.5))
	seed(t, repo, "Room", "Drama", rating(6.9))
	scifi := seed(t, repo, "Dune", "Sci-Fi", rating(8.0))
	seed(t, repo, "Sketch", "Comedy", nil)

	all, err := repo.List(ctx, movie.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	byGenre, err := repo.List(ctx, movie.Filter{Genre: "Drama"})
	require.NoError(t, err)
	require.Len(t, byGenre, 2)
	for _, m := range byGenre {
		assert.Equal(t, "Drama", m.Genre)
	}

	byRating, err := repo.List(ctx, movie.Filter{MinRating: rating(7)})
	require.NoError(t, err)
	require.Len(t, byRating, 2)
	assert.ElementsMatch(t, []uuid.UUID{drama1.ID, scifi.ID}, []uuid.UUID{byRating[0].ID, byRating[1].ID})

	// Both filters at once intersect.
	both, err := repo.List(ctx, movie.Filter{Genre: "Drama", MinRating: rating(7)})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, drama1.ID, both[0].ID)
}

func TestListNewestFirst(t *testing.T) {
	repo := NewMovieRepository()

	first := seed(t, repo, "First", "", nil)
	second := seed(t, repo, "Second", "", nil)
	third := seed(t, repo, "Third", "", nil)

	all, err := repo.List(context.Background(), movie.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uuid.UUID{third.ID, second.ID, first.ID}, []uuid.UUID{all[0].ID, all[1].ID, all[2].ID})
}

func TestUpdateAndDeleteUnknown(t *testing.T) {
	repo := NewMovieRepository()
	ctx := context.Background()

	err := repo.Update(ctx, movie.Movie{ID: uuid.New(), Title: "Ghost"})
	assert.ErrorIs(t, err, movie.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), movie.ErrNotFound)
}
