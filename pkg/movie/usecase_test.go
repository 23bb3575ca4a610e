package movie_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbncursed/movies/pkg/movie"
	"github.com/vbncursed/movies/pkg/repository/memory"
)

func ratingOf(v float64) *float64 { return &v }

func TestCreateThenGet(t *testing.T) {
	svc := movie.NewService(memory.NewMovieRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, movie.Movie{
		Title:       "Dune",
		Description: "Spice and sand",
		Genre:       "Sci-Fi",
		Rating:      ratingOf(8.5),
		PosterURL:   "https://example.com/dune.jpg",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateValidation(t *testing.T) {
	svc := movie.NewService(memory.NewMovieRepository())
	ctx := context.Background()

	tests := []struct {
		name string
		in   movie.Movie
	}{
		{"missing title", movie.Movie{Genre: "Drama"}},
		{"blank title", movie.Movie{Title: "   "}},
		{"rating too high", movie.Movie{Title: "Up", Rating: ratingOf(10.5)}},
		{"rating negative", movie.Movie{Title: "Up", Rating: ratingOf(-0.1)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.in)
			var verr movie.ErrValidation
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestCreateAcceptsBoundaryAndMissingRating(t *testing.T) {
	svc := movie.NewService(memory.NewMovieRepository())
	ctx := context.Background()

	for _, r := range []*float64{nil, ratingOf(0), ratingOf(10)} {
		_, err := svc.Create(ctx, movie.Movie{Title: "Up", Rating: r})
		require.NoError(t, err)
	}
}

func TestReplaceOverwritesAllFields(t *testing.T) {
	svc := movie.NewService(memory.NewMovieRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, movie.Movie{
		Title:  "Dune",
		Genre:  "Sci-Fi",
		Rating: ratingOf(8.5),
	})
	require.NoError(t, err)

	// Replacement omits genre and rating: they must be unset afterwards,
	// not merged from the old record.
	updated, err := svc.Replace(ctx, created.ID, movie.Movie{Title: "Dune: Part Two"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Dune: Part Two", updated.Title)
	assert.Empty(t, updated.Genre)
	assert.Nil(t, updated.Rating)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestReplaceUnknownID(t *testing.T) {
	svc := movie.NewService(memory.NewMovieRepository())
	_, err := svc.Replace(context.Background(), uuid.New(), movie.Movie{Title: "Ghost"})
	assert.ErrorIs(t, err, movie.ErrNotFound)
}

func TestReplaceValidatesRating(t *testing.T) {
	svc := movie.NewService(memory.NewMovieRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, movie.Movie{Title: "Up"})
	require.NoError(t, err)

	_, err = svc.Replace(ctx, created.ID, movie.Movie{Title: "Up", Rating: ratingOf(11)})
	var verr movie.ErrValidation
	require.ErrorAs(t, err, &verr)
}

func TestDeleteThenGet(t *testing.T) {
	svc := movie.NewService(memory.NewMovieRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, movie.Movie{Title: "Dune"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, movie.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), movie.ErrNotFound)
}

func TestFilterMatches(t *testing.T) {
	drama := movie.Movie{Title: "A", Genre: "Drama", Rating: ratingOf(7)}
	unrated := movie.Movie{Title: "B", Genre: "Drama"}
	scifi := movie.Movie{Title: "C", Genre: "Sci-Fi", Rating: ratingOf(9)}

	assert.True(t, movie.Filter{}.Matches(drama))
	assert.True(t, movie.Filter{Genre: "Drama"}.Matches(drama))
	assert.False(t, movie.Filter{Genre: "Drama"}.Matches(scifi))
	// Exact match, not substring.
	assert.False(t, movie.Filter{Genre: "Dra"}.Matches(drama))

	min := movie.Filter{MinRating: ratingOf(7)}
	assert.True(t, min.Matches(drama))
	assert.False(t, min.Matches(unrated))
	assert.True(t, min.Matches(scifi))

	both := movie.Filter{Genre: "Drama", MinRating: ratingOf(8)}
	assert.False(t, both.Matches(drama))
	assert.False(t, both.Matches(scifi))
}
