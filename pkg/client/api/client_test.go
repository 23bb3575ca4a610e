package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbncursed/movies/pkg/client/session"
	"github.com/vbncursed/movies/pkg/movie"
)

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@x.com", body["email"])
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "u1", "email": "a@x.com", "token": "jwt-token"})
	}))
	defer srv.Close()

	sess := session.NewMemStore()
	c := New(srv.URL, sess)

	creds, err := c.Login(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", creds.Token)

	stored, ok := sess.Token()
	require.True(t, ok)
	assert.Equal(t, "jwt-token", stored)
}

func TestBearerAttachedOnlyOnMutations(t *testing.T) {
	var headers []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = append(headers, r.Header.Get("Authorization"))
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`[]`))
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"` + uuid.NewString() + `","title":"Dune"}`))
		case http.MethodDelete:
			_, _ = w.Write([]byte(`{"message":"Movie deleted"}`))
		}
	}))
	defer srv.Close()

	sess := session.NewMemStore()
	require.NoError(t, sess.SetToken("jwt-token"))
	c := New(srv.URL, sess)
	ctx := context.Background()

	_, err := c.Movies(ctx, movie.Filter{})
	require.NoError(t, err)

	_, err = c.CreateMovie(ctx, movie.Movie{Title: "Dune"})
	require.NoError(t, err)

	require.NoError(t, c.DeleteMovie(ctx, uuid.New()))

	require.Len(t, headers, 3)
	assert.Empty(t, headers[0], "read must not carry the token")
	assert.Equal(t, "Bearer jwt-token", headers[1])
	assert.Equal(t, "Bearer jwt-token", headers[2])
}

func TestFilterEncodedInQuery(t *testing.T) {
	var rawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, session.NewMemStore())
	min := 7.5
	_, err := c.Movies(context.Background(), movie.Filter{Genre: "Sci-Fi", MinRating: &min})
	require.NoError(t, err)
	assert.Contains(t, rawQuery, "genre=Sci-Fi")
	assert.Contains(t, rawQuery, "rating=7.5")
}

func TestServerErrorSurfacedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"movie not found"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, session.NewMemStore())
	_, err := c.Movie(context.Background(), uuid.New())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "movie not found", apiErr.Message)
	assert.Equal(t, "movie not found", apiErr.Error())
}

func TestErrorWithoutBodyGetsFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, session.NewMemStore())
	_, err := c.Movies(context.Background(), movie.Filter{})
	require.Error(t, err)
	assert.Equal(t, "server returned 500", err.Error())
}

func TestLogoutClearsToken(t *testing.T) {
	sess := session.NewMemStore()
	require.NoError(t, sess.SetToken("jwt-token"))

	c := New("http://unused", sess)
	require.NoError(t, c.Logout())

	_, ok := sess.Token()
	assert.False(t, ok)
}
