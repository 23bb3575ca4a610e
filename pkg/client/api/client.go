// Package api wraps the movies backend endpoints for the terminal client.
// It mirrors the server contract one call per endpoint and surfaces the
// server-provided error message verbatim.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/vbncursed/movies/pkg/client/session"
	"github.com/vbncursed/movies/pkg/movie"
	"github.com/vbncursed/movies/pkg/tmdb"
)

// Error carries the HTTP status and the server's {message} body.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// Client talks to the movies backend. The bearer token comes from the
// session store and is attached only on mutating calls.
type Client struct {
	baseURL string
	session session.Store
	httpDo  *http.Client
}

func New(baseURL string, sess session.Store) *Client {
	return &Client{
		baseURL: baseURL,
		session: sess,
		httpDo: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Credentials is the auth response: the identity plus the issued token.
type Credentials struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Register creates an account and persists the issued token.
func (c *Client) Register(ctx context.Context, email, password string) (Credentials, error) {
	return c.authCall(ctx, "/api/auth/register", email, password)
}

// Login authenticates and persists the issued token.
func (c *Client) Login(ctx context.Context, email, password string) (Credentials, error) {
	return c.authCall(ctx, "/api/auth/login", email, password)
}

func (c *Client) authCall(ctx context.Context, path, email, password string) (Credentials, error) {
	body := map[string]string{"email": email, "password": password}
	var creds Credentials
	if err := c.do(ctx, http.MethodPost, path, body, &creds, false); err != nil {
		return Credentials{}, err
	}
	if err := c.session.SetToken(creds.Token); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// Logout drops the stored token. Tokens are not revoked server-side.
func (c *Client) Logout() error {
	return c.session.Clear()
}

// Movies lists catalog movies matching the filter.
func (c *Client) Movies(ctx context.Context, f movie.Filter) ([]movie.Movie, error) {
	q := url.Values{}
	if f.Genre != "" {
		q.Set("genre", f.Genre)
	}
	if f.MinRating != nil {
		q.Set("rating", strconv.FormatFloat(*f.MinRating, 'f', -1, 64))
	}
	path := "/api/movies"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	var movies []movie.Movie
	if err := c.do(ctx, http.MethodGet, path, nil, &movies, false); err != nil {
		return nil, err
	}
	return movies, nil
}

// Movie fetches a single movie by id.
func (c *Client) Movie(ctx context.Context, id uuid.UUID) (movie.Movie, error) {
	var m movie.Movie
	if err := c.do(ctx, http.MethodGet, "/api/movies/"+id.String(), nil, &m, false); err != nil {
		return movie.Movie{}, err
	}
	return m, nil
}

// CreateMovie adds a movie. Requires a logged-in session.
func (c *Client) CreateMovie(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	var created movie.Movie
	if err := c.do(ctx, http.MethodPost, "/api/movies", m, &created, true); err != nil {
		return movie.Movie{}, err
	}
	return created, nil
}

// UpdateMovie replaces every field of the movie. Requires a logged-in session.
func (c *Client) UpdateMovie(ctx context.Context, id uuid.UUID, m movie.Movie) (movie.Movie, error) {
	var updated movie.Movie
	if err := c.do(ctx, http.MethodPut, "/api/movies/"+id.String(), m, &updated, true); err != nil {
		return movie.Movie{}, err
	}
	return updated, nil
}

// DeleteMovie removes a movie. Requires a logged-in session.
func (c *Client) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/movies/"+id.String(), nil, nil, true)
}

// Discover browses TMDB through the backend. Empty query lists popular.
func (c *Client) Discover(ctx context.Context, query string, page int) ([]tmdb.Movie, error) {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	path := "/api/discover"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	var movies []tmdb.Movie
	if err := c.do(ctx, http.MethodGet, path, nil, &movies, false); err != nil {
		return nil, err
	}
	return movies, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if token, ok := c.session.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpDo.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode}
		var msg struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&msg) == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
