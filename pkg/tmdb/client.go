package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("tmdb api key is empty")

// Client is a minimal TMDB (The Movie Database) client used for the
// read-only discovery surface. Results never enter the catalog store.
type Client struct {
	APIKey    string
	BaseURL   string
	ImageBase string
	httpDo    *http.Client
}

func New(apiKey, baseURL, imageBase string) *Client {
	if baseURL == "" {
		baseURL = "https://api.themoviedb.org/3"
	}
	if imageBase == "" {
		imageBase = "https://image.tmdb.org/t/p/w500"
	}
	return &Client{
		APIKey:    apiKey,
		BaseURL:   baseURL,
		ImageBase: imageBase,
		httpDo: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Enabled reports whether a key is configured.
func (c *Client) Enabled() bool { return c.APIKey != "" }

// Movie is a normalized TMDB entry. VoteAverage is already on the same
// 0–10 scale the catalog uses.
type Movie struct {
	TMDBID      int64   `json:"tmdbId"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview,omitempty"`
	ReleaseDate string  `json:"releaseDate,omitempty"`
	VoteAverage float64 `json:"voteAverage"`
	PosterURL   string  `json:"posterUrl,omitempty"`
}

type discoverResponse struct {
	Page    int `json:"page"`
	Results []struct {
		ID          int64   `json:"id"`
		Title       string  `json:"title"`
		Overview    string  `json:"overview"`
		ReleaseDate string  `json:"release_date"`
		VoteAverage float64 `json:"vote_average"`
		PosterPath  string  `json:"poster_path"`
	} `json:"results"`
	TotalPages int `json:"total_pages"`
}

// Discover returns popular movies sorted by popularity.
func (c *Client) Discover(ctx context.Context, page int) ([]Movie, error) {
	q := url.Values{}
	q.Set("sort_by", "popularity.desc")
	return c.fetch(ctx, "/discover/movie", q, page)
}

// Search returns movies matching the query.
func (c *Client) Search(ctx context.Context, query string, page int) ([]Movie, error) {
	q := url.Values{}
	q.Set("query", query)
	return c.fetch(ctx, "/search/movie", q, page)
}

func (c *Client) fetch(ctx context.Context, path string, q url.Values, page int) ([]Movie, error) {
	if c.APIKey == "" {
		return nil, ErrDisabled
	}
	if page < 1 {
		page = 1
	}
	q.Set("api_key", c.APIKey)
	q.Set("page", strconv.Itoa(page))

	endpoint := fmt.Sprintf("%s%s?%s", c.BaseURL, path, q.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errMap map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errMap)
		return nil, fmt.Errorf("tmdb http %d: %v", resp.StatusCode, errMap)
	}
	var out discoverResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	movies := make([]Movie, 0, len(out.Results))
	for _, r := range out.Results {
		m := Movie{
			TMDBID:      r.ID,
			Title:       r.Title,
			Overview:    r.Overview,
			ReleaseDate: r.ReleaseDate,
			VoteAverage: r.VoteAverage,
		}
		if r.PosterPath != "" {
			m.PosterURL = c.ImageBase + r.PosterPath
		}
		movies = append(movies, m)
	}
	return movies, nil
}
