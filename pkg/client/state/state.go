// Package state holds the client's view state: the search text and its
// debounced copy, the loaded movie list, loading and error indicators, and
// the logged-in identity. It is the terminal-client counterpart of a web
// frontend's page state.
package state

import (
	"context"
	"sync"
	"time"

	"github.com/vbncursed/movies/pkg/movie"
)

// DefaultDebounce is the quiet period before a search term propagates.
const DefaultDebounce = 500 * time.Millisecond

// ListFetcher is the slice of the API client the store needs.
type ListFetcher interface {
	Movies(ctx context.Context, f movie.Filter) ([]movie.Movie, error)
}

// Identity is the logged-in user, nil when anonymous.
type Identity struct {
	ID    string
	Email string
}

// Store is safe for concurrent use; the debounce timer fires on its own
// goroutine.
type Store struct {
	fetch  ListFetcher
	window time.Duration

	mu         sync.Mutex
	searchTerm string
	debounced  string
	movies     []movie.Movie
	loading    bool
	errMsg     string
	user       *Identity

	timer *time.Timer
	// gen stamps each fetch; a response whose stamp is no longer current
	// is stale and must not overwrite the list.
	gen uint64

	onUpdate func()
}

func NewStore(fetch ListFetcher, window time.Duration) *Store {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Store{fetch: fetch, window: window}
}

// SetOnUpdate registers a callback invoked after every applied fetch
// result. The UI uses it to redraw; tests use it to synchronize.
func (s *Store) SetOnUpdate(fn func()) {
	s.mu.Lock()
	s.onUpdate = fn
	s.mu.Unlock()
}

// SetSearchTerm records a keystroke. Propagation is delayed by the quiet
// window; another keystroke before it elapses restarts the timer.
func (s *Store) SetSearchTerm(term string) {
	s.mu.Lock()
	s.searchTerm = term
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.window, func() {
		s.mu.Lock()
		s.debounced = term
		s.mu.Unlock()
		s.Refresh(context.Background())
	})
	s.mu.Unlock()
}

// Refresh fetches the list for the current debounced term. The term is
// interpreted as a genre match; empty loads the whole catalog. A result
// that arrives after a newer fetch started is discarded.
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.loading = true
	s.errMsg = ""
	f := movie.Filter{Genre: s.debounced}
	s.mu.Unlock()

	movies, err := s.fetch.Movies(ctx, f)

	s.mu.Lock()
	if gen != s.gen {
		// A newer search superseded this one.
		s.mu.Unlock()
		return
	}
	s.loading = false
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = "Error fetching movies. Please try again later."
		}
		s.errMsg = msg
	} else {
		s.movies = movies
	}
	cb := s.onUpdate
	s.mu.Unlock()

	if cb != nil {
		cb()
	}
}

// SetUser records a successful login or registration.
func (s *Store) SetUser(u Identity) {
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
}

// ClearUser handles logout.
func (s *Store) ClearUser() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

func (s *Store) User() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// LoggedIn reports whether edit/delete affordances should be shown.
func (s *Store) LoggedIn() bool { return s.User() != nil }

func (s *Store) Movies() []movie.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]movie.Movie, len(s.movies))
	copy(res, s.movies)
	return res
}

func (s *Store) SearchTerm() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchTerm
}

func (s *Store) DebouncedTerm() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debounced
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}
