package state

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbncursed/movies/pkg/movie"
)

// fakeFetcher records calls and, in blocking mode, parks each call on its
// own channel so tests can complete them in any order.
type fakeFetcher struct {
	mu       sync.Mutex
	calls    []movie.Filter
	results  []movie.Movie
	err      error
	blocking bool
	waiters  []chan []movie.Movie
}

func (f *fakeFetcher) Movies(ctx context.Context, filter movie.Filter) ([]movie.Movie, error) {
	f.mu.Lock()
	f.calls = append(f.calls, filter)
	var ch chan []movie.Movie
	if f.blocking {
		ch = make(chan []movie.Movie)
		f.waiters = append(f.waiters, ch)
	}
	f.mu.Unlock()
	if ch != nil {
		return <-ch, f.err
	}
	return f.results, f.err
}

func (f *fakeFetcher) waiter(i int) chan []movie.Movie {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.waiters[i]
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeFetcher) lastCall() movie.Filter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func waitSignal(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for state update")
	}
}

func TestDebounceCollapsesKeystrokes(t *testing.T) {
	fetcher := &fakeFetcher{results: []movie.Movie{{Title: "Inception"}}}
	s := NewStore(fetcher, 50*time.Millisecond)

	updated := make(chan struct{}, 1)
	s.SetOnUpdate(func() { updated <- struct{}{} })

	// Three keystrokes inside the quiet window must produce exactly one
	// downstream call, for the final text.
	s.SetSearchTerm("Inc")
	s.SetSearchTerm("Ince")
	s.SetSearchTerm("Inception")

	waitSignal(t, updated)

	assert.Equal(t, 1, fetcher.callCount())
	assert.Equal(t, "Inception", fetcher.lastCall().Genre)
	assert.Equal(t, "Inception", s.DebouncedTerm())
	require.Len(t, s.Movies(), 1)
}

func TestSeparateKeystrokesEachFire(t *testing.T) {
	fetcher := &fakeFetcher{}
	s := NewStore(fetcher, 10*time.Millisecond)

	updated := make(chan struct{}, 2)
	s.SetOnUpdate(func() { updated <- struct{}{} })

	s.SetSearchTerm("Drama")
	waitSignal(t, updated)
	s.SetSearchTerm("Comedy")
	waitSignal(t, updated)

	assert.Equal(t, 2, fetcher.callCount())
}

func TestStaleResponseDiscarded(t *testing.T) {
	fetcher := &fakeFetcher{blocking: true}
	s := NewStore(fetcher, time.Millisecond)

	updated := make(chan struct{}, 2)
	s.SetOnUpdate(func() { updated <- struct{}{} })

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); s.Refresh(context.Background()) }()
	// Let the first fetch register before starting the one that supersedes it.
	for fetcher.callCount() == 0 {
		time.Sleep(time.Millisecond)
	}
	go func() { defer wg.Done(); s.Refresh(context.Background()) }()
	for fetcher.callCount() < 2 {
		time.Sleep(time.Millisecond)
	}

	// Complete the newer fetch first, then the stale one.
	fetcher.waiter(1) <- []movie.Movie{{Title: "fresh"}}
	waitSignal(t, updated)
	fetcher.waiter(0) <- []movie.Movie{{Title: "stale"}}
	wg.Wait()

	movies := s.Movies()
	require.Len(t, movies, 1)
	assert.Equal(t, "fresh", movies[0].Title, "stale response must not overwrite the list")
	select {
	case <-updated:
		t.Fatal("stale response must not notify the UI")
	default:
	}
}

func TestFetchErrorSetsMessage(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("movie not found")}
	s := NewStore(fetcher, time.Millisecond)

	s.Refresh(context.Background())

	assert.Equal(t, "movie not found", s.ErrorMessage())
	assert.False(t, s.Loading())

	// A following success clears the message.
	fetcher.err = nil
	fetcher.results = []movie.Movie{{Title: "Up"}}
	s.Refresh(context.Background())
	assert.Empty(t, s.ErrorMessage())
	assert.Len(t, s.Movies(), 1)
}

func TestUserLifecycle(t *testing.T) {
	s := NewStore(&fakeFetcher{}, time.Millisecond)

	assert.False(t, s.LoggedIn())
	assert.Nil(t, s.User())

	s.SetUser(Identity{ID: "u1", Email: "a@x.com"})
	require.True(t, s.LoggedIn())
	assert.Equal(t, "a@x.com", s.User().Email)

	s.ClearUser()
	assert.False(t, s.LoggedIn())
}
