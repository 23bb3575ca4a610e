package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vbncursed/movies/pkg/client/api"
	"github.com/vbncursed/movies/pkg/client/session"
	"github.com/vbncursed/movies/pkg/client/state"
	"github.com/vbncursed/movies/pkg/movie"
)

// App drives the terminal frontend: it reads user input, calls the API
// adapter and renders the view state.
type App struct {
	api    *api.Client
	state  *state.Store
	sess   session.Store
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(client *api.Client, st *state.Store, sess session.Store) *App {
	a := &App{
		api:    client,
		state:  st,
		sess:   sess,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	// A token may survive restarts; the identity details are unknown until
	// the next login, but the session counts as authenticated.
	if _, ok := sess.Token(); ok {
		st.SetUser(state.Identity{})
	}
	st.SetOnUpdate(func() { a.render() })
	return a
}

func (a *App) Run(ctx context.Context) {
	a.state.Refresh(ctx)
	runREPL(ctx, a, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool { return a.state.LoggedIn() }

// Register prompts for credentials and creates an account. The backend
// issues a token on registration, so the user ends up logged in.
func (a *App) Register(ctx context.Context) error {
	creds, err := a.authPrompt(ctx, a.api.Register)
	if err != nil {
		return err
	}
	a.state.SetUser(state.Identity{ID: creds.ID, Email: creds.Email})
	printlnFn("Welcome,", creds.Email)
	a.state.Refresh(ctx)
	return nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	creds, err := a.authPrompt(ctx, a.api.Login)
	if err != nil {
		return err
	}
	a.state.SetUser(state.Identity{ID: creds.ID, Email: creds.Email})
	printlnFn("Welcome,", creds.Email)
	a.state.Refresh(ctx)
	return nil
}

func (a *App) authPrompt(ctx context.Context, call func(context.Context, string, string) (api.Credentials, error)) (api.Credentials, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return api.Credentials{}, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return api.Credentials{}, err
	}
	creds, err := call(ctx, email, string(password))
	if err != nil {
		printlnFn("Error:", err.Error())
		return api.Credentials{}, err
	}
	return creds, nil
}

// Logout clears the stored token and the identity. Nothing happens server
// side; the token simply ages out.
func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(); err != nil {
		return err
	}
	a.state.ClearUser()
	printlnFn("Logged out")
	return nil
}

// List re-fetches and renders the catalog for the current search term.
func (a *App) List(ctx context.Context) error {
	a.state.Refresh(ctx)
	return nil
}

// Search records the typed text; the list refreshes after the debounce
// window, exactly as a search box would.
func (a *App) Search(ctx context.Context, term string) error {
	a.state.SetSearchTerm(term)
	printlnFn("Searching for genre:", term)
	return nil
}

// Show renders full details of a movie picked by list index.
func (a *App) Show(ctx context.Context, arg string) error {
	m, err := a.movieByIndex(arg)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	fresh, err := a.api.Movie(ctx, m.ID)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	a.renderDetails(fresh)
	return nil
}

// Add prompts for every movie field and creates a catalog entry.
func (a *App) Add(ctx context.Context) error {
	m, err := a.movieForm(movie.Movie{})
	if err != nil {
		return err
	}
	if _, err := a.api.CreateMovie(ctx, m); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Movie added")
	a.state.Refresh(ctx)
	return nil
}

// Edit opens an inline form seeded with the current field values, submits
// a full replace and refetches the list (no optimistic local patch).
func (a *App) Edit(ctx context.Context, arg string) error {
	current, err := a.movieByIndex(arg)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	m, err := a.movieForm(current)
	if err != nil {
		return err
	}
	if _, err := a.api.UpdateMovie(ctx, current.ID, m); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Movie updated")
	a.state.Refresh(ctx)
	return nil
}

// Delete asks for confirmation, removes the movie and refetches the list.
func (a *App) Delete(ctx context.Context, arg string) error {
	m, err := a.movieByIndex(arg)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete %q? (y/N)", m.Title), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		printlnFn("Cancelled")
		return nil
	}
	if err := a.api.DeleteMovie(ctx, m.ID); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Movie deleted")
	a.state.Refresh(ctx)
	return nil
}

// Discover browses TMDB instead of the catalog.
func (a *App) Discover(ctx context.Context, query string) error {
	movies, err := a.api.Discover(ctx, query, 1)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	if len(movies) == 0 {
		printlnFn("Nothing found")
		return nil
	}
	for _, m := range movies {
		printlnFn(fmt.Sprintf("  %-40s %s  %s", truncate(m.Title, 40), formatRating(&m.VoteAverage), m.ReleaseDate))
	}
	return nil
}

// movieForm prompts for every field; pressing Enter keeps the seed value.
func (a *App) movieForm(seed movie.Movie) (movie.Movie, error) {
	var m movie.Movie
	var err error
	if m.Title, err = a.promptDefault("Title", seed.Title); err != nil {
		return movie.Movie{}, err
	}
	if m.Genre, err = a.promptDefault("Genre", seed.Genre); err != nil {
		return movie.Movie{}, err
	}
	ratingSeed := ""
	if seed.Rating != nil {
		ratingSeed = strconv.FormatFloat(*seed.Rating, 'f', -1, 64)
	}
	raw, err := a.promptDefault("Rating (0-10, empty for none)", ratingSeed)
	if err != nil {
		return movie.Movie{}, err
	}
	if raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			printlnFn("Error: rating must be a number")
			return movie.Movie{}, err
		}
		m.Rating = &r
	}
	if m.PosterURL, err = a.promptDefault("Poster URL", seed.PosterURL); err != nil {
		return movie.Movie{}, err
	}
	if m.Description, err = a.promptDefault("Description", seed.Description); err != nil {
		return movie.Movie{}, err
	}
	return m, nil
}

func (a *App) promptDefault(label, current string) (string, error) {
	prompt := label
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", label, current)
	}
	value, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if value == "" {
		return current, nil
	}
	return value, nil
}

func (a *App) movieByIndex(arg string) (movie.Movie, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return movie.Movie{}, fmt.Errorf("expected a list number, got %q", arg)
	}
	movies := a.state.Movies()
	if n < 1 || n > len(movies) {
		return movie.Movie{}, fmt.Errorf("no movie #%d in the current list", n)
	}
	return movies[n-1], nil
}

func (a *App) render() {
	if msg := a.state.ErrorMessage(); msg != "" {
		printlnFn("Error:", msg)
		return
	}
	movies := a.state.Movies()
	if len(movies) == 0 {
		printlnFn("No movies")
		return
	}
	for i, m := range movies {
		printlnFn(fmt.Sprintf("%3d. %-40s %s  %s", i+1, truncate(m.Title, 40), formatRating(m.Rating), m.Genre))
	}
}

func (a *App) renderDetails(m movie.Movie) {
	printlnFn("Title:      ", m.Title)
	printlnFn("Genre:      ", orDash(m.Genre))
	printlnFn("Rating:     ", formatRating(m.Rating))
	printlnFn("Poster:     ", orDash(m.PosterURL))
	printlnFn("Description:", orDash(m.Description))
	printlnFn("Added:      ", m.CreatedAt.Format("2006-01-02 15:04"))
}

func formatRating(r *float64) string {
	if r == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*r, 'f', 1, 64)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
