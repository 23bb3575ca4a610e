package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/vbncursed/movies/api/http/presenter"
	"github.com/vbncursed/movies/pkg/tmdb"
)

// DiscoverHandler serves the TMDB-backed browsing surface. It is read-only
// and independent of the catalog store.
type DiscoverHandler struct {
	client *tmdb.Client
}

func NewDiscoverHandler(client *tmdb.Client) *DiscoverHandler {
	return &DiscoverHandler{client: client}
}

// Discover lists popular movies from TMDB, or search results when q is set.
// @Summary Browse TMDB movies
// @Tags    discover
// @Produce json
// @Param   q    query string  false "search query"
// @Param   page query integer false "result page (default 1)"
// @Success 200 {array} tmdb.Movie
// @Failure 502 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /discover [get]
func (h *DiscoverHandler) Discover(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))

	var (
		movies []tmdb.Movie
		err    error
	)
	if q := c.Query("q"); q != "" {
		movies, err = h.client.Search(c.Context(), q, page)
	} else {
		movies, err = h.client.Discover(c.Context(), page)
	}
	if err != nil {
		if errors.Is(err, tmdb.ErrDisabled) {
			return presenter.Error(c, http.StatusServiceUnavailable, "discovery is not configured")
		}
		return presenter.Error(c, http.StatusBadGateway, "failed to reach TMDB")
	}
	if movies == nil {
		movies = []tmdb.Movie{}
	}
	return presenter.JSON(c, http.StatusOK, movies)
}
