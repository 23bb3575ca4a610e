package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/vbncursed/movies/api/http/presenter"
	"github.com/vbncursed/movies/pkg/movie"
)

type MovieHandler struct {
	uc movie.UseCase
}

func NewMovieHandler(uc movie.UseCase) *MovieHandler { return &MovieHandler{uc: uc} }

// movieRequest is the body for create and replace. Decoding into an explicit
// DTO keeps loosely-typed JSON out of the domain layer.
type movieRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genre       string   `json:"genre"`
	Rating      *float64 `json:"rating"`
	PosterURL   string   `json:"posterUrl"`
}

func (req movieRequest) toDomain() movie.Movie {
	return movie.Movie{
		Title:       req.Title,
		Description: req.Description,
		Genre:       req.Genre,
		Rating:      req.Rating,
		PosterURL:   req.PosterURL,
	}
}

// List returns movies, optionally filtered.
// @Summary List movies
// @Tags    movies
// @Produce json
// @Param   genre  query string false "exact genre match"
// @Param   rating query number false "minimum rating"
// @Success 200 {array} movie.Movie
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /movies [get]
func (h *MovieHandler) List(c *fiber.Ctx) error {
	var f movie.Filter
	f.Genre = c.Query("genre")
	if raw := c.Query("rating"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, "rating must be a number")
		}
		f.MinRating = &min
	}
	movies, err := h.uc.List(c.Context(), f)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list movies")
	}
	if movies == nil {
		movies = []movie.Movie{}
	}
	return presenter.JSON(c, http.StatusOK, movies)
}

// GetByID returns a single movie.
// @Summary Get movie
// @Tags    movies
// @Produce json
// @Param   id path string true "movie ID (UUID)"
// @Success 200 {object} movie.Movie
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /movies/{id} [get]
func (h *MovieHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		// A malformed id addresses nothing, same as an unknown one.
		return presenter.Error(c, http.StatusNotFound, "movie not found")
	}
	m, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return h.mapError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, m)
}

// Create adds a movie to the catalog.
// @Summary Create movie
// @Tags    movies
// @Accept  json
// @Produce json
// @Param   input body movieRequest true "movie fields"
// @Security BearerAuth
// @Success 201 {object} movie.Movie
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /movies [post]
func (h *MovieHandler) Create(c *fiber.Ctx) error {
	var req movieRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	m, err := h.uc.Create(c.Context(), req.toDomain())
	if err != nil {
		return h.mapError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, m)
}

// Update replaces every mutable field of a movie.
// @Summary Replace movie
// @Tags    movies
// @Accept  json
// @Produce json
// @Param   id    path string       true "movie ID (UUID)"
// @Param   input body movieRequest true "movie fields"
// @Security BearerAuth
// @Success 200 {object} movie.Movie
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /movies/{id} [put]
func (h *MovieHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "movie not found")
	}
	var req movieRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	m, err := h.uc.Replace(c.Context(), id, req.toDomain())
	if err != nil {
		return h.mapError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, m)
}

// Delete removes a movie.
// @Summary Delete movie
// @Tags    movies
// @Produce json
// @Param   id path string true "movie ID (UUID)"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /movies/{id} [delete]
func (h *MovieHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "movie not found")
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return h.mapError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "Movie deleted"})
}

func (h *MovieHandler) mapError(c *fiber.Ctx, err error) error {
	var verr movie.ErrValidation
	switch {
	case errors.Is(err, movie.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "movie not found")
	case errors.As(err, &verr):
		return presenter.Error(c, http.StatusBadRequest, verr.Error())
	default:
		return presenter.Error(c, http.StatusInternalServerError, "internal error")
	}
}
