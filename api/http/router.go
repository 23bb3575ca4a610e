package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vbncursed/movies/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app. Reads are public;
// mutations on the catalog sit behind the JWT middleware.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	movies *handlers.MovieHandler,
	discover *handlers.DiscoverHandler,
	health *handlers.HealthHandler,
	authMW fiber.Handler,
) {
	api := app.Group("/api")

	// Health and readiness endpoints for probes/monitoring
	api.Get("/health", health.Health)
	api.Get("/ready", health.Ready)

	a := api.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)

	m := api.Group("/movies")
	m.Get("/", movies.List)
	m.Get("/:id", movies.GetByID)
	m.Post("/", authMW, movies.Create)
	m.Put("/:id", authMW, movies.Update)
	m.Delete("/:id", authMW, movies.Delete)

	// TMDB-backed browsing, read-only
	api.Get("/discover", discover.Discover)
}
