package presenter

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the error body shape for every endpoint.
type ErrorResponse struct {
	Message string `json:"message"`
}

// JSON writes v with the given status code.
func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

// Error writes a {"message": ...} body with the given status code.
func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}
