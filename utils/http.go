// utils/http.go - shared HTTP error responses
package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler returns the fiber error handler. Errors that reach it (not
// found routes, panics, oversize bodies) are answered as JSON; in
// production 500 details are hidden.
func ErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		} else if !production {
			message = err.Error()
		}

		if production && code == fiber.StatusInternalServerError {
			message = "An error occurred. Please try again later."
		}

		return JSONError(c, code, message)
	}
}

// JSONError sends a JSON error response
func JSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
