package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// DataResponse sends a success payload in the { data: ... } envelope
func DataResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(fiber.Map{
		"data": data,
	})
}

// MessageResponse sends a success message in the { message: ... } envelope
func MessageResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": message,
	})
}

// ErrorResponse sends a failure in the { error: ... } envelope
func ErrorResponse(c *fiber.Ctx, message string, status int) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// NotFoundResponse sends a 404 in the { error: ... } envelope
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound)
}

// EnvelopeErrorResponse sends the full error envelope used by the global
// error handler and the 404 fallthrough, outside the journal API surface
func EnvelopeErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// DataResponseStruct defines the schema for data responses
type DataResponseStruct struct {
	Data interface{} `json:"data"`
}

// MessageResponseStruct defines the schema for message responses
type MessageResponseStruct struct {
	Message string `json:"message"`
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Error string `json:"error"`
}
