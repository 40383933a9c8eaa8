package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(message string, data interface{}) Response {
	return Response{
		Success: true,
		Code:    fiber.StatusOK,
		Message: message,
		Data:    data,
	}
}

// ApiError carries an HTTP status through the service layer up to the
// error handler middleware.
type ApiError struct {
	Code    int
	Message string
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewApiError(code int, message string) *ApiError {
	return &ApiError{Code: code, Message: message}
}

// ErrorHandlerMiddleware converts errors bubbled out of handlers into the
// standard response envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		message := err.Error()

		var apiErr *ApiError
		var fiberErr *fiber.Error
		var validationErr *ValidationError
		switch {
		case errors.As(err, &apiErr):
			code = apiErr.Code
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
		case errors.As(err, &validationErr):
			code = fiber.StatusBadRequest
		}

		return ctx.Status(code).JSON(Response{
			Success: false,
			Code:    code,
			Message: message,
		})
	}
}
