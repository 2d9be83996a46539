package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"mydocs/internal/http/middleware"
	"mydocs/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// apiError pins the response of an error to a specific status and code,
// overriding the default mapping in ErrorHandler.
type apiError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *apiError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *apiError) Unwrap() error { return e.Err }

func badRequest(code, message string) error {
	return &apiError{Status: fiber.StatusBadRequest, Code: code, Message: message}
}

func requestIDFromCtx(c *fiber.Ctx) string {
	return middleware.RequestIDFrom(c)
}

// writeError writes a standardized JSON error response.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message
// - detail: raw error text, only sent outside production
func writeError(c *fiber.Ctx, status int, code, message, detail string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
			Detail:  detail,
		},
	}
	return c.Status(status).JSON(res)
}

// classify maps an error to status, code and safe message.
func classify(err error) (int, string, string) {
	var api *apiError
	if errors.As(err, &api) {
		return api.Status, api.Code, api.Message
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusBadRequest:
			return fe.Code, "BAD_REQUEST", "bad request"
		case fiber.StatusNotFound:
			return fe.Code, "NOT_FOUND", "resource not found"
		case fiber.StatusMethodNotAllowed:
			return fe.Code, "METHOD_NOT_ALLOWED", "method not allowed"
		case fiber.StatusRequestEntityTooLarge:
			return fe.Code, "PAYLOAD_TOO_LARGE", "request body too large"
		default:
			return fe.Code, "INTERNAL_ERROR", "internal server error"
		}
	}

	var ve *service.ValidationError
	switch {
	case errors.Is(err, service.ErrMissingFile):
		return fiber.StatusBadRequest, "FILE_REQUIRED", "file is required"
	case errors.Is(err, service.ErrInvalidEncoding):
		return fiber.StatusBadRequest, "INVALID_ENCODING", "file must be sent as <mime-type>;base64,<data>"
	case errors.As(err, &ve):
		return fiber.StatusUnprocessableEntity, "VALIDATION_FAILED", ve.Error()
	case errors.Is(err, service.ErrValidation):
		return fiber.StatusUnprocessableEntity, "VALIDATION_FAILED", "validation failed"
	case errors.Is(err, service.ErrTypeNotFound):
		return fiber.StatusUnprocessableEntity, "TYPE_NOT_FOUND", "type not found"
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", "document not found"
	case errors.Is(err, service.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", "you are not allowed to access this document"
	case errors.Is(err, service.ErrUnauthenticated):
		return fiber.StatusUnauthorized, "UNAUTHENTICATED", "authentication required"
	case errors.Is(err, service.ErrStorageWrite):
		return fiber.StatusInternalServerError, "STORAGE_ERROR", "file storage failed"
	case errors.Is(err, service.ErrPersistence):
		return fiber.StatusInternalServerError, "PERSISTENCE_ERROR", "could not save changes"
	default:
		return fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
// Raw error text is exposed as error.detail unless production is set.
func ErrorHandler(production bool, log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, code, message := classify(err)

		if status >= fiber.StatusInternalServerError {
			log.Error("request_failed",
				"request_id", requestIDFromCtx(c),
				"method", c.Method(),
				"path", c.Path(),
				"code", code,
				"error", err.Error(),
			)
		}

		detail := ""
		if !production {
			detail = err.Error()
		}
		return writeError(c, status, code, message, detail)
	}
}
