package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/taskloop/taskloop/internal/domain"
)

// envelope is the uniform response shape for success and error paths alike.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

func respondList(c *gin.Context, count int, data any) {
	c.JSON(http.StatusOK, envelope{Success: true, Count: &count, Data: data})
}

// respondError is the single point where failures become HTTP responses.
// Anything it does not recognize is a 500 with a generic message; the real
// error goes to the log, and to the response only in debug mode.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError
	message := errInternalServer

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		status, message = http.StatusBadRequest, ve.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, errInvalidCredentials
	case errors.Is(err, domain.ErrTokenInvalid):
		status, message = http.StatusUnauthorized, errNotAuthorized
	case errors.Is(err, domain.ErrEmailTaken):
		status, message = http.StatusConflict, errEmailTaken
	case errors.Is(err, domain.ErrTaskNotFound):
		status, message = http.StatusNotFound, errTaskNotFound
	case errors.Is(err, domain.ErrUserNotFound):
		status, message = http.StatusNotFound, errUserNotFound
	default:
		logger.ErrorContext(c.Request.Context(), "request failed", "error", err)
	}

	body := envelope{Success: false, Message: message}
	if gin.IsDebugging() {
		body.Stack = err.Error()
	}
	c.JSON(status, body)
}

// RouteNotFound answers unmatched paths before any handler runs.
func RouteNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, envelope{
		Success: false,
		Message: "Route not found - " + c.Request.URL.Path,
	})
}

// bindError turns gin binding failures into a ValidationError whose field
// messages get comma-joined at the boundary.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Validation("Invalid request body")
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return &domain.ValidationError{Messages: msgs}
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return "Please provide " + field
	case "email":
		return "Please provide a valid email"
	case "min":
		if field == "password" {
			return "Password must be at least 6 characters long"
		}
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
	default:
		return field + " is invalid"
	}
}
