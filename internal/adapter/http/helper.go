package http

import (
	"errors"
	"net/http"

	"angel-forum-backend/internal/domain/deal"

	"github.com/labstack/echo/v4"
)

// ---- helpers ----

// statusForError maps domain error kinds to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, deal.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, deal.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, deal.ErrInvalidTransition),
		errors.Is(err, deal.ErrInvalidOperation),
		errors.Is(err, deal.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func jsonDomainError(c echo.Context, err error) error {
	return c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
}
