package http

import (
	"errors"
	"net/http"

	"traderizz/internal/api/service"
	"traderizz/internal/ledger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// respondError maps domain errors to HTTP status codes. Ledger errors are
// recoverable and reported verbatim so callers can re-prompt.
func respondError(c echo.Context, err error) error {
	var validationErr *ledger.ValidationError
	var notFoundErr *ledger.NotFoundError
	var insufficientErr *ledger.InsufficientQuantityError

	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationErr.Error()})
	case errors.As(err, &notFoundErr):
		return c.JSON(http.StatusNotFound, echo.Map{"error": notFoundErr.Error()})
	case errors.As(err, &insufficientErr):
		return c.JSON(http.StatusConflict, echo.Map{"error": insufficientErr.Error()})
	case errors.Is(err, service.ErrCaptionRequired):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidToken):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}
