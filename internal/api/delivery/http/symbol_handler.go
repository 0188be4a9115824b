package http

import (
	"net/http"

	"traderizz/internal/api/service"
	"traderizz/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SymbolHandler handles HTTP requests for the symbol directory.
type SymbolHandler struct {
	symbolService service.SymbolService
	logger        *logger.Logger
}

// NewSymbolHandler creates a new SymbolHandler.
func NewSymbolHandler(symbolService service.SymbolService, logger *logger.Logger) *SymbolHandler {
	return &SymbolHandler{symbolService: symbolService, logger: logger}
}

// RegisterRoutes registers the symbol routes to the Echo group.
func (h *SymbolHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.SearchSymbols)
}

// SearchSymbols godoc
// @Summary Search tradable symbols
// @Description Case-insensitive substring match on ticker or company name
// @Tags symbols
// @Produce  json
// @Param   q  query    string  false  "Search query"
// @Success 200 {array} dto.SymbolResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /symbols [get]
func (h *SymbolHandler) SearchSymbols(c echo.Context) error {
	symbols, err := h.symbolService.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		h.logger.Error("Failed to search symbols", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to search symbols"})
	}
	return c.JSON(http.StatusOK, symbols)
}
