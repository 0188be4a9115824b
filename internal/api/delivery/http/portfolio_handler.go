package http

import (
	"net/http"

	"traderizz/internal/api/dto"
	"traderizz/internal/api/service"
	"traderizz/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PortfolioHandler handles HTTP requests for holdings and realized profit.
type PortfolioHandler struct {
	portfolioService service.PortfolioService
	logger           *logger.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService service.PortfolioService, logger *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, logger: logger}
}

// RegisterRoutes registers the portfolio routes to the Echo group.
func (h *PortfolioHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/holdings", h.ListHoldings)
	g.POST("/buys", h.RecordBuy)
	g.POST("/sells", h.RecordSell)
	g.GET("/profits", h.ProfitSeries)
}

// RecordBuy godoc
// @Summary Record a stock purchase
// @Description Merge a buy into the user's position at weighted-average cost
// @Tags portfolio
// @Accept  json
// @Produce  json
// @Param   buy  body    dto.RecordBuyRequest   true    "Buy to record"
// @Success 201 {object} dto.HoldingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /portfolio/buys [post]
func (h *PortfolioHandler) RecordBuy(c echo.Context) error {
	var req dto.RecordBuyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	holding, err := h.portfolioService.RecordBuy(c.Request().Context(), userIDFromContext(c), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, holding)
}

// RecordSell godoc
// @Summary Record a stock sale
// @Description Realize profit against the position's average cost
// @Tags portfolio
// @Accept  json
// @Produce  json
// @Param   sell  body    dto.RecordSellRequest   true    "Sell to record"
// @Success 201 {object} dto.SellResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /portfolio/sells [post]
func (h *PortfolioHandler) RecordSell(c echo.Context) error {
	var req dto.RecordSellRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	sale, err := h.portfolioService.RecordSell(c.Request().Context(), userIDFromContext(c), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, sale)
}

// ListHoldings godoc
// @Summary List open positions
// @Tags portfolio
// @Produce  json
// @Success 200 {array} dto.HoldingResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolio/holdings [get]
func (h *PortfolioHandler) ListHoldings(c echo.Context) error {
	holdings, err := h.portfolioService.ListHoldings(c.Request().Context(), userIDFromContext(c))
	if err != nil {
		h.logger.Error("Failed to list holdings", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list holdings"})
	}
	return c.JSON(http.StatusOK, holdings)
}

// ProfitSeries godoc
// @Summary Get the realized-profit chart series
// @Tags portfolio
// @Produce  json
// @Success 200 {object} dto.ProfitSeriesResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolio/profits [get]
func (h *PortfolioHandler) ProfitSeries(c echo.Context) error {
	series, err := h.portfolioService.ProfitSeries(c.Request().Context(), userIDFromContext(c))
	if err != nil {
		h.logger.Error("Failed to build profit series", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build profit series"})
	}
	return c.JSON(http.StatusOK, series)
}
