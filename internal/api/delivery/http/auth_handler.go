package http

import (
	"net/http"

	"traderizz/internal/api/dto"
	"traderizz/internal/api/service"
	"traderizz/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService service.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// RegisterRoutes registers the auth routes to the Echo group. The credential
// endpoints take the rate-limit middleware; the session endpoint requires a
// valid access token.
func (h *AuthHandler) RegisterRoutes(g *echo.Group, authMW, rateMW echo.MiddlewareFunc) {
	g.POST("/signup", h.SignUp, rateMW)
	g.POST("/signin", h.SignIn, rateMW)
	g.POST("/signout", h.SignOut)
	g.POST("/refresh", h.Refresh)
	g.GET("/session", h.Session, authMW)
}

// SignUp godoc
// @Summary Register a new account
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials  body    dto.SignUpRequest   true    "Email and password"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req dto.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	session, err := h.authService.SignUp(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, session)
}

// SignIn godoc
// @Summary Sign in with email and password
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials  body    dto.SignInRequest   true    "Email and password"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req dto.SignInRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	tokens, err := h.authService.SignIn(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, tokens)
}

// SignOut godoc
// @Summary Revoke the refresh token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   token  body    dto.SignOutRequest   true    "Refresh token to revoke"
// @Success 204 {object} nil
// @Router /auth/signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	var req dto.SignOutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.authService.SignOut(c.Request().Context(), req.RefreshToken); err != nil {
		h.logger.Error("Failed to sign out", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to sign out"})
	}

	return c.NoContent(http.StatusNoContent)
}

// Refresh godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   token  body    dto.RefreshRequest   true    "Refresh token"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req dto.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	tokens, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, tokens)
}

// Session godoc
// @Summary Get the authenticated user
// @Tags auth
// @Produce  json
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	session, err := h.authService.Session(c.Request().Context(), userIDFromContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, session)
}
