package http

import (
	"net/http"

	"traderizz/internal/api/dto"
	"traderizz/internal/api/service"
	"traderizz/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ProfileHandler handles HTTP requests for user profiles.
type ProfileHandler struct {
	profileService service.ProfileService
	logger         *logger.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, logger: logger}
}

// RegisterRoutes registers the profile routes to the Echo group.
func (h *ProfileHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetProfile)
	g.PUT("", h.UpdateProfile)
	g.POST("/avatar", h.UpdateAvatar)
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags profile
// @Produce  json
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	profile, err := h.profileService.Get(c.Request().Context(), userIDFromContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Tags profile
// @Accept  json
// @Produce  json
// @Param   profile  body    dto.UpdateProfileRequest   true    "Profile fields"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var req dto.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	profile, err := h.profileService.Update(c.Request().Context(), userIDFromContext(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateAvatar godoc
// @Summary Upload a new avatar image
// @Tags profile
// @Accept  mpfd
// @Produce  json
// @Param   image  formData    file    true  "Avatar image"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /profile/avatar [post]
func (h *ProfileHandler) UpdateAvatar(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Image upload required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid image upload"})
	}
	defer file.Close()

	profile, err := h.profileService.UpdateAvatar(c.Request().Context(), userIDFromContext(c), file)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}
