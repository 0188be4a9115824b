package http

import (
	"io"
	"net/http"

	"traderizz/internal/api/service"
	"traderizz/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests for the shared feed.
type PostHandler struct {
	postService service.PostService
	logger      *logger.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService service.PostService, logger *logger.Logger) *PostHandler {
	return &PostHandler{postService: postService, logger: logger}
}

// RegisterRoutes registers the feed routes to the Echo group.
func (h *PostHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListPosts)
	g.POST("", h.CreatePost)
}

// ListPosts godoc
// @Summary List feed posts
// @Tags posts
// @Produce  json
// @Success 200 {array} dto.PostResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) ListPosts(c echo.Context) error {
	posts, err := h.postService.List(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list posts", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list posts"})
	}
	return c.JSON(http.StatusOK, posts)
}

// CreatePost godoc
// @Summary Create a feed post
// @Description Create a captioned post with an optional image, sent as multipart form data
// @Tags posts
// @Accept  mpfd
// @Produce  json
// @Param   caption  formData    string  true   "Post caption"
// @Param   image    formData    file    false  "Image attachment"
// @Success 201 {object} dto.PostResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	caption := c.FormValue("caption")

	var image io.Reader
	if fileHeader, err := c.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid image upload"})
		}
		defer file.Close()
		image = file
	}

	post, err := h.postService.Create(c.Request().Context(), userIDFromContext(c), caption, image)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, post)
}
