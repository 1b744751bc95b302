package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/screamhq/screams-backend/internal/cache"
	"github.com/screamhq/screams-backend/internal/middleware"
	"github.com/screamhq/screams-backend/internal/models"
	"github.com/screamhq/screams-backend/internal/repositories"
	"github.com/screamhq/screams-backend/internal/validators"
)

// ScreamHandler handles scream-related HTTP requests
type ScreamHandler struct {
	screamRepository  repositories.ScreamRepository
	commentRepository repositories.CommentRepository
	feedCache         *cache.FeedCache
}

// NewScreamHandler creates a new ScreamHandler
func NewScreamHandler(screamRepo repositories.ScreamRepository, commentRepo repositories.CommentRepository, feedCache *cache.FeedCache) *ScreamHandler {
	return &ScreamHandler{
		screamRepository:  screamRepo,
		commentRepository: commentRepo,
		feedCache:         feedCache,
	}
}

// RegisterScreamRoutes registers scream-related routes
func (h *ScreamHandler) RegisterScreamRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/screams", h.GetScreams)
	e.POST("/screams", h.CreateScream, auth)
	e.GET("/screams/:id", h.GetScream, auth)
	e.DELETE("/screams/:id", h.DeleteScream, auth)
}

// GetScreams returns the public feed, newest first, served cache-aside
func (h *ScreamHandler) GetScreams(c echo.Context) error {
	ctx := c.Request().Context()

	var screams []models.Scream
	found, err := h.feedCache.GetJSON(ctx, cache.KeyScreamsFeed, &screams)
	if err == nil && found {
		return c.JSON(http.StatusOK, screams)
	}

	screams, err = h.screamRepository.GetAllScreams(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	// best-effort; a failed cache write never fails the request
	_ = h.feedCache.SetJSON(ctx, cache.KeyScreamsFeed, screams)

	return c.JSON(http.StatusOK, screams)
}

// CreateScream creates a new scream authored by the caller
func (h *ScreamHandler) CreateScream(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req models.CreateScreamRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"body": "Must not be empty!"})
	}
	if errs := validators.Check(&req); errs != nil {
		return c.JSON(http.StatusBadRequest, errs)
	}

	scream := &models.Scream{
		Body:       req.Body,
		UserHandle: user.Handle,
		UserImage:  user.ImageURL,
	}

	if err := h.screamRepository.CreateScream(c.Request().Context(), scream); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "something went wrong!"})
	}

	_ = h.feedCache.Invalidate(c.Request().Context(), cache.KeyScreamsFeed)

	return c.JSON(http.StatusOK, scream)
}

// GetScream returns a single scream together with its comments
func (h *ScreamHandler) GetScream(c echo.Context) error {
	ctx := c.Request().Context()
	screamID := c.Param("id")

	scream, err := h.screamRepository.GetScreamByID(ctx, screamID)
	if err != nil {
		if err == repositories.ErrScreamNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Scream not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	comments, err := h.commentRepository.GetCommentsByScreamID(ctx, screamID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, models.ScreamDetails{Scream: *scream, Comments: comments})
}

// DeleteScream deletes a scream owned by the caller. Only the scream document
// is removed here; comments, likes and notifications are cascaded by the
// reactor.
func (h *ScreamHandler) DeleteScream(c echo.Context) error {
	user := middleware.CurrentUser(c)
	ctx := c.Request().Context()
	screamID := c.Param("id")

	scream, err := h.screamRepository.GetScreamByID(ctx, screamID)
	if err != nil {
		if err == repositories.ErrScreamNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Scream not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	if scream.UserHandle != user.Handle {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Unauthorized"})
	}

	if err := h.screamRepository.DeleteScream(ctx, screamID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	_ = h.feedCache.Invalidate(ctx, cache.KeyScreamsFeed)

	return c.JSON(http.StatusOK, echo.Map{"message": "Scream deleted successfully"})
}
