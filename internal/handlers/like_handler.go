package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/screamhq/screams-backend/internal/middleware"
	"github.com/screamhq/screams-backend/internal/models"
	"github.com/screamhq/screams-backend/internal/repositories"
)

// LikeHandler handles like and unlike HTTP requests
type LikeHandler struct {
	likeRepository   repositories.LikeRepository
	screamRepository repositories.ScreamRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, screamRepo repositories.ScreamRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository:   likeRepo,
		screamRepository: screamRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.POST("/screams/:id/like", h.LikeScream, auth)
	e.POST("/screams/:id/unlike", h.UnlikeScream, auth)
}

// LikeScream likes a scream on behalf of the caller. Duplicate likes are
// rejected by the store's unique index, so two concurrent identical requests
// cannot both succeed. The counter increment is a second, non-atomic write.
func (h *LikeHandler) LikeScream(c echo.Context) error {
	user := middleware.CurrentUser(c)
	ctx := c.Request().Context()
	screamID := c.Param("id")

	scream, err := h.screamRepository.GetScreamByID(ctx, screamID)
	if err != nil {
		if err == repositories.ErrScreamNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Scream does not exist!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	like := &models.Like{
		ScreamID:   screamID,
		UserHandle: user.Handle,
	}
	if err := h.likeRepository.CreateLike(ctx, like); err != nil {
		if err == repositories.ErrAlreadyLiked {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Scream already liked!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	if err := h.screamRepository.IncrementLikeCount(ctx, screamID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	scream.LikeCount++
	return c.JSON(http.StatusOK, scream)
}

// UnlikeScream removes the caller's like from a scream
func (h *LikeHandler) UnlikeScream(c echo.Context) error {
	user := middleware.CurrentUser(c)
	ctx := c.Request().Context()
	screamID := c.Param("id")

	scream, err := h.screamRepository.GetScreamByID(ctx, screamID)
	if err != nil {
		if err == repositories.ErrScreamNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Scream does not exist!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	if err := h.likeRepository.DeleteLike(ctx, user.Handle, screamID); err != nil {
		if err == repositories.ErrNotLiked {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Scream not liked!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	if err := h.screamRepository.DecrementLikeCount(ctx, screamID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	scream.LikeCount--
	return c.JSON(http.StatusOK, scream)
}
