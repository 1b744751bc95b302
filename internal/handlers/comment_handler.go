package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/screamhq/screams-backend/internal/middleware"
	"github.com/screamhq/screams-backend/internal/models"
	"github.com/screamhq/screams-backend/internal/repositories"
	"github.com/screamhq/screams-backend/internal/validators"
)

// CommentHandler handles comment-related HTTP requests
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	screamRepository  repositories.ScreamRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, screamRepo repositories.ScreamRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		screamRepository:  screamRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.POST("/screams/:id/comments", h.CreateComment, auth)
}

// CreateComment creates a comment on a scream. The counter bump doubles as the
// existence check: a missing scream fails it without touching anything. The
// comment insert that follows is a separate write; if the process dies in
// between, the counter drifts by one, which the feed's approximate counts
// tolerate.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	user := middleware.CurrentUser(c)
	ctx := c.Request().Context()
	screamID := c.Param("id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"comment": "Must not be empty"})
	}
	if errs := validators.Check(&req); errs != nil {
		return c.JSON(http.StatusBadRequest, errs)
	}

	if err := h.screamRepository.IncrementCommentCount(ctx, screamID); err != nil {
		if err == repositories.ErrScreamNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Scream does not exist!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	comment := &models.Comment{
		Body:       req.Body,
		ScreamID:   screamID,
		UserHandle: user.Handle,
		UserImage:  user.ImageURL,
	}

	if err := h.commentRepository.CreateComment(ctx, comment); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, comment)
}
