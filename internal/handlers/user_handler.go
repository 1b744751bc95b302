package handlers

import (
	"fmt"
	"math/rand"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/screamhq/screams-backend/internal/middleware"
	"github.com/screamhq/screams-backend/internal/models"
	"github.com/screamhq/screams-backend/internal/repositories"
	"github.com/screamhq/screams-backend/internal/storage"
)

// notificationsLimit caps the notifications returned with the credentials
const notificationsLimit = 10

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	userRepository         repositories.UserRepository
	screamRepository       repositories.ScreamRepository
	likeRepository         repositories.LikeRepository
	notificationRepository repositories.NotificationRepository
	uploader               storage.Uploader
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(
	userRepo repositories.UserRepository,
	screamRepo repositories.ScreamRepository,
	likeRepo repositories.LikeRepository,
	notifRepo repositories.NotificationRepository,
	uploader storage.Uploader,
) *UserHandler {
	return &UserHandler{
		userRepository:         userRepo,
		screamRepository:       screamRepo,
		likeRepository:         likeRepo,
		notificationRepository: notifRepo,
		uploader:               uploader,
	}
}

// RegisterUserRoutes registers user profile routes
func (h *UserHandler) RegisterUserRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/user", h.GetAuthenticatedUser, auth)
	e.POST("/user", h.UpdateProfile, auth)
	e.GET("/user/:handle", h.GetUserDetails)
	e.POST("/user/image", h.UploadImage, auth)
}

// GetAuthenticatedUser returns the caller's credentials together with their
// likes and most recent notifications
func (h *UserHandler) GetAuthenticatedUser(c echo.Context) error {
	user := middleware.CurrentUser(c)
	ctx := c.Request().Context()

	likes, err := h.likeRepository.GetLikesByUserHandle(ctx, user.Handle)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	notifications, err := h.notificationRepository.GetNotificationsByRecipient(ctx, user.Handle, notificationsLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"credentials":   user,
		"likes":         likes,
		"notifications": notifications,
	})
}

// UpdateProfile applies a partial update to the caller's profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"general": "Invalid request payload"})
	}

	if err := h.userRepository.UpdateDetails(c.Request().Context(), user.Handle, req.Details()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "User details updated successfully!"})
}

// GetUserDetails returns a user's public profile and their screams
func (h *UserHandler) GetUserDetails(c echo.Context) error {
	handle := c.Param("handle")
	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByHandle(ctx, handle)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	screams, err := h.screamRepository.GetScreamsByUserHandle(ctx, handle)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":    user,
		"screams": screams,
	})
}

// UploadImage stores a new profile image and points the user document at it.
// The reactor takes care of repairing the image denormalized onto the user's
// screams once the update event comes through.
func (h *UserHandler) UploadImage(c echo.Context) error {
	user := middleware.CurrentUser(c)

	if h.uploader == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"message": "Image uploads are not configured"})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Please provide a valid image!"})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "image/png" && contentType != "image/jpeg" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Please provide a valid image!"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	defer file.Close()

	objectName := fmt.Sprintf("%d%s", rand.Int63n(1_000_000_000_000), filepath.Ext(fileHeader.Filename))
	imageURL, err := h.uploader.Upload(c.Request().Context(), objectName, contentType, file)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	if err := h.userRepository.UpdateImageURL(c.Request().Context(), user.Handle, imageURL); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Image uploaded successfully!"})
}
