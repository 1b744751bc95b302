package handlers

import (
	"fmt"
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/screamhq/screams-backend/internal/models"
	"github.com/screamhq/screams-backend/internal/repositories"
	"github.com/screamhq/screams-backend/internal/validators"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	firebaseAuth   *auth.Client
	jwtSecret      string
	storageBucket  string
}

// NewAuthHandler creates a new AuthHandler. firebaseAuthClient may be nil when
// no Firebase credentials are configured; the firebase-login route then
// rejects all requests.
func NewAuthHandler(userRepo repositories.UserRepository, firebaseAuthClient *auth.Client, jwtSecret, storageBucket string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		firebaseAuth:   firebaseAuthClient,
		jwtSecret:      jwtSecret,
		storageBucket:  storageBucket,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(e *echo.Echo) {
	e.POST("/users/login", h.Login)
	e.POST("/users/signup", h.Signup)
	e.POST("/users/firebase-login", h.FirebaseLogin)
}

// Signup handles user registration. The user document carries the credentials,
// so account and profile are created by one insert: a rejected signup leaves
// no partial state behind.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"general": "Invalid request payload"})
	}
	if errs := validators.Check(&req); errs != nil {
		return c.JSON(http.StatusBadRequest, errs)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"general": "Something went wrong, please try again later!"})
	}

	user := &models.User{
		Handle:   req.Handle,
		Email:    req.Email,
		Password: string(hashedPassword),
		ImageURL: h.defaultImageURL(),
		UserID:   primitive.NewObjectID().Hex(),
	}

	if err := h.userRepository.CreateUser(c.Request().Context(), user); err != nil {
		switch err {
		case repositories.ErrHandleTaken:
			return c.JSON(http.StatusBadRequest, echo.Map{"handle": "this handle is already in use!"})
		case repositories.ErrEmailTaken:
			return c.JSON(http.StatusBadRequest, echo.Map{"email": "this email is already in use!"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"general": "Something went wrong, please try again later!"})
		}
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"general": "Something went wrong, please try again later!"})
	}

	return c.JSON(http.StatusCreated, echo.Map{"token": token})
}

// Login handles user authentication with email and password
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"general": "Invalid request payload"})
	}
	if errs := validators.Check(&req); errs != nil {
		return c.JSON(http.StatusBadRequest, errs)
	}

	user, err := h.userRepository.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"general": "Wrong credentials, please try again!"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"general": "Wrong credentials, please try again!"})
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"general": "Something went wrong, please try again later!"})
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// FirebaseLogin verifies a Firebase ID token and exchanges it for a local JWT.
// The token's subject must already have a user document (created via signup).
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req FirebaseLoginRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"general": "Invalid request payload"})
	}
	if errs := validators.Check(&req); errs != nil {
		return c.JSON(http.StatusBadRequest, errs)
	}

	if h.firebaseAuth == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"general": "Firebase login is not configured"})
	}

	token, err := h.firebaseAuth.VerifyIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Unauthorized!"})
	}

	user, err := h.userRepository.GetUserByUserID(c.Request().Context(), token.UID)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found!"})
	}

	localJWT, err := h.generateJWT(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"general": "Something went wrong, please try again later!"})
	}

	return c.JSON(http.StatusOK, echo.Map{"token": localJWT})
}

func (h *AuthHandler) defaultImageURL() string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/no-image.png?alt=media", h.storageBucket)
}

// generateJWT generates a JWT token for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		Handle: user.Handle,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
