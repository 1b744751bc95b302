package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/screamhq/screams-backend/internal/models"
	"github.com/screamhq/screams-backend/internal/repositories"
)

// userContextKey is where the middleware stores the authenticated user
const userContextKey = "user"

// JWTAuthMiddleware verifies the bearer token and loads the caller's user
// document into the request context, so handlers have the handle and image URL
// at hand without another lookup.
func JWTAuthMiddleware(jwtSecret string, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorized(c)
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return unauthorized(c)
			}
			tokenString := parts[1]

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				return unauthorized(c)
			}

			user, err := userRepo.GetUserByHandle(c.Request().Context(), claims.Handle)
			if err != nil {
				return unauthorized(c)
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusForbidden, echo.Map{"error": "Unauthorized!"})
}

// CurrentUser returns the authenticated user stored by JWTAuthMiddleware, or
// nil outside an authenticated route.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}
