package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/brawlstarsonlyfor662-rgb/Rebadion777/internal/server/models"
)

// userContextKey is the echo context key the middleware stores the
// authenticated user under.
const userContextKey = "auth.user"

// UserLoader resolves a user id from a verified token into a full record.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Middleware validates the bearer token and injects the authenticated user
// into the request context. Failure details mirror what clients expect:
// a bad token reads "Could not validate credentials", a token without a
// subject "Invalid authentication credentials", and a dangling user id
// "User not found".
func Middleware(secretKey []byte, users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}

			userID, err := GetUserIDFromToken(parts[1], secretKey)
			if err != nil {
				msg := "Could not validate credentials"
				if err == models.ErrMissingTokenSubject {
					msg = "Invalid authentication credentials"
				}
				return echo.NewHTTPError(http.StatusUnauthorized, msg)
			}

			user, err := users.GetByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user injected by Middleware, or nil on an
// unguarded route.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}

// SetCurrentUser places a user into the context. Test helper.
func SetCurrentUser(c echo.Context, user *models.User) {
	c.Set(userContextKey, user)
}
