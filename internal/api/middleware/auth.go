package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/ports"
)

// Auth verifies the bearer token, reloads the user from the store and attaches
// the resulting identity to the request context. The stored role wins over
// the role carried in the token.
func Auth(tokens ports.TokenVerifier, users ports.IdentityLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return domain.ErrMissingToken
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				return err
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if domain.KindOf(err) == domain.KindNotFound {
					return domain.ErrUnknownIdentity
				}
				return err
			}

			id := domain.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}
			req := c.Request()
			c.SetRequest(req.WithContext(domain.WithIdentity(req.Context(), id)))

			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
