package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
)

// RequireRoles admits identities whose role is in roles. It must be chained
// after Auth; a request without an identity is rejected as unauthenticated.
func RequireRoles(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := domain.IdentityFrom(c.Request().Context())
			if !ok {
				return domain.Unauthenticated("authentication required")
			}
			if _, ok := allowed[id.Role]; !ok {
				return domain.Forbidden(fmt.Sprintf("role %q is not allowed to access this resource", id.Role))
			}
			return next(c)
		}
	}
}
