package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
)

// callerIdentity returns the identity attached by the Auth middleware. A
// route wired without Auth fails closed with 401.
func callerIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := domain.IdentityFrom(c.Request().Context())
	if !ok {
		return domain.Identity{}, domain.Unauthenticated("authentication required")
	}
	return id, nil
}

// bindAndValidate decodes the JSON body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.Validation("invalid request body", nil)
	}
	return c.Validate(req)
}
