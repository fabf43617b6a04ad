package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/ports"
)

// ProfileHandler serves the caller's own viewing profiles.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type createProfileRequest struct {
	Name         string `json:"name"         validate:"required,max=50"`
	Avatar       string `json:"avatar"`
	MaxAgeRating string `json:"maxAgeRating"`
}

type updateProfileRequest struct {
	Name         *string `json:"name"         validate:"omitempty,max=50"`
	Avatar       *string `json:"avatar"`
	MaxAgeRating *string `json:"maxAgeRating"`
}

// List handles GET /profiles.
//
// @Summary      List the caller's profiles
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Profile
// @Failure      401  {object}  errorResponse
// @Router       /profiles [get]
func (h *ProfileHandler) List(c echo.Context) error {
	owner, err := callerIdentity(c)
	if err != nil {
		return err
	}
	profiles, err := h.service.List(c.Request().Context(), owner)
	if err != nil {
		return err
	}
	if profiles == nil {
		profiles = []*domain.Profile{}
	}
	return c.JSON(http.StatusOK, profiles)
}

// Create handles POST /profiles.
//
// @Summary      Create a profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProfileRequest  true  "Profile details"
// @Success      201   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse  "Role not allowed or limit of 5 profiles reached"
// @Router       /profiles [post]
func (h *ProfileHandler) Create(c echo.Context) error {
	owner, err := callerIdentity(c)
	if err != nil {
		return err
	}
	var req createProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Create(c.Request().Context(), owner, ports.CreateProfileInput{
		Name:         req.Name,
		Avatar:       req.Avatar,
		MaxAgeRating: req.MaxAgeRating,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// Update handles PUT /profiles/:id.
//
// @Summary      Update a profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Profile id"
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /profiles/{id} [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	owner, err := callerIdentity(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Update(c.Request().Context(), owner, c.Param("id"), ports.UpdateProfileInput{
		Name:         req.Name,
		Avatar:       req.Avatar,
		MaxAgeRating: req.MaxAgeRating,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /profiles/:id.
//
// @Summary      Delete a profile
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Profile id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /profiles/{id} [delete]
func (h *ProfileHandler) Delete(c echo.Context) error {
	owner, err := callerIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), owner, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "profile deleted successfully"})
}
