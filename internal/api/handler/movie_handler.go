package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/ports"
)

// MovieHandler handles HTTP requests for the movie catalog.
type MovieHandler struct {
	service ports.MovieService
}

func NewMovieHandler(service ports.MovieService) *MovieHandler {
	return &MovieHandler{service: service}
}

type listMoviesResponse struct {
	Movies       []*domain.Movie `json:"movies"`
	TotalPages   int             `json:"totalPages"`
	CurrentPage  int             `json:"currentPage"`
	TotalResults int64           `json:"totalResults"`
}

type countResponse struct {
	OK    bool  `json:"ok"`
	Count int64 `json:"count"`
}

// List handles GET /movies.
//
// @Summary      List movies
// @Description  Results are sorted by year, newest first.
// @Tags         movies
// @Produce      json
// @Param        search     query     string  false  "Case-insensitive text matched against title and description"
// @Param        year       query     int     false  "Exact release year"
// @Param        maxRating  query     string  false  "Highest age rating to include (G, PG, PG-13, R, NC-17)"
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Page size (default 50, max 100)"
// @Success      200        {object}  listMoviesResponse
// @Failure      400        {object}  errorResponse
// @Failure      500        {object}  errorResponse
// @Router       /movies [get]
func (h *MovieHandler) List(c echo.Context) error {
	page, err := h.service.List(c.Request().Context(), ports.MovieFilters{
		Search:    c.QueryParam("search"),
		Year:      c.QueryParam("year"),
		MaxRating: c.QueryParam("maxRating"),
		Page:      c.QueryParam("page"),
		Limit:     c.QueryParam("limit"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listMoviesResponse{
		Movies:       page.Movies,
		TotalPages:   page.TotalPages,
		CurrentPage:  page.Page,
		TotalResults: page.Total,
	})
}

// Get handles GET /movies/:id.
//
// @Summary      Get a movie
// @Tags         movies
// @Produce      json
// @Param        id   path      string  true  "Movie id"
// @Success      200  {object}  domain.Movie
// @Failure      404  {object}  errorResponse
// @Router       /movies/{id} [get]
func (h *MovieHandler) Get(c echo.Context) error {
	m, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Create handles POST /movies.
//
// @Summary      Create a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      object  true  "Movie payload"
// @Success      201   {object}  domain.Movie
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /movies [post]
func (h *MovieHandler) Create(c echo.Context) error {
	actor, err := callerIdentity(c)
	if err != nil {
		return err
	}
	raw, err := rawBody(c)
	if err != nil {
		return err
	}

	m, err := h.service.Create(c.Request().Context(), actor, raw)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

// Update handles PUT /movies/:id. Only the supplied fields change.
//
// @Summary      Update a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Movie id"
// @Param        body  body      object  true  "Fields to change"
// @Success      200   {object}  domain.Movie
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /movies/{id} [put]
func (h *MovieHandler) Update(c echo.Context) error {
	actor, err := callerIdentity(c)
	if err != nil {
		return err
	}
	raw, err := rawBody(c)
	if err != nil {
		return err
	}

	m, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), raw)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /movies/:id.
//
// @Summary      Delete a movie
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Movie id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /movies/{id} [delete]
func (h *MovieHandler) Delete(c echo.Context) error {
	actor, err := callerIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{OK: true, Message: "movie deleted successfully"})
}

// Count handles GET /debug/movies-count.
//
// @Summary      Count stored movies
// @Tags         debug
// @Produce      json
// @Success      200  {object}  countResponse
// @Router       /debug/movies-count [get]
func (h *MovieHandler) Count(c echo.Context) error {
	n, err := h.service.Count(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{OK: true, Count: n})
}

// rawBody decodes the request body as a JSON object. The movie normalizer
// needs to see which keys were sent, so no struct binding happens here.
func rawBody(c echo.Context) (map[string]any, error) {
	var raw map[string]any
	if err := (&echo.DefaultBinder{}).BindBody(c, &raw); err != nil {
		return nil, domain.Validation("request body must be a JSON object", nil)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}
