package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/ports"
)

// ExternalHandler proxies lookups to the movie metadata provider.
type ExternalHandler struct {
	trailers ports.TrailerProvider
	log      zerolog.Logger
}

// NewExternalHandler accepts a nil provider when no API key is configured.
func NewExternalHandler(trailers ports.TrailerProvider, log zerolog.Logger) *ExternalHandler {
	return &ExternalHandler{trailers: trailers, log: log}
}

// Trailer handles GET /external/trailer/:tmdbId.
//
// @Summary      Fetch trailer videos from TMDb
// @Description  Returns the TMDb /movie/{id}/videos payload unchanged.
// @Tags         external
// @Produce      json
// @Param        tmdbId  path      int  true  "TMDb movie id"
// @Success      200     {object}  object
// @Failure      400     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Failure      503     {object}  errorResponse
// @Router       /external/trailer/{tmdbId} [get]
func (h *ExternalHandler) Trailer(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("tmdbId"))
	if err != nil || id <= 0 {
		return domain.Validation("invalid TMDb id", map[string]string{"tmdbId": "tmdbId must be a positive integer"})
	}
	if h.trailers == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "TMDb integration is not configured")
	}

	body, err := h.trailers.Videos(c.Request().Context(), id)
	if err != nil {
		h.log.Error().Err(err).Int("tmdb_id", id).Msg("trailer lookup failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch data from TMDb")
	}
	return c.JSONBlob(http.StatusOK, body)
}
