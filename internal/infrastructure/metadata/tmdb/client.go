// Package tmdb is a small client for The Movie Database v3 API.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/ports"
)

const (
	DefaultBaseURL = "https://api.themoviedb.org/3"

	genreLanguage   = "es"
	popularLanguage = "es-ES"
	certCountry     = "US"
	maxBodyBytes    = 4 << 20
)

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRate caps outgoing requests per second. Zero or less disables throttling.
func WithRate(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(4), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	Status int
	Path   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb %s returned %d", e.Path, e.Status)
}

// Videos returns the raw /movie/{id}/videos payload.
func (c *Client) Videos(ctx context.Context, tmdbID int) (json.RawMessage, error) {
	body, err := c.get(ctx, fmt.Sprintf("/movie/%d/videos", tmdbID), nil)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("tmdb videos: invalid JSON payload")
	}
	return json.RawMessage(body), nil
}

type genreList struct {
	Genres []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

func (c *Client) Genres(ctx context.Context) (map[int]string, error) {
	var res genreList
	if err := c.getJSON(ctx, "/genre/movie/list", url.Values{"language": {genreLanguage}}, &res); err != nil {
		return nil, err
	}
	out := make(map[int]string, len(res.Genres))
	for _, g := range res.Genres {
		out[g.ID] = g.Name
	}
	return out, nil
}

type popularPage struct {
	Results []struct {
		ID          int    `json:"id"`
		Title       string `json:"title"`
		Overview    string `json:"overview"`
		ReleaseDate string `json:"release_date"`
		PosterPath  string `json:"poster_path"`
		GenreIDs    []int  `json:"genre_ids"`
	} `json:"results"`
}

func (c *Client) Popular(ctx context.Context, page int) ([]ports.UpstreamMovie, error) {
	if page <= 0 {
		page = 1
	}
	var res popularPage
	q := url.Values{"language": {popularLanguage}, "page": {strconv.Itoa(page)}}
	if err := c.getJSON(ctx, "/movie/popular", q, &res); err != nil {
		return nil, err
	}
	out := make([]ports.UpstreamMovie, len(res.Results))
	for i, r := range res.Results {
		out[i] = ports.UpstreamMovie{
			ID:          r.ID,
			Title:       r.Title,
			Overview:    r.Overview,
			ReleaseDate: r.ReleaseDate,
			PosterPath:  r.PosterPath,
			GenreIDs:    r.GenreIDs,
		}
	}
	return out, nil
}

type releaseDates struct {
	Results []struct {
		Country string `json:"iso_3166_1"`
		Dates   []struct {
			Certification string `json:"certification"`
		} `json:"release_dates"`
	} `json:"results"`
}

// Certification returns the certification of the last US release date entry.
func (c *Client) Certification(ctx context.Context, tmdbID int) (string, error) {
	var res releaseDates
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d/release_dates", tmdbID), nil, &res); err != nil {
		return "", err
	}
	for _, r := range res.Results {
		if r.Country != certCountry || len(r.Dates) == 0 {
			continue
		}
		return r.Dates[len(r.Dates)-1].Certification, nil
	}
	return "", nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	body, err := c.get(ctx, path, q)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("tmdb %s: decode: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, err
	}
	params := u.Query()
	for k, vs := range q {
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	params.Set("api_key", c.apiKey)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tmdb %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Status: resp.StatusCode, Path: path}
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}
