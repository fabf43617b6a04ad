package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/service"
)

type testAPI struct {
	t      *testing.T
	e      *echo.Echo
	users  *memUsers
	movies *memMovies
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	tokens, err := service.NewTokenService("test-secret", 24*time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	users, movies, profiles := newMemUsers(), newMemMovies(), newMemProfiles()
	log := zerolog.Nop()

	e := NewRouter(Deps{
		Logger:   log,
		Origins:  []string{"http://localhost:5173"},
		Tokens:   tokens,
		Users:    users,
		Auth:     service.NewAuthService(users, tokens, log),
		Movies:   service.NewMovieService(movies, nil, log),
		Profiles: service.NewProfileService(profiles, log),
	})
	return &testAPI{t: t, e: e, users: users, movies: movies}
}

func (a *testAPI) do(method, path, body, token string) *httptest.ResponseRecorder {
	a.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

// signUp registers and logs in, returning the user id and login token.
func (a *testAPI) signUp(email string) (string, string) {
	a.t.Helper()
	creds := fmt.Sprintf(`{"email":%q,"password":"secret1"}`, email)

	rec := a.do(http.MethodPost, "/auth/register", creds, "")
	expectStatus(a.t, rec, http.StatusCreated)
	reg := decode(a.t, rec)
	if reg["role"] != "owner" || reg["token"] == "" {
		a.t.Fatalf("unexpected registration payload: %+v", reg)
	}

	rec = a.do(http.MethodPost, "/auth/login", creds, "")
	expectStatus(a.t, rec, http.StatusOK)
	login := decode(a.t, rec)
	token, _ := login["token"].(string)
	if token == "" || login["id"] != reg["id"] {
		a.t.Fatalf("unexpected login payload: %+v", login)
	}
	return reg["id"].(string), token
}

const matrixBody = `{"title":"  The Matrix ","overview":"A hacker learns the truth","releaseYear":1999,"genres":["Sci-Fi"],"ageRating":"R","rating":8.7}`

func TestRouter_CreateThenRetrieveMovie(t *testing.T) {
	a := newTestAPI(t)
	_, token := a.signUp("a@b.com")

	rec := a.do(http.MethodPost, "/movies", matrixBody, token)
	expectStatus(t, rec, http.StatusCreated)
	created := decode(t, rec)
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("missing id: %+v", created)
	}

	rec = a.do(http.MethodGet, "/movies/"+id, "", "")
	expectStatus(t, rec, http.StatusOK)
	got := decode(t, rec)
	if got["title"] != "The Matrix" || got["description"] != "A hacker learns the truth" || got["year"] != float64(1999) {
		t.Fatalf("unexpected stored movie: %+v", got)
	}
}

func TestRouter_InvalidUpdateLeavesMovieUnchanged(t *testing.T) {
	a := newTestAPI(t)
	_, token := a.signUp("a@b.com")

	rec := a.do(http.MethodPost, "/movies", matrixBody, token)
	expectStatus(t, rec, http.StatusCreated)
	id := decode(t, rec)["id"].(string)

	rec = a.do(http.MethodPut, "/movies/"+id, `{"ageRating":"XX","title":"Changed"}`, token)
	expectStatus(t, rec, http.StatusBadRequest)
	body := decode(t, rec)
	details, _ := body["details"].(map[string]any)
	if details["ageRating"] != "ageRating must be one of: G, PG, PG-13, R, NC-17" {
		t.Fatalf("unexpected details: %+v", body)
	}

	rec = a.do(http.MethodGet, "/movies/"+id, "", "")
	expectStatus(t, rec, http.StatusOK)
	got := decode(t, rec)
	if got["ageRating"] != "R" || got["title"] != "The Matrix" {
		t.Fatalf("movie changed after rejected update: %+v", got)
	}

	rec = a.do(http.MethodPut, "/movies/"+id, `{"ageRating":"PG-13"}`, token)
	expectStatus(t, rec, http.StatusOK)
	if updated := decode(t, rec); updated["ageRating"] != "PG-13" || updated["title"] != "The Matrix" {
		t.Fatalf("partial update not applied: %+v", updated)
	}
}

func TestRouter_MovieWritesRequireEditorRole(t *testing.T) {
	a := newTestAPI(t)
	userID, token := a.signUp("viewer@b.com")

	rec := a.do(http.MethodPost, "/movies", matrixBody, "")
	expectStatus(t, rec, http.StatusUnauthorized)
	if decode(t, rec)["error"] != "token required" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	rec = a.do(http.MethodPost, "/movies", matrixBody, "garbage")
	expectStatus(t, rec, http.StatusUnauthorized)
	if decode(t, rec)["error"] != "invalid token" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	a.users.setRole(userID, domain.RoleStandard)
	rec = a.do(http.MethodPost, "/movies", matrixBody, token)
	expectStatus(t, rec, http.StatusForbidden)

	count, _ := a.movies.Count(context.Background())
	if count != 0 {
		t.Fatalf("no movie should be stored, found %d", count)
	}
}

func TestRouter_MovieNotFound(t *testing.T) {
	a := newTestAPI(t)
	_, token := a.signUp("a@b.com")

	expectStatus(t, a.do(http.MethodGet, "/movies/missing", "", ""), http.StatusNotFound)
	expectStatus(t, a.do(http.MethodPut, "/movies/missing", `{"title":"x"}`, token), http.StatusNotFound)
	expectStatus(t, a.do(http.MethodDelete, "/movies/missing", "", token), http.StatusNotFound)
}

func TestRouter_ListFiltersAndPaginates(t *testing.T) {
	a := newTestAPI(t)
	_, token := a.signUp("a@b.com")

	for _, m := range []struct {
		title, rating string
		year          int
	}{
		{"Toy Story", "G", 1995},
		{"The Matrix", "R", 1999},
		{"Matrix Reloaded", "R", 2003},
		{"Shrek", "PG", 2001},
		{"Spider-Man", "PG-13", 2002},
	} {
		body := fmt.Sprintf(`{"title":%q,"year":%d,"genres":["x"],"ageRating":%q}`, m.title, m.year, m.rating)
		expectStatus(t, a.do(http.MethodPost, "/movies", body, token), http.StatusCreated)
	}

	rec := a.do(http.MethodGet, "/movies?maxRating=PG-13", "", "")
	expectStatus(t, rec, http.StatusOK)
	page := decode(t, rec)
	if page["totalResults"] != float64(3) {
		t.Fatalf("expected 3 results, got %+v", page)
	}
	for _, raw := range page["movies"].([]any) {
		if r := raw.(map[string]any)["ageRating"]; r == "R" || r == "NC-17" {
			t.Fatalf("rating %v should be excluded", r)
		}
	}

	rec = a.do(http.MethodGet, "/movies?search=MATRIX&limit=1&page=2", "", "")
	expectStatus(t, rec, http.StatusOK)
	page = decode(t, rec)
	if page["totalResults"] != float64(2) || page["totalPages"] != float64(2) || page["currentPage"] != float64(2) {
		t.Fatalf("unexpected pagination: %+v", page)
	}
	movies := page["movies"].([]any)
	if len(movies) != 1 || movies[0].(map[string]any)["title"] != "The Matrix" {
		t.Fatalf("expected older matrix on page 2, got %+v", movies)
	}

	rec = a.do(http.MethodGet, "/movies?year=2001", "", "")
	page = decode(t, rec)
	if page["totalResults"] != float64(1) {
		t.Fatalf("expected one 2001 movie, got %+v", page)
	}

	expectStatus(t, a.do(http.MethodGet, "/movies?maxRating=XYZ", "", ""), http.StatusBadRequest)

	rec = a.do(http.MethodGet, "/debug/movies-count", "", "")
	if got := decode(t, rec); got["ok"] != true || got["count"] != float64(5) {
		t.Fatalf("unexpected count payload: %+v", got)
	}
}

func TestRouter_DeleteMovie(t *testing.T) {
	a := newTestAPI(t)
	_, token := a.signUp("a@b.com")

	rec := a.do(http.MethodPost, "/movies", matrixBody, token)
	id := decode(t, rec)["id"].(string)

	rec = a.do(http.MethodDelete, "/movies/"+id, "", token)
	expectStatus(t, rec, http.StatusOK)
	if body := decode(t, rec); body["ok"] != true {
		t.Fatalf("unexpected body: %+v", body)
	}
	expectStatus(t, a.do(http.MethodGet, "/movies/"+id, "", ""), http.StatusNotFound)
}

func TestRouter_ProfileQuotaAndOwnership(t *testing.T) {
	a := newTestAPI(t)
	_, tokenA := a.signUp("a@b.com")
	_, tokenB := a.signUp("b@b.com")

	var firstID string
	for i := 1; i <= domain.MaxProfilesPerUser; i++ {
		rec := a.do(http.MethodPost, "/profiles", fmt.Sprintf(`{"name":"P%d"}`, i), tokenA)
		expectStatus(t, rec, http.StatusCreated)
		if i == 1 {
			p := decode(t, rec)
			firstID = p["id"].(string)
			if p["avatar"] != domain.DefaultAvatar || p["maxAgeRating"] != "R" {
				t.Fatalf("defaults not applied: %+v", p)
			}
		}
	}

	rec := a.do(http.MethodPost, "/profiles", `{"name":"Sixth"}`, tokenA)
	expectStatus(t, rec, http.StatusForbidden)
	if decode(t, rec)["error"] != "limit of 5 profiles reached" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	rec = a.do(http.MethodGet, "/profiles", "", tokenB)
	expectStatus(t, rec, http.StatusOK)
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("other user's profiles leaked: %s", rec.Body.String())
	}

	expectStatus(t, a.do(http.MethodPut, "/profiles/"+firstID, `{"name":"Mine"}`, tokenB), http.StatusNotFound)
	expectStatus(t, a.do(http.MethodDelete, "/profiles/"+firstID, "", tokenB), http.StatusNotFound)

	rec = a.do(http.MethodDelete, "/profiles/"+firstID, "", tokenA)
	expectStatus(t, rec, http.StatusOK)
	if decode(t, rec)["message"] != "profile deleted successfully" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	expectStatus(t, a.do(http.MethodPost, "/profiles", `{"name":"Replacement"}`, tokenA), http.StatusCreated)
}

func TestRouter_ProfilesRequireAuth(t *testing.T) {
	a := newTestAPI(t)
	expectStatus(t, a.do(http.MethodGet, "/profiles", "", ""), http.StatusUnauthorized)
}

func TestRouter_AuthErrors(t *testing.T) {
	a := newTestAPI(t)
	a.signUp("a@b.com")

	expectStatus(t, a.do(http.MethodPost, "/auth/register", `{"email":"a@b.com","password":"secret1"}`, ""), http.StatusBadRequest)
	expectStatus(t, a.do(http.MethodPost, "/auth/register", `{"email":"c@b.com","password":"123"}`, ""), http.StatusBadRequest)
	expectStatus(t, a.do(http.MethodPost, "/auth/login", `{"email":"a@b.com"}`, ""), http.StatusBadRequest)
	expectStatus(t, a.do(http.MethodPost, "/auth/login", `{"email":"a@b.com","password":"wrong!"}`, ""), http.StatusUnauthorized)
	expectStatus(t, a.do(http.MethodPost, "/auth/login", `{"email":"ghost@b.com","password":"secret1"}`, ""), http.StatusUnauthorized)
}

func TestRouter_RegisterTrimsEmailBeforeFormatCheck(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodPost, "/auth/register", `{"email":"  Mixed@Example.com ","password":"secret1"}`, "")
	expectStatus(t, rec, http.StatusCreated)
	if got := decode(t, rec)["email"]; got != "mixed@example.com" {
		t.Fatalf("expected normalized email, got %v", got)
	}

	expectStatus(t, a.do(http.MethodPost, "/auth/login", `{"email":"mixed@example.com","password":"secret1"}`, ""), http.StatusOK)

	rec = a.do(http.MethodPost, "/auth/register", `{"email":" not-an-email ","password":"secret1"}`, "")
	expectStatus(t, rec, http.StatusBadRequest)
	details, _ := decode(t, rec)["details"].(map[string]any)
	if details["email"] != "email must be a valid email" {
		t.Fatalf("unexpected details: %+v", details)
	}
}

func TestRouter_InfoRoutes(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(http.MethodGet, "/", "", "")
	expectStatus(t, rec, http.StatusOK)
	if decode(t, rec)["message"] != "API running" {
		t.Fatalf("unexpected root payload: %s", rec.Body.String())
	}

	expectStatus(t, a.do(http.MethodGet, "/health", "", ""), http.StatusOK)
	expectStatus(t, a.do(http.MethodGet, "/external/trailer/603", "", ""), http.StatusServiceUnavailable)
	expectStatus(t, a.do(http.MethodGet, "/external/trailer/abc", "", ""), http.StatusBadRequest)

	rec = a.do(http.MethodGet, "/metrics", "", "")
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "movie_catalog_http_request_duration_seconds") {
		t.Fatalf("http metrics not exported")
	}

	rec = a.do(http.MethodGet, "/swagger/doc.json", "", "")
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "/profiles/{id}") {
		t.Fatalf("swagger document incomplete")
	}
}
