package api

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/ports"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/pkg/password"
)

// In-memory stores backing the router tests.

type memUsers struct {
	mu     sync.Mutex
	byID   map[string]*domain.User
	nextID int
}

func newMemUsers() *memUsers { return &memUsers{byID: make(map[string]*domain.User)} }

func (s *memUsers) Create(_ context.Context, email, plain string, role domain.Role) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			return nil, domain.ErrEmailTaken
		}
	}
	hash, err := password.Hash(plain)
	if err != nil {
		return nil, err
	}
	s.nextID++
	u := &domain.User{ID: fmt.Sprintf("u%d", s.nextID), Email: email, PasswordHash: hash, Role: role}
	s.byID[u.ID] = u
	out := *u
	out.PasswordHash = ""
	return &out, nil
}

func (s *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	out.PasswordHash = ""
	return &out, nil
}

func (s *memUsers) UpdatePassword(_ context.Context, id, plain string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	hash, err := password.Hash(plain)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (s *memUsers) setRole(id string, role domain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[id].Role = role
}

type memMovies struct {
	mu     sync.Mutex
	byID   map[string]*domain.Movie
	nextID int
}

func newMemMovies() *memMovies { return &memMovies{byID: make(map[string]*domain.Movie)} }

func copyMovie(m *domain.Movie) *domain.Movie {
	c := *m
	c.Genres = append([]string(nil), m.Genres...)
	return &c
}

func (s *memMovies) Create(_ context.Context, m *domain.Movie) (*domain.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c := copyMovie(m)
	c.ID = fmt.Sprintf("m%d", s.nextID)
	s.byID[c.ID] = c
	return copyMovie(c), nil
}

func (s *memMovies) FindByID(_ context.Context, id string) (*domain.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrMovieNotFound
	}
	return copyMovie(m), nil
}

func (s *memMovies) List(_ context.Context, q ports.MovieQuery) ([]*domain.Movie, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []*domain.Movie
	for _, m := range s.byID {
		if q.Search != "" && !containsFold(m.Title, q.Search) && (m.Description == nil || !containsFold(*m.Description, q.Search)) {
			continue
		}
		if q.Year != nil && m.Year != *q.Year {
			continue
		}
		if len(q.AllowedRatings) > 0 && !ratingIn(m.AgeRating, q.AllowedRatings) {
			continue
		}
		matched = append(matched, copyMovie(m))
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Year != matched[j].Year {
			return matched[i].Year > matched[j].Year
		}
		return matched[i].ID < matched[j].ID
	})
	total := int64(len(matched))
	start := int(q.Skip())
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *memMovies) Update(_ context.Context, m *domain.Movie) (*domain.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[m.ID]; !ok {
		return nil, domain.ErrMovieNotFound
	}
	s.byID[m.ID] = copyMovie(m)
	return copyMovie(m), nil
}

func (s *memMovies) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return domain.ErrMovieNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *memMovies) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.byID)), nil
}

func (s *memMovies) DeleteAll(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := int64(len(s.byID))
	s.byID = make(map[string]*domain.Movie)
	return n, nil
}

func (s *memMovies) InsertMany(ctx context.Context, movies []*domain.Movie) (int, error) {
	for _, m := range movies {
		if _, err := s.Create(ctx, m); err != nil {
			return 0, err
		}
	}
	return len(movies), nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func ratingIn(r domain.AgeRating, set []domain.AgeRating) bool {
	for _, a := range set {
		if a == r {
			return true
		}
	}
	return false
}

type memProfiles struct {
	mu     sync.Mutex
	byID   map[string]*domain.Profile
	nextID int
}

func newMemProfiles() *memProfiles { return &memProfiles{byID: make(map[string]*domain.Profile)} }

func (s *memProfiles) ListByUser(_ context.Context, userID string) ([]*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Profile
	for _, p := range s.byID {
		if p.UserID == userID {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memProfiles) CountByUser(ctx context.Context, userID string) (int64, error) {
	ps, _ := s.ListByUser(ctx, userID)
	return int64(len(ps)), nil
}

func (s *memProfiles) Create(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c := *p
	c.ID = fmt.Sprintf("p%d", s.nextID)
	s.byID[c.ID] = &c
	out := c
	return &out, nil
}

func (s *memProfiles) UpdateOwned(_ context.Context, id, userID string, ch ports.ProfileChanges) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok || p.UserID != userID {
		return nil, domain.ErrProfileNotFound
	}
	if ch.Name != nil {
		p.Name = *ch.Name
	}
	if ch.Avatar != nil {
		p.Avatar = *ch.Avatar
	}
	if ch.MaxAgeRating != nil {
		p.MaxAgeRating = *ch.MaxAgeRating
	}
	out := *p
	return &out, nil
}

func (s *memProfiles) DeleteOwned(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok || p.UserID != userID {
		return domain.ErrProfileNotFound
	}
	delete(s.byID, id)
	return nil
}
