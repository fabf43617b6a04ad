package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/pkg/password"
)

type stubUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, email, plain string, role domain.Role) (*domain.User, error) {
	if _, exists := r.byEmail[email]; exists {
		return nil, domain.ErrEmailTaken
	}
	hash, err := password.Hash(plain)
	if err != nil {
		return nil, err
	}
	r.nextID++
	u := &domain.User{ID: fmt.Sprintf("u%d", r.nextID), Email: email, PasswordHash: hash, Role: role}
	r.byEmail[email] = u
	out := cloneUser(u)
	out.PasswordHash = ""
	return out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			out := cloneUser(u)
			out.PasswordHash = ""
			return out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, plain string) error {
	for _, u := range r.byEmail {
		if u.ID == id {
			hash, err := password.Hash(plain)
			if err != nil {
				return err
			}
			u.PasswordHash = hash
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func newAuthSvc(t *testing.T, repo *stubUserRepo) (*AuthService, *TokenService) {
	t.Helper()
	tokens, err := NewTokenService("secret", time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return NewAuthService(repo, tokens, zerolog.Nop()), tokens
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newAuthSvc(t, repo)

	res, err := svc.Register(context.Background(), "  Alice@Example.com ", "pass123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.User.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", res.User.Email)
	}
	if res.User.Role != domain.RoleOwner {
		t.Fatalf("expected owner role, got %s", res.User.Role)
	}
	if res.User.PasswordHash != "" {
		t.Fatalf("password hash must not be returned")
	}

	stored := repo.byEmail["alice@example.com"]
	if stored.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := password.Compare(stored.PasswordHash, "pass123"); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	claims, err := tokens.Verify(res.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != res.User.ID || claims.Role != domain.RoleOwner {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newAuthSvc(t, newStubUserRepo())

	cases := []struct{ email, pass string }{
		{"", "pass123"},
		{"bob@example.com", ""},
		{"bob@example.com", "12345"},
		{"not-an-email", "pass123"},
		{"bob@example.com", "ñññññ"},
	}
	for _, tc := range cases {
		_, err := svc.Register(context.Background(), tc.email, tc.pass)
		if domain.KindOf(err) != domain.KindValidation {
			t.Fatalf("%q/%q: expected validation error, got %v", tc.email, tc.pass, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _ := newAuthSvc(t, newStubUserRepo())

	if _, err := svc.Register(context.Background(), "bob@example.com", "pass123"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), "BOB@example.com", "other123")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("duplicate email must be a validation failure")
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _ := newAuthSvc(t, newStubUserRepo())

	reg, err := svc.Register(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if res.User.ID != reg.User.ID {
		t.Fatalf("expected user %s, got %s", reg.User.ID, res.User.ID)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, _ := newAuthSvc(t, newStubUserRepo())
	if _, err := svc.Register(context.Background(), "dave@example.com", "right-pass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), "dave@example.com", "wrong-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ghost@example.com", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc, _ := newAuthSvc(t, newStubUserRepo())
	if _, err := svc.Login(context.Background(), "", ""); domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthService_EnsureOwner_CreatesThenResets(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(t, repo)
	ctx := context.Background()

	u, created, err := svc.EnsureOwner(ctx, "admin@lucero.com", "admin123")
	if err != nil || !created {
		t.Fatalf("expected creation, got created=%v err=%v", created, err)
	}
	if u.Role != domain.RoleOwner {
		t.Fatalf("expected owner role, got %s", u.Role)
	}

	_, created, err = svc.EnsureOwner(ctx, "admin@lucero.com", "newpass1")
	if err != nil || created {
		t.Fatalf("expected reset, got created=%v err=%v", created, err)
	}
	if _, err := svc.Login(ctx, "admin@lucero.com", "newpass1"); err != nil {
		t.Fatalf("login with reset password failed: %v", err)
	}
	if _, err := svc.Login(ctx, "admin@lucero.com", "admin123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password must stop working, got %v", err)
	}
}

func TestAuthService_Register_PasswordLengthCountsCharacters(t *testing.T) {
	svc, _ := newAuthSvc(t, newStubUserRepo())

	if _, err := svc.Register(context.Background(), "erin@example.com", "ññññññ"); err != nil {
		t.Fatalf("six multibyte characters must be accepted, got %v", err)
	}

	_, err := svc.Register(context.Background(), "frank@example.com", "ñññññ")
	var de *domain.Error
	if !errors.As(err, &de) || de.Fields["password"] != "password must be at least 6 characters" {
		t.Fatalf("expected password length error, got %v", err)
	}
}

func TestAuthService_EnsureOwner_RejectsMalformedEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(t, repo)

	_, _, err := svc.EnsureOwner(context.Background(), "admin-at-lucero", "admin123")
	var de *domain.Error
	if !errors.As(err, &de) || de.Fields["email"] != "email must be a valid email" {
		t.Fatalf("expected email format error, got %v", err)
	}
	if len(repo.byEmail) != 0 {
		t.Fatalf("no user must be stored, got %d", len(repo.byEmail))
	}
}

func TestAuthService_EnsureOwner_NormalizesEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(t, repo)

	u, created, err := svc.EnsureOwner(context.Background(), " Admin@Lucero.com ", "admin123")
	if err != nil || !created {
		t.Fatalf("expected creation, got created=%v err=%v", created, err)
	}
	if u.Email != "admin@lucero.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
}
