package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/ports"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/pkg/metrics"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/pkg/password"
)

const minPasswordLength = 6

var credentialRules = validator.New()

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenIssuer
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, logger: logger}
}

// Register creates an owner account. New accounts never choose their role.
func (s *AuthService) Register(ctx context.Context, email, plain string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if err := checkNewCredentials(email, plain); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "conflict").Inc()
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	user, err := s.repo.Create(ctx, email, plain, domain.RoleOwner)
	if err != nil {
		return nil, err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("user registered")

	return s.issue(user)
}

// Login verifies credentials. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, plain string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if err := checkCredentials(email, plain); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = password.CompareMissing(plain)
			metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := password.Compare(user.PasswordHash, plain); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return s.issue(user)
}

// EnsureOwner creates an owner account for email, or resets its password
// when the account already exists. It reports whether the user was created.
func (s *AuthService) EnsureOwner(ctx context.Context, email, plain string) (*domain.User, bool, error) {
	email = normalizeEmail(email)
	if err := checkNewCredentials(email, plain); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.repo.UpdatePassword(ctx, existing.ID, plain); err != nil {
			return nil, false, err
		}
		s.logger.Info().Str("user_id", existing.ID).Msg("password reset")
		existing.PasswordHash = ""
		return existing, false, nil
	case errors.Is(err, domain.ErrUserNotFound):
		user, err := s.repo.Create(ctx, email, plain, domain.RoleOwner)
		if err != nil {
			return nil, false, err
		}
		s.logger.Info().Str("user_id", user.ID).Msg("owner created")
		return user, true, nil
	default:
		return nil, false, err
	}
}

func (s *AuthService) issue(user *domain.User) (*ports.AuthResult, error) {
	token, exp, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, domain.Internal("issue token", err)
	}
	out := *user
	out.PasswordHash = ""
	return &ports.AuthResult{User: &out, Token: token, ExpiresAt: exp}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkCredentials(email, plain string) error {
	fields := make(map[string]string)
	if email == "" {
		fields["email"] = "email is required"
	}
	if plain == "" {
		fields["password"] = "password is required"
	}
	if len(fields) > 0 {
		return domain.Validation("email and password are required", fields)
	}
	return nil
}

// checkNewCredentials applies the account rules to an already normalized
// email. Password length is counted in characters, not bytes.
func checkNewCredentials(email, plain string) error {
	if err := checkCredentials(email, plain); err != nil {
		return err
	}
	fields := make(map[string]string)
	if credentialRules.Var(email, "email") != nil {
		fields["email"] = "email must be a valid email"
	}
	if utf8.RuneCountInString(plain) < minPasswordLength {
		fields["password"] = "password must be at least 6 characters"
	}
	if len(fields) > 0 {
		return domain.Validation("invalid credentials format", fields)
	}
	return nil
}
