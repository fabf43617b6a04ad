package ports

import (
	"context"
	"time"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
)

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// TokenClaims is the verified content of an identity token.
type TokenClaims struct {
	UserID    string
	Role      domain.Role
	ExpiresAt time.Time
}

type TokenIssuer interface {
	Issue(userID string, role domain.Role) (string, time.Time, error)
}

// TokenVerifier fails with domain.ErrExpiredToken or domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}
