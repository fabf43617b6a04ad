package ports

import (
	"context"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
)

// UserRepository is the credential store. Implementations hash plaintext
// passwords on every write; callers never handle hashes directly.
type UserRepository interface {
	Create(ctx context.Context, email, password string, role domain.Role) (*domain.User, error)
	// FindByEmail returns the user including its password hash.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns the user without its password hash.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, password string) error
}

// IdentityLookup is the read-only slice of UserRepository needed by the auth middleware.
type IdentityLookup interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
