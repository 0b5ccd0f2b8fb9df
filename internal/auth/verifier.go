package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/user-admin-service/internal/domain"
)

// Credential failure taxonomy. A lookup miss is reported as
// ErrInvalidCredentials so callers cannot probe for usernames.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user inactive")
)

// CredentialStore is the single query contract the verifier needs from the
// persistence layer.
type CredentialStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// CredentialVerifier checks a username/password pair against stored hashes.
type CredentialVerifier struct {
	store CredentialStore
}

// NewCredentialVerifier builds a verifier over the given store.
func NewCredentialVerifier(store CredentialStore) *CredentialVerifier {
	return &CredentialVerifier{store: store}
}

// Verify authenticates the pair and returns the identity to embed in a
// token. Exactly one read, no writes; the plaintext is never logged.
func (v *CredentialVerifier) Verify(ctx context.Context, username, password string) (*domain.Identity, error) {
	user, err := v.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &domain.Identity{
		UserID:   user.ID,
		Username: user.Username,
		RoleID:   user.RoleID,
	}, nil
}
