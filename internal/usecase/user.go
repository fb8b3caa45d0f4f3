package usecase

import (
	"context"

	"bookcatalog/internal/entity"
)

// UserRepository is the credential store adapter. GetByUsername returns
// ErrNotFound when no such user exists; transport failures propagate as-is
// so callers can tell a bad login from an unavailable store.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (entity.User, error)
}
