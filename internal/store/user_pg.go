package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserPG struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewUserPG(db *pgxpool.Pool, timeout time.Duration) *UserPG {
	return &UserPG{db: db, timeout: timeout}
}

func (r *UserPG) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *UserPG) GetByUsername(ctx context.Context, username string) (entity.User, error) {
	const query = `
	SELECT id, username, hashed_password, role, created_at
	FROM users
	WHERE username = $1
	LIMIT 1
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var user entity.User
	err := r.db.QueryRow(timeoutCtx, query, username).Scan(&user.ID, &user.Username, &user.HashedPassword, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.User{}, usecase.ErrNotFound
		}
		return entity.User{}, fmt.Errorf("get user %q: %w", username, err)
	}
	return user, nil
}
