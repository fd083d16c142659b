package repo

import (
	"context"

	"github.com/loc-ne/kg-auth/internal/auth/model"
)

// UserRepo is the user directory: the single source of truth for
// accounts and the one refresh-token slot each account owns.
type UserRepo interface {
	CreateUser(ctx context.Context, u model.User) (model.User, error)

	GetUserByID(ctx context.Context, id int64) (model.User, error)

	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	GetUserByUsername(ctx context.Context, username string) (model.User, error)

	// GetUserByRefreshToken matches the stored slot exactly; the empty
	// string never matches anything.
	GetUserByRefreshToken(ctx context.Context, token string) (model.User, error)

	// SetRefreshToken overwrites the slot unconditionally (login, logout).
	SetRefreshToken(ctx context.Context, userID int64, token string) error

	// RotateRefreshToken replaces the slot only while it still holds
	// prev; ErrNotFound when another rotation won the race.
	RotateRefreshToken(ctx context.Context, userID int64, prev, next string) error
}
