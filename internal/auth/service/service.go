package service

import (
	"context"

	"github.com/loc-ne/kg-auth/internal/auth/dto"
	"github.com/loc-ne/kg-auth/internal/auth/model"
)

type Service interface {
	Register(ctx context.Context, in dto.RegisterDTO) (model.PublicUser, error)

	// Login accepts a username or an email in the same field and, on
	// success, issues a fresh token pair, superseding any refresh token
	// the account held before.
	Login(ctx context.Context, in dto.LoginDTO) (model.TokenPair, error)

	// Refresh rotates the presented refresh token: the old value is
	// consumed atomically and can never be replayed.
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)

	Me(ctx context.Context, userID int64) (model.PublicUser, error)

	// Logout empties the refresh-token slot so no stored value matches
	// until the next login.
	Logout(ctx context.Context, userID int64) error
}
