package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/loc-ne/kg-auth/internal/auth/dto"
	customErrors "github.com/loc-ne/kg-auth/internal/auth/errors"
	"github.com/loc-ne/kg-auth/internal/auth/jwt"
	"github.com/loc-ne/kg-auth/internal/auth/model"
	"github.com/loc-ne/kg-auth/internal/config"
	"github.com/loc-ne/kg-auth/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = bcrypt.DefaultCost // 10 rounds

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type authService struct {
	users   repo.UserRepo
	ratings repo.RatingRepo
	jwtUtil jwt.JWTUtil
	cfg     *config.Config
	v       *validator.Validate
}

func New(
	ur repo.UserRepo,
	rr repo.RatingRepo,
	jm jwt.JWTUtil,
	cfg *config.Config,
	v *validator.Validate,
) Service {
	return &authService{users: ur, ratings: rr, jwtUtil: jm, cfg: cfg, v: v}
}

func (a *authService) Register(ctx context.Context, in dto.RegisterDTO) (model.PublicUser, error) {
	if err := a.v.Struct(in); err != nil {
		return model.PublicUser{}, customErrors.NewInvalidArgument(err.Error())
	}

	if _, err := a.users.GetUserByUsername(ctx, in.Username); err == nil {
		return model.PublicUser{}, customErrors.NewAlreadyExists("username already exists")
	} else if !customErrors.IsNotFound(err) {
		return model.PublicUser{}, customErrors.WrapInternal(err, "Register")
	}
	if _, err := a.users.GetUserByEmail(ctx, in.Email); err == nil {
		return model.PublicUser{}, customErrors.NewAlreadyExists("email already exists")
	} else if !customErrors.IsNotFound(err) {
		return model.PublicUser{}, customErrors.WrapInternal(err, "Register")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return model.PublicUser{}, customErrors.WrapInternal(err, "Register")
	}

	role := model.Role(in.Role)
	if role == "" {
		role = model.RoleUser
	}

	user, err := a.users.CreateUser(ctx, model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.PublicUser{}, err
		}
		return model.PublicUser{}, customErrors.WrapInternal(err, "Register")
	}

	ratings := make([]model.Rating, 0, len(model.GameTypes()))
	for _, gt := range model.GameTypes() {
		ratings = append(ratings, model.Rating{
			UserID:     user.ID,
			GameType:   gt,
			Rating:     in.Elo,
			PeakRating: in.Elo,
		})
	}
	if err := a.ratings.CreateRatings(ctx, ratings); err != nil {
		return model.PublicUser{}, customErrors.WrapInternal(err, "Register")
	}

	return user.Public(), nil
}

func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (model.TokenPair, error) {
	if err := a.v.Struct(in); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.validateUser(ctx, in.Username, in.Password)
	if err != nil {
		return model.TokenPair{}, err
	}

	return a.issueTokens(ctx, user, "")
}

// validateUser is the credential verifier: one field serves both lookup
// modes, and "no such account" and "wrong password" are indistinguishable
// to the caller.
func (a *authService) validateUser(ctx context.Context, identifier, password string) (model.User, error) {
	var (
		user model.User
		err  error
	)
	if emailPattern.MatchString(identifier) {
		user, err = a.users.GetUserByEmail(ctx, identifier)
	} else {
		user, err = a.users.GetUserByUsername(ctx, identifier)
	}
	switch {
	case customErrors.IsNotFound(err):
		return model.User{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return model.User{}, customErrors.WrapInternal(err, "validateUser")
	}

	if !user.IsActive {
		return model.User{}, customErrors.ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.User{}, customErrors.ErrInvalidCredentials
	}

	return user, nil
}

func (a *authService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	if refreshToken == "" {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	user, err := a.users.GetUserByRefreshToken(ctx, refreshToken)
	switch {
	case customErrors.IsNotFound(err):
		return model.TokenPair{}, customErrors.ErrInvalidToken
	case err != nil:
		return model.TokenPair{}, customErrors.WrapInternal(err, "Refresh")
	}

	if !user.IsActive {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	return a.issueTokens(ctx, user, refreshToken)
}

func (a *authService) Me(ctx context.Context, userID int64) (model.PublicUser, error) {
	user, err := a.users.GetUserByID(ctx, userID)
	switch {
	case customErrors.IsNotFound(err):
		return model.PublicUser{}, customErrors.NewNotFound("user not found")
	case err != nil:
		return model.PublicUser{}, customErrors.WrapInternal(err, "Me")
	}
	return user.Public(), nil
}

func (a *authService) Logout(ctx context.Context, userID int64) error {
	if err := a.users.SetRefreshToken(ctx, userID, ""); err != nil {
		if customErrors.IsNotFound(err) {
			return customErrors.NewNotFound("user not found")
		}
		return customErrors.WrapInternal(err, "Logout")
	}
	return nil
}

// issueTokens signs the access token, draws a fresh opaque refresh token
// and persists it into the user's single slot. With prev set the write is
// conditional on the slot still holding prev, which makes rotation
// single-use even under concurrent refresh calls. The pair is only
// returned once the persistence write has landed.
func (a *authService) issueTokens(ctx context.Context, user model.User, prev string) (model.TokenPair, error) {
	access, _, err := a.jwtUtil.GenerateAccessToken(user)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "GenerateAccessToken")
	}

	refresh, err := newRefreshToken()
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "newRefreshToken")
	}

	if prev == "" {
		err = a.users.SetRefreshToken(ctx, user.ID, refresh)
	} else {
		err = a.users.RotateRefreshToken(ctx, user.ID, prev, refresh)
	}
	switch {
	case customErrors.IsNotFound(err):
		return model.TokenPair{}, customErrors.ErrInvalidToken
	case err != nil:
		return model.TokenPair{}, customErrors.WrapInternal(err, "persist refresh token")
	}

	return model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int(a.cfg.AccessTokenTTL.Seconds()),
		AccessTTL:    a.cfg.AccessTokenTTL,
		RefreshTTL:   a.cfg.RefreshTokenTTL,
		User:         user.Public(),
	}, nil
}

// newRefreshToken draws 256 bits from the CSPRNG, hex encoded.
func newRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
