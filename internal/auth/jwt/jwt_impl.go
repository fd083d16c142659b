package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	customErrors "github.com/loc-ne/kg-auth/internal/auth/errors"
	"github.com/loc-ne/kg-auth/internal/auth/model"
	"github.com/loc-ne/kg-auth/internal/config"
)

type JwtUtilImpl struct {
	secret    []byte
	accessTTL time.Duration
}

// NewJWTUtil builds the signer/verifier pair around the shared secret.
// An empty secret is a construction error so the process refuses to
// start instead of issuing unverifiable tokens.
func NewJWTUtil(cfg *config.Config) (*JwtUtilImpl, error) {
	if cfg.JWTSecret == "" {
		return nil, customErrors.NewInvalidArgument("jwt secret is empty")
	}
	return &JwtUtilImpl{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: cfg.AccessTokenTTL,
	}, nil
}

func (j *JwtUtilImpl) GenerateAccessToken(u model.User) (string, time.Time, error) {
	now := time.Now()

	claims := AccessClaims{
		UserID:   u.ID,
		Email:    u.Email,
		Username: u.Username,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, customErrors.WrapInternal(err, "sign access token")
	}

	return signed, claims.ExpiresAt.Time, nil
}

// ValidateAccessToken checks signature and expiry only; it never reads
// the user directory. No leeway: a token presented at its expiry
// instant is already invalid.
func (j *JwtUtilImpl) ValidateAccessToken(raw string) (AccessClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return j.secret, nil
	}, jwt.WithIssuedAt())

	if err != nil || !token.Valid {
		return AccessClaims{}, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok {
		return AccessClaims{}, customErrors.ErrInvalidToken
	}

	return *claims, nil
}
