package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/loc-ne/kg-auth/internal/auth/model"
)

// AccessClaims is the payload of an access token. UserID shadows the
// registered "sub" claim so the subject travels as a number, matching
// the directory's numeric IDs.
type AccessClaims struct {
	UserID   int64      `json:"sub"`
	Email    string     `json:"email"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
	jwt.RegisteredClaims
}

type JWTUtil interface {
	GenerateAccessToken(u model.User) (token string, exp time.Time, err error)

	ValidateAccessToken(raw string) (AccessClaims, error)
}
