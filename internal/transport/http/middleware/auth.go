package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/loc-ne/kg-auth/internal/auth/jwt"
)

// Context keys set by CookieAuth for downstream handlers.
const (
	CtxUserID   = "userID"
	CtxEmail    = "email"
	CtxUsername = "username"
)

// CookieAuth reads the access token from its httpOnly cookie and
// verifies it against the shared secret. It deliberately never consults
// the user directory: a signed, unexpired token is trusted for its
// 15-minute window even if the account was disabled meanwhile.
//
// Only sub/email/username are forwarded; the role claim stays inside
// the token and callers that need it re-fetch the user.
func CookieAuth(jwtUtil jwt.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie("access_token")
		if err != nil || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "missing access token",
			})
			return
		}

		claims, err := jwtUtil.ValidateAccessToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "invalid or expired access token",
			})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxUsername, claims.Username)
		c.Next()
	}
}
