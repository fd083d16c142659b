package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/loc-ne/kg-auth/internal/auth/dto"
	authErrors "github.com/loc-ne/kg-auth/internal/auth/errors"
	"github.com/loc-ne/kg-auth/internal/auth/model"
	"github.com/loc-ne/kg-auth/internal/auth/service"
	"github.com/loc-ne/kg-auth/internal/rating"
	"github.com/loc-ne/kg-auth/internal/transport/http/middleware"
)

type Handler struct {
	auth         service.Service
	ratings      rating.Service
	cookieDomain string
}

func NewHandler(auth service.Service, ratings rating.Service, cookieDomain string) *Handler {
	return &Handler{auth: auth, ratings: ratings, cookieDomain: cookieDomain}
}

// RegisterRoutes wires the public auth surface and the rating API.
// throttle, when non-nil, guards the credential-bearing endpoints.
func (h *Handler) RegisterRoutes(r *gin.Engine, authMW gin.HandlerFunc, throttle gin.HandlerFunc) {
	auth := r.Group("/api/auth")
	if throttle != nil {
		auth.POST("/register", throttle, h.Register)
		auth.POST("/login", throttle, h.Login)
	} else {
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
	auth.POST("/refresh_token", h.Refresh)
	auth.GET("/me", authMW, h.Me)
	auth.POST("/logout", authMW, h.Logout)

	users := r.Group("/api/v1/users")
	users.GET("/:userId/rating/:gameType", h.GetRating)
	users.GET("/:userId/rating/:gameType/balance", h.GetColorBalance)
	users.GET("/:userId/ratings", h.GetAllRatings)
	users.GET("/:userId/elo/:gameType", h.GetElo)
	users.PUT("/:userId/elo/:gameType", h.UpdateElo)
}

func (h *Handler) Register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if _, err := h.auth.Register(c.Request.Context(), body); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.StatusResponse{
		Success: true,
		Message: "User registered successfully",
	})
}

func (h *Handler) Login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	pair, err := h.auth.Login(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.issueTokenCookies(c, pair)
	c.JSON(http.StatusOK, tokenPairResponse("Login successful", pair))
}

func (h *Handler) Refresh(c *gin.Context) {
	// The refresh token only ever travels in its cookie.
	token, err := c.Cookie("refresh_token")
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid refresh token"})
		return
	}

	pair, err := h.auth.Refresh(c.Request.Context(), token)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.issueTokenCookies(c, pair)
	c.JSON(http.StatusOK, tokenPairResponse("Token refreshed successfully", pair))
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.auth.Me(c.Request.Context(), c.GetInt64(middleware.CtxUserID))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MeResponse{Success: true, User: user})
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), c.GetInt64(middleware.CtxUserID)); err != nil {
		h.handleError(c, err)
		return
	}

	h.clearTokenCookies(c)
	c.JSON(http.StatusOK, dto.StatusResponse{Success: true, Message: "Logged out successfully"})
}

func (h *Handler) GetRating(c *gin.Context) {
	userID, gameType, ok := h.ratingParams(c)
	if !ok {
		return
	}

	r, err := h.ratings.Rating(c.Request.Context(), userID, gameType)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RatingResponse{UserID: userID, RatingItem: dto.NewRatingItem(r)})
}

func (h *Handler) GetAllRatings(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid user id"})
		return
	}

	rows, err := h.ratings.AllRatings(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	items := make([]dto.RatingItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.NewRatingItem(r))
	}
	c.JSON(http.StatusOK, dto.RatingListResponse{UserID: userID, Ratings: items})
}

func (h *Handler) GetColorBalance(c *gin.Context) {
	userID, gameType, ok := h.ratingParams(c)
	if !ok {
		return
	}

	balance, err := h.ratings.ColorBalance(c.Request.Context(), userID, gameType)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance, UserID: userID, GameType: gameType})
}

func (h *Handler) GetElo(c *gin.Context) {
	userID, gameType, ok := h.ratingParams(c)
	if !ok {
		return
	}

	elo, err := h.ratings.Elo(c.Request.Context(), userID, gameType)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EloResponse{Elo: elo})
}

func (h *Handler) UpdateElo(c *gin.Context) {
	userID, gameType, ok := h.ratingParams(c)
	if !ok {
		return
	}

	var body dto.UpdateEloDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.ratings.UpdateElo(c.Request.Context(), userID, gameType, body); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Success: true, Message: "Elo updated successfully"})
}

func (h *Handler) ratingParams(c *gin.Context) (int64, model.GameType, bool) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid user id"})
		return 0, "", false
	}
	gameType, err := model.ParseGameType(c.Param("gameType"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return 0, "", false
	}
	return userID, gameType, true
}

// issueTokenCookies mirrors the token pair into the two session cookies.
// Each max-age comes from the same TTL that produced the token's own
// expiry, so cookie lifetime and cryptographic lifetime cannot drift.
func (h *Handler) issueTokenCookies(c *gin.Context, pair model.TokenPair) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(
		"access_token",
		pair.AccessToken,
		int(pair.AccessTTL.Seconds()),
		"/",
		h.cookieDomain,
		true, // secure
		true, // httpOnly
	)
	c.SetCookie(
		"refresh_token",
		pair.RefreshToken,
		int(pair.RefreshTTL.Seconds()),
		"/",
		h.cookieDomain,
		true,
		true,
	)
}

func (h *Handler) clearTokenCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("access_token", "", -1, "/", h.cookieDomain, true, true)
	c.SetCookie("refresh_token", "", -1, "/", h.cookieDomain, true, true)
}

func tokenPairResponse(message string, pair model.TokenPair) dto.TokenPairResponse {
	return dto.TokenPairResponse{
		Success:      true,
		Message:      message,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
		User:         pair.User,
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case authErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case authErrors.IsInvalidCredentials(err):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
	case authErrors.IsAccountDisabled(err):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Account is disabled"})
	case authErrors.IsInvalidToken(err):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid refresh token"})
	case authErrors.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
	case authErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
	}
}
