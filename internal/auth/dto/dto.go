package dto

import "github.com/loc-ne/kg-auth/internal/auth/model"

type RegisterDTO struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=20"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=50"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin user"`
	Elo      int    `json:"elo"      validate:"required,min=800,max=2000"`
}

// LoginDTO carries one login field that accepts either a username or an
// email address; the service classifies it.
type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateEloDTO struct {
	NewRating  int    `json:"newRating"  validate:"required,min=0"`
	GameResult string `json:"gameResult" validate:"required,oneof=win loss draw"`
	Color      string `json:"color"      validate:"required,oneof=white black"`
}

type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type TokenPairResponse struct {
	Success      bool             `json:"success"`
	Message      string           `json:"message"`
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	TokenType    string           `json:"token_type"`
	ExpiresIn    int              `json:"expires_in"`
	User         model.PublicUser `json:"user"`
}

type MeResponse struct {
	Success bool             `json:"success"`
	User    model.PublicUser `json:"user"`
}

type RatingItem struct {
	GameType    model.GameType `json:"gameType"`
	Rating      int            `json:"rating"`
	GamesPlayed int            `json:"gamesPlayed"`
	Wins        int            `json:"wins"`
	Losses      int            `json:"losses"`
	Draws       int            `json:"draws"`
	PeakRating  int            `json:"peakRating"`
	WinRate     int            `json:"winRate"`
}

func NewRatingItem(r model.Rating) RatingItem {
	return RatingItem{
		GameType:    r.GameType,
		Rating:      r.Rating,
		GamesPlayed: r.GamesPlayed,
		Wins:        r.Wins,
		Losses:      r.Losses,
		Draws:       r.Draws,
		PeakRating:  r.PeakRating,
		WinRate:     r.WinRate(),
	}
}

type RatingResponse struct {
	UserID int64 `json:"userId"`
	RatingItem
}

type RatingListResponse struct {
	UserID  int64        `json:"userId"`
	Ratings []RatingItem `json:"ratings"`
}

type BalanceResponse struct {
	Balance  float64        `json:"balance"`
	UserID   int64          `json:"userId"`
	GameType model.GameType `json:"gameType"`
}

type EloResponse struct {
	Elo int `json:"elo"`
}
