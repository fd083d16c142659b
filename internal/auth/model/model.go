package model

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is the directory record of an account. PasswordHash and
// RefreshToken never cross the service boundary: both are excluded from
// JSON and every caller-facing response carries a PublicUser instead.
type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"column:password;not null" json:"-"`
	Role         Role      `gorm:"type:varchar(16);not null;default:user" json:"role"`
	IsActive     bool      `gorm:"not null;default:true" json:"isActive"`
	RefreshToken string    `gorm:"index" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}

type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenPair is what a successful login or refresh hands back: a signed
// access token plus the opaque refresh token that just replaced the
// previous one in the user's single slot.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	User         PublicUser
}

type GameType string

const (
	GameTypeBullet    GameType = "bullet"
	GameTypeBlitz     GameType = "blitz"
	GameTypeRapid     GameType = "rapid"
	GameTypeClassical GameType = "classical"
)

func GameTypes() []GameType {
	return []GameType{GameTypeBullet, GameTypeBlitz, GameTypeRapid, GameTypeClassical}
}

func ParseGameType(s string) (GameType, error) {
	switch GameType(s) {
	case GameTypeBullet, GameTypeBlitz, GameTypeRapid, GameTypeClassical:
		return GameType(s), nil
	}
	return "", fmt.Errorf("unknown game type %q", s)
}

type GameResult string

const (
	GameResultWin  GameResult = "win"
	GameResultLoss GameResult = "loss"
	GameResultDraw GameResult = "draw"
)

type Color string

const (
	ColorWhite Color = "white"
	ColorBlack Color = "black"
)

const DefaultRating = 1200

// Rating tracks one user's statistics in one game type.
type Rating struct {
	ID          int64     `gorm:"primaryKey" json:"-"`
	UserID      int64     `gorm:"not null;uniqueIndex:idx_user_game" json:"userId"`
	GameType    GameType  `gorm:"type:varchar(16);not null;uniqueIndex:idx_user_game" json:"gameType"`
	WhiteGames  int       `gorm:"not null;default:0" json:"whiteGames"`
	BlackGames  int       `gorm:"not null;default:0" json:"blackGames"`
	Rating      int       `gorm:"not null;default:1200" json:"rating"`
	GamesPlayed int       `gorm:"not null;default:0" json:"gamesPlayed"`
	Wins        int       `gorm:"not null;default:0" json:"wins"`
	Losses      int       `gorm:"not null;default:0" json:"losses"`
	Draws       int       `gorm:"not null;default:0" json:"draws"`
	PeakRating  int       `gorm:"not null;default:1200" json:"peakRating"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Rating) TableName() string { return "user_ratings" }

// WinRate is the share of wins among played games, rounded to whole percent.
func (r Rating) WinRate() int {
	if r.GamesPlayed == 0 {
		return 0
	}
	return int(float64(r.Wins)/float64(r.GamesPlayed)*100 + 0.5)
}

// ColorBalance is (white-black)/total in [-1, 1]; 0 with no games.
func (r Rating) ColorBalance() float64 {
	total := r.WhiteGames + r.BlackGames
	if total == 0 {
		return 0
	}
	return float64(r.WhiteGames-r.BlackGames) / float64(total)
}
