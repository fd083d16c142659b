package rating

import (
	"context"

	"github.com/loc-ne/kg-auth/internal/auth/dto"
	"github.com/loc-ne/kg-auth/internal/auth/model"
)

// Service mutates and reads per-user, per-game-type statistics after
// game results are reported by the game services.
type Service interface {
	Rating(ctx context.Context, userID int64, gameType model.GameType) (model.Rating, error)

	AllRatings(ctx context.Context, userID int64) ([]model.Rating, error)

	Elo(ctx context.Context, userID int64, gameType model.GameType) (int, error)

	UpdateElo(ctx context.Context, userID int64, gameType model.GameType, in dto.UpdateEloDTO) error

	// ColorBalance reports how skewed the user's color assignment has
	// been; a missing row is seeded with defaults rather than rejected.
	ColorBalance(ctx context.Context, userID int64, gameType model.GameType) (float64, error)
}
