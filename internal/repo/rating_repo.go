package repo

import (
	"context"

	"github.com/loc-ne/kg-auth/internal/auth/model"
)

type RatingRepo interface {
	CreateRatings(ctx context.Context, ratings []model.Rating) error

	GetRating(ctx context.Context, userID int64, gameType model.GameType) (model.Rating, error)

	GetAllRatings(ctx context.Context, userID int64) ([]model.Rating, error)

	SaveRating(ctx context.Context, r model.Rating) error
}
