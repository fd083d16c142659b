package rating

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/loc-ne/kg-auth/internal/auth/dto"
	customErrors "github.com/loc-ne/kg-auth/internal/auth/errors"
	"github.com/loc-ne/kg-auth/internal/auth/model"
	"github.com/loc-ne/kg-auth/internal/repo"
)

type ratingService struct {
	ratings repo.RatingRepo
	v       *validator.Validate
}

func New(rr repo.RatingRepo, v *validator.Validate) Service {
	return &ratingService{ratings: rr, v: v}
}

func (s *ratingService) Rating(ctx context.Context, userID int64, gameType model.GameType) (model.Rating, error) {
	return s.ratings.GetRating(ctx, userID, gameType)
}

func (s *ratingService) AllRatings(ctx context.Context, userID int64) ([]model.Rating, error) {
	return s.ratings.GetAllRatings(ctx, userID)
}

func (s *ratingService) Elo(ctx context.Context, userID int64, gameType model.GameType) (int, error) {
	r, err := s.ratings.GetRating(ctx, userID, gameType)
	if err != nil {
		return 0, err
	}
	return r.Rating, nil
}

func (s *ratingService) UpdateElo(ctx context.Context, userID int64, gameType model.GameType, in dto.UpdateEloDTO) error {
	if err := s.v.Struct(in); err != nil {
		return customErrors.NewInvalidArgument(err.Error())
	}

	r, err := s.ratings.GetRating(ctx, userID, gameType)
	if err != nil {
		return err
	}

	if model.Color(in.Color) == model.ColorWhite {
		r.WhiteGames++
	} else {
		r.BlackGames++
	}

	r.GamesPlayed++
	switch model.GameResult(in.GameResult) {
	case model.GameResultWin:
		r.Wins++
	case model.GameResultLoss:
		r.Losses++
	case model.GameResultDraw:
		r.Draws++
	}

	r.Rating = in.NewRating
	if in.NewRating > r.PeakRating {
		r.PeakRating = in.NewRating
	}

	return s.ratings.SaveRating(ctx, r)
}

func (s *ratingService) ColorBalance(ctx context.Context, userID int64, gameType model.GameType) (float64, error) {
	r, err := s.ratings.GetRating(ctx, userID, gameType)
	if customErrors.IsNotFound(err) {
		// Seed the row so the matchmaker gets a stable answer next time.
		seed := model.Rating{
			UserID:     userID,
			GameType:   gameType,
			Rating:     model.DefaultRating,
			PeakRating: model.DefaultRating,
		}
		if err := s.ratings.CreateRatings(ctx, []model.Rating{seed}); err != nil {
			return 0, err
		}
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return r.ColorBalance(), nil
}
