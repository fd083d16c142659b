package rating_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/loc-ne/kg-auth/internal/auth/dto"
	authErrors "github.com/loc-ne/kg-auth/internal/auth/errors"
	"github.com/loc-ne/kg-auth/internal/auth/model"
	"github.com/loc-ne/kg-auth/internal/rating"
	"github.com/stretchr/testify/require"
)

type ratingRepoStub struct {
	rows map[model.GameType]model.Rating
}

func newRatingRepoStub() *ratingRepoStub {
	return &ratingRepoStub{rows: make(map[model.GameType]model.Rating)}
}

func (r *ratingRepoStub) CreateRatings(_ context.Context, ratings []model.Rating) error {
	for _, row := range ratings {
		r.rows[row.GameType] = row
	}
	return nil
}

func (r *ratingRepoStub) GetRating(_ context.Context, _ int64, gt model.GameType) (model.Rating, error) {
	row, ok := r.rows[gt]
	if !ok {
		return model.Rating{}, authErrors.ErrNotFound
	}
	return row, nil
}

func (r *ratingRepoStub) GetAllRatings(_ context.Context, _ int64) ([]model.Rating, error) {
	out := make([]model.Rating, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	return out, nil
}

func (r *ratingRepoStub) SaveRating(_ context.Context, row model.Rating) error {
	r.rows[row.GameType] = row
	return nil
}

func newSvc() (rating.Service, *ratingRepoStub) {
	repo := newRatingRepoStub()
	return rating.New(repo, validator.New()), repo
}

func TestRatingService_UpdateElo(t *testing.T) {
	svc, repo := newSvc()
	ctx := context.Background()
	repo.rows[model.GameTypeBlitz] = model.Rating{
		UserID: 1, GameType: model.GameTypeBlitz, Rating: 1200, PeakRating: 1200,
	}

	err := svc.UpdateElo(ctx, 1, model.GameTypeBlitz, dto.UpdateEloDTO{
		NewRating: 1250, GameResult: "win", Color: "white",
	})
	require.NoError(t, err)

	r := repo.rows[model.GameTypeBlitz]
	require.Equal(t, 1250, r.Rating)
	require.Equal(t, 1250, r.PeakRating)
	require.Equal(t, 1, r.Wins)
	require.Equal(t, 1, r.GamesPlayed)
	require.Equal(t, 1, r.WhiteGames)
	require.Equal(t, 0, r.BlackGames)

	// A losing result lowers the rating but never the peak.
	err = svc.UpdateElo(ctx, 1, model.GameTypeBlitz, dto.UpdateEloDTO{
		NewRating: 1180, GameResult: "loss", Color: "black",
	})
	require.NoError(t, err)

	r = repo.rows[model.GameTypeBlitz]
	require.Equal(t, 1180, r.Rating)
	require.Equal(t, 1250, r.PeakRating)
	require.Equal(t, 1, r.Losses)
	require.Equal(t, 2, r.GamesPlayed)
	require.Equal(t, 1, r.BlackGames)

	err = svc.UpdateElo(ctx, 1, model.GameTypeBlitz, dto.UpdateEloDTO{
		NewRating: 1180, GameResult: "draw", Color: "white",
	})
	require.NoError(t, err)
	require.Equal(t, 1, repo.rows[model.GameTypeBlitz].Draws)
}

func TestRatingService_UpdateEloUnknownRow(t *testing.T) {
	svc, _ := newSvc()
	err := svc.UpdateElo(context.Background(), 1, model.GameTypeRapid, dto.UpdateEloDTO{
		NewRating: 1250, GameResult: "win", Color: "white",
	})
	require.True(t, authErrors.IsNotFound(err))
}

func TestRatingService_UpdateEloInvalidInput(t *testing.T) {
	svc, _ := newSvc()
	err := svc.UpdateElo(context.Background(), 1, model.GameTypeRapid, dto.UpdateEloDTO{
		NewRating: 1250, GameResult: "stalemate", Color: "white",
	})
	require.True(t, authErrors.IsInvalidArgument(err))
}

func TestRatingService_ColorBalance(t *testing.T) {
	svc, repo := newSvc()
	ctx := context.Background()

	// No row yet: a default one is seeded and balance is neutral.
	balance, err := svc.ColorBalance(ctx, 1, model.GameTypeBullet)
	require.NoError(t, err)
	require.Zero(t, balance)
	require.Equal(t, model.DefaultRating, repo.rows[model.GameTypeBullet].Rating)

	repo.rows[model.GameTypeBullet] = model.Rating{
		UserID: 1, GameType: model.GameTypeBullet, WhiteGames: 3, BlackGames: 1,
	}
	balance, err = svc.ColorBalance(ctx, 1, model.GameTypeBullet)
	require.NoError(t, err)
	require.InDelta(t, 0.5, balance, 1e-9)
}

func TestRatingService_Elo(t *testing.T) {
	svc, repo := newSvc()
	repo.rows[model.GameTypeClassical] = model.Rating{
		UserID: 1, GameType: model.GameTypeClassical, Rating: 1432,
	}

	elo, err := svc.Elo(context.Background(), 1, model.GameTypeClassical)
	require.NoError(t, err)
	require.Equal(t, 1432, elo)

	_, err = svc.Elo(context.Background(), 1, model.GameTypeBullet)
	require.True(t, authErrors.IsNotFound(err))
}

func TestRatingModel_WinRate(t *testing.T) {
	r := model.Rating{Wins: 2, GamesPlayed: 3}
	require.Equal(t, 67, r.WinRate())
	require.Zero(t, model.Rating{}.WinRate())
}
