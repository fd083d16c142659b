package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	customErrors "github.com/loc-ne/kg-auth/internal/auth/errors"
	"github.com/loc-ne/kg-auth/internal/auth/model"
	"gorm.io/gorm"
)

type PostgresRatingRepo struct {
	db *gorm.DB
}

func NewPostgresRatingRepo(db *gorm.DB) *PostgresRatingRepo {
	return &PostgresRatingRepo{db: db}
}

func (p *PostgresRatingRepo) CreateRatings(ctx context.Context, ratings []model.Rating) error {
	if len(ratings) == 0 {
		return nil
	}
	res := p.db.WithContext(ctx).Create(&ratings)
	if err := res.Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return customErrors.ErrAlreadyExists
		}
		return customErrors.WrapInternal(err, "CreateRatings")
	}
	return nil
}

func (p *PostgresRatingRepo) GetRating(ctx context.Context, userID int64, gameType model.GameType) (model.Rating, error) {
	var r model.Rating
	res := p.db.WithContext(ctx).
		Where("user_id = ? AND game_type = ?", userID, gameType).
		First(&r)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Rating{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Rating{}, customErrors.WrapInternal(err, "GetRating")
	}
	return r, nil
}

func (p *PostgresRatingRepo) GetAllRatings(ctx context.Context, userID int64) ([]model.Rating, error) {
	var rs []model.Rating
	res := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("game_type").
		Find(&rs)
	if err := res.Error; err != nil {
		return nil, customErrors.WrapInternal(err, "GetAllRatings")
	}
	return rs, nil
}

func (p *PostgresRatingRepo) SaveRating(ctx context.Context, r model.Rating) error {
	res := p.db.WithContext(ctx).Save(&r)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "SaveRating")
	}
	return nil
}
