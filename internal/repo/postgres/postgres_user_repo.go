package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	customErrors "github.com/loc-ne/kg-auth/internal/auth/errors"
	"github.com/loc-ne/kg-auth/internal/auth/model"
	"gorm.io/gorm"
)

type PostgresUserRepo struct {
	db *gorm.DB
}

func NewPostgresUserRepo(db *gorm.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

func (p *PostgresUserRepo) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	res := p.db.WithContext(ctx).Create(&user)
	if err := res.Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.User{}, customErrors.ErrAlreadyExists
		}
		return model.User{}, customErrors.WrapInternal(err, "CreateUser")
	}
	return user, nil
}

func (p *PostgresUserRepo) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where("id = ?", id).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, "GetUserByID")
	}
	return u, nil
}

func (p *PostgresUserRepo) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where("email = ?", email).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, "GetUserByEmail")
	}
	return u, nil
}

func (p *PostgresUserRepo) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where("username = ?", username).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, "GetUserByUsername")
	}
	return u, nil
}

func (p *PostgresUserRepo) GetUserByRefreshToken(ctx context.Context, token string) (model.User, error) {
	// An emptied slot (registration, logout) must never match.
	if token == "" {
		return model.User{}, customErrors.ErrNotFound
	}
	var u model.User
	res := p.db.WithContext(ctx).Where("refresh_token = ?", token).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, "GetUserByRefreshToken")
	}
	return u, nil
}

func (p *PostgresUserRepo) SetRefreshToken(ctx context.Context, userID int64, token string) error {
	res := p.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("refresh_token", token)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "SetRefreshToken")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

func (p *PostgresUserRepo) RotateRefreshToken(ctx context.Context, userID int64, prev, next string) error {
	// Conditional write: the slot is replaced only while it still holds
	// the token that was just validated. Zero rows means a concurrent
	// rotation already consumed it.
	res := p.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND refresh_token = ?", userID, prev).
		Update("refresh_token", next)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "RotateRefreshToken")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}
