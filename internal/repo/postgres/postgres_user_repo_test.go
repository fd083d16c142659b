package postgres

import (
	"context"
	"testing"

	"github.com/loc-ne/kg-auth/internal/auth/errors"
	"github.com/loc-ne/kg-auth/internal/auth/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Rating{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestPostgresUserRepo_CRUD(t *testing.T) {
	repo := NewPostgresUserRepo(setupDB(t))
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, model.User{
		Email: "e@e.com", Username: "u", PasswordHash: "h", Role: model.RoleUser, IsActive: true,
	})
	if err != nil || created.ID == 0 {
		t.Fatalf("create %v", err)
	}

	got, err := repo.GetUserByEmail(ctx, "e@e.com")
	if err != nil || got.ID != created.ID {
		t.Fatalf("get by email %v", err)
	}
	got, err = repo.GetUserByUsername(ctx, "u")
	if err != nil || got.ID != created.ID {
		t.Fatalf("get by username %v", err)
	}
	got, err = repo.GetUserByID(ctx, created.ID)
	if err != nil || got.Email != "e@e.com" {
		t.Fatalf("get by id %v", err)
	}
	if _, err := repo.GetUserByID(ctx, 9999); !errors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPostgresUserRepo_RefreshTokenSlot(t *testing.T) {
	repo := NewPostgresUserRepo(setupDB(t))
	ctx := context.Background()

	u, err := repo.CreateUser(ctx, model.User{
		Email: "e@e.com", Username: "u", PasswordHash: "h", IsActive: true,
	})
	if err != nil {
		t.Fatalf("create %v", err)
	}

	// Fresh account holds no token; the empty slot must never match.
	if _, err := repo.GetUserByRefreshToken(ctx, ""); !errors.IsNotFound(err) {
		t.Fatalf("empty token must not match, got %v", err)
	}

	if err := repo.SetRefreshToken(ctx, u.ID, "tok-a"); err != nil {
		t.Fatalf("set %v", err)
	}
	got, err := repo.GetUserByRefreshToken(ctx, "tok-a")
	if err != nil || got.ID != u.ID {
		t.Fatalf("lookup by token %v", err)
	}

	// Conditional rotation succeeds while the slot still holds tok-a.
	if err := repo.RotateRefreshToken(ctx, u.ID, "tok-a", "tok-b"); err != nil {
		t.Fatalf("rotate %v", err)
	}
	if _, err := repo.GetUserByRefreshToken(ctx, "tok-a"); !errors.IsNotFound(err) {
		t.Fatalf("consumed token must not match, got %v", err)
	}

	// A second rotation from the stale value loses.
	if err := repo.RotateRefreshToken(ctx, u.ID, "tok-a", "tok-c"); !errors.IsNotFound(err) {
		t.Fatalf("stale rotation must fail, got %v", err)
	}
	if _, err := repo.GetUserByRefreshToken(ctx, "tok-b"); err != nil {
		t.Fatalf("current token must match: %v", err)
	}

	// Logout empties the slot.
	if err := repo.SetRefreshToken(ctx, u.ID, ""); err != nil {
		t.Fatalf("clear %v", err)
	}
	if _, err := repo.GetUserByRefreshToken(ctx, "tok-b"); !errors.IsNotFound(err) {
		t.Fatalf("cleared slot must not match, got %v", err)
	}
}

func TestPostgresUserRepo_SetRefreshTokenUnknownUser(t *testing.T) {
	repo := NewPostgresUserRepo(setupDB(t))
	if err := repo.SetRefreshToken(context.Background(), 777, "tok"); !errors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
