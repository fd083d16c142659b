package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authjwt "github.com/loc-ne/kg-auth/internal/auth/jwt"
	authsvc "github.com/loc-ne/kg-auth/internal/auth/service"
	"github.com/loc-ne/kg-auth/internal/config"
	lg "github.com/loc-ne/kg-auth/internal/infra/log"
	"github.com/loc-ne/kg-auth/internal/migrate"
	"github.com/loc-ne/kg-auth/internal/rating"
	pgrepo "github.com/loc-ne/kg-auth/internal/repo/postgres"
	httptransport "github.com/loc-ne/kg-auth/internal/transport/http"
	"github.com/loc-ne/kg-auth/internal/transport/http/middleware"
)

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	jwtUtil, err := authjwt.NewJWTUtil(cfg)
	if err != nil {
		zapLog.Fatal("failed to init JWT util", zap.Error(err))
	}

	validate := validator.New()
	userRepo := pgrepo.NewPostgresUserRepo(db)
	ratingRepo := pgrepo.NewPostgresRatingRepo(db)
	svc := authsvc.New(userRepo, ratingRepo, jwtUtil, cfg, validate)
	ratingSvc := rating.New(ratingRepo, validate)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(zapLog))
	router.Use(middleware.NewRateLimitPerIP(50, 100, 10_000, time.Hour))

	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept",
			"Authorization",
			"X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	// Brute-force throttle on credential endpoints; only active when a
	// redis address is configured.
	var throttle gin.HandlerFunc
	if cfg.RedisAddress != "" {
		redisCli := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisCli.Close()
		throttle = middleware.NewLoginThrottle(redisCli, 10, time.Minute, zapLog)
	}

	handler := httptransport.NewHandler(svc, ratingSvc, cfg.CookieDomain)
	handler.RegisterRoutes(router, middleware.CookieAuth(jwtUtil), throttle)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})

	srv := &http.Server{Addr: cfg.HTTPAddress, Handler: router}

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		zapLog.Info("auth service listening", zap.String("addr", cfg.HTTPAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			zapLog.Info("shutdown signal received")
		case <-ctx.Done():
		}

		ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		return srv.Shutdown(ctxShutdown)
	})

	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
