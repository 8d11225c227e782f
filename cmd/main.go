package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Dosada05/movie-battle/brackets"
	"github.com/Dosada05/movie-battle/config"
	"github.com/Dosada05/movie-battle/db"
	"github.com/Dosada05/movie-battle/handlers"
	"github.com/Dosada05/movie-battle/middleware"
	"github.com/Dosada05/movie-battle/repositories"
	api "github.com/Dosada05/movie-battle/routes"
	"github.com/Dosada05/movie-battle/services"
	"github.com/Dosada05/movie-battle/storage"
	"github.com/go-chi/chi/v5"
)

const (
	reaperInterval     = time.Minute
	sourceFetchTimeout = 10 * time.Second
	visitorIdleTimeout = 10 * time.Minute
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("movies_source", cfg.MoviesSource),
		slog.Int("round_size", cfg.RoundSize),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var dbConn *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err = db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			logger.Error("failed to connect to database", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			} else {
				logger.Info("database connection closed")
			}
		}()
		if err := db.Migrate(ctx, dbConn); err != nil {
			logger.Error("failed to migrate database", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("database connection established")
	}

	var bucket storage.Bucket
	if cfg.R2.Enabled() {
		bucket, err = storage.NewCloudflareR2Uploader(ctx, cfg.R2)
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2.BucketName))
	}

	var (
		movieRepo     repositories.MovieRepository
		championsRepo repositories.ChampionRepository
	)
	if dbConn != nil {
		movieRepo = repositories.NewPostgresMovieRepository(dbConn)
		championsRepo = repositories.NewPostgresChampionRepository(dbConn)
	} else {
		championsRepo = repositories.NewMemoryChampionRepository()
	}

	source, err := newMovieSource(cfg.MoviesSource, movieRepo, bucket)
	if err != nil {
		logger.Error("failed to configure movie source", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("movie source configured", slog.String("source", source.Name()))

	wsHub := brackets.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	tokenService := services.NewTokenService(cfg.JWTSecretKey, cfg.BattleTokenTTL)
	movieService := services.NewMovieService(source, movieRepo, bucket, cfg.PoolCacheTTL, logger)
	battleService := services.NewBattleService(movieService, championsRepo, tokenService, wsHub, services.BattleConfig{
		RoundSize:    cfg.RoundSize,
		IdleTTL:      cfg.BattleIdleTTL,
		SharePageURL: cfg.SharePageURL,
	}, logger)
	authService := services.NewAuthService(cfg.AdminPasswordHash, tokenService)
	leaderboardService := services.NewLeaderboardService(movieService, championsRepo, battleService)
	logger.Info("Services initialized")

	voteLimiter := middleware.NewRateLimiter(cfg.VoteRateLimit, cfg.VoteRateBurst)

	go func() {
		ticker := time.NewTicker(reaperInterval)
		defer ticker.Stop()
		logger.Info("Idle battle reaper started", slog.Duration("interval", reaperInterval), slog.Duration("idle_ttl", cfg.BattleIdleTTL))

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				battleService.ExpireIdle(ctx, now)
				voteLimiter.Cleanup(visitorIdleTimeout)
			}
		}
	}()

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		api.Options{
			AllowedOrigins:    cfg.CORSAllowedOrigins,
			TrustProxyHeaders: cfg.TrustProxyHeaders,
			Tokens:            tokenService,
			VoteLimiter:       voteLimiter,
		},
		handlers.NewBattleHandler(battleService),
		handlers.NewMovieHandler(movieService),
		handlers.NewAuthHandler(authService),
		handlers.NewLeaderboardHandler(leaderboardService),
		handlers.NewWebSocketHandler(wsHub, battleService, logger),
	)
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			stop()
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		stop()
		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}

// newMovieSource picks the movie source named by MOVIES_SOURCE.
func newMovieSource(location string, movieRepo repositories.MovieRepository, bucket storage.Bucket) (storage.MovieSource, error) {
	switch {
	case location == "postgres":
		if movieRepo == nil {
			return nil, errors.New("MOVIES_SOURCE=postgres requires DATABASE_URL")
		}
		return repositories.MovieSource{Repo: movieRepo}, nil
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return storage.NewHTTPMovieSource(location, sourceFetchTimeout), nil
	case strings.HasPrefix(location, "r2://"):
		if bucket == nil {
			return nil, errors.New("MOVIES_SOURCE=r2://… requires the R2_* settings")
		}
		key := strings.TrimPrefix(location, "r2://")
		if key == "" {
			return nil, errors.New("MOVIES_SOURCE=r2:// needs an object key")
		}
		return storage.NewBucketMovieSource(bucket, key), nil
	case location == "":
		return nil, errors.New("MOVIES_SOURCE is empty")
	default:
		return storage.NewFileMovieSource(location), nil
	}
}
