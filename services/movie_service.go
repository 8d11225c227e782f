package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Dosada05/movie-battle/models"
	"github.com/Dosada05/movie-battle/repositories"
	"github.com/Dosada05/movie-battle/storage"
	"golang.org/x/sync/singleflight"
)

const (
	poolFlightKey    = "pool"
	poolFetchTimeout = 30 * time.Second
)

var (
	ErrMovieCreationFailed = errors.New("failed to create movie")
	ErrMovieDeleteFailed   = errors.New("failed to delete movie")
	ErrPosterUploadFailed  = errors.New("failed to upload poster")
)

type MovieService interface {
	// Pool returns every movie a battle may sample from.
	Pool(ctx context.Context) ([]models.Movie, error)
	Invalidate()
	CreateMovie(ctx context.Context, input CreateMovieInput) (*models.Movie, error)
	UploadPoster(ctx context.Context, movieID int, contentType string, poster io.Reader) (*models.Movie, error)
	DeleteMovie(ctx context.Context, movieID int) error
}

type CreateMovieInput struct {
	Title  string `json:"title"`
	Poster string `json:"poster"`
	Year   int    `json:"year"`
	Plot   string `json:"plot"`
}

type movieService struct {
	source   storage.MovieSource
	repo     repositories.MovieRepository
	uploader storage.FileUploader
	cacheTTL time.Duration
	logger   *slog.Logger
	now      func() time.Time

	flight    singleflight.Group
	mu        sync.RWMutex
	cached    []models.Movie
	expiresAt time.Time
}

// NewMovieService serves the battle pool from source. repo and uploader may be nil, in which
// case the catalog is read-only.
func NewMovieService(
	source storage.MovieSource,
	repo repositories.MovieRepository,
	uploader storage.FileUploader,
	cacheTTL time.Duration,
	logger *slog.Logger,
) MovieService {
	if logger == nil {
		logger = slog.Default()
	}
	return &movieService{
		source:   source,
		repo:     repo,
		uploader: uploader,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *movieService) Pool(ctx context.Context) ([]models.Movie, error) {
	if movies, ok := s.cachedPool(); ok {
		return movies, nil
	}

	// The fetch is shared by every waiting caller, so it must outlive the one that started it.
	flight := s.flight.DoChan(poolFlightKey, func() (interface{}, error) {
		if movies, ok := s.cachedPool(); ok {
			return movies, nil
		}

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), poolFetchTimeout)
		defer cancel()

		movies, err := s.source.FetchMovies(ctx)
		if err != nil {
			if !errors.Is(err, storage.ErrDataSourceFailure) {
				err = fmt.Errorf("%w: %s: %w", storage.ErrDataSourceFailure, s.source.Name(), err)
			}
			s.logger.ErrorContext(ctx, "Failed to load movie pool",
				slog.String("source", s.source.Name()),
				slog.Any("error", err),
			)
			return nil, err
		}
		populatePosterURLs(movies, s.uploader)

		s.mu.Lock()
		s.cached = movies
		s.expiresAt = s.now().Add(s.cacheTTL)
		s.mu.Unlock()

		s.logger.InfoContext(ctx, "Movie pool loaded",
			slog.String("source", s.source.Name()),
			slog.Int("movies", len(movies)),
		)
		return movies, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-flight:
		if res.Err != nil {
			return nil, res.Err
		}
		return copyMovies(res.Val.([]models.Movie)), nil
	}
}

func (s *movieService) cachedPool() ([]models.Movie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cached == nil || !s.now().Before(s.expiresAt) {
		return nil, false
	}
	return copyMovies(s.cached), true
}

func (s *movieService) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.expiresAt = time.Time{}
	s.mu.Unlock()
	s.flight.Forget(poolFlightKey)
}

func (s *movieService) CreateMovie(ctx context.Context, input CreateMovieInput) (*models.Movie, error) {
	if s.repo == nil {
		return nil, ErrCatalogReadOnly
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrMovieTitleRequired
	}
	if input.Year < 1870 || input.Year > 2100 {
		return nil, ErrMovieYearInvalid
	}

	movie := &models.Movie{
		Title:  title,
		Poster: strings.TrimSpace(input.Poster),
		Year:   input.Year,
		Plot:   strings.TrimSpace(input.Plot),
	}
	if err := s.repo.Create(ctx, movie); err != nil {
		if errors.Is(err, repositories.ErrMovieConflict) {
			return nil, ErrMovieConflict
		}
		return nil, fmt.Errorf("%w: %w", ErrMovieCreationFailed, err)
	}

	s.Invalidate()
	return movie, nil
}

func (s *movieService) UploadPoster(ctx context.Context, movieID int, contentType string, poster io.Reader) (*models.Movie, error) {
	if s.repo == nil {
		return nil, ErrCatalogReadOnly
	}
	if s.uploader == nil {
		return nil, ErrStorageNotConfigured
	}
	if poster == nil {
		return nil, ErrPosterRequired
	}
	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, err
	}

	movie, err := s.getMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	oldKey := movie.PosterKey

	key := posterKey(movie.ID, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, poster); err != nil {
		return nil, fmt.Errorf("%w (movie id: %d): %w", ErrPosterUploadFailed, movie.ID, err)
	}

	if err := s.repo.UpdatePosterKey(ctx, movie.ID, &key); err != nil {
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.WarnContext(ctx, "Failed to remove orphaned poster",
				slog.String("key", key),
				slog.Any("error", delErr),
			)
		}
		if errors.Is(err, repositories.ErrMovieNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("%w (movie id: %d): %w", ErrPosterUploadFailed, movie.ID, err)
	}

	if oldKey != nil && *oldKey != "" && *oldKey != key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.WarnContext(ctx, "Failed to delete previous poster",
				slog.Int("movie_id", movie.ID),
				slog.String("key", *oldKey),
				slog.Any("error", err),
			)
		}
	}

	movie.PosterKey = &key
	populatePosterURL(movie, s.uploader)
	s.Invalidate()
	return movie, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID int) error {
	if s.repo == nil {
		return ErrCatalogReadOnly
	}
	movie, err := s.getMovie(ctx, movieID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, movie.ID); err != nil {
		if errors.Is(err, repositories.ErrMovieNotFound) {
			return ErrMovieNotFound
		}
		return fmt.Errorf("%w (movie id: %d): %w", ErrMovieDeleteFailed, movie.ID, err)
	}

	if movie.PosterKey != nil && *movie.PosterKey != "" && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *movie.PosterKey); err != nil {
			s.logger.WarnContext(ctx, "Failed to delete poster of removed movie",
				slog.Int("movie_id", movie.ID),
				slog.String("key", *movie.PosterKey),
				slog.Any("error", err),
			)
		}
	}

	s.Invalidate()
	return nil
}

func (s *movieService) getMovie(ctx context.Context, movieID int) (*models.Movie, error) {
	movie, err := s.repo.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, repositories.ErrMovieNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to get movie by id %d: %w", movieID, err)
	}
	return movie, nil
}

func copyMovies(movies []models.Movie) []models.Movie {
	out := make([]models.Movie, len(movies))
	copy(out, movies)
	return out
}
