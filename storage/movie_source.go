package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Dosada05/movie-battle/models"
)

// ErrDataSourceFailure wraps every failure to obtain the movie list: I/O, transport, non-2xx
// responses and malformed documents.
var ErrDataSourceFailure = errors.New("movie data source failure")

const maxMoviesDocumentSize = 10 << 20

// MovieSource supplies the pool of movies battles are drawn from.
type MovieSource interface {
	FetchMovies(ctx context.Context) ([]models.Movie, error)
	Name() string
}

// DecodeMovies parses a JSON array of movies. Titles are required and ids must be unique.
func DecodeMovies(r io.Reader) ([]models.Movie, error) {
	var movies []models.Movie
	dec := json.NewDecoder(io.LimitReader(r, maxMoviesDocumentSize))
	if err := dec.Decode(&movies); err != nil {
		return nil, fmt.Errorf("%w: malformed movie list: %w", ErrDataSourceFailure, err)
	}

	seen := make(map[int]struct{}, len(movies))
	for i, m := range movies {
		if strings.TrimSpace(m.Title) == "" {
			return nil, fmt.Errorf("%w: movie at index %d has no title", ErrDataSourceFailure, i)
		}
		if _, dup := seen[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate movie id %d", ErrDataSourceFailure, m.ID)
		}
		seen[m.ID] = struct{}{}
	}

	if movies == nil {
		movies = []models.Movie{}
	}
	return movies, nil
}

// FileMovieSource reads the movie list from a local JSON file.
type FileMovieSource struct {
	Path string
}

func NewFileMovieSource(path string) *FileMovieSource {
	return &FileMovieSource{Path: path}
}

func (s *FileMovieSource) Name() string { return "file:" + s.Path }

func (s *FileMovieSource) FetchMovies(ctx context.Context) ([]models.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataSourceFailure, err)
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataSourceFailure, err)
	}
	defer f.Close()

	return DecodeMovies(f)
}

// HTTPMovieSource downloads the movie list from a URL.
type HTTPMovieSource struct {
	URL    string
	Client *http.Client
}

func NewHTTPMovieSource(url string, timeout time.Duration) *HTTPMovieSource {
	return &HTTPMovieSource{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPMovieSource) Name() string { return "http:" + s.URL }

func (s *HTTPMovieSource) FetchMovies(ctx context.Context) ([]models.Movie, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataSourceFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataSourceFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP error status %d", ErrDataSourceFailure, resp.StatusCode)
	}

	return DecodeMovies(resp.Body)
}

// BucketMovieSource reads the movie list from an object in the bucket.
type BucketMovieSource struct {
	Reader ObjectReader
	Key    string
}

func NewBucketMovieSource(reader ObjectReader, key string) *BucketMovieSource {
	return &BucketMovieSource{Reader: reader, Key: key}
}

func (s *BucketMovieSource) Name() string { return "r2:" + s.Key }

func (s *BucketMovieSource) FetchMovies(ctx context.Context) ([]models.Movie, error) {
	body, err := s.Reader.Open(ctx, s.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataSourceFailure, err)
	}
	defer body.Close()

	return DecodeMovies(body)
}
