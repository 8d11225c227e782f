package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/Dosada05/movie-battle/brackets"
	"github.com/Dosada05/movie-battle/models"
	"github.com/Dosada05/movie-battle/repositories"
	"github.com/Dosada05/movie-battle/storage"
)

func testMovies(n int) []models.Movie {
	movies := make([]models.Movie, n)
	for i := range movies {
		movies[i] = models.Movie{
			ID:     i + 1,
			Title:  fmt.Sprintf("Movie %d", i+1),
			Poster: fmt.Sprintf("https://img.example.com/%d.jpg", i+1),
			Year:   1980 + i,
		}
	}
	return movies
}

type fakeSource struct {
	mu     sync.Mutex
	movies []models.Movie
	err    error
	calls  atomic.Int32
	// block, when set, holds FetchMovies until it is closed or ctx ends.
	block chan struct{}
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) FetchMovies(ctx context.Context) ([]models.Movie, error) {
	f.calls.Add(1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Movie, len(f.movies))
	copy(out, f.movies)
	return out, nil
}

func (f *fakeSource) set(movies []models.Movie, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movies = movies
	f.err = err
}

var _ storage.MovieSource = (*fakeSource)(nil)

type fakeMovieRepo struct {
	mu     sync.Mutex
	movies map[int]models.Movie
	nextID int
}

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{movies: make(map[int]models.Movie)}
}

func (r *fakeMovieRepo) Create(_ context.Context, movie *models.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.movies {
		if m.Title == movie.Title && m.Year == movie.Year {
			return repositories.ErrMovieConflict
		}
	}
	r.nextID++
	movie.ID = r.nextID
	r.movies[movie.ID] = *movie
	return nil
}

func (r *fakeMovieRepo) GetByID(_ context.Context, id int) (*models.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movies[id]
	if !ok {
		return nil, repositories.ErrMovieNotFound
	}
	return &m, nil
}

func (r *fakeMovieRepo) List(_ context.Context) ([]models.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Movie, 0, len(r.movies))
	for id := 1; id <= r.nextID; id++ {
		if m, ok := r.movies[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovieRepo) UpdatePosterKey(_ context.Context, id int, key *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movies[id]
	if !ok {
		return repositories.ErrMovieNotFound
	}
	m.PosterKey = key
	r.movies[id] = m
	return nil
}

func (r *fakeMovieRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.movies[id]; !ok {
		return repositories.ErrMovieNotFound
	}
	delete(r.movies, id)
	return nil
}

type fakeUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	failPut bool
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: make(map[string][]byte)}
}

func (u *fakeUploader) Upload(_ context.Context, key string, _ string, reader io.Reader) (*storage.UploadResult, error) {
	if u.failPut {
		return nil, errors.New("bucket unavailable")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = data
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []brackets.WebSocketMessage
	closed   []string
}

func (n *fakeNotifier) BroadcastToRoom(_ string, message brackets.WebSocketMessage) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *fakeNotifier) CloseRoom(roomID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = append(n.closed, roomID)
}

func (n *fakeNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.messages))
	for i, m := range n.messages {
		out[i] = m.Type
	}
	return out
}

type failingChampionRepo struct{}

func (failingChampionRepo) Record(context.Context, *models.ChampionRecord) error {
	return errors.New("database is down")
}

func (failingChampionRepo) Top(context.Context, int) ([]models.ChampionStanding, error) {
	return nil, errors.New("database is down")
}

func repositoriesSource(repo *fakeMovieRepo) storage.MovieSource {
	return repositories.MovieSource{Repo: repo}
}
