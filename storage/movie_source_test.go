package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const moviesJSON = `[
	{"id": 1, "title": "Alien", "poster": "https://img.example/alien.jpg", "year": 1979, "plot": "In space no one can hear you scream."},
	{"id": 2, "title": "Heat", "poster": "https://img.example/heat.jpg", "year": 1995, "plot": "A cop and a thief."}
]`

func TestDecodeMovies(t *testing.T) {
	movies, err := DecodeMovies(strings.NewReader(moviesJSON))

	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "Alien", movies[0].Title)
	assert.Equal(t, 1979, movies[0].Year)
	assert.Equal(t, "https://img.example/heat.jpg", movies[1].Poster)
	assert.Nil(t, movies[1].PosterKey)
}

func TestDecodeMovies_Rejects(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "not json", body: "<html>oops</html>"},
		{name: "object instead of array", body: `{"id": 1}`},
		{name: "duplicate id", body: `[{"id": 1, "title": "A"}, {"id": 1, "title": "B"}]`},
		{name: "missing title", body: `[{"id": 1, "title": "  "}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeMovies(strings.NewReader(tc.body))
			assert.ErrorIs(t, err, ErrDataSourceFailure)
		})
	}
}

func TestDecodeMovies_NullIsEmpty(t *testing.T) {
	movies, err := DecodeMovies(strings.NewReader("null"))

	require.NoError(t, err)
	assert.NotNil(t, movies)
	assert.Empty(t, movies)
}

func TestFileMovieSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.json")
	require.NoError(t, os.WriteFile(path, []byte(moviesJSON), 0o600))

	movies, err := NewFileMovieSource(path).FetchMovies(context.Background())

	require.NoError(t, err)
	assert.Len(t, movies, 2)
}

func TestFileMovieSource_Missing(t *testing.T) {
	_, err := NewFileMovieSource(filepath.Join(t.TempDir(), "nope.json")).FetchMovies(context.Background())

	assert.ErrorIs(t, err, ErrDataSourceFailure)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHTTPMovieSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movies.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, moviesJSON)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	t.Run("ok", func(t *testing.T) {
		movies, err := NewHTTPMovieSource(srv.URL+"/movies.json", time.Second).FetchMovies(context.Background())
		require.NoError(t, err)
		assert.Len(t, movies, 2)
	})

	t.Run("non 2xx status", func(t *testing.T) {
		_, err := NewHTTPMovieSource(srv.URL+"/missing.json", time.Second).FetchMovies(context.Background())
		require.ErrorIs(t, err, ErrDataSourceFailure)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewHTTPMovieSource(srv.URL+"/movies.json", time.Second).FetchMovies(ctx)
		assert.ErrorIs(t, err, ErrDataSourceFailure)
	})
}

type fakeObjectReader struct {
	objects map[string]string
}

func (f *fakeObjectReader) Open(_ context.Context, key string) (io.ReadCloser, error) {
	body, ok := f.objects[key]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func TestBucketMovieSource(t *testing.T) {
	reader := &fakeObjectReader{objects: map[string]string{"data/movies.json": moviesJSON}}

	movies, err := NewBucketMovieSource(reader, "data/movies.json").FetchMovies(context.Background())
	require.NoError(t, err)
	assert.Len(t, movies, 2)

	_, err = NewBucketMovieSource(reader, "other.json").FetchMovies(context.Background())
	assert.ErrorIs(t, err, ErrDataSourceFailure)
	assert.True(t, errors.Is(err, ErrObjectNotFound))
}

func TestJoinPublicURL(t *testing.T) {
	cases := []struct {
		base, key, want string
	}{
		{"https://cdn.example.com", "posters/1.jpg", "https://cdn.example.com/posters/1.jpg"},
		{"https://cdn.example.com/", "/posters/1.jpg", "https://cdn.example.com/posters/1.jpg"},
		{"https://cdn.example.com/media", "posters/1.jpg", "https://cdn.example.com/media/posters/1.jpg"},
		{"", "posters/1.jpg", ""},
		{"https://cdn.example.com", "", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, joinPublicURL(tc.base, tc.key), "base=%q key=%q", tc.base, tc.key)
	}
}
