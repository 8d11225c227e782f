package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/movie-battle/models"
	"github.com/Dosada05/movie-battle/repositories"
	"github.com/Dosada05/movie-battle/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardService_Overview(t *testing.T) {
	ctx := context.Background()
	champions := repositories.NewMemoryChampionRepository()
	for i := 0; i < 3; i++ {
		require.NoError(t, champions.Record(ctx, &models.ChampionRecord{
			MovieID:   i%2 + 1,
			Title:     "Movie",
			BattleID:  "b",
			RoundSize: 8,
			CrownedAt: time.Now(),
		}))
	}
	movies := NewMovieService(&fakeSource{movies: testMovies(12)}, nil, nil, time.Minute, nil)

	overview, err := NewLeaderboardService(movies, champions, nil).Overview(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 12, overview.PoolSize)
	require.Len(t, overview.Champions, 2)
	assert.Equal(t, 1, overview.Champions[0].MovieID)
	assert.Equal(t, 2, overview.Champions[0].Wins)

	overview, err = NewLeaderboardService(movies, champions, nil).Overview(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, overview.Champions, 1)
}

func TestLeaderboardService_OverviewFailures(t *testing.T) {
	ctx := context.Background()
	healthy := NewMovieService(&fakeSource{movies: testMovies(2)}, nil, nil, time.Minute, nil)
	broken := NewMovieService(&fakeSource{err: errors.New("timeout")}, nil, nil, time.Minute, nil)

	_, err := NewLeaderboardService(broken, repositories.NewMemoryChampionRepository(), nil).Overview(ctx, 5)
	assert.ErrorIs(t, err, storage.ErrDataSourceFailure)

	_, err = NewLeaderboardService(healthy, failingChampionRepo{}, nil).Overview(ctx, 5)
	assert.ErrorContains(t, err, "failed to get top champions")
}

func TestLeaderboardService_EmptyChampions(t *testing.T) {
	movies := NewMovieService(&fakeSource{movies: testMovies(2)}, nil, nil, time.Minute, nil)

	overview, err := NewLeaderboardService(movies, repositories.NewMemoryChampionRepository(), nil).Overview(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, overview.Champions)
	assert.Empty(t, overview.Champions)
}
