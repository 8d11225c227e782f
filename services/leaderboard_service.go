package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/movie-battle/models"
	"github.com/Dosada05/movie-battle/repositories"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)

type LeaderboardService interface {
	Overview(ctx context.Context, limit int) (*LeaderboardOverview, error)
}

type LeaderboardOverview struct {
	PoolSize      int                       `json:"pool_size"`
	ActiveBattles int                       `json:"active_battles"`
	Champions     []models.ChampionStanding `json:"champions"`
}

type battleCounter interface {
	Count() int
}

type leaderboardService struct {
	movies    MovieService
	champions repositories.ChampionRepository
	battles   battleCounter
}

func NewLeaderboardService(movies MovieService, champions repositories.ChampionRepository, battles BattleService) LeaderboardService {
	return &leaderboardService{
		movies:    movies,
		champions: champions,
		battles:   battles,
	}
}

func (s *leaderboardService) Overview(ctx context.Context, limit int) (*LeaderboardOverview, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	overview := &LeaderboardOverview{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		pool, err := s.movies.Pool(gctx)
		if err != nil {
			return err
		}
		overview.PoolSize = len(pool)
		return nil
	})

	g.Go(func() error {
		top, err := s.champions.Top(gctx, limit)
		if err != nil {
			return fmt.Errorf("failed to get top champions: %w", err)
		}
		if top == nil {
			top = []models.ChampionStanding{}
		}
		overview.Champions = top
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if s.battles != nil {
		overview.ActiveBattles = s.battles.Count()
	}
	return overview, nil
}
