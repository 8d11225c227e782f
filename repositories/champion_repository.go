package repositories

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/movie-battle/models"
)

type ChampionRepository interface {
	Record(ctx context.Context, record *models.ChampionRecord) error
	Top(ctx context.Context, limit int) ([]models.ChampionStanding, error)
}

type postgresChampionRepository struct {
	db *sql.DB
}

func NewPostgresChampionRepository(db *sql.DB) ChampionRepository {
	return &postgresChampionRepository{db: db}
}

func (r *postgresChampionRepository) Record(ctx context.Context, record *models.ChampionRecord) error {
	query := `
		INSERT INTO champions (movie_id, title, battle_id, round_size, crowned_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		record.MovieID,
		record.Title,
		record.BattleID,
		record.RoundSize,
		record.CrownedAt,
	).Scan(&record.ID)
}

func (r *postgresChampionRepository) Top(ctx context.Context, limit int) ([]models.ChampionStanding, error) {
	query := `
		SELECT movie_id, MAX(title), COUNT(*) AS wins, MAX(crowned_at)
		FROM champions
		GROUP BY movie_id
		ORDER BY wins DESC, MAX(crowned_at) DESC
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]models.ChampionStanding, 0, limit)
	for rows.Next() {
		var s models.ChampionStanding
		if scanErr := rows.Scan(&s.MovieID, &s.Title, &s.Wins, &s.LastCrowned); scanErr != nil {
			return nil, scanErr
		}
		standings = append(standings, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return standings, nil
}

// memoryChampionRepository keeps champion records for deployments without a database.
type memoryChampionRepository struct {
	mu      sync.Mutex
	records []models.ChampionRecord
}

func NewMemoryChampionRepository() ChampionRepository {
	return &memoryChampionRepository{}
}

func (r *memoryChampionRepository) Record(_ context.Context, record *models.ChampionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.ID = len(r.records) + 1
	if record.CrownedAt.IsZero() {
		record.CrownedAt = time.Now()
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *memoryChampionRepository) Top(_ context.Context, limit int) ([]models.ChampionStanding, error) {
	r.mu.Lock()
	byMovie := make(map[int]*models.ChampionStanding)
	for _, rec := range r.records {
		s, ok := byMovie[rec.MovieID]
		if !ok {
			s = &models.ChampionStanding{MovieID: rec.MovieID, Title: rec.Title}
			byMovie[rec.MovieID] = s
		}
		s.Wins++
		if rec.CrownedAt.After(s.LastCrowned) {
			s.LastCrowned = rec.CrownedAt
			s.Title = rec.Title
		}
	}
	r.mu.Unlock()

	standings := make([]models.ChampionStanding, 0, len(byMovie))
	for _, s := range byMovie {
		standings = append(standings, *s)
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		return standings[i].LastCrowned.After(standings[j].LastCrowned)
	})
	if limit >= 0 && len(standings) > limit {
		standings = standings[:limit]
	}
	return standings, nil
}
