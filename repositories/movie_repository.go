package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/movie-battle/models"
	"github.com/lib/pq"
)

var (
	ErrMovieNotFound = errors.New("movie not found")
	ErrMovieConflict = errors.New("movie with this title and year already exists")
)

type MovieRepository interface {
	Create(ctx context.Context, movie *models.Movie) error
	GetByID(ctx context.Context, id int) (*models.Movie, error)
	List(ctx context.Context) ([]models.Movie, error)
	UpdatePosterKey(ctx context.Context, id int, key *string) error
	Delete(ctx context.Context, id int) error
}

type postgresMovieRepository struct {
	db *sql.DB
}

func NewPostgresMovieRepository(db *sql.DB) MovieRepository {
	return &postgresMovieRepository{db: db}
}

func (r *postgresMovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	query := `
		INSERT INTO movies (title, poster, poster_key, year, plot)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		movie.Title,
		movie.Poster,
		movie.PosterKey,
		movie.Year,
		movie.Plot,
	).Scan(&movie.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "movies_title_year_key" {
			return ErrMovieConflict
		}
		return err
	}
	return nil
}

func (r *postgresMovieRepository) GetByID(ctx context.Context, id int) (*models.Movie, error) {
	query := `
		SELECT id, title, poster, poster_key, year, plot
		FROM movies
		WHERE id = $1`
	movie := &models.Movie{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Poster,
		&movie.PosterKey,
		&movie.Year,
		&movie.Plot,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return movie, nil
}

func (r *postgresMovieRepository) List(ctx context.Context) ([]models.Movie, error) {
	query := `
		SELECT id, title, poster, poster_key, year, plot
		FROM movies
		ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]models.Movie, 0)
	for rows.Next() {
		var movie models.Movie
		if scanErr := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Poster,
			&movie.PosterKey,
			&movie.Year,
			&movie.Plot,
		); scanErr != nil {
			return nil, scanErr
		}
		movies = append(movies, movie)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *postgresMovieRepository) UpdatePosterKey(ctx context.Context, id int, key *string) error {
	query := `UPDATE movies SET poster_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, key, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMovieNotFound)
}

func (r *postgresMovieRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM movies WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMovieNotFound)
}

// MovieSource exposes a repository as a movie source so battles can be drawn from the table.
type MovieSource struct {
	Repo MovieRepository
}

func (s MovieSource) Name() string { return "postgres:movies" }

func (s MovieSource) FetchMovies(ctx context.Context) ([]models.Movie, error) {
	return s.Repo.List(ctx)
}
