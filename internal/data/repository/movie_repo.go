package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-manager/internal/data/entity"
	"cinema-manager/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByCode(ctx context.Context, code string) (*entity.Movie, error)
	FindAll(ctx context.Context, status *entity.MovieStatus) ([]*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, code string) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (id, code, title, duration_minutes, is_3d, status,
		                    genre, director, cast_members, release_year, plot, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Code,
		movie.Title,
		movie.DurationMinutes,
		movie.Is3D,
		movie.Status,
		movie.Genre,
		movie.Director,
		movie.Cast,
		movie.Year,
		movie.Plot,
		movie.CreatedAt,
		movie.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create movie %s: %w", movie.Code, ErrDuplicateKey)
		}
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("code", movie.Code),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie %s: %w", movie.Code, err)
	}

	return nil
}

func (r *movieRepository) FindByCode(ctx context.Context, code string) (*entity.Movie, error) {
	query := `
		SELECT id, code, title, duration_minutes, is_3d, status,
		       genre, director, cast_members, release_year, plot, created_at, updated_at
		FROM movies
		WHERE LOWER(code) = LOWER(TRIM($1))
	`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, code).Scan(
		&movie.ID,
		&movie.Code,
		&movie.Title,
		&movie.DurationMinutes,
		&movie.Is3D,
		&movie.Status,
		&movie.Genre,
		&movie.Director,
		&movie.Cast,
		&movie.Year,
		&movie.Plot,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find movie by code %s: %w", code, err)
	}

	return &movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, status *entity.MovieStatus) ([]*entity.Movie, error) {
	query := `
		SELECT id, code, title, duration_minutes, is_3d, status,
		       genre, director, cast_members, release_year, plot, created_at, updated_at
		FROM movies
	`
	args := []any{}
	if status != nil && *status != "" {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY title`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find all movies", zap.Error(err))
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Code,
			&movie.Title,
			&movie.DurationMinutes,
			&movie.Is3D,
			&movie.Status,
			&movie.Genre,
			&movie.Director,
			&movie.Cast,
			&movie.Year,
			&movie.Plot,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, &movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	r.log.Debug("Movies found", zap.Int("count", len(movies)))
	return movies, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, duration_minutes = $3, is_3d = $4, status = $5,
		    genre = $6, director = $7, cast_members = $8, release_year = $9, plot = $10,
		    updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.DurationMinutes,
		movie.Is3D,
		movie.Status,
		movie.Genre,
		movie.Director,
		movie.Cast,
		movie.Year,
		movie.Plot,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("code", movie.Code),
		)
		return fmt.Errorf("update movie %s: %w", movie.Code, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %s not found", movie.Code)
	}

	return nil
}

func (r *movieRepository) Delete(ctx context.Context, code string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM movies WHERE LOWER(code) = LOWER(TRIM($1))`, code)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("code", code),
		)
		return fmt.Errorf("delete movie %s: %w", code, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %s not found", code)
	}

	r.log.Info("Movie deleted", zap.String("code", code))
	return nil
}
