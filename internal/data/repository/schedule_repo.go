package repository

import (
	"context"
	"fmt"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ScheduleRepository interface {
	Create(ctx context.Context, screening *entity.Screening) error
	FindAll(ctx context.Context) ([]*entity.Screening, error)
	FindByHall(ctx context.Context, hallName string) ([]*entity.Screening, error)
	FindByMovie(ctx context.Context, movieCode string) ([]*entity.Screening, error)
	Delete(ctx context.Context, movieCode, hallName string, startsAt time.Time) (bool, error)
	DeleteByHall(ctx context.Context, hallName string) (int64, error)
	DeleteByMovie(ctx context.Context, movieCode string) (int64, error)
}

type scheduleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScheduleRepository(db database.PgxIface, log *zap.Logger) ScheduleRepository {
	return &scheduleRepository{
		db:  db,
		log: log.With(zap.String("repository", "schedule")),
	}
}

// Screenings carry the running time of their movie so the timeline can be checked
// without a second lookup.
const selectScreenings = `
	SELECT s.id, s.movie_code, s.hall_name, s.starts_at, COALESCE(m.duration_minutes, 0), s.created_at
	FROM screenings s
	LEFT JOIN movies m ON LOWER(m.code) = LOWER(s.movie_code)
`

func scanScreenings(rows pgx.Rows) ([]*entity.Screening, error) {
	defer rows.Close()

	var screenings []*entity.Screening
	for rows.Next() {
		var s entity.Screening
		err := rows.Scan(
			&s.ID,
			&s.MovieCode,
			&s.HallName,
			&s.StartsAt,
			&s.DurationMinutes,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan screening row: %w", err)
		}
		screenings = append(screenings, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate screening rows: %w", err)
	}
	return screenings, nil
}

func (r *scheduleRepository) Create(ctx context.Context, screening *entity.Screening) error {
	query := `
		INSERT INTO screenings (id, movie_code, hall_name, starts_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		screening.ID,
		screening.MovieCode,
		screening.HallName,
		screening.StartsAt,
		screening.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create screening of %s in %s: %w", screening.MovieCode, screening.HallName, ErrDuplicateKey)
		}
		r.log.Error("Failed to create screening",
			zap.Error(err),
			zap.String("movie_code", screening.MovieCode),
			zap.String("hall", screening.HallName),
			zap.Time("starts_at", screening.StartsAt),
		)
		return fmt.Errorf("create screening of %s in %s: %w", screening.MovieCode, screening.HallName, err)
	}

	return nil
}

func (r *scheduleRepository) query(ctx context.Context, op string, sql string, args ...any) ([]*entity.Screening, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		r.log.Error("Failed to query screenings", zap.Error(err), zap.String("op", op))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	screenings, err := scanScreenings(rows)
	if err != nil {
		r.log.Error("Failed to read screenings", zap.Error(err), zap.String("op", op))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return screenings, nil
}

func (r *scheduleRepository) FindAll(ctx context.Context) ([]*entity.Screening, error) {
	return r.query(ctx, "find screenings",
		selectScreenings+` ORDER BY s.starts_at, s.hall_name`)
}

func (r *scheduleRepository) FindByHall(ctx context.Context, hallName string) ([]*entity.Screening, error) {
	return r.query(ctx, fmt.Sprintf("find screenings by hall %s", hallName),
		selectScreenings+` WHERE LOWER(s.hall_name) = LOWER(TRIM($1)) ORDER BY s.starts_at`, hallName)
}

func (r *scheduleRepository) FindByMovie(ctx context.Context, movieCode string) ([]*entity.Screening, error) {
	return r.query(ctx, fmt.Sprintf("find screenings by movie %s", movieCode),
		selectScreenings+` WHERE LOWER(s.movie_code) = LOWER(TRIM($1)) ORDER BY s.starts_at`, movieCode)
}

func (r *scheduleRepository) Delete(ctx context.Context, movieCode, hallName string, startsAt time.Time) (bool, error) {
	query := `
		DELETE FROM screenings
		WHERE LOWER(movie_code) = LOWER(TRIM($1))
		  AND LOWER(hall_name) = LOWER(TRIM($2))
		  AND starts_at = $3
	`

	result, err := r.db.Exec(ctx, query, movieCode, hallName, startsAt)
	if err != nil {
		r.log.Error("Failed to delete screening",
			zap.Error(err),
			zap.String("movie_code", movieCode),
			zap.String("hall", hallName),
			zap.Time("starts_at", startsAt),
		)
		return false, fmt.Errorf("delete screening of %s in %s: %w", movieCode, hallName, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *scheduleRepository) DeleteByHall(ctx context.Context, hallName string) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM screenings WHERE LOWER(hall_name) = LOWER(TRIM($1))`, hallName)
	if err != nil {
		r.log.Error("Failed to delete screenings by hall", zap.Error(err), zap.String("hall", hallName))
		return 0, fmt.Errorf("delete screenings by hall %s: %w", hallName, err)
	}

	r.log.Info("Screenings deleted", zap.String("hall", hallName), zap.Int64("count", result.RowsAffected()))
	return result.RowsAffected(), nil
}

func (r *scheduleRepository) DeleteByMovie(ctx context.Context, movieCode string) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM screenings WHERE LOWER(movie_code) = LOWER(TRIM($1))`, movieCode)
	if err != nil {
		r.log.Error("Failed to delete screenings by movie", zap.Error(err), zap.String("movie_code", movieCode))
		return 0, fmt.Errorf("delete screenings by movie %s: %w", movieCode, err)
	}

	r.log.Info("Screenings deleted", zap.String("movie_code", movieCode), zap.Int64("count", result.RowsAffected()))
	return result.RowsAffected(), nil
}
