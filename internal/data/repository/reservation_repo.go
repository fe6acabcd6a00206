package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ReservationRepository is the append-only ledger of confirmed bookings.
type ReservationRepository interface {
	Append(ctx context.Context, reservation *entity.Reservation) error
	FindAll(ctx context.Context) ([]*entity.Reservation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByUser(ctx context.Context, userName string) ([]*entity.Reservation, error)
	FindByScreening(ctx context.Context, movieCode, hallName string, startsAt time.Time) ([]*entity.Reservation, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)

	// DeleteMatching removes a single row equal to reservation on every value column.
	DeleteMatching(ctx context.Context, reservation *entity.Reservation) (bool, error)
	DeleteByUser(ctx context.Context, userName string) (int64, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const selectReservations = `
	SELECT id, user_name, movie_title, movie_code, hall_name, starts_at,
	       seat_selection, total_cost, created_at
	FROM reservations
`

func scanReservation(row pgx.Row, res *entity.Reservation) error {
	return row.Scan(
		&res.ID,
		&res.UserName,
		&res.MovieTitle,
		&res.MovieCode,
		&res.HallName,
		&res.StartsAt,
		&res.SeatSelection,
		&res.TotalCost,
		&res.CreatedAt,
	)
}

func (r *reservationRepository) Append(ctx context.Context, res *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, user_name, movie_title, movie_code, hall_name, starts_at,
		                          seat_selection, total_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		res.ID,
		res.UserName,
		res.MovieTitle,
		res.MovieCode,
		res.HallName,
		res.StartsAt,
		res.SeatSelection,
		res.TotalCost,
		res.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to append reservation",
			zap.Error(err),
			zap.String("user", res.UserName),
			zap.String("movie_code", res.MovieCode),
			zap.String("seats", res.SeatSelection),
		)
		return fmt.Errorf("append reservation for %s: %w", res.UserName, err)
	}

	return nil
}

func (r *reservationRepository) list(ctx context.Context, op string, sql string, args ...any) ([]*entity.Reservation, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		r.log.Error("Failed to query reservations", zap.Error(err), zap.String("op", op))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []*entity.Reservation
	for rows.Next() {
		var res entity.Reservation
		if err := scanReservation(rows, &res); err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		out = append(out, &res)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate reservation rows: %w", err)
	}

	return out, nil
}

func (r *reservationRepository) FindAll(ctx context.Context) ([]*entity.Reservation, error) {
	return r.list(ctx, "find reservations", selectReservations+` ORDER BY created_at`)
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	var res entity.Reservation
	err := scanReservation(r.db.QueryRow(ctx, selectReservations+` WHERE id = $1`, id), &res)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return &res, nil
}

func (r *reservationRepository) FindByUser(ctx context.Context, userName string) ([]*entity.Reservation, error) {
	return r.list(ctx, fmt.Sprintf("find reservations of %s", userName),
		selectReservations+` WHERE user_name = $1 ORDER BY starts_at`, userName)
}

func (r *reservationRepository) FindByScreening(ctx context.Context, movieCode, hallName string, startsAt time.Time) ([]*entity.Reservation, error) {
	return r.list(ctx, fmt.Sprintf("find reservations of %s in %s", movieCode, hallName),
		selectReservations+`
		WHERE LOWER(movie_code) = LOWER(TRIM($1))
		  AND LOWER(hall_name) = LOWER(TRIM($2))
		  AND starts_at = $3
		ORDER BY created_at`, movieCode, hallName, startsAt)
}

func (r *reservationRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return false, fmt.Errorf("delete reservation %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *reservationRepository) DeleteMatching(ctx context.Context, res *entity.Reservation) (bool, error) {
	query := `
		DELETE FROM reservations
		WHERE id = (
			SELECT id FROM reservations
			WHERE user_name = $1 AND movie_title = $2
			  AND LOWER(movie_code) = LOWER(TRIM($3))
			  AND LOWER(hall_name) = LOWER(TRIM($4)) AND starts_at = $5
			  AND seat_selection = $6 AND TRIM(total_cost) = TRIM($7)
			ORDER BY created_at
			LIMIT 1
		)
	`

	result, err := r.db.Exec(ctx, query,
		res.UserName,
		res.MovieTitle,
		res.MovieCode,
		res.HallName,
		res.StartsAt,
		res.SeatSelection,
		res.TotalCost,
	)
	if err != nil {
		r.log.Error("Failed to delete matching reservation",
			zap.Error(err),
			zap.String("user", res.UserName),
			zap.String("seats", res.SeatSelection),
		)
		return false, fmt.Errorf("delete reservation of %s: %w", res.UserName, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *reservationRepository) DeleteByUser(ctx context.Context, userName string) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE user_name = $1`, userName)
	if err != nil {
		r.log.Error("Failed to delete reservations by user", zap.Error(err), zap.String("user", userName))
		return 0, fmt.Errorf("delete reservations of %s: %w", userName, err)
	}

	r.log.Info("Reservations deleted", zap.String("user", userName), zap.Int64("count", result.RowsAffected()))
	return result.RowsAffected(), nil
}
