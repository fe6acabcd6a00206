package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-manager/internal/data/entity"
	"cinema-manager/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type HallRepository interface {
	Create(ctx context.Context, hall *entity.Hall, seats []*entity.Seat) error
	FindAll(ctx context.Context) ([]*entity.HallSummary, error)
	FindByName(ctx context.Context, name string) (*entity.Hall, error)
	FindSeats(ctx context.Context, hallID uuid.UUID) ([]*entity.Seat, error)
	ReplaceSeats(ctx context.Context, hallID uuid.UUID, seats []*entity.Seat) error

	// Rename moves the hall and every screening and reservation that refers to it.
	Rename(ctx context.Context, hallID uuid.UUID, oldName, newName string) error
	Delete(ctx context.Context, hallID uuid.UUID) error
}

type hallRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHallRepository(db database.PgxIface, log *zap.Logger) HallRepository {
	return &hallRepository{
		db:  db,
		log: log.With(zap.String("repository", "hall")),
	}
}

const insertSeatQuery = `
	INSERT INTO seats (id, hall_id, name, pos_x, pos_y, category, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func insertSeats(ctx context.Context, tx pgx.Tx, hallID uuid.UUID, seats []*entity.Seat) error {
	batch := &pgx.Batch{}
	for _, s := range seats {
		batch.Queue(insertSeatQuery, s.ID, hallID, s.Name, s.PosX, s.PosY, s.Category, s.CreatedAt)
	}
	return tx.SendBatch(ctx, batch).Close()
}

func (r *hallRepository) Create(ctx context.Context, hall *entity.Hall, seats []*entity.Seat) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO halls (id, name, created_at, updated_at)
			VALUES ($1, $2, $3, $4)
		`, hall.ID, hall.Name, hall.CreatedAt, hall.UpdatedAt)
		if err != nil {
			return err
		}
		return insertSeats(ctx, tx, hall.ID, seats)
	})

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create hall %s: %w", hall.Name, ErrDuplicateKey)
		}
		r.log.Error("Failed to create hall",
			zap.Error(err),
			zap.String("hall", hall.Name),
			zap.Int("seats", len(seats)),
		)
		return fmt.Errorf("create hall %s: %w", hall.Name, err)
	}

	return nil
}

func (r *hallRepository) FindAll(ctx context.Context) ([]*entity.HallSummary, error) {
	query := `
		SELECT h.id, h.name, h.created_at, h.updated_at,
		       COUNT(s.id) FILTER (WHERE s.category = 'standard'),
		       COUNT(s.id) FILTER (WHERE s.category = 'premium'),
		       COUNT(s.id) FILTER (WHERE s.category = 'accessible')
		FROM halls h
		LEFT JOIN seats s ON s.hall_id = h.id
		GROUP BY h.id
		ORDER BY h.name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find halls", zap.Error(err))
		return nil, fmt.Errorf("find halls: %w", err)
	}
	defer rows.Close()

	var halls []*entity.HallSummary
	for rows.Next() {
		var h entity.HallSummary
		err := rows.Scan(
			&h.ID,
			&h.Name,
			&h.CreatedAt,
			&h.UpdatedAt,
			&h.Standard,
			&h.Premium,
			&h.Accessible,
		)
		if err != nil {
			r.log.Error("Failed to scan hall row", zap.Error(err))
			return nil, fmt.Errorf("scan hall row: %w", err)
		}
		halls = append(halls, &h)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate hall rows: %w", err)
	}

	return halls, nil
}

func (r *hallRepository) FindByName(ctx context.Context, name string) (*entity.Hall, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM halls
		WHERE LOWER(name) = LOWER(TRIM($1))
	`

	var hall entity.Hall
	err := r.db.QueryRow(ctx, query, name).Scan(
		&hall.ID,
		&hall.Name,
		&hall.CreatedAt,
		&hall.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hall by name",
			zap.Error(err),
			zap.String("hall", name),
		)
		return nil, fmt.Errorf("find hall by name %s: %w", name, err)
	}

	return &hall, nil
}

func (r *hallRepository) FindSeats(ctx context.Context, hallID uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT id, hall_id, name, pos_x, pos_y, category, created_at
		FROM seats
		WHERE hall_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, hallID)
	if err != nil {
		r.log.Error("Failed to find seats by hall ID",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
		)
		return nil, fmt.Errorf("find seats by hall ID %s: %w", hallID.String(), err)
	}
	defer rows.Close()

	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.HallID,
			&seat.Name,
			&seat.PosX,
			&seat.PosY,
			&seat.Category,
			&seat.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate seat rows: %w", err)
	}

	return seats, nil
}

func (r *hallRepository) ReplaceSeats(ctx context.Context, hallID uuid.UUID, seats []*entity.Seat) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM seats WHERE hall_id = $1`, hallID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE halls SET updated_at = NOW() WHERE id = $1`, hallID); err != nil {
			return err
		}
		return insertSeats(ctx, tx, hallID, seats)
	})

	if err != nil {
		r.log.Error("Failed to replace seats",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
			zap.Int("seats", len(seats)),
		)
		return fmt.Errorf("replace seats of hall %s: %w", hallID.String(), err)
	}

	r.log.Info("Seats replaced",
		zap.String("hall_id", hallID.String()),
		zap.Int("seats", len(seats)),
	)
	return nil
}

func (r *hallRepository) Rename(ctx context.Context, hallID uuid.UUID, oldName, newName string) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`UPDATE halls SET name = $2, updated_at = NOW() WHERE id = $1`, hallID, newName)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`UPDATE screenings SET hall_name = $2 WHERE LOWER(hall_name) = LOWER($1)`, oldName, newName)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`UPDATE reservations SET hall_name = $2 WHERE LOWER(hall_name) = LOWER($1)`, oldName, newName)
		return err
	})

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("rename hall %s to %s: %w", oldName, newName, ErrDuplicateKey)
		}
		r.log.Error("Failed to rename hall",
			zap.Error(err),
			zap.String("from", oldName),
			zap.String("to", newName),
		)
		return fmt.Errorf("rename hall %s to %s: %w", oldName, newName, err)
	}

	r.log.Info("Hall renamed", zap.String("from", oldName), zap.String("to", newName))
	return nil
}

func (r *hallRepository) Delete(ctx context.Context, hallID uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM halls WHERE id = $1`, hallID)
	if err != nil {
		r.log.Error("Failed to delete hall",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
		)
		return fmt.Errorf("delete hall %s: %w", hallID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("hall %s not found", hallID.String())
	}

	r.log.Info("Hall deleted", zap.String("hall_id", hallID.String()))
	return nil
}
