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

type PriceRepository interface {
	// Find returns nil when no price table has been stored yet.
	Find(ctx context.Context) (*entity.PriceTable, error)
	Replace(ctx context.Context, prices *entity.PriceTable) error
}

type priceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPriceRepository(db database.PgxIface, log *zap.Logger) PriceRepository {
	return &priceRepository{
		db:  db,
		log: log.With(zap.String("repository", "price")),
	}
}

func (r *priceRepository) Find(ctx context.Context) (*entity.PriceTable, error) {
	query := `
		SELECT base, premium_surcharge, three_d_surcharge, reduced_base, updated_at
		FROM prices
		LIMIT 1
	`

	var p entity.PriceTable
	err := r.db.QueryRow(ctx, query).Scan(
		&p.Base,
		&p.PremiumSurcharge,
		&p.ThreeDSurcharge,
		&p.ReducedBase,
		&p.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find prices", zap.Error(err))
		return nil, fmt.Errorf("find prices: %w", err)
	}

	return &p, nil
}

func (r *priceRepository) Replace(ctx context.Context, prices *entity.PriceTable) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM prices`); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO prices (id, base, premium_surcharge, three_d_surcharge, reduced_base, updated_at)
			VALUES (1, $1, $2, $3, $4, $5)
		`, prices.Base, prices.PremiumSurcharge, prices.ThreeDSurcharge, prices.ReducedBase, prices.UpdatedAt)
		return err
	})

	if err != nil {
		r.log.Error("Failed to replace prices", zap.Error(err))
		return fmt.Errorf("replace prices: %w", err)
	}

	r.log.Info("Prices replaced",
		zap.String("base", prices.Base.String()),
		zap.String("premium_surcharge", prices.PremiumSurcharge.String()),
		zap.String("three_d_surcharge", prices.ThreeDSurcharge.String()),
		zap.String("reduced_base", prices.ReducedBase.String()),
	)
	return nil
}
