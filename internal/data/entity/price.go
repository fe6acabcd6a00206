package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type PriceTable struct {
	Base             decimal.Decimal `db:"base"`
	PremiumSurcharge decimal.Decimal `db:"premium_surcharge"`
	ThreeDSurcharge  decimal.Decimal `db:"three_d_surcharge"`
	ReducedBase      decimal.Decimal `db:"reduced_base"`
	UpdatedAt        time.Time       `db:"updated_at"`
}
