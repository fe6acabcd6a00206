package usecase

import (
	"strings"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/engine"

	"github.com/shopspring/decimal"
)

func toScreening(e *entity.Screening) engine.Screening {
	return engine.Screening{
		MovieCode:       e.MovieCode,
		HallName:        e.HallName,
		StartsAt:        e.StartsAt,
		DurationMinutes: e.DurationMinutes,
	}
}

func toScreenings(rows []*entity.Screening) []engine.Screening {
	out := make([]engine.Screening, len(rows))
	for i, e := range rows {
		out[i] = toScreening(e)
	}
	return out
}

func toReservation(e *entity.Reservation) engine.Reservation {
	return engine.Reservation{
		ID:         e.ID,
		UserName:   e.UserName,
		MovieTitle: e.MovieTitle,
		MovieCode:  e.MovieCode,
		StartsAt:   e.StartsAt,
		HallName:   e.HallName,
		Seats:      engine.SplitSelection(e.SeatSelection),
		TotalCost:  e.TotalCost,
		CreatedAt:  e.CreatedAt,
	}
}

func toReservations(rows []*entity.Reservation) []engine.Reservation {
	out := make([]engine.Reservation, len(rows))
	for i, e := range rows {
		out[i] = toReservation(e)
	}
	return out
}

func fromReservation(r engine.Reservation) *entity.Reservation {
	return &entity.Reservation{
		BaseSimple: entity.BaseSimple{
			ID:        r.ID,
			CreatedAt: r.CreatedAt,
		},
		UserName:      r.UserName,
		MovieTitle:    r.MovieTitle,
		MovieCode:     r.MovieCode,
		HallName:      r.HallName,
		StartsAt:      r.StartsAt,
		SeatSelection: r.Selection(),
		TotalCost:     r.TotalCost,
	}
}

// toInventory rebuilds the engine view of a hall. Stored categories are
// re-parsed so rows written with legacy labels still load.
func toInventory(hall string, rows []*entity.Seat) (*engine.Inventory, error) {
	seats := make([]engine.Seat, 0, len(rows))
	for _, r := range rows {
		c, err := engine.ParseCategory(r.Category)
		if err != nil {
			return nil, err
		}
		seats = append(seats, engine.Seat{Name: r.Name, X: r.PosX, Y: r.PosY, Category: c})
	}
	return engine.NewInventory(hall, seats)
}

func toPrices(e *entity.PriceTable) engine.PriceTable {
	return engine.PriceTable{
		Base:             e.Base,
		PremiumSurcharge: e.PremiumSurcharge,
		ThreeDSurcharge:  e.ThreeDSurcharge,
		ReducedBase:      e.ReducedBase,
	}
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, invalid("%s: %q is not a decimal number", field, s)
	}
	return d, nil
}
