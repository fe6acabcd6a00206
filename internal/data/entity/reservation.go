package entity

import "time"

// Reservation is one ledger row. SeatSelection holds seat names joined by "-".
type Reservation struct {
	BaseSimple
	UserName      string    `db:"user_name"`
	MovieTitle    string    `db:"movie_title"`
	MovieCode     string    `db:"movie_code"`
	HallName      string    `db:"hall_name"`
	StartsAt      time.Time `db:"starts_at"`
	SeatSelection string    `db:"seat_selection"`
	TotalCost     string    `db:"total_cost"`
}
