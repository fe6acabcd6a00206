package entity

import "time"

// Screening is a scheduled showing. DurationMinutes is read from the movie.
type Screening struct {
	BaseSimple
	MovieCode       string    `db:"movie_code"`
	HallName        string    `db:"hall_name"`
	StartsAt        time.Time `db:"starts_at"`
	DurationMinutes int       `db:"duration_minutes"`
}
