package broker

// ReservationEvent is published when a reservation is confirmed or cancelled.
// It carries the full reservation so consumers never query the database.
type ReservationEvent struct {
	ReservationID string   `json:"reservation_id"`
	UserName      string   `json:"user_name"`
	MovieCode     string   `json:"movie_code"`
	MovieTitle    string   `json:"movie_title"`
	HallName      string   `json:"hall_name"`
	StartsAt      string   `json:"starts_at"`
	Seats         []string `json:"seats"`
	TotalCost     string   `json:"total_cost"`
	OccurredAt    string   `json:"occurred_at"`
}

// ScreeningEvent is published when a screening is added to a hall timeline.
type ScreeningEvent struct {
	MovieCode       string `json:"movie_code"`
	HallName        string `json:"hall_name"`
	StartsAt        string `json:"starts_at"`
	EndsAt          string `json:"ends_at"`
	DurationMinutes int    `json:"duration_minutes"`
	OccurredAt      string `json:"occurred_at"`
}
