package request

type QuoteRequest struct {
	ScreeningRequest
	Seats []string `json:"seats" validate:"required,min=1,dive,required"`
}

type BookingRequest struct {
	UserName string `json:"user_name" validate:"required,max=100"`
	QuoteRequest
}

// ReservationMatchRequest names a reservation by its full content.
type ReservationMatchRequest struct {
	UserName      string `json:"user_name" validate:"required"`
	MovieTitle    string `json:"movie_title" validate:"required"`
	MovieCode     string `json:"movie_code" validate:"required"`
	Date          string `json:"date" validate:"required,datetime=02/01/2006"`
	Time          string `json:"time" validate:"required,datetime=15:04"`
	HallName      string `json:"hall_name" validate:"required"`
	SeatSelection string `json:"seat_selection" validate:"required"`
	TotalCost     string `json:"total_cost" validate:"required"`
}
