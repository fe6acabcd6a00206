package response

import (
	"time"

	"cinema-manager/internal/engine"
	"cinema-manager/pkg/utils"
)

// ReservationResponse keeps the legacy ledger shape: seat_selection "A1-A2" and
// total_cost "23€".
type ReservationResponse struct {
	ID            string `json:"id"`
	UserName      string `json:"user_name"`
	MovieTitle    string `json:"movie_title"`
	MovieCode     string `json:"movie_code"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	HallName      string `json:"hall_name"`
	SeatSelection string `json:"seat_selection"`
	TotalCost     string `json:"total_cost"`
}

type QuoteLine struct {
	Seat     string `json:"seat"`
	Category string `json:"category"`
	Price    string `json:"price"`
}

type QuoteResponse struct {
	Lines     []QuoteLine `json:"lines"`
	Is3D      bool        `json:"is_3d"`
	Total     string      `json:"total"`
	TotalCost string      `json:"total_cost"`
}

type SeatMapResponse struct {
	MovieCode string               `json:"movie_code"`
	HallName  string               `json:"hall_name"`
	Date      string               `json:"date"`
	Time      string               `json:"time"`
	Free      int                  `json:"free"`
	Occupied  int                  `json:"occupied"`
	Seats     []SeatStatusResponse `json:"seats"`
}

func ReservationToResponse(r engine.Reservation, loc *time.Location) ReservationResponse {
	return ReservationResponse{
		ID:            r.ID.String(),
		UserName:      r.UserName,
		MovieTitle:    r.MovieTitle,
		MovieCode:     r.MovieCode,
		Date:          utils.FormatDate(r.StartsAt, loc),
		Time:          utils.FormatTime(r.StartsAt, loc),
		HallName:      r.HallName,
		SeatSelection: r.Selection(),
		TotalCost:     r.TotalCost,
	}
}

func SeatMapToResponse(key engine.ScreeningKey, seats []engine.SeatStatus, loc *time.Location) SeatMapResponse {
	out := SeatMapResponse{
		MovieCode: key.MovieCode,
		HallName:  key.HallName,
		Date:      utils.FormatDate(key.StartsAt, loc),
		Time:      utils.FormatTime(key.StartsAt, loc),
		Seats:     make([]SeatStatusResponse, len(seats)),
	}
	for i, s := range seats {
		out.Seats[i] = SeatStatusResponse{SeatResponse: SeatToResponse(s.Seat), Occupied: s.Occupied}
		if s.Occupied {
			out.Occupied++
		} else {
			out.Free++
		}
	}
	return out
}
