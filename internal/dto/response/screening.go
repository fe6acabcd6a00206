package response

import (
	"time"

	"cinema-manager/internal/engine"
	"cinema-manager/pkg/utils"
)

type ScreeningResponse struct {
	MovieCode       string `json:"movie_code"`
	HallName        string `json:"hall_name"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration_minutes"`
}

// SlotResponse is the occupied window of one screening, turnaround included.
type SlotResponse struct {
	MovieCode string `json:"movie_code"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

type TimelineResponse struct {
	HallName string         `json:"hall_name"`
	Date     string         `json:"date"`
	Slots    []SlotResponse `json:"slots"`
}

func ScreeningToResponse(s engine.Screening, loc *time.Location) ScreeningResponse {
	at := s.StartsAt.In(loc)
	return ScreeningResponse{
		MovieCode:       s.MovieCode,
		HallName:        s.HallName,
		Date:            at.Format(utils.DateLayout),
		Time:            at.Format(utils.TimeLayout),
		DurationMinutes: s.DurationMinutes,
	}
}

// SlotToResponse prints the end as HH:mm, or dd/MM HH:mm when it falls on a later day.
func SlotToResponse(s engine.Screening, loc *time.Location) SlotResponse {
	start, end := s.OccupiedWindow()
	start, end = start.In(loc), end.In(loc)
	endLayout := utils.TimeLayout
	if end.YearDay() != start.YearDay() || end.Year() != start.Year() {
		endLayout = "02/01 " + utils.TimeLayout
	}
	return SlotResponse{
		MovieCode: s.MovieCode,
		Start:     start.Format(utils.TimeLayout),
		End:       end.Format(endLayout),
	}
}
