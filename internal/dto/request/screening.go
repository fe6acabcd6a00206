package request

// ScreeningRequest identifies a screening with boundary formats dd/MM/yyyy and HH:mm.
type ScreeningRequest struct {
	MovieCode string `json:"movie_code" validate:"required"`
	HallName  string `json:"hall_name" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=02/01/2006"`
	Time      string `json:"time" validate:"required,datetime=15:04"`
}
