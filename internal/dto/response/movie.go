package response

import (
	"time"

	"cinema-manager/internal/data/entity"
)

type MovieResponse struct {
	Code            string    `json:"code"`
	Title           string    `json:"title"`
	DurationMinutes int       `json:"duration_minutes"`
	Is3D            bool      `json:"is_3d"`
	Status          string    `json:"status"`
	Genre           string    `json:"genre,omitempty"`
	Director        string    `json:"director,omitempty"`
	Cast            string    `json:"cast,omitempty"`
	Year            int       `json:"year,omitempty"`
	Plot            string    `json:"plot,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		Code:            movie.Code,
		Title:           movie.Title,
		DurationMinutes: movie.DurationMinutes,
		Is3D:            movie.Is3D,
		Status:          string(movie.Status),
		Genre:           movie.Genre,
		Director:        movie.Director,
		Cast:            movie.Cast,
		Year:            movie.Year,
		Plot:            movie.Plot,
		CreatedAt:       movie.CreatedAt,
	}
}
