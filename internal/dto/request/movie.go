package request

type MovieRequest struct {
	Code            string `json:"code" validate:"required,min=1,max=20"`
	Title           string `json:"title" validate:"required,min=1,max=200"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=1,max=999"`
	Is3D            bool   `json:"is_3d"`
	Status          string `json:"status,omitempty" validate:"omitempty,oneof=available not_available"`
	Genre           string `json:"genre,omitempty" validate:"omitempty,max=100"`
	Director        string `json:"director,omitempty" validate:"omitempty,max=200"`
	Cast            string `json:"cast,omitempty" validate:"omitempty,max=1000"`
	Year            int    `json:"year,omitempty" validate:"omitempty,min=1888,max=2100"`
	Plot            string `json:"plot,omitempty" validate:"omitempty,max=4000"`
}

type MovieUpdateRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=999"`
	Is3D            *bool   `json:"is_3d,omitempty"`
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=available not_available"`
	Genre           *string `json:"genre,omitempty" validate:"omitempty,max=100"`
	Director        *string `json:"director,omitempty" validate:"omitempty,max=200"`
	Cast            *string `json:"cast,omitempty" validate:"omitempty,max=1000"`
	Year            *int    `json:"year,omitempty" validate:"omitempty,min=1888,max=2100"`
	Plot            *string `json:"plot,omitempty" validate:"omitempty,max=4000"`
}
