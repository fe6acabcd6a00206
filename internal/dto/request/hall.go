package request

type SeatRequest struct {
	Name     string `json:"name" validate:"required,max=10,excludesall=-"`
	X        int    `json:"x" validate:"min=0"`
	Y        int    `json:"y" validate:"min=0"`
	Category string `json:"category" validate:"required"`
}

type HallRequest struct {
	Name  string        `json:"name" validate:"required,max=50"`
	Seats []SeatRequest `json:"seats" validate:"dive"`
}

type HallSeatsRequest struct {
	Seats []SeatRequest `json:"seats" validate:"dive"`
}

type HallRenameRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}
