package entity

import "github.com/google/uuid"

type Seat struct {
	BaseSimple
	HallID   uuid.UUID `db:"hall_id"`
	Name     string    `db:"name"` // A1, A2, B1, etc.
	PosX     int       `db:"pos_x"`
	PosY     int       `db:"pos_y"`
	Category string    `db:"category"` // standard, premium, accessible
}
