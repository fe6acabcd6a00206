package engine

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Reservation is a confirmed booking. It is never modified after creation.
type Reservation struct {
	ID         uuid.UUID
	UserName   string
	MovieTitle string
	MovieCode  string
	StartsAt   time.Time
	HallName   string
	Seats      []string
	TotalCost  string
	CreatedAt  time.Time
}

func (r Reservation) Key() ScreeningKey {
	return ScreeningKey{MovieCode: r.MovieCode, HallName: r.HallName, StartsAt: r.StartsAt}
}

func (r Reservation) Selection() string { return JoinSelection(r.Seats) }

// SameContent compares the full value tuple, ignoring ID and CreatedAt.
func SameContent(a, b Reservation) bool {
	return a.UserName == b.UserName &&
		a.MovieTitle == b.MovieTitle &&
		a.MovieCode == b.MovieCode &&
		a.StartsAt.Equal(b.StartsAt) &&
		a.HallName == b.HallName &&
		a.Selection() == b.Selection() &&
		strings.TrimSpace(a.TotalCost) == strings.TrimSpace(b.TotalCost)
}
