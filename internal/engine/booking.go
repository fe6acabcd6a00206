package engine

import (
	"fmt"
	"strings"
	"time"
)

// SelectionDelimiter separates seat names in a stored seat selection.
const SelectionDelimiter = "-"

// ScreeningKey identifies one screening instance for booking purposes.
type ScreeningKey struct {
	MovieCode string
	HallName  string
	StartsAt  time.Time
}

func (k ScreeningKey) Matches(r Reservation) bool {
	return strings.EqualFold(strings.TrimSpace(k.MovieCode), strings.TrimSpace(r.MovieCode)) &&
		SameHall(k.HallName, r.HallName) &&
		k.StartsAt.Equal(r.StartsAt)
}

// LockKey is the arbitration key used to serialize bookings of this screening.
func (k ScreeningKey) LockKey() string {
	return fmt.Sprintf("booking:%s|%s|%d",
		strings.ToLower(strings.TrimSpace(k.MovieCode)),
		strings.ToLower(strings.TrimSpace(k.HallName)),
		k.StartsAt.Unix())
}

// SplitSelection splits "A1-A2-B4" into seat names, dropping blanks.
func SplitSelection(selection string) []string {
	var out []string
	for _, part := range strings.Split(selection, SelectionDelimiter) {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func JoinSelection(names []string) string {
	return strings.Join(names, SelectionDelimiter)
}

// OccupiedSeats is the union of the seat names of every reservation matching key.
func OccupiedSeats(reservations []Reservation, key ScreeningKey) map[string]struct{} {
	occupied := make(map[string]struct{})
	for _, r := range reservations {
		if !key.Matches(r) {
			continue
		}
		for _, name := range r.Seats {
			if name = strings.TrimSpace(name); name != "" {
				occupied[name] = struct{}{}
			}
		}
	}
	return occupied
}

// ResolveSelection maps seat names to inventory seats, rejecting unknown and repeated names.
func ResolveSelection(inv *Inventory, names []string) ([]Seat, error) {
	seats := make([]Seat, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		seat, ok := inv.Lookup(name)
		if !ok {
			return nil, &UnknownSeatError{Hall: inv.Hall(), Seat: strings.TrimSpace(name)}
		}
		if _, dup := seen[seat.Name]; dup {
			return nil, fmt.Errorf("%w %s in selection", ErrDuplicateSeat, seat.Name)
		}
		seen[seat.Name] = struct{}{}
		seats = append(seats, seat)
	}
	return seats, nil
}

// CheckAvailability fails on the first selected seat that is already occupied.
func CheckAvailability(occupied map[string]struct{}, seats []Seat) error {
	for _, s := range seats {
		if _, taken := occupied[s.Name]; taken {
			return &SeatTakenError{Seat: s.Name}
		}
	}
	return nil
}
