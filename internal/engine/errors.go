package engine

import (
	"errors"
	"fmt"
)

var (
	ErrPastScheduling      = errors.New("cannot schedule a screening in the past")
	ErrSchedulingConflict  = errors.New("scheduling conflict")
	ErrUnknownSeat         = errors.New("unknown seat")
	ErrStorage             = errors.New("storage failure")
	ErrSeatTaken           = errors.New("seat already booked")
	ErrDuplicateSeat       = errors.New("duplicate seat")
	ErrInvalidCategory     = errors.New("invalid seat category")
	ErrInvalidSeatName     = errors.New("invalid seat name")
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrHallInUse           = errors.New("hall has upcoming screenings")
	ErrPricesNotConfigured = errors.New("prices not configured")
)

// ConflictError reports the existing screening a candidate collides with.
type ConflictError struct {
	Existing Screening
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: hall %s is busy with movie %s at %s",
		ErrSchedulingConflict, e.Existing.HallName, e.Existing.MovieCode,
		e.Existing.StartsAt.Format("02/01/2006 15:04"))
}

func (e *ConflictError) Is(target error) bool { return target == ErrSchedulingConflict }

// UnknownSeatError names a selected seat missing from the hall inventory.
type UnknownSeatError struct {
	Hall string
	Seat string
}

func (e *UnknownSeatError) Error() string {
	return fmt.Sprintf("%s %s in hall %s", ErrUnknownSeat, e.Seat, e.Hall)
}

func (e *UnknownSeatError) Is(target error) bool { return target == ErrUnknownSeat }

// SeatTakenError names a selected seat already held by another reservation.
type SeatTakenError struct {
	Seat string
}

func (e *SeatTakenError) Error() string {
	return fmt.Sprintf("seat %s is already booked", e.Seat)
}

func (e *SeatTakenError) Is(target error) bool { return target == ErrSeatTaken }

// Storage wraps a collaborator failure so callers can match it with ErrStorage.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
