package engine

import (
	"strings"
	"time"
)

// Gap is the mandatory turnaround between two screenings in the same hall.
const Gap = 30 * time.Minute

// Screening is a movie shown in a hall at a given start. DurationMinutes is the
// movie's running time, resolved by the caller.
type Screening struct {
	MovieCode       string
	HallName        string
	StartsAt        time.Time
	DurationMinutes int
}

func (s Screening) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// OccupiedWindow is the interval the hall is busy: runtime plus Gap.
func (s Screening) OccupiedWindow() (time.Time, time.Time) {
	return s.StartsAt, s.StartsAt.Add(s.Duration() + Gap)
}

// SameIdentity compares the full (movie, hall, start) tuple.
func (s Screening) SameIdentity(o Screening) bool {
	return strings.EqualFold(strings.TrimSpace(s.MovieCode), strings.TrimSpace(o.MovieCode)) &&
		SameHall(s.HallName, o.HallName) &&
		s.StartsAt.Equal(o.StartsAt)
}

// SameHall compares hall names ignoring case and surrounding blanks.
func SameHall(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// BlockWindow returns the interval in which candidate may not start because of
// existing. The left bound uses the candidate's runtime, the right bound the
// existing screening's runtime.
func BlockWindow(candidate, existing Screening) (time.Time, time.Time) {
	start := existing.StartsAt.Add(-(candidate.Duration() + Gap))
	end := existing.StartsAt.Add(existing.Duration() + Gap)
	return start, end
}

// Conflicts reports whether candidate starts strictly inside existing's block window.
func Conflicts(candidate, existing Screening) bool {
	if !SameHall(candidate.HallName, existing.HallName) {
		return false
	}
	start, end := BlockWindow(candidate, existing)
	return candidate.StartsAt.After(start) && candidate.StartsAt.Before(end)
}

// ValidateSchedule decides whether candidate can be placed on its hall's timeline.
func ValidateSchedule(candidate Screening, existing []Screening, now time.Time) error {
	if candidate.StartsAt.Before(now) {
		return ErrPastScheduling
	}
	for _, e := range existing {
		if Conflicts(candidate, e) {
			return &ConflictError{Existing: e}
		}
	}
	return nil
}

func ByHall(screenings []Screening, hall string) []Screening {
	var out []Screening
	for _, s := range screenings {
		if SameHall(s.HallName, hall) {
			out = append(out, s)
		}
	}
	return out
}

func ByMovie(screenings []Screening, movieCode string) []Screening {
	var out []Screening
	for _, s := range screenings {
		if strings.EqualFold(strings.TrimSpace(s.MovieCode), strings.TrimSpace(movieCode)) {
			out = append(out, s)
		}
	}
	return out
}

// HallBusy reports whether hall has a screening on today's date or later.
// Only the calendar date counts, so a screening earlier today still blocks.
func HallBusy(screenings []Screening, hall string, now time.Time) bool {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	for _, s := range ByHall(screenings, hall) {
		if !s.StartsAt.In(now.Location()).Before(today) {
			return true
		}
	}
	return false
}
