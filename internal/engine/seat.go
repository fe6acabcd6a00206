package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Category is the permanent pricing class of a seat.
type Category string

const (
	CategoryStandard   Category = "standard"
	CategoryPremium    Category = "premium"
	CategoryAccessible Category = "accessible"
)

// Categories lists every valid seat category.
var Categories = []Category{CategoryStandard, CategoryPremium, CategoryAccessible}

// ParseCategory accepts the canonical names and the legacy NORMALE/VIP/DISABILE labels.
// "occupied" (OCCUPATO) is a per-screening status, never a category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "normale":
		return CategoryStandard, nil
	case "premium", "vip":
		return CategoryPremium, nil
	case "accessible", "disabile":
		return CategoryAccessible, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryStandard, CategoryPremium, CategoryAccessible:
		return true
	}
	return false
}

// Seat is a named place in a hall. X and Y only matter to the map editor.
type Seat struct {
	Name     string
	X        int
	Y        int
	Category Category
}

// Inventory is the seat set of one hall, indexed by name.
type Inventory struct {
	hall  string
	seats []Seat
	index map[string]int
}

// NewInventory indexes seats by name and rejects duplicates within the hall.
// Names may not contain SelectionDelimiter, or a stored selection could not be
// split back into the seats it holds.
func NewInventory(hall string, seats []Seat) (*Inventory, error) {
	inv := &Inventory{
		hall:  hall,
		seats: make([]Seat, 0, len(seats)),
		index: make(map[string]int, len(seats)),
	}
	for _, s := range seats {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return nil, fmt.Errorf("hall %s: %w: empty name", hall, ErrInvalidSeatName)
		}
		if strings.Contains(name, SelectionDelimiter) {
			return nil, fmt.Errorf("hall %s: %w %q: must not contain %q", hall, ErrInvalidSeatName, name, SelectionDelimiter)
		}
		if !s.Category.Valid() {
			return nil, fmt.Errorf("hall %s seat %s: %w: %q", hall, name, ErrInvalidCategory, s.Category)
		}
		if _, ok := inv.index[name]; ok {
			return nil, fmt.Errorf("hall %s: %w %s", hall, ErrDuplicateSeat, name)
		}
		s.Name = name
		inv.index[name] = len(inv.seats)
		inv.seats = append(inv.seats, s)
	}
	return inv, nil
}

func (inv *Inventory) Hall() string { return inv.hall }

// SeatsOf returns a copy of the hall's seats.
func (inv *Inventory) SeatsOf() []Seat {
	out := make([]Seat, len(inv.seats))
	copy(out, inv.seats)
	return out
}

func (inv *Inventory) Len() int { return len(inv.seats) }

func (inv *Inventory) Lookup(name string) (Seat, bool) {
	i, ok := inv.index[strings.TrimSpace(name)]
	if !ok {
		return Seat{}, false
	}
	return inv.seats[i], true
}

func (inv *Inventory) CountByCategory(c Category) int {
	n := 0
	for _, s := range inv.seats {
		if s.Category == c {
			n++
		}
	}
	return n
}

// Counts returns the number of seats per category, zero entries included.
func (inv *Inventory) Counts() map[Category]int {
	out := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		out[c] = inv.CountByCategory(c)
	}
	return out
}

// SeatStatus is a seat as seen for one screening.
type SeatStatus struct {
	Seat
	Occupied bool
}

// SeatMap marks each inventory seat as occupied or free, sorted by name.
func SeatMap(inv *Inventory, occupied map[string]struct{}) []SeatStatus {
	out := make([]SeatStatus, 0, inv.Len())
	for _, s := range inv.seats {
		_, taken := occupied[s.Name]
		out = append(out, SeatStatus{Seat: s, Occupied: taken})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
