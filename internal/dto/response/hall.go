package response

import "cinema-manager/internal/engine"

type HallResponse struct {
	Name       string `json:"name"`
	Standard   int    `json:"standard_seats"`
	Premium    int    `json:"premium_seats"`
	Accessible int    `json:"accessible_seats"`
	Total      int    `json:"total_seats"`
}

type SeatResponse struct {
	Name     string `json:"name"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Category string `json:"category"`
}

type SeatStatusResponse struct {
	SeatResponse
	Occupied bool `json:"occupied"`
}

type HallSeatsResponse struct {
	Name  string         `json:"name"`
	Seats []SeatResponse `json:"seats"`
}

func SeatToResponse(s engine.Seat) SeatResponse {
	return SeatResponse{Name: s.Name, X: s.X, Y: s.Y, Category: string(s.Category)}
}

func InventoryToResponse(inv *engine.Inventory) HallSeatsResponse {
	seats := inv.SeatsOf()
	out := HallSeatsResponse{Name: inv.Hall(), Seats: make([]SeatResponse, len(seats))}
	for i, s := range seats {
		out.Seats[i] = SeatToResponse(s)
	}
	return out
}

func CountsToResponse(name string, counts map[engine.Category]int) HallResponse {
	h := HallResponse{
		Name:       name,
		Standard:   counts[engine.CategoryStandard],
		Premium:    counts[engine.CategoryPremium],
		Accessible: counts[engine.CategoryAccessible],
	}
	h.Total = h.Standard + h.Premium + h.Accessible
	return h
}
