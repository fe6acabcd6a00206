package wire

import (
	"cinema-manager/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/screenings/seats?movie=&hall=&date=&time=
	r.Get("/api/screenings/seats", bookingHandler.GetSeatMap)

	r.Post("/api/bookings/quote", bookingHandler.Quote)
	r.Post("/api/bookings", bookingHandler.CreateBooking)

	r.Delete("/api/reservations/{id}", bookingHandler.CancelReservation)
	// POST /api/reservations/cancel - cancel by full reservation content
	r.Post("/api/reservations/cancel", bookingHandler.CancelMatching)

	r.Get("/api/users/{user}/reservations", bookingHandler.GetUserReservations)

	// ==================== ADMIN ROUTES ====================
	r.Delete("/api/admin/users/{user}/reservations", bookingHandler.RemoveUserReservations)
}
