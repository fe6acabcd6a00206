package adaptor

import (
	"net/http"

	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/dto/response"
	"cinema-manager/internal/usecase"
	"cinema-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// GetSeatMap handles GET /api/screenings/seats?movie=&hall=&date=&time=
func (h *BookingHandler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ScreeningRequest{
		MovieCode: query.Get("movie"),
		HallName:  query.Get("hall"),
		Date:      query.Get("date"),
		Time:      query.Get("time"),
	}

	seats, err := h.service.GetSeatMap(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get seat map")
		return
	}
	utils.ResponseSuccess(w, "success", seats)
}

// Quote handles POST /api/bookings/quote
func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req request.QuoteRequest
	if !decode(w, r, &req) {
		return
	}

	quote, err := h.service.Quote(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "quote booking")
		return
	}
	utils.ResponseSuccess(w, "success", quote)
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.BookingRequest
	if !decode(w, r, &req) {
		return
	}

	reservation, err := h.service.Book(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}
	utils.ResponseCreated(w, "Booking confirmed", reservation)
}

// CancelReservation handles DELETE /api/reservations/{id}
func (h *BookingHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CancelReservation(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "cancel reservation")
		return
	}
	utils.ResponseSuccess(w, "Reservation cancelled successfully", nil)
}

// CancelMatching handles POST /api/reservations/cancel, where the body names
// the reservation by its full content.
func (h *BookingHandler) CancelMatching(w http.ResponseWriter, r *http.Request) {
	var req request.ReservationMatchRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.service.CancelMatching(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "cancel matching reservation")
		return
	}
	utils.ResponseSuccess(w, "Reservation cancelled successfully", nil)
}

// GetUserReservations handles GET /api/users/{user}/reservations?when=upcoming|past
func (h *BookingHandler) GetUserReservations(w http.ResponseWriter, r *http.Request) {
	when := r.URL.Query().Get("when")
	reservations, err := h.service.GetUserReservations(r.Context(), chi.URLParam(r, "user"), when)
	if err != nil {
		handleServiceError(w, h.log, err, "get user reservations")
		return
	}
	if page, ok := pageParams(r); ok {
		utils.ResponseSuccess(w, "success", response.Paginate(reservations, page))
		return
	}
	utils.ResponseSuccess(w, "success", reservations)
}

// RemoveUserReservations handles DELETE /api/admin/users/{user}/reservations
func (h *BookingHandler) RemoveUserReservations(w http.ResponseWriter, r *http.Request) {
	removed, err := h.service.RemoveUserReservations(r.Context(), chi.URLParam(r, "user"))
	if err != nil {
		handleServiceError(w, h.log, err, "remove user reservations")
		return
	}
	utils.ResponseSuccess(w, "User reservations removed", map[string]int64{"removed": removed})
}
