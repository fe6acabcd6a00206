package adaptor

import (
	"net/http"

	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/usecase"
	"cinema-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type HallHandler struct {
	service usecase.HallService
	log     *zap.Logger
}

func NewHallHandler(service usecase.HallService, log *zap.Logger) *HallHandler {
	return &HallHandler{
		service: service,
		log:     log.With(zap.String("handler", "hall")),
	}
}

// GetHalls handles GET /api/halls
func (h *HallHandler) GetHalls(w http.ResponseWriter, r *http.Request) {
	halls, err := h.service.GetHalls(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get halls")
		return
	}
	utils.ResponseSuccess(w, "success", halls)
}

// GetSeats handles GET /api/halls/{name}/seats
func (h *HallHandler) GetSeats(w http.ResponseWriter, r *http.Request) {
	seats, err := h.service.GetSeats(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		handleServiceError(w, h.log, err, "get hall seats")
		return
	}
	utils.ResponseSuccess(w, "success", seats)
}

// CreateHall handles POST /api/admin/halls
func (h *HallHandler) CreateHall(w http.ResponseWriter, r *http.Request) {
	var req request.HallRequest
	if !decode(w, r, &req) {
		return
	}

	hall, err := h.service.CreateHall(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create hall")
		return
	}
	utils.ResponseCreated(w, "Hall created successfully", hall)
}

// ReplaceSeats handles PUT /api/admin/halls/{name}/seats
func (h *HallHandler) ReplaceSeats(w http.ResponseWriter, r *http.Request) {
	var req request.HallSeatsRequest
	if !decode(w, r, &req) {
		return
	}

	hall, err := h.service.ReplaceSeats(r.Context(), chi.URLParam(r, "name"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "replace hall seats")
		return
	}
	utils.ResponseSuccess(w, "Seats replaced successfully", hall)
}

// RenameHall handles PUT /api/admin/halls/{name}
func (h *HallHandler) RenameHall(w http.ResponseWriter, r *http.Request) {
	var req request.HallRenameRequest
	if !decode(w, r, &req) {
		return
	}

	hall, err := h.service.RenameHall(r.Context(), chi.URLParam(r, "name"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "rename hall")
		return
	}
	utils.ResponseSuccess(w, "Hall renamed successfully", hall)
}

// DeleteHall handles DELETE /api/admin/halls/{name}
func (h *HallHandler) DeleteHall(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteHall(r.Context(), chi.URLParam(r, "name")); err != nil {
		handleServiceError(w, h.log, err, "delete hall")
		return
	}
	utils.ResponseSuccess(w, "Hall deleted successfully", nil)
}
