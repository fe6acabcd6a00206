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

type ScheduleHandler struct {
	service usecase.ScheduleService
	log     *zap.Logger
}

func NewScheduleHandler(service usecase.ScheduleService, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		log:     log.With(zap.String("handler", "schedule")),
	}
}

// GetScreenings handles GET /api/screenings?hall=&movie=&page=&per_page=
func (h *ScheduleHandler) GetScreenings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	screenings, err := h.service.GetScreenings(r.Context(), query.Get("hall"), query.Get("movie"))
	if err != nil {
		handleServiceError(w, h.log, err, "get screenings")
		return
	}
	if page, ok := pageParams(r); ok {
		utils.ResponseSuccess(w, "success", response.Paginate(screenings, page))
		return
	}
	utils.ResponseSuccess(w, "success", screenings)
}

// GetTimeline handles GET /api/halls/{name}/timeline?date=dd/MM/yyyy
func (h *ScheduleHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	timeline, err := h.service.GetTimeline(r.Context(), chi.URLParam(r, "name"), r.URL.Query().Get("date"))
	if err != nil {
		handleServiceError(w, h.log, err, "get hall timeline")
		return
	}
	utils.ResponseSuccess(w, "success", timeline)
}

// ProposeScreening handles POST /api/admin/screenings
func (h *ScheduleHandler) ProposeScreening(w http.ResponseWriter, r *http.Request) {
	var req request.ScreeningRequest
	if !decode(w, r, &req) {
		return
	}

	screening, err := h.service.ProposeScreening(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "propose screening")
		return
	}
	utils.ResponseCreated(w, "Screening scheduled successfully", screening)
}

// DeleteScreening handles DELETE /api/admin/screenings
func (h *ScheduleHandler) DeleteScreening(w http.ResponseWriter, r *http.Request) {
	var req request.ScreeningRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.service.DeleteScreening(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "delete screening")
		return
	}
	utils.ResponseSuccess(w, "Screening deleted successfully", nil)
}
