package wire

import (
	"cinema-manager/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireSchedule(r chi.Router, scheduleHandler *adaptor.ScheduleHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/screenings", scheduleHandler.GetScreenings)
	r.Get("/api/halls/{name}/timeline", scheduleHandler.GetTimeline)

	// ==================== ADMIN ROUTES ====================
	r.Post("/api/admin/screenings", scheduleHandler.ProposeScreening)
	// the screening to delete is named in the body
	r.Delete("/api/admin/screenings", scheduleHandler.DeleteScreening)
}
