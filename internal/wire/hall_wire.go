package wire

import (
	"cinema-manager/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireHall(r chi.Router, hallHandler *adaptor.HallHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/halls", hallHandler.GetHalls)
	r.Get("/api/halls/{name}/seats", hallHandler.GetSeats)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/halls", func(r chi.Router) {
		r.Post("/", hallHandler.CreateHall)              // POST /api/admin/halls
		r.Put("/{name}", hallHandler.RenameHall)         // PUT /api/admin/halls/{name}
		r.Put("/{name}/seats", hallHandler.ReplaceSeats) // PUT /api/admin/halls/{name}/seats
		r.Delete("/{name}", hallHandler.DeleteHall)      // DELETE /api/admin/halls/{name}
	})
}
