package wire

import (
	"cinema-manager/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/movies?status=available
	r.Get("/api/movies", movieHandler.GetMovies)
	r.Get("/api/movies/{code}", movieHandler.GetMovie)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/movies", func(r chi.Router) {
		r.Post("/", movieHandler.CreateMovie)         // POST /api/admin/movies
		r.Put("/{code}", movieHandler.UpdateMovie)    // PUT /api/admin/movies/{code}
		r.Delete("/{code}", movieHandler.DeleteMovie) // DELETE /api/admin/movies/{code}
	})
}
