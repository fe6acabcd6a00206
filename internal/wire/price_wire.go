package wire

import (
	"cinema-manager/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePrice(r chi.Router, priceHandler *adaptor.PriceHandler) {
	r.Get("/api/prices", priceHandler.GetPrices)
	r.Put("/api/admin/prices", priceHandler.ReplacePrices)
}
