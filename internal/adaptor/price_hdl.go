package adaptor

import (
	"net/http"

	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/usecase"
	"cinema-manager/pkg/utils"

	"go.uber.org/zap"
)

type PriceHandler struct {
	service usecase.PriceService
	log     *zap.Logger
}

func NewPriceHandler(service usecase.PriceService, log *zap.Logger) *PriceHandler {
	return &PriceHandler{
		service: service,
		log:     log.With(zap.String("handler", "price")),
	}
}

// GetPrices handles GET /api/prices. data is null until prices are configured.
func (h *PriceHandler) GetPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.service.GetPrices(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get prices")
		return
	}
	if prices == nil {
		utils.ResponseSuccess(w, "Prices not configured", nil)
		return
	}
	utils.ResponseSuccess(w, "success", prices)
}

// ReplacePrices handles PUT /api/admin/prices
func (h *PriceHandler) ReplacePrices(w http.ResponseWriter, r *http.Request) {
	var req request.PriceRequest
	if !decode(w, r, &req) {
		return
	}

	prices, err := h.service.ReplacePrices(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "replace prices")
		return
	}
	utils.ResponseSuccess(w, "Prices updated successfully", prices)
}
