package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/engine"
	"cinema-manager/internal/usecase"
	"cinema-manager/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Hall     *HallHandler
	Movie    *MovieHandler
	Schedule *ScheduleHandler
	Price    *PriceHandler
	Booking  *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Hall:     NewHallHandler(service.Hall, log),
		Movie:    NewMovieHandler(service.Movie, log),
		Schedule: NewScheduleHandler(service.Schedule, log),
		Price:    NewPriceHandler(service.Price, log),
		Booking:  NewBookingHandler(service.Booking, log),
	}
}

// decode reads a JSON body into dst and answers 400 when it cannot.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// pageParams reads ?page=&per_page=. Lists are returned whole when page is absent.
func pageParams(r *http.Request) (request.PaginatedRequest, bool) {
	query := r.URL.Query()
	if query.Get("page") == "" {
		return request.PaginatedRequest{}, false
	}
	return request.PaginatedRequest{
		Page:    parseInt(query.Get("page"), 1),
		PerPage: parseInt(query.Get("per_page"), 10),
	}, true
}

func parseInt(value string, defaultValue int) int {
	result, err := strconv.Atoi(value)
	if err != nil || result < 1 {
		return defaultValue
	}
	return result
}

// handleServiceError maps service errors to status codes.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validation *usecase.ValidationError
	switch {
	case errors.As(err, &validation):
		log.Warn(operation+" validation failed", zap.Error(err), zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Validation failed", validation.Fields)

	case errors.Is(err, engine.ErrStorage):
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")

	case errors.Is(err, engine.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err), zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, engine.ErrSchedulingConflict),
		errors.Is(err, engine.ErrHallInUse),
		errors.Is(err, engine.ErrSeatTaken),
		errors.Is(err, engine.ErrAlreadyExists),
		errors.Is(err, engine.ErrPricesNotConfigured),
		errors.Is(err, usecase.ErrMovieUnavailable),
		errors.Is(err, usecase.ErrScreeningStarted):
		log.Warn(operation+" failed - conflict", zap.Error(err), zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, engine.ErrPastScheduling),
		errors.Is(err, engine.ErrUnknownSeat),
		errors.Is(err, engine.ErrDuplicateSeat),
		errors.Is(err, engine.ErrInvalidCategory),
		errors.Is(err, engine.ErrInvalidSeatName),
		errors.Is(err, usecase.ErrValidation):
		log.Warn("Invalid input for "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
