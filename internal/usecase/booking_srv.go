package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/dto/response"
	"cinema-manager/internal/engine"
	"cinema-manager/pkg/broker"
	"cinema-manager/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Values accepted by GetUserReservations to split the list at the current time.
const (
	WhenUpcoming = "upcoming"
	WhenPast     = "past"
)

type BookingService interface {
	GetSeatMap(ctx context.Context, req *request.ScreeningRequest) (*response.SeatMapResponse, error)
	Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error)

	// Book confirms a reservation. Seats of one screening are checked and
	// written under that screening's lock, so two bookings never share a seat.
	Book(ctx context.Context, req *request.BookingRequest) (*response.ReservationResponse, error)
	CancelReservation(ctx context.Context, id string) error
	// CancelMatching removes one reservation equal to req on every field.
	CancelMatching(ctx context.Context, req *request.ReservationMatchRequest) error
	// GetUserReservations lists a user's reservations. when is "" for all,
	// "upcoming" for screenings not yet started, or "past".
	GetUserReservations(ctx context.Context, userName, when string) ([]response.ReservationResponse, error)
	RemoveUserReservations(ctx context.Context, userName string) (int64, error)
}

type bookingService struct {
	repo *repository.Repository
	deps Deps
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, deps Deps, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		deps: deps.withDefaults(),
		log:  log.With(zap.String("service", "booking")),
	}
}

// screening is everything a booking needs to know about one showing.
type screening struct {
	key   engine.ScreeningKey
	movie *entity.Movie
	inv   *engine.Inventory
}

func (s *bookingService) loadScreening(ctx context.Context, req *request.ScreeningRequest) (*screening, error) {
	startsAt, err := utils.ParseDateTime(req.Date, req.Time, s.deps.Location)
	if err != nil {
		return nil, invalid("%v", err)
	}

	movie, err := s.repo.Movie.FindByCode(ctx, req.MovieCode)
	if err != nil {
		return nil, engine.Storage("get movie "+req.MovieCode, err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", req.MovieCode, engine.ErrNotFound)
	}

	hall, err := s.repo.Hall.FindByName(ctx, req.HallName)
	if err != nil {
		return nil, engine.Storage("get hall "+req.HallName, err)
	}
	if hall == nil {
		return nil, fmt.Errorf("hall %s: %w", req.HallName, engine.ErrNotFound)
	}

	key := engine.ScreeningKey{MovieCode: movie.Code, HallName: hall.Name, StartsAt: startsAt}

	rows, err := s.repo.Schedule.FindByHall(ctx, hall.Name)
	if err != nil {
		return nil, engine.Storage("get screenings of hall "+hall.Name, err)
	}
	want := engine.Screening{MovieCode: key.MovieCode, HallName: key.HallName, StartsAt: key.StartsAt}
	found := false
	for _, sc := range toScreenings(rows) {
		if sc.SameIdentity(want) {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("screening of %s in %s at %s %s: %w",
			movie.Code, hall.Name, req.Date, req.Time, engine.ErrNotFound)
	}

	seats, err := s.repo.Hall.FindSeats(ctx, hall.ID)
	if err != nil {
		return nil, engine.Storage("get seats of hall "+hall.Name, err)
	}
	inv, err := toInventory(hall.Name, seats)
	if err != nil {
		return nil, fmt.Errorf("load seats of hall %s: %w", hall.Name, err)
	}

	return &screening{key: key, movie: movie, inv: inv}, nil
}

func (s *bookingService) occupied(ctx context.Context, key engine.ScreeningKey) (map[string]struct{}, error) {
	rows, err := s.repo.Reservation.FindByScreening(ctx, key.MovieCode, key.HallName, key.StartsAt)
	if err != nil {
		return nil, engine.Storage("get reservations of screening", err)
	}
	return engine.OccupiedSeats(toReservations(rows), key), nil
}

func (s *bookingService) prices(ctx context.Context) (engine.PriceTable, error) {
	row, err := s.repo.Price.Find(ctx)
	if err != nil {
		return engine.PriceTable{}, engine.Storage("get prices", err)
	}
	if row == nil {
		return engine.PriceTable{}, engine.ErrPricesNotConfigured
	}
	return toPrices(row), nil
}

func (s *bookingService) GetSeatMap(ctx context.Context, req *request.ScreeningRequest) (*response.SeatMapResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	sc, err := s.loadScreening(ctx, req)
	if err != nil {
		return nil, err
	}
	occupied, err := s.occupied(ctx, sc.key)
	if err != nil {
		return nil, err
	}

	resp := response.SeatMapToResponse(sc.key, engine.SeatMap(sc.inv, occupied), s.deps.Location)
	return &resp, nil
}

func (s *bookingService) Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	sc, err := s.loadScreening(ctx, &req.ScreeningRequest)
	if err != nil {
		return nil, err
	}
	seats, err := engine.ResolveSelection(sc.inv, req.Seats)
	if err != nil {
		return nil, err
	}
	prices, err := s.prices(ctx)
	if err != nil {
		return nil, err
	}

	resp := &response.QuoteResponse{
		Lines: make([]response.QuoteLine, len(seats)),
		Is3D:  sc.movie.Is3D,
	}
	for i, seat := range seats {
		resp.Lines[i] = response.QuoteLine{
			Seat:     seat.Name,
			Category: string(seat.Category),
			Price:    engine.FormatCost(prices.SeatPrice(seat.Category, sc.movie.Is3D)),
		}
	}
	total := engine.PriceSelection(prices, sc.movie.Is3D, seats)
	resp.Total = engine.FormatCost(total)
	resp.TotalCost = engine.FormatTotal(total)
	return resp, nil
}

func (s *bookingService) Book(ctx context.Context, req *request.BookingRequest) (*response.ReservationResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Booking validation failed", zap.Error(err))
		return nil, err
	}

	sc, err := s.loadScreening(ctx, &req.ScreeningRequest)
	if err != nil {
		return nil, err
	}
	if sc.key.StartsAt.Before(s.deps.Now()) {
		return nil, fmt.Errorf("screening of %s at %s: %w",
			sc.key.MovieCode, sc.key.StartsAt.In(s.deps.Location).Format(time.RFC3339), ErrScreeningStarted)
	}

	prices, err := s.prices(ctx)
	if err != nil {
		return nil, err
	}

	var reservation engine.Reservation
	err = s.deps.withLock(ctx, sc.key.LockKey(), func() error {
		occupied, err := s.occupied(ctx, sc.key)
		if err != nil {
			return err
		}
		seats, err := engine.ResolveSelection(sc.inv, req.Seats)
		if err != nil {
			return err
		}
		if err := engine.CheckAvailability(occupied, seats); err != nil {
			return err
		}

		names := make([]string, len(seats))
		for i, seat := range seats {
			names[i] = seat.Name
		}

		reservation = engine.Reservation{
			ID:         uuid.New(),
			UserName:   strings.TrimSpace(req.UserName),
			MovieTitle: sc.movie.Title,
			MovieCode:  sc.key.MovieCode,
			StartsAt:   sc.key.StartsAt,
			HallName:   sc.key.HallName,
			Seats:      names,
			TotalCost:  engine.FormatTotal(engine.PriceSelection(prices, sc.movie.Is3D, seats)),
			CreatedAt:  s.deps.Now(),
		}
		if err := s.repo.Reservation.Append(ctx, fromReservation(reservation)); err != nil {
			return engine.Storage("append reservation", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Reservation confirmed",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("user", reservation.UserName),
		zap.String("movie_code", reservation.MovieCode),
		zap.String("hall", reservation.HallName),
		zap.String("seats", reservation.Selection()),
		zap.String("total_cost", reservation.TotalCost),
	)
	s.deps.publish(ctx, s.log, broker.RoutingReservationConfirmed, s.event(reservation))

	resp := response.ReservationToResponse(reservation, s.deps.Location)
	return &resp, nil
}

func (s *bookingService) event(r engine.Reservation) broker.ReservationEvent {
	return broker.ReservationEvent{
		ReservationID: r.ID.String(),
		UserName:      r.UserName,
		MovieCode:     r.MovieCode,
		MovieTitle:    r.MovieTitle,
		HallName:      r.HallName,
		StartsAt:      r.StartsAt.Format(time.RFC3339),
		Seats:         r.Seats,
		TotalCost:     r.TotalCost,
		OccurredAt:    s.deps.Now().UTC().Format(time.RFC3339),
	}
}

func (s *bookingService) CancelReservation(ctx context.Context, id string) error {
	reservationID, err := uuid.Parse(id)
	if err != nil {
		return invalid("invalid reservation ID format %s", id)
	}

	row, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return engine.Storage("get reservation "+id, err)
	}
	if row == nil {
		return fmt.Errorf("reservation %s: %w", id, engine.ErrNotFound)
	}

	deleted, err := s.repo.Reservation.DeleteByID(ctx, reservationID)
	if err != nil {
		return engine.Storage("delete reservation "+id, err)
	}
	if !deleted {
		return fmt.Errorf("reservation %s: %w", id, engine.ErrNotFound)
	}

	s.log.Info("Reservation cancelled", zap.String("reservation_id", id))
	s.deps.publish(ctx, s.log, broker.RoutingReservationCancelled, s.event(toReservation(row)))
	return nil
}

func (s *bookingService) CancelMatching(ctx context.Context, req *request.ReservationMatchRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	startsAt, err := utils.ParseDateTime(req.Date, req.Time, s.deps.Location)
	if err != nil {
		return invalid("%v", err)
	}

	target := engine.Reservation{
		UserName:   req.UserName,
		MovieTitle: req.MovieTitle,
		MovieCode:  req.MovieCode,
		StartsAt:   startsAt,
		HallName:   req.HallName,
		Seats:      engine.SplitSelection(req.SeatSelection),
		TotalCost:  strings.TrimSpace(req.TotalCost),
	}

	deleted, err := s.repo.Reservation.DeleteMatching(ctx, fromReservation(target))
	if err != nil {
		return engine.Storage("delete matching reservation", err)
	}
	if !deleted {
		return fmt.Errorf("reservation of %s for %s: %w", req.UserName, req.MovieCode, engine.ErrNotFound)
	}

	s.log.Info("Reservation cancelled by content",
		zap.String("user", target.UserName),
		zap.String("seats", target.Selection()),
	)
	s.deps.publish(ctx, s.log, broker.RoutingReservationCancelled, s.event(target))
	return nil
}

func (s *bookingService) GetUserReservations(ctx context.Context, userName, when string) ([]response.ReservationResponse, error) {
	var keep func(started bool) bool
	switch strings.ToLower(strings.TrimSpace(when)) {
	case "":
		keep = func(bool) bool { return true }
	case WhenUpcoming:
		keep = func(started bool) bool { return !started }
	case WhenPast:
		keep = func(started bool) bool { return started }
	default:
		return nil, invalid("when must be %q or %q, got %q", WhenUpcoming, WhenPast, when)
	}

	rows, err := s.repo.Reservation.FindByUser(ctx, userName)
	if err != nil {
		return nil, engine.Storage("get reservations of "+userName, err)
	}

	now := s.deps.Now()
	out := make([]response.ReservationResponse, 0, len(rows))
	for _, r := range rows {
		res := toReservation(r)
		if keep(res.StartsAt.Before(now)) {
			out = append(out, response.ReservationToResponse(res, s.deps.Location))
		}
	}
	return out, nil
}

// RemoveUserReservations drops every reservation of a user, as done when the
// user account is deleted.
func (s *bookingService) RemoveUserReservations(ctx context.Context, userName string) (int64, error) {
	removed, err := s.repo.Reservation.DeleteByUser(ctx, userName)
	if err != nil {
		return 0, engine.Storage("delete reservations of "+userName, err)
	}
	s.log.Info("User reservations removed", zap.String("user", userName), zap.Int64("count", removed))
	return removed, nil
}
