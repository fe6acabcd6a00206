package usecase

import (
	"context"
	"testing"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/dto/request"
	"cinema-manager/pkg/locker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var rome = time.FixedZone("CET", 3600)

// now is 01/03/2030 09:00 in every test.
func fixedNow() time.Time { return time.Date(2030, time.March, 1, 9, 0, 0, 0, rome) }

type fixture struct {
	store *memStore
	pub   *recordingPublisher
	svc   *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	pub := &recordingPublisher{}
	svc := NewService(store.repository(), Deps{
		Locker:    locker.NewLocalLocker(),
		Publisher: pub,
		Location:  rome,
		Now:       fixedNow,
		LockWait:  2 * time.Second,
	}, zap.NewNop())
	return &fixture{store: store, pub: pub, svc: svc}
}

// seeded adds hall "Sala 1" (A1 A2 standard, B1 premium, C1 accessible),
// movies M90, M100, M120 (3D) and prices 8 / +3 premium / +2 3D / 5 reduced.
func seeded(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Hall.CreateHall(ctx, &request.HallRequest{
		Name: "Sala 1",
		Seats: []request.SeatRequest{
			{Name: "A1", X: 0, Y: 0, Category: "standard"},
			{Name: "A2", X: 1, Y: 0, Category: "NORMALE"},
			{Name: "B1", X: 0, Y: 1, Category: "VIP"},
			{Name: "C1", X: 0, Y: 2, Category: "accessible"},
		},
	})
	require.NoError(t, err)

	for _, m := range []request.MovieRequest{
		{Code: "M90", Title: "Novanta", DurationMinutes: 90},
		{Code: "M100", Title: "Cento", DurationMinutes: 100},
		{Code: "M120", Title: "Centoventi", DurationMinutes: 120, Is3D: true},
	} {
		_, err := f.svc.Movie.CreateMovie(ctx, &m)
		require.NoError(t, err)
	}

	_, err = f.svc.Price.ReplacePrices(ctx, &request.PriceRequest{
		Base: "8", PremiumSurcharge: "3", ThreeDSurcharge: "2", ReducedBase: "5",
	})
	require.NoError(t, err)
	return f
}

func screeningReq(movie, hall, date, clock string) *request.ScreeningRequest {
	return &request.ScreeningRequest{MovieCode: movie, HallName: hall, Date: date, Time: clock}
}

func (f *fixture) schedule(t *testing.T, movie, date, clock string) {
	t.Helper()
	_, err := f.svc.Schedule.ProposeScreening(context.Background(), screeningReq(movie, "Sala 1", date, clock))
	require.NoError(t, err)
}

// insertScreening bypasses the timeline checks, e.g. to place one in the past.
func (f *fixture) insertScreening(movie, hall string, at time.Time) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.screenings = append(f.store.screenings, &entity.Screening{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		MovieCode:  movie,
		HallName:   hall,
		StartsAt:   at,
	})
}

func bookingReq(user, movie, date, clock string, seats ...string) *request.BookingRequest {
	return &request.BookingRequest{
		UserName: user,
		QuoteRequest: request.QuoteRequest{
			ScreeningRequest: *screeningReq(movie, "Sala 1", date, clock),
			Seats:            seats,
		},
	}
}
