package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/engine"
	"cinema-manager/pkg/broker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookComputesTotalAndOccupancy(t *testing.T) {
	t.Parallel()
	f := seeded(t)
	ctx := context.Background()
	f.schedule(t, "M120", "10/03/2030", "17:00")

	res, err := f.svc.Booking.Book(ctx, bookingReq("mario", "M120", "10/03/2030", "17:00", "A1", "B1"))
	require.NoError(t, err)
	assert.Equal(t, "23€", res.TotalCost)
	assert.Equal(t, "A1-B1", res.SeatSelection)
	assert.Equal(t, "Centoventi", res.MovieTitle)
	assert.Equal(t, "10/03/2030", res.Date)
	assert.Equal(t, "17:00", res.Time)
	_, err = uuid.Parse(res.ID)
	assert.NoError(t, err)

	m, err := f.svc.Booking.GetSeatMap(ctx, screeningReq("M120", "Sala 1", "10/03/2030", "17:00"))
	require.NoError(t, err)
	assert.Equal(t, 2, m.Occupied)
	assert.Equal(t, 2, m.Free)
	for _, s := range m.Seats {
		assert.Equal(t, s.Name == "A1" || s.Name == "B1", s.Occupied, s.Name)
	}

	assert.Equal(t, []string{broker.RoutingScreeningScheduled, broker.RoutingReservationConfirmed}, f.pub.keys())
}

func TestBookRejections(t *testing.T) {
	t.Parallel()
	f := seeded(t)
	ctx := context.Background()
	f.schedule(t, "M90", "10/03/2030", "17:00")
	_, err := f.svc.Booking.Book(ctx, bookingReq("mario", "M90", "10/03/2030", "17:00", "A1"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     *request.BookingRequest
		wantErr error
	}{
		{"seat already booked", bookingReq("luigi", "M90", "10/03/2030", "17:00", "A2", "A1"), engine.ErrSeatTaken},
		{"seat not in hall", bookingReq("luigi", "M90", "10/03/2030", "17:00", "Z9"), engine.ErrUnknownSeat},
		{"seat twice", bookingReq("luigi", "M90", "10/03/2030", "17:00", "A2", "A2"), engine.ErrDuplicateSeat},
		{"no screening at that time", bookingReq("luigi", "M90", "10/03/2030", "18:00", "A2"), engine.ErrNotFound},
		{"empty selection", bookingReq("luigi", "M90", "10/03/2030", "17:00"), ErrValidation},
		{"missing user", bookingReq("", "M90", "10/03/2030", "17:00", "A2"), ErrValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Booking.Book(ctx, tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	mine, err := f.svc.Booking.GetUserReservations(ctx, "luigi", "")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestBookWithoutPrices(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Hall.CreateHall(ctx, &request.HallRequest{Name: "Sala 1",
		Seats: []request.SeatRequest{{Name: "A1", Category: "standard"}}})
	require.NoError(t, err)
	_, err = f.svc.Movie.CreateMovie(ctx, &request.MovieRequest{Code: "M90", Title: "Novanta", DurationMinutes: 90})
	require.NoError(t, err)
	f.schedule(t, "M90", "10/03/2030", "17:00")

	prices, err := f.svc.Price.GetPrices(ctx)
	require.NoError(t, err)
	assert.Nil(t, prices)

	_, err = f.svc.Booking.Book(ctx, bookingReq("mario", "M90", "10/03/2030", "17:00", "A1"))
	assert.ErrorIs(t, err, engine.ErrPricesNotConfigured)
}

func TestBookStartedScreening(t *testing.T) {
	t.Parallel()
	f := seeded(t)
	f.insertScreening("M90", "Sala 1", fixedNow().Add(-time.Hour))

	_, err := f.svc.Booking.Book(context.Background(), bookingReq("mario", "M90", "01/03/2030", "08:00", "A1"))
	assert.ErrorIs(t, err, ErrScreeningStarted)
}

func TestConcurrentBookingsNeverShareSeat(t *testing.T) {
	t.Parallel()
	f := seeded(t)
	f.schedule(t, "M100", "10/03/2030", "14:00")

	const n = 10
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Booking.Book(context.Background(),
				bookingReq("user", "M100", "10/03/2030", "14:00", "A2", "C1"))
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, engine.ErrSeatTaken)
	}
	assert.Equal(t, 1, ok)
}

func TestQuote(t *testing.T) {
	t.Parallel()
	f := seeded(t)
	f.schedule(t, "M120", "10/03/2030", "17:00")

	q, err := f.svc.Booking.Quote(context.Background(), &request.QuoteRequest{
		ScreeningRequest: *screeningReq("M120", "Sala 1", "10/03/2030", "17:00"),
		Seats:            []string{"C1", "B1"},
	})
	require.NoError(t, err)
	assert.True(t, q.Is3D)
	require.Len(t, q.Lines, 2)
	assert.Equal(t, "7", q.Lines[0].Price)
	assert.Equal(t, "13", q.Lines[1].Price)
	assert.Equal(t, "20€", q.TotalCost)
}

func TestCancelReservation(t *testing.T) {
	t.Parallel()
	f := seeded(t)
	ctx := context.Background()
	f.schedule(t, "M90", "10/03/2030", "17:00")
	res, err := f.svc.Booking.Book(ctx, bookingReq("mario", "M90", "10/03/2030", "17:00", "A1"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Booking.CancelReservation(ctx, res.ID))
	assert.ErrorIs(t, f.svc.Booking.CancelReservation(ctx, res.ID), engine.ErrNotFound)
	assert.ErrorIs(t, f.svc.Booking.CancelReservation(ctx, "not-a-uuid"), ErrValidation)

	// seat is free again
	_, err = f.svc.Booking.Book(ctx, bookingReq("luigi", "M90", "10/03/2030", "17:00", "A1"))
	require.NoError(t, err)

	assert.Contains(t, f.pub.keys(), broker.RoutingReservationCancelled)
}

func TestCancelMatchingRemovesOneDuplicate(t *testing.T) {
	t.Parallel()
	f := seeded(t)
	ctx := context.Background()
	f.schedule(t, "M90", "10/03/2030", "17:00")
	res, err := f.svc.Booking.Book(ctx, bookingReq("mario", "M90", "10/03/2030", "17:00", "A1", "A2"))
	require.NoError(t, err)

	// legacy ledgers may hold identical rows
	f.store.mu.Lock()
	dup := *f.store.reservations[0]
	dup.ID = uuid.New()
	f.store.reservations = append(f.store.reservations, &dup)
	f.store.mu.Unlock()

	match := &request.ReservationMatchRequest{
		UserName:      res.UserName,
		MovieTitle:    res.MovieTitle,
		MovieCode:     res.MovieCode,
		Date:          res.Date,
		Time:          res.Time,
		HallName:      res.HallName,
		SeatSelection: res.SeatSelection,
		TotalCost:     res.TotalCost,
	}
	require.NoError(t, f.svc.Booking.CancelMatching(ctx, match))

	m, err := f.svc.Booking.GetSeatMap(ctx, screeningReq("M90", "Sala 1", "10/03/2030", "17:00"))
	require.NoError(t, err)
	assert.Equal(t, 2, m.Occupied)

	require.NoError(t, f.svc.Booking.CancelMatching(ctx, match))
	assert.ErrorIs(t, f.svc.Booking.CancelMatching(ctx, match), engine.ErrNotFound)

	m, err = f.svc.Booking.GetSeatMap(ctx, screeningReq("M90", "Sala 1", "10/03/2030", "17:00"))
	require.NoError(t, err)
	assert.Zero(t, m.Occupied)
}

func TestCancelMatchingIgnoresCodeAndHallCase(t *testing.T) {
	t.Parallel()
	f := seeded(t)
	ctx := context.Background()
	f.schedule(t, "M90", "10/03/2030", "17:00")
	res, err := f.svc.Booking.Book(ctx, bookingReq("mario", "M90", "10/03/2030", "17:00", "A1"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Booking.CancelMatching(ctx, &request.ReservationMatchRequest{
		UserName:      res.UserName,
		MovieTitle:    res.MovieTitle,
		MovieCode:     "m90",
		Date:          res.Date,
		Time:          res.Time,
		HallName:      " sala 1",
		SeatSelection: res.SeatSelection,
		TotalCost:     res.TotalCost,
	}))

	left, err := f.svc.Booking.GetUserReservations(ctx, "mario", "")
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestGetUserReservationsSplitsPastAndUpcoming(t *testing.T) {
	t.Parallel()
	f := seeded(t)
	ctx := context.Background()
	f.schedule(t, "M90", "10/03/2030", "17:00")
	_, err := f.svc.Booking.Book(ctx, bookingReq("mario", "M90", "10/03/2030", "17:00", "A1"))
	require.NoError(t, err)

	// a screening seen before the clock moved past it
	f.store.mu.Lock()
	old := *f.store.reservations[0]
	old.ID = uuid.New()
	old.StartsAt = fixedNow().Add(-48 * time.Hour)
	old.SeatSelection = "B1"
	f.store.reservations = append(f.store.reservations, &old)
	f.store.mu.Unlock()

	tests := []struct {
		when      string
		wantSeats []string
		wantErr   error
	}{
		{"", []string{"A1", "B1"}, nil},
		{"upcoming", []string{"A1"}, nil},
		{"Past", []string{"B1"}, nil},
		{"tomorrow", nil, ErrValidation},
	}
	for _, tc := range tests {
		t.Run("when="+tc.when, func(t *testing.T) {
			got, err := f.svc.Booking.GetUserReservations(ctx, "mario", tc.when)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			seats := make([]string, len(got))
			for i, r := range got {
				seats[i] = r.SeatSelection
			}
			assert.ElementsMatch(t, tc.wantSeats, seats)
		})
	}
}

func TestRemoveUserReservations(t *testing.T) {
	t.Parallel()
	f := seeded(t)
	ctx := context.Background()
	f.schedule(t, "M90", "10/03/2030", "17:00")
	for _, seat := range []string{"A1", "A2"} {
		_, err := f.svc.Booking.Book(ctx, bookingReq("mario", "M90", "10/03/2030", "17:00", seat))
		require.NoError(t, err)
	}
	_, err := f.svc.Booking.Book(ctx, bookingReq("luigi", "M90", "10/03/2030", "17:00", "B1"))
	require.NoError(t, err)

	removed, err := f.svc.Booking.RemoveUserReservations(ctx, "mario")
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	left, err := f.svc.Booking.GetUserReservations(ctx, "luigi", "")
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "11€", left[0].TotalCost)
}

func TestBookSurvivesPublishFailure(t *testing.T) {
	t.Parallel()
	f := seeded(t)
	f.schedule(t, "M90", "10/03/2030", "17:00")
	f.pub.err = errBoom

	_, err := f.svc.Booking.Book(context.Background(), bookingReq("mario", "M90", "10/03/2030", "17:00", "A1"))
	assert.NoError(t, err)
}
