package usecase

import (
	"context"
	"testing"
	"time"

	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHall(t *testing.T) {
	t.Parallel()
	f := seeded(t)
	ctx := context.Background()

	halls, err := f.svc.Hall.GetHalls(ctx)
	require.NoError(t, err)
	require.Len(t, halls, 1)
	assert.Equal(t, "Sala 1", halls[0].Name)
	assert.Equal(t, 2, halls[0].Standard)
	assert.Equal(t, 1, halls[0].Premium)
	assert.Equal(t, 1, halls[0].Accessible)
	assert.Equal(t, 4, halls[0].Total)

	_, err = f.svc.Hall.CreateHall(ctx, &request.HallRequest{Name: "SALA 1"})
	assert.ErrorIs(t, err, engine.ErrAlreadyExists)

	_, err = f.svc.Hall.CreateHall(ctx, &request.HallRequest{
		Name:  "Sala 2",
		Seats: []request.SeatRequest{{Name: "A1", Category: "OCCUPATO"}},
	})
	assert.ErrorIs(t, err, engine.ErrInvalidCategory)

	_, err = f.svc.Hall.CreateHall(ctx, &request.HallRequest{
		Name:  "Sala 2",
		Seats: []request.SeatRequest{{Name: "   ", Category: "standard"}},
	})
	assert.ErrorIs(t, err, engine.ErrInvalidSeatName)

	// "-" joins seats in a stored selection
	_, err = f.svc.Hall.CreateHall(ctx, &request.HallRequest{
		Name:  "Sala 2",
		Seats: []request.SeatRequest{{Name: "A-1", Category: "standard"}},
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Hall.CreateHall(ctx, &request.HallRequest{Name: ""})
	assert.ErrorIs(t, err, ErrValidation)

	empty, err := f.svc.Hall.CreateHall(ctx, &request.HallRequest{Name: "Sala Vuota"})
	require.NoError(t, err)
	assert.Zero(t, empty.Total)

	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, h := range f.store.halls {
		assert.True(t, fixedNow().Equal(h.CreatedAt), h.Name)
		for _, seat := range f.store.seats[h.ID] {
			assert.True(t, fixedNow().Equal(seat.CreatedAt), seat.Name)
		}
	}
}

func TestReplaceSeats(t *testing.T) {
	t.Parallel()
	f := seeded(t)
	ctx := context.Background()

	resp, err := f.svc.Hall.ReplaceSeats(ctx, "sala 1", &request.HallSeatsRequest{
		Seats: []request.SeatRequest{
			{Name: "A1", Category: "premium"},
			{Name: "A2", X: 1, Category: "premium"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Premium)
	assert.Equal(t, 2, resp.Total)

	seats, err := f.svc.Hall.GetSeats(ctx, "Sala 1")
	require.NoError(t, err)
	require.Len(t, seats.Seats, 2)
	assert.Equal(t, "premium", seats.Seats[0].Category)

	_, err = f.svc.Hall.ReplaceSeats(ctx, "Sala 9", &request.HallSeatsRequest{})
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestHallInUse(t *testing.T) {
	t.Parallel()
	f := seeded(t)
	ctx := context.Background()
	// earlier today still counts
	f.insertScreening("M90", "Sala 1", fixedNow().Add(-2*time.Hour))

	_, err := f.svc.Hall.RenameHall(ctx, "Sala 1", &request.HallRenameRequest{Name: "Sala Grande"})
	assert.ErrorIs(t, err, engine.ErrHallInUse)
	assert.ErrorIs(t, f.svc.Hall.DeleteHall(ctx, "Sala 1"), engine.ErrHallInUse)

	halls, err := f.svc.Hall.GetHalls(ctx)
	require.NoError(t, err)
	require.Len(t, halls, 1)
	assert.Equal(t, "Sala 1", halls[0].Name)
}

func TestRenameHallMovesHistory(t *testing.T) {
	t.Parallel()
	f := seeded(t)
	ctx := context.Background()
	yesterday := fixedNow().Add(-24 * time.Hour)
	f.insertScreening("M90", "Sala 1", yesterday)

	resp, err := f.svc.Hall.RenameHall(ctx, "sala 1", &request.HallRenameRequest{Name: "Sala Grande"})
	require.NoError(t, err)
	assert.Equal(t, "Sala Grande", resp.Name)
	assert.Equal(t, 4, resp.Total)

	list, err := f.svc.Schedule.GetScreenings(ctx, "Sala Grande", "")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.svc.Hall.GetSeats(ctx, "Sala 1")
	assert.ErrorIs(t, err, engine.ErrNotFound)

	_, err = f.svc.Hall.CreateHall(ctx, &request.HallRequest{Name: "Sala 2"})
	require.NoError(t, err)
	_, err = f.svc.Hall.RenameHall(ctx, "Sala 2", &request.HallRenameRequest{Name: "sala grande"})
	assert.ErrorIs(t, err, engine.ErrAlreadyExists)
}

func TestDeleteHallCascades(t *testing.T) {
	t.Parallel()
	f := seeded(t)
	ctx := context.Background()
	f.insertScreening("M90", "Sala 1", fixedNow().Add(-48*time.Hour))

	require.NoError(t, f.svc.Hall.DeleteHall(ctx, "Sala 1"))
	assert.ErrorIs(t, f.svc.Hall.DeleteHall(ctx, "Sala 1"), engine.ErrNotFound)

	list, err := f.svc.Schedule.GetScreenings(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateHallStorageFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.store.failWith = errBoom

	_, err := f.svc.Hall.CreateHall(context.Background(), &request.HallRequest{Name: "Sala 1"})
	assert.ErrorIs(t, err, engine.ErrStorage)
	assert.ErrorIs(t, err, errBoom)
}
