package usecase

import (
	"context"
	"sync"
	"testing"

	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/engine"
	"cinema-manager/pkg/broker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProposeScreening(t *testing.T) {
	t.Parallel()
	f := seeded(t)
	ctx := context.Background()
	f.schedule(t, "M100", "10/03/2030", "14:00")

	tests := []struct {
		name    string
		req     *request.ScreeningRequest
		wantErr error
	}{
		{"five minutes too early", screeningReq("M90", "Sala 1", "10/03/2030", "16:25"), engine.ErrSchedulingConflict},
		{"right at the end of the window", screeningReq("M90", "sala 1", "10/03/2030", "16:30"), nil},
		{"in the past", screeningReq("M90", "Sala 1", "01/03/2030", "08:59"), engine.ErrPastScheduling},
		{"unknown movie", screeningReq("X1", "Sala 1", "11/03/2030", "10:00"), engine.ErrNotFound},
		{"unknown hall", screeningReq("M90", "Sala 9", "11/03/2030", "10:00"), engine.ErrNotFound},
		{"bad date", screeningReq("M90", "Sala 1", "2030-03-11", "10:00"), ErrValidation},
		{"missing time", screeningReq("M90", "Sala 1", "11/03/2030", ""), ErrValidation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := f.svc.Schedule.ProposeScreening(ctx, tc.req)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Sala 1", resp.HallName)
			assert.Equal(t, tc.req.Time, resp.Time)
		})
	}

	assert.Equal(t, []string{broker.RoutingScreeningScheduled, broker.RoutingScreeningScheduled}, f.pub.keys())
}

func TestProposeScreeningRejectsHiddenMovie(t *testing.T) {
	t.Parallel()
	f := seeded(t)
	hidden := "not_available"
	_, err := f.svc.Movie.UpdateMovie(context.Background(), "M90", &request.MovieUpdateRequest{Status: &hidden})
	require.NoError(t, err)

	_, err = f.svc.Schedule.ProposeScreening(context.Background(), screeningReq("M90", "Sala 1", "10/03/2030", "10:00"))
	assert.ErrorIs(t, err, ErrMovieUnavailable)
}

func TestProposeScreeningSerializesHall(t *testing.T) {
	t.Parallel()
	f := seeded(t)

	var wg sync.WaitGroup
	errs := make([]error, 3)
	for i, code := range []string{"M90", "M100", "M120"} {
		wg.Add(1)
		go func(i int, code string) {
			defer wg.Done()
			_, errs[i] = f.svc.Schedule.ProposeScreening(context.Background(),
				screeningReq(code, "Sala 1", "12/03/2030", "20:00"))
		}(i, code)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, engine.ErrSchedulingConflict)
	}
	assert.Equal(t, 1, ok)
}

func TestDeleteAndListScreenings(t *testing.T) {
	t.Parallel()
	f := seeded(t)
	ctx := context.Background()
	f.schedule(t, "M100", "10/03/2030", "14:00")
	f.schedule(t, "M90", "10/03/2030", "10:00")
	f.schedule(t, "M120", "11/03/2030", "21:00")

	all, err := f.svc.Schedule.GetScreenings(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "10:00", all[0].Time)

	byMovie, err := f.svc.Schedule.GetScreenings(ctx, "", "m100")
	require.NoError(t, err)
	require.Len(t, byMovie, 1)
	assert.Equal(t, 100, byMovie[0].DurationMinutes)

	require.NoError(t, f.svc.Schedule.DeleteScreening(ctx, screeningReq("M100", "Sala 1", "10/03/2030", "14:00")))
	err = f.svc.Schedule.DeleteScreening(ctx, screeningReq("M100", "Sala 1", "10/03/2030", "14:00"))
	assert.ErrorIs(t, err, engine.ErrNotFound)

	all, err = f.svc.Schedule.GetScreenings(ctx, "Sala 1", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetTimeline(t *testing.T) {
	t.Parallel()
	f := seeded(t)
	ctx := context.Background()
	f.schedule(t, "M100", "10/03/2030", "14:00")
	f.schedule(t, "M120", "10/03/2030", "22:30")
	f.schedule(t, "M90", "11/03/2030", "10:00")

	tl, err := f.svc.Schedule.GetTimeline(ctx, "Sala 1", "10/03/2030")
	require.NoError(t, err)
	require.Len(t, tl.Slots, 2)
	assert.Equal(t, "14:00", tl.Slots[0].Start)
	assert.Equal(t, "16:10", tl.Slots[0].End)
	assert.Equal(t, "11/03 01:00", tl.Slots[1].End)

	_, err = f.svc.Schedule.GetTimeline(ctx, "Sala 1", "10-03-2030")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProposeScreeningStorageFailure(t *testing.T) {
	t.Parallel()
	f := seeded(t)
	f.store.failWith = errBoom

	_, err := f.svc.Schedule.ProposeScreening(context.Background(),
		screeningReq("M90", "Sala 1", "10/03/2030", "10:00"))
	assert.ErrorIs(t, err, engine.ErrStorage)
	assert.ErrorIs(t, err, errBoom)
}
