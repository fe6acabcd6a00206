package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
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

type ScheduleService interface {
	// ProposeScreening places a screening on its hall timeline if it does not
	// start in the past and keeps the turnaround gap with every other screening
	// of that hall.
	ProposeScreening(ctx context.Context, req *request.ScreeningRequest) (*response.ScreeningResponse, error)
	DeleteScreening(ctx context.Context, req *request.ScreeningRequest) error
	GetScreenings(ctx context.Context, hall, movie string) ([]response.ScreeningResponse, error)
	GetTimeline(ctx context.Context, hall, date string) (*response.TimelineResponse, error)
}

type scheduleService struct {
	repo *repository.Repository
	deps Deps
	log  *zap.Logger
}

func NewScheduleService(repo *repository.Repository, deps Deps, log *zap.Logger) ScheduleService {
	return &scheduleService{
		repo: repo,
		deps: deps.withDefaults(),
		log:  log.With(zap.String("service", "schedule")),
	}
}

func (s *scheduleService) parseStart(req *request.ScreeningRequest) (time.Time, error) {
	startsAt, err := utils.ParseDateTime(req.Date, req.Time, s.deps.Location)
	if err != nil {
		return time.Time{}, invalid("%v", err)
	}
	return startsAt, nil
}

func (s *scheduleService) ProposeScreening(ctx context.Context, req *request.ScreeningRequest) (*response.ScreeningResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Propose screening validation failed", zap.Error(err))
		return nil, err
	}
	startsAt, err := s.parseStart(req)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByCode(ctx, req.MovieCode)
	if err != nil {
		return nil, engine.Storage("get movie "+req.MovieCode, err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", req.MovieCode, engine.ErrNotFound)
	}
	if movie.Status != entity.MovieStatusAvailable {
		return nil, fmt.Errorf("movie %s: %w", movie.Code, ErrMovieUnavailable)
	}

	hall, err := s.repo.Hall.FindByName(ctx, req.HallName)
	if err != nil {
		return nil, engine.Storage("get hall "+req.HallName, err)
	}
	if hall == nil {
		return nil, fmt.Errorf("hall %s: %w", req.HallName, engine.ErrNotFound)
	}

	candidate := engine.Screening{
		MovieCode:       movie.Code,
		HallName:        hall.Name,
		StartsAt:        startsAt,
		DurationMinutes: movie.DurationMinutes,
	}

	err = s.deps.withLock(ctx, hallLockKey(hall.Name), func() error {
		rows, err := s.repo.Schedule.FindByHall(ctx, hall.Name)
		if err != nil {
			return engine.Storage("get screenings of hall "+hall.Name, err)
		}

		if err := engine.ValidateSchedule(candidate, toScreenings(rows), s.deps.Now()); err != nil {
			s.log.Info("Screening rejected",
				zap.Error(err),
				zap.String("movie_code", candidate.MovieCode),
				zap.String("hall", candidate.HallName),
				zap.Time("starts_at", candidate.StartsAt),
			)
			return err
		}

		row := &entity.Screening{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: s.deps.Now()},
			MovieCode:  candidate.MovieCode,
			HallName:   candidate.HallName,
			StartsAt:   candidate.StartsAt,
		}
		if err := s.repo.Schedule.Create(ctx, row); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return fmt.Errorf("screening of %s in %s: %w", candidate.MovieCode, candidate.HallName, engine.ErrAlreadyExists)
			}
			return engine.Storage("create screening", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Screening scheduled",
		zap.String("movie_code", candidate.MovieCode),
		zap.String("hall", candidate.HallName),
		zap.Time("starts_at", candidate.StartsAt),
	)

	_, end := candidate.OccupiedWindow()
	s.deps.publish(ctx, s.log, broker.RoutingScreeningScheduled, broker.ScreeningEvent{
		MovieCode:       candidate.MovieCode,
		HallName:        candidate.HallName,
		StartsAt:        candidate.StartsAt.Format(time.RFC3339),
		EndsAt:          end.Format(time.RFC3339),
		DurationMinutes: candidate.DurationMinutes,
		OccurredAt:      s.deps.Now().UTC().Format(time.RFC3339),
	})

	resp := response.ScreeningToResponse(candidate, s.deps.Location)
	return &resp, nil
}

func (s *scheduleService) DeleteScreening(ctx context.Context, req *request.ScreeningRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	startsAt, err := s.parseStart(req)
	if err != nil {
		return err
	}

	var deleted bool
	err = s.deps.withLock(ctx, hallLockKey(req.HallName), func() error {
		deleted, err = s.repo.Schedule.Delete(ctx, req.MovieCode, req.HallName, startsAt)
		if err != nil {
			return engine.Storage("delete screening", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("screening of %s in %s at %s %s: %w",
			req.MovieCode, req.HallName, req.Date, req.Time, engine.ErrNotFound)
	}

	s.log.Info("Screening deleted",
		zap.String("movie_code", req.MovieCode),
		zap.String("hall", req.HallName),
		zap.Time("starts_at", startsAt),
	)
	return nil
}

func (s *scheduleService) GetScreenings(ctx context.Context, hall, movie string) ([]response.ScreeningResponse, error) {
	rows, err := s.repo.Schedule.FindAll(ctx)
	if err != nil {
		return nil, engine.Storage("get screenings", err)
	}

	screenings := toScreenings(rows)
	if hall != "" {
		screenings = engine.ByHall(screenings, hall)
	}
	if movie != "" {
		screenings = engine.ByMovie(screenings, movie)
	}
	sort.SliceStable(screenings, func(i, j int) bool {
		return screenings[i].StartsAt.Before(screenings[j].StartsAt)
	})

	out := make([]response.ScreeningResponse, len(screenings))
	for i, sc := range screenings {
		out[i] = response.ScreeningToResponse(sc, s.deps.Location)
	}
	return out, nil
}

// GetTimeline lists the occupied windows of a hall for the screenings starting on date.
func (s *scheduleService) GetTimeline(ctx context.Context, hall, date string) (*response.TimelineResponse, error) {
	day, err := utils.ParseDate(date, s.deps.Location)
	if err != nil {
		return nil, invalid("%v", err)
	}

	h, err := s.repo.Hall.FindByName(ctx, hall)
	if err != nil {
		return nil, engine.Storage("get hall "+hall, err)
	}
	if h == nil {
		return nil, fmt.Errorf("hall %s: %w", hall, engine.ErrNotFound)
	}

	rows, err := s.repo.Schedule.FindByHall(ctx, h.Name)
	if err != nil {
		return nil, engine.Storage("get screenings of hall "+h.Name, err)
	}

	next := day.AddDate(0, 0, 1)
	var screenings []engine.Screening
	for _, sc := range toScreenings(rows) {
		if !sc.StartsAt.Before(day) && sc.StartsAt.Before(next) {
			screenings = append(screenings, sc)
		}
	}
	sort.Slice(screenings, func(i, j int) bool {
		return screenings[i].StartsAt.Before(screenings[j].StartsAt)
	})

	resp := &response.TimelineResponse{
		HallName: h.Name,
		Date:     utils.FormatDate(day, s.deps.Location),
		Slots:    make([]response.SlotResponse, len(screenings)),
	}
	for i, sc := range screenings {
		resp.Slots[i] = response.SlotToResponse(sc, s.deps.Location)
	}
	return resp, nil
}
