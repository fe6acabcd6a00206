package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/dto/response"
	"cinema-manager/internal/engine"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context, status *string) ([]response.MovieResponse, error)
	GetMovie(ctx context.Context, code string) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, code string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)

	// DeleteMovie removes the movie and every screening of it.
	DeleteMovie(ctx context.Context, code string) error
}

type movieService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewMovieService(repo *repository.Repository, now func() time.Time, log *zap.Logger) MovieService {
	if now == nil {
		now = time.Now
	}
	return &movieService{
		repo: repo,
		now:  now,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, status *string) ([]response.MovieResponse, error) {
	var filter *entity.MovieStatus
	if status != nil && *status != "" {
		st := entity.MovieStatus(strings.ToLower(*status))
		if st != entity.MovieStatusAvailable && st != entity.MovieStatusNotAvailable {
			return nil, invalid("unknown movie status %q", *status)
		}
		filter = &st
	}

	movies, err := s.repo.Movie.FindAll(ctx, filter)
	if err != nil {
		return nil, engine.Storage("get movies", err)
	}

	out := make([]response.MovieResponse, len(movies))
	for i, m := range movies {
		out[i] = response.MovieToResponse(m)
	}
	return out, nil
}

func (s *movieService) find(ctx context.Context, code string) (*entity.Movie, error) {
	movie, err := s.repo.Movie.FindByCode(ctx, code)
	if err != nil {
		return nil, engine.Storage("get movie "+code, err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", code, engine.ErrNotFound)
	}
	return movie, nil
}

func (s *movieService) GetMovie(ctx context.Context, code string) (*response.MovieResponse, error) {
	movie, err := s.find(ctx, code)
	if err != nil {
		return nil, err
	}
	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create movie validation failed", zap.Error(err))
		return nil, err
	}

	code := strings.TrimSpace(req.Code)
	existing, err := s.repo.Movie.FindByCode(ctx, code)
	if err != nil {
		return nil, engine.Storage("check movie "+code, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("movie %s: %w", code, engine.ErrAlreadyExists)
	}

	status := entity.MovieStatusAvailable
	if req.Status != "" {
		status = entity.MovieStatus(req.Status)
	}

	now := s.now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Code:            code,
		Title:           strings.TrimSpace(req.Title),
		DurationMinutes: req.DurationMinutes,
		Is3D:            req.Is3D,
		Status:          status,
		Genre:           strings.TrimSpace(req.Genre),
		Director:        strings.TrimSpace(req.Director),
		Cast:            strings.TrimSpace(req.Cast),
		Year:            req.Year,
		Plot:            strings.TrimSpace(req.Plot),
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("movie %s: %w", code, engine.ErrAlreadyExists)
		}
		return nil, engine.Storage("create movie "+code, err)
	}

	s.log.Info("Movie created",
		zap.String("code", movie.Code),
		zap.String("title", movie.Title),
		zap.Int("duration_minutes", movie.DurationMinutes),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

// UpdateMovie changes any field given in req. Existing screenings
// are not re-checked against a new runtime.
func (s *movieService) UpdateMovie(ctx context.Context, code string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	movie, err := s.find(ctx, code)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		movie.Title = strings.TrimSpace(*req.Title)
	}
	if req.DurationMinutes != nil {
		movie.DurationMinutes = *req.DurationMinutes
	}
	if req.Is3D != nil {
		movie.Is3D = *req.Is3D
	}
	if req.Status != nil {
		movie.Status = entity.MovieStatus(*req.Status)
	}
	if req.Genre != nil {
		movie.Genre = strings.TrimSpace(*req.Genre)
	}
	if req.Director != nil {
		movie.Director = strings.TrimSpace(*req.Director)
	}
	if req.Cast != nil {
		movie.Cast = strings.TrimSpace(*req.Cast)
	}
	if req.Year != nil {
		movie.Year = *req.Year
	}
	if req.Plot != nil {
		movie.Plot = strings.TrimSpace(*req.Plot)
	}
	movie.UpdatedAt = s.now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		return nil, engine.Storage("update movie "+code, err)
	}

	s.log.Info("Movie updated", zap.String("code", movie.Code), zap.String("status", string(movie.Status)))
	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, code string) error {
	movie, err := s.find(ctx, code)
	if err != nil {
		return err
	}

	removed, err := s.repo.Schedule.DeleteByMovie(ctx, movie.Code)
	if err != nil {
		return engine.Storage("delete screenings of movie "+movie.Code, err)
	}
	if err := s.repo.Movie.Delete(ctx, movie.Code); err != nil {
		return engine.Storage("delete movie "+movie.Code, err)
	}

	s.log.Info("Movie deleted",
		zap.String("code", movie.Code),
		zap.Int64("screenings_removed", removed),
	)
	return nil
}
