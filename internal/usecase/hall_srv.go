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

type HallService interface {
	GetHalls(ctx context.Context) ([]response.HallResponse, error)
	GetSeats(ctx context.Context, name string) (*response.HallSeatsResponse, error)
	CreateHall(ctx context.Context, req *request.HallRequest) (*response.HallResponse, error)
	ReplaceSeats(ctx context.Context, name string, req *request.HallSeatsRequest) (*response.HallResponse, error)

	// RenameHall and DeleteHall are refused while the hall has a screening
	// today or later.
	RenameHall(ctx context.Context, name string, req *request.HallRenameRequest) (*response.HallResponse, error)
	DeleteHall(ctx context.Context, name string) error
}

type hallService struct {
	repo *repository.Repository
	deps Deps
	log  *zap.Logger
}

func NewHallService(repo *repository.Repository, deps Deps, log *zap.Logger) HallService {
	return &hallService{
		repo: repo,
		deps: deps.withDefaults(),
		log:  log.With(zap.String("service", "hall")),
	}
}

func (s *hallService) GetHalls(ctx context.Context) ([]response.HallResponse, error) {
	halls, err := s.repo.Hall.FindAll(ctx)
	if err != nil {
		return nil, engine.Storage("get halls", err)
	}

	out := make([]response.HallResponse, len(halls))
	for i, h := range halls {
		out[i] = response.CountsToResponse(h.Name, map[engine.Category]int{
			engine.CategoryStandard:   h.Standard,
			engine.CategoryPremium:    h.Premium,
			engine.CategoryAccessible: h.Accessible,
		})
	}
	return out, nil
}

func (s *hallService) find(ctx context.Context, name string) (*entity.Hall, error) {
	hall, err := s.repo.Hall.FindByName(ctx, name)
	if err != nil {
		return nil, engine.Storage("get hall "+name, err)
	}
	if hall == nil {
		return nil, fmt.Errorf("hall %s: %w", name, engine.ErrNotFound)
	}
	return hall, nil
}

func (s *hallService) inventory(ctx context.Context, hall *entity.Hall) (*engine.Inventory, error) {
	seats, err := s.repo.Hall.FindSeats(ctx, hall.ID)
	if err != nil {
		return nil, engine.Storage("get seats of hall "+hall.Name, err)
	}
	inv, err := toInventory(hall.Name, seats)
	if err != nil {
		return nil, fmt.Errorf("load seats of hall %s: %w", hall.Name, err)
	}
	return inv, nil
}

func (s *hallService) GetSeats(ctx context.Context, name string) (*response.HallSeatsResponse, error) {
	hall, err := s.find(ctx, name)
	if err != nil {
		return nil, err
	}
	inv, err := s.inventory(ctx, hall)
	if err != nil {
		return nil, err
	}
	resp := response.InventoryToResponse(inv)
	return &resp, nil
}

// buildSeats checks the requested seat map and turns it into rows.
func buildSeats(hall string, hallID uuid.UUID, reqs []request.SeatRequest, now time.Time) (*engine.Inventory, []*entity.Seat, error) {
	seats := make([]engine.Seat, 0, len(reqs))
	for _, r := range reqs {
		c, err := engine.ParseCategory(r.Category)
		if err != nil {
			return nil, nil, fmt.Errorf("seat %s: %w", r.Name, err)
		}
		seats = append(seats, engine.Seat{Name: r.Name, X: r.X, Y: r.Y, Category: c})
	}

	inv, err := engine.NewInventory(hall, seats)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]*entity.Seat, 0, inv.Len())
	for _, seat := range inv.SeatsOf() {
		rows = append(rows, &entity.Seat{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			HallID:     hallID,
			Name:       seat.Name,
			PosX:       seat.X,
			PosY:       seat.Y,
			Category:   string(seat.Category),
		})
	}
	return inv, rows, nil
}

func (s *hallService) CreateHall(ctx context.Context, req *request.HallRequest) (*response.HallResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create hall validation failed", zap.Error(err))
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	existing, err := s.repo.Hall.FindByName(ctx, name)
	if err != nil {
		return nil, engine.Storage("check hall "+name, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("hall %s: %w", name, engine.ErrAlreadyExists)
	}

	now := s.deps.Now()
	hall := &entity.Hall{
		Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name: name,
	}

	inv, seats, err := buildSeats(name, hall.ID, req.Seats, now)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Hall.Create(ctx, hall, seats); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("hall %s: %w", name, engine.ErrAlreadyExists)
		}
		return nil, engine.Storage("create hall "+name, err)
	}

	s.log.Info("Hall created", zap.String("hall", name), zap.Int("seats", inv.Len()))
	resp := response.CountsToResponse(name, inv.Counts())
	return &resp, nil
}

func (s *hallService) ReplaceSeats(ctx context.Context, name string, req *request.HallSeatsRequest) (*response.HallResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	hall, err := s.find(ctx, name)
	if err != nil {
		return nil, err
	}

	inv, seats, err := buildSeats(hall.Name, hall.ID, req.Seats, s.deps.Now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Hall.ReplaceSeats(ctx, hall.ID, seats); err != nil {
		return nil, engine.Storage("replace seats of hall "+hall.Name, err)
	}

	resp := response.CountsToResponse(hall.Name, inv.Counts())
	return &resp, nil
}

// busy loads the hall's screenings and applies the in-use rule.
func (s *hallService) busy(ctx context.Context, hall string) (bool, error) {
	rows, err := s.repo.Schedule.FindByHall(ctx, hall)
	if err != nil {
		return false, engine.Storage("get screenings of hall "+hall, err)
	}
	return engine.HallBusy(toScreenings(rows), hall, s.deps.Now().In(s.deps.Location)), nil
}

func (s *hallService) RenameHall(ctx context.Context, name string, req *request.HallRenameRequest) (*response.HallResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	newName := strings.TrimSpace(req.Name)

	var resp *response.HallResponse
	err := s.deps.withLock(ctx, hallLockKey(name), func() error {
		hall, err := s.find(ctx, name)
		if err != nil {
			return err
		}

		if !engine.SameHall(hall.Name, newName) {
			other, err := s.repo.Hall.FindByName(ctx, newName)
			if err != nil {
				return engine.Storage("check hall "+newName, err)
			}
			if other != nil {
				return fmt.Errorf("hall %s: %w", newName, engine.ErrAlreadyExists)
			}
		}

		busy, err := s.busy(ctx, hall.Name)
		if err != nil {
			return err
		}
		if busy {
			return fmt.Errorf("rename hall %s: %w", hall.Name, engine.ErrHallInUse)
		}

		if err := s.repo.Hall.Rename(ctx, hall.ID, hall.Name, newName); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return fmt.Errorf("hall %s: %w", newName, engine.ErrAlreadyExists)
			}
			return engine.Storage("rename hall "+hall.Name, err)
		}

		inv, err := s.inventory(ctx, &entity.Hall{Base: hall.Base, Name: newName})
		if err != nil {
			return err
		}
		r := response.CountsToResponse(newName, inv.Counts())
		resp = &r

		s.log.Info("Hall renamed", zap.String("from", hall.Name), zap.String("to", newName))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *hallService) DeleteHall(ctx context.Context, name string) error {
	return s.deps.withLock(ctx, hallLockKey(name), func() error {
		hall, err := s.find(ctx, name)
		if err != nil {
			return err
		}

		busy, err := s.busy(ctx, hall.Name)
		if err != nil {
			return err
		}
		if busy {
			return fmt.Errorf("delete hall %s: %w", hall.Name, engine.ErrHallInUse)
		}

		removed, err := s.repo.Schedule.DeleteByHall(ctx, hall.Name)
		if err != nil {
			return engine.Storage("delete screenings of hall "+hall.Name, err)
		}
		if err := s.repo.Hall.Delete(ctx, hall.ID); err != nil {
			return engine.Storage("delete hall "+hall.Name, err)
		}

		s.log.Info("Hall deleted",
			zap.String("hall", hall.Name),
			zap.Int64("screenings_removed", removed),
		)
		return nil
	})
}
