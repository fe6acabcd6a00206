package usecase

import (
	"context"
	"strings"
	"time"

	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/engine"
	"cinema-manager/pkg/broker"
	"cinema-manager/pkg/locker"

	"go.uber.org/zap"
)

type Service struct {
	Hall     HallService
	Movie    MovieService
	Schedule ScheduleService
	Price    PriceService
	Booking  BookingService
}

// Deps are the collaborators shared by every service.
type Deps struct {
	Locker    locker.Locker
	Publisher broker.Publisher
	Location  *time.Location
	Now       func() time.Time
	// LockWait bounds how long an operation waits for its arbitration lock.
	LockWait time.Duration
}

func (d Deps) withDefaults() Deps {
	if d.Locker == nil {
		d.Locker = locker.NewLocalLocker()
	}
	if d.Publisher == nil {
		d.Publisher = broker.NopPublisher{}
	}
	if d.Location == nil {
		d.Location = time.Local
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.LockWait <= 0 {
		d.LockWait = 5 * time.Second
	}
	return d
}

func NewService(repo *repository.Repository, deps Deps, log *zap.Logger) *Service {
	deps = deps.withDefaults()
	return &Service{
		Hall:     NewHallService(repo, deps, log),
		Movie:    NewMovieService(repo, deps.Now, log),
		Schedule: NewScheduleService(repo, deps, log),
		Price:    NewPriceService(repo.Price, deps.Now, log),
		Booking:  NewBookingService(repo, deps, log),
	}
}

func hallLockKey(hall string) string {
	return "schedule:hall:" + strings.ToLower(strings.TrimSpace(hall))
}

// withLock runs fn while holding key. Failing to get the lock in time is a
// collaborator failure.
func (d Deps) withLock(ctx context.Context, key string, fn func() error) error {
	lockCtx, cancel := context.WithTimeout(ctx, d.LockWait)
	defer cancel()

	release, err := d.Locker.Acquire(lockCtx, key)
	if err != nil {
		return engine.Storage("acquire lock "+key, err)
	}
	defer release()

	return fn()
}

// publish never fails the caller; the operation it reports is already committed.
func (d Deps) publish(ctx context.Context, log *zap.Logger, routingKey string, payload any) {
	if err := d.Publisher.Publish(ctx, routingKey, payload); err != nil {
		log.Warn("Failed to publish event",
			zap.Error(err),
			zap.String("routing_key", routingKey),
		)
	}
}
