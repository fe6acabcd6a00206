package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"

	"github.com/google/uuid"
)

// memStore backs every fake repository so joins (screening duration, hall
// rename) behave like the SQL versions.
type memStore struct {
	mu           sync.Mutex
	halls        map[uuid.UUID]*entity.Hall
	seats        map[uuid.UUID][]*entity.Seat
	movies       map[string]*entity.Movie
	screenings   []*entity.Screening
	prices       *entity.PriceTable
	reservations []*entity.Reservation
	failWith     error
}

func newMemStore() *memStore {
	return &memStore{
		halls:  make(map[uuid.UUID]*entity.Hall),
		seats:  make(map[uuid.UUID][]*entity.Seat),
		movies: make(map[string]*entity.Movie),
	}
}

func (m *memStore) repository() *repository.Repository {
	return &repository.Repository{
		Hall:        fakeHalls{m},
		Movie:       fakeMovies{m},
		Schedule:    fakeSchedules{m},
		Price:       fakePrices{m},
		Reservation: fakeReservations{m},
	}
}

func fold(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// ---- halls ----

type fakeHalls struct{ m *memStore }

func (f fakeHalls) Create(_ context.Context, hall *entity.Hall, seats []*entity.Seat) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if f.m.failWith != nil {
		return f.m.failWith
	}
	for _, h := range f.m.halls {
		if fold(h.Name) == fold(hall.Name) {
			return repository.ErrDuplicateKey
		}
	}
	cp := *hall
	f.m.halls[hall.ID] = &cp
	f.m.seats[hall.ID] = seats
	return nil
}

func (f fakeHalls) FindAll(context.Context) ([]*entity.HallSummary, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []*entity.HallSummary
	for id, h := range f.m.halls {
		sum := &entity.HallSummary{Hall: *h}
		for _, s := range f.m.seats[id] {
			switch s.Category {
			case "standard":
				sum.Standard++
			case "premium":
				sum.Premium++
			case "accessible":
				sum.Accessible++
			}
		}
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f fakeHalls) FindByName(_ context.Context, name string) (*entity.Hall, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if f.m.failWith != nil {
		return nil, f.m.failWith
	}
	for _, h := range f.m.halls {
		if fold(h.Name) == fold(name) {
			cp := *h
			return &cp, nil
		}
	}
	return nil, nil
}

func (f fakeHalls) FindSeats(_ context.Context, hallID uuid.UUID) ([]*entity.Seat, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	return append([]*entity.Seat(nil), f.m.seats[hallID]...), nil
}

func (f fakeHalls) ReplaceSeats(_ context.Context, hallID uuid.UUID, seats []*entity.Seat) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	f.m.seats[hallID] = seats
	return nil
}

func (f fakeHalls) Rename(_ context.Context, hallID uuid.UUID, oldName, newName string) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	f.m.halls[hallID].Name = newName
	for _, s := range f.m.screenings {
		if fold(s.HallName) == fold(oldName) {
			s.HallName = newName
		}
	}
	for _, r := range f.m.reservations {
		if fold(r.HallName) == fold(oldName) {
			r.HallName = newName
		}
	}
	return nil
}

func (f fakeHalls) Delete(_ context.Context, hallID uuid.UUID) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	delete(f.m.halls, hallID)
	delete(f.m.seats, hallID)
	return nil
}

// ---- movies ----

type fakeMovies struct{ m *memStore }

func (f fakeMovies) Create(_ context.Context, movie *entity.Movie) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if _, ok := f.m.movies[fold(movie.Code)]; ok {
		return repository.ErrDuplicateKey
	}
	cp := *movie
	f.m.movies[fold(movie.Code)] = &cp
	return nil
}

func (f fakeMovies) FindByCode(_ context.Context, code string) (*entity.Movie, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if mv, ok := f.m.movies[fold(code)]; ok {
		cp := *mv
		return &cp, nil
	}
	return nil, nil
}

func (f fakeMovies) FindAll(_ context.Context, status *entity.MovieStatus) ([]*entity.Movie, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []*entity.Movie
	for _, mv := range f.m.movies {
		if status == nil || mv.Status == *status {
			cp := *mv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (f fakeMovies) Update(_ context.Context, movie *entity.Movie) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	cp := *movie
	f.m.movies[fold(movie.Code)] = &cp
	return nil
}

func (f fakeMovies) Delete(_ context.Context, code string) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	delete(f.m.movies, fold(code))
	return nil
}

// ---- screenings ----

type fakeSchedules struct{ m *memStore }

func (f fakeSchedules) Create(_ context.Context, s *entity.Screening) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	for _, e := range f.m.screenings {
		if fold(e.MovieCode) == fold(s.MovieCode) && fold(e.HallName) == fold(s.HallName) && e.StartsAt.Equal(s.StartsAt) {
			return repository.ErrDuplicateKey
		}
	}
	cp := *s
	f.m.screenings = append(f.m.screenings, &cp)
	return nil
}

func (f fakeSchedules) filter(keep func(*entity.Screening) bool) []*entity.Screening {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []*entity.Screening
	for _, s := range f.m.screenings {
		if keep(s) {
			cp := *s
			if mv, ok := f.m.movies[fold(s.MovieCode)]; ok {
				cp.DurationMinutes = mv.DurationMinutes
			}
			out = append(out, &cp)
		}
	}
	return out
}

func (f fakeSchedules) FindAll(context.Context) ([]*entity.Screening, error) {
	return f.filter(func(*entity.Screening) bool { return true }), nil
}

func (f fakeSchedules) FindByHall(_ context.Context, hall string) ([]*entity.Screening, error) {
	if f.m.failWith != nil {
		return nil, f.m.failWith
	}
	return f.filter(func(s *entity.Screening) bool { return fold(s.HallName) == fold(hall) }), nil
}

func (f fakeSchedules) FindByMovie(_ context.Context, code string) ([]*entity.Screening, error) {
	return f.filter(func(s *entity.Screening) bool { return fold(s.MovieCode) == fold(code) }), nil
}

func (f fakeSchedules) remove(match func(*entity.Screening) bool, limit int) int64 {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var n int64
	kept := f.m.screenings[:0]
	for _, s := range f.m.screenings {
		if (limit < 0 || n < int64(limit)) && match(s) {
			n++
			continue
		}
		kept = append(kept, s)
	}
	f.m.screenings = kept
	return n
}

func (f fakeSchedules) Delete(_ context.Context, code, hall string, at time.Time) (bool, error) {
	n := f.remove(func(s *entity.Screening) bool {
		return fold(s.MovieCode) == fold(code) && fold(s.HallName) == fold(hall) && s.StartsAt.Equal(at)
	}, 1)
	return n > 0, nil
}

func (f fakeSchedules) DeleteByHall(_ context.Context, hall string) (int64, error) {
	return f.remove(func(s *entity.Screening) bool { return fold(s.HallName) == fold(hall) }, -1), nil
}

func (f fakeSchedules) DeleteByMovie(_ context.Context, code string) (int64, error) {
	return f.remove(func(s *entity.Screening) bool { return fold(s.MovieCode) == fold(code) }, -1), nil
}

// ---- prices ----

type fakePrices struct{ m *memStore }

func (f fakePrices) Find(context.Context) (*entity.PriceTable, error) {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if f.m.prices == nil {
		return nil, nil
	}
	cp := *f.m.prices
	return &cp, nil
}

func (f fakePrices) Replace(_ context.Context, p *entity.PriceTable) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	cp := *p
	f.m.prices = &cp
	return nil
}

// ---- reservations ----

type fakeReservations struct{ m *memStore }

func (f fakeReservations) Append(_ context.Context, r *entity.Reservation) error {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	if f.m.failWith != nil {
		return f.m.failWith
	}
	cp := *r
	f.m.reservations = append(f.m.reservations, &cp)
	return nil
}

func (f fakeReservations) list(keep func(*entity.Reservation) bool) []*entity.Reservation {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var out []*entity.Reservation
	for _, r := range f.m.reservations {
		if keep(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out
}

func (f fakeReservations) FindAll(context.Context) ([]*entity.Reservation, error) {
	return f.list(func(*entity.Reservation) bool { return true }), nil
}

func (f fakeReservations) FindByID(_ context.Context, id uuid.UUID) (*entity.Reservation, error) {
	rows := f.list(func(r *entity.Reservation) bool { return r.ID == id })
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (f fakeReservations) FindByUser(_ context.Context, user string) ([]*entity.Reservation, error) {
	return f.list(func(r *entity.Reservation) bool { return r.UserName == user }), nil
}

func (f fakeReservations) FindByScreening(_ context.Context, code, hall string, at time.Time) ([]*entity.Reservation, error) {
	return f.list(func(r *entity.Reservation) bool {
		return fold(r.MovieCode) == fold(code) && fold(r.HallName) == fold(hall) && r.StartsAt.Equal(at)
	}), nil
}

func (f fakeReservations) remove(match func(*entity.Reservation) bool, limit int) int64 {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	var n int64
	kept := f.m.reservations[:0]
	for _, r := range f.m.reservations {
		if (limit < 0 || n < int64(limit)) && match(r) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	f.m.reservations = kept
	return n
}

func (f fakeReservations) DeleteByID(_ context.Context, id uuid.UUID) (bool, error) {
	return f.remove(func(r *entity.Reservation) bool { return r.ID == id }, 1) > 0, nil
}

func (f fakeReservations) DeleteMatching(_ context.Context, t *entity.Reservation) (bool, error) {
	return f.remove(func(r *entity.Reservation) bool {
		return r.UserName == t.UserName && r.MovieTitle == t.MovieTitle && fold(r.MovieCode) == fold(t.MovieCode) &&
			fold(r.HallName) == fold(t.HallName) && r.StartsAt.Equal(t.StartsAt) &&
			r.SeatSelection == t.SeatSelection && strings.TrimSpace(r.TotalCost) == strings.TrimSpace(t.TotalCost)
	}, 1) > 0, nil
}

func (f fakeReservations) DeleteByUser(_ context.Context, user string) (int64, error) {
	return f.remove(func(r *entity.Reservation) bool { return r.UserName == user }, -1), nil
}

// ---- publisher ----

type published struct {
	key     string
	payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{key, payload})
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.key
	}
	return out
}

var errBoom = errors.New("connection reset")
