package repository

import (
	"errors"

	"cinema-manager/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type Repository struct {
	Hall        HallRepository
	Movie       MovieRepository
	Schedule    ScheduleRepository
	Price       PriceRepository
	Reservation ReservationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Hall:        NewHallRepository(db, log),
		Movie:       NewMovieRepository(db, log),
		Schedule:    NewScheduleRepository(db, log),
		Price:       NewPriceRepository(db, log),
		Reservation: NewReservationRepository(db, log),
	}
}

// ErrDuplicateKey is returned when an insert or rename hits a unique index.
var ErrDuplicateKey = errors.New("duplicate key")

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
