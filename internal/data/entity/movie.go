package entity

type MovieStatus string

const (
	MovieStatusAvailable    MovieStatus = "available"
	MovieStatusNotAvailable MovieStatus = "not_available"
)

type Movie struct {
	Base
	Code            string      `db:"code"`
	Title           string      `db:"title"`
	DurationMinutes int         `db:"duration_minutes"`
	Is3D            bool        `db:"is_3d"`
	Status          MovieStatus `db:"status"`

	// catalog details, shown to users only; zero Year means unknown
	Genre    string `db:"genre"`
	Director string `db:"director"`
	Cast     string `db:"cast_members"`
	Year     int    `db:"release_year"`
	Plot     string `db:"plot"`
}
