package entity

type Hall struct {
	Base
	Name string `db:"name"`
}

// HallSummary is a hall row with its seat counts per category.
type HallSummary struct {
	Hall
	Standard   int `db:"standard_seats"`
	Premium    int `db:"premium_seats"`
	Accessible int `db:"accessible_seats"`
}
