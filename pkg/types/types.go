package types

import (
	"time"
)

// Player represents a single candidate row in the optimization pool.
// A pool only holds players whose required fields are all populated.
type Player struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Position  Position  `json:"position"`
	Team      string    `json:"team"`
	Opponent  string    `json:"opponent"`
	Kickoff   time.Time `json:"kickoff"`
	Salary    int       `json:"salary"`
	Projected float64   `json:"projected_points"`
}

// Range is an inclusive [Min, Max] count bound.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}
