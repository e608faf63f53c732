package constraints

import (
	"time"

	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/types"
)

// Slate identifies a kickoff window restricting which games a lineup may
// draw from. Windows are evaluated in US-Eastern kickoff time.
type Slate string

const (
	SlateSunday             Slate = "sunday"
	SlateSundayEarly        Slate = "sunday_early"
	SlateSundayEarlyAndLate Slate = "sunday_early_and_late"
	SlateSundayAndMonday    Slate = "sunday_and_monday"
)

// Valid reports whether s names a known slate.
func (s Slate) Valid() bool {
	switch s {
	case SlateSunday, SlateSundayEarly, SlateSundayEarlyAndLate, SlateSundayAndMonday:
		return true
	}
	return false
}

// Contains reports whether a kickoff time falls inside the slate window.
func (s Slate) Contains(kickoff time.Time) bool {
	et := kickoff.In(types.Eastern)
	day := et.Weekday()
	hour := et.Hour()
	switch s {
	case SlateSunday:
		return day == time.Sunday
	case SlateSundayEarly:
		return day == time.Sunday && hour == 13
	case SlateSundayEarlyAndLate:
		return day == time.Sunday && (hour == 13 || hour == 16)
	case SlateSundayAndMonday:
		return day == time.Sunday || day == time.Monday
	}
	return false
}
