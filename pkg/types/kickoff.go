package types

import "time"

// Eastern is the NFL scheduling time zone. Kickoff timestamps without an
// explicit zone are interpreted as US-Eastern wall-clock times, and slate
// windows are evaluated in it.
var Eastern = loadEastern()

func loadEastern() *time.Location {
	if loc, err := time.LoadLocation("America/New_York"); err == nil {
		return loc
	}
	return time.FixedZone("ET", -5*60*60)
}
