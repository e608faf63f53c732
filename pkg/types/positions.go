package types

import (
	"fmt"
	"strings"
)

// Position represents a normalized NFL roster position.
type Position string

const (
	QB  Position = "QB"
	RB  Position = "RB"
	WR  Position = "WR"
	TE  Position = "TE"
	DST Position = "DST"

	// FLEX is a lineup role only, never a raw player position.
	FLEX Position = "FLEX"
)

// FlexEligible lists the positions that may fill the FLEX slot, in the
// priority order used when resolving the flex assignment of a lineup.
var FlexEligible = []Position{RB, WR, TE}

var positionAliases = map[string]Position{
	"QB":            QB,
	"QUARTERBACK":   QB,
	"RB":            RB,
	"RUNNINGBACK":   RB,
	"RUNNING BACK":  RB,
	"HB":            RB,
	"FB":            RB,
	"WR":            WR,
	"WIDERECEIVER":  WR,
	"WIDE RECEIVER": WR,
	"TE":            TE,
	"TIGHTEND":      TE,
	"TIGHT END":     TE,
	"DST":           DST,
	"D/ST":          DST,
	"D":             DST,
	"DEF":           DST,
	"DEFENSE":       DST,
}

// NormalizePosition maps a free-text position label onto the fixed
// position enumeration. The match is case-insensitive and tolerates
// surrounding whitespace.
func NormalizePosition(label string) (Position, error) {
	key := strings.ToUpper(strings.TrimSpace(label))
	if pos, ok := positionAliases[key]; ok {
		return pos, nil
	}
	return "", fmt.Errorf("%w: unrecognized position %q", ErrInvalidDataset, label)
}

// IsFlexEligible reports whether a position may be promoted to FLEX.
func (p Position) IsFlexEligible() bool {
	for _, fp := range FlexEligible {
		if p == fp {
			return true
		}
	}
	return false
}
