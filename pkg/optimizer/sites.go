package optimizer

import "github.com/sullivanja92/dfs-lineup-optimizer/pkg/types"

// Site supplies the per-site roster profile the engine optimizes against.
// These four hooks are the only thing a new fantasy site must provide.
type Site interface {
	Name() string
	NumPlayers() int
	SalaryCap() int
	PositionRanges() map[types.Position]types.Range
}

// DraftKings is the NFL classic contest profile for DraftKings.
type DraftKings struct{}

func (DraftKings) Name() string    { return "DraftKings" }
func (DraftKings) NumPlayers() int { return 9 }
func (DraftKings) SalaryCap() int  { return 50000 }

func (DraftKings) PositionRanges() map[types.Position]types.Range {
	return map[types.Position]types.Range{
		types.QB:  {Min: 1, Max: 1},
		types.RB:  {Min: 2, Max: 3},
		types.WR:  {Min: 3, Max: 4},
		types.TE:  {Min: 1, Max: 2},
		types.DST: {Min: 1, Max: 1},
	}
}

// FanDuel is the NFL full-roster contest profile for FanDuel.
type FanDuel struct{}

func (FanDuel) Name() string    { return "FanDuel" }
func (FanDuel) NumPlayers() int { return 9 }
func (FanDuel) SalaryCap() int  { return 60000 }

func (FanDuel) PositionRanges() map[types.Position]types.Range {
	return map[types.Position]types.Range{
		types.QB:  {Min: 1, Max: 1},
		types.RB:  {Min: 2, Max: 3},
		types.WR:  {Min: 3, Max: 4},
		types.TE:  {Min: 1, Max: 2},
		types.DST: {Min: 1, Max: 1},
	}
}

// SiteByName resolves a configured site name onto its profile.
func SiteByName(name string) (Site, bool) {
	switch name {
	case "draftkings", "DraftKings":
		return DraftKings{}, true
	case "fanduel", "FanDuel":
		return FanDuel{}, true
	}
	return nil, false
}
