package optimizer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/types"
)

// LineupPlayer is one player of an optimized lineup. Role equals the raw
// position except for the single FLEX promotion.
type LineupPlayer struct {
	ID       string         `json:"id,omitempty"`
	Name     string         `json:"name"`
	Position types.Position `json:"position"`
	Role     types.Position `json:"lineup_position"`
	Team     string         `json:"team"`
	Opponent string         `json:"opponent"`
	Points   float64        `json:"points"`
	Salary   int            `json:"salary"`
	Kickoff  time.Time      `json:"datetime"`
}

// OptimizedLineup is a detached, immutable snapshot of one successful
// optimization: the selected players with resolved roles plus totals.
type OptimizedLineup struct {
	ID      uuid.UUID      `json:"id"`
	Site    string         `json:"site"`
	Points  float64        `json:"points"`
	Salary  int            `json:"salary"`
	Players []LineupPlayer `json:"players"`
}

// newOptimizedLineup builds the lineup snapshot from the selected pool
// rows, in pool row order, and resolves the flex role.
func newOptimizedLineup(site Site, selected []types.Player) *OptimizedLineup {
	lineup := &OptimizedLineup{
		ID:      uuid.New(),
		Site:    site.Name(),
		Players: make([]LineupPlayer, 0, len(selected)),
	}
	points := 0.0
	for _, p := range selected {
		lineup.Players = append(lineup.Players, LineupPlayer{
			ID:       p.ID,
			Name:     p.Name,
			Position: p.Position,
			Role:     p.Position,
			Team:     p.Team,
			Opponent: p.Opponent,
			Points:   p.Projected,
			Salary:   p.Salary,
			Kickoff:  p.Kickoff,
		})
		points += p.Projected
		lineup.Salary += p.Salary
	}
	lineup.Points = round2(points)
	lineup.resolveFlex(site.PositionRanges())
	return lineup
}

// resolveFlex walks the flex-eligible positions in priority order. The
// first position whose selected count equals its declared maximum has its
// latest-kickoff player promoted to FLEX, and the search stops there. When
// no position is saturated, no player is promoted.
func (l *OptimizedLineup) resolveFlex(ranges map[types.Position]types.Range) {
	counts := make(map[types.Position]int, len(l.Players))
	for _, p := range l.Players {
		counts[p.Position]++
	}
	for _, pos := range types.FlexEligible {
		r, ok := ranges[pos]
		if !ok || counts[pos] != r.Max {
			continue
		}
		flex := -1
		for i, p := range l.Players {
			if p.Position != pos {
				continue
			}
			// on equal kickoffs the later row wins, keeping the
			// promotion stable for a given selection order
			if flex < 0 || !p.Kickoff.Before(l.Players[flex].Kickoff) {
				flex = i
			}
		}
		if flex >= 0 {
			l.Players[flex].Role = types.FLEX
		}
		return
	}
}

// recordColumns is the flat per-player record layout used for persistence.
var recordColumns = []string{"site", "name", "position", "lineup_position", "team", "opponent", "points", "salary", "datetime"}

// RecordColumns returns the header of the flat record layout.
func RecordColumns() []string {
	out := make([]string, len(recordColumns))
	copy(out, recordColumns)
	return out
}

// Records flattens the lineup into one record per player, suitable for the
// CSV output collaborator.
func (l *OptimizedLineup) Records() [][]string {
	rows := make([][]string, 0, len(l.Players))
	for _, p := range l.Players {
		rows = append(rows, []string{
			l.Site,
			p.Name,
			string(p.Position),
			string(p.Role),
			p.Team,
			p.Opponent,
			strconv.FormatFloat(p.Points, 'f', -1, 64),
			strconv.Itoa(p.Salary),
			p.Kickoff.Format(time.RFC3339),
		})
	}
	return rows
}

// LineupFromRecords rebuilds a lineup snapshot from flat records, the
// inverse of Records. Totals are recomputed from the rows.
func LineupFromRecords(rows [][]string) (*OptimizedLineup, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no lineup records", types.ErrInvalidArgument)
	}
	lineup := &OptimizedLineup{ID: uuid.New()}
	points := 0.0
	for _, row := range rows {
		if len(row) != len(recordColumns) {
			return nil, fmt.Errorf("%w: lineup record has %d fields, want %d", types.ErrInvalidArgument, len(row), len(recordColumns))
		}
		pts, err := strconv.ParseFloat(row[6], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad points value %q", types.ErrInvalidArgument, row[6])
		}
		salary, err := strconv.Atoi(row[7])
		if err != nil {
			return nil, fmt.Errorf("%w: bad salary value %q", types.ErrInvalidArgument, row[7])
		}
		kickoff, err := time.Parse(time.RFC3339, row[8])
		if err != nil {
			return nil, fmt.Errorf("%w: bad kickoff value %q", types.ErrInvalidArgument, row[8])
		}
		lineup.Site = row[0]
		lineup.Players = append(lineup.Players, LineupPlayer{
			Name:     row[1],
			Position: types.Position(row[2]),
			Role:     types.Position(row[3]),
			Team:     row[4],
			Opponent: row[5],
			Points:   pts,
			Salary:   salary,
			Kickoff:  kickoff,
		})
		points += pts
		lineup.Salary += salary
	}
	lineup.Points = round2(points)
	return lineup, nil
}

func (l *OptimizedLineup) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Optimized %s Lineup\n", l.Site)
	fmt.Fprintf(&b, "%.2f points @ %d salary\n", l.Points, l.Salary)
	for _, p := range l.Players {
		fmt.Fprintf(&b, "%s %s - %s - %.2f @ %d\n", p.Role, p.Name, p.Team, p.Points, p.Salary)
	}
	return b.String()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
