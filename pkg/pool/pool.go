// Package pool turns a raw tabular dataset into the validated set of
// players eligible for optimization, and binds one binary decision
// variable to each surviving row.
package pool

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/dataset"
	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/lp"
	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/types"
)

// kickoff timestamps are accepted in a few common projection-sheet
// layouts; the zoneless ones are read as US-Eastern wall-clock times
var kickoffLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"1/2/2006 15:04",
}

// Pool is the normalized, validated player dataset of one optimizer
// session, plus the per-row decision variables of the current model.
type Pool struct {
	players []types.Player
	vars    []*lp.Variable
	hasID   bool
	log     logrus.FieldLogger
}

// Build validates the table against the mapping and assembles the pool.
// Missing mapped columns and duplicate ids fail with ErrInvalidDataset;
// rows with missing or unparseable required values are dropped.
func Build(t dataset.Table, m dataset.ColumnMapping, log logrus.FieldLogger) (*Pool, error) {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	for _, col := range m.Required() {
		if col == "" || !t.HasColumn(col) {
			return nil, fmt.Errorf("%w: dataset does not contain required column %q", types.ErrInvalidDataset, col)
		}
	}
	if m.ID != "" {
		if !t.HasColumn(m.ID) {
			return nil, fmt.Errorf("%w: dataset does not contain id column %q", types.ErrInvalidDataset, m.ID)
		}
		seen := make(map[string]bool, len(t.Rows))
		for _, row := range t.Rows {
			id := t.Cell(row, m.ID)
			if seen[id] {
				return nil, fmt.Errorf("%w: id column %q must be unique for each row", types.ErrInvalidDataset, m.ID)
			}
			seen[id] = true
		}
	}

	p := &Pool{hasID: m.ID != "", log: log}
	dropped := 0
	for i, row := range t.Rows {
		player, ok := parseRow(t, m, row)
		if !ok {
			dropped++
			log.WithFields(logrus.Fields{"row": i, "name": t.Cell(row, m.Name)}).
				Debug("Dropping row with missing or invalid values")
			continue
		}
		p.players = append(p.players, player)
	}
	if dropped > 0 {
		log.WithFields(logrus.Fields{"dropped": dropped, "kept": len(p.players)}).
			Info("Dropped incomplete dataset rows")
	}
	return p, nil
}

func parseRow(t dataset.Table, m dataset.ColumnMapping, row []string) (types.Player, bool) {
	player := types.Player{
		Name:     strings.TrimSpace(t.Cell(row, m.Name)),
		Team:     strings.TrimSpace(t.Cell(row, m.Team)),
		Opponent: strings.TrimSpace(t.Cell(row, m.Opponent)),
	}
	if player.Name == "" || player.Team == "" || player.Opponent == "" {
		return types.Player{}, false
	}
	if m.ID != "" {
		player.ID = strings.TrimSpace(t.Cell(row, m.ID))
		if player.ID == "" {
			return types.Player{}, false
		}
	}

	pos, err := types.NormalizePosition(t.Cell(row, m.Position))
	if err != nil {
		return types.Player{}, false
	}
	player.Position = pos

	salary, err := strconv.Atoi(strings.TrimSpace(t.Cell(row, m.Salary)))
	if err != nil || salary <= 0 {
		return types.Player{}, false
	}
	player.Salary = salary

	points, err := strconv.ParseFloat(strings.TrimSpace(t.Cell(row, m.Points)), 64)
	if err != nil {
		return types.Player{}, false
	}
	player.Projected = points

	kickoff, ok := parseKickoff(t.Cell(row, m.Kickoff))
	if !ok {
		return types.Player{}, false
	}
	player.Kickoff = kickoff
	return player, true
}

func parseKickoff(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, true
	}
	for _, layout := range kickoffLayouts {
		if ts, err := time.ParseInLocation(layout, raw, types.Eastern); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// BindVariables creates one fresh binary variable per player, keyed by
// position and row ordinal so duplicate names cannot collide. Any
// previously bound variables are discarded.
func (p *Pool) BindVariables(prob *lp.Problem) {
	p.vars = make([]*lp.Variable, len(p.players))
	for i, player := range p.players {
		p.vars[i] = prob.NewBinaryVar(fmt.Sprintf("%s_%d", player.Position, i))
	}
}

// Var returns the decision variable bound to row i, or nil before binding.
func (p *Pool) Var(i int) *lp.Variable {
	if p.vars == nil || i < 0 || i >= len(p.vars) {
		return nil
	}
	return p.vars[i]
}

// Len returns the number of surviving players.
func (p *Pool) Len() int {
	return len(p.players)
}

// Player returns the player at row i.
func (p *Pool) Player(i int) types.Player {
	return p.players[i]
}

// Players returns a copy of the surviving players in row order.
func (p *Pool) Players() []types.Player {
	out := make([]types.Player, len(p.players))
	copy(out, p.players)
	return out
}

// HasIDColumn reports whether the dataset declared a unique-id column.
func (p *Pool) HasIDColumn() bool {
	return p.hasID
}

// HasTeam reports whether any pool row belongs to the given team.
func (p *Pool) HasTeam(team string) bool {
	for _, player := range p.players {
		if player.Team == team {
			return true
		}
	}
	return false
}

// Teams returns the distinct team names present in the pool.
func (p *Pool) Teams() []string {
	seen := make(map[string]bool)
	teams := make([]string, 0)
	for _, player := range p.players {
		if !seen[player.Team] {
			seen[player.Team] = true
			teams = append(teams, player.Team)
		}
	}
	return teams
}

// HasPlayerID reports whether any pool row carries the given id.
func (p *Pool) HasPlayerID(id string) bool {
	for _, player := range p.players {
		if player.ID == id {
			return true
		}
	}
	return false
}

// PlayerByID returns the pool row carrying the given id.
func (p *Pool) PlayerByID(id string) (types.Player, bool) {
	for _, player := range p.players {
		if player.ID == id {
			return player, true
		}
	}
	return types.Player{}, false
}

// PlayerByName returns the first pool row carrying the given name.
func (p *Pool) PlayerByName(name string) (types.Player, bool) {
	for _, player := range p.players {
		if player.Name == name {
			return player, true
		}
	}
	return types.Player{}, false
}

// HasPlayerName reports whether any pool row carries the given name.
func (p *Pool) HasPlayerName(name string) bool {
	for _, player := range p.players {
		if player.Name == name {
			return true
		}
	}
	return false
}

// CountPosition returns how many pool rows play the given position.
func (p *Pool) CountPosition(pos types.Position) int {
	n := 0
	for _, player := range p.players {
		if player.Position == pos {
			n++
		}
	}
	return n
}
