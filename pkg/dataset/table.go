// Package dataset holds the tabular input contract of the optimizer: a
// generic column/row table plus the caller-declared mapping from column
// names to the semantic fields the engine needs. Column names are always
// declared explicitly, never inferred.
package dataset

// Table is an ordered, untyped tabular dataset. Cell parsing and
// validation belong to the pool, not here.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the index of the named column, or -1 when absent.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table declares the named column.
func (t Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the value of the named column in the given row, or "" when
// the column is absent or the row is ragged.
func (t Table) Cell(row []string, name string) string {
	i := t.ColumnIndex(name)
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// ColumnMapping declares which table columns carry each semantic field.
// ID is optional; all other fields are required.
type ColumnMapping struct {
	Name     string `mapstructure:"name"`
	Position string `mapstructure:"position"`
	Salary   string `mapstructure:"salary"`
	Points   string `mapstructure:"points"`
	Team     string `mapstructure:"team"`
	Opponent string `mapstructure:"opponent"`
	Kickoff  string `mapstructure:"kickoff"`
	ID       string `mapstructure:"id"`
}

// DefaultColumnMapping returns the conventional projection-sheet column
// names. No ID column is assumed.
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		Name:     "name",
		Position: "position",
		Salary:   "salary",
		Points:   "points",
		Team:     "team",
		Opponent: "opponent",
		Kickoff:  "datetime",
	}
}

// Required lists the mapped column names that must be present in a table.
func (m ColumnMapping) Required() []string {
	return []string{m.Name, m.Position, m.Salary, m.Points, m.Team, m.Opponent, m.Kickoff}
}
