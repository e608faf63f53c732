package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/types"
)

// LoadCSV reads a header-first CSV file into a Table.
func LoadCSV(path string) (Table, error) {
	if strings.ToLower(filepath.Ext(path)) != ".csv" {
		return Table{}, fmt.Errorf("%w: only csv input is supported, found %q", types.ErrInvalidArgument, filepath.Ext(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows surface as missing values later
	records, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read dataset: %w", err)
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("%w: dataset %q has no header row", types.ErrInvalidDataset, path)
	}
	return Table{Columns: records[0], Rows: records[1:]}, nil
}

// AppendCSV appends rows to a CSV file, creating it (with the header) when
// it does not yet exist. An existing file is assumed to already carry the
// header, matching repeated lineup exports into one sheet.
func AppendCSV(path string, header []string, rows [][]string) error {
	if path == "" {
		return fmt.Errorf("%w: output path must not be empty", types.ErrInvalidArgument)
	}
	if strings.ToLower(filepath.Ext(path)) != ".csv" {
		return fmt.Errorf("%w: only csv output is supported, found %q", types.ErrInvalidArgument, filepath.Ext(path))
	}

	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
