package tabular

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/core/ports/driven"
	"github.com/custodia-labs/pew/internal/logger"
)

// File names inside the data directory.
const (
	FeastsFile = "feasts.csv"
	HymnsFile  = "neh.csv"
)

// Table names used in schema errors.
const (
	feastsTable = "feasts"
	hymnsTable  = "neh"
)

// Ensure Loader implements the interface.
var _ driven.TableLoader = (*Loader)(nil)

// Loader reads the reference tables from a directory of CSV files.
type Loader struct {
	dir string
}

// NewLoader creates a loader for the given data directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Dir returns the data directory.
func (l *Loader) Dir() string {
	return l.dir
}

// LoadTables reads and validates both tables.
func (l *Loader) LoadTables(ctx context.Context) (*domain.Tables, error) {
	feastRows, err := l.readTable(ctx, FeastsFile, feastsTable, domain.FeastColumns)
	if err != nil {
		return nil, err
	}
	hymnRows, err := l.readTable(ctx, HymnsFile, hymnsTable, domain.HymnColumns)
	if err != nil {
		return nil, err
	}

	tables := &domain.Tables{
		Feasts: make([]domain.Feast, 0, len(feastRows)),
		Hymns:  make([]domain.HymnRow, 0, len(hymnRows)),
	}
	for i, row := range feastRows {
		feast, err := domain.FeastFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", FeastsFile, i+2, err)
		}
		tables.Feasts = append(tables.Feasts, feast)
	}
	for i, row := range hymnRows {
		hymn, err := domain.HymnRowFromCells(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", HymnsFile, i+2, err)
		}
		tables.Hymns = append(tables.Hymns, hymn)
	}

	logger.Debug("loaded %d feasts and %d hymns from %s", len(tables.Feasts), len(tables.Hymns), l.dir)
	return tables, nil
}

// readTable returns the data rows of file after checking its header.
func (l *Loader) readTable(ctx context.Context, file, table string, columns []string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(l.dir, file)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return ReadTable(f, table, columns)
}

// ReadTable parses CSV from r, checks that the header equals columns and
// returns the remaining rows. Every row must have len(columns) cells.
func ReadTable(r io.Reader, table string, columns []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &domain.SchemaError{Table: table, Want: columns}
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s header: %w", table, err)
	}
	if len(header) > 0 {
		header[0] = trimBOM(header[0])
	}
	if !slices.Equal(header, columns) {
		return nil, &domain.SchemaError{Table: table, Want: columns, Got: header}
	}

	var rows [][]string
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", table, err)
		}
		if len(row) != len(columns) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%s line %d: %w: want %d cells, got %d",
				table, line, domain.ErrInvalidInput, len(columns), len(row))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// trimBOM strips a UTF-8 byte order mark written by spreadsheet exports.
func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
