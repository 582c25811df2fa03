// Package csvfile reads the transaction tables from headerless CSV files laid
// out as <base>/files/bank/{deposits,withdrawals}.csv.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"bankreport/internal/core"
	applog "bankreport/internal/log"
	"bankreport/internal/sources"
)

// DataDir is the directory under the base path holding the CSV files.
var DataDir = filepath.Join("files", "bank")

type Store struct {
	base string
}

var _ sources.TransactionReader = (*Store)(nil)

func New(base string) *Store {
	if base == "" {
		base = "."
	}
	return &Store{base: base}
}

// Path returns the resolved file path of a table.
func (s *Store) Path(table core.Table) string {
	return filepath.Join(s.base, DataDir, table.FileName())
}

// ReadTable loads every row of the table, stopping at the first malformed row.
func (s *Store) ReadTable(ctx context.Context, table core.Table) ([]core.Transaction, error) {
	path := s.Path(table)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &core.InputNotFoundError{Table: table, Path: path}
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := Parse(ctx, path, f)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "Loaded CSV table",
		applog.FieldComponent, applog.ComponentSource,
		applog.FieldTable, table.String(),
		applog.FieldPath, path,
		applog.FieldRows, len(rows))

	return rows, nil
}

// Parse decodes headerless person,account,amount records from r.
// Empty lines are skipped by the CSV reader.
func Parse(ctx context.Context, source string, r io.Reader) ([]core.Transaction, error) {
	reader := csv.NewReader(r)
	reader.Comma = ','
	// Column count is checked per record so the error names the row.
	reader.FieldsPerRecord = -1

	out := make([]core.Transaction, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &core.ParseError{
					Source: source,
					Line:   csvErr.Line,
					Record: record,
					Reason: "malformed csv",
					Err:    csvErr.Err,
				}
			}
			return nil, fmt.Errorf("read %s: %w", source, err)
		}

		line, _ := reader.FieldPos(0)
		if core.IsBlank(record) {
			continue
		}
		t, err := core.ParseRecord(source, line, record)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
