// Package memory provides a TransactionReader over tables held in memory.
package memory

import (
	"context"

	"bankreport/internal/core"
	"bankreport/internal/sources"
)

// Store is an immutable set of transaction tables.
type Store struct {
	tables map[core.Table][]core.Transaction
}

var _ sources.TransactionReader = (*Store)(nil)

// New copies both tables into a new store.
func New(deposits, withdrawals []core.Transaction) *Store {
	return &Store{tables: map[core.Table][]core.Transaction{
		core.Deposits:    append([]core.Transaction(nil), deposits...),
		core.Withdrawals: append([]core.Transaction(nil), withdrawals...),
	}}
}

// ReadTable returns a copy of the table rows.
func (s *Store) ReadTable(_ context.Context, table core.Table) ([]core.Transaction, error) {
	if !table.IsValid() {
		return nil, &core.InputNotFoundError{Table: table, Path: "memory:" + table.String()}
	}
	return append([]core.Transaction{}, s.tables[table]...), nil
}
