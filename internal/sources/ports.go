package sources

import (
	"context"

	"bankreport/internal/core"
)

// Ports for inbound adapters.
type (
	// TransactionReader loads a whole input table.
	TransactionReader interface {
		// ReadTable returns every row of the table. A missing table is reported
		// as core.ErrInputNotFound and a malformed row as core.ErrParse.
		ReadTable(ctx context.Context, table core.Table) ([]core.Transaction, error)
	}
)
