// Package sqlengine runs the report queries as SQL on a private in-memory
// SQLite database. Each query loads its inputs inside a transaction that is
// rolled back afterwards, so the database is empty between calls.
package sqlengine

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"bankreport/internal/core"
	"bankreport/internal/engine"

	_ "modernc.org/sqlite"
)

const (
	insertDepositSQL    = `INSERT INTO deposits (person, account, amount) VALUES (?, ?, ?)`
	insertWithdrawalSQL = `INSERT INTO withdrawals (person, account, amount) VALUES (?, ?, ?)`

	topWithdrawersSQL = `
WITH sum_withdrawals AS (
    SELECT person, SUM(amount) AS total
    FROM withdrawals
    GROUP BY person
)
SELECT person, total
FROM sum_withdrawals
WHERE total = (SELECT MAX(total) FROM sum_withdrawals)
ORDER BY person`

	negativeBalanceAccountsSQL = `
WITH total_withdrawals AS (
    SELECT account, SUM(amount) AS total
    FROM withdrawals
    GROUP BY account
), total_deposits AS (
    SELECT account, SUM(amount) AS total
    FROM deposits
    GROUP BY account
)
SELECT w.account, w.total, d.total
FROM total_withdrawals w
LEFT OUTER JOIN total_deposits d ON d.account = w.account AND w.account <> ''
WHERE (d.total IS NULL AND w.total > 0) OR w.total > d.total
ORDER BY w.account`
)

type Engine struct {
	db *sql.DB
}

var _ engine.Engine = (*Engine)(nil)

// New opens an in-memory database and applies the schema.
func New(ctx context.Context) (*Engine, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// Every connection to :memory: is a different database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Engine{db: db}, nil
}

func (e *Engine) Close() error {
	if e.db != nil {
		return e.db.Close()
	}
	return nil
}

func (e *Engine) TopWithdrawers(ctx context.Context, withdrawals []core.Transaction) ([]core.PersonTotal, error) {
	out := make([]core.PersonTotal, 0)
	err := e.withTables(ctx, nil, withdrawals, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, topWithdrawersSQL)
		if err != nil {
			return fmt.Errorf("query top withdrawers: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var row core.PersonTotal
			if err := rows.Scan(&row.Person, &row.Total); err != nil {
				return fmt.Errorf("scan top withdrawer: %w", err)
			}
			out = append(out, row)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine) NegativeBalanceAccounts(ctx context.Context, deposits, withdrawals []core.Transaction) ([]core.AccountBalance, error) {
	out := make([]core.AccountBalance, 0)
	err := e.withTables(ctx, deposits, withdrawals, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, negativeBalanceAccountsSQL)
		if err != nil {
			return fmt.Errorf("query negative balance accounts: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var row core.AccountBalance
			var deposits sql.NullInt64
			if err := rows.Scan(&row.Account, &row.Withdrawals, &deposits); err != nil {
				return fmt.Errorf("scan negative balance account: %w", err)
			}
			row.Deposits = deposits.Int64
			row.HasDeposits = deposits.Valid
			out = append(out, row)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// withTables loads both tables in a transaction, runs fn and rolls back.
func (e *Engine) withTables(ctx context.Context, deposits, withdrawals []core.Transaction, fn func(tx *sql.Tx) error) error {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertAll(ctx, tx, insertDepositSQL, deposits); err != nil {
		return fmt.Errorf("load deposits: %w", err)
	}
	if err := insertAll(ctx, tx, insertWithdrawalSQL, withdrawals); err != nil {
		return fmt.Errorf("load withdrawals: %w", err)
	}

	slog.DebugContext(ctx, "Loaded tables into sqlite",
		"deposits", len(deposits),
		"withdrawals", len(withdrawals))

	return fn(tx)
}

func insertAll(ctx context.Context, tx *sql.Tx, query string, records []core.Transaction) error {
	if len(records) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Person, r.Account, r.Amount); err != nil {
			return fmt.Errorf("insert %s/%s: %w", r.Person, r.Account, err)
		}
	}
	return nil
}
