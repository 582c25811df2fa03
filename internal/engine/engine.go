// Package engine implements the aggregation queries over transaction tables.
package engine

import (
	"context"
	"sort"

	"bankreport/internal/core"
)

// Engine runs the two report queries. Implementations must not mutate their inputs.
type Engine interface {
	// TopWithdrawers returns every person whose total withdrawals equal the maximum.
	TopWithdrawers(ctx context.Context, withdrawals []core.Transaction) ([]core.PersonTotal, error)

	// NegativeBalanceAccounts returns the accounts whose withdrawals exceed their deposits.
	NegativeBalanceAccounts(ctx context.Context, deposits, withdrawals []core.Transaction) ([]core.AccountBalance, error)
}

// KeyFunc selects the grouping column of a transaction.
type KeyFunc func(core.Transaction) string

// ByPerson groups by the person column.
func ByPerson(t core.Transaction) string { return t.Person }

// ByAccount groups by the account column.
func ByAccount(t core.Transaction) string { return t.Account }

// GroupSum partitions records by key and sums their amounts.
func GroupSum(records []core.Transaction, key KeyFunc) map[string]int64 {
	sums := make(map[string]int64)
	for _, r := range records {
		sums[key(r)] += r.Amount
	}
	return sums
}

// Memory is the in-memory Engine.
type Memory struct{}

var _ Engine = Memory{}

// NewMemory returns the in-memory engine. It holds no state.
func NewMemory() Memory {
	return Memory{}
}

// TopWithdrawers groups withdrawals by person and keeps every group whose
// total equals the maximum. Results are sorted by person.
func (Memory) TopWithdrawers(ctx context.Context, withdrawals []core.Transaction) ([]core.PersonTotal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	totals := GroupSum(withdrawals, ByPerson)
	if len(totals) == 0 {
		return []core.PersonTotal{}, nil
	}

	first := true
	var max int64
	for _, total := range totals {
		if first || total > max {
			max = total
			first = false
		}
	}

	out := make([]core.PersonTotal, 0, 1)
	for person, total := range totals {
		if total == max {
			out = append(out, core.PersonTotal{Person: person, Total: total})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Person < out[j].Person })
	return out, nil
}

// NegativeBalanceAccounts left-joins withdrawal totals to deposit totals by
// account and keeps the rows whose balance is negative. A blank account
// never matches a deposit group, the same as a null join key. Results are
// sorted by account.
func (Memory) NegativeBalanceAccounts(ctx context.Context, deposits, withdrawals []core.Transaction) ([]core.AccountBalance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	totalWithdrawals := GroupSum(withdrawals, ByAccount)
	totalDeposits := GroupSum(deposits, ByAccount)

	out := make([]core.AccountBalance, 0)
	// Left-outer join: only accounts with withdrawals are candidates.
	for account, w := range totalWithdrawals {
		row := core.AccountBalance{Account: account, Withdrawals: w}
		if d, ok := totalDeposits[account]; ok && account != "" {
			row.Deposits = d
			row.HasDeposits = true
		}
		if row.Negative() {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Account < out[j].Account })
	return out, nil
}
