// Package enginetest holds behaviour tests shared by every engine.Engine.
package enginetest

import (
	"context"
	"reflect"
	"sort"
	"testing"

	"bankreport/internal/core"
	"bankreport/internal/engine"
)

// Factory builds a fresh engine for a single subtest.
type Factory func(t *testing.T) engine.Engine

func tx(person, account string, amount int64) core.Transaction {
	return core.Transaction{Person: person, Account: account, Amount: amount}
}

// Run exercises the engine against the report query properties.
func Run(t *testing.T, newEngine Factory) {
	t.Run("TopWithdrawers", func(t *testing.T) { testTopWithdrawers(t, newEngine) })
	t.Run("NegativeBalanceAccounts", func(t *testing.T) { testNegativeBalanceAccounts(t, newEngine) })
	t.Run("Idempotent", func(t *testing.T) { testIdempotent(t, newEngine) })
}

func testTopWithdrawers(t *testing.T, newEngine Factory) {
	tests := []struct {
		name        string
		withdrawals []core.Transaction
		want        []core.PersonTotal
	}{
		{
			name:        "empty input",
			withdrawals: nil,
			want:        []core.PersonTotal{},
		},
		{
			name:        "ties included",
			withdrawals: []core.Transaction{tx("A", "x", 50), tx("B", "y", 50), tx("C", "z", 30)},
			want:        []core.PersonTotal{{Person: "A", Total: 50}, {Person: "B", Total: 50}},
		},
		{
			name:        "sums across accounts",
			withdrawals: []core.Transaction{tx("A", "x", 20), tx("A", "y", 40), tx("B", "y", 50)},
			want:        []core.PersonTotal{{Person: "A", Total: 60}},
		},
		{
			name:        "all zero",
			withdrawals: []core.Transaction{tx("A", "x", 0), tx("B", "y", 0)},
			want:        []core.PersonTotal{{Person: "A", Total: 0}, {Person: "B", Total: 0}},
		},
		{
			name:        "negative totals",
			withdrawals: []core.Transaction{tx("A", "x", -10), tx("B", "y", -3)},
			want:        []core.PersonTotal{{Person: "B", Total: -3}},
		},
		{
			name:        "wide sums",
			withdrawals: []core.Transaction{tx("A", "x", 2147483647), tx("A", "x", 2147483647), tx("B", "y", 1)},
			want:        []core.PersonTotal{{Person: "A", Total: 4294967294}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newEngine(t).TopWithdrawers(context.Background(), tt.withdrawals)
			if err != nil {
				t.Fatalf("TopWithdrawers() error = %v", err)
			}
			if got == nil {
				t.Fatal("TopWithdrawers() returned nil slice")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TopWithdrawers() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func testNegativeBalanceAccounts(t *testing.T, newEngine Factory) {
	tests := []struct {
		name        string
		deposits    []core.Transaction
		withdrawals []core.Transaction
		want        []core.AccountBalance
	}{
		{
			name:     "deposit only account excluded",
			deposits: []core.Transaction{tx("p", "acc1", 100)},
			want:     []core.AccountBalance{},
		},
		{
			name:        "withdrawals without deposits included",
			withdrawals: []core.Transaction{tx("p", "acc2", 40)},
			want:        []core.AccountBalance{{Account: "acc2", Withdrawals: 40}},
		},
		{
			name:        "withdrawals exceed deposits",
			deposits:    []core.Transaction{tx("p", "acc3", 30)},
			withdrawals: []core.Transaction{tx("p", "acc3", 50)},
			want:        []core.AccountBalance{{Account: "acc3", Withdrawals: 50, Deposits: 30, HasDeposits: true}},
		},
		{
			name:        "deposits exceed withdrawals",
			deposits:    []core.Transaction{tx("p", "acc3", 50)},
			withdrawals: []core.Transaction{tx("p", "acc3", 30)},
			want:        []core.AccountBalance{},
		},
		{
			name:        "equal sums excluded",
			deposits:    []core.Transaction{tx("p", "acc4", 20), tx("q", "acc4", 10)},
			withdrawals: []core.Transaction{tx("p", "acc4", 30)},
			want:        []core.AccountBalance{},
		},
		{
			name:        "zero withdrawals without deposits excluded",
			withdrawals: []core.Transaction{tx("p", "acc5", 0)},
			want:        []core.AccountBalance{},
		},
		{
			name:        "blank account never joins deposits",
			deposits:    []core.Transaction{tx("ann", "", 100)},
			withdrawals: []core.Transaction{tx("bob", "", 50)},
			want:        []core.AccountBalance{{Account: "", Withdrawals: 50}},
		},
		{
			name:        "blank account with zero withdrawals excluded",
			deposits:    []core.Transaction{tx("ann", "", 100)},
			withdrawals: []core.Transaction{tx("bob", "", 0)},
			want:        []core.AccountBalance{},
		},
		{
			name: "mixed",
			deposits: []core.Transaction{
				tx("a", "acc1", 100), tx("b", "acc2", 10), tx("c", "acc3", 5), tx("d", "acc9", 1000),
			},
			withdrawals: []core.Transaction{
				tx("a", "acc1", 60), tx("a", "acc1", 60), tx("b", "acc2", 10), tx("e", "acc7", 1),
			},
			want: []core.AccountBalance{
				{Account: "acc1", Withdrawals: 120, Deposits: 100, HasDeposits: true},
				{Account: "acc7", Withdrawals: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newEngine(t).NegativeBalanceAccounts(context.Background(), tt.deposits, tt.withdrawals)
			if err != nil {
				t.Fatalf("NegativeBalanceAccounts() error = %v", err)
			}
			if got == nil {
				t.Fatal("NegativeBalanceAccounts() returned nil slice")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NegativeBalanceAccounts() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func testIdempotent(t *testing.T, newEngine Factory) {
	deposits := []core.Transaction{tx("a", "acc1", 10), tx("b", "acc2", 70)}
	withdrawals := []core.Transaction{tx("a", "acc1", 25), tx("b", "acc2", 70), tx("c", "acc3", 25)}
	e := newEngine(t)
	ctx := context.Background()

	var firstTop, secondTop []core.PersonTotal
	var firstNeg, secondNeg []core.AccountBalance
	for i := 0; i < 2; i++ {
		top, err := e.TopWithdrawers(ctx, withdrawals)
		if err != nil {
			t.Fatalf("run %d: TopWithdrawers() error = %v", i, err)
		}
		neg, err := e.NegativeBalanceAccounts(ctx, deposits, withdrawals)
		if err != nil {
			t.Fatalf("run %d: NegativeBalanceAccounts() error = %v", i, err)
		}
		if i == 0 {
			firstTop, firstNeg = top, neg
		} else {
			secondTop, secondNeg = top, neg
		}
	}
	sort.Slice(secondTop, func(i, j int) bool { return secondTop[i].Person < secondTop[j].Person })
	if !reflect.DeepEqual(firstTop, secondTop) || !reflect.DeepEqual(firstNeg, secondNeg) {
		t.Fatalf("results differ between runs: %v/%v vs %v/%v", firstTop, firstNeg, secondTop, secondNeg)
	}
	if len(deposits) != 2 || deposits[0].Amount != 10 || withdrawals[2].Account != "acc3" {
		t.Fatal("inputs were mutated")
	}
}
