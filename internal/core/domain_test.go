package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestAccountBalanceNegative(t *testing.T) {
	tests := []struct {
		name string
		b    AccountBalance
		want bool
	}{
		{"no deposits positive withdrawals", AccountBalance{Account: "a", Withdrawals: 40}, true},
		{"no deposits zero withdrawals", AccountBalance{Account: "a"}, false},
		{"no deposits negative withdrawals", AccountBalance{Account: "a", Withdrawals: -5}, false},
		{"withdrawals exceed deposits", AccountBalance{Account: "a", Withdrawals: 50, Deposits: 30, HasDeposits: true}, true},
		{"deposits exceed withdrawals", AccountBalance{Account: "a", Withdrawals: 30, Deposits: 50, HasDeposits: true}, false},
		{"equal sums", AccountBalance{Account: "a", Withdrawals: 30, Deposits: 30, HasDeposits: true}, false},
		{"zero deposits present", AccountBalance{Account: "a", Withdrawals: 1, Deposits: 0, HasDeposits: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.Negative(); got != tt.want {
				t.Errorf("Negative() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTable(t *testing.T) {
	if Deposits.FileName() != "deposits.csv" || Withdrawals.FileName() != "withdrawals.csv" {
		t.Fatalf("unexpected file names: %s %s", Deposits.FileName(), Withdrawals.FileName())
	}
	if Table("loans").IsValid() {
		t.Fatal("unexpected valid table")
	}
	if len(Tables()) != 2 {
		t.Fatalf("expected two tables, got %v", Tables())
	}
}

func TestInputNotFoundError(t *testing.T) {
	err := fmt.Errorf("load: %w", &InputNotFoundError{Table: Deposits, Path: "/x/deposits.csv"})
	if !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
	if errors.Is(err, ErrParse) {
		t.Fatal("did not expect ErrParse")
	}
}

func TestReportMaxWithdrawal(t *testing.T) {
	if _, ok := (Report{}).MaxWithdrawal(); ok {
		t.Fatal("expected no maximum for empty report")
	}
	r := Report{TopWithdrawers: []PersonTotal{{"A", 50}, {"B", 50}}}
	if max, ok := r.MaxWithdrawal(); !ok || max != 50 {
		t.Fatalf("unexpected max: %d %v", max, ok)
	}
}
