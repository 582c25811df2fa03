package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Deposits    Table = "deposits"
	Withdrawals Table = "withdrawals"
)

type (
	// Table names one of the two input transaction tables.
	Table string

	Transaction struct {
		Person  string
		Account string
		Amount  int64
	}

	// PersonTotal is a withdrawal total grouped by person.
	PersonTotal struct {
		Person string
		Total  int64
	}

	// AccountBalance is a grouped withdrawal total joined with the matching
	// deposit total. HasDeposits is false when the account has no deposit rows.
	AccountBalance struct {
		Account     string
		Withdrawals int64
		Deposits    int64
		HasDeposits bool
	}

	Report struct {
		TopWithdrawers   []PersonTotal
		NegativeAccounts []AccountBalance
		DepositRows      int
		WithdrawalRows   int
		GeneratedAt      time.Time
	}
)

// String implements fmt.Stringer
func (t Table) String() string {
	return string(t)
}

// FileName returns the CSV file name holding the table.
func (t Table) FileName() string {
	return string(t) + ".csv"
}

// IsValid returns true if the table is one of the known input tables
func (t Table) IsValid() bool {
	switch t {
	case Deposits, Withdrawals:
		return true
	default:
		return false
	}
}

// Tables returns the input tables in load order.
func Tables() []Table {
	return []Table{Deposits, Withdrawals}
}

// Negative reports whether the account balance is negative under the
// left-outer rule: no deposits and positive withdrawals, or withdrawals
// strictly greater than deposits.
func (b AccountBalance) Negative() bool {
	if !b.HasDeposits {
		return b.Withdrawals > 0
	}
	return b.Withdrawals > b.Deposits
}

// Balance returns deposits minus withdrawals, treating missing deposits as zero.
func (b AccountBalance) Balance() int64 {
	return b.Deposits - b.Withdrawals
}

// MaxWithdrawal returns the tied maximum total, or false when Q1 was empty.
func (r Report) MaxWithdrawal() (int64, bool) {
	if len(r.TopWithdrawers) == 0 {
		return 0, false
	}
	return r.TopWithdrawers[0].Total, true
}

var (
	ErrInputNotFound = errors.New("input not found")
	ErrParse         = errors.New("parse error")
)

// InputNotFoundError reports a missing input table.
type InputNotFoundError struct {
	Table Table
	Path  string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s table not found at %s", ErrInputNotFound, e.Table, e.Path)
}

func (e *InputNotFoundError) Is(target error) bool {
	return target == ErrInputNotFound
}

// ParseError reports a malformed input row. Line is 1-based.
type ParseError struct {
	Source string
	Line   int
	Record []string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s: %s line %d [%s]: %s", ErrParse, e.Source, e.Line, strings.Join(e.Record, ","), e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
