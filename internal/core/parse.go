// Package core provides the transaction domain types and row parsing.
//
// This file contains the shared rules for turning a raw three-field record
// (person, account, amount) into a Transaction, used by every input source.
package core

import (
	"strconv"
	"strings"
)

// FieldsPerRecord is the number of columns of an input row.
const FieldsPerRecord = 3

// ParseRecord converts a raw record into a Transaction.
//
// Fields are trimmed. Person and account may be empty; the amount must be a
// base-10 integer that fits in 32 bits, as the input schema declares an
// integer column. Totals are always computed in 64 bits.
//
// Examples:
//
//	ParseRecord("d.csv", 1, []string{"ann", "acc1", "100"}) -> {ann acc1 100}, nil
//	ParseRecord("d.csv", 2, []string{"ann", "acc1"})        -> ParseError (column count)
//	ParseRecord("d.csv", 3, []string{"ann", "acc1", "1.5"}) -> ParseError (amount)
func ParseRecord(source string, line int, record []string) (Transaction, error) {
	if len(record) != FieldsPerRecord {
		return Transaction{}, &ParseError{
			Source: source,
			Line:   line,
			Record: record,
			Reason: "expected " + strconv.Itoa(FieldsPerRecord) + " fields, got " + strconv.Itoa(len(record)),
		}
	}
	amountStr := strings.TrimSpace(record[2])
	amount, err := strconv.ParseInt(amountStr, 10, 32)
	if err != nil {
		return Transaction{}, &ParseError{
			Source: source,
			Line:   line,
			Record: record,
			Reason: "invalid amount " + strconv.Quote(amountStr),
			Err:    err,
		}
	}
	return Transaction{
		Person:  strings.TrimSpace(record[0]),
		Account: strings.TrimSpace(record[1]),
		Amount:  amount,
	}, nil
}

// IsBlank reports whether a record carries no data at all.
func IsBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
