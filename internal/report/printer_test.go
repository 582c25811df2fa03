package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"bankreport/internal/core"
)

func TestPrintTopWithdrawers(t *testing.T) {
	var buf bytes.Buffer
	err := NewPrinter(&buf).PrintTopWithdrawers([]core.PersonTotal{
		{Person: "A", Total: 50},
		{Person: "Bob", Total: 50},
	})
	if err != nil {
		t.Fatalf("PrintTopWithdrawers() error = %v", err)
	}
	want := "" +
		"+--------+-------------+\n" +
		"| person | sum(amount) |\n" +
		"+--------+-------------+\n" +
		"|      A |          50 |\n" +
		"|    Bob |          50 |\n" +
		"+--------+-------------+\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrintTopWithdrawersEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf).PrintTopWithdrawers(nil); err != nil {
		t.Fatalf("PrintTopWithdrawers() error = %v", err)
	}
	if !strings.Contains(buf.String(), "| person | sum(amount) |") || !strings.HasSuffix(buf.String(), "(no withdrawals)\n") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestPrintNegativeAccounts(t *testing.T) {
	var buf bytes.Buffer
	err := NewPrinter(&buf).PrintNegativeAccounts([]core.AccountBalance{
		{Account: "acc2", Withdrawals: 40},
		{Account: "acc3", Withdrawals: 50, Deposits: 30, HasDeposits: true},
	})
	if err != nil {
		t.Fatalf("PrintNegativeAccounts() error = %v", err)
	}
	want := "" +
		"+---------+-------------+----------+\n" +
		"| account | withdrawals | deposits |\n" +
		"+---------+-------------+----------+\n" +
		"|    acc2 |          40 |     null |\n" +
		"|    acc3 |          50 |       30 |\n" +
		"+---------+-------------+----------+\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrintBlankKeysAsNull(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	if err := p.PrintTopWithdrawers([]core.PersonTotal{{Person: "", Total: 7}}); err != nil {
		t.Fatalf("PrintTopWithdrawers() error = %v", err)
	}
	if err := p.PrintNegativeAccounts([]core.AccountBalance{{Account: "", Withdrawals: 50}}); err != nil {
		t.Fatalf("PrintNegativeAccounts() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "|   null |           7 |") {
		t.Errorf("blank person should print as null:\n%s", out)
	}
	if !strings.Contains(out, "|    null |          50 |     null |") {
		t.Errorf("blank account should print as null:\n%s", out)
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	r := core.Report{
		TopWithdrawers:   []core.PersonTotal{{Person: "A", Total: 1}},
		NegativeAccounts: []core.AccountBalance{},
	}
	if err := NewPrinter(&buf).Print(r); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	out := buf.String()
	if strings.Index(out, "person") > strings.Index(out, "account") {
		t.Errorf("top withdrawers should print first:\n%s", out)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPrintWriteError(t *testing.T) {
	if err := NewPrinter(failingWriter{}).Print(core.Report{}); err == nil {
		t.Fatal("expected write error")
	}
	err := NewPrinter(failingWriter{}).PrintNegativeAccounts([]core.AccountBalance{{Account: "a", Withdrawals: 1}})
	if err == nil {
		t.Fatal("expected table write error")
	}
}
