// Package report renders report results as bordered text tables.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"bankreport/internal/core"
)

const nullCell = "null"

// Printer writes tables in the style of a dataframe show():
//
//	+--------+-------------+
//	| person | sum(amount) |
//	+--------+-------------+
//	|      A |          50 |
//	+--------+-------------+
//
// Blank keys and missing deposit totals print as null.
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes both result tables of the report.
func (p *Printer) Print(r core.Report) error {
	if err := p.PrintTopWithdrawers(r.TopWithdrawers); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(p.w); err != nil {
		return err
	}
	return p.PrintNegativeAccounts(r.NegativeAccounts)
}

func (p *Printer) PrintTopWithdrawers(rows []core.PersonTotal) error {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{keyCell(r.Person), strconv.FormatInt(r.Total, 10)})
	}
	if err := p.table([]string{"person", "sum(amount)"}, cells); err != nil {
		return err
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(p.w, "(no withdrawals)")
		return err
	}
	return nil
}

func (p *Printer) PrintNegativeAccounts(rows []core.AccountBalance) error {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		deposits := nullCell
		if r.HasDeposits {
			deposits = strconv.FormatInt(r.Deposits, 10)
		}
		cells = append(cells, []string{keyCell(r.Account), strconv.FormatInt(r.Withdrawals, 10), deposits})
	}
	return p.table([]string{"account", "withdrawals", "deposits"}, cells)
}

// table renders through an errWriter because tablewriter drops write errors.
func (p *Printer) table(header []string, rows [][]string) error {
	ew := &errWriter{w: p.w}

	t := tablewriter.NewWriter(ew)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetHeaderAlignment(tablewriter.ALIGN_RIGHT)
	t.SetAlignment(tablewriter.ALIGN_RIGHT)
	t.AppendBulk(rows)
	t.Render()

	return ew.err
}

func keyCell(key string) string {
	if key == "" {
		return nullCell
	}
	return key
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(b)
	e.err = err
	return n, err
}
