package amqp

import (
	"encoding/json"
	"time"

	"bankreport/internal/core"
)

// ReportMessage is the published summary of a finished report run.
type ReportMessage struct {
	GeneratedAt      time.Time        `json:"generated_at"`
	DepositRows      int              `json:"deposit_rows"`
	WithdrawalRows   int              `json:"withdrawal_rows"`
	TopWithdrawers   []PersonTotal    `json:"top_withdrawers"`
	NegativeAccounts []AccountBalance `json:"negative_accounts"`
}

type PersonTotal struct {
	Person string `json:"person"`
	Total  int64  `json:"total"`
}

// AccountBalance carries a null deposits field for accounts without deposits.
// Balance counts missing deposits as zero.
type AccountBalance struct {
	Account     string `json:"account"`
	Withdrawals int64  `json:"withdrawals"`
	Deposits    *int64 `json:"deposits"`
	Balance     int64  `json:"balance"`
}

// NewReportMessage converts a report into its wire form
func NewReportMessage(r core.Report) *ReportMessage {
	msg := &ReportMessage{
		GeneratedAt:      r.GeneratedAt,
		DepositRows:      r.DepositRows,
		WithdrawalRows:   r.WithdrawalRows,
		TopWithdrawers:   make([]PersonTotal, 0, len(r.TopWithdrawers)),
		NegativeAccounts: make([]AccountBalance, 0, len(r.NegativeAccounts)),
	}
	if msg.GeneratedAt.IsZero() {
		msg.GeneratedAt = time.Now()
	}
	for _, p := range r.TopWithdrawers {
		msg.TopWithdrawers = append(msg.TopWithdrawers, PersonTotal{Person: p.Person, Total: p.Total})
	}
	for _, a := range r.NegativeAccounts {
		row := AccountBalance{Account: a.Account, Withdrawals: a.Withdrawals, Balance: a.Balance()}
		if a.HasDeposits {
			d := a.Deposits
			row.Deposits = &d
		}
		msg.NegativeAccounts = append(msg.NegativeAccounts, row)
	}
	return msg
}

// ToJSON converts the message to JSON bytes
func (m *ReportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
