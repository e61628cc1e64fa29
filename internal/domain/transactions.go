package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used across importers, storage and the CLI.
const DateLayout = "2006-01-02"

// TransactionType defines what a transaction does to a position.
type TransactionType int

const (
	TransactionTypeSell TransactionType = iota
	TransactionTypeBuy
	TransactionTypeStockSplitMergeInsertion
	TransactionTypeStockSplitMergeDeletion
	TransactionTypeInboundTransferFromEvent
	TransactionTypeOther
)

var transactionTypeNames = map[TransactionType]string{
	TransactionTypeSell:                     "SELL",
	TransactionTypeBuy:                      "BUY",
	TransactionTypeStockSplitMergeInsertion: "STOCK_SPLIT_MERGE_INSERTION",
	TransactionTypeStockSplitMergeDeletion:  "STOCK_SPLIT_MERGE_DELETION",
	TransactionTypeInboundTransferFromEvent: "INBOUND_TRANSFER_FROM_EVENT",
	TransactionTypeOther:                    "OTHER",
}

func (t TransactionType) String() string {
	if name, ok := transactionTypeNames[t]; ok {
		return name
	}
	return "OTHER"
}

// ParseTransactionType maps a stored or imported type name back to its value.
// Unknown names yield TransactionTypeOther together with ErrUnknownTransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	for t, name := range transactionTypeNames {
		if name == s {
			return t, nil
		}
	}
	return TransactionTypeOther, fmt.Errorf("%w: %q", ErrUnknownTransactionType, s)
}

// Transaction is one normalized trade or event reported by a securities firm.
// Brokers only report the day, so OpenDate carries no time-of-day.
type Transaction struct {
	Account    string          `json:"account"`
	Symbol     string          `json:"symbol"`
	Type       TransactionType `json:"transaction_type"`
	Amount     float64         `json:"amount"`
	OpenPrice  float64         `json:"open_price"`
	Commission float64         `json:"commission"` // broker commission + tax
	OpenDate   time.Time       `json:"open_date"`
}

func (t Transaction) String() string {
	return fmt.Sprintf("symbol(%s) transaction_type(%s) open_price(%v) amount(%v) commission(%v) open_date(%s)",
		t.Symbol, t.Type, t.OpenPrice, t.Amount, t.Commission, t.OpenDate.Format(DateLayout))
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsSortedByDate reports whether transactions are non-decreasing by calendar day
// of OpenDate, as Day computes it. Time-of-day is ignored. When they are not, the
// index of the first record dated before its predecessor is returned.
func IsSortedByDate(transactions []Transaction) (int, bool) {
	for i := 1; i < len(transactions); i++ {
		if Day(transactions[i].OpenDate).Before(Day(transactions[i-1].OpenDate)) {
			return i, false
		}
	}
	return 0, true
}
