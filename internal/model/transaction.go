package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceRecord is the raw field list of one export row.
type SourceRecord []string

// LedgerEntry is one transaction as it is written to the ledger file.
type LedgerEntry struct {
	Date     time.Time
	Amount   decimal.Decimal // sign kept as exported
	Payee    string
	Category string
}
