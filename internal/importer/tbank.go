package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/qif-tools/tbank2qif/internal/model"
)

const (
	tbankDateFormat  = "02.01.2006 15:04:05"
	tbankMinFields   = 12
	tbankColDate     = 0
	tbankColAmount   = 4
	tbankColCategory = 9
	tbankColDesc     = 11
	tbankComma       = ';'
	fieldDate        = "date"
	fieldAmount      = "amount"
)

// TBankParser parses T-Bank operation exports (semicolon CSV, Windows-1251).
//
// Columns used: 0 operation date, 4 operation amount, 9 category, 11 description.
// The remaining columns (payment date, card, status, currencies, cashback, MCC,
// bonuses, rounding) are ignored.
type TBankParser struct {
	enc encoding.Encoding
}

// NewTBankParser returns a parser for Windows-1251 exports.
func NewTBankParser() *TBankParser {
	return &TBankParser{enc: charmap.Windows1251}
}

// Format returns the parser name.
func (p *TBankParser) Format() string { return "tbank" }

// Parse decodes r, skips the header row and emits one entry per data row.
// The first malformed row stops parsing.
func (p *TBankParser) Parse(r io.Reader, emit EmitFunc) error {
	cr := csv.NewReader(transform.NewReader(r, p.enc.NewDecoder()))
	cr.Comma = tbankComma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("reading tbank header: %w", err)
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tbank CSV: %w", err)
		}

		line, _ := cr.FieldPos(0)
		entry, err := parseTBankRow(line, model.SourceRecord(rec))
		if err != nil {
			return err
		}
		if err := emit(entry); err != nil {
			return err
		}
	}
}

func parseTBankRow(line int, rec model.SourceRecord) (model.LedgerEntry, error) {
	if len(rec) < tbankMinFields {
		return model.LedgerEntry{}, &FormatError{Line: line, Got: len(rec), Want: tbankMinFields}
	}

	rawDate := rec[tbankColDate]
	date, err := time.Parse(tbankDateFormat, rawDate)
	if err != nil {
		return model.LedgerEntry{}, &ParseError{Line: line, Field: fieldDate, Value: rawDate, Err: err}
	}

	rawAmount := rec[tbankColAmount]
	amount, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rawAmount), ",", "."))
	if err != nil {
		return model.LedgerEntry{}, &ParseError{Line: line, Field: fieldAmount, Value: rawAmount, Err: err}
	}

	return model.LedgerEntry{
		Date:     date,
		Amount:   amount,
		Payee:    rec[tbankColDesc],
		Category: rec[tbankColCategory],
	}, nil
}
