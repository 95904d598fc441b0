package qif

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/qif-tools/tbank2qif/internal/model"
)

const (
	dateFormat = "02/01/2006"
	endOfEntry = "^"
	numLines   = 5
	lineDate   = 0
	lineAmount = 1
	linePayee  = 2
	lineCat    = 3
	lineEnd    = 4
)

// HeaderLine returns the type header, e.g. "!Type:Bank".
func HeaderLine(accountType model.AccountType) string {
	return "!Type:" + string(accountType)
}

// MarshalEntry converts a LedgerEntry to its QIF lines (without newlines).
func MarshalEntry(e model.LedgerEntry) []string {
	lines := make([]string, numLines)
	lines[lineDate] = "D" + e.Date.Format(dateFormat)
	lines[lineAmount] = "T" + e.Amount.StringFixed(2)
	lines[linePayee] = "P" + singleLine(e.Payee)
	lines[lineCat] = "L" + singleLine(e.Category)
	lines[lineEnd] = endOfEntry
	return lines
}

// singleLine folds embedded line breaks so a field cannot start a new tag.
func singleLine(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == '\r' || r == '\n'
	}), " ")
}

// Writer writes QIF records to an underlying io.Writer.
// Output is buffered; callers must call Flush.
type Writer struct {
	w     *bufio.Writer
	err   error
	count int
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteHeader writes the "!Type:" line.
func (w *Writer) WriteHeader(accountType model.AccountType) error {
	return w.writeLines([]string{HeaderLine(accountType)})
}

// Write writes one transaction block.
func (w *Writer) Write(e model.LedgerEntry) error {
	if err := w.writeLines(MarshalEntry(e)); err != nil {
		return fmt.Errorf("writing entry %d: %w", w.count+1, err)
	}
	w.count++
	return nil
}

// Count returns the number of transaction blocks written.
func (w *Writer) Count() int { return w.count }

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil && w.err == nil {
		w.err = err
	}
	return w.err
}

// Error reports any error that occurred during a previous Write or Flush.
func (w *Writer) Error() error { return w.err }

func (w *Writer) writeLines(lines []string) error {
	if w.err != nil {
		return w.err
	}
	for _, l := range lines {
		if _, err := w.w.WriteString(l); err != nil {
			w.err = err
			return err
		}
		if err := w.w.WriteByte('\n'); err != nil {
			w.err = err
			return err
		}
	}
	return nil
}
