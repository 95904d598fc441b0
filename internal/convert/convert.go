// Package convert turns a bank export into a QIF ledger file.
package convert

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/qif-tools/tbank2qif/internal/importer"
	"github.com/qif-tools/tbank2qif/internal/model"
	"github.com/qif-tools/tbank2qif/internal/qif"
)

// Result summarizes a finished conversion.
type Result struct {
	Transactions int
}

// Transcoder drives a Parser into a QIF writer.
type Transcoder struct {
	parser importer.Parser
	log    *slog.Logger
}

// New creates a Transcoder. A nil logger uses slog.Default().
func New(parser importer.Parser, logger *slog.Logger) *Transcoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Transcoder{parser: parser, log: logger}
}

// Convert reads inputPath and writes a QIF file to outputPath, replacing it.
// The output is not created when the input cannot be opened. When a row fails
// to parse, the blocks already written are kept in the output.
func (t *Transcoder) Convert(inputPath, outputPath string, accountType model.AccountType) (res Result, err error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return Result{}, &IOError{Op: "open", Path: inputPath, Err: err}
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return Result{}, &IOError{Op: "create", Path: outputPath, Err: err}
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Path: outputPath, Err: cerr}
		}
	}()

	t.log.Debug("converting", "input", inputPath, "output", outputPath, "format", t.parser.Format())

	res, err = t.Transcode(in, out, accountType)
	if err != nil {
		var we *writeError
		if errors.As(err, &we) {
			return res, &IOError{Op: "write", Path: outputPath, Err: we.err}
		}
		return res, fmt.Errorf("converting %s: %w", inputPath, err)
	}

	t.log.Info("conversion finished", "output", outputPath, "transactions", res.Transactions)
	return res, nil
}

// Transcode reads an export from r and writes QIF to w.
// Buffered output is flushed before returning, also on error.
func (t *Transcoder) Transcode(r io.Reader, w io.Writer, accountType model.AccountType) (res Result, err error) {
	qw := qif.NewWriter(w)
	defer func() {
		if ferr := qw.Flush(); ferr != nil && err == nil {
			err = &writeError{err: ferr}
		}
		res = Result{Transactions: qw.Count()}
	}()

	if err := qw.WriteHeader(accountType.OrDefault()); err != nil {
		return Result{}, &writeError{err: err}
	}

	err = t.parser.Parse(r, func(e model.LedgerEntry) error {
		if err := qw.Write(e); err != nil {
			return &writeError{err: err}
		}
		t.log.Debug("entry written", "date", e.Date.Format("2006-01-02"), "amount", e.Amount.StringFixed(2))
		return nil
	})
	return res, err
}
