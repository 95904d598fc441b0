package importer

import (
	"io"
	"strings"

	"github.com/qif-tools/tbank2qif/internal/model"
)

// EmitFunc receives each parsed entry in input order.
// A non-nil error stops parsing and is returned from Parse.
type EmitFunc func(model.LedgerEntry) error

// Parser converts a bank export into LedgerEntries.
type Parser interface {
	Parse(r io.Reader, emit EmitFunc) error
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewTBankParser())
	return r
}

// Collect parses r and returns all entries.
func Collect(p Parser, r io.Reader) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	err := p.Parse(r, func(e model.LedgerEntry) error {
		entries = append(entries, e)
		return nil
	})
	return entries, err
}
