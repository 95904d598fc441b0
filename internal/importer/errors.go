package importer

import "fmt"

// FormatError reports a row with fewer fields than the layout needs.
type FormatError struct {
	Line int
	Got  int
	Want int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: expected at least %d fields, got %d", e.Line, e.Want, e.Got)
}

// ParseError reports a field whose value could not be parsed.
type ParseError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: parsing %s %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
