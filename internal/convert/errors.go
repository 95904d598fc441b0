package convert

import "fmt"

// IOError reports a file that could not be opened, created or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// writeError marks a failure of the output stream, as opposed to the input.
type writeError struct {
	err error
}

func (e *writeError) Error() string { return "writing QIF: " + e.err.Error() }

func (e *writeError) Unwrap() error { return e.err }
