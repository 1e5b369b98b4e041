package output

import "fmt"

// WriteError is returned when an output file cannot be produced. It is recoverable:
// the caller moves on to the next authority.
type WriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
