package errors

import "fmt"

// ParseError wraps a specific error with context about where it occurred.
type ParseError struct {
	Line   int
	Record []string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Record == nil {
		return fmt.Sprintf("parse error at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse error at line %d: %v (record: %v)", e.Line, e.Err, e.Record)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrDataFormat is the umbrella for every input problem that aborts an analysis.
var ErrDataFormat = fmt.Errorf("data format error")

// Error categories. Check with errors.Is; each specific error below wraps one of them.
var (
	ErrInputRead       = fmt.Errorf("%w: input read error", ErrDataFormat)
	ErrTimestampFormat = fmt.Errorf("%w: timestamp format error", ErrDataFormat)
)

var (
	ErrEmptyInput        = fmt.Errorf("%w: empty input", ErrInputRead)
	ErrMissingColumn     = fmt.Errorf("%w: missing StartTime column", ErrInputRead)
	ErrInvalidFieldCount = fmt.Errorf("%w: invalid field count", ErrInputRead)
	ErrInvalidStartTime  = fmt.Errorf("%w: invalid start time", ErrTimestampFormat)
)

// ErrInvalidConfiguration reports a broken shift or resource table.
var ErrInvalidConfiguration = fmt.Errorf("invalid window configuration")
