package parser

import (
	"call-analysis/errors"
	"call-analysis/metrics"
	"call-analysis/models"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// StartTimeColumn is the header name of the timestamp column.
const StartTimeColumn = "StartTime"

// TimestampLayout is the only accepted timestamp format.
const TimestampLayout = "2006-01-02 15:04:05"

// Parse reads CSV data from the reader and returns a slice of CallRecord.
// The first row must be a header containing a StartTime column; other
// columns are ignored. Timestamp values may be wrapped in extra quote
// characters and are read as naive wall-clock times.
// Any bad row fails the whole parse; no partial result is returned.
func Parse(r io.Reader) ([]models.CallRecord, error) {
	start := time.Now()
	defer func() {
		metrics.ParserDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	records, err := parse(r)
	if err != nil {
		metrics.ParserErrorsTotal.WithLabelValues(errorType(err)).Inc()
		return nil, err
	}
	metrics.ParserRecordsTotal.Add(float64(len(records)))
	return records, nil
}

func parse(r io.Reader) ([]models.CallRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &errors.ParseError{Line: 1, Err: errors.ErrEmptyInput}
	}
	if err != nil {
		return nil, &errors.ParseError{Line: 1, Err: fmt.Errorf("%w: %w", errors.ErrInputRead, err)}
	}

	column := columnIndex(header, StartTimeColumn)
	if column < 0 {
		return nil, &errors.ParseError{Line: 1, Record: header, Err: errors.ErrMissingColumn}
	}

	records := make([]models.CallRecord, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			var csvErr *csv.ParseError
			if stderrors.As(err, &csvErr) {
				line = csvErr.Line
			}
			return nil, &errors.ParseError{Line: line, Err: fmt.Errorf("%w: %w", errors.ErrInputRead, err)}
		}
		line, _ := reader.FieldPos(0)

		if column >= len(record) {
			return nil, &errors.ParseError{Line: line, Record: record, Err: errors.ErrInvalidFieldCount}
		}

		startTime, err := ParseTimestamp(record[column])
		if err != nil {
			return nil, &errors.ParseError{
				Line:   line,
				Record: record,
				Err:    fmt.Errorf("%w: %v", errors.ErrInvalidStartTime, err),
			}
		}
		records = append(records, models.CallRecord{StartTime: startTime})
	}

	return records, nil
}

// ParseTimestamp parses a single StartTime value, stripping surrounding
// whitespace and quote characters first.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.Trim(strings.TrimSpace(value), `"`)
	t, err := time.Parse(TimestampLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	// time.Parse also accepts a one-digit hour and fractional seconds the
	// layout does not name.
	if len(value) != len(TimestampLayout) {
		return time.Time{}, fmt.Errorf("parsing time %q: does not match %q", value, TimestampLayout)
	}
	return t, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		if strings.Trim(strings.TrimSpace(h), `"`) == name {
			return i
		}
	}
	return -1
}

func errorType(err error) string {
	switch {
	case stderrors.Is(err, errors.ErrEmptyInput):
		return "empty_input"
	case stderrors.Is(err, errors.ErrMissingColumn):
		return "missing_column"
	case stderrors.Is(err, errors.ErrInvalidFieldCount):
		return "invalid_field_count"
	case stderrors.Is(err, errors.ErrTimestampFormat):
		return "invalid_start_time"
	default:
		return "read_error"
	}
}
