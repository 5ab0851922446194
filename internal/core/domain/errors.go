package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMultipleMatches indicates a lookup that must resolve to one record
	// matched several. This is a data-integrity defect in the reference tables.
	ErrMultipleMatches = errors.New("multiple matches")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrSchemaMismatch indicates a reference table does not have the expected columns.
	// The process must not serve requests against such a table.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrConversionFailed indicates the fixed-layout conversion did not produce a usable file.
	// The editable document is unaffected.
	ErrConversionFailed = errors.New("conversion failed")

	// ErrUnsupportedFormat indicates an unknown output format was requested.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// LookupError describes a lookup that did not resolve to exactly one record.
// It wraps ErrNotFound or ErrMultipleMatches.
type LookupError struct {
	// Query describes the constraints, e.g. name="Christmas Day".
	Query string

	// Count is the number of records that matched.
	Count int

	// Err is ErrNotFound or ErrMultipleMatches.
	Err error
}

func (e *LookupError) Error() string {
	if e.Count > 1 {
		return fmt.Sprintf("%s: %v (%d records)", e.Query, e.Err, e.Count)
	}
	return fmt.Sprintf("%s: %v", e.Query, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// SchemaError reports a reference table whose columns differ from the expected list.
type SchemaError struct {
	Table string
	Want  []string
	Got   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %s: %v: want columns [%s], got [%s]",
		e.Table, ErrSchemaMismatch, strings.Join(e.Want, ", "), strings.Join(e.Got, ", "))
}

func (e *SchemaError) Unwrap() error {
	return ErrSchemaMismatch
}

// ConversionError wraps a failure of the fixed-layout conversion step.
// errors.Is(err, ErrConversionFailed) holds for every ConversionError.
type ConversionError struct {
	// Name is the entity whose document failed to convert.
	Name string

	// Err is the underlying cause reported by the converter.
	Err error
}

func (e *ConversionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Name, ErrConversionFailed)
	}
	return fmt.Sprintf("%s: %v: %v", e.Name, ErrConversionFailed, e.Err)
}

// Unwrap exposes both the sentinel and the cause.
func (e *ConversionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConversionFailed}
	}
	return []error{ErrConversionFailed, e.Err}
}

// describeQuery renders attribute constraints in a stable order.
func describeQuery(attrs Attributes) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%q", k, attrs[k])
	}
	return strings.Join(parts, " ")
}
