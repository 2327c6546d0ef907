package fabrica

import (
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/fabrica/schema/field"
)

// Standard sentinel errors for common failure cases.
var (
	// ErrInvalidSchema indicates that the schema description is
	// incomplete or inconsistent.
	ErrInvalidSchema = errors.New("fabrica: invalid schema")

	// ErrUnknownTable is returned when a requested or referenced table
	// has no entity type in the schema graph.
	ErrUnknownTable = errors.New("fabrica: unknown table")

	// ErrNoProvider is returned when a column's semantic type has no
	// registered value provider.
	ErrNoProvider = errors.New("fabrica: no value provider")
)

// SchemaError represents an inconsistency in the schema description.
type SchemaError struct {
	Table   string // Table name (if applicable)
	Column  string // Column name (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("fabrica: schema error")
	if e.Table != "" {
		b.WriteString(" on table ")
		b.WriteString(e.Table)
	}
	if e.Column != "" {
		b.WriteString(" column ")
		b.WriteString(e.Column)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(table, column, message string, cause error) *SchemaError {
	return &SchemaError{
		Table:   table,
		Column:  column,
		Message: message,
		Cause:   cause,
	}
}

// UnknownTableError is returned when a table name resolves to no entity
// type in the graph. Referrer and Column identify the foreign key that
// pointed at the missing table, when the lookup came from one.
type UnknownTableError struct {
	Table    string
	Referrer string
	Column   string
}

// Error implements the error interface.
func (e *UnknownTableError) Error() string {
	switch {
	case e.Referrer != "" && e.Column != "":
		return fmt.Sprintf("fabrica: unknown table %q referenced by %s.%s", e.Table, e.Referrer, e.Column)
	case e.Referrer != "":
		return fmt.Sprintf("fabrica: unknown table %q referenced by %s", e.Table, e.Referrer)
	default:
		return fmt.Sprintf("fabrica: unknown table %q", e.Table)
	}
}

// Is reports whether the target matches the sentinel error for UnknownTableError.
func (e *UnknownTableError) Is(target error) bool {
	return target == ErrUnknownTable
}

// NewUnknownTableError creates a new UnknownTableError.
func NewUnknownTableError(table string) *UnknownTableError {
	return &UnknownTableError{Table: table}
}

// ProviderError is returned when value generation is requested for a
// column whose semantic type has no registered provider.
type ProviderError struct {
	Type   field.Type
	Table  string
	Column string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("fabrica: no value provider for type %s (column %s.%s)", e.Type, e.Table, e.Column)
}

// Is reports whether the target matches the sentinel error for ProviderError.
func (e *ProviderError) Is(target error) bool {
	return target == ErrNoProvider
}

// NewProviderError creates a new ProviderError.
func NewProviderError(typ field.Type, table, column string) *ProviderError {
	return &ProviderError{Type: typ, Table: table, Column: column}
}

// IsInvalidSchema reports whether the error chain contains a schema error.
func IsInvalidSchema(err error) bool {
	return errors.Is(err, ErrInvalidSchema)
}

// IsUnknownTable reports whether the error chain contains an unknown-table error.
func IsUnknownTable(err error) bool {
	return errors.Is(err, ErrUnknownTable)
}

// IsNoProvider reports whether the error chain contains a missing-provider error.
func IsNoProvider(err error) bool {
	return errors.Is(err, ErrNoProvider)
}
