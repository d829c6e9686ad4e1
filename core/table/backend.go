package table

import (
	"context"
	"errors"
)

var (
	// ErrTableNotFound is returned by a Backend when the named table does not exist.
	ErrTableNotFound = errors.New("table not found")
	// ErrRowNotFound is returned when a row index is out of range.
	ErrRowNotFound = errors.New("row not found")
)

// Record is one fetched row: column name -> text value.
type Record map[string]string

// Backend is the durable table storage. All operations work on whole tables.
// Every overwrite goes through ReplaceTable, so a failed write never loses the prior rows.
type Backend interface {
	Replacer

	// FetchAllRows returns every data row of `table`, or ErrTableNotFound.
	FetchAllRows(ctx context.Context, table string) ([]Record, error)
	// CreateTable creates an empty `table` whose header row is `header`. Creating an existing table is a no-op.
	CreateTable(ctx context.Context, table string, header []string) error
	// ClearTable removes every row, header included.
	ClearTable(ctx context.Context, table string) error
	// WriteRows writes the header row followed by `rows`, starting at the top of the table.
	WriteRows(ctx context.Context, table string, header []string, rows [][]string) error
}

// Replacer clears and rewrites a table in one atomic step: either every row is written or
// the table is left as it was.
type Replacer interface {
	ReplaceTable(ctx context.Context, table string, header []string, rows [][]string) error
}

// Connector opens a Backend. It is called at most once per Store.
type Connector func(ctx context.Context) (Backend, error)

// Static wraps an already opened Backend as a Connector.
func Static(b Backend) Connector {
	return func(context.Context) (Backend, error) { return b, nil }
}
