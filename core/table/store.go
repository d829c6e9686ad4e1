package table

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/somo/core"
)

// Status is the outcome of a store operation.
type Status int

const (
	StatusOK Status = iota
	// StatusCreated: the table did not exist and was provisioned empty.
	StatusCreated
	// StatusSkipped: nothing was written (empty table).
	StatusSkipped
	// StatusUnavailable: the backing store failed; the operation degraded to an empty load or a no-op save.
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusCreated:
		return "created"
	case StatusSkipped:
		return "skipped"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Result reports how a Load, Save or Truncate went. Store failures are never returned as errors;
// Err holds the cause when Status is StatusUnavailable.
type Result struct {
	Table  string
	Status Status
	Err    error
}

// OK is false only when the backing store was unavailable.
func (r Result) OK() bool { return r.Status != StatusUnavailable }

// Store loads and saves whole tables through a lazily opened Backend.
// The backend is opened on first use and reused for the life of the Store; a failed open is not retried.
type Store struct {
	connect Connector
	logger  core.Logger

	once       sync.Once
	backend    Backend
	connectErr error
	lastErr    error
}

func NewStore(connect Connector, logger core.Logger) *Store {
	return &Store{connect: connect, logger: logger}
}

func (s *Store) open(ctx context.Context) (Backend, error) {
	s.once.Do(func() {
		b, err := s.connect(ctx)
		if err == nil && b == nil {
			err = errors.New("connector returned no backend")
		}
		if err != nil {
			s.connectErr = errors.Wrap(err, "connecting to backing store")
			s.logger.Error("backing store unavailable", s.connectErr)
			return
		}
		s.backend = b
	})
	return s.backend, s.connectErr
}

// Connected reports whether the backing store was reached and the last operation succeeded.
func (s *Store) Connected() bool {
	return s.backend != nil && s.connectErr == nil && s.lastErr == nil
}

func (s *Store) unavailable(table, op string, err error) Result {
	err = errors.Wrapf(err, "%s %q", op, table)
	s.lastErr = err
	s.logger.Warn("backing store failure absorbed", err, map[string]interface{}{"table": table, "op": op})
	return Result{Table: table, Status: StatusUnavailable, Err: err}
}

// Load fetches the schema's table. A missing table is created with the declared header and loads empty.
// Any failure degrades to an empty table with the declared columns; see Result.
func (s *Store) Load(ctx context.Context, schema Schema) (*Table, Result) {
	b, err := s.open(ctx)
	if err != nil {
		return New(schema), Result{Table: schema.Name, Status: StatusUnavailable, Err: err}
	}

	records, err := b.FetchAllRows(ctx, schema.Name)
	if err != nil {
		if errors.Cause(err) != ErrTableNotFound {
			return New(schema), s.unavailable(schema.Name, "fetching", err)
		}
		if err = b.CreateTable(ctx, schema.Name, schema.Columns); err != nil {
			return New(schema), s.unavailable(schema.Name, "creating", err)
		}
		s.lastErr = nil
		s.logger.Info("table provisioned", map[string]interface{}{"table": schema.Name})
		return New(schema), Result{Table: schema.Name, Status: StatusCreated}
	}

	s.lastErr = nil
	return reconcile(schema, records), Result{Table: schema.Name, Status: StatusOK}
}

// Save overwrites the whole backing table with `tbl`. An empty table is never written:
// use Truncate to deliberately empty a table.
func (s *Store) Save(ctx context.Context, name string, tbl *Table) Result {
	if tbl.IsEmpty() {
		return Result{Table: name, Status: StatusSkipped}
	}
	header, rows := tbl.Serialize()
	return s.overwrite(ctx, name, header, rows)
}

// Truncate deliberately empties the schema's table, keeping its header row.
func (s *Store) Truncate(ctx context.Context, schema Schema) Result {
	return s.overwrite(ctx, schema.Name, schema.Columns, [][]string{})
}

func (s *Store) overwrite(ctx context.Context, name string, header []string, rows [][]string) Result {
	b, err := s.open(ctx)
	if err != nil {
		return Result{Table: name, Status: StatusUnavailable, Err: err}
	}

	if err = b.ReplaceTable(ctx, name, header, rows); err != nil {
		return s.unavailable(name, "replacing", err)
	}
	s.lastErr = nil
	return Result{Table: name, Status: StatusOK}
}
