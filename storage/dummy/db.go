package dummydb

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/somo/core/table"
)

// Operations, for failure injection and call counting.
const (
	OpFetch   = "fetch"
	OpCreate  = "create"
	OpClear   = "clear"
	OpWrite   = "write"
	OpReplace = "replace"
)

type (
	// DB is an in-memory backing table store: one header + text rows per table.
	DB struct {
		sync.RWMutex
		tables map[string]*sheet
		calls  map[string]int
		fail   map[string]error
	}

	sheet struct {
		header []string
		rows   [][]string
	}
)

var _ table.Backend = (*DB)(nil) // interface compliance check

func Open() (*DB, error) {
	db := &DB{
		tables: make(map[string]*sheet),
		calls:  make(map[string]int),
		fail:   make(map[string]error),
	}
	return db, nil
}

// Connector opens a fresh DB.
func Connector() table.Connector {
	return func(context.Context) (table.Backend, error) { return Open() }
}

func (db *DB) hit(op string) error {
	db.calls[op]++
	return db.fail[op]
}

// FailOn makes every subsequent `op` fail with err; a nil err clears it.
func (db *DB) FailOn(op string, err error) {
	db.Lock()
	defer db.Unlock()
	if err == nil {
		delete(db.fail, op)
		return
	}
	db.fail[op] = err
}

// Calls returns how many times `op` was invoked.
func (db *DB) Calls(op string) int {
	db.RLock()
	defer db.RUnlock()
	return db.calls[op]
}

// Seed sets a table's raw contents, bypassing counters.
func (db *DB) Seed(name string, header []string, rows ...[]string) {
	db.Lock()
	defer db.Unlock()
	db.tables[name] = &sheet{header: copyStrings(header), rows: copyRows(rows)}
}

// Dump returns a table's raw contents.
func (db *DB) Dump(name string) (header []string, rows [][]string, ok bool) {
	db.RLock()
	defer db.RUnlock()
	s, ok := db.tables[name]
	if !ok {
		return nil, nil, false
	}
	return copyStrings(s.header), copyRows(s.rows), true
}

func (db *DB) FetchAllRows(_ context.Context, name string) ([]table.Record, error) {
	db.Lock()
	defer db.Unlock()
	if err := db.hit(OpFetch); err != nil {
		return nil, err
	}

	s, ok := db.tables[name]
	if !ok {
		return nil, errors.Wrapf(table.ErrTableNotFound, "%q", name)
	}
	records := make([]table.Record, 0, len(s.rows))
	for _, row := range s.rows {
		rec := make(table.Record, len(s.header))
		for i, col := range s.header {
			if col == "" {
				continue
			}
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func (db *DB) CreateTable(_ context.Context, name string, header []string) error {
	db.Lock()
	defer db.Unlock()
	if err := db.hit(OpCreate); err != nil {
		return err
	}
	if _, ok := db.tables[name]; !ok {
		db.tables[name] = &sheet{header: copyStrings(header)}
	}
	return nil
}

func (db *DB) ClearTable(_ context.Context, name string) error {
	db.Lock()
	defer db.Unlock()
	if err := db.hit(OpClear); err != nil {
		return err
	}
	db.tables[name] = &sheet{}
	return nil
}

func (db *DB) WriteRows(_ context.Context, name string, header []string, rows [][]string) error {
	db.Lock()
	defer db.Unlock()
	if err := db.hit(OpWrite); err != nil {
		return err
	}
	db.tables[name] = &sheet{header: copyStrings(header), rows: copyRows(rows)}
	return nil
}

func (db *DB) ReplaceTable(_ context.Context, name string, header []string, rows [][]string) error {
	db.Lock()
	defer db.Unlock()
	if err := db.hit(OpReplace); err != nil {
		return err
	}
	db.tables[name] = &sheet{header: copyStrings(header), rows: copyRows(rows)}
	return nil
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}

func copyRows(rows [][]string) [][]string {
	c := make([][]string, len(rows))
	for i, r := range rows {
		c[i] = copyStrings(r)
	}
	return c
}
