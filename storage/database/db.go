// Package database stores tables in PostgreSQL: one SQL table per tracked table, every column TEXT,
// plus a hidden position column that keeps row order.
package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/somo/core"
	"github.com/trezcool/somo/core/table"
)

const (
	posColumn = "_pos"
	// postgres accepts at most 65535 bind parameters per statement
	maxParams = 65535
)

var _ table.Backend = (*DB)(nil) // interface compliance check

// DB is a Backend over one PostgreSQL database.
type DB struct {
	db *sqlx.DB
}

func dsn(dbName string, admin bool, conf core.DatabaseConfig) string {
	user := url.UserPassword(conf.User, conf.Password)
	if admin && conf.AdminUser != "" {
		user = url.UserPassword(conf.AdminUser, conf.AdminPassword)
	}

	sslMode := "require"
	if conf.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   conf.Engine,
		User:     user,
		Host:     conf.Address(),
		Path:     dbName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func open(dbName string, admin bool, conf core.DatabaseConfig) (*sqlx.DB, error) {
	return sqlx.Open(conf.Engine, dsn(dbName, admin, conf))
}

// Open connects to the app database and waits for it to answer.
func Open(ctx context.Context, conf core.DatabaseConfig) (*DB, error) {
	db, err := open(conf.Name, false, conf)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{db: db}, nil
}

// Connector opens the database on the store's first use.
func Connector(conf core.DatabaseConfig) table.Connector {
	return func(ctx context.Context) (table.Backend, error) {
		return Open(ctx, conf)
	}
}

func (db *DB) Close() error { return db.db.Close() }

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(ctx context.Context, db *sqlx.DB) error {
	var err error
	maxAttempts := 10
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "DB ping cancelled")
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}
	return errors.Wrap(err, "DB ping timeout")
}

// columns returns the table's data columns in order, or ErrTableNotFound.
func (db *DB) columns(ctx context.Context, q sqlx.QueryerContext, name string) ([]string, error) {
	var cols []string
	err := sqlx.SelectContext(ctx, q, &cols, `
		SELECT column_name FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1
		ORDER BY ordinal_position`, name)
	if err != nil {
		return nil, errors.Wrapf(err, "describing %q", name)
	}
	if len(cols) == 0 {
		return nil, errors.Wrapf(table.ErrTableNotFound, "%q", name)
	}
	data := cols[:0]
	for _, c := range cols {
		if c != posColumn {
			data = append(data, c)
		}
	}
	return data, nil
}

func (db *DB) FetchAllRows(ctx context.Context, name string) ([]table.Record, error) {
	cols, err := db.columns(ctx, db.db, name)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return []table.Record{}, nil
	}

	rows, err := db.db.QueryxContext(ctx, selectStmt(name, cols))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", name)
	}
	defer func() { _ = rows.Close() }()

	records := make([]table.Record, 0)
	for rows.Next() {
		m := make(map[string]interface{}, len(cols))
		if err = rows.MapScan(m); err != nil {
			return nil, errors.Wrapf(err, "reading %q", name)
		}
		rec := make(table.Record, len(cols))
		for _, c := range cols {
			rec[c] = cellText(m[c])
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %q", name)
	}
	return records, nil
}

func (db *DB) CreateTable(ctx context.Context, name string, header []string) error {
	if _, err := db.db.ExecContext(ctx, createStmt(name, header)); err != nil {
		return errors.Wrapf(err, "creating %q", name)
	}
	return nil
}

// ClearTable drops the table; WriteRows recreates it with the new header.
func (db *DB) ClearTable(ctx context.Context, name string) error {
	if _, err := db.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+pq.QuoteIdentifier(name)); err != nil {
		return errors.Wrapf(err, "clearing %q", name)
	}
	return nil
}

func (db *DB) WriteRows(ctx context.Context, name string, header []string, rows [][]string) error {
	return db.inTx(ctx, name, func(tx *sqlx.Tx) error {
		return write(ctx, tx, name, header, rows)
	})
}

// ReplaceTable drops, recreates and fills the table in one transaction.
func (db *DB) ReplaceTable(ctx context.Context, name string, header []string, rows [][]string) error {
	return db.inTx(ctx, name, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+pq.QuoteIdentifier(name)); err != nil {
			return err
		}
		return write(ctx, tx, name, header, rows)
	})
}

func (db *DB) inTx(ctx context.Context, name string, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrapf(err, "writing %q", name)
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return errors.Wrapf(err, "writing %q", name)
	}
	return errors.Wrapf(tx.Commit(), "writing %q", name)
}

func write(ctx context.Context, tx *sqlx.Tx, name string, header []string, rows [][]string) error {
	if _, err := tx.ExecContext(ctx, createStmt(name, header)); err != nil {
		return err
	}
	for _, batch := range batches(rows, maxParams/(len(header)+1)) {
		stmt, args := insertStmt(name, header, batch.offset, batch.rows)
		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			return err
		}
	}
	return nil
}

func createStmt(name string, header []string) string {
	defs := make([]string, 0, len(header)+1)
	defs = append(defs, pq.QuoteIdentifier(posColumn)+" INTEGER NOT NULL")
	for _, col := range header {
		defs = append(defs, pq.QuoteIdentifier(col)+" TEXT NOT NULL DEFAULT ''")
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", pq.QuoteIdentifier(name), strings.Join(defs, ", "))
}

func selectStmt(name string, cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = pq.QuoteIdentifier(c)
	}
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		strings.Join(quoted, ", "), pq.QuoteIdentifier(name), pq.QuoteIdentifier(posColumn))
}

// insertStmt builds one multi-row INSERT; rows shorter than the header are padded with "".
func insertStmt(name string, header []string, offset int, rows [][]string) (string, []interface{}) {
	cols := make([]string, 0, len(header)+1)
	cols = append(cols, pq.QuoteIdentifier(posColumn))
	for _, col := range header {
		cols = append(cols, pq.QuoteIdentifier(col))
	}

	width := len(cols)
	args := make([]interface{}, 0, len(rows)*width)
	tuples := make([]string, 0, len(rows))
	for i, row := range rows {
		params := make([]string, width)
		for j := range params {
			params[j] = fmt.Sprintf("$%d", i*width+j+1)
		}
		tuples = append(tuples, "("+strings.Join(params, ", ")+")")
		args = append(args, offset+i)
		for j := range header {
			if j < len(row) {
				args = append(args, row[j])
			} else {
				args = append(args, "")
			}
		}
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		pq.QuoteIdentifier(name), strings.Join(cols, ", "), strings.Join(tuples, ", "))
	return stmt, args
}

type batch struct {
	offset int
	rows   [][]string
}

func batches(rows [][]string, size int) []batch {
	if size < 1 {
		size = 1
	}
	var out []batch
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		out = append(out, batch{offset: start, rows: rows[start:end]})
	}
	return out
}

func cellText(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
