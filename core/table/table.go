// Package table is the record store shared by every tracked entity: schema-enforced loads,
// type coercion and full-table overwrite saves against a pluggable Backend.
package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/trezcool/somo/core"
)

// Schema declares a table: its name in the backing store, the columns every loaded row carries (in order),
// and which of them are coerced to bool or float64 on load.
type Schema struct {
	Name    string
	Columns []string
	Bools   []string
	Floats  []string
}

func (s Schema) isBool(col string) bool  { return contains(s.Bools, col) }
func (s Schema) isFloat(col string) bool { return contains(s.Floats, col) }

// Row maps a column name to its cell. Cells are string, bool (coerced columns), float64 (coerced columns),
// or any value written by the caller; Text serializes them on save.
type Row map[string]interface{}

func (r Row) String(col string) string {
	return Text(r[col])
}

// Bool is true for a bool true or a "true" token (any case).
func (r Row) Bool(col string) bool {
	switch v := r[col].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}

// Float returns the cell as float64; unparseable or missing cells are 0.
func (r Row) Float(col string) float64 {
	switch v := r[col].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		return parseFloat(v)
	default:
		return 0
	}
}

// Int returns the cell as int; "3", "3.0" and 3.0 all read as 3. Unparseable or missing cells are 0.
func (r Row) Int(col string) int {
	switch v := r[col].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		return int(parseFloat(s))
	default:
		return 0
	}
}

// Date returns the cell as a date; unparseable or missing cells are the zero time.
func (r Row) Date(col string) time.Time {
	switch v := r[col].(type) {
	case time.Time:
		return v
	case string:
		d, err := core.ParseDate(v)
		if err != nil {
			return time.Time{}
		}
		return d
	default:
		return time.Time{}
	}
}

func (r Row) clone() Row {
	c := make(Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Table is an ordered set of rows sharing Columns.
type Table struct {
	Columns []string
	Rows    []Row
}

// New returns an empty table with the schema's columns.
func New(schema Schema) *Table {
	cols := make([]string, len(schema.Columns))
	copy(cols, schema.Columns)
	return &Table{Columns: cols, Rows: make([]Row, 0)}
}

func (t *Table) Len() int { return len(t.Rows) }

func (t *Table) IsEmpty() bool { return t == nil || len(t.Rows) == 0 }

// Clone deep-copies the table so callers can't mutate loaded state.
func (t *Table) Clone() *Table {
	c := &Table{
		Columns: make([]string, len(t.Columns)),
		Rows:    make([]Row, len(t.Rows)),
	}
	copy(c.Columns, t.Columns)
	for i, r := range t.Rows {
		c.Rows[i] = r.clone()
	}
	return c
}

// Text serializes a cell. nil becomes "".
func Text(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case time.Time:
		return core.FormatDate(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Serialize renders the table as a header + text rows, ready for a backend write.
func (t *Table) Serialize() (header []string, rows [][]string) {
	header = make([]string, len(t.Columns))
	copy(header, t.Columns)
	rows = make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		cells := make([]string, len(header))
		for i, col := range header {
			cells[i] = Text(r[col])
		}
		rows = append(rows, cells)
	}
	return header, rows
}

// reconcile builds the loaded table from fetched records.
// Coercion runs on fetched cells only; declared columns absent from a record are then filled with "".
// Undeclared columns are dropped.
func reconcile(schema Schema, records []Record) *Table {
	tbl := New(schema)
	for _, rec := range records {
		row := make(Row, len(schema.Columns))
		for _, col := range schema.Columns {
			v, ok := rec[col]
			if !ok {
				continue
			}
			switch {
			case schema.isBool(col):
				row[col] = strings.EqualFold(v, "true")
			case schema.isFloat(col):
				row[col] = parseFloat(v)
			default:
				row[col] = v
			}
		}
		for _, col := range schema.Columns {
			if _, ok := row[col]; !ok {
				row[col] = ""
			}
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
