package table

import "context"

// Binding keeps one loaded table together with the schema and store it syncs to.
// Every mutation is applied in memory first, then the whole table is persisted; the in-memory
// table stays the source of truth when the save fails.
type Binding struct {
	store  *Store
	schema Schema
	tbl    *Table
}

func (s *Store) Bind(schema Schema) *Binding {
	return &Binding{store: s, schema: schema, tbl: New(schema)}
}

func (b *Binding) Schema() Schema { return b.schema }

// Load replaces the in-memory table with the stored one.
func (b *Binding) Load(ctx context.Context) Result {
	tbl, res := b.store.Load(ctx, b.schema)
	b.tbl = tbl
	return res
}

func (b *Binding) Len() int { return b.tbl.Len() }

// Row returns a copy of the i-th row.
func (b *Binding) Row(i int) (Row, error) {
	if i < 0 || i >= b.tbl.Len() {
		return nil, ErrRowNotFound
	}
	return b.tbl.Rows[i].clone(), nil
}

// Rows returns copies of all rows, in table order.
func (b *Binding) Rows() []Row {
	rows := make([]Row, len(b.tbl.Rows))
	for i, r := range b.tbl.Rows {
		rows[i] = r.clone()
	}
	return rows
}

// Table returns a copy of the bound table.
func (b *Binding) Table() *Table { return b.tbl.Clone() }

// Append adds `row` (restricted to the declared columns) and persists.
func (b *Binding) Append(ctx context.Context, row Row) Result {
	b.tbl.Rows = append(b.tbl.Rows, b.conform(row))
	return b.persist(ctx)
}

// Update applies `fn` to a copy of the i-th row, stores it back and persists.
func (b *Binding) Update(ctx context.Context, i int, fn func(Row)) (Result, error) {
	row, err := b.Row(i)
	if err != nil {
		return Result{Table: b.schema.Name, Status: StatusSkipped}, err
	}
	fn(row)
	b.tbl.Rows[i] = b.conform(row)
	return b.persist(ctx), nil
}

// Remove drops every row matching `drop` and persists. When nothing matched, nothing is written.
func (b *Binding) Remove(ctx context.Context, drop func(Row) bool) (int, Result) {
	kept := make([]Row, 0, len(b.tbl.Rows))
	for _, r := range b.tbl.Rows {
		if !drop(r) {
			kept = append(kept, r)
		}
	}
	removed := len(b.tbl.Rows) - len(kept)
	if removed == 0 {
		return 0, Result{Table: b.schema.Name, Status: StatusSkipped}
	}
	b.tbl.Rows = kept
	return removed, b.persist(ctx)
}

// persist saves the table; a table emptied by a deliberate removal is truncated instead.
func (b *Binding) persist(ctx context.Context) Result {
	if b.tbl.IsEmpty() {
		return b.store.Truncate(ctx, b.schema)
	}
	return b.store.Save(ctx, b.schema.Name, b.tbl)
}

func (b *Binding) conform(row Row) Row {
	r := make(Row, len(b.schema.Columns))
	for _, col := range b.schema.Columns {
		if v, ok := row[col]; ok && v != nil {
			r[col] = v
		} else {
			r[col] = ""
		}
	}
	return r
}
