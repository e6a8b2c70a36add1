// Package vecadmin implements the vector_search_admin virtual table: a
// read-only introspection surface over live vector_search tables registered
// with package vec. It keeps the teacher's MATCH-driven vtab shape, with one
// lookup column (target) and four hidden stat columns, and reports live
// in-memory stats instead of rebuilding a persisted shadow-table index.
package vecadmin

import (
	"fmt"
	"strings"

	"database/sql"

	"github.com/viant/vecsearch/vec"
	"modernc.org/sqlite/vtab"
)

// Module implements vtab.Module for the vector_search_admin table.
//
// Usage:
//
//	CREATE VIRTUAL TABLE vector_search_admin USING vector_search_admin(target);
//	SELECT target, rows, capacity, dimension, metric
//	  FROM vector_search_admin WHERE target MATCH 'my_table';
//
// A target naming a table that is not currently registered yields zero
// rows, not an error.
type Module struct{}

// Table holds no per-connection state; it delegates every lookup to vec's
// package-level registry.
type Table struct{}

// Cursor iterates the single row (or zero rows) produced by a MATCH lookup.
type Cursor struct {
	table *Table
	rows  []adminRow
	pos   int
}

type adminRow struct {
	target    string
	rows      int
	capacity  int
	dimension int
	metric    string
}

// Register registers the vector_search_admin module with db.
func Register(db *sql.DB) error {
	if err := vtab.RegisterModule(db, "vector_search_admin", &Module{}); err != nil {
		if !strings.Contains(err.Error(), "already registered") {
			return err
		}
	}
	return nil
}

const declareSchema = "CREATE TABLE %s(target, rows HIDDEN, capacity HIDDEN, dimension HIDDEN, metric HIDDEN)"

func (m *Module) Create(ctx vtab.Context, args []string) (vtab.Table, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("vector_search_admin: need at least 3 args")
	}
	if err := ctx.Declare(fmt.Sprintf(declareSchema, args[2])); err != nil {
		return nil, err
	}
	return &Table{}, nil
}

func (m *Module) Connect(ctx vtab.Context, args []string) (vtab.Table, error) {
	return m.Create(ctx, args)
}

// BestIndex recognizes `target MATCH ?` on column 0.
func (t *Table) BestIndex(info *vtab.IndexInfo) error {
	for i := range info.Constraints {
		c := &info.Constraints[i]
		if !c.Usable {
			continue
		}
		if c.Column == 0 && c.Op == vtab.OpMATCH {
			c.ArgIndex = 0
			c.Omit = true
			info.IdxNum = 1
			break
		}
	}
	return nil
}

func (t *Table) Open() (vtab.Cursor, error) { return &Cursor{table: t}, nil }
func (t *Table) Disconnect() error          { return nil }
func (t *Table) Destroy() error             { return nil }

// Filter looks up the named table in vec's registry. An unknown or absent
// target yields zero rows.
func (c *Cursor) Filter(idxNum int, idxStr string, vals []vtab.Value) error {
	c.rows = nil
	c.pos = 0
	if idxNum != 1 || len(vals) == 0 || vals[0] == nil {
		return nil
	}
	name, ok := vals[0].(string)
	if !ok {
		return fmt.Errorf("vector_search_admin: MATCH expects a table name as TEXT")
	}
	table, ok := vec.Lookup(name)
	if !ok {
		return nil
	}
	rows, capacity, dimension, metric := table.Stats()
	c.rows = []adminRow{{target: name, rows: rows, capacity: capacity, dimension: dimension, metric: metric}}
	return nil
}

func (c *Cursor) Next() error {
	if c.pos < len(c.rows) {
		c.pos++
	}
	return nil
}

func (c *Cursor) Eof() bool { return c.pos >= len(c.rows) }

func (c *Cursor) Column(col int) (vtab.Value, error) {
	if c.pos < 0 || c.pos >= len(c.rows) {
		return nil, fmt.Errorf("vector_search_admin: Column out of range")
	}
	r := c.rows[c.pos]
	switch col {
	case 0:
		return r.target, nil
	case 1:
		return int64(r.rows), nil
	case 2:
		return int64(r.capacity), nil
	case 3:
		return int64(r.dimension), nil
	case 4:
		return r.metric, nil
	default:
		return nil, fmt.Errorf("vector_search_admin: Invalid column index: %d", col)
	}
}

func (c *Cursor) Rowid() (int64, error) { return int64(c.pos + 1), nil }
func (c *Cursor) Close() error          { c.rows = nil; c.pos = 0; return nil }
