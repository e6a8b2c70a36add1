package vec

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/vecsearch/index"
	"github.com/viant/vecsearch/index/cover"
	"github.com/viant/vecsearch/vector"
	"modernc.org/sqlite/vtab"
)

// opKNNSearchFunction is the function-constraint op code this module hands
// back from FindFunction, mirroring real SQLite's
// SQLITE_INDEX_CONSTRAINT_FUNCTION family (op >= 150). It is left untyped so
// it compares/assigns cleanly against whatever integer-derived type the
// vtab fork uses for Constraint.Op.
const opKNNSearchFunction = 150

const (
	idxScan = iota
	idxVector
	// idxRowid marks a plan with a recognized constraint on the rowid
	// column. Nothing in Filter currently narrows the scan by it — it is
	// reserved for future filtering, per spec — but BestIndex still
	// recognizes and omits it so the planner doesn't re-check it itself.
	idxRowid
)

// Module implements vtab.Module for the vector_search virtual table.
type Module struct{}

// Table is a single vector_search virtual table instance: a fixed vector
// space, an ANN index over it, and the set of rowids it has accepted.
// Table owns the index outright: the host engine serializes every hook
// call into a virtual table on a single connection, so no internal locking
// is introduced here (see DESIGN.md — a deliberate deviation from the
// teacher's vec package, which guards a persisted index shared across
// connections).
type Table struct {
	name  string
	space vector.VectorSpace
	opts  index.IndexOptions

	idx   index.Index
	known map[int64]struct{}
	order []int64
}

// Cursor scans the result of a full scan or a knn_search filter.
type Cursor struct {
	table  *Table
	result []index.Result
	pos    int
}

// Register registers the vector_search module, the vector_search_admin
// module is registered separately by vecadmin.Register, and the knn_param /
// knn_search scalar functions with db.
func Register(db *sql.DB) error {
	mod := &Module{}
	if err := vtab.RegisterModule(db, "vector_search", mod); err != nil {
		if !strings.Contains(err.Error(), "already registered") {
			return err
		}
	}
	registerKNNFunctions()
	return nil
}

// Create declares a new vector_search table: args[3] is the VectorSpace
// literal, args[4] (optional) is the IndexOptions literal.
func (m *Module) Create(ctx vtab.Context, args []string) (vtab.Table, error) {
	return newTable(ctx, args)
}

// Connect behaves identically to Create: there is no persisted state to
// reattach to (see Non-goals — no persistence beyond process lifetime).
func (m *Module) Connect(ctx vtab.Context, args []string) (vtab.Table, error) {
	return newTable(ctx, args)
}

func newTable(ctx vtab.Context, args []string) (vtab.Table, error) {
	if len(args) < 4 {
		return nil, fmt.Errorf("vector_search: expected a vector space literal argument, got %d args", len(args))
	}
	if len(args) > 5 {
		return nil, fmt.Errorf("vector_search: expected at most two module arguments, got %d", len(args)-3)
	}
	if err := ctx.EnableConstraintSupport(); err != nil {
		return nil, fmt.Errorf("vector_search: EnableConstraintSupport failed: %w", err)
	}

	space, err := vector.ParseVectorSpace(unquoteArg(args[3]))
	if err != nil {
		return nil, err
	}
	optsLiteral := ""
	if len(args) > 4 {
		optsLiteral = unquoteArg(args[4])
	}
	opts, err := index.ParseIndexOptions(optsLiteral)
	if err != nil {
		return nil, err
	}

	if err := ctx.Declare(fmt.Sprintf("CREATE TABLE %s(%s, distance REAL HIDDEN)", args[2], space.Name)); err != nil {
		return nil, err
	}

	idx, err := newIndex(space.Metric, opts.MaxElements, opts.M)
	if err != nil {
		return nil, err
	}

	t := &Table{
		name:  args[2],
		space: space,
		opts:  opts,
		idx:   idx,
		known: make(map[int64]struct{}),
	}
	registerTable(t.name, t)
	return t, nil
}

func newIndex(metric vector.Metric, capacity, m int) (index.Index, error) {
	idxMetric := index.Metric(metric)
	return cover.New(idxMetric, capacity, m)
}

// unquoteArg strips a single layer of surrounding quotes SQLite's parser
// leaves on a string-literal module argument.
func unquoteArg(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			inner := s[1 : len(s)-1]
			return strings.ReplaceAll(inner, s[:1]+s[:1], s[:1])
		}
	}
	return s
}

// FindFunction lets the planner recognize knn_search(col, param) as a
// function-valued constraint on the vector column. See DESIGN.md for the
// assumed vtab fork surface this depends on.
func (t *Table) FindFunction(name string, nArg int) (int, bool) {
	if name == "knn_search" && nArg == 2 {
		return opKNNSearchFunction, true
	}
	return 0, false
}

// BestIndex recognizes a knn_search function constraint on column 0 and a
// plain constraint on the rowid column (-1). The first knn_search constraint
// always takes argv[0], where Filter reads the knn_param handle; every other
// recognized constraint takes the next free slot after it. If both are
// present in a single plan, whichever is visited last in info.Constraints
// wins IdxNum — a documented tie-break preserved as-is rather than "fixed",
// matching the behavior spec.md describes.
func (t *Table) BestIndex(info *vtab.IndexInfo) error {
	knn := -1
	for i := range info.Constraints {
		c := &info.Constraints[i]
		if c.Usable && c.Column == 0 && int(c.Op) == opKNNSearchFunction {
			knn = i
			break
		}
	}
	nextArg := 0
	if knn >= 0 {
		nextArg = 1
	}
	for i := range info.Constraints {
		c := &info.Constraints[i]
		if !c.Usable {
			continue
		}
		switch {
		case c.Column == 0 && int(c.Op) == opKNNSearchFunction:
			if i == knn {
				c.ArgIndex = 0
			} else {
				c.ArgIndex = nextArg
				nextArg++
			}
			c.Omit = true
			info.IdxNum = idxVector
		case c.Column == -1:
			c.ArgIndex = nextArg
			c.Omit = true
			nextArg++
			info.IdxNum = idxRowid
		}
	}
	if nextArg == 0 {
		info.IdxNum = idxScan
	}
	return nil
}

// Open allocates a new cursor.
func (t *Table) Open() (vtab.Cursor, error) { return &Cursor{table: t}, nil }

// Disconnect releases per-connection resources; the index lives with the
// Table, not the connection, so there is nothing to release here.
func (t *Table) Disconnect() error { return nil }

// Destroy removes the table from the introspection registry.
func (t *Table) Destroy() error {
	unregisterTable(t.name)
	return nil
}

// Filter dispatches on idxNum: idxVector consumes a knn_param handle and
// runs SearchKNN; idxScan and idxRowid both yield every known row in
// insertion order with no meaningful distance — idxRowid's constraint value
// is accepted (BestIndex already omitted it from the host's own filter) but
// not yet used to narrow the scan.
func (c *Cursor) Filter(idxNum int, idxStr string, vals []vtab.Value) error {
	c.pos = 0
	c.result = nil
	switch idxNum {
	case idxVector:
		if len(vals) == 0 || vals[0] == nil {
			return fmt.Errorf("vector_search: knn_param() must be used as the 2nd argument of knn_search")
		}
		handle, err := asHandle(vals[0])
		if err != nil {
			return err
		}
		param, ok := takeKNNParam(handle)
		if !ok || param.tag != knnParamTag {
			return fmt.Errorf("vector_search: knn_param() must be used as the 2nd argument of knn_search")
		}
		if param.query.Dim() != c.table.space.Dim {
			return fmt.Errorf("vector_search: query dimension %d does not match table dimension %d", param.query.Dim(), c.table.space.Dim)
		}
		query := param.query
		if c.table.space.Normalize {
			query = query.Normalize()
		}
		results, err := c.table.idx.SearchKNN(query.Values(), param.k)
		if err != nil {
			return err
		}
		c.result = results
		return nil
	case idxScan, idxRowid:
		c.result = make([]index.Result, 0, len(c.table.order))
		for _, label := range c.table.order {
			c.result = append(c.result, index.Result{Label: label})
		}
		return nil
	default:
		return fmt.Errorf("vector_search: unsupported query plan")
	}
}

// Next advances the cursor.
func (c *Cursor) Next() error {
	if c.pos < len(c.result) {
		c.pos++
	}
	return nil
}

// Eof reports end-of-rows.
func (c *Cursor) Eof() bool { return c.pos >= len(c.result) }

// Rowid returns the current row's label.
func (c *Cursor) Rowid() (int64, error) {
	if c.pos < 0 || c.pos >= len(c.result) {
		return 0, fmt.Errorf("vector_search: Rowid out of range (pos=%d, len=%d)", c.pos, len(c.result))
	}
	return c.result[c.pos].Label, nil
}

// Column returns column 0 (the vector, re-encoded from the index) or column
// 1 (the distance recorded by the last SearchKNN call).
func (c *Cursor) Column(col int) (vtab.Value, error) {
	if c.pos < 0 || c.pos >= len(c.result) {
		return nil, fmt.Errorf("vector_search: Column out of range (pos=%d, len=%d)", c.pos, len(c.result))
	}
	switch col {
	case 0:
		v, err := c.table.idx.GetByLabel(c.result[c.pos].Label)
		if err != nil {
			return nil, fmt.Errorf("vector_search: internal error resolving rowid %d: %w", c.result[c.pos].Label, err)
		}
		blob, err := vector.New(v).ToBlob()
		if err != nil {
			return nil, err
		}
		return blob, nil
	case 1:
		return float64(c.result[c.pos].Distance), nil
	default:
		return nil, fmt.Errorf("Invalid column index: %d", col)
	}
}

// Close releases cursor state.
func (c *Cursor) Close() error {
	c.result = nil
	c.pos = 0
	return nil
}

// Update supports INSERT only, mirroring real SQLite's xUpdate argv
// convention: argv[0] is the old rowid (NULL for insert), argv[1] is the
// new rowid, and argv[2:] are the declared column values in order.
func (t *Table) Update(argv []vtab.Value) (int64, error) {
	if len(argv) < 3 || argv[0] != nil || argv[1] == nil {
		return 0, fmt.Errorf("vector_search: operation not supported")
	}
	rowid, err := asRowid(argv[1])
	if err != nil {
		return 0, err
	}
	blob, ok := argv[2].([]byte)
	if !ok {
		return 0, fmt.Errorf("vector_search: vector column must be a BLOB, got %T", argv[2])
	}
	v, err := vector.FromBlob(blob)
	if err != nil {
		return 0, fmt.Errorf("vector_search: %w", err)
	}
	if v.Dim() != t.space.Dim {
		return 0, fmt.Errorf("vector_search: vector dimension %d does not match table dimension %d", v.Dim(), t.space.Dim)
	}
	if t.space.Normalize {
		v = v.Normalize()
	}

	if _, exists := t.known[rowid]; exists {
		return 0, fmt.Errorf("vector_search: rowid %d already exists", rowid)
	}
	if err := t.idx.Add(rowid, v.Values()); err != nil {
		return 0, err
	}
	t.known[rowid] = struct{}{}
	t.order = append(t.order, rowid)
	return rowid, nil
}

// Stats reports live introspection data for vecadmin: row count, configured
// capacity, dimension, and metric.
func (t *Table) Stats() (rows, capacity, dimension int, metric string) {
	return t.idx.Len(), t.opts.MaxElements, t.space.Dim, string(t.space.Metric)
}

func asHandle(v vtab.Value) (int64, error) {
	switch val := v.(type) {
	case int64:
		return val, nil
	case float64:
		return int64(val), nil
	default:
		return 0, fmt.Errorf("vector_search: knn_param() must be used as the 2nd argument of knn_search")
	}
}

func asRowid(v vtab.Value) (int64, error) {
	switch val := v.(type) {
	case int64:
		if val < 0 {
			return 0, fmt.Errorf("vector_search: rowid must be non-negative, got %d", val)
		}
		return val, nil
	case string:
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("vector_search: invalid rowid %q: %w", val, err)
		}
		if n < 0 {
			return 0, fmt.Errorf("vector_search: rowid must be non-negative, got %d", n)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("vector_search: rowid must be an integer, got %T", v)
	}
}
