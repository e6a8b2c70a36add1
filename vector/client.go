package vector

import (
	"context"
	"database/sql"
	"fmt"
)

// Client is a typed, Go-idiomatic wrapper over the raw vector_search SQL
// surface for callers who don't want to hand-write SQL literals. It
// supersedes the teacher's vecutil.Index convenience wrapper — see
// DESIGN.md.
type Client struct {
	db    *sql.DB
	table string
	space VectorSpace
}

// Match is a single knn_search hit.
type Match struct {
	Rowid    int64
	Distance float64
}

// Open issues `CREATE VIRTUAL TABLE <table> USING vector_search(...)` for
// the given space (and, if optsLiteral is non-empty, index options) and
// returns a Client bound to it. The caller must have already registered
// the vector_search module on db via vec.Register.
func Open(ctx context.Context, db *sql.DB, table string, space VectorSpace, optsLiteral string) (*Client, error) {
	if db == nil {
		return nil, fmt.Errorf("vector: db is nil")
	}
	if err := space.Validate(); err != nil {
		return nil, err
	}
	spaceLiteral, err := space.Encode()
	if err != nil {
		return nil, err
	}
	stmt := fmt.Sprintf("CREATE VIRTUAL TABLE %s USING vector_search(%s", table, quoteLiteral(spaceLiteral))
	if optsLiteral != "" {
		stmt += ", " + quoteLiteral(optsLiteral)
	}
	stmt += ")"
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return nil, fmt.Errorf("vector: %w", err)
	}
	return &Client{db: db, table: table, space: space}, nil
}

// Insert stores v under rowid.
func (c *Client) Insert(ctx context.Context, rowid int64, v Vector) error {
	blob, err := v.ToBlob()
	if err != nil {
		return err
	}
	stmt := fmt.Sprintf("INSERT INTO %s(rowid, %s) VALUES (?, ?)", c.table, c.space.Name)
	if _, err := c.db.ExecContext(ctx, stmt, rowid, blob); err != nil {
		return fmt.Errorf("vector: %w", err)
	}
	return nil
}

// Query returns the k nearest neighbors of v, ordered by ascending distance.
func (c *Client) Query(ctx context.Context, v Vector, k int) ([]Match, error) {
	blob, err := v.ToBlob()
	if err != nil {
		return nil, err
	}
	stmt := fmt.Sprintf("SELECT rowid, distance FROM %s WHERE knn_search(%s, knn_param(?, ?))", c.table, c.space.Name)
	rows, err := c.db.QueryContext(ctx, stmt, blob, k)
	if err != nil {
		return nil, fmt.Errorf("vector: %w", err)
	}
	defer rows.Close()

	var out []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.Rowid, &m.Distance); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func quoteLiteral(s string) string {
	return "'" + escapeSingleQuotes(s) + "'"
}

func escapeSingleQuotes(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			out = append(out, '\'', '\'')
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}
