package vecadmin

import (
	"path/filepath"
	"testing"

	"github.com/viant/vecsearch/engine"
	"github.com/viant/vecsearch/vec"
	"github.com/viant/vecsearch/vector"
)

func TestVecAdminStats(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "vec_admin.sqlite")
	db, err := engine.Open(dbPath)
	if err != nil {
		t.Fatalf("engine.Open failed: %v", err)
	}
	defer db.Close()
	if err := vec.Register(db); err != nil {
		t.Fatalf("vec.Register failed: %v", err)
	}
	if err := Register(db); err != nil {
		t.Fatalf("vecadmin.Register failed: %v", err)
	}

	if _, err := db.Exec(`CREATE VIRTUAL TABLE vector_search_admin USING vector_search_admin(target)`); err != nil {
		t.Fatalf("CREATE VIRTUAL TABLE vector_search_admin failed: %v", err)
	}
	if _, err := db.Exec(`CREATE VIRTUAL TABLE docs USING vector_search('{"name":"v","dim":2,"distance_type":"l2"}', '{"max_elements":10}')`); err != nil {
		t.Fatalf("CREATE VIRTUAL TABLE docs failed: %v", err)
	}

	e1, err := vector.EncodeEmbedding([]float32{1, 0})
	if err != nil {
		t.Fatalf("EncodeEmbedding failed: %v", err)
	}
	e2, err := vector.EncodeEmbedding([]float32{0, 1})
	if err != nil {
		t.Fatalf("EncodeEmbedding failed: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO docs(rowid, v) VALUES (1, ?), (2, ?)`, e1, e2); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	row := db.QueryRow(`SELECT rows, capacity, dimension, metric FROM vector_search_admin WHERE target MATCH 'docs'`)
	var rows, capacity, dimension int
	var metric string
	if err := row.Scan(&rows, &capacity, &dimension, &metric); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if rows != 2 || capacity != 10 || dimension != 2 || metric != "l2" {
		t.Fatalf("stats = (rows=%d, capacity=%d, dimension=%d, metric=%q), want (2, 10, 2, \"l2\")", rows, capacity, dimension, metric)
	}
}

func TestVecAdminUnknownTarget(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "vec_admin_unknown.sqlite")
	db, err := engine.Open(dbPath)
	if err != nil {
		t.Fatalf("engine.Open failed: %v", err)
	}
	defer db.Close()
	if err := Register(db); err != nil {
		t.Fatalf("vecadmin.Register failed: %v", err)
	}
	if _, err := db.Exec(`CREATE VIRTUAL TABLE vector_search_admin USING vector_search_admin(target)`); err != nil {
		t.Fatalf("CREATE VIRTUAL TABLE vector_search_admin failed: %v", err)
	}

	rows, err := db.Query(`SELECT rows FROM vector_search_admin WHERE target MATCH 'does_not_exist'`)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	defer rows.Close()
	if rows.Next() {
		t.Fatalf("expected zero rows for unknown target")
	}
}
