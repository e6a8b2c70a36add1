package vector_test

import (
	"context"
	"testing"

	"github.com/viant/vecsearch/engine"
	"github.com/viant/vecsearch/vec"
	"github.com/viant/vecsearch/vector"
)

func TestClientInsertAndQuery(t *testing.T) {
	ctx := context.Background()
	db, err := engine.Open(":memory:")
	if err != nil {
		t.Fatalf("engine.Open failed: %v", err)
	}
	defer db.Close()
	if err := vec.Register(db); err != nil {
		t.Fatalf("vec.Register failed: %v", err)
	}

	client, err := vector.Open(ctx, db, "docs", vector.VectorSpace{Name: "v", Dim: 2, Metric: vector.MetricL2}, "")
	if err != nil {
		t.Fatalf("vector.Open failed: %v", err)
	}

	if err := client.Insert(ctx, 1, vector.New([]float32{0, 0})); err != nil {
		t.Fatalf("Insert(1) failed: %v", err)
	}
	if err := client.Insert(ctx, 2, vector.New([]float32{10, 10})); err != nil {
		t.Fatalf("Insert(2) failed: %v", err)
	}
	if err := client.Insert(ctx, 3, vector.New([]float32{1, 1})); err != nil {
		t.Fatalf("Insert(3) failed: %v", err)
	}

	matches, err := client.Query(ctx, vector.New([]float32{0, 0}), 3)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("Query returned %d matches, want 3", len(matches))
	}
	if matches[0].Rowid != 1 || matches[1].Rowid != 3 || matches[2].Rowid != 2 {
		t.Fatalf("Query order = %+v, want rowids [1 3 2]", matches)
	}
}

func TestClientOpenRejectsInvalidSpace(t *testing.T) {
	ctx := context.Background()
	db, err := engine.Open(":memory:")
	if err != nil {
		t.Fatalf("engine.Open failed: %v", err)
	}
	defer db.Close()
	if err := vec.Register(db); err != nil {
		t.Fatalf("vec.Register failed: %v", err)
	}

	if _, err := vector.Open(ctx, db, "docs", vector.VectorSpace{Name: "v", Dim: 0, Metric: vector.MetricL2}, ""); err == nil {
		t.Fatalf("Open with dim=0: want error, got nil")
	}
}
