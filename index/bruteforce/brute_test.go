package bruteforce

import (
	"errors"
	"testing"

	"github.com/viant/vecsearch/index"
)

func TestIndexAddAndSearch(t *testing.T) {
	idx := New(index.MetricL2, 0)
	if err := idx.Add(1, []float32{0, 0}); err != nil {
		t.Fatalf("Add(1) failed: %v", err)
	}
	if err := idx.Add(2, []float32{3, 4}); err != nil {
		t.Fatalf("Add(2) failed: %v", err)
	}
	if idx.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", idx.Len())
	}

	results, err := idx.SearchKNN([]float32{0, 0}, 2)
	if err != nil {
		t.Fatalf("SearchKNN failed: %v", err)
	}
	if len(results) != 2 || results[0].Label != 1 || results[1].Label != 2 {
		t.Fatalf("SearchKNN = %+v, want label 1 then 2", results)
	}
	if results[1].Distance != 5 {
		t.Fatalf("results[1].Distance = %v, want 5", results[1].Distance)
	}
}

func TestIndexDuplicateLabel(t *testing.T) {
	idx := New(index.MetricL2, 0)
	if err := idx.Add(1, []float32{0, 0}); err != nil {
		t.Fatalf("Add(1) failed: %v", err)
	}
	err := idx.Add(1, []float32{1, 1})
	if !errors.Is(err, index.ErrDuplicateLabel) {
		t.Fatalf("Add(1) again: err = %v, want ErrDuplicateLabel", err)
	}
}

func TestIndexCapacityExceeded(t *testing.T) {
	idx := New(index.MetricL2, 1)
	if err := idx.Add(1, []float32{0, 0}); err != nil {
		t.Fatalf("Add(1) failed: %v", err)
	}
	if err := idx.Add(2, []float32{1, 1}); !errors.Is(err, index.ErrCapacityExceeded) {
		t.Fatalf("Add(2): err = %v, want ErrCapacityExceeded", err)
	}
}

func TestIndexGetByLabelNotFound(t *testing.T) {
	idx := New(index.MetricL2, 0)
	if _, err := idx.GetByLabel(99); !errors.Is(err, index.ErrNotFound) {
		t.Fatalf("GetByLabel(99): err = %v, want ErrNotFound", err)
	}
}

func TestIndexCosineOrdering(t *testing.T) {
	idx := New(index.MetricCosine, 0)
	_ = idx.Add(1, []float32{1, 0})
	_ = idx.Add(2, []float32{0, 1})
	results, err := idx.SearchKNN([]float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("SearchKNN failed: %v", err)
	}
	if results[0].Label != 1 {
		t.Fatalf("SearchKNN[0].Label = %d, want 1 (identical direction closest)", results[0].Label)
	}
}
