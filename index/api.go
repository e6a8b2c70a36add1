package index

import (
	"errors"
	"fmt"
)

// Metric identifies the distance function an index scores neighbors with.
// It mirrors vector.Metric but lives in this package to keep index free of
// a dependency on the SQL-facing vector-space literal format.
type Metric string

const (
	MetricL2     Metric = "l2"
	MetricCosine Metric = "cosine"
	MetricIP     Metric = "ip"
)

// Result is one match returned by SearchKNN, ordered by ascending Distance.
type Result struct {
	Label    int64
	Distance float32
}

var (
	// ErrDuplicateLabel is returned by Add when the label already exists.
	ErrDuplicateLabel = errors.New("index: duplicate label")
	// ErrCapacityExceeded is returned by Add when the index is full.
	ErrCapacityExceeded = errors.New("index: capacity exceeded")
	// ErrNotFound is returned by GetByLabel when the label is absent.
	ErrNotFound = errors.New("index: label not found")
)

// Index is the ANN contract shared by every backend in this module.
// Implementations are not safe for concurrent use; callers serialize access
// the way vec.Table does (one vtab instance per connection).
type Index interface {
	// Add inserts a point under label. It returns ErrDuplicateLabel if label
	// already exists, or ErrCapacityExceeded if the configured capacity
	// would be exceeded.
	Add(label int64, vec []float32) error

	// SearchKNN returns up to k Results ordered by ascending Distance. It may
	// return fewer than k if the index holds fewer points.
	SearchKNN(query []float32, k int) ([]Result, error)

	// GetByLabel returns the stored vector for label, or ErrNotFound.
	GetByLabel(label int64) ([]float32, error)

	// Len returns the number of points currently stored.
	Len() int
}

// DistanceMismatchError reports a query or insert vector whose dimension
// does not match the index's configured dimension.
type DistanceMismatchError struct {
	Want, Got int
}

func (e *DistanceMismatchError) Error() string {
	return fmt.Sprintf("index: dimension mismatch: want %d, got %d", e.Want, e.Got)
}
