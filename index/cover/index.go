package cover

import (
	"fmt"

	"github.com/viant/vecsearch/index"
	"github.com/viant/vecsearch/internal/cover/tree"
)

// Index is the production ANN backend. It wraps a cover tree keyed by
// inserted label, trading exactness for expected logarithmic query cost as
// the corpus grows.
type Index struct {
	metric index.Metric
	dim    int
	cap    int

	t        *tree.Tree
	byLabel  map[int64]*tree.Point
	distFunc tree.DistanceFunction
}

// New constructs an empty Index for the given metric and capacity, with the
// cover tree's branching base derived from m (see BaseFromM).
func New(metric index.Metric, capacity int, m int) (*Index, error) {
	df, err := distanceFunctionFor(metric)
	if err != nil {
		return nil, err
	}
	return &Index{
		metric:   metric,
		cap:      capacity,
		t:        tree.NewTree(BaseFromM(m), df),
		byLabel:  make(map[int64]*tree.Point),
		distFunc: df,
	}, nil
}

// BaseFromM maps an HNSW-style M (target neighbor count per node) onto a
// cover-tree branching base > 1. A larger M asks for a denser, higher-recall
// graph in an HNSW backend; the cover-tree analogue is a smaller base, which
// shrinks the geometric level spacing and makes the tree branch more finely
// for the same data. m <= 0 falls back to the default M of 16, which yields
// the teacher's original fixed base of 1.3.
func BaseFromM(m int) float32 {
	if m <= 0 {
		m = 16
	}
	base := 1 + 4.8/float32(m)
	switch {
	case base <= 1.01:
		return 1.01
	case base > 3:
		return 3
	default:
		return base
	}
}

func distanceFunctionFor(metric index.Metric) (tree.DistanceFunction, error) {
	switch metric {
	case index.MetricL2:
		return tree.DistanceFunctionEuclidean, nil
	case index.MetricCosine:
		return tree.DistanceFunctionCosine, nil
	case index.MetricIP:
		return tree.DistanceFunctionInnerProduct, nil
	default:
		return "", fmt.Errorf("cover: unknown metric %q", metric)
	}
}

func (i *Index) Add(label int64, vec []float32) error {
	if _, exists := i.byLabel[label]; exists {
		return fmt.Errorf("%w: %d", index.ErrDuplicateLabel, label)
	}
	if i.cap > 0 && len(i.byLabel) >= i.cap {
		return index.ErrCapacityExceeded
	}
	if i.dim == 0 {
		i.dim = len(vec)
	} else if len(vec) != i.dim {
		return &index.DistanceMismatchError{Want: i.dim, Got: len(vec)}
	}
	point := tree.NewPoint(vec...)
	i.t.Insert(label, point)
	i.byLabel[label] = point
	return nil
}

func (i *Index) SearchKNN(query []float32, k int) ([]index.Result, error) {
	if len(i.byLabel) == 0 {
		return nil, nil
	}
	if len(query) != i.dim {
		return nil, &index.DistanceMismatchError{Want: i.dim, Got: len(query)}
	}
	if k <= 0 {
		k = len(i.byLabel)
	}
	qPoint := tree.NewPoint(query...)
	neighbors := i.t.KNearestNeighbors(qPoint, k)
	results := make([]index.Result, len(neighbors))
	for j, n := range neighbors {
		results[j] = index.Result{Label: i.t.Value(n.Point), Distance: n.Distance}
	}
	return results, nil
}

func (i *Index) GetByLabel(label int64) ([]float32, error) {
	point, ok := i.byLabel[label]
	if !ok {
		return nil, fmt.Errorf("%w: %d", index.ErrNotFound, label)
	}
	return point.Vector, nil
}

func (i *Index) Len() int {
	return len(i.byLabel)
}
