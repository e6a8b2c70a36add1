package bruteforce

import (
	"fmt"
	"math"
	"sort"

	"github.com/viant/vecsearch/index"
)

// Index is an exact, O(n)-per-query vector index. It exists both as a
// production-usable exact-search backend for small corpora and as the
// ground-truth implementation index/cover's approximate results are tested
// against.
type Index struct {
	metric index.Metric
	dim    int
	cap    int

	labels []int64
	vecs   [][]float32
	byID   map[int64]int
}

// New constructs an empty Index for the given metric and capacity. dim is
// fixed by the first call to Add and validated on every subsequent call.
func New(metric index.Metric, capacity int) *Index {
	return &Index{
		metric: metric,
		cap:    capacity,
		byID:   make(map[int64]int),
	}
}

func (i *Index) Add(label int64, vec []float32) error {
	if _, exists := i.byID[label]; exists {
		return fmt.Errorf("%w: %d", index.ErrDuplicateLabel, label)
	}
	if i.cap > 0 && len(i.labels) >= i.cap {
		return index.ErrCapacityExceeded
	}
	if i.dim == 0 {
		i.dim = len(vec)
	} else if len(vec) != i.dim {
		return &index.DistanceMismatchError{Want: i.dim, Got: len(vec)}
	}
	stored := append([]float32(nil), vec...)
	i.byID[label] = len(i.labels)
	i.labels = append(i.labels, label)
	i.vecs = append(i.vecs, stored)
	return nil
}

func (i *Index) SearchKNN(query []float32, k int) ([]index.Result, error) {
	if len(i.labels) == 0 {
		return nil, nil
	}
	if len(query) != i.dim {
		return nil, &index.DistanceMismatchError{Want: i.dim, Got: len(query)}
	}
	results := make([]index.Result, len(i.labels))
	for j, v := range i.vecs {
		d, err := distance(i.metric, query, v)
		if err != nil {
			return nil, err
		}
		results[j] = index.Result{Label: i.labels[j], Distance: float32(d)}
	}
	sort.Slice(results, func(a, b int) bool { return results[a].Distance < results[b].Distance })
	if k <= 0 || k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

func (i *Index) GetByLabel(label int64) ([]float32, error) {
	j, ok := i.byID[label]
	if !ok {
		return nil, fmt.Errorf("%w: %d", index.ErrNotFound, label)
	}
	return i.vecs[j], nil
}

func (i *Index) Len() int {
	return len(i.labels)
}

func distance(metric index.Metric, a, b []float32) (float64, error) {
	switch metric {
	case index.MetricL2:
		var sum float64
		for i := range a {
			d := float64(a[i]) - float64(b[i])
			sum += d * d
		}
		return math.Sqrt(sum), nil
	case index.MetricCosine:
		var dot, na2, nb2 float64
		for i := range a {
			va, vb := float64(a[i]), float64(b[i])
			dot += va * vb
			na2 += va * va
			nb2 += vb * vb
		}
		if na2 == 0 || nb2 == 0 {
			return 0, fmt.Errorf("bruteforce: cosine distance on zero-magnitude vector")
		}
		return 1 - dot/(math.Sqrt(na2)*math.Sqrt(nb2)), nil
	case index.MetricIP:
		var dot float64
		for i := range a {
			dot += float64(a[i]) * float64(b[i])
		}
		return -dot, nil
	default:
		return 0, fmt.Errorf("bruteforce: unknown metric %q", metric)
	}
}
