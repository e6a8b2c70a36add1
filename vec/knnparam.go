package vec

import (
	"database/sql/driver"
	"fmt"
	"sync"

	"github.com/viant/vecsearch/vector"
	sqlite "modernc.org/sqlite"
)

// knnParamTag discriminates a genuine knn_param() handle from an arbitrary
// integer a caller might pass to knn_search by mistake.
const knnParamTag = "vector_search_knn_param"

type knnParam struct {
	tag   string
	query vector.Vector
	k     int
}

var (
	knnParamMu      sync.Mutex
	knnParamNextID  int64
	knnParamHandles = make(map[int64]*knnParam)
)

// allocKNNParam stores a query/k pair behind a fresh handle, returned as an
// ordinary int64 driver.Value. database/sql has no pointer-valued
// driver.Value, so the handle stands in for the pointer sqlite3_bind_pointer
// would carry in the C API this mirrors.
func allocKNNParam(query vector.Vector, k int) int64 {
	knnParamMu.Lock()
	defer knnParamMu.Unlock()
	knnParamNextID++
	id := knnParamNextID
	knnParamHandles[id] = &knnParam{tag: knnParamTag, query: query, k: k}
	return id
}

// takeKNNParam looks up and unconditionally releases the handle behind id,
// single-owner and single-use as required by §4.5.
func takeKNNParam(id int64) (*knnParam, bool) {
	knnParamMu.Lock()
	defer knnParamMu.Unlock()
	p, ok := knnParamHandles[id]
	if ok {
		delete(knnParamHandles, id)
	}
	return p, ok
}

var registerKNNFuncsOnce sync.Once

// registerKNNFunctions registers knn_param and the knn_search marker
// function with the driver. It is idempotent and safe to call from
// multiple Register calls.
func registerKNNFunctions() {
	registerKNNFuncsOnce.Do(func() {
		_ = sqlite.RegisterDeterministicScalarFunction("knn_param", 2, knnParamFunc)
		_ = sqlite.RegisterDeterministicScalarFunction("knn_search", 2, knnSearchMarkerFunc)
	})
}

func knnParamFunc(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("knn_param: expected 2 arguments, got %d", len(args))
	}
	blob, ok := args[0].([]byte)
	if !ok {
		return nil, fmt.Errorf("knn_param: first argument must be a BLOB, got %T", args[0])
	}
	v, err := vector.FromBlob(blob)
	if err != nil {
		return nil, fmt.Errorf("knn_param: %w", err)
	}
	k, err := asInt64(args[1])
	if err != nil {
		return nil, fmt.Errorf("knn_param: %w", err)
	}
	if k <= 0 {
		return nil, fmt.Errorf("knn_param: k must be positive, got %d", k)
	}
	return allocKNNParam(v, int(k)), nil
}

// knnSearchMarkerFunc is never actually invoked on the hot path: BestIndex
// recognizes knn_search as a function-valued constraint and Filter consumes
// its parameter directly. Its body is empty and it returns NULL; it exists
// only so the scalar function is registered and callable at all.
func knnSearchMarkerFunc(_ *sqlite.FunctionContext, _ []driver.Value) (driver.Value, error) {
	return nil, nil
}

// knnParamOutstanding reports the number of allocated-but-not-yet-consumed
// handles. Used by tests to confirm takeKNNParam releases a handle exactly
// once.
func knnParamOutstanding() int {
	knnParamMu.Lock()
	defer knnParamMu.Unlock()
	return len(knnParamHandles)
}

func asInt64(v driver.Value) (int64, error) {
	switch val := v.(type) {
	case int64:
		return val, nil
	case float64:
		return int64(val), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}
