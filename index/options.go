package index

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// IndexOptions configures the capacity and construction parameters of an ANN
// index. MaxElements bounds capacity directly; M configures the cover-tree
// branching base (see index/cover.BaseFromM). EfConstruction and RandomSeed
// are carried through even though the cover-tree backend does not use them
// directly (see DESIGN.md); they keep the external DDL surface stable if a
// graph-based backend is added later.
type IndexOptions struct {
	MaxElements    int `json:"max_elements"`
	M              int `json:"M"`
	EfConstruction int `json:"ef_construction"`
	RandomSeed     int `json:"random_seed"`
}

// DefaultIndexOptions mirrors the defaults a caller gets by omitting the
// second CREATE VIRTUAL TABLE argument entirely.
func DefaultIndexOptions() IndexOptions {
	return IndexOptions{
		MaxElements:    100_000,
		M:              16,
		EfConstruction: 200,
		RandomSeed:     100,
	}
}

// ParseIndexOptions parses the JSON-literal index-options argument of a
// CREATE VIRTUAL TABLE ... USING vector_search(...) declaration. An empty
// literal ("" or "{}") yields DefaultIndexOptions.
func ParseIndexOptions(raw string) (IndexOptions, error) {
	opts := DefaultIndexOptions()
	s := strings.TrimSpace(raw)
	if s == "" || s == "{}" {
		return opts, nil
	}
	dec := json.NewDecoder(strings.NewReader(s))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		return IndexOptions{}, fmt.Errorf("index: invalid index options literal %q: %w", raw, err)
	}
	if err := opts.Validate(); err != nil {
		return IndexOptions{}, err
	}
	return opts, nil
}

// maxIndexOption is the exclusive upper bound spec.md §4.3 places on every
// IndexOptions integer: each is in range [1, 2^31).
const maxIndexOption = 1 << 31

// Validate checks that MaxElements, M and EfConstruction are in [1, 2^31)
// and that RandomSeed fits in a signed 32-bit int.
func (o IndexOptions) Validate() error {
	if o.MaxElements <= 0 || o.MaxElements >= maxIndexOption {
		return fmt.Errorf("index: max_elements must be in [1, 2^31), got %d", o.MaxElements)
	}
	if o.M <= 0 || o.M >= maxIndexOption {
		return fmt.Errorf("index: M must be in [1, 2^31), got %d", o.M)
	}
	if o.EfConstruction <= 0 || o.EfConstruction >= maxIndexOption {
		return fmt.Errorf("index: ef_construction must be in [1, 2^31), got %d", o.EfConstruction)
	}
	if o.RandomSeed < math.MinInt32 || o.RandomSeed > math.MaxInt32 {
		return fmt.Errorf("index: random_seed must fit in a signed 32-bit int, got %d", o.RandomSeed)
	}
	return nil
}
