package vector

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Metric identifies a distance function used by a vector space and by the
// ANN index built over it.
type Metric string

const (
	// MetricL2 orders results by ascending Euclidean distance.
	MetricL2 Metric = "l2"
	// MetricCosine orders results by ascending cosine distance (1 - cosine
	// similarity). Vectors are normalized before insertion into an index
	// built with this metric.
	MetricCosine Metric = "cosine"
	// MetricIP orders results by descending inner product, expressed
	// internally as ascending negated dot product so every metric shares an
	// ascending-distance ordering.
	MetricIP Metric = "ip"
)

// VectorSpace describes the fixed shape and comparison rule for every vector
// stored in a given vector_search table: its column name, dimensionality,
// distance metric, and whether vectors are normalized before insertion. It
// is immutable once a table is created.
type VectorSpace struct {
	Name      string
	Dim       int
	Metric    Metric
	Normalize bool
}

// vectorSpaceLiteral is the on-the-wire JSON shape of a VectorSpace literal,
// e.g. `{"name":"v","dim":128,"distance_type":"l2"}`.
type vectorSpaceLiteral struct {
	Name         string `json:"name"`
	Dim          int    `json:"dim"`
	DistanceType Metric `json:"distance_type"`
}

// ParseVectorSpace parses the JSON-literal column type used in a
// CREATE VIRTUAL TABLE ... USING vector_search(...) declaration, e.g.
// `{"name":"v","dim":128,"distance_type":"l2"}`. Unknown keys are a parse
// error. Cosine forces Normalize=true.
func ParseVectorSpace(raw string) (VectorSpace, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	var lit vectorSpaceLiteral
	if err := dec.Decode(&lit); err != nil {
		return VectorSpace{}, fmt.Errorf("vector: invalid vector space literal %q: %w", raw, err)
	}
	vs := VectorSpace{
		Name:      lit.Name,
		Dim:       lit.Dim,
		Metric:    lit.DistanceType,
		Normalize: lit.DistanceType == MetricCosine,
	}
	if err := vs.Validate(); err != nil {
		return VectorSpace{}, err
	}
	return vs, nil
}

// Encode renders vs back to the compact JSON object form ParseVectorSpace
// accepts.
func (vs VectorSpace) Encode() (string, error) {
	b, err := json.Marshal(vectorSpaceLiteral{Name: vs.Name, Dim: vs.Dim, DistanceType: vs.Metric})
	if err != nil {
		return "", fmt.Errorf("vector: %w", err)
	}
	return string(b), nil
}

// Validate checks that the VectorSpace has a legal column identifier, a
// positive dimension, and a known metric.
func (vs VectorSpace) Validate() error {
	if !isValidIdentifier(vs.Name) {
		return fmt.Errorf("vector: name %q is not a valid column identifier", vs.Name)
	}
	if vs.Dim <= 0 {
		return fmt.Errorf("vector: dim must be positive, got %d", vs.Dim)
	}
	switch vs.Metric {
	case MetricL2, MetricCosine, MetricIP:
		return nil
	default:
		return fmt.Errorf("vector: unknown distance_type %q", vs.Metric)
	}
}

// isValidIdentifier reports whether s is safe to splice unquoted into a
// CREATE TABLE column list: non-empty, starting with a letter or
// underscore, followed by letters, digits, or underscores.
func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
