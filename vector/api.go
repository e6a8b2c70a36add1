// Package vector provides the value types, wire codec, and distance math
// shared by every layer of vecsearch: the vec virtual table adapter, the
// index backends, and the SQLite scalar functions registered by engine.
package vector

import (
	"math"
)

// Vector is a fixed-precision float32 embedding together with its blob
// encoding. It is the in-memory counterpart of a vector_search column value.
type Vector struct {
	values []float32
}

// New wraps a slice of float32 values as a Vector. The slice is not copied;
// callers must not mutate it afterwards.
func New(values []float32) Vector {
	return Vector{values: values}
}

// FromBlob decodes a little-endian float32 BLOB, as stored in a vector_search
// column, into a Vector. It fails with ErrDecode on an empty or
// misaligned blob.
func FromBlob(b []byte) (Vector, error) {
	values, err := DecodeEmbedding(b)
	if err != nil {
		return Vector{}, err
	}
	return Vector{values: values}, nil
}

// ToBlob encodes the Vector into its little-endian float32 BLOB
// representation, ready for storage or for binding into a knn_param call.
func (v Vector) ToBlob() ([]byte, error) {
	return EncodeEmbedding(v.values)
}

// Values returns the underlying float32 slice. Callers must not mutate it.
func (v Vector) Values() []float32 {
	return v.values
}

// Dim returns the number of dimensions in the vector.
func (v Vector) Dim() int {
	return len(v.values)
}

// Normalize returns a new Vector scaled to unit L2 norm. A zero-magnitude
// vector normalizes to itself, unchanged.
func (v Vector) Normalize() Vector {
	var sumSq float64
	for _, x := range v.values {
		sumSq += float64(x) * float64(x)
	}
	if sumSq == 0 {
		return v
	}
	mag := math.Sqrt(sumSq)
	out := make([]float32, len(v.values))
	for i, x := range v.values {
		out[i] = float32(float64(x) / mag)
	}
	return Vector{values: out}
}
