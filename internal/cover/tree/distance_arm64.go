//go:build arm64

package tree

import "github.com/viant/vec/search"

func cosineDistanceWithMagnitude(v1 search.Float32s, vec2 []float32, magnitude1, magnitude2 float32) float32 {
	return v1.CosineDistanceWithMagnitudesNeon(vec2, magnitude1, magnitude2)
}
