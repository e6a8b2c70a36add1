package tree

// Point is a stored vector paired with the rowid label vecsearch identifies
// it by. Tree.Insert fills in Magnitude for every stored point; CosineDistance
// computes it on the fly, without storing it, for a point whose Magnitude is
// zero (such as a query point).
type Point struct {
	Label     int64
	Magnitude float32
	Vector    []float32
}

// NewPoint constructs a point for the given vector. Tree.Insert assigns its
// label.
func NewPoint(vector ...float32) *Point {
	return &Point{Vector: vector}
}
