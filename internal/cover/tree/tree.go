package tree

// Adapted from github.com/viant/gds/tree/cover, specialized to vecsearch:
// points carry their own int64 rowid label directly instead of an indirect
// generic value store, and the tree carries no internal lock. A Tree is
// owned by exactly one index.Index, which is itself owned by exactly one
// vec.Table on a single connection (see DESIGN.md's "no internal locking"
// resolution) — nothing here is ever touched from two goroutines at once.

import (
	"container/heap"
	"math"
	"sort"

	"github.com/viant/vec/search"
)

// Tree is a cover tree over int64-labeled points, searchable under any
// DistanceFunction it was constructed with.
type Tree struct {
	root         *Node
	base         float32
	distanceFunc DistanceFunc
	version      uint64
}

// NewTree constructs a cover tree with the given branching base and
// distance metric. base <= 1 falls back to the default base of 1.3; any
// base > 1 is used as given.
func NewTree(base float32, distanceFn DistanceFunction) *Tree {
	if base <= 1 {
		base = 1.3
	}
	fn := distanceFn.Function()
	if fn == nil {
		fn = DistanceFunctionCosine.Function()
	}
	return &Tree{base: base, distanceFunc: fn}
}

// Insert adds point to the tree under label.
func (t *Tree) Insert(label int64, point *Point) {
	point.Label = label
	if point.Magnitude == 0 && len(point.Vector) > 0 {
		point.Magnitude = search.Float32s(point.Vector).Magnitude()
	}
	if t.root == nil {
		node := NewNode(point, 0, t.base)
		t.root = &node
	} else {
		t.insert(t.root, point, 0)
	}
	t.version++
}

// Value returns the label stored at point.
func (t *Tree) Value(point *Point) int64 {
	if point == nil {
		return 0
	}
	return point.Label
}

func (t *Tree) insert(node *Node, point *Point, level int32) {
	for {
		baseLevel := float32(math.Pow(float64(t.base), float64(level)))
		distance := t.distanceFunc(point, node.point)
		if distance < baseLevel {
			inserted := false
			for i := range node.children {
				child := &node.children[i]
				if t.distanceFunc(point, child.point) < baseLevel {
					node = child
					level--
					inserted = true
					break
				}
			}
			if !inserted {
				node.children = append(node.children, NewNode(point, level-1, t.base))
				return
			}
		} else {
			level++
			if level > node.level {
				newRoot := NewNode(point, level, t.base)
				newRoot.children = append(newRoot.children, *t.root)
				t.root = &newRoot
				return
			}
		}
	}
}

// KNearestNeighbors runs a depth-first kNN search, pruning subtrees whose
// cached radius proves they can't beat the current worst candidate.
func (t *Tree) KNearestNeighbors(point *Point, k int) []*Neighbor {
	if t.root == nil {
		return nil
	}
	h := &Neighbors{}
	heap.Init(h)
	t.kNearestNeighbors(t.root, point, k, h)
	result := make([]*Neighbor, h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		n := heap.Pop(h).(Neighbor)
		result[i] = &n
	}
	return result
}

func (t *Tree) kNearestNeighbors(node *Node, point *Point, k int, h *Neighbors) {
	dc := t.distanceFunc(point, node.point)
	if h.Len() < k {
		heap.Push(h, Neighbor{Point: node.point, Distance: dc})
	} else if k > 0 && dc < (*h)[0].Distance {
		heap.Pop(h)
		heap.Push(h, Neighbor{Point: node.point, Distance: dc})
	}
	if len(node.children) == 0 {
		return
	}
	type childDist struct {
		child *Node
		dist  float32
	}
	cds := make([]childDist, 0, len(node.children))
	for i := range node.children {
		child := &node.children[i]
		cds = append(cds, childDist{child: child, dist: t.distanceFunc(point, child.point)})
	}
	sort.Slice(cds, func(i, j int) bool { return cds[i].dist < cds[j].dist })
	for _, cd := range cds {
		var worst float32 = float32(math.MaxFloat32)
		if h.Len() == k && k > 0 {
			worst = (*h)[0].Distance
		}
		r := t.ensureRadius(cd.child)
		if h.Len() == k && (cd.dist-r) >= worst {
			continue
		}
		t.kNearestNeighbors(cd.child, point, k, h)
	}
}

// ensureRadius memoizes a node's subtree radius against the tree's version
// counter, so a stale radius is never reused after an Insert changes the
// subtree it covers.
func (t *Tree) ensureRadius(n *Node) float32 {
	if n == nil {
		return 0
	}
	if n.radiusComputed == t.version {
		return n.radius
	}
	if len(n.children) == 0 {
		n.radius = 0
		n.radiusComputed = t.version
		return 0
	}
	maxR := float32(0)
	for i := range n.children {
		child := &n.children[i]
		cr := t.ensureRadius(child)
		d := t.distanceFunc(n.point, child.point) + cr
		if d > maxR {
			maxR = d
		}
	}
	n.radius = maxR
	n.radiusComputed = t.version
	return maxR
}
