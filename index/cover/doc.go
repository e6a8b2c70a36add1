// Package cover provides the production index.Index backend: an ANN index
// wrapping a cover tree (internal/cover/tree), keyed by inserted
// label. It trades exactness for expected logarithmic query cost as the
// corpus grows.
package cover
