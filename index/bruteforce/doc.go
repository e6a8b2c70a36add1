// Package bruteforce provides an exact, O(n)-per-query index.Index
// implementation that answers kNN queries by scanning every stored vector.
// It is used both as a small-corpus production backend and as the
// ground-truth reference index/cover's approximate results are checked
// against.
package bruteforce

