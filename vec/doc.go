// Package vec implements the vector_search virtual table module: a SQLite
// vtab backed by an in-memory ANN index (see package index). KNN queries are
// expressed as a function-valued WHERE constraint,
// `knn_search(col, knn_param(query_blob, k))`, recognized by BestIndex via
// FindFunction rather than by a MATCH operator.
//
// Features:
//   - CREATE VIRTUAL TABLE ... USING vector_search(vector_space, index_options)
//   - INSERT-only Update: rowid plus a BLOB-encoded vector
//   - knn_param/knn_search scalar functions carrying an opaque query handle
//   - a package-level registry consumed by vecadmin for introspection
package vec
