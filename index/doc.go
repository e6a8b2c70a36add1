// Package index defines the ANN index contract used by vec.Table and the
// two backends that satisfy it: bruteforce (exact) and cover (approximate,
// cover-tree backed). See api.go and options.go.
package index

