package vec

import "sync"

// tableRegistry lets vecadmin look up a live Table by name for introspection
// (rows/capacity/dimension/metric), grounded on the teacher's own
// package-level sharedCache map-plus-mutex idiom.
var tableRegistry = struct {
	mu     sync.RWMutex
	byName map[string]*Table
}{byName: make(map[string]*Table)}

func registerTable(name string, t *Table) {
	tableRegistry.mu.Lock()
	defer tableRegistry.mu.Unlock()
	tableRegistry.byName[name] = t
}

func unregisterTable(name string) {
	tableRegistry.mu.Lock()
	defer tableRegistry.mu.Unlock()
	delete(tableRegistry.byName, name)
}

// Lookup returns the live Table registered under name, if any. It is used
// by vecadmin's introspection virtual table.
func Lookup(name string) (*Table, bool) {
	tableRegistry.mu.RLock()
	defer tableRegistry.mu.RUnlock()
	t, ok := tableRegistry.byName[name]
	return t, ok
}
