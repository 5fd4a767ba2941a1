// Package registry tracks the processes the launcher has started.
//
// Entries are keyed by display name. Recording a name that is already
// tracked replaces the entry (last write wins) but keeps its position in
// the listing. Entries are only removed by an explicit Remove; a process
// that exits on its own stays listed until it is closed.
//
// Example Usage:
//
//	reg := registry.NewManager()
//	reg.Record(entry)
//	for _, info := range reg.List() { ... }
//	if e, ok := reg.Lookup("game.py"); ok { ... }
//	reg.Remove("game.py")
package registry
