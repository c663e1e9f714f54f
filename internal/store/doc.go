// Package store provides the key-value storage layer for memolist.
//
// The [Store] interface is a minimal durable slot store: Get, Put and Delete
// on string keys holding opaque byte values. Three backends implement it:
//   - Bolt (default): go.etcd.io/bbolt, one bucket per database file
//   - SQLite: modernc.org/sqlite through the store/sqlite package
//   - Memory: a map, used by tests and throwaway sessions
//
// Use [Open] to select a backend by name:
//
//	st, err := store.Open(store.BackendBolt, "/home/me/.config/memolist/memolist.bolt")
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
// Get returns [ErrNotFound] for absent keys. Delete of an absent key succeeds.
package store
