// Package model defines the data structures shared by the memolist packages.
//
// # Entry
//
// The [Entry] struct is the only persisted record:
//
//	type Entry struct {
//	    ID    int64  // Unique identifier assigned by an entries.IDSource
//	    Value string // Trimmed, non-empty text
//	}
//
// Entries are immutable once created. The JSON tags define the persisted
// layout, an ordered array of {"id", "value"} objects.
package model
