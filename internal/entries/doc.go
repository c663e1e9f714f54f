// Package entries holds the ordered entry collection and its state transitions.
//
// # Reducer
//
// Transitions are expressed as [Command] values consumed by the pure
// function [Reduce]:
//
//	next := entries.Reduce(state, entries.Create{Entry: e})
//	next = entries.Reduce(next, entries.Delete{ID: e.ID})
//
// Reduce never mutates its input.
//
// # Store
//
// [Store] owns the live collection for a session. Every successful mutation
// is written through a persist.Adapter before it becomes visible, so the
// in-memory and persisted collections never diverge:
//
//	st, err := entries.Open(adapter, entries.NewCounter())
//	e, ok, err := st.Add("buy milk")
//	removed, err := st.Remove(e.ID)
//
// Blank content and unknown ids are no-ops, not errors.
package entries
